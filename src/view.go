package src

import "github.com/Protocol-Lattice/hue-playground/src/ui"

func (m *model) View() string {
	var bytes int64
	for _, f := range m.snap.Files {
		bytes += int64(len(f.Content))
	}

	state := ui.State{
		Mode:        m.mode,
		Focus:       m.focus,
		ProjectName: m.snap.ProjectName,
		Provider:    m.opts.Provider,
		Model:       m.opts.Model,
		Task:        m.snap.Task,
		Plan:        m.snap.Plan,
		Selected:    m.snap.Selected,
		FileCount:   len(m.snap.Files),
		FileBytes:   bytes,
		ShowDiff:    m.showDiff,
		Notice:      m.notice,
		Ready:       m.snap.Ready,
		Busy:        m.snap.Busy,
		ConfigErr:   m.pg.ConfigErr(),
		Files:       m.files,
		Projects:    m.projects,
		Code:        m.code,
		Transcript:  m.transcript,
		TextArea:    m.textarea,
		Spinner:     m.spinner,
	}
	return ui.Render(state, m.style)
}
