package src

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Protocol-Lattice/hue-playground/src/playground"
	"github.com/Protocol-Lattice/hue-playground/src/session"
	"github.com/Protocol-Lattice/hue-playground/src/ui"
)

// switchedMsg reports that a project load (and chat initialization) ended.
type switchedMsg struct{ err error }

// streamMsg carries one event of an in-flight reply.
type streamMsg struct {
	ev playground.Event
	ch <-chan playground.Event
}

type sendFailedMsg struct{ err error }

type exportedMsg struct {
	dir   string
	files []string
	err   error
}

type copiedMsg struct {
	path string
	err  error
}

const planHeight = 8

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.pg.Close()
			return m, tea.Quit
		}
		switch m.mode {
		case ui.ModeConfigError:
			if k := msg.String(); k == "q" || k == "esc" || k == "enter" {
				return m, tea.Quit
			}
			return m, nil
		case ui.ModeProjects:
			return m.updateProjects(msg)
		default:
			return m.updateWorkspace(msg)
		}

	case spinner.TickMsg:
		if !m.snap.Busy && m.snap.Ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case switchedMsg:
		if msg.err != nil {
			m.notice = "❌ " + msg.err.Error()
		} else {
			m.notice = ""
		}
		m.refresh()
		m.code.GotoTop()
		return m, nil

	case streamMsg:
		if msg.ev.Kind == playground.EventChunk {
			m.refreshTranscript()
			return m, waitEvent(msg.ch)
		}
		if msg.ev.Stale {
			m.notice = "Reply discarded: the project changed while it was streaming."
		} else if msg.ev.Summary.Warnings > 0 {
			m.notice = fmt.Sprintf("⚠️ Applied with %d warning(s).", msg.ev.Summary.Warnings)
		}
		m.refresh()
		return m, nil

	case sendFailedMsg:
		switch {
		case errors.Is(msg.err, playground.ErrBusy):
			m.notice = "Hue is still working on the previous request."
		case errors.Is(msg.err, session.ErrNotInitialized):
			m.notice = ""
		default:
			m.notice = "❌ " + msg.err.Error()
		}
		m.refresh()
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.notice = "❌ Export failed: " + msg.err.Error()
		} else {
			m.notice = m.style.Success.Render(fmt.Sprintf("💾 Exported %d files to %s", len(msg.files), msg.dir))
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.notice = "❌ Copy failed: " + msg.err.Error()
		} else {
			m.notice = fmt.Sprintf("📋 Copied %s to the clipboard", msg.path)
		}
		return m, nil
	}
	return m, nil
}

func (m *model) updateProjects(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = m.prevMode
		return m, nil
	case "enter":
		item, ok := m.projects.SelectedItem().(projectItem)
		if !ok {
			return m, nil
		}
		m.mode = ui.ModeWorkspace
		m.focus = ui.FocusChat
		m.showDiff = false
		m.notice = ""
		m.textarea.Reset()
		return m, tea.Batch(m.switchCmd(item.key), m.spinner.Tick)
	}
	var cmd tea.Cmd
	m.projects, cmd = m.projects.Update(msg)
	return m, cmd
}

func (m *model) updateWorkspace(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {

	case "tab":
		m.focus = (m.focus + 1) % 3
		m.applyFocus()
		return m, nil

	case "ctrl+p":
		m.prevMode = m.mode
		m.mode = ui.ModeProjects
		m.projects.SetItems(projectItems(m.pg.Projects(), m.snap.ProjectKey))
		return m, nil

	case "ctrl+d":
		m.showDiff = !m.showDiff
		m.refreshCode()
		return m, nil

	case "ctrl+y":
		return m, m.copyCmd()

	case "ctrl+e":
		return m, m.exportCmd()

	case "enter":
		switch m.focus {
		case ui.FocusFiles:
			if item, ok := m.files.SelectedItem().(fileItem); ok && !item.row.IsDir {
				if err := m.pg.SelectFile(item.row.Path); err != nil {
					m.notice = "❌ " + err.Error()
				}
				m.refresh()
				m.code.GotoTop()
			}
			return m, nil
		case ui.FocusChat:
			if !m.snap.Ready {
				return m, nil
			}
			if m.snap.Busy {
				m.notice = "Hue is still working on the previous request."
				return m, nil
			}
			text := m.textarea.Value()
			if text == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.notice = ""
			return m, tea.Batch(m.sendCmd(text), m.spinner.Tick)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case ui.FocusFiles:
		m.files, cmd = m.files.Update(msg)
	case ui.FocusCode:
		m.code, cmd = m.code.Update(msg)
	default:
		var taCmd, vpCmd tea.Cmd
		m.textarea, taCmd = m.textarea.Update(msg)
		m.transcript, vpCmd = m.transcript.Update(msg)
		cmd = tea.Batch(taCmd, vpCmd)
	}
	return m, cmd
}

func (m *model) switchCmd(key string) tea.Cmd {
	return func() tea.Msg {
		if key == "" {
			return switchedMsg{err: m.pg.Initialize(m.ctx)}
		}
		return switchedMsg{err: m.pg.SwitchProject(m.ctx, key)}
	}
}

func (m *model) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		ch, err := m.pg.Send(m.ctx, text)
		if err != nil {
			return sendFailedMsg{err: err}
		}
		return waitEvent(ch)()
	}
}

func waitEvent(ch <-chan playground.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return streamMsg{ev: ev, ch: ch}
	}
}

func (m *model) copyCmd() tea.Cmd {
	path := m.snap.Selected
	content := m.snap.Content
	if m.showDiff {
		content = m.snap.Diff
	}
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return copiedMsg{path: path, err: clipboard.WriteAll(content)}
	}
}

func (m *model) exportCmd() tea.Cmd {
	dir := m.opts.ExportDir
	if dir == "" {
		dir = "hue-export"
	}
	return func() tea.Msg {
		files, err := m.pg.Export(m.ctx, dir)
		return exportedMsg{dir: dir, files: files, err: err}
	}
}

func (m *model) applyFocus() {
	if m.focus == ui.FocusChat && m.snap.Ready {
		m.textarea.Focus()
	} else {
		m.textarea.Blur()
	}
}

func (m *model) layout() {
	headerHeight := lipgloss.Height(ui.Logo) + 1
	footerHeight := 1
	bodyHeight := max(m.height-headerHeight-footerHeight, 12)

	leftWidth := max(m.width/4, 24)
	rightWidth := max(m.width-leftWidth-4, 30)

	m.files.SetSize(leftWidth, max(bodyHeight-planHeight-2, 4))
	m.projects.SetSize(m.width-2, bodyHeight-2)

	codeHeight := max(bodyHeight*2/5-3, 3)
	m.code.Width = rightWidth - 2
	m.code.Height = codeHeight

	m.textarea.SetWidth(rightWidth - 4)
	m.transcript.Width = rightWidth - 4
	m.transcript.Height = max(bodyHeight-codeHeight-3-m.textarea.Height()-8, 3)
}

// refresh pulls a fresh snapshot and pushes it into every component.
func (m *model) refresh() {
	prev := m.snap.Selected
	m.snap = m.pg.Snapshot()

	items, at := fileItems(m.snap.Tree, m.snap.Selected)
	m.files.SetItems(items)
	if at >= 0 {
		m.files.Select(at)
	}
	if m.snap.Selected != prev {
		m.code.GotoTop()
	}
	m.refreshCode()
	m.renderTranscript()

	if m.snap.Ready {
		m.textarea.Placeholder = placeholderReady
	} else {
		m.textarea.Placeholder = placeholderWait
	}
	m.applyFocus()
}

func (m *model) refreshTranscript() {
	m.snap = m.pg.Snapshot()
	m.renderTranscript()
}

func (m *model) renderTranscript() {
	content := ui.RenderTranscript(m.snap.Messages, m.snap.Streaming, m.style)
	if m.transcript.Width > 0 {
		content = lipgloss.NewStyle().Width(m.transcript.Width).Render(content)
	}
	m.transcript.SetContent(content)
	m.transcript.GotoBottom()
}

func (m *model) refreshCode() {
	if m.snap.Selected == "" {
		m.code.SetContent("")
		return
	}
	if !m.showDiff {
		m.code.SetContent(m.highlight.render(m.snap.Selected, m.snap.Content, false, m.code.Width))
		return
	}
	if m.snap.Diff == "" {
		m.code.SetContent(m.style.Subtle.Render("No changes recorded for this file yet."))
		return
	}
	m.code.SetContent(m.highlight.render(m.snap.Selected, m.snap.Diff, true, m.code.Width))
}
