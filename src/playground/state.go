package playground

import (
	"github.com/Protocol-Lattice/hue-playground/src/session"
	"github.com/Protocol-Lattice/hue-playground/src/workspace"
)

// State is a point-in-time copy of everything a view needs.
type State struct {
	ProjectKey  string
	ProjectName string

	Files    []workspace.FileEntry
	Tree     []workspace.TreeRow
	Selected string
	Content  string
	Diff     string

	Messages []workspace.Message
	Plan     []workspace.PlanStep
	Task     string

	Ready     bool
	Busy      bool
	Streaming string
	ConfigErr error
}

func (p *Playground) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	files := p.ws.Files()
	st := State{
		ProjectKey:  p.ws.ProjectKey,
		ProjectName: p.ws.ProjectName,
		Files:       files.Entries(),
		Tree:        workspace.BuildTree(files),
		Selected:    p.ws.Selected(),
		Messages:    p.ws.Messages(),
		Plan:        p.ws.Plan(),
		Task:        p.ws.Task(),
		Ready:       p.ready,
		Busy:        p.busy,
		Streaming:   p.streamBuf.String(),
	}
	if e, ok := files.Get(st.Selected); ok {
		st.Content = e.Content
		st.Diff = p.ws.LastDiff(e.Path)
	}
	if p.sess == nil {
		st.ConfigErr = session.ErrMissingCredential
	}
	return st
}
