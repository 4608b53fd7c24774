package src

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Protocol-Lattice/hue-playground/src/playground"
	"github.com/Protocol-Lattice/hue-playground/src/ui"
)

const (
	placeholderReady = "Describe a change to the project..."
	placeholderWait  = "Waiting for the AI session..."
)

// Options carries the settings the TUI shows or acts on.
type Options struct {
	Provider  string
	Model     string
	Project   string
	ExportDir string
}

type model struct {
	ctx  context.Context
	pg   *playground.Playground
	opts Options

	mode     ui.Mode
	prevMode ui.Mode
	focus    ui.Focus
	showDiff bool
	notice   string

	snap playground.State

	files      list.Model
	projects   list.Model
	textarea   textarea.Model
	code       viewport.Model
	transcript viewport.Model
	spinner    spinner.Model
	style      ui.Styles
	highlight  codeRenderer

	width  int
	height int
}

// NewModel returns the Bubble Tea model for the playground.
func NewModel(ctx context.Context, pg *playground.Playground, opts Options) *model {
	st := ui.NewStyles()

	files := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	files.Title = "Files"
	files.SetShowHelp(false)
	files.SetShowStatusBar(false)
	files.SetFilteringEnabled(false)

	pl := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	pl.Title = "Example Projects"
	pl.SetShowHelp(false)
	pl.SetShowStatusBar(false)
	pl.SetFilteringEnabled(false)

	ta := textarea.New()
	ta.Placeholder = placeholderWait
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.Blur()

	tr := viewport.New(0, 0)
	tr.SetContent("Welcome to Hue! Loading the example project...")

	s := spinner.New()
	s.Spinner = spinner.Line
	s.Style = st.Thinking

	m := &model{
		ctx:        ctx,
		pg:         pg,
		opts:       opts,
		mode:       ui.ModeWorkspace,
		focus:      ui.FocusChat,
		files:      files,
		projects:   pl,
		textarea:   ta,
		code:       viewport.New(0, 0),
		transcript: tr,
		spinner:    s,
		style:      st,
	}
	if err := pg.ConfigErr(); err != nil {
		m.mode = ui.ModeConfigError
	}
	return m
}

func (m *model) Init() tea.Cmd {
	if m.mode == ui.ModeConfigError {
		return nil
	}
	return tea.Batch(m.switchCmd(m.opts.Project), m.spinner.Tick)
}

// Run starts the interactive playground and blocks until the user quits.
func Run(ctx context.Context, pg *playground.Playground, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, pg, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
