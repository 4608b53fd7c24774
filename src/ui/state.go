package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Protocol-Lattice/hue-playground/src/workspace"
)

// Mode represents the current UI state
type Mode int

const (
	ModeWorkspace Mode = iota
	ModeProjects
	ModeConfigError
)

// Focus is the pane that receives keys in ModeWorkspace.
type Focus int

const (
	FocusChat Focus = iota
	FocusFiles
	FocusCode
)

// State contains all the data required to render the UI.
// This decouples the renderer from the main application logic.
type State struct {
	Mode  Mode
	Focus Focus

	ProjectName string
	Provider    string
	Model       string

	Task      string
	Plan      []workspace.PlanStep
	Selected  string
	FileCount int
	FileBytes int64
	ShowDiff  bool
	Notice    string

	Ready     bool
	Busy      bool
	ConfigErr error

	// Bubble Tea models
	Files      list.Model
	Projects   list.Model
	Code       viewport.Model
	Transcript viewport.Model
	TextArea   textarea.Model
	Spinner    spinner.Model
}
