package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Protocol-Lattice/hue-playground/src/workspace"
)

func workspaceState() State {
	ta := textarea.New()
	ta.SetWidth(80)
	return State{
		Mode:        ModeWorkspace,
		ProjectName: "Counter App (React/TS)",
		Provider:    "gemini",
		Model:       "gemini-2.5-flash",
		Ready:       true,
		Files:       list.New([]list.Item{}, list.NewDefaultDelegate(), 30, 10),
		Code:        viewport.New(80, 10),
		Transcript:  viewport.New(80, 10),
		TextArea:    ta,
		Spinner:     spinner.New(),
	}
}

func TestRenderContainsHeader(t *testing.T) {
	output := Render(workspaceState(), NewStyles())

	if !strings.Contains(output, "P L A Y G R O U N D") {
		t.Errorf("Expected output to contain the logo")
	}
	if !strings.Contains(output, "Protocol Lattice") {
		t.Errorf("Expected output to contain 'Protocol Lattice'")
	}
}

func TestRenderFooterContainsQuit(t *testing.T) {
	output := Render(workspaceState(), NewStyles())

	if !strings.Contains(output, "ctrl+c: quit") {
		t.Errorf("Expected footer to contain quit instruction")
	}
	if !strings.Contains(output, "ctrl+p: projects") {
		t.Errorf("Expected footer to list the project picker")
	}
}

func TestRenderWorkspaceShowsStatus(t *testing.T) {
	s := workspaceState()
	s.FileCount = 5
	s.FileBytes = 2048
	output := Render(s, NewStyles())

	for _, want := range []string{"PROJECT: Counter App (React/TS)", "MODEL: gemini/gemini-2.5-flash", "FILES: 5 (2.0 KB)", "READY", "No file selected"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestRenderPlanAndTask(t *testing.T) {
	s := workspaceState()
	s.Task = "add a reset button"
	s.Plan = []workspace.PlanStep{{ID: "1", Description: "Add button"}, {ID: "2", Description: "Wire handler"}}
	output := Render(s, NewStyles())

	if !strings.Contains(output, "Task: add a reset button") {
		t.Errorf("Expected task description above the plan")
	}
	if !strings.Contains(output, "1. Add button") || !strings.Contains(output, "2. Wire handler") {
		t.Errorf("Expected numbered plan steps")
	}
}

func TestRenderSelectedDiffTitle(t *testing.T) {
	s := workspaceState()
	s.Selected = "App.tsx"
	s.ShowDiff = true
	output := Render(s, NewStyles())

	if !strings.Contains(output, "App.tsx (last diff)") {
		t.Errorf("Expected code pane title to mark the diff view")
	}
}

func TestRenderThinkingState(t *testing.T) {
	s := workspaceState()
	s.Busy = true
	output := Render(s, NewStyles())

	if !strings.Contains(output, "thinking") || !strings.Contains(output, "BUSY") {
		t.Errorf("Expected busy indicator")
	}

	s.Busy = false
	s.Ready = false
	output = Render(s, NewStyles())
	if !strings.Contains(output, "initializing AI") {
		t.Errorf("Expected initialization indicator")
	}
}

func TestRenderConfigError(t *testing.T) {
	state := State{
		Mode:      ModeConfigError,
		ConfigErr: errors.New("missing API credential"),
	}
	output := Render(state, NewStyles())

	if !strings.Contains(output, "Configuration error") || !strings.Contains(output, "missing API credential") {
		t.Errorf("Expected blocking configuration error screen")
	}
	if !strings.Contains(output, "GEMINI_API_KEY") {
		t.Errorf("Expected a hint naming GEMINI_API_KEY")
	}
}

func TestRenderProjectsMode(t *testing.T) {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 40, 10)
	l.Title = "Example Projects"
	output := Render(State{Mode: ModeProjects, Projects: l}, NewStyles())

	if !strings.Contains(output, "Example Projects") {
		t.Errorf("Expected project picker title")
	}
	if !strings.Contains(output, "esc: back") {
		t.Errorf("Expected picker help")
	}
}

func TestRenderTranscript(t *testing.T) {
	msgs := []workspace.Message{
		{Sender: workspace.SenderSystem, Kind: workspace.KindStatus, Text: "AI context initialized for Counter App (React/TS). Ready for your request."},
		{Sender: workspace.SenderUser, Text: "add a reset button"},
		{Sender: workspace.SenderAI, Kind: workspace.KindPlanStep, Text: "Add button"},
		{Sender: workspace.SenderAI, Kind: workspace.KindCodeUpdate, Text: "Updated file: App.tsx", FileName: "App.tsx", CodeContent: "const a = 1;\nconst b = 2;"},
		{Sender: workspace.SenderAI, Kind: workspace.KindTestLog, Text: "Simulating test: click"},
		{Sender: workspace.SenderSystem, Kind: workspace.KindError, Text: "API Stream Error: boom"},
		{Sender: workspace.SenderAI, Kind: workspace.KindTaskComplete, Text: "Task Complete!"},
		{Sender: workspace.SenderAI, Text: "Done."},
	}
	output := RenderTranscript(msgs, "PLAN: nex", NewStyles())

	for _, want := range []string{
		"Ready for your request.",
		"You: ",
		"Add button",
		"Code update for App.tsx:",
		"const b = 2;",
		"Simulating test: click",
		"API Stream Error: boom",
		"Task Complete!",
		"Hue: ",
		"PLAN: nex",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected transcript to contain %q", want)
		}
	}
	if strings.Contains(output, "Updated file: App.tsx") {
		t.Errorf("Code updates should render as 'Code update for', not the raw text")
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1073741824, "1.0 GB"},
	}

	for _, tt := range tests {
		result := humanSize(tt.bytes)
		if result != tt.expected {
			t.Errorf("humanSize(%d) = %s; want %s", tt.bytes, result, tt.expected)
		}
	}
}

func TestNewStyles(t *testing.T) {
	styles := NewStyles()

	if styles.Accent.GetForeground() == nil {
		t.Errorf("Accent style should have a foreground color")
	}
	if !styles.PaneFocused.GetBorderTop() {
		t.Errorf("Focused pane should have a border")
	}
}
