package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const Logo = `
██╗  ██╗██╗   ██╗███████╗
██║  ██║██║   ██║██╔════╝
███████║██║   ██║█████╗
██╔══██║██║   ██║██╔══╝
██║  ██║╚██████╔╝███████╗
╚═╝  ╚═╝ ╚═════╝ ╚══════╝
   P L A Y G R O U N D
`

// Render generates the full UI string based on the provided state.
func Render(s State, styles Styles) string {
	header := renderHeader(styles)
	body := renderBody(s, styles)
	footer := renderFooter(s, styles)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func renderHeader(styles Styles) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AD8CFF")).Bold(true).
		Background(lipgloss.Color("#000000")).UnsetBackground()
	subtitle := styles.Header.Render("Protocol Lattice · AI coding playground")
	styledLogo := logoStyle.Render(Logo)

	return lipgloss.JoinVertical(lipgloss.Left, styledLogo, subtitle)
}

func renderFooter(s State, styles Styles) string {
	help := "ctrl+c: quit"
	switch s.Mode {
	case ModeProjects:
		help += " | enter: open project | esc: back"
	case ModeWorkspace:
		help += " | tab: focus | enter: send/open | ctrl+p: projects | ctrl+d: diff | ctrl+y: copy | ctrl+e: export"
	}
	return styles.Footer.Render(help)
}

func renderBody(s State, styles Styles) string {
	switch s.Mode {
	case ModeConfigError:
		return renderConfigError(s, styles)
	case ModeProjects:
		return renderProjects(s, styles)
	case ModeWorkspace:
		return renderWorkspace(s, styles)
	default:
		return ""
	}
}

func renderConfigError(s State, styles Styles) string {
	msg := "no API key configured"
	if s.ConfigErr != nil {
		msg = s.ConfigErr.Error()
	}
	box := lipgloss.JoinVertical(lipgloss.Left,
		styles.Error.Render("⚠️  Configuration error"),
		"",
		msg,
		"",
		styles.Subtle.Render("Set GEMINI_API_KEY (or VITE_GEMINI_API_KEY / GOOGLE_API_KEY) in your"),
		styles.Subtle.Render("environment or a .env file, or pick another provider with HUE_PROVIDER,"),
		styles.Subtle.Render("then restart Hue."),
	)
	return styles.ChatContainer.Render(box)
}

func renderProjects(s State, styles Styles) string {
	return styles.List.Render(s.Projects.View())
}

func pane(styles Styles, focused bool) lipgloss.Style {
	if focused {
		return styles.PaneFocused
	}
	return styles.Pane
}

func renderWorkspace(s State, styles Styles) string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		pane(styles, s.Focus == FocusFiles).Render(s.Files.View()),
		renderPlan(s, styles),
	)

	codeTitle := "No file selected"
	if s.Selected != "" {
		codeTitle = s.Selected
		if s.ShowDiff {
			codeTitle += " (last diff)"
		}
	}
	code := pane(styles, s.Focus == FocusCode).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ListHeader.Render(codeTitle),
		s.Code.View(),
	))

	chat := styles.ChatContainer.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Transcript.View(),
		renderStatus(s, styles),
		renderThinking(s, styles),
		s.TextArea.View(),
	))

	right := lipgloss.JoinVertical(lipgloss.Left, code, chat)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func renderPlan(s State, styles Styles) string {
	lines := []string{styles.ListHeader.Render("Plan")}
	if s.Task != "" {
		lines = append(lines, styles.Subtle.Render("Task: "+s.Task))
	}
	if len(s.Plan) == 0 {
		lines = append(lines, styles.Subtle.Render("No active plan."))
	}
	for i, step := range s.Plan {
		lines = append(lines, styles.PlanStep.Render(fmt.Sprintf("%d. %s", i+1, step.Description)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderStatus(s State, styles Styles) string {
	state := "STARTING"
	switch {
	case s.Busy:
		state = "BUSY"
	case s.Ready:
		state = "READY"
	}
	items := []string{
		styles.Status.Render(fmt.Sprintf("PROJECT: %s", s.ProjectName)),
		styles.Status.Render(fmt.Sprintf("MODEL: %s/%s", s.Provider, s.Model)),
		styles.StatusRight.Render(fmt.Sprintf("FILES: %d (%s) · %s", s.FileCount, humanSize(s.FileBytes), state)),
	}
	status := lipgloss.JoinHorizontal(lipgloss.Top, items...)
	if s.Notice != "" {
		status = lipgloss.JoinVertical(lipgloss.Left, status, styles.Subtle.Render(s.Notice))
	}
	return status
}

func renderThinking(s State, styles Styles) string {
	switch {
	case s.Busy:
		return styles.Thinking.Render(fmt.Sprintf("Hue %s thinking", s.Spinner.View()))
	case !s.Ready && s.ConfigErr == nil:
		return styles.Thinking.Render(fmt.Sprintf("Hue %s initializing AI", s.Spinner.View()))
	}
	return ""
}

func humanSize(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
