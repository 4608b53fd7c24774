// Package mcpserver exposes a playground over the Model Context Protocol so
// other agents can drive it through stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/Protocol-Lattice/hue-playground/src/directive"
	"github.com/Protocol-Lattice/hue-playground/src/playground"
	"github.com/Protocol-Lattice/hue-playground/src/session"
	"github.com/Protocol-Lattice/hue-playground/src/workspace"
)

const (
	toolListProjects  = "list_projects"
	toolSwitchProject = "switch_project"
	toolListFiles     = "list_files"
	toolReadFile      = "read_file"
	toolSendPrompt    = "send_prompt"
	toolGetPlan       = "get_plan"
	toolGetTranscript = "get_transcript"
	toolParseResponse = "parse_response"
	toolExportProject = "export_project"
)

type tool struct {
	def    mcp.Tool
	handle server.ToolHandlerFunc
}

type handlers struct {
	pg        *playground.Playground
	exportDir string
}

// New returns an MCP server with every playground tool registered.
func New(pg *playground.Playground, exportDir, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Hue Playground MCP Server",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	h := &handlers{pg: pg, exportDir: exportDir}
	for _, t := range h.tools() {
		s.AddTool(t.def, t.handle)
	}
	return s
}

// Serve runs the server on stdin and stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func object(props map[string]interface{}, required ...string) mcp.ToolInputSchema {
	if props == nil {
		props = map[string]interface{}{}
	}
	return mcp.ToolInputSchema{Type: "object", Properties: props, Required: required}
}

func prop(typ, desc string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": desc}
}

func (h *handlers) tools() []tool {
	return []tool{
		{mcp.Tool{
			Name:        toolListProjects,
			Description: "List the bundled example projects and mark the one currently loaded",
			InputSchema: object(nil),
		}, h.listProjects},
		{mcp.Tool{
			Name:        toolSwitchProject,
			Description: "Replace the workspace with a bundled project. Clears chat, plan and task and starts a fresh AI session",
			InputSchema: object(map[string]interface{}{
				"key": prop("string", "Project key, e.g. counterApp or todoApp"),
			}, "key"),
		}, h.switchProject},
		{mcp.Tool{
			Name:        toolListFiles,
			Description: "List the files of the current project in declaration order",
			InputSchema: object(nil),
		}, h.listFiles},
		{mcp.Tool{
			Name:        toolReadFile,
			Description: "Read a project file, or the diff of its last AI update",
			InputSchema: object(map[string]interface{}{
				"path": prop("string", "File path inside the project"),
				"diff": map[string]interface{}{
					"type":        "boolean",
					"description": "Return the last recorded unified diff instead of the content",
					"default":     false,
				},
			}, "path"),
		}, h.readFile},
		{mcp.Tool{
			Name:        toolSendPrompt,
			Description: "Send a request to the AI coding assistant and wait until its reply has been applied to the project",
			InputSchema: object(map[string]interface{}{
				"prompt": prop("string", "The coding request"),
			}, "prompt"),
		}, h.sendPrompt},
		{mcp.Tool{
			Name:        toolGetPlan,
			Description: "Return the current task description and plan steps",
			InputSchema: object(nil),
		}, h.getPlan},
		{mcp.Tool{
			Name:        toolGetTranscript,
			Description: "Return the chat transcript",
			InputSchema: object(map[string]interface{}{
				"since": prop("integer", "Skip this many leading messages"),
			}),
		}, h.getTranscript},
		{mcp.Tool{
			Name:        toolParseResponse,
			Description: "Apply a directive-formatted reply to the project without calling the model",
			InputSchema: object(map[string]interface{}{
				"text": prop("string", "Reply text using PLAN:, CODE_UPDATE:, SIMULATING_TEST:, TEST_RESULT:, TASK_COMPLETE and ERROR: lines"),
			}, "text"),
		}, h.parseResponse},
		{mcp.Tool{
			Name:        toolExportProject,
			Description: "Write the current project files to a directory on disk",
			InputSchema: object(map[string]interface{}{
				"dir": prop("string", "Target directory (defaults to the configured export directory)"),
			}),
		}, h.exportProject},
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

type projectInfo struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Files   []string `json:"files"`
	Current bool     `json:"current"`
}

func (h *handlers) listProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	current := h.pg.Snapshot().ProjectKey
	var out []projectInfo
	for _, p := range h.pg.Projects() {
		out = append(out, projectInfo{Key: p.Key, Name: p.Name, Files: p.FileNames(), Current: p.Key == current})
	}
	return jsonResult(out)
}

func (h *handlers) switchProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := strings.TrimSpace(request.GetString("key", ""))
	if key == "" {
		return mcp.NewToolResultError("key is required"), nil
	}
	// The new chat outlives this call.
	if err := h.pg.SwitchProject(context.WithoutCancel(ctx), key); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to switch project: %v", err)), nil
	}
	st := h.pg.Snapshot()
	text := fmt.Sprintf("Switched to %s (%d files)", st.ProjectName, len(st.Files))
	if st.ConfigErr != nil {
		text += fmt.Sprintf("; AI unavailable: %v", st.ConfigErr)
	}
	return mcp.NewToolResultText(text), nil
}

type fileInfo struct {
	Path     string `json:"path"`
	IsNew    bool   `json:"isNew"`
	Selected bool   `json:"selected"`
	Lines    int    `json:"lines"`
}

func (h *handlers) listFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := h.pg.Snapshot()
	out := make([]fileInfo, 0, len(st.Files))
	for _, f := range st.Files {
		out = append(out, fileInfo{
			Path:     f.Path,
			IsNew:    f.IsNew,
			Selected: f.Path == st.Selected,
			Lines:    strings.Count(f.Content, "\n") + 1,
		})
	}
	return jsonResult(out)
}

func (h *handlers) readFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	f, ok := h.pg.File(path)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("File not found: %s", path)), nil
	}
	if request.GetBool("diff", false) {
		d := h.pg.Diff(path)
		if d == "" {
			return mcp.NewToolResultText(fmt.Sprintf("No changes recorded for %s", path)), nil
		}
		return mcp.NewToolResultText(d), nil
	}
	return mcp.NewToolResultText(f.Content), nil
}

type promptResult struct {
	Messages []workspace.Message    `json:"messages"`
	Changes  []workspace.FileChange `json:"changes,omitempty"`
	Warnings int                    `json:"warnings"`
	Complete bool                   `json:"taskComplete"`
}

func (h *handlers) sendPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt := request.GetString("prompt", "")
	before := len(h.pg.Snapshot().Messages)
	h.pg.TakeChanges()

	ev, err := h.pg.SendAndWait(ctx, prompt)
	switch {
	case errors.Is(err, session.ErrMissingCredential):
		return mcp.NewToolResultError(fmt.Sprintf("Configuration error: %v. Set GEMINI_API_KEY (or the key for HUE_PROVIDER).", err)), nil
	case errors.Is(err, playground.ErrBusy), errors.Is(err, playground.ErrEmptyPrompt), errors.Is(err, session.ErrNotInitialized):
		return mcp.NewToolResultError(err.Error()), nil
	case ev.Stale:
		return mcp.NewToolResultError("The project was switched before the reply arrived; nothing was applied"), nil
	case err != nil:
		return mcp.NewToolResultError(fmt.Sprintf("API Stream Error: %v", err)), nil
	}

	msgs := h.pg.Snapshot().Messages
	if before > len(msgs) {
		before = 0
	}
	log.Info().Str("tool", toolSendPrompt).Int("messages", ev.Summary.Messages).Msg("prompt handled")
	return jsonResult(promptResult{
		Messages: msgs[before:],
		Changes:  h.pg.TakeChanges(),
		Warnings: ev.Summary.Warnings,
		Complete: ev.Summary.TaskComplete,
	})
}

type planResult struct {
	Task  string               `json:"task"`
	Steps []workspace.PlanStep `json:"steps"`
}

func (h *handlers) getPlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := h.pg.Snapshot()
	steps := st.Plan
	if steps == nil {
		steps = []workspace.PlanStep{}
	}
	return jsonResult(planResult{Task: st.Task, Steps: steps})
}

func (h *handlers) getTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msgs := h.pg.Snapshot().Messages
	since := int(request.GetFloat("since", 0))
	if since < 0 {
		since = 0
	}
	if since > len(msgs) {
		since = len(msgs)
	}
	return jsonResult(msgs[since:])
}

func (h *handlers) parseResponse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("text", "")
	h.pg.TakeChanges()
	sum := h.pg.ParseResponse(text)
	return jsonResult(struct {
		Summary directive.Summary      `json:"summary"`
		Changes []workspace.FileChange `json:"changes,omitempty"`
	}{sum, h.pg.TakeChanges()})
}

func (h *handlers) exportProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := request.GetString("dir", h.exportDir)
	if strings.TrimSpace(dir) == "" {
		return mcp.NewToolResultError("dir is required"), nil
	}
	written, err := h.pg.Export(ctx, dir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Export failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Exported %d files:\n%s", len(written), strings.Join(written, "\n"))), nil
}
