// Package directive turns a complete model reply into playground updates.
//
// The reply is scanned once, line by line. Directive lines become chat
// messages and plan steps; CODE_UPDATE blocks become file upserts. Malformed
// replies (a block opened while another is still open, or a reply that ends
// inside a block) are applied best-effort and reported with a system warning.
package directive

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Protocol-Lattice/hue-playground/src/workspace"
)

// Sink receives the effects of one parse. Files are upserted and selected as
// blocks close; plan steps and messages arrive in a single batch each at the
// end of the scan.
type Sink interface {
	UpsertFile(path, content string)
	SelectFile(path string)
	CompleteTask()
	AppendPlan(steps []workspace.PlanStep)
	AppendMessages(msgs []workspace.Message)
}

// Summary reports what a parse did.
type Summary struct {
	Messages     int      `json:"messages"`
	PlanSteps    int      `json:"planSteps"`
	Files        []string `json:"files,omitempty"`
	Warnings     int      `json:"warnings"`
	TaskComplete bool     `json:"taskComplete"`
}

// Parser holds the id source used for messages and plan steps.
type Parser struct {
	NewID func() string
}

func New() *Parser { return &Parser{NewID: uuid.NewString} }

// Parse runs the default parser over text.
func Parse(text string, sink Sink) Summary { return New().Parse(text, sink) }

// Parse scans text and applies its effects to sink. It never fails.
func (p *Parser) Parse(text string, sink Sink) Summary {
	newID := p.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	s := &scan{newID: newID, sink: sink}

	for _, raw := range splitLines(text) {
		s.line(raw)
	}
	s.flushProse()
	if s.inBlock {
		s.forceClose()
	}

	if len(s.plan) > 0 {
		sink.AppendPlan(s.plan)
	}
	if len(s.msgs) > 0 {
		sink.AppendMessages(s.msgs)
	}
	s.sum.Messages = len(s.msgs)
	return s.sum
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// scan is the transient parser state for one reply.
type scan struct {
	newID func() string
	sink  Sink

	inBlock bool
	opened  bool // the block's opening fence has been consumed
	file    string
	buf     []string

	prose []string
	msgs  []workspace.Message
	plan  []workspace.PlanStep
	sum   Summary
}

func (s *scan) line(raw string) {
	line := strings.TrimSpace(raw)
	kind, rest := Classify(line)

	if kind == CodeUpdate {
		s.flushProse()
		if s.inBlock {
			s.recoverNested()
		}
		s.file = strings.Trim(rest, "`")
		s.inBlock = true
		s.opened = false
		s.buf = nil
		return
	}
	if s.inBlock {
		s.blockLine(raw, line)
		return
	}

	switch kind {
	case Plan:
		s.flushProse()
		step := workspace.PlanStep{ID: s.newID(), Description: rest}
		s.plan = append(s.plan, step)
		s.sum.PlanSteps++
		s.msgs = append(s.msgs, workspace.Message{ID: step.ID, Sender: workspace.SenderAI, Text: rest, Kind: workspace.KindPlanStep})
	case SimulatingTest:
		s.flushProse()
		s.ai("Simulating test: "+rest, workspace.KindTestLog)
	case TestResult:
		s.flushProse()
		s.ai("Test result: "+rest, workspace.KindTestLog)
	case TaskComplete:
		s.flushProse()
		s.ai("Task Complete!", workspace.KindTaskComplete)
		s.sink.CompleteTask()
		s.plan = nil
		s.sum.PlanSteps = 0
		s.sum.TaskComplete = true
	case Error:
		s.flushProse()
		s.ai("Error: "+rest, workspace.KindError)
	default:
		if line != "" {
			s.prose = append(s.prose, line)
		}
	}
}

// blockLine handles a line inside a CODE_UPDATE block. A fence with a
// language tag before any content opens the block; a bare fence before any
// content does the same. Any later bare fence closes it.
func (s *scan) blockLine(raw, line string) {
	if strings.HasPrefix(line, "```") {
		lang := strings.TrimSpace(line[3:])
		switch {
		case len(s.buf) == 0 && (lang != "" || !s.opened):
			s.opened = true
			return
		case lang == "":
			s.closeBlock()
			return
		}
	}
	if !s.opened && len(s.buf) == 0 && line == "" {
		return
	}
	s.buf = append(s.buf, raw)
}

func (s *scan) closeBlock() {
	if s.file == "" {
		s.dropUnnamed()
	} else {
		s.apply("Updated file: " + s.file)
	}
	s.reset()
}

func (s *scan) recoverNested() {
	if s.file == "" {
		s.dropUnnamed()
		return
	}
	s.warn(fmt.Sprintf("AI sent an unusual code update structure. I've tried to apply the previous block for: %s. A new code block will follow.", s.file))
	s.apply("Updated file: " + s.file)
}

func (s *scan) forceClose() {
	if s.file == "" {
		s.dropUnnamed()
		s.reset()
		return
	}
	s.warn(fmt.Sprintf("AI response for %s might be incomplete, but I've applied what was received.", s.file))
	s.apply("Force-closed code update for " + s.file)
	s.reset()
}

// dropUnnamed reports a block that named no file. Its content cannot be
// applied anywhere.
func (s *scan) dropUnnamed() {
	s.warn(fmt.Sprintf("AI sent a code update without a file name; %d line(s) were not applied.", len(s.buf)))
}

func (s *scan) apply(text string) {
	content := strings.Join(s.buf, "\n")
	s.sink.UpsertFile(s.file, content)
	s.msgs = append(s.msgs, workspace.Message{
		ID:          s.newID(),
		Sender:      workspace.SenderAI,
		Text:        text,
		Kind:        workspace.KindCodeUpdate,
		FileName:    s.file,
		CodeContent: content,
	})
	s.sink.SelectFile(s.file)
	s.sum.Files = append(s.sum.Files, s.file)
}

func (s *scan) reset() {
	s.inBlock = false
	s.opened = false
	s.file = ""
	s.buf = nil
}

func (s *scan) ai(text string, kind workspace.Kind) {
	s.msgs = append(s.msgs, workspace.Message{ID: s.newID(), Sender: workspace.SenderAI, Text: text, Kind: kind})
}

func (s *scan) warn(text string) {
	s.msgs = append(s.msgs, workspace.Message{ID: s.newID(), Sender: workspace.SenderSystem, Text: text, Kind: workspace.KindError})
	s.sum.Warnings++
}

// flushProse emits consecutive commentary lines as one message.
func (s *scan) flushProse() {
	if len(s.prose) == 0 {
		return
	}
	s.msgs = append(s.msgs, workspace.Message{ID: s.newID(), Sender: workspace.SenderAI, Text: strings.Join(s.prose, "\n")})
	s.prose = nil
}
