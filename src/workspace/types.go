package workspace

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderAI     Sender = "ai"
	SenderSystem Sender = "system"
)

// Kind tags a message with the directive that produced it. Plain
// commentary carries KindNone.
type Kind string

const (
	KindNone         Kind = ""
	KindPlanStep     Kind = "plan_step"
	KindCodeUpdate   Kind = "code_update"
	KindTestLog      Kind = "test_log"
	KindError        Kind = "error"
	KindStatus       Kind = "status"
	KindTaskComplete Kind = "task_complete"
)

// Message is one entry of the append-only chat log.
type Message struct {
	ID          string `json:"id"`
	Sender      Sender `json:"sender"`
	Text        string `json:"text"`
	Kind        Kind   `json:"kind,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	CodeContent string `json:"codeContent,omitempty"`
}

// FileEntry is a single file of the in-memory project.
type FileEntry struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	IsNew   bool   `json:"isNew"`
}

// PlanStep is one line item of the model's stated plan.
type PlanStep struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}
