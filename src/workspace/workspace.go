package workspace

// FileChange describes one upsert applied to the workspace.
type FileChange struct {
	Path   string `json:"path"`
	Status string `json:"status"` // created, updated, unchanged
	Diff   string `json:"diff,omitempty"`
}

// Workspace is the in-memory state of one playground: the project file set,
// chat log, plan and task. It is not safe for concurrent use; callers guard it.
type Workspace struct {
	ProjectKey  string
	ProjectName string

	files    *FileSet
	selected string
	messages []Message
	plan     []PlanStep
	task     string

	diffs   *DiffTracker
	changes []FileChange
}

func New(diffs *DiffTracker) *Workspace {
	if diffs == nil {
		diffs = NewDiffTracker(false)
	}
	return &Workspace{files: NewFileSet(), diffs: diffs}
}

// Load replaces the whole workspace with a project's files. Nothing from the
// previous project survives: files, selection, chat log, plan and task are
// all reset.
func (w *Workspace) Load(key, name string, files []FileEntry) {
	w.ProjectKey = key
	w.ProjectName = name
	w.files = NewFileSet(files...)
	w.selected = w.files.First()
	w.messages = nil
	w.plan = nil
	w.task = ""
	w.changes = nil
	w.diffs.Reset()
}

func (w *Workspace) Files() *FileSet { return w.files }

func (w *Workspace) HasFile(path string) bool { return w.files.Has(path) }

// UpsertFile writes content to path. A path that was absent becomes new;
// a path already marked new keeps the mark until the task completes.
func (w *Workspace) UpsertFile(path, content string) {
	prev, existed := w.files.Get(path)
	status := "created"
	if existed {
		status = "updated"
		if prev.Content == content {
			status = "unchanged"
		}
	}
	diff := w.diffs.Record(path, prev.Content, content, existed)
	w.files.Put(FileEntry{Path: path, Content: content, IsNew: !existed || prev.IsNew})
	w.changes = append(w.changes, FileChange{Path: path, Status: status, Diff: diff})
}

func (w *Workspace) SelectFile(path string) { w.selected = path }

func (w *Workspace) Selected() string { return w.selected }

// CompleteTask clears the plan and task description and accepts every new
// file. Running it twice leaves the same state.
func (w *Workspace) CompleteTask() {
	w.plan = nil
	w.task = ""
	w.files.ClearNew()
}

func (w *Workspace) AppendPlan(steps []PlanStep) {
	w.plan = append(w.plan, steps...)
}

func (w *Workspace) AppendMessages(msgs []Message) {
	w.messages = append(w.messages, msgs...)
}

// ResetMessages replaces the chat log.
func (w *Workspace) ResetMessages(msgs ...Message) {
	w.messages = append([]Message(nil), msgs...)
}

func (w *Workspace) Messages() []Message {
	out := make([]Message, len(w.messages))
	copy(out, w.messages)
	return out
}

func (w *Workspace) Plan() []PlanStep {
	out := make([]PlanStep, len(w.plan))
	copy(out, w.plan)
	return out
}

func (w *Workspace) Task() string { return w.task }

// BeginTask records the task description unless one is already running.
func (w *Workspace) BeginTask(desc string) {
	if w.task == "" {
		w.task = desc
	}
}

// LastDiff returns the most recent diff recorded for path.
func (w *Workspace) LastDiff(path string) string { return w.diffs.Last(path) }

// TakeChanges returns the upserts applied since the last call.
func (w *Workspace) TakeChanges() []FileChange {
	out := w.changes
	w.changes = nil
	return out
}
