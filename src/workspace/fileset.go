package workspace

// FileSet maps path to FileEntry and remembers insertion order, so the
// "first file" of a project is the first one it declared.
type FileSet struct {
	order   []string
	entries map[string]FileEntry
}

func NewFileSet(entries ...FileEntry) *FileSet {
	fs := &FileSet{entries: make(map[string]FileEntry, len(entries))}
	for _, e := range entries {
		fs.Put(e)
	}
	return fs
}

// Put inserts or replaces an entry. New paths go to the end of the order.
func (fs *FileSet) Put(e FileEntry) {
	if fs.entries == nil {
		fs.entries = make(map[string]FileEntry)
	}
	if _, ok := fs.entries[e.Path]; !ok {
		fs.order = append(fs.order, e.Path)
	}
	fs.entries[e.Path] = e
}

func (fs *FileSet) Get(path string) (FileEntry, bool) {
	e, ok := fs.entries[path]
	return e, ok
}

func (fs *FileSet) Has(path string) bool {
	_, ok := fs.entries[path]
	return ok
}

func (fs *FileSet) Len() int { return len(fs.order) }

// Paths returns the paths in insertion order.
func (fs *FileSet) Paths() []string {
	out := make([]string, len(fs.order))
	copy(out, fs.order)
	return out
}

// Entries returns a copy of the entries in insertion order.
func (fs *FileSet) Entries() []FileEntry {
	out := make([]FileEntry, 0, len(fs.order))
	for _, p := range fs.order {
		out = append(out, fs.entries[p])
	}
	return out
}

// First returns the first declared path, or "" for an empty set.
func (fs *FileSet) First() string {
	if len(fs.order) == 0 {
		return ""
	}
	return fs.order[0]
}

// ClearNew resets IsNew on every entry.
func (fs *FileSet) ClearNew() {
	for p, e := range fs.entries {
		if e.IsNew {
			e.IsNew = false
			fs.entries[p] = e
		}
	}
}

func (fs *FileSet) Clone() *FileSet {
	return NewFileSet(fs.Entries()...)
}
