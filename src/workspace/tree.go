package workspace

import (
	"sort"
	"strings"
)

// TreeRow is one visible line of the file explorer.
type TreeRow struct {
	Depth int
	Name  string
	Path  string // full path for files, directory prefix for dirs
	IsDir bool
	IsNew bool
}

type treeNode struct {
	name     string
	dir      string
	file     string // entry path when a file ends at this node
	isNew    bool
	children map[string]*treeNode
}

// BuildTree lays the file set out as a directory tree. Siblings are sorted
// by name with directories before files. A node that is both a file and a
// directory prefix gets one row of each kind.
func BuildTree(fs *FileSet) []TreeRow {
	root := &treeNode{children: map[string]*treeNode{}}
	for _, e := range fs.Entries() {
		var segs []string
		for _, p := range strings.Split(e.Path, "/") {
			if p != "" {
				segs = append(segs, p)
			}
		}
		if len(segs) == 0 {
			segs = []string{e.Path}
		}
		cur := root
		for i, p := range segs {
			child, ok := cur.children[p]
			if !ok {
				child = &treeNode{
					name:     p,
					dir:      strings.Join(segs[:i+1], "/"),
					children: map[string]*treeNode{},
				}
				cur.children[p] = child
			}
			cur = child
		}
		cur.file = e.Path
		cur.isNew = e.IsNew
	}

	var rows []TreeRow
	var walk func(n *treeNode, depth int)
	walk = func(n *treeNode, depth int) {
		var dirs, files []*treeNode
		for _, c := range n.children {
			if len(c.children) > 0 {
				dirs = append(dirs, c)
			}
			if c.file != "" {
				files = append(files, c)
			}
		}
		byName := func(ns []*treeNode) {
			sort.Slice(ns, func(i, j int) bool { return ns[i].name < ns[j].name })
		}
		byName(dirs)
		byName(files)
		for _, c := range dirs {
			rows = append(rows, TreeRow{Depth: depth, Name: c.name, Path: c.dir, IsDir: true})
			walk(c, depth+1)
		}
		for _, c := range files {
			rows = append(rows, TreeRow{Depth: depth, Name: c.name, Path: c.file, IsNew: c.isNew})
		}
	}
	walk(root, 0)
	return rows
}
