package projects

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/Protocol-Lattice/hue-playground/src/workspace"
)

//go:embed data
var bundled embed.FS

const manifestName = "projects.yaml"

var ErrUnknownProject = errors.New("unknown project")

// Project is one bundled example file set.
type Project struct {
	Key   string
	Name  string
	Files []workspace.FileEntry
}

// FileNames lists the project's paths in declaration order.
func (p Project) FileNames() []string {
	out := make([]string, len(p.Files))
	for i, f := range p.Files {
		out[i] = f.Path
	}
	return out
}

type manifest struct {
	Default  string `yaml:"default"`
	Projects []struct {
		Key   string   `yaml:"key"`
		Name  string   `yaml:"name"`
		Files []string `yaml:"files"`
	} `yaml:"projects"`
}

// Catalog holds the selectable projects in manifest order.
type Catalog struct {
	Default  string
	projects []Project
	byKey    map[string]int
}

// Bundled loads the projects compiled into the binary.
func Bundled() (*Catalog, error) {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads projects.yaml at the root of fsys. Each project's files live
// under a directory named after its key.
func Load(fsys fs.FS) (*Catalog, error) {
	raw, err := fs.ReadFile(fsys, manifestName)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", manifestName, err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", manifestName, err)
	}

	c := &Catalog{Default: m.Default, byKey: make(map[string]int, len(m.Projects))}
	for _, mp := range m.Projects {
		if mp.Key == "" {
			return nil, fmt.Errorf("%s: project without key", manifestName)
		}
		if _, dup := c.byKey[mp.Key]; dup {
			return nil, fmt.Errorf("%s: duplicate project %q", manifestName, mp.Key)
		}
		p := Project{Key: mp.Key, Name: mp.Name}
		for _, f := range mp.Files {
			b, err := fs.ReadFile(fsys, path.Join(mp.Key, f))
			if err != nil {
				return nil, fmt.Errorf("project %s: %w", mp.Key, err)
			}
			p.Files = append(p.Files, workspace.FileEntry{Path: f, Content: string(b)})
		}
		c.byKey[mp.Key] = len(c.projects)
		c.projects = append(c.projects, p)
	}
	if c.Default == "" && len(c.projects) > 0 {
		c.Default = c.projects[0].Key
	}
	if _, ok := c.byKey[c.Default]; !ok && c.Default != "" {
		return nil, fmt.Errorf("%s: default %q: %w", manifestName, c.Default, ErrUnknownProject)
	}
	return c, nil
}

// Get returns the project for key. The returned file slice is a copy.
func (c *Catalog) Get(key string) (Project, error) {
	i, ok := c.byKey[key]
	if !ok {
		return Project{}, fmt.Errorf("%q: %w", key, ErrUnknownProject)
	}
	p := c.projects[i]
	p.Files = append([]workspace.FileEntry(nil), p.Files...)
	return p, nil
}

func (c *Catalog) List() []Project {
	out := make([]Project, len(c.projects))
	copy(out, c.projects)
	return out
}
