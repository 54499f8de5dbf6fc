package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	serrors "github.com/scriptbind/cli/internal/errors"
)

// Snapshot is a host bundler's module graph, dumped to JSON after the
// host's own resolution and dead-code elimination pass. It satisfies
// Adapter and is the CLI's input format.
//
// Layout:
//
//	{
//	  "entrypoints": [{"name": "main", "chunks": ["main"]}],
//	  "chunks": {
//	    "main": {"runtime": ["main"], "modules": ["./src/index.ts"], "entryModules": ["./src/index.ts"]}
//	  },
//	  "modules": {
//	    "./src/index.ts": {
//	      "resource": "/abs/src/index.ts",
//	      "source": "function foo() {}\n",
//	      "sources": {"main": "function foo() {}\n"},
//	      "exports": [{"name": "foo", "provided": true}],
//	      "otherExports": false
//	    }
//	  }
//	}
type Snapshot struct {
	entrypoints []snapshotEntrypoint
	chunks      map[string]*snapshotChunk
	modules     map[string]*snapshotModule
}

type snapshotFile struct {
	Entrypoints []snapshotEntrypoint       `json:"entrypoints"`
	Chunks      map[string]*snapshotChunk  `json:"chunks"`
	Modules     map[string]*snapshotModule `json:"modules"`
}

type snapshotEntrypoint struct {
	Name   string   `json:"name"`
	Chunks []string `json:"chunks"`
}

type snapshotChunk struct {
	id           string
	Runtime      []string `json:"runtime,omitempty"`
	Modules      []string `json:"modules"`
	EntryModules []string `json:"entryModules,omitempty"`
}

type snapshotModule struct {
	id           string
	Resource     string            `json:"resource,omitempty"`
	Source       string            `json:"source,omitempty"`
	Sources      map[string]string `json:"sources,omitempty"`
	Exports      []snapshotExport  `json:"exports,omitempty"`
	OtherExports bool              `json:"otherExports,omitempty"`
}

type snapshotExport struct {
	Name     string          `json:"name"`
	Provided bool            `json:"provided,omitempty"`
	Target   *snapshotTarget `json:"target,omitempty"`
}

type snapshotTarget struct {
	Module string `json:"module"`
	Export string `json:"export"`
}

// ID implements Chunk.
func (c *snapshotChunk) ID() string { return c.id }

// ID implements Module.
func (m *snapshotModule) ID() string { return m.id }

// ParseSnapshot decodes a graph snapshot from raw JSON.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding graph snapshot: %w", err)
	}

	s := &Snapshot{
		entrypoints: file.Entrypoints,
		chunks:      file.Chunks,
		modules:     file.Modules,
	}
	for id, c := range s.chunks {
		if c == nil {
			return nil, serrors.Wrap(serrors.ErrInvariant,
				fmt.Sprintf("graph snapshot: chunk %q has no body", id))
		}
		c.id = id
	}
	for id, m := range s.modules {
		if m == nil {
			return nil, serrors.Wrap(serrors.ErrInvariant,
				fmt.Sprintf("graph snapshot: module %q has no body", id))
		}
		m.id = id
	}

	// Referential integrity up front, so the engine can trust lookups.
	for _, ep := range s.entrypoints {
		for _, cid := range ep.Chunks {
			if _, ok := s.chunks[cid]; !ok {
				return nil, serrors.Wrap(serrors.ErrInvariant,
					fmt.Sprintf("graph snapshot: entrypoint %q references unknown chunk %q", ep.Name, cid))
			}
		}
	}
	for cid, c := range s.chunks {
		for _, mid := range append(append([]string{}, c.Modules...), c.EntryModules...) {
			if _, ok := s.modules[mid]; !ok {
				return nil, serrors.Wrap(serrors.ErrInvariant,
					fmt.Sprintf("graph snapshot: chunk %q references unknown module %q", cid, mid))
			}
		}
	}

	return s, nil
}

// LoadSnapshot reads and decodes a graph snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, serrors.NewNotFoundError(
				fmt.Sprintf("graph snapshot %s does not exist", path),
				path,
				"run the host bundler with snapshot output enabled first",
			)
		}
		return nil, fmt.Errorf("reading graph snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// Entrypoints implements Adapter.
func (s *Snapshot) Entrypoints() []Entrypoint {
	out := make([]Entrypoint, 0, len(s.entrypoints))
	for _, ep := range s.entrypoints {
		chunks := make([]Chunk, 0, len(ep.Chunks))
		for _, cid := range ep.Chunks {
			chunks = append(chunks, s.chunks[cid])
		}
		out = append(out, Entrypoint{Name: ep.Name, Chunks: chunks})
	}
	return out
}

// ModulesOf implements Adapter.
func (s *Snapshot) ModulesOf(c Chunk) []Module {
	sc, ok := c.(*snapshotChunk)
	if !ok {
		return nil
	}
	return s.lookup(sc.Modules)
}

// EntryModulesOf implements Adapter.
func (s *Snapshot) EntryModulesOf(c Chunk) []Module {
	sc, ok := c.(*snapshotChunk)
	if !ok {
		return nil
	}
	return s.lookup(sc.EntryModules)
}

// RuntimeOf implements Adapter.
func (s *Snapshot) RuntimeOf(c Chunk) ContextToken {
	sc, ok := c.(*snapshotChunk)
	if !ok {
		return ContextToken{}
	}
	return NewContextToken(sc.Runtime...)
}

// ExportsOf implements Adapter.
func (s *Snapshot) ExportsOf(m Module) ExportsInfo {
	sm, ok := m.(*snapshotModule)
	if !ok {
		return ExportsInfo{}
	}

	exports := make([]ExportInfo, 0, len(sm.Exports))
	for _, e := range sm.Exports {
		info := ExportInfo{Name: e.Name, Provided: e.Provided}
		if e.Target != nil {
			if target, found := s.modules[e.Target.Module]; found {
				info.Target = &ExportTarget{Module: target, Export: e.Target.Export}
			}
		}
		exports = append(exports, info)
	}

	return ExportsInfo{
		Exports:              exports,
		OtherExportsProvided: sm.OtherExports,
	}
}

// SourceOf implements Adapter. When the token carries runtime names, the
// matching keyed variant wins (keys visited in sorted order so repeated
// runs pick the same variant); the unkeyed source is the fallback.
func (s *Snapshot) SourceOf(m Module, token ContextToken) string {
	sm, ok := m.(*snapshotModule)
	if !ok {
		return ""
	}

	if !token.Empty() && len(sm.Sources) > 0 {
		keys := make([]string, 0, len(sm.Sources))
		for k := range sm.Sources {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if token.Contains(k) {
				return sm.Sources[k]
			}
		}
	}

	return sm.Source
}

// ResourcePath implements Adapter.
func (s *Snapshot) ResourcePath(m Module) string {
	sm, ok := m.(*snapshotModule)
	if !ok {
		return ""
	}
	return sm.Resource
}

func (s *Snapshot) lookup(ids []string) []Module {
	out := make([]Module, 0, len(ids))
	for _, id := range ids {
		if m, ok := s.modules[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

var _ Adapter = (*Snapshot)(nil)
