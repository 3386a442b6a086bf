package app

import (
	"fmt"
	"log/slog"

	"rdcore/internal/core"
	"rdcore/internal/document"
)

type patternLoader interface {
	ApplyWhenLoading() bool
}

// Open constructs the named engine. When path is not empty the document is
// loaded into it, and the initial pattern is regenerated if the document asks
// for that. The returned engine is unmodified. The bool reports that the
// document was written by a newer format version and should be updated.
func Open(name string, opts map[string]string, path string) (core.Engine, bool, error) {
	factory, ok := core.Lookup(name)
	if !ok {
		return nil, false, fmt.Errorf("%w: engine %q (have %v)", core.ErrNotFound, name, core.EngineNames())
	}
	e := factory(opts)
	if path == "" {
		return e, false, nil
	}
	update, err := Load(e, path)
	if err != nil {
		return nil, false, err
	}
	return e, update, nil
}

// Load reads path into an existing engine and reports whether an update of
// the program is recommended to read it fully.
func Load(e core.Engine, path string) (bool, error) {
	root, err := document.ReadFile(path)
	if err != nil {
		return false, err
	}
	rd, err := core.FindRD(root)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	update, err := e.InitializeFromNode(rd)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if l, ok := e.(patternLoader); !ok || l.ApplyWhenLoading() {
		if err := e.GenerateInitialPattern(); err != nil {
			return update, err
		}
	}
	e.SetFilename(path)
	e.SetModified(false)
	slog.Debug("pattern loaded", "path", path, "rule", e.RuleName(), "update_recommended", update)
	return update, nil
}

// Save writes the engine's configuration to path, in the encoding chosen by
// the extension, and clears the modified flag.
func Save(e core.Engine, path string) error {
	if err := document.WriteFile(path, e.AsNode(true)); err != nil {
		return err
	}
	e.SetFilename(path)
	e.SetModified(false)
	slog.Debug("pattern saved", "path", path, "rule", e.RuleName())
	return nil
}
