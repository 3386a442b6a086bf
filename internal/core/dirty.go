package core

// Change names a mutation event. Every mutator reports exactly one Change to
// DirtyState.Mark, which owns the transition rules for both flags.
type Change int

const (
	ChangeRuleName Change = iota
	ChangeDescription
	ChangeParameters
	ChangeFormula
	ChangeFormulaSame
	ChangeWrap
	ChangeNeighborhood
	ChangeDataType
	ChangeAccuracy
	ChangeLocalMemory
	ChangeBlockSize
	ChangeChemicals
	ChangeCells
)

// needsReload reports whether the change invalidates the engine's built
// kernel or memory layout.
func (c Change) needsReload() bool {
	switch c {
	case ChangeFormula, ChangeDataType, ChangeLocalMemory, ChangeBlockSize:
		return true
	}
	return false
}

// DirtyState tracks unsaved changes and whether the engine must rebuild its
// internal representation before the next step.
type DirtyState struct {
	modified bool
	reload   bool
}

// NewDirtyState returns the initial state: unmodified, reload pending so the
// first step builds the engine.
func NewDirtyState() DirtyState {
	return DirtyState{reload: true}
}

// Mark records a mutation. Cell edits are not saved with the configuration,
// so ChangeCells leaves the modified flag alone.
func (d *DirtyState) Mark(c Change) {
	if c != ChangeCells {
		d.modified = true
	}
	if c.needsReload() {
		d.reload = true
	}
}

// Modified reports whether anything persisted changed since the last save.
func (d *DirtyState) Modified() bool { return d.modified }

// SetModified overrides the modified flag, e.g. after a save or a fresh load.
func (d *DirtyState) SetModified(m bool) { d.modified = m }

// NeedsReload reports whether a rebuild is pending.
func (d *DirtyState) NeedsReload() bool { return d.reload }

// RequestReload forces a rebuild without marking the configuration modified.
func (d *DirtyState) RequestReload() { d.reload = true }

// ClearReload is called by the engine once it has rebuilt.
func (d *DirtyState) ClearReload() { d.reload = false }
