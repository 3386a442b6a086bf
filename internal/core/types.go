package core

import (
	"image"
	"sort"

	"rdcore/internal/document"
)

// Size describes the dimensions of a simulation arena.
type Size struct {
	W int
	H int
}

// Steppable advances a simulation.
type Steppable interface {
	// Update advances by n steps, rebuilding first if a reload is pending.
	Update(n int) error
	TimestepsTaken() int
}

// Parameterizable exposes the rule's parameter list.
type Parameterizable interface {
	Parameters() *ParameterStore
}

// Undoable exposes grouped undo/redo of paint edits.
type Undoable interface {
	CanUndo() bool
	CanRedo() bool
	Undo() error
	Redo() error
	SetUndoPoint()
}

// Serializable loads and stores the persisted configuration.
type Serializable interface {
	// InitializeFromNode loads an RD element. The bool reports that the
	// document was written by a newer format version.
	InitializeFromNode(rd *document.Node) (bool, error)
	AsNode(generateInitialPatternWhenLoading bool) *document.Node
}

// Renderable projects the arena for display.
type Renderable interface {
	Size() Size
	Is2DImageAvailable() bool
	// As2DImage maps chemical values in [low, high] onto a grayscale ramp.
	As2DImage(chemical int, low, high float64) (image.Image, error)
}

// Chemistry covers the per-cell data held by an engine.
type Chemistry interface {
	NumberOfChemicals() int
	SetNumberOfChemicals(n int, reallocate bool) error
	NumberOfCells() int
	Data(chemical int) ([]float64, error)
	// MemorySize reports the bytes needed for the cell data at the
	// current precision.
	MemorySize() int
	GenerateInitialPattern() error
	BlankImage(value float64)
}

// Painter edits individual cells. Edits are recorded for undo.
type Painter interface {
	Value(x, y, chemical int) (float64, error)
	SetValue(x, y, chemical int, v float64) error
	SetValuesInRadius(x, y, chemical int, r, v float64) error
}

// Editable lets callers discover which mutators an engine accepts. Mutators
// whose flag is false return ErrNotEditable.
type Editable interface {
	HasEditableFormula() bool
	HasEditableWrapOption() bool
	HasEditableDataType() bool
	HasEditableBlockSize() bool
	HasEditableNumberOfChemicals() bool
	HasEditableAccuracyOption() bool
}

// Configurable reads and edits the persisted configuration. Setters that
// return an error fail with ErrNotEditable when the engine's matching
// capability flag is false.
type Configurable interface {
	RuleName() string
	SetRuleName(s string)
	RuleType() string
	Description() string
	SetDescription(s string)
	Formula() string
	SetFormula(s string) error
	Wrap() bool
	SetWrap(w bool) error
	Neighborhood() Neighborhood
	SetNeighborhood(n Neighborhood)
	DataType() DataType
	SetDataType(d DataType) error
	Accuracy() Accuracy
	SetAccuracy(a Accuracy) error
	UseLocalMemory() bool
	SetUseLocalMemory(v bool)
	BlockSize() (x, y, z int)
	SetBlockSize(x, y, z int) error
	Configuration() Configuration

	Filename() string
	SetFilename(s string)
	IsModified() bool
	SetModified(m bool)
	NeedsReload() bool
}

// Engine is the full contract of a simulation back-end.
type Engine interface {
	Steppable
	Parameterizable
	Undoable
	Serializable
	Renderable
	Chemistry
	Painter
	Editable
	Configurable

	FileExtension() string
}

// Factory constructs an Engine from flag-style key/value options.
type Factory func(cfg map[string]string) Engine

var engines = map[string]Factory{}

// Register adds an engine factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	engines[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	f, ok := engines[name]
	return f, ok
}

// EngineNames lists registered engines in sorted order.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
