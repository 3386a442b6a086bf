package core

import (
	"fmt"
	"log/slog"
	"strings"

	"rdcore/internal/document"
)

// PatternGenerator produces an engine's starting pattern and owns the
// initial_pattern_generator sub-document.
type PatternGenerator interface {
	// ReadFromNode replaces the generator from n. A nil n leaves an empty
	// generator. On error the previous generator is kept.
	ReadFromNode(n *document.Node) error
	AsNode(applyWhenLoading bool) *document.Node
	CreateDefault(chemicals int)
}

// Capabilities lists which optional mutators an engine accepts.
type Capabilities struct {
	Formula           bool
	Wrap              bool
	DataType          bool
	BlockSize         bool
	NumberOfChemicals bool
	Accuracy          bool
}

// BaseOptions configures NewBase.
type BaseOptions struct {
	RuleType     string
	Capabilities Capabilities
	Chemicals    int
	DataType     DataType
	Generator    PatternGenerator
	// Flip reverses one paint action on the engine's cells.
	Flip   FlipFunc
	Logger *slog.Logger
}

// Base holds the state every engine shares: the persisted configuration, its
// dirty flags and the paint undo log. Concrete engines embed it and supply
// cell storage and stepping.
type Base struct {
	caps     Capabilities
	ruleType string

	ruleName    string
	description string
	formula     string
	wrap        bool
	hood        Neighborhood
	dataType    DataType
	accuracy    Accuracy
	chemicals   int

	useLocalMemory bool
	blockSize      [3]int
	timesteps      int
	filename       string

	params    *ParameterStore
	undo      *UndoStack
	generator PatternGenerator
	dirty     DirtyState
	log       *slog.Logger
}

// NewBase returns shared engine state with the standard defaults: wrap on,
// vertex neighborhood, a reload pending and nothing modified.
func NewBase(opts BaseOptions) *Base {
	def := DefaultConfiguration()
	b := &Base{
		caps:      opts.Capabilities,
		ruleType:  opts.RuleType,
		wrap:      def.Wrap,
		hood:      def.Neighborhood,
		dataType:  opts.DataType,
		accuracy:  def.Accuracy,
		chemicals: opts.Chemicals,
		blockSize: [3]int{1, 1, 1},
		generator: opts.Generator,
		dirty:     NewDirtyState(),
		log:       opts.Logger,
	}
	if b.chemicals <= 0 {
		b.chemicals = def.NumberOfChemicals
	}
	if b.log == nil {
		b.log = slog.Default()
	}
	b.params = NewParameterStore(func() { b.dirty.Mark(ChangeParameters) })
	b.undo = NewUndoStack(opts.Flip)
	return b
}

// Logger returns the engine's logger.
func (b *Base) Logger() *slog.Logger {
	return b.log
}

func (b *Base) HasEditableFormula() bool {
	return b.caps.Formula
}

func (b *Base) HasEditableWrapOption() bool {
	return b.caps.Wrap
}

func (b *Base) HasEditableDataType() bool {
	return b.caps.DataType
}

func (b *Base) HasEditableBlockSize() bool {
	return b.caps.BlockSize
}

func (b *Base) HasEditableNumberOfChemicals() bool {
	return b.caps.NumberOfChemicals
}

func (b *Base) HasEditableAccuracyOption() bool {
	return b.caps.Accuracy
}

// RuleType returns e.g. "inbuilt", "formula" or "kernel".
func (b *Base) RuleType() string {
	return b.ruleType
}

func (b *Base) RuleName() string {
	return b.ruleName
}

func (b *Base) SetRuleName(s string) {
	b.ruleName = s
	b.dirty.Mark(ChangeRuleName)
}

func (b *Base) Description() string {
	return b.description
}

func (b *Base) SetDescription(s string) {
	b.description = s
	b.dirty.Mark(ChangeDescription)
}

// Formula returns the source snippet or kernel driving the rule.
func (b *Base) Formula() string {
	return b.formula
}

// SetFormula replaces the formula. Trailing whitespace is dropped, and a
// rebuild is requested only when the text actually changes.
func (b *Base) SetFormula(s string) error {
	if !b.caps.Formula {
		return fmt.Errorf("%w: formula", ErrNotEditable)
	}
	b.setFormula(s)
	return nil
}

func (b *Base) setFormula(s string) {
	s = strings.TrimRight(s, " \t\n\r")
	if s != b.formula {
		b.formula = s
		b.dirty.Mark(ChangeFormula)
		return
	}
	b.dirty.Mark(ChangeFormulaSame)
}

// Wrap reports whether the arena boundary wraps around.
func (b *Base) Wrap() bool {
	return b.wrap
}

func (b *Base) SetWrap(w bool) error {
	if !b.caps.Wrap {
		return fmt.Errorf("%w: wrap", ErrNotEditable)
	}
	b.wrap = w
	b.dirty.Mark(ChangeWrap)
	return nil
}

func (b *Base) Neighborhood() Neighborhood {
	return b.hood
}

func (b *Base) SetNeighborhood(n Neighborhood) {
	b.hood = n
	b.dirty.Mark(ChangeNeighborhood)
}

func (b *Base) DataType() DataType {
	return b.dataType
}

// SetDataType records a new precision. Engines wrap this to reallocate their
// cell storage.
func (b *Base) SetDataType(d DataType) error {
	if !b.caps.DataType {
		return fmt.Errorf("%w: data type", ErrNotEditable)
	}
	b.dataType = d
	b.dirty.Mark(ChangeDataType)
	return nil
}

func (b *Base) Accuracy() Accuracy {
	return b.accuracy
}

func (b *Base) SetAccuracy(a Accuracy) error {
	if !b.caps.Accuracy {
		return fmt.Errorf("%w: accuracy", ErrNotEditable)
	}
	b.accuracy = a
	b.dirty.Mark(ChangeAccuracy)
	return nil
}

func (b *Base) UseLocalMemory() bool {
	return b.useLocalMemory
}

// SetUseLocalMemory changes the kernel memory layout and requests a rebuild.
func (b *Base) SetUseLocalMemory(v bool) {
	b.useLocalMemory = v
	b.dirty.Mark(ChangeLocalMemory)
}

// BlockSize returns the work-group block dimensions.
func (b *Base) BlockSize() (x, y, z int) {
	return b.blockSize[0], b.blockSize[1], b.blockSize[2]
}

func (b *Base) SetBlockSize(x, y, z int) error {
	if !b.caps.BlockSize {
		return fmt.Errorf("%w: block size", ErrNotEditable)
	}
	if x < 1 || y < 1 || z < 1 {
		return fmt.Errorf("%w: block size %dx%dx%d", ErrInvalidFormat, x, y, z)
	}
	b.blockSize = [3]int{x, y, z}
	b.dirty.Mark(ChangeBlockSize)
	return nil
}

func (b *Base) NumberOfChemicals() int {
	return b.chemicals
}

// SetChemicalCount records a new chemical count. Engines wrap this in
// SetNumberOfChemicals to resize their storage.
func (b *Base) SetChemicalCount(n int) error {
	if !b.caps.NumberOfChemicals {
		return fmt.Errorf("%w: number of chemicals", ErrNotEditable)
	}
	if n < 1 {
		return fmt.Errorf("%w: number of chemicals %d", ErrInvalidFormat, n)
	}
	b.chemicals = n
	b.dirty.Mark(ChangeChemicals)
	return nil
}

// TimestepsTaken returns the steps advanced since the pattern was generated.
func (b *Base) TimestepsTaken() int {
	return b.timesteps
}

// AddTimesteps is called by engines after advancing.
func (b *Base) AddTimesteps(n int) {
	b.timesteps += n
}

// ResetTimesteps is called by engines when a new pattern is generated.
func (b *Base) ResetTimesteps() {
	b.timesteps = 0
}

func (b *Base) Filename() string {
	return b.filename
}

func (b *Base) SetFilename(s string) {
	b.filename = s
}

func (b *Base) IsModified() bool {
	return b.dirty.Modified()
}

func (b *Base) SetModified(m bool) {
	b.dirty.SetModified(m)
}

func (b *Base) NeedsReload() bool {
	return b.dirty.NeedsReload()
}

func (b *Base) RequestReload() {
	b.dirty.RequestReload()
}

func (b *Base) ClearReload() {
	b.dirty.ClearReload()
}

func (b *Base) MarkCellsChanged() {
	b.dirty.Mark(ChangeCells)
}

func (b *Base) Parameters() *ParameterStore {
	return b.params
}

// Generator returns the initial pattern generator.
func (b *Base) Generator() PatternGenerator {
	return b.generator
}

// CreateDefaultInitialPatternGenerator installs a generator suitable for
// Gray-Scott so a new pattern starts working immediately.
func (b *Base) CreateDefaultInitialPatternGenerator(chemicals int) {
	if b.generator != nil {
		b.generator.CreateDefault(chemicals)
	}
}

func (b *Base) CanUndo() bool {
	return b.undo.CanUndo()
}

func (b *Base) CanRedo() bool {
	return b.undo.CanRedo()
}

// Undo reverses the most recent group of paint actions.
func (b *Base) Undo() error {
	if err := b.undo.Undo(); err != nil {
		return err
	}
	b.dirty.Mark(ChangeCells)
	return nil
}

// Redo re-applies the next undone group of paint actions.
func (b *Base) Redo() error {
	if err := b.undo.Redo(); err != nil {
		return err
	}
	b.dirty.Mark(ChangeCells)
	return nil
}

// SetUndoPoint closes the current group, e.g. on mouse up.
func (b *Base) SetUndoPoint() {
	b.undo.CloseGroup()
}

// StorePaintAction is called by engines before overwriting a cell during an
// undoable edit.
func (b *Base) StorePaintAction(chemical, cell int, old float64) {
	b.undo.Record(chemical, cell, old)
	b.dirty.Mark(ChangeCells)
}

// ResetUndo forgets all paint actions, e.g. after the arena is regenerated.
func (b *Base) ResetUndo() {
	b.undo.Reset()
}

// UndoActions returns a copy of the paint log.
func (b *Base) UndoActions() []PaintAction {
	return b.undo.Actions()
}

// Configuration snapshots the persisted fields.
func (b *Base) Configuration() Configuration {
	return Configuration{
		RuleName:          b.ruleName,
		RuleType:          b.ruleType,
		Description:       b.description,
		Wrap:              b.wrap,
		Neighborhood:      b.hood,
		Parameters:        b.params.All(),
		Formula:           b.formula,
		NumberOfChemicals: b.chemicals,
		DataType:          b.dataType,
		Accuracy:          b.accuracy,
	}
}

// InitializeFromNode loads rd. The document and its generator are fully
// parsed before any field changes, so a failed load leaves the engine as it
// was. The bool result reports that the document is newer than this build.
func (b *Base) InitializeFromNode(rd *document.Node) (bool, error) {
	cfg, update, err := DecodeConfiguration(rd, b.Configuration())
	if err != nil {
		return update, err
	}
	if update {
		b.log.Warn("document format is newer than supported, results may be incomplete",
			"format_version_supported", FormatVersion)
	}
	if b.generator != nil {
		if err := b.generator.ReadFromNode(GeneratorNode(rd)); err != nil {
			return update, fmt.Errorf("%s: %w", elemGenerator, err)
		}
	}
	b.apply(cfg)
	b.log.Debug("configuration loaded",
		"rule", cfg.RuleName,
		"type", cfg.RuleType,
		"neighborhood", cfg.Neighborhood.String(),
		"parameters", len(cfg.Parameters))
	return update, nil
}

func (b *Base) apply(cfg Configuration) {
	b.SetRuleName(cfg.RuleName)
	b.SetDescription(cfg.Description)
	b.wrap = cfg.Wrap
	b.dirty.Mark(ChangeWrap)
	b.SetNeighborhood(cfg.Neighborhood)
	b.params.Replace(cfg.Parameters)

	if b.caps.Formula {
		b.setFormula(cfg.Formula)
	}
	if b.caps.DataType && cfg.DataType != b.dataType {
		b.dataType = cfg.DataType
		b.dirty.Mark(ChangeDataType)
	}
	if b.caps.Accuracy && cfg.Accuracy != b.accuracy {
		b.accuracy = cfg.Accuracy
		b.dirty.Mark(ChangeAccuracy)
	}
	if cfg.NumberOfChemicals != b.chemicals {
		if b.caps.NumberOfChemicals {
			b.chemicals = cfg.NumberOfChemicals
			b.dirty.Mark(ChangeChemicals)
		} else {
			b.log.Debug("ignoring number_of_chemicals for fixed engine",
				"document", cfg.NumberOfChemicals, "engine", b.chemicals)
		}
	}
}

// AsNode encodes the configuration and generator as an RD element.
func (b *Base) AsNode(generateInitialPatternWhenLoading bool) *document.Node {
	opts := EncodeOptions{
		WrapEditable:     b.caps.Wrap,
		FormulaEditable:  b.caps.Formula,
		DataTypeEditable: b.caps.DataType,
		AccuracyEditable: b.caps.Accuracy,
	}
	if b.generator != nil {
		opts.Generator = b.generator.AsNode(generateInitialPatternWhenLoading)
	}
	return EncodeConfiguration(b.Configuration(), opts)
}
