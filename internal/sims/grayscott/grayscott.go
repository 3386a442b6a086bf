// Package grayscott implements the inbuilt two-chemical Gray-Scott
// reaction-diffusion engine on the CPU.
package grayscott

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"rdcore/internal/core"
	"rdcore/internal/document"
	"rdcore/internal/pattern"
	"rdcore/internal/render"
)

// RuleName is the rule name written to documents.
const RuleName = "Gray-Scott"

const description = "The Gray-Scott model: a + 2b -> 3b, b -> inert.\n" +
	"Chemical a is fed at rate F and b is removed at rate k+F."

// Parameter names in document order.
const (
	ParamTimestep = "timestep"
	ParamDa       = "D_a"
	ParamDb       = "D_b"
	ParamK        = "k"
	ParamF        = "F"
)

var defaultParams = []core.Parameter{
	{Name: ParamTimestep, Value: 1},
	{Name: ParamDa, Value: 0.082},
	{Name: ParamDb, Value: 0.041},
	{Name: ParamK, Value: 0.064},
	{Name: ParamF, Value: 0.035},
}

// Engine is the Gray-Scott simulation.
type Engine struct {
	*core.Base

	cfg  Config
	gen  *pattern.Generator
	cur  *core.Grid
	next *core.Grid
}

// New creates an engine with default parameters and a generated pattern. A
// nil logger uses slog.Default.
func New(cfg Config, logger *slog.Logger) *Engine {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	e := &Engine{cfg: cfg, gen: pattern.New()}
	e.Base = core.NewBase(core.BaseOptions{
		RuleType:     "inbuilt",
		Capabilities: core.Capabilities{Wrap: true, DataType: true},
		Chemicals:    2,
		DataType:     cfg.DataType,
		Generator:    e.gen,
		Flip:         e.flipPaintAction,
		Logger:       logger,
	})
	e.SetRuleName(RuleName)
	e.SetDescription(description)
	e.Parameters().Replace(defaultParams)
	e.gen.SetSeed(cfg.Seed)
	e.CreateDefaultInitialPatternGenerator(2)
	e.allocate()
	e.gen.Apply(e.cur)
	e.SetModified(false)
	return e
}

func init() {
	core.Register("grayscott", func(cfg map[string]string) core.Engine {
		return New(FromMap(cfg), nil)
	})
}

func (e *Engine) allocate() {
	e.cur = core.NewGrid(e.cfg.Width, e.cfg.Height, e.NumberOfChemicals(), e.DataType())
	e.next = core.NewGrid(e.cfg.Width, e.cfg.Height, e.NumberOfChemicals(), e.DataType())
}

// FileExtension is the suffix for saved patterns.
func (e *Engine) FileExtension() string { return "xml" }

// Size returns the arena dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.cur.W, H: e.cur.H} }

// NumberOfCells returns the cells per chemical.
func (e *Engine) NumberOfCells() int { return e.cur.Cells() }

// MemorySize reports the bytes held by the current field.
func (e *Engine) MemorySize() int { return e.cur.MemorySize() }

// Is2DImageAvailable is always true for this engine.
func (e *Engine) Is2DImageAvailable() bool { return true }

// SetNumberOfChemicals always fails: Gray-Scott has exactly two chemicals.
func (e *Engine) SetNumberOfChemicals(n int, reallocate bool) error {
	return e.SetChemicalCount(n)
}

// SetDataType changes the storage precision. The arena is reallocated and
// the initial pattern regenerated.
func (e *Engine) SetDataType(d core.DataType) error {
	if d == e.DataType() {
		return nil
	}
	if err := e.Base.SetDataType(d); err != nil {
		return err
	}
	e.allocate()
	return e.GenerateInitialPattern()
}

// InitializeFromNode loads rd. Documents for other rule types are rejected
// before anything changes; the stored rule name is taken as-is. When the
// stored precision differs from the current one the arena is reallocated
// blank; callers regenerate if the generator asks for it.
func (e *Engine) InitializeFromNode(rd *document.Node) (bool, error) {
	if rd != nil {
		if rule := rd.Child("rule"); rule != nil {
			if t, ok := rule.Attr("type"); ok && t != e.RuleType() {
				return false, &core.DocumentError{Element: "rule", Attribute: "type", Value: t, Err: core.ErrUnrecognizedValue}
			}
		}
	}
	prev := e.DataType()
	update, err := e.Base.InitializeFromNode(rd)
	if err != nil {
		return update, err
	}
	if e.DataType() != prev {
		e.allocate()
		e.ResetUndo()
		e.ResetTimesteps()
	}
	return update, nil
}

// ApplyWhenLoading reports whether the last loaded document asked for its
// pattern to be generated immediately.
func (e *Engine) ApplyWhenLoading() bool { return e.gen.ApplyWhenLoading() }

// GenerateInitialPattern paints the generator's overlays and restarts the
// step count. Paint history is dropped.
func (e *Engine) GenerateInitialPattern() error {
	e.gen.Apply(e.cur)
	e.ResetTimesteps()
	e.ResetUndo()
	return nil
}

// BlankImage sets every cell of every chemical to value.
func (e *Engine) BlankImage(value float64) {
	for c := 0; c < e.cur.Chemicals(); c++ {
		e.cur.Fill(c, value)
	}
	e.ResetTimesteps()
	e.ResetUndo()
}

// Data returns a copy of one chemical's field.
func (e *Engine) Data(chemical int) ([]float64, error) {
	if err := e.checkChemical(chemical); err != nil {
		return nil, err
	}
	return append([]float64(nil), e.cur.Values(chemical)...), nil
}

// As2DImage renders one chemical as grayscale.
func (e *Engine) As2DImage(chemical int, low, high float64) (image.Image, error) {
	if err := e.checkChemical(chemical); err != nil {
		return nil, err
	}
	return render.Grayscale(e.cur.Values(chemical), e.cur.W, e.cur.H, low, high), nil
}

func (e *Engine) checkChemical(chemical int) error {
	if chemical < 0 || chemical >= e.cur.Chemicals() {
		return fmt.Errorf("%w: chemical %d", core.ErrOutOfRange, chemical)
	}
	return nil
}

func (e *Engine) checkCell(x, y, chemical int) error {
	if err := e.checkChemical(chemical); err != nil {
		return err
	}
	if !e.cur.Contains(x, y) {
		return fmt.Errorf("%w: cell (%d,%d)", core.ErrOutOfRange, x, y)
	}
	return nil
}

// Value reads one cell.
func (e *Engine) Value(x, y, chemical int) (float64, error) {
	if err := e.checkCell(x, y, chemical); err != nil {
		return 0, err
	}
	return e.cur.At(chemical, e.cur.Index(x, y)), nil
}

// SetValue paints one cell and records the edit for undo.
func (e *Engine) SetValue(x, y, chemical int, v float64) error {
	if err := e.checkCell(x, y, chemical); err != nil {
		return err
	}
	e.paint(chemical, e.cur.Index(x, y), v)
	return nil
}

// SetValuesInRadius paints every cell whose center lies within r of (x, y).
// Cells past the edge are clipped, or wrapped when the arena wraps.
func (e *Engine) SetValuesInRadius(x, y, chemical int, r, v float64) error {
	if err := e.checkCell(x, y, chemical); err != nil {
		return err
	}
	if r < 0 || math.IsNaN(r) {
		return fmt.Errorf("%w: radius %v", core.ErrInvalidFormat, r)
	}
	// Every wrapped cell has a nearest copy within max(W, H) of (x, y), so
	// a wider span only revisits cells.
	span := max(e.cur.W, e.cur.H)
	if r < float64(span) {
		span = int(math.Ceil(r))
	}
	minX, maxX, minY, maxY := -span, span, -span, span
	if !e.Wrap() {
		minX, maxX = max(minX, -x), min(maxX, e.cur.W-1-x)
		minY, maxY = max(minY, -y), min(maxY, e.cur.H-1-y)
	}
	seen := make(map[int]bool)
	for dy := minY; dy <= maxY; dy++ {
		for dx := minX; dx <= maxX; dx++ {
			if math.Hypot(float64(dx), float64(dy)) > r {
				continue
			}
			px, py := x+dx, y+dy
			if e.Wrap() {
				px, py = e.cur.Wrap(px, py)
			} else if !e.cur.Contains(px, py) {
				continue
			}
			idx := e.cur.Index(px, py)
			if seen[idx] {
				continue
			}
			seen[idx] = true
			e.paint(chemical, idx, v)
		}
	}
	return nil
}

func (e *Engine) paint(chemical, cell int, v float64) {
	e.StorePaintAction(chemical, cell, e.cur.At(chemical, cell))
	e.cur.Set(chemical, cell, v)
}

func (e *Engine) flipPaintAction(a *core.PaintAction) {
	old := e.cur.At(a.Chemical, a.Cell)
	e.cur.Set(a.Chemical, a.Cell, a.Value)
	a.Value = old
}

type rates struct {
	dt, da, db, k, f float64
}

func (e *Engine) readRates() (rates, error) {
	var r rates
	params := e.Parameters()
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{ParamTimestep, &r.dt},
		{ParamDa, &r.da},
		{ParamDb, &r.db},
		{ParamK, &r.k},
		{ParamF, &r.f},
	} {
		v, err := params.ValueByName(p.name)
		if err != nil {
			return r, err
		}
		*p.dst = v
	}
	return r, nil
}

func (e *Engine) rebuild() {
	if e.next.DataType() != e.DataType() || e.cur.DataType() != e.DataType() {
		e.allocate()
	}
	e.ClearReload()
	e.Logger().Debug("engine rebuilt",
		"rule", e.RuleName(),
		"data_type", e.DataType().String(),
		"neighborhood", e.Neighborhood().String())
}

// Update advances the simulation by n steps.
func (e *Engine) Update(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d steps", core.ErrInvalidOperation, n)
	}
	if e.NeedsReload() {
		e.rebuild()
	}
	r, err := e.readRates()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		e.step(r)
	}
	e.AddTimesteps(n)
	return nil
}

func (e *Engine) step(r rates) {
	w, h := e.cur.W, e.cur.H
	a, b := e.cur.Values(0), e.cur.Values(1)
	lap := e.laplacian()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := e.cur.Index(x, y)
			av, bv := a[i], b[i]
			abb := av * bv * bv
			da := r.da*lap(a, x, y) - abb + r.f*(1-av)
			db := r.db*lap(b, x, y) + abb - (r.k+r.f)*bv
			e.next.Set(0, i, av+r.dt*da)
			e.next.Set(1, i, bv+r.dt*db)
		}
	}
	e.cur, e.next = e.next, e.cur
}

// laplacian returns the discrete Laplacian for the current neighborhood and
// boundary. Without wrap the edge cells see a zero-flux boundary.
func (e *Engine) laplacian() func(vals []float64, x, y int) float64 {
	g := e.cur
	at := func(vals []float64, x, y int) float64 {
		if e.Wrap() {
			x, y = g.Wrap(x, y)
		} else {
			x, y = g.Clamp(x, y)
		}
		return vals[g.Index(x, y)]
	}
	if e.Neighborhood() == core.VertexNeighbors {
		return func(vals []float64, x, y int) float64 {
			c := vals[g.Index(x, y)]
			orth := at(vals, x-1, y) + at(vals, x+1, y) + at(vals, x, y-1) + at(vals, x, y+1)
			diag := at(vals, x-1, y-1) + at(vals, x+1, y-1) + at(vals, x-1, y+1) + at(vals, x+1, y+1)
			return (4*orth + diag - 20*c) / 6
		}
	}
	return func(vals []float64, x, y int) float64 {
		c := vals[g.Index(x, y)]
		return at(vals, x-1, y) + at(vals, x+1, y) + at(vals, x, y-1) + at(vals, x, y+1) - 4*c
	}
}

var _ core.Engine = (*Engine)(nil)
