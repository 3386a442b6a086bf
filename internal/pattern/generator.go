// Package pattern builds the starting state of a simulation from a list of
// overlays, each painting one chemical with a fill over a set of shapes.
package pattern

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"rdcore/internal/core"
	"rdcore/internal/document"
)

// Op combines an overlay's fill with the existing cell value.
type Op int

const (
	Overwrite Op = iota
	Add
	Multiply
)

var opNames = [...]string{Overwrite: "overwrite", Add: "add", Multiply: "multiply"}

func (o Op) String() string { return opNames[o] }

func (o Op) apply(old, v float64) float64 {
	switch o {
	case Add:
		return old + v
	case Multiply:
		return old * v
	default:
		return v
	}
}

// FillKind selects how overlay values are produced.
type FillKind int

const (
	Constant FillKind = iota
	WhiteNoise
)

// Fill produces the values an overlay paints.
type Fill struct {
	Kind  FillKind
	Value float64
	Low   float64
	High  float64
}

func (f Fill) sample(rng *RNG) float64 {
	if f.Kind == WhiteNoise {
		return rng.Between(f.Low, f.High)
	}
	return f.Value
}

// ShapeKind selects the region an overlay covers.
type ShapeKind int

const (
	Everywhere ShapeKind = iota
	Rectangle
	Circle
)

// Shape is a region in relative coordinates, where (0,0) and (1,1) are
// opposite corners of the arena.
type Shape struct {
	Kind           ShapeKind
	X0, Y0, X1, Y1 float64
	X, Y, Radius   float64
}

func (s Shape) contains(fx, fy float64) bool {
	switch s.Kind {
	case Rectangle:
		return fx >= s.X0 && fx <= s.X1 && fy >= s.Y0 && fy <= s.Y1
	case Circle:
		return math.Hypot(fx-s.X, fy-s.Y) <= s.Radius
	default:
		return true
	}
}

// Overlay paints one chemical.
type Overlay struct {
	Chemical int
	Op       Op
	Fill     Fill
	Shapes   []Shape
}

// Generator is the initial pattern generator. It implements
// core.PatternGenerator.
type Generator struct {
	overlays         []Overlay
	zeroFirst        bool
	applyWhenLoading bool
	seed             int64
}

// New returns an empty generator that zeroes the arena.
func New() *Generator {
	return &Generator{zeroFirst: true, applyWhenLoading: true, seed: 1}
}

// Overlays returns a copy of the overlay list.
func (g *Generator) Overlays() []Overlay {
	return append([]Overlay(nil), g.overlays...)
}

// AddOverlay appends an overlay.
func (g *Generator) AddOverlay(o Overlay) {
	g.overlays = append(g.overlays, o)
}

// ApplyWhenLoading reports whether a loaded pattern asked to be generated
// immediately.
func (g *Generator) ApplyWhenLoading() bool { return g.applyWhenLoading }

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// CreateDefault installs overlays suitable for Gray-Scott: a saturated first
// chemical with a noisy square of the second in the middle.
func (g *Generator) CreateDefault(chemicals int) {
	g.overlays = nil
	g.zeroFirst = true
	if chemicals < 1 {
		return
	}
	center := Shape{Kind: Rectangle, X0: 0.4, Y0: 0.4, X1: 0.6, Y1: 0.6}
	everywhere := []Shape{{Kind: Everywhere}}
	g.AddOverlay(Overlay{Chemical: 0, Op: Overwrite, Fill: Fill{Value: 1}, Shapes: everywhere})
	if chemicals >= 2 {
		g.AddOverlay(Overlay{Chemical: 1, Op: Overwrite, Fill: Fill{Value: 0}, Shapes: everywhere})
		g.AddOverlay(Overlay{Chemical: 0, Op: Overwrite, Fill: Fill{Value: 0.5}, Shapes: []Shape{center}})
		g.AddOverlay(Overlay{Chemical: 1, Op: Overwrite, Fill: Fill{Value: 0.25}, Shapes: []Shape{center}})
		g.AddOverlay(Overlay{Chemical: 1, Op: Add, Fill: Fill{Kind: WhiteNoise, Low: -0.05, High: 0.05}, Shapes: []Shape{center}})
	}
	for c := 2; c < chemicals; c++ {
		g.AddOverlay(Overlay{Chemical: c, Op: Overwrite, Fill: Fill{Value: 0}, Shapes: everywhere})
	}
}

// Apply paints every overlay onto grid in order. Overlays naming chemicals
// the grid does not have are skipped.
func (g *Generator) Apply(grid *core.Grid) {
	if g.zeroFirst {
		for c := 0; c < grid.Chemicals(); c++ {
			grid.Fill(c, 0)
		}
	}
	rng := NewRNG(g.seed)
	for _, o := range g.overlays {
		if o.Chemical < 0 || o.Chemical >= grid.Chemicals() {
			continue
		}
		for y := 0; y < grid.H; y++ {
			fy := (float64(y) + 0.5) / float64(grid.H)
			for x := 0; x < grid.W; x++ {
				fx := (float64(x) + 0.5) / float64(grid.W)
				if !inAny(o.Shapes, fx, fy) {
					continue
				}
				i := grid.Index(x, y)
				grid.Set(o.Chemical, i, o.Op.apply(grid.At(o.Chemical, i), o.Fill.sample(rng)))
			}
		}
	}
}

func inAny(shapes []Shape, fx, fy float64) bool {
	for _, s := range shapes {
		if s.contains(fx, fy) {
			return true
		}
	}
	return false
}

// ChemicalName maps 0, 1, 2... to "a", "b", "c"...
func ChemicalName(i int) string {
	return string(rune('a' + i))
}

// ParseChemical maps "a", "b", "c"... to 0, 1, 2...
func ParseChemical(s string) (int, error) {
	if len(s) != 1 || s[0] < 'a' || s[0] > 'z' {
		return 0, fmt.Errorf("%w: chemical %q", core.ErrUnrecognizedValue, s)
	}
	return int(s[0] - 'a'), nil
}

var errEmptyOverlay = errors.New("overlay needs an op and a fill")

// ReadFromNode replaces the generator from its sub-document. The new state is
// built aside and only swapped in once the whole element parsed.
func (g *Generator) ReadFromNode(n *document.Node) error {
	next := New()
	if n == nil {
		*g = *next
		return nil
	}
	var err error
	if next.applyWhenLoading, err = boolAttr(n, "apply_when_loading", true); err != nil {
		return err
	}
	if next.zeroFirst, err = boolAttr(n, "zero_first", true); err != nil {
		return err
	}
	if s, ok := n.Attr("seed"); ok {
		if next.seed, err = strconv.ParseInt(s, 10, 64); err != nil {
			return &core.DocumentError{Element: n.Name, Attribute: "seed", Value: s, Err: core.ErrInvalidFormat}
		}
	}
	for _, on := range n.ChildrenNamed("overlay") {
		o, err := readOverlay(on)
		if err != nil {
			return err
		}
		next.overlays = append(next.overlays, o)
	}
	*g = *next
	return nil
}

func readOverlay(n *document.Node) (Overlay, error) {
	var o Overlay
	s, ok := n.Attr("chemical")
	if !ok {
		return o, &core.DocumentError{Element: "overlay", Attribute: "chemical", Err: core.ErrMissingAttribute}
	}
	c, err := ParseChemical(s)
	if err != nil {
		return o, &core.DocumentError{Element: "overlay", Attribute: "chemical", Value: s, Err: core.ErrUnrecognizedValue}
	}
	o.Chemical = c
	if len(n.Children) < 2 {
		return o, &core.DocumentError{Element: "overlay", Err: fmt.Errorf("%w: %v", core.ErrMalformedDocument, errEmptyOverlay)}
	}

	switch op := n.Children[0].Name; op {
	case "overwrite":
		o.Op = Overwrite
	case "add":
		o.Op = Add
	case "multiply":
		o.Op = Multiply
	default:
		return o, &core.DocumentError{Element: "overlay", Value: op, Err: core.ErrUnrecognizedValue}
	}

	fill := n.Children[1]
	switch fill.Name {
	case "constant":
		o.Fill.Kind = Constant
		if o.Fill.Value, err = floatAttr(fill, "value"); err != nil {
			return o, err
		}
	case "white_noise":
		o.Fill.Kind = WhiteNoise
		if o.Fill.Low, err = floatAttr(fill, "low"); err != nil {
			return o, err
		}
		if o.Fill.High, err = floatAttr(fill, "high"); err != nil {
			return o, err
		}
	default:
		return o, &core.DocumentError{Element: "overlay", Value: fill.Name, Err: core.ErrUnrecognizedValue}
	}

	for _, sn := range n.Children[2:] {
		sh, err := readShape(sn)
		if err != nil {
			return o, err
		}
		o.Shapes = append(o.Shapes, sh)
	}
	return o, nil
}

func readShape(n *document.Node) (Shape, error) {
	var (
		s   Shape
		err error
	)
	read := func(dst *float64, attr string) {
		if err == nil {
			*dst, err = floatAttr(n, attr)
		}
	}
	switch n.Name {
	case "everywhere":
		s.Kind = Everywhere
	case "rectangle":
		s.Kind = Rectangle
		read(&s.X0, "x0")
		read(&s.Y0, "y0")
		read(&s.X1, "x1")
		read(&s.Y1, "y1")
	case "circle":
		s.Kind = Circle
		read(&s.X, "x")
		read(&s.Y, "y")
		read(&s.Radius, "radius")
	default:
		return s, &core.DocumentError{Element: "overlay", Value: n.Name, Err: core.ErrUnrecognizedValue}
	}
	return s, err
}

// AsNode encodes the generator.
func (g *Generator) AsNode(applyWhenLoading bool) *document.Node {
	n := document.New("initial_pattern_generator").
		SetAttr("apply_when_loading", strconv.FormatBool(applyWhenLoading)).
		SetAttr("zero_first", strconv.FormatBool(g.zeroFirst)).
		SetAttr("seed", strconv.FormatInt(g.seed, 10))
	for _, o := range g.overlays {
		on := n.AddChild(document.New("overlay").SetAttr("chemical", ChemicalName(o.Chemical)))
		on.AddChild(document.New(o.Op.String()))
		switch o.Fill.Kind {
		case WhiteNoise:
			on.AddChild(document.New("white_noise").SetFloatAttr("low", o.Fill.Low).SetFloatAttr("high", o.Fill.High))
		default:
			on.AddChild(document.New("constant").SetFloatAttr("value", o.Fill.Value))
		}
		for _, s := range o.Shapes {
			switch s.Kind {
			case Rectangle:
				on.AddChild(document.New("rectangle").
					SetFloatAttr("x0", s.X0).SetFloatAttr("y0", s.Y0).
					SetFloatAttr("x1", s.X1).SetFloatAttr("y1", s.Y1))
			case Circle:
				on.AddChild(document.New("circle").
					SetFloatAttr("x", s.X).SetFloatAttr("y", s.Y).SetFloatAttr("radius", s.Radius))
			default:
				on.AddChild(document.New("everywhere"))
			}
		}
	}
	return n
}

func boolAttr(n *document.Node, attr string, def bool) (bool, error) {
	s, ok := n.Attr(attr)
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def, &core.DocumentError{Element: n.Name, Attribute: attr, Value: s, Err: core.ErrInvalidFormat}
	}
	return v, nil
}

func floatAttr(n *document.Node, attr string) (float64, error) {
	s, ok := n.Attr(attr)
	if !ok {
		return 0, &core.DocumentError{Element: n.Name, Attribute: attr, Err: core.ErrMissingAttribute}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &core.DocumentError{Element: n.Name, Attribute: attr, Value: s, Err: core.ErrInvalidFormat}
	}
	return v, nil
}

var _ core.PatternGenerator = (*Generator)(nil)
