package core

import (
	"strconv"
	"strings"

	"rdcore/internal/document"
)

// FormatVersion is the newest document format this build writes. Documents
// with a higher version still load, but the caller is told an update is
// recommended.
const FormatVersion = 6

// Element and attribute names of the RD document.
const (
	elemRD          = "RD"
	elemDescription = "description"
	elemRule        = "rule"
	elemParam       = "param"
	elemFormula     = "formula"
	elemGenerator   = "initial_pattern_generator"

	attrFormatVersion = "format_version"
	attrName          = "name"
	attrType          = "type"
	attrWrap          = "wrap"
	attrNeighborhood  = "neighborhood_type"
	attrDataType      = "data_type"
	attrAccuracy      = "accuracy"
	attrChemicals     = "number_of_chemicals"

	descriptionIndent = "\n      "
)

// Configuration is the persisted unit of a simulation.
type Configuration struct {
	RuleName          string
	RuleType          string
	Description       string
	Wrap              bool
	Neighborhood      Neighborhood
	Parameters        []Parameter
	Formula           string
	NumberOfChemicals int
	DataType          DataType
	Accuracy          Accuracy
}

// DefaultConfiguration returns the values a fresh engine starts with.
func DefaultConfiguration() Configuration {
	return Configuration{
		Wrap:              true,
		Neighborhood:      VertexNeighbors,
		NumberOfChemicals: 2,
		DataType:          Float32,
		Accuracy:          AccuracyMedium,
	}
}

// EncodeOptions selects the optional parts of an encoded document.
type EncodeOptions struct {
	WrapEditable     bool
	FormulaEditable  bool
	DataTypeEditable bool
	AccuracyEditable bool

	// Generator is the initial_pattern_generator element, if any.
	Generator *document.Node
}

// FindRD locates the RD element, which may be the root or nested inside a
// wrapper such as a VTK file.
func FindRD(root *document.Node) (*document.Node, error) {
	rd := root.Find(elemRD)
	if rd == nil {
		return nil, &DocumentError{Element: elemRD, Err: ErrMalformedDocument}
	}
	return rd, nil
}

// GeneratorNode returns the initial_pattern_generator element of rd, or nil.
func GeneratorNode(rd *document.Node) *document.Node {
	return rd.Child(elemGenerator)
}

// DecodeConfiguration reads rd into a new Configuration. Optional values
// missing from the document keep the value in defaults, except wrap,
// neighborhood and description which have fixed document defaults. The bool
// result is true when the document is newer than FormatVersion.
//
// Nothing outside the returned value is modified, so a failed decode leaves
// the caller's state intact.
func DecodeConfiguration(rd *document.Node, defaults Configuration) (Configuration, bool, error) {
	cfg := defaults
	cfg.Parameters = nil
	if rd == nil || rd.Name != elemRD {
		return cfg, false, &DocumentError{Element: elemRD, Err: ErrMalformedDocument}
	}

	version, err := requiredInt(rd, attrFormatVersion)
	if err != nil {
		return cfg, false, err
	}
	updateRecommended := version > FormatVersion

	rule := rd.Child(elemRule)
	if rule == nil {
		return cfg, updateRecommended, &DocumentError{Element: elemRule, Err: ErrMalformedDocument}
	}
	name, ok := rule.Attr(attrName)
	if !ok {
		return cfg, updateRecommended, &DocumentError{Element: elemRule, Attribute: attrName, Err: ErrMissingAttribute}
	}
	cfg.RuleName = name
	if t, ok := rule.Attr(attrType); ok {
		cfg.RuleType = t
	}

	cfg.Wrap = true
	if s, ok := rule.Attr(attrWrap); ok {
		cfg.Wrap = s == "1"
	}

	cfg.Neighborhood = VertexNeighbors
	if s, ok := rule.Attr(attrNeighborhood); ok {
		n, err := ParseNeighborhood(s)
		if err != nil {
			return cfg, updateRecommended, &DocumentError{Element: elemRule, Attribute: attrNeighborhood, Value: s, Err: ErrUnrecognizedValue}
		}
		cfg.Neighborhood = n
	}
	if s, ok := rule.Attr(attrDataType); ok {
		d, err := ParseDataType(s)
		if err != nil {
			return cfg, updateRecommended, &DocumentError{Element: elemRule, Attribute: attrDataType, Value: s, Err: ErrUnrecognizedValue}
		}
		cfg.DataType = d
	}
	if s, ok := rule.Attr(attrAccuracy); ok {
		a, err := ParseAccuracy(s)
		if err != nil {
			return cfg, updateRecommended, &DocumentError{Element: elemRule, Attribute: attrAccuracy, Value: s, Err: ErrUnrecognizedValue}
		}
		cfg.Accuracy = a
	}

	for _, p := range rule.ChildrenNamed(elemParam) {
		name, ok := p.Attr(attrName)
		if !ok {
			return cfg, updateRecommended, &DocumentError{Element: elemParam, Attribute: attrName, Err: ErrMissingAttribute}
		}
		name = trimMultiline(name)
		v, err := strconv.ParseFloat(strings.TrimSpace(p.Text), 64)
		if err != nil {
			return cfg, updateRecommended, &DocumentError{Element: elemParam, Attribute: name, Value: p.Text, Err: ErrInvalidFormat}
		}
		cfg.Parameters = append(cfg.Parameters, Parameter{Name: name, Value: v})
	}

	if f := rule.Child(elemFormula); f != nil {
		cfg.Formula = trimMultiline(f.Text)
		if _, ok := f.Attr(attrChemicals); ok {
			n, err := requiredInt(f, attrChemicals)
			if err != nil {
				return cfg, updateRecommended, err
			}
			if n < 1 {
				return cfg, updateRecommended, &DocumentError{Element: elemFormula, Attribute: attrChemicals, Value: strconv.Itoa(n), Err: ErrInvalidFormat}
			}
			cfg.NumberOfChemicals = n
		}
	}

	cfg.Description = ""
	if d := rd.Child(elemDescription); d != nil {
		cfg.Description = trimMultiline(d.Text)
	}
	return cfg, updateRecommended, nil
}

// EncodeConfiguration builds the RD element for cfg. It does not modify cfg.
func EncodeConfiguration(cfg Configuration, opts EncodeOptions) *document.Node {
	rd := document.New(elemRD).SetIntAttr(attrFormatVersion, FormatVersion)

	rd.AddChild(&document.Node{
		Name: elemDescription,
		Text: strings.ReplaceAll(cfg.Description, "\n", descriptionIndent),
	})

	rule := rd.AddChild(document.New(elemRule))
	rule.SetAttr(attrName, cfg.RuleName)
	rule.SetAttr(attrType, cfg.RuleType)
	if opts.WrapEditable {
		wrap := 0
		if cfg.Wrap {
			wrap = 1
		}
		rule.SetIntAttr(attrWrap, wrap)
	}
	rule.SetAttr(attrNeighborhood, cfg.Neighborhood.String())
	if opts.DataTypeEditable {
		rule.SetAttr(attrDataType, cfg.DataType.String())
	}
	if opts.AccuracyEditable {
		rule.SetAttr(attrAccuracy, cfg.Accuracy.String())
	}
	for _, p := range cfg.Parameters {
		rule.AddChild(&document.Node{
			Name:  elemParam,
			Attrs: []document.Attr{{Name: attrName, Value: p.Name}},
			Text:  strconv.FormatFloat(p.Value, 'g', -1, 64),
		})
	}
	if opts.FormulaEditable {
		f := rule.AddChild(&document.Node{Name: elemFormula, Text: cfg.Formula})
		f.SetIntAttr(attrChemicals, cfg.NumberOfChemicals)
	}

	if opts.Generator != nil {
		rd.AddChild(opts.Generator)
	}
	return rd
}

func requiredInt(n *document.Node, attr string) (int, error) {
	s, ok := n.Attr(attr)
	if !ok {
		return 0, &DocumentError{Element: n.Name, Attribute: attr, Err: ErrMissingAttribute}
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &DocumentError{Element: n.Name, Attribute: attr, Value: s, Err: ErrInvalidFormat}
	}
	return v, nil
}

// trimMultiline strips surrounding whitespace from every line and drops
// leading and trailing blank lines.
func trimMultiline(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
