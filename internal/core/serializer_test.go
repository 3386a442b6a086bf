package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdcore/internal/document"
)

const sampleXML = `<?xml version="1.0"?>
<RD format_version="6">
  <description>
      Spots and stripes.
      Second line.
  </description>
  <rule name="Gray-Scott" type="inbuilt" wrap="0" neighborhood_type="edge">
    <param name="timestep">1</param>
    <param name="D_a"> 0.082 </param>
    <param name="k">0.064</param>
  </rule>
  <initial_pattern_generator apply_when_loading="true"/>
</RD>`

func sampleRD() *document.Node {
	n, err := document.DecodeXML(strings.NewReader(sampleXML))
	if err != nil {
		panic(err)
	}
	return n
}

func TestDecodeConfiguration(t *testing.T) {
	cfg, update, err := DecodeConfiguration(sampleRD(), DefaultConfiguration())
	require.NoError(t, err)
	assert.False(t, update)
	assert.Equal(t, "Gray-Scott", cfg.RuleName)
	assert.Equal(t, "inbuilt", cfg.RuleType)
	assert.False(t, cfg.Wrap)
	assert.Equal(t, EdgeNeighbors, cfg.Neighborhood)
	assert.Equal(t, []Parameter{{"timestep", 1}, {"D_a", 0.082}, {"k", 0.064}}, cfg.Parameters)
	assert.Equal(t, "Spots and stripes.\nSecond line.", cfg.Description)
}

func TestDecodeDefaults(t *testing.T) {
	rd := document.New("RD").SetIntAttr("format_version", 6)
	rd.AddChild(document.New("rule").SetAttr("name", "bare"))

	defaults := DefaultConfiguration()
	defaults.Wrap = false
	defaults.Neighborhood = FaceNeighbors
	defaults.Description = "stale"
	defaults.DataType = Float64

	cfg, _, err := DecodeConfiguration(rd, defaults)
	require.NoError(t, err)
	assert.True(t, cfg.Wrap)
	assert.Equal(t, VertexNeighbors, cfg.Neighborhood)
	assert.Equal(t, "", cfg.Description)
	assert.Empty(t, cfg.Parameters)
	assert.Equal(t, Float64, cfg.DataType, "optional engine fields keep their current value")
}

func TestDecodeWrapValues(t *testing.T) {
	for value, want := range map[string]bool{"1": true, "0": false, "true": false, "yes": false} {
		rd := document.New("RD").SetIntAttr("format_version", 6)
		rd.AddChild(document.New("rule").SetAttr("name", "r").SetAttr("wrap", value))
		cfg, _, err := DecodeConfiguration(rd, DefaultConfiguration())
		require.NoError(t, err)
		assert.Equal(t, want, cfg.Wrap, value)
	}
}

func TestDecodeNewerFormatRecommendsUpdate(t *testing.T) {
	rd := sampleRD()
	rd.SetIntAttr("format_version", FormatVersion+1)
	cfg, update, err := DecodeConfiguration(rd, DefaultConfiguration())
	require.NoError(t, err)
	assert.True(t, update)
	assert.Equal(t, "Gray-Scott", cfg.RuleName)
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(rd *document.Node)
		want   error
	}{
		{"missing version", func(rd *document.Node) { rd.Attrs = nil }, ErrMissingAttribute},
		{"bad version", func(rd *document.Node) { rd.SetAttr("format_version", "six") }, ErrInvalidFormat},
		{"missing rule", func(rd *document.Node) { rd.Children = rd.Children[:1] }, ErrMalformedDocument},
		{"missing rule name", func(rd *document.Node) { rd.Child("rule").Attrs = nil }, ErrMissingAttribute},
		{"bad neighborhood", func(rd *document.Node) { rd.Child("rule").SetAttr("neighborhood_type", "corner") }, ErrUnrecognizedValue},
		{"bad data type", func(rd *document.Node) { rd.Child("rule").SetAttr("data_type", "half") }, ErrUnrecognizedValue},
		{"param without name", func(rd *document.Node) { rd.Child("rule").Children[1].Attrs = nil }, ErrMissingAttribute},
		{"param not numeric", func(rd *document.Node) { rd.Child("rule").Children[2].Text = "fast" }, ErrInvalidFormat},
		{"param empty", func(rd *document.Node) { rd.Child("rule").Children[0].Text = "" }, ErrInvalidFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rd := sampleRD()
			tc.mutate(rd)
			_, _, err := DecodeConfiguration(rd, DefaultConfiguration())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			var docErr *DocumentError
			assert.ErrorAs(t, err, &docErr)
		})
	}
}

func TestDecodeRejectsNonRD(t *testing.T) {
	_, _, err := DecodeConfiguration(document.New("VTKFile"), DefaultConfiguration())
	assert.ErrorIs(t, err, ErrMalformedDocument)
	_, _, err = DecodeConfiguration(nil, DefaultConfiguration())
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestFindRD(t *testing.T) {
	wrapper := document.New("VTKFile")
	wrapper.AddChild(document.New("ImageData")).AddChild(sampleRD())
	rd, err := FindRD(wrapper)
	require.NoError(t, err)
	assert.Equal(t, "RD", rd.Name)

	_, err = FindRD(document.New("VTKFile"))
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestEncodeShape(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.RuleName = "Gray-Scott"
	cfg.RuleType = "inbuilt"
	cfg.Description = "one\ntwo"
	cfg.Parameters = []Parameter{{"k", 0.064}}

	rd := EncodeConfiguration(cfg, EncodeOptions{})
	v, _ := rd.Attr("format_version")
	assert.Equal(t, "6", v)
	assert.Equal(t, "one\n      two", rd.Child("description").Text)

	rule := rd.Child("rule")
	_, hasWrap := rule.Attr("wrap")
	assert.False(t, hasWrap, "wrap is only written when editable")
	assert.Nil(t, rule.Child("formula"))
	assert.Nil(t, rd.Child("initial_pattern_generator"))
	assert.Equal(t, "0.064", rule.Child("param").Text)

	rd = EncodeConfiguration(cfg, EncodeOptions{
		WrapEditable:     true,
		FormulaEditable:  true,
		DataTypeEditable: true,
		Generator:        document.New("initial_pattern_generator"),
	})
	rule = rd.Child("rule")
	wrap, _ := rule.Attr("wrap")
	assert.Equal(t, "1", wrap)
	dt, _ := rule.Attr("data_type")
	assert.Equal(t, "float", dt)
	chem, _ := rule.Child("formula").Attr("number_of_chemicals")
	assert.Equal(t, "2", chem)
	assert.NotNil(t, rd.Child("initial_pattern_generator"))
}

func TestConfigurationRoundTrip(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.RuleName = "Brusselator"
	cfg.RuleType = "formula"
	cfg.Description = "A classic oscillator.\nSee Prigogine."
	cfg.Wrap = false
	cfg.Neighborhood = FaceNeighbors
	cfg.Parameters = []Parameter{{"A", 1}, {"B", 3.0000001}, {"tiny", 1e-7}, {"A", -2.5}}
	cfg.Formula = "delta_a = A - (B+1)*a + a*a*b;\ndelta_b = B*a - a*a*b;"
	cfg.NumberOfChemicals = 2
	cfg.DataType = Float64
	cfg.Accuracy = AccuracyHigh

	opts := EncodeOptions{WrapEditable: true, FormulaEditable: true, DataTypeEditable: true, AccuracyEditable: true}
	for _, codec := range []string{"xml", "yaml"} {
		t.Run(codec, func(t *testing.T) {
			var buf strings.Builder
			var back *document.Node
			var err error
			if codec == "xml" {
				require.NoError(t, document.EncodeXML(&buf, EncodeConfiguration(cfg, opts)))
				back, err = document.DecodeXML(strings.NewReader(buf.String()))
			} else {
				require.NoError(t, document.EncodeYAML(&buf, EncodeConfiguration(cfg, opts)))
				back, err = document.DecodeYAML(strings.NewReader(buf.String()))
			}
			require.NoError(t, err)

			got, update, err := DecodeConfiguration(back, DefaultConfiguration())
			require.NoError(t, err)
			assert.False(t, update)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestTrimMultiline(t *testing.T) {
	assert.Equal(t, "a\nb", trimMultiline("\n   a  \n\t b\n  \n"))
	assert.Equal(t, "", trimMultiline(" \n \n"))
}

func TestInitializeFromNode(t *testing.T) {
	b, gen := newTestBase(Capabilities{Wrap: true})
	b.Parameters().Add("stale", 1)

	update, err := b.InitializeFromNode(sampleRD())
	require.NoError(t, err)
	assert.False(t, update)
	assert.Equal(t, "Gray-Scott", b.RuleName())
	assert.False(t, b.Wrap())
	assert.Equal(t, EdgeNeighbors, b.Neighborhood())
	assert.Equal(t, 3, b.Parameters().Count())
	assert.False(t, b.Parameters().Contains("stale"))
	require.NotNil(t, gen.read)
	assert.Equal(t, "initial_pattern_generator", gen.read.Name)

	out := b.AsNode(false)
	apply, _ := out.Child("initial_pattern_generator").Attr("apply_when_loading")
	assert.Equal(t, "false", apply)
}

func TestInitializeFailureIsAtomic(t *testing.T) {
	b, _ := newTestBase(allCaps)
	b.SetRuleName("keep")
	b.Parameters().Add("a", 1)
	b.Parameters().Add("b", 2)

	rd := sampleRD()
	rd.Child("rule").Children[2].Text = "oops"
	_, err := b.InitializeFromNode(rd)
	require.ErrorIs(t, err, ErrInvalidFormat)
	assert.Equal(t, "keep", b.RuleName())
	assert.Equal(t, []Parameter{{"a", 1}, {"b", 2}}, b.Parameters().All())
}
