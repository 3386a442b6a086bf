package document

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0"?>
<RD format_version="6">
  <description>
    Two lines
    of text
  </description>
  <rule name="Gray-Scott" type="inbuilt" neighborhood_type="vertex">
    <param name="F">0.035</param>
    <param name="k">0.064</param>
  </rule>
</RD>`

func sampleTree() *Node {
	rd := New("RD").SetIntAttr("format_version", 6)
	rd.AddChild(&Node{Name: "description", Text: "first\nsecond"})
	rule := rd.AddChild(New("rule").SetAttr("name", "Gray-Scott").SetAttr("wrap", "1"))
	rule.AddChild(&Node{Name: "param", Attrs: []Attr{{Name: "name", Value: "F"}}, Text: "0.035"})
	rule.AddChild(&Node{Name: "param", Attrs: []Attr{{Name: "name", Value: "k"}}, Text: "0.064"})
	return rd
}

func TestDecodeXML(t *testing.T) {
	root, err := DecodeXML(strings.NewReader(sampleXML))
	require.NoError(t, err)

	assert.Equal(t, "RD", root.Name)
	v, ok := root.Attr("format_version")
	assert.True(t, ok)
	assert.Equal(t, "6", v)

	rule := root.Child("rule")
	require.NotNil(t, rule)
	assert.Empty(t, rule.Text, "whitespace between child elements is dropped")
	params := rule.ChildrenNamed("param")
	require.Len(t, params, 2)
	assert.Equal(t, "0.064", params[1].Text)

	desc := root.Child("description")
	require.NotNil(t, desc)
	assert.Contains(t, desc.Text, "of text")
}

func TestDecodeXMLRejectsGarbage(t *testing.T) {
	_, err := DecodeXML(strings.NewReader("<RD><rule></RD>"))
	assert.Error(t, err)

	_, err = DecodeXML(strings.NewReader("   "))
	assert.Error(t, err)
}

func TestXMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeXML(&buf, sampleTree()))

	back, err := DecodeXML(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleTree(), back)
}

func TestYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, sampleTree()))

	back, err := DecodeYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleTree(), back)
}

func TestDecodeYAMLUnknownKey(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader("name: RD\ncolour: blue\n"))
	assert.ErrorContains(t, err, "unknown key")
}

func TestSetAttrKeepsPosition(t *testing.T) {
	n := New("rule").SetAttr("name", "a").SetAttr("type", "inbuilt")
	n.SetAttr("name", "b")
	assert.Equal(t, []Attr{{Name: "name", Value: "b"}, {Name: "type", Value: "inbuilt"}}, n.Attrs)
}

func TestFindAndClone(t *testing.T) {
	wrapper := New("VTKFile")
	wrapper.AddChild(New("ImageData"))
	wrapper.AddChild(sampleTree())

	rd := wrapper.Find("RD")
	require.NotNil(t, rd)

	clone := rd.Clone()
	clone.Child("rule").SetAttr("name", "changed")
	name, _ := rd.Child("rule").Attr("name")
	assert.Equal(t, "Gray-Scott", name)
	assert.Nil(t, wrapper.Find("missing"))
}

func TestFileFormats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"pattern.xml", "pattern.yaml", "pattern.vti"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, sampleTree()))
		back, err := ReadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, sampleTree(), back, name)
	}
	assert.Equal(t, FormatYAML, FormatForPath("x.YML"))
	assert.Equal(t, FormatXML, FormatForPath("x.vti"))
}
