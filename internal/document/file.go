package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies an on-disk encoding of a node tree.
type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from a file extension. Unknown extensions
// are treated as XML, which is what the VTK-style pattern files use.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatXML
	}
}

// ReadFile loads a node tree from path.
func ReadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var n *Node
	switch FormatForPath(path) {
	case FormatYAML:
		n, err = DecodeYAML(bytes.NewReader(data))
	default:
		n, err = DecodeXML(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// WriteFile stores n at path, replacing any existing file.
func WriteFile(path string, n *Node) error {
	var buf bytes.Buffer
	var err error
	switch FormatForPath(path) {
	case FormatYAML:
		err = EncodeYAML(&buf, n)
	default:
		err = EncodeXML(&buf, n)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
