package mcl

import (
	"mercator-hq/ganymede/pkg/mcl/parser"
	"mercator-hq/ganymede/pkg/mcl/schema"
	"mercator-hq/ganymede/pkg/mcl/value"
	"mercator-hq/ganymede/pkg/mcl/writer"
)

// Parse parses the MCL document at the given path.
func Parse(path string) (*value.Value, error) {
	return parser.NewParser().Parse(path)
}

// ParseBytes parses an MCL document from a byte slice. The sourcePath is
// used only for error locations.
func ParseBytes(data []byte, sourcePath string) (*value.Value, error) {
	return parser.NewParser().ParseBytes(data, sourcePath)
}

// ParseString parses an MCL document from a string.
func ParseString(text, sourcePath string) (*value.Value, error) {
	return parser.NewParser().ParseString(text, sourcePath)
}

// Format serializes a value tree to canonical MCL text.
func Format(v *value.Value) (string, error) {
	buf := writer.NewBuffer(256)
	if err := writer.Write(v, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DecodeFile is a convenience function that parses the document at path and
// decodes it through the descriptor table in one step.
func DecodeFile(path string, table []schema.Descriptor) error {
	doc, err := Parse(path)
	if err != nil {
		return err
	}
	return schema.Decode(doc, table)
}

// EncodeToString encodes a descriptor table into canonical MCL text.
func EncodeToString(table []schema.Descriptor) (string, error) {
	doc, err := schema.Encode(table)
	if err != nil {
		return "", err
	}
	return Format(doc)
}
