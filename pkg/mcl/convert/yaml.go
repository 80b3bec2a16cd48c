package convert

import (
	"fmt"

	"gopkg.in/yaml.v3"

	mclErrors "mercator-hq/ganymede/pkg/mcl/errors"
	"mercator-hq/ganymede/pkg/mcl/value"
)

// ToYAML serializes an MCL value tree as YAML. Every MCL string becomes a
// tagged YAML string so that numeric-looking values survive a round trip;
// dicts become mappings in ascending key order; arrays become sequences.
func ToYAML(v *value.Value) ([]byte, error) {
	node, err := toNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func toNode(v *value.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case value.KindString:
		text, _ := v.Text()
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: text,
		}, nil

	case value.KindDict:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		var convErr error
		v.DictForEach(func(key string, val *value.Value) bool {
			child, err := toNode(val)
			if err != nil {
				convErr = err
				return false
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child)
			return true
		})
		if convErr != nil {
			return nil, convErr
		}
		return node, nil

	case value.KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := 0; i < v.ArrayLen(); i++ {
			item, _ := v.ArrayAt(i)
			child, err := toNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil

	default:
		return nil, &mclErrors.Error{
			Type:    mclErrors.ErrorTypeTypeMismatch,
			Message: fmt.Sprintf("cannot convert %s value to YAML", v.Kind()),
		}
	}
}

// FromYAML parses YAML into an MCL value tree. Scalars of any YAML type
// become MCL strings holding their literal text; mappings become dicts
// (duplicate keys are rejected); sequences become arrays. The sourcePath is
// used only for error locations.
func FromYAML(data []byte, sourcePath string) (*value.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &mclErrors.Error{
			Type:       mclErrors.ErrorTypeParse,
			Message:    fmt.Sprintf("YAML parsing failed: %v", err),
			Location:   value.Location{File: sourcePath, Line: 1, Column: 1},
			Suggestion: "check YAML syntax (indentation, colons, quotes)",
		}
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, &mclErrors.Error{
				Type:     mclErrors.ErrorTypeParse,
				Message:  "empty YAML document",
				Location: value.Location{File: sourcePath, Line: 1, Column: 1},
			}
		}
		node = node.Content[0]
	}

	return fromNode(node, sourcePath)
}

func fromNode(node *yaml.Node, sourcePath string) (*value.Value, error) {
	loc := value.Location{File: sourcePath, Line: node.Line, Column: node.Column}

	switch node.Kind {
	case yaml.ScalarNode:
		v := value.NewString(node.Value)
		v.Loc = loc
		return v, nil

	case yaml.MappingNode:
		d := value.NewDict()
		d.Loc = loc
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			val, err := fromNode(valNode, sourcePath)
			if err != nil {
				return nil, err
			}
			if !d.DictAdd(keyNode.Value, val) {
				return nil, &mclErrors.Error{
					Type:       mclErrors.ErrorTypeParse,
					Message:    fmt.Sprintf("duplicate mapping key %q", keyNode.Value),
					Location:   value.Location{File: sourcePath, Line: keyNode.Line, Column: keyNode.Column},
					Suggestion: "remove or rename the duplicate entry",
				}
			}
		}
		return d, nil

	case yaml.SequenceNode:
		a := value.NewArray()
		a.Loc = loc
		for _, item := range node.Content {
			val, err := fromNode(item, sourcePath)
			if err != nil {
				return nil, err
			}
			a.ArrayAppend(val)
		}
		return a, nil

	case yaml.AliasNode:
		return fromNode(node.Alias, sourcePath)

	default:
		return nil, &mclErrors.Error{
			Type:     mclErrors.ErrorTypeParse,
			Message:  fmt.Sprintf("unsupported YAML node kind %d", node.Kind),
			Location: loc,
		}
	}
}
