package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Property is one key of a mapping document. Value holds a scalar (string,
// int, float64, bool or nil) or, for sequences, a []any of scalars.
type Property struct {
	Key   string
	Value any
}

// PropertySet is the ordered content of one mapping.
type PropertySet []Property

// Properties decodes a JSON or YAML document into property sets, keeping the
// key order of the source. A top-level mapping yields one set, a sequence of
// mappings one set per element. Every document of a YAML stream is read.
// Nested mappings are flattened with dotted keys.
func Properties(data []byte) ([]PropertySet, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var sets []PropertySet
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		if len(doc.Content) == 0 {
			continue
		}

		root := resolve(doc.Content[0])
		switch root.Kind {
		case yaml.MappingNode:
			set, err := mappingProperties(root)
			if err != nil {
				return nil, err
			}
			sets = append(sets, set)
		case yaml.SequenceNode:
			for i, item := range root.Content {
				item = resolve(item)
				if item.Kind != yaml.MappingNode {
					return nil, fmt.Errorf("element %d of the document is not a mapping", i)
				}
				set, err := mappingProperties(item)
				if err != nil {
					return nil, err
				}
				sets = append(sets, set)
			}
		case yaml.ScalarNode:
			if root.ShortTag() == "!!null" {
				continue
			}
			return nil, fmt.Errorf("document at line %d is a scalar, expected a mapping", root.Line)
		default:
			return nil, fmt.Errorf("document at line %d is not a mapping", root.Line)
		}
	}
	return sets, nil
}

func mappingProperties(n *yaml.Node) (PropertySet, error) {
	var set PropertySet
	err := flatten(n, "", &set)
	return set, err
}

func flatten(n *yaml.Node, prefix string, set *PropertySet) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if prefix != "" {
			key = prefix + "." + key
		}
		value := resolve(n.Content[i+1])

		switch value.Kind {
		case yaml.MappingNode:
			if len(value.Content) == 0 {
				*set = append(*set, Property{Key: key, Value: ""})
				continue
			}
			if err := flatten(value, key, set); err != nil {
				return err
			}
		case yaml.SequenceNode:
			items := make([]any, len(value.Content))
			for j, item := range value.Content {
				v, err := nodeValue(resolve(item))
				if err != nil {
					return fmt.Errorf("failed to decode %s[%d]: %w", key, j, err)
				}
				items[j] = v
			}
			*set = append(*set, Property{Key: key, Value: items})
		default:
			v, err := nodeValue(value)
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", key, err)
			}
			*set = append(*set, Property{Key: key, Value: v})
		}
	}
	return nil
}

// nodeValue decodes a scalar. Collections nested in a sequence become
// compact JSON text.
func nodeValue(n *yaml.Node) (any, error) {
	if n.Kind != yaml.ScalarNode {
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}

	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err := n.Decode(&b)
		return b, err
	case "!!int":
		var i int
		if err := n.Decode(&i); err != nil {
			return n.Value, nil
		}
		return i, nil
	case "!!float":
		var f float64
		err := n.Decode(&f)
		return f, err
	default:
		return n.Value, nil
	}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return resolve(n.Content[0])
	}
	return n
}
