package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tagfilter/internal/condir"
)

// FromYAML decodes a YAML (or JSON) document whose top level is a mapping.
//
// The document is walked as a yaml.Node tree rather than unmarshaled into
// a Go map, so key order survives. Duplicate keys at one level overwrite
// in place, as Set does.
func FromYAML(data []byte) (*Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("parse yaml: empty document")
	}
	return FromYAMLNode(doc.Content[0])
}

// maxAliasNodes bounds how many nodes alias expansion may produce in one
// document.
const maxAliasNodes = 10000

// FromYAMLNode converts a mapping node.
//
// Nesting deeper than condir.MaxDepth and aliases that refer to one of
// their own ancestors fail with a TOO_DEEP_OR_CYCLIC error.
func FromYAMLNode(n *yaml.Node) (*Mapping, error) {
	w := &yamlWalker{onPath: make(map[*yaml.Node]bool)}
	return w.mapping(n, 0)
}

// yamlWalker converts a node tree while tracking the anchors on the
// current path and the nodes produced through aliases.
type yamlWalker struct {
	onPath   map[*yaml.Node]bool
	inAlias  int
	expanded int
}

func (w *yamlWalker) mapping(n *yaml.Node, depth int) (*Mapping, error) {
	n, leave, err := w.enter(n, depth)
	if err != nil {
		return nil, err
	}
	defer leave()

	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping, got %s", n.Line, kindName(n.Kind))
	}

	m := &Mapping{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := n.Content[i]
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping key must be a scalar, got %s", keyNode.Line, kindName(keyNode.Kind))
		}

		val, err := w.value(n.Content[i+1], depth)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
		m.Set(keyNode.Value, val)
	}
	return m, nil
}

// value converts a node found inside a container at depth.
func (w *yamlWalker) value(n *yaml.Node, depth int) (any, error) {
	target := n
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		target = n.Alias
	}

	switch target.Kind {
	case yaml.MappingNode:
		return w.mapping(n, depth+1)
	case yaml.SequenceNode:
		return w.sequence(n, depth+1)
	case yaml.ScalarNode:
		if err := w.produced(target, target != n); err != nil {
			return nil, err
		}
		var v any
		if err := target.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", target.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %s", target.Line, kindName(target.Kind))
	}
}

func (w *yamlWalker) sequence(n *yaml.Node, depth int) ([]any, error) {
	n, leave, err := w.enter(n, depth)
	if err != nil {
		return nil, err
	}
	defer leave()

	out := make([]any, len(n.Content))
	for i, item := range n.Content {
		v, err := w.value(item, depth)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// enter resolves an alias and checks the depth, cycle and expansion
// limits. The returned func must be called once the node is done.
func (w *yamlWalker) enter(n *yaml.Node, depth int) (*yaml.Node, func(), error) {
	if depth > condir.MaxDepth {
		return nil, nil, condir.NewTooDeepError(depth)
	}

	alias := n.Kind == yaml.AliasNode && n.Alias != nil
	if alias {
		n = n.Alias
		w.inAlias++
	}
	if err := w.produced(n, false); err != nil {
		return nil, nil, err
	}
	if w.onPath[n] {
		return nil, nil, condir.NewTooDeepError(depth)
	}

	w.onPath[n] = true
	return n, func() {
		delete(w.onPath, n)
		if alias {
			w.inAlias--
		}
	}, nil
}

// produced counts a node built through alias expansion.
func (w *yamlWalker) produced(n *yaml.Node, alias bool) error {
	if !alias && w.inAlias == 0 {
		return nil
	}
	w.expanded++
	if w.expanded > maxAliasNodes {
		return fmt.Errorf("line %d: document contains excessive aliasing", n.Line)
	}
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
