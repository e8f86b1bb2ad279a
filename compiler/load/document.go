package load

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/typegen/schema"
)

// document is the on-disk form of a schema. JSON documents decode
// through the same YAML decoder.
type document struct {
	Namespace string            `yaml:"namespace"`
	Prefixes  map[string]string `yaml:"prefixes"`
	Types     []typeDoc         `yaml:"types"`
}

type typeDoc struct {
	Name            string     `yaml:"name"`
	Super           string     `yaml:"super"`
	HasValue        bool       `yaml:"hasValue"`
	Binding         string     `yaml:"binding"`
	MappingRelevant bool       `yaml:"mappingRelevant"`
	Children        []childDoc `yaml:"children"`
}

// childDoc is a property when Property is set, a group otherwise.
type childDoc struct {
	Property    string          `yaml:"property"`
	Type        string          `yaml:"type"`
	Group       string          `yaml:"group"`
	DisplayName string          `yaml:"displayName"`
	Choice      bool            `yaml:"choice"`
	Cardinality *cardinalityDoc `yaml:"cardinality"`
	Children    []childDoc      `yaml:"children"`
}

// cardinalityDoc accepts a mapping {min: 0, max: unbounded} or the
// short form "0..unbounded". An asterisk stands for unbounded.
type cardinalityDoc schema.Cardinality

func (c *cardinalityDoc) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		lo, hi, ok := strings.Cut(n.Value, "..")
		if !ok {
			return fmt.Errorf("line %d: cardinality %q is not of the form min..max", n.Line, n.Value)
		}
		return c.set(n.Line, lo, hi)
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: cardinality must be a mapping or min..max", n.Line)
	}
	lo, hi := "0", ""
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch key, val := n.Content[i].Value, n.Content[i+1].Value; key {
		case "min":
			lo = val
		case "max":
			hi = val
		default:
			return fmt.Errorf("line %d: unknown cardinality key %q", n.Content[i].Line, key)
		}
	}
	if hi == "" {
		return fmt.Errorf("line %d: cardinality without max", n.Line)
	}
	return c.set(n.Line, lo, hi)
}

func (c *cardinalityDoc) set(line int, lo, hi string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
	if err != nil || n < 0 {
		return fmt.Errorf("line %d: invalid minimum occurrence %q", line, lo)
	}
	c.Min = n
	switch hi = strings.TrimSpace(hi); hi {
	case "unbounded", "*":
		c.Max = schema.Unbounded
	default:
		m, err := strconv.ParseInt(hi, 10, 64)
		if err != nil || m < n {
			return fmt.Errorf("line %d: invalid maximum occurrence %q", line, hi)
		}
		c.Max = m
	}
	return nil
}

func (c *cardinalityDoc) cardinality() *schema.Cardinality {
	if c == nil {
		return nil
	}
	card := schema.Cardinality(*c)
	return &card
}
