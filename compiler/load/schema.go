package load

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/typegen"
	"github.com/syssam/typegen/schema"
)

// Provider exposes a loaded type graph to the compiler.
type Provider interface {
	// Types returns the types generation starts from.
	Types() []*schema.Type
	// Prefixes maps namespace URIs to their registered short prefixes.
	Prefixes() map[string]string
	// Namespace returns the main namespace of the schema.
	Namespace() string
}

// Schema is a schema loaded from a document. It implements Provider.
type Schema struct {
	// Location the schema was loaded from, empty for in-memory documents.
	Location string

	namespace string
	prefixes  map[string]string
	byPrefix  map[string]string
	declared  []*schema.Type
	types     map[typegen.QName]*schema.Type
	index     *schema.Index
}

var _ Provider = (*Schema)(nil)

// Parse decodes a YAML or JSON schema document and resolves its type
// references. Types in the XML Schema namespace are predefined.
func Parse(data []byte, location string) (*Schema, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Location: location, Message: "decode document", Cause: err}
	}
	s := &Schema{
		Location:  location,
		namespace: doc.Namespace,
		prefixes:  make(map[string]string, len(doc.Prefixes)),
		byPrefix:  make(map[string]string, len(doc.Prefixes)),
		types:     make(map[typegen.QName]*schema.Type, len(doc.Types)),
	}
	if err := s.registerPrefixes(doc.Prefixes); err != nil {
		return nil, err
	}
	if err := s.declare(doc.Types); err != nil {
		return nil, err
	}
	if err := s.resolve(doc.Types); err != nil {
		return nil, err
	}
	idx, err := schema.NewIndex(s.declared...)
	if err != nil {
		return nil, &Error{Location: location, Cause: err}
	}
	s.index = idx
	return s, nil
}

// registerPrefixes records the prefix table. Each prefix names exactly one
// namespace.
func (s *Schema) registerPrefixes(prefixes map[string]string) error {
	namespaces := make([]string, 0, len(prefixes))
	for ns := range prefixes {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)
	for _, ns := range namespaces {
		prefix := prefixes[ns]
		if other, ok := s.byPrefix[prefix]; ok {
			return s.errorf("", "prefix %q declared for %s and %s", prefix, other, ns)
		}
		s.prefixes[ns] = prefix
		s.byPrefix[prefix] = ns
	}
	return nil
}

func (s *Schema) declare(docs []typeDoc) error {
	for i := range docs {
		td := &docs[i]
		if td.Name == "" {
			return s.errorf("", "type #%d has no name", i+1)
		}
		name, err := s.ref(td.Name)
		if err != nil {
			return s.errorf(td.Name, "%v", err)
		}
		if _, ok := s.types[name]; ok {
			return s.errorf(name.String(), "declared twice")
		}
		t := &schema.Type{
			Name:            name,
			HasValue:        td.HasValue,
			MappingRelevant: td.MappingRelevant,
		}
		if td.Binding != "" {
			if t.Binding, err = schema.ParseBinding(td.Binding); err != nil {
				return s.errorf(name.String(), "%v", err)
			}
		}
		s.types[name] = t
		s.declared = append(s.declared, t)
	}
	return nil
}

func (s *Schema) resolve(docs []typeDoc) error {
	for i := range docs {
		td, t := &docs[i], s.declared[i]
		if td.Super != "" {
			super, err := s.lookup(td.Super)
			if err != nil {
				return s.errorf(t.Name.String(), "super: %v", err)
			}
			t.Super = super
		}
		children, err := s.children(td.Children)
		if err != nil {
			return s.errorf(t.Name.String(), "%v", err)
		}
		t.Children = children
	}
	return nil
}

func (s *Schema) children(docs []childDoc) ([]schema.Child, error) {
	var children []schema.Child
	for i := range docs {
		cd := &docs[i]
		switch {
		case cd.Property != "":
			name, err := s.ref(cd.Property)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", cd.Property, err)
			}
			if cd.Type == "" {
				return nil, fmt.Errorf("property %s: missing type", name)
			}
			typ, err := s.lookup(cd.Type)
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", name, err)
			}
			children = append(children, &schema.Property{
				Name:        name,
				Type:        typ,
				Cardinality: cd.Cardinality.cardinality(),
			})
		case cd.Group != "" || len(cd.Children) > 0:
			g := &schema.Group{
				DisplayName: cd.DisplayName,
				Choice:      cd.Choice,
				Cardinality: cd.Cardinality.cardinality(),
			}
			if cd.Group != "" {
				name, err := s.ref(cd.Group)
				if err != nil {
					return nil, fmt.Errorf("group %q: %w", cd.Group, err)
				}
				g.Name = name
			}
			nested, err := s.children(cd.Children)
			if err != nil {
				return nil, err
			}
			g.Children = nested
			children = append(children, g)
		default:
			return nil, fmt.Errorf("child #%d is neither a property nor a group", i+1)
		}
	}
	return children, nil
}

// ref resolves a name written as {namespace}local, prefix:local or a bare
// local name in the main namespace.
func (s *Schema) ref(v string) (typegen.QName, error) {
	if strings.HasPrefix(v, "{") {
		return typegen.ParseQName(v)
	}
	prefix, local, ok := strings.Cut(v, ":")
	if !ok {
		return typegen.Q(s.namespace, v), nil
	}
	if ns, found := s.prefixNamespace(prefix); found {
		return typegen.Q(ns, local), nil
	}
	return typegen.QName{}, fmt.Errorf("unknown prefix %q", prefix)
}

func (s *Schema) prefixNamespace(prefix string) (string, bool) {
	if ns, ok := s.byPrefix[prefix]; ok {
		return ns, true
	}
	if prefix == "xs" || prefix == "xsd" {
		return XMLSchemaNamespace, true
	}
	return "", false
}

func (s *Schema) lookup(v string) (*schema.Type, error) {
	name, err := s.ref(v)
	if err != nil {
		return nil, err
	}
	if t, ok := s.types[name]; ok {
		return t, nil
	}
	if name.Namespace == XMLSchemaNamespace {
		if t, ok := builtinType(name.Local); ok {
			s.types[name] = t
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown type %s", name)
}

func (s *Schema) errorf(typ, format string, args ...any) error {
	return &Error{Location: s.Location, Type: typ, Message: fmt.Sprintf(format, args...)}
}

// Types returns the declared types marked mapping relevant. A document
// marking none makes every declared type relevant.
func (s *Schema) Types() []*schema.Type {
	var ts []*schema.Type
	for _, t := range s.declared {
		if t.MappingRelevant {
			ts = append(ts, t)
		}
	}
	if len(ts) == 0 {
		return append([]*schema.Type(nil), s.declared...)
	}
	return ts
}

// Prefixes returns a copy of the namespace prefix table.
func (s *Schema) Prefixes() map[string]string {
	m := make(map[string]string, len(s.prefixes))
	for ns, p := range s.prefixes {
		m[ns] = p
	}
	return m
}

// Namespace returns the main namespace.
func (s *Schema) Namespace() string { return s.namespace }

// Index returns an index of every type reachable from the document.
func (s *Schema) Index() *schema.Index { return s.index }
