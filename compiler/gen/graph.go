package gen

import (
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/ettle/strcase"

	"github.com/syssam/typegen"
	"github.com/syssam/typegen/compiler/load"
	"github.com/syssam/typegen/internal/logging"
	"github.com/syssam/typegen/schema"
)

// Graph is the result of compiling a schema: the classes to generate,
// the packages holding them and the model registry.
type Graph struct {
	Config *Config
	// Types are the classes of schema types in the order they were completed.
	Types []*Class
	// Groups are the classes of groups in the order they were completed.
	Groups []*Class
	// Packages in the order they were first used. The root package
	// always comes first.
	Packages []*Package
	// Registry maps type names to their classes.
	Registry *ModelRegistry

	pkgs map[string]*Package
}

// Package is a generated Go package.
type Package struct {
	// Name is the dotted package name, empty for the root package.
	Name string
	// Path is the import path.
	Path string
	// Dir is the slash separated directory relative to the target.
	Dir string
	// GoName is the name in the package clause.
	GoName string
	// Classes in the order they were allocated.
	Classes []*Class

	scope *Scope
}

// Root returns the root package, which also holds the model registry.
func (g *Graph) Root() *Package { return g.Packages[0] }

// Package returns the package with the given dotted name.
func (g *Graph) Package(name string) *Package { return g.pkgs[name] }

// identifiers generated into every struct or package besides the classes.
var (
	classMethods    = []string{"Class", "Super"}
	rootReserved    = []string{"Model"}
	valueFieldIdent = "Value"
)

// Compile builds the class graph of all types exposed by p. Nothing is
// returned for a schema that fails to compile.
func Compile(cfg *Config, p load.Provider) (*Graph, error) {
	if cfg == nil {
		cfg = MustNewConfig()
	}
	c := &compiler{
		cfg:    cfg,
		names:  NewNames(p.Namespace(), p.Prefixes()),
		types:  make(map[typegen.QName]*Class),
		groups: make(map[string]*Class),
		graph: &Graph{
			Config:   cfg,
			Registry: NewModelRegistry(),
			pkgs:     make(map[string]*Package),
		},
	}
	c.names.prefixClasses = cfg.Layout == LayoutFlat
	c.maxDepth = cfg.MaxDepth
	if c.maxDepth <= 0 {
		c.maxDepth = DefaultMaxDepth
	}
	c.pkg("")
	for _, t := range p.Types() {
		if cfg.skipped(t.Name.Local) {
			logging.Warn().Stringer("type", t.Name).Msg("skipped creating excluded type")
			continue
		}
		if _, err := c.resolveClass(t); err != nil {
			return nil, err
		}
	}
	if cfg.Layout == LayoutNamespace {
		if err := checkImports(c.graph); err != nil {
			return nil, err
		}
	}
	logging.Debug().
		Int("types", len(c.graph.Types)).
		Int("groups", len(c.graph.Groups)).
		Int("packages", len(c.graph.Packages)).
		Msg("compiled schema")
	return c.graph, nil
}

// compiler holds the state of one compilation.
type compiler struct {
	cfg      *Config
	names    *Names
	types    map[typegen.QName]*Class
	groups   map[string]*Class
	graph    *Graph
	depth    int
	maxDepth int
}

// pkg returns the package with the given dotted name, creating it on
// first use.
func (c *compiler) pkg(name string) *Package {
	if c.cfg.Layout == LayoutFlat {
		name = ""
	}
	if p, ok := c.graph.pkgs[name]; ok {
		return p
	}
	root := c.cfg.Package
	if root == "" {
		root = "model"
	}
	p := &Package{Name: name, Path: root, scope: NewScope(classMethods...)}
	if name == "" {
		p.GoName = packageSegment(path.Base(root))
		for _, id := range rootReserved {
			p.scope.Reserve(id)
		}
	} else {
		p.Dir = strings.ReplaceAll(name, ".", "/")
		p.Path = root + "/" + p.Dir
		p.GoName = name[strings.LastIndexByte(name, '.')+1:]
	}
	c.graph.pkgs[name] = p
	c.graph.Packages = append(c.graph.Packages, p)
	return p
}

func (c *compiler) enter(name typegen.QName) error {
	c.depth++
	if c.depth > c.maxDepth {
		return NewSchemaError(ErrDepthExceeded, name.String(), "", "nesting exceeds "+strconv.Itoa(c.maxDepth))
	}
	return nil
}

func (c *compiler) leave() { c.depth-- }

// resolveClass returns the class of t, compiling it on first request. The
// class is memoized before its supertype and children are compiled, so a
// reference back to t yields the class under construction.
func (c *compiler) resolveClass(t *schema.Type) (*Class, error) {
	if cls, ok := c.types[t.Name]; ok {
		return cls, nil
	}
	if err := c.enter(t.Name); err != nil {
		return nil, err
	}
	defer c.leave()
	if err := checkSuperChain(t); err != nil {
		return nil, err
	}
	pkg := c.pkg(c.names.Identifier(t.Name, KindPackage))
	cls := &Class{
		Name:    t.Name,
		Package: pkg.Name,
		Ident:   pkg.scope.New(c.names.Identifier(t.Name, KindClass)),
	}
	pkg.Classes = append(pkg.Classes, cls)
	c.types[t.Name] = cls

	if t.IsValueType() {
		if t.Binding == schema.BindingNone {
			return nil, NewSchemaError(ErrMissingConstraint, t.Name.String(), "", "value type has no binding")
		}
		cls.ValueType = true
		cls.Root = true
		cls.Fields = []*Field{{
			Ident:        valueFieldIdent,
			Type:         FieldType{Binding: t.Binding},
			Multiplicity: typegen.Single,
			Role:         typegen.RoleValue,
		}}
	} else {
		// A type dropping the value of its supertype does not extend it.
		if t.Super != nil && !(!t.HasValue && t.Super.HasValue) {
			super, err := c.resolveClass(t.Super)
			if err != nil {
				return nil, err
			}
			cls.Super = super
		} else {
			cls.Root = true
		}
		scope := NewScope(classMethods...)
		if cls.Super != nil {
			scope.Reserve(cls.Super.Ident)
		}
		fields, err := c.fields(t.Name, cls, scope, t.Children, nil)
		if err != nil {
			return nil, err
		}
		cls.Fields = fields
	}
	if err := c.graph.Registry.Register(t.Name, cls); err != nil {
		return nil, err
	}
	c.graph.Types = append(c.graph.Types, cls)
	return cls, nil
}

func checkSuperChain(t *schema.Type) error {
	seen := map[typegen.QName]struct{}{t.Name: {}}
	for s := t.Super; s != nil; s = s.Super {
		if _, ok := seen[s.Name]; ok {
			return NewSchemaError(ErrCyclicInheritance, t.Name.String(), "", "supertype chain returns to "+s.Name.String())
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}

// fields compiles the children of a type or group into fields. Anonymous
// groups are identified by the owning type and their index path.
func (c *compiler) fields(owner typegen.QName, cls *Class, scope *Scope, children []schema.Child, at []int) ([]*Field, error) {
	var fields []*Field
	for i, child := range children {
		name := child.ChildName()
		card := child.Occurrence()
		f := &Field{Name: name}
		var base string
		switch {
		case child.AsProperty() != nil:
			p := child.AsProperty()
			if card == nil {
				return nil, NewSchemaError(ErrMissingConstraint, owner.String(), name.String(), "property has no cardinality")
			}
			if p.Type == nil {
				return nil, NewSchemaError(ErrMissingConstraint, owner.String(), name.String(), "property has no type")
			}
			if p.Type.IsValueType() {
				if p.Type.Binding == schema.BindingNone {
					return nil, NewSchemaError(ErrMissingConstraint, p.Type.Name.String(), "", "value type has no binding")
				}
				f.Type = FieldType{Binding: p.Type.Binding}
			} else {
				if c.cfg.skipped(p.Type.Name.Local) {
					logging.Warn().
						Stringer("type", owner).
						Stringer("property", name).
						Msg("skipped creating property with excluded type")
					continue
				}
				ref, err := c.resolveClass(p.Type)
				if err != nil {
					return nil, err
				}
				f.Type = FieldType{Class: ref}
			}
			f.Role = typegen.RoleProperty
			base = c.names.Identifier(name, KindField)
		case child.AsGroup() != nil:
			g := child.AsGroup()
			if card == nil {
				return nil, NewSchemaError(ErrMissingConstraint, owner.String(), groupLabel(g), "group has no cardinality")
			}
			base = c.groupFieldIdent(g)
			idx := append(append([]int(nil), at...), i)
			ref, err := c.resolveGroupClass(owner, cls, g, base, idx)
			if err != nil {
				return nil, err
			}
			f.Type = FieldType{Class: ref}
			f.Role = typegen.RoleGroup
			if g.Choice {
				f.Role = typegen.RoleChoice
			}
		default:
			return nil, NewSchemaError(ErrUnsupportedConstruct, owner.String(), name.String(), "child is neither a property nor a group")
		}
		f.Ident = scope.New(base)
		if card.MayOccurMultipleTimes() {
			f.Multiplicity = typegen.Collection
		} else {
			f.Multiplicity = typegen.Single
			// Only one alternative of a choice is present.
			f.Optional = (card.Min == 0 || cls.Choice) && !f.Type.Nullable()
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// groupFieldIdent names the field holding a group. Choices take the
// identifier derived from their display name unless it reads as a
// generic choice placeholder.
func (c *compiler) groupFieldIdent(g *schema.Group) string {
	if g.Choice && g.DisplayName != "" {
		if !strings.Contains(sanitize(g.DisplayName, false), "choice") {
			return displayIdent(g.DisplayName)
		}
	}
	if !g.Name.IsZero() {
		return c.names.Identifier(g.Name, KindField)
	}
	if g.Choice {
		return "Choice"
	}
	if g.DisplayName != "" {
		return displayIdent(g.DisplayName)
	}
	return "Group"
}

func displayIdent(display string) string {
	return Exported(sanitize(strcase.ToPascal(display), false))
}

func groupLabel(g *schema.Group) string {
	if !g.Name.IsZero() {
		return g.Name.String()
	}
	return g.DisplayName
}

// resolveGroupClass returns the class of a group, compiling it on first
// request. Named groups are memoized by name. Groups without a name are
// memoized by their owner type and index path, since their name is not a
// usable key.
func (c *compiler) resolveGroupClass(owner typegen.QName, parent *Class, g *schema.Group, fieldIdent string, at []int) (*Class, error) {
	key := groupKey(owner, g, at)
	if cls, ok := c.groups[key]; ok {
		return cls, nil
	}
	if err := c.enter(owner); err != nil {
		return nil, err
	}
	defer c.leave()

	var pkg *Package
	var ident string
	if g.Name.IsZero() {
		pkg = c.pkg(parent.Package)
		ident = pkg.scope.New(parent.Ident + fieldIdent)
	} else {
		pkg = c.pkg(c.names.Identifier(g.Name, KindPackage))
		ident = pkg.scope.New(c.names.Identifier(g.Name, KindClass))
	}
	cls := &Class{
		Name:    g.Name,
		Package: pkg.Name,
		Ident:   ident,
		Group:   true,
		Choice:  g.Choice,
	}
	pkg.Classes = append(pkg.Classes, cls)
	c.groups[key] = cls

	fields, err := c.fields(owner, cls, NewScope(classMethods...), g.Children, at)
	if err != nil {
		return nil, err
	}
	cls.Fields = fields
	c.graph.Groups = append(c.graph.Groups, cls)
	return cls, nil
}

func groupKey(owner typegen.QName, g *schema.Group, at []int) string {
	if !g.Name.IsZero() {
		return "name:" + g.Name.String()
	}
	var b strings.Builder
	b.WriteString("path:")
	b.WriteString(owner.String())
	for _, i := range at {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}

// checkImports reports generated packages that would import each other.
// The root package imports every package holding a registered class.
func checkImports(g *Graph) error {
	deps := make(map[string]map[string]struct{})
	edge := func(from, to string) {
		if from == to {
			return
		}
		if deps[from] == nil {
			deps[from] = make(map[string]struct{})
		}
		deps[from][to] = struct{}{}
	}
	for _, e := range g.Registry.Entries() {
		edge("", e.Class.Package)
	}
	for _, p := range g.Packages {
		for _, cls := range p.Classes {
			if cls.Super != nil {
				edge(cls.Package, cls.Super.Package)
			}
			for _, f := range cls.Fields {
				if f.Type.Class != nil {
					edge(cls.Package, f.Type.Class.Package)
				}
			}
		}
	}
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int)
	var stack []string
	var visit func(p string) []string
	visit = func(p string) []string {
		state[p] = visiting
		stack = append(stack, p)
		next := make([]string, 0, len(deps[p]))
		for q := range deps[p] {
			next = append(next, q)
		}
		sort.Strings(next)
		for _, q := range next {
			switch state[q] {
			case visiting:
				for i := range stack {
					if stack[i] == q {
						return append(append([]string(nil), stack[i:]...), q)
					}
				}
			case unvisited:
				if cycle := visit(q); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[p] = done
		return nil
	}
	for _, p := range g.Packages {
		if state[p.Name] != unvisited {
			continue
		}
		if cycle := visit(p.Name); cycle != nil {
			names := make([]string, len(cycle))
			for i, n := range cycle {
				names[i] = g.pkgs[n].Path
			}
			return NewSchemaError(ErrImportCycle, "", "", strings.Join(names, " -> ")+"; generate with the flat layout instead")
		}
	}
	return nil
}
