package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/ettle/strcase"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/typegen"
	"github.com/syssam/typegen/internal/logging"
	"github.com/syssam/typegen/schema"
)

const (
	runtimePkg = "github.com/syssam/typegen"
	decimalPkg = "github.com/shopspring/decimal"
)

// Emitter writes the source code of a compiled graph.
type Emitter interface {
	Emit(ctx context.Context, g *Graph) error
}

// JenniferEmitter renders each class into its own Go file with jennifer,
// plus model.go in the root package declaring the Model registry.
type JenniferEmitter struct {
	target  string
	header  string
	workers int
}

var _ Emitter = (*JenniferEmitter)(nil)

// NewJenniferEmitter creates an emitter writing below cfg.Target.
func NewJenniferEmitter(cfg *Config) *JenniferEmitter {
	e := &JenniferEmitter{
		target:  cfg.Target,
		header:  cfg.Header,
		workers: runtime.GOMAXPROCS(0),
	}
	if cfg.Workers > 0 {
		e.workers = cfg.Workers
	}
	return e
}

// WithWorkers sets the number of parallel workers.
func (e *JenniferEmitter) WithWorkers(n int) *JenniferEmitter {
	if n > 0 {
		e.workers = n
	}
	return e
}

// fileTask is one file to render.
type fileTask struct {
	path   string // output path below the target
	render func() *jen.File
}

// Emit writes all files of g in parallel.
func (e *JenniferEmitter) Emit(ctx context.Context, g *Graph) error {
	if e.target == "" {
		return NewConfigError("Target", nil, "no target directory set")
	}
	tasks := e.tasks(g)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(e.workers)
	for _, t := range tasks {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return e.writeFile(t)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	logging.Info().Int("files", len(tasks)).Str("target", e.target).Msg("generated model")
	return nil
}

// tasks lists the files of g with names unique per package.
func (e *JenniferEmitter) tasks(g *Graph) []fileTask {
	var tasks []fileTask
	for _, p := range g.Packages {
		files := NewScope()
		if p == g.Root() {
			files.Reserve("model")
		}
		for _, cls := range p.Classes {
			name := files.New(fileBase(cls.Ident)) + ".go"
			tasks = append(tasks, fileTask{
				path:   filepath.Join(filepath.FromSlash(p.Dir), name),
				render: func() *jen.File { return e.classFile(g, p, cls) },
			})
		}
	}
	root := g.Root()
	tasks = append(tasks, fileTask{
		path:   filepath.Join(filepath.FromSlash(root.Dir), "model.go"),
		render: func() *jen.File { return e.modelFile(g, root) },
	})
	return tasks
}

// fileBase returns the snake case file name of a class. Names the go
// tool would read as a test file or a build constraint get a suffix.
func fileBase(ident string) string {
	base := strings.Trim(strcase.ToSnake(ident), "_")
	if base == "" {
		base = "class"
	}
	if i := strings.LastIndexByte(base, '_'); i >= 0 && buildSuffixes[base[i+1:]] {
		base += "_model"
	}
	return base
}

var buildSuffixes = func() map[string]bool {
	m := map[string]bool{"test": true}
	for _, s := range strings.Fields(`aix android darwin dragonfly freebsd hurd illumos ios js linux nacl
		netbsd openbsd plan9 solaris wasip1 windows zos 386 amd64 amd64p32 arm armbe arm64 arm64be
		loong64 mips mipsle mips64 mips64le mips64p32 mips64p32le ppc ppc64 ppc64le riscv riscv64
		s390 s390x sparc sparc64 wasm`) {
		m[s] = true
	}
	return m
}()

func (e *JenniferEmitter) writeFile(t fileTask) error {
	var buf bytes.Buffer
	if err := t.render().Render(&buf); err != nil {
		return NewGenerationError("render", t.path, "", err)
	}
	full := filepath.Join(e.target, t.path)
	src, err := imports.Process(full, buf.Bytes(), &imports.Options{Comments: true, TabIndent: true, TabWidth: 8, FormatOnly: true})
	if err != nil {
		return NewGenerationError("format", t.path, "", err)
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return NewGenerationError("write", t.path, "create directory", err)
	}
	if err := os.WriteFile(full, src, 0o644); err != nil {
		return NewGenerationError("write", t.path, "", err)
	}
	logging.Debug().Str("file", full).Msg("wrote file")
	return nil
}

// newFile creates a new jennifer file with the header comment.
func (e *JenniferEmitter) newFile(p *Package) *jen.File {
	f := jen.NewFilePathName(p.Path, p.GoName)
	if e.header != "" {
		f.HeaderComment(e.header)
	}
	return f
}

func (e *JenniferEmitter) classFile(g *Graph, p *Package, cls *Class) *jen.File {
	f := e.newFile(p)
	meta := cls.MetaIdent()

	var members []jen.Code
	if cls.Super != nil {
		members = append(members, typeRef(g, cls.Super))
	}
	for _, fd := range cls.Fields {
		members = append(members, jen.Id(fd.Ident).Add(goType(g, fd)))
	}
	f.Comment(classDoc(cls))
	f.Type().Id(cls.Ident).Struct(members...)
	f.Line()

	lit := jen.Dict{
		jen.Id("New"): jen.Func().Params().Qual(runtimePkg, "Object").Block(
			jen.Return(jen.Op("&").Id(cls.Ident).Values(e.zero(g, p, cls))),
		),
	}
	if !cls.Name.IsZero() {
		lit[jen.Id("Name")] = qname(cls.Name)
	}
	if cls.Group {
		lit[jen.Id("Group")] = jen.True()
	}
	f.Var().Id(meta).Op("=").Op("&").Qual(runtimePkg, "Class").Values(lit)
	f.Line()

	f.Commentf("Class returns the metadata of %s.", cls.Ident)
	f.Func().Params(jen.Op("*").Id(cls.Ident)).Id("Class").Params().Op("*").Qual(runtimePkg, "Class").Block(
		jen.Return(jen.Id(meta)),
	)
	if cls.Super != nil {
		f.Line()
		f.Commentf("Super returns the embedded %s.", cls.Super.Ident)
		f.Func().Params(jen.Id("m").Op("*").Id(cls.Ident)).Id("Super").Params().Qual(runtimePkg, "Object").Block(
			jen.Return(jen.Op("&").Id("m").Dot(cls.Super.Ident)),
		)
	}

	var init []jen.Code
	if cls.Super != nil {
		init = append(init, jen.Id(meta).Dot("Super").Op("=").Add(classRef(g, p, cls.Super)))
	}
	if len(cls.Fields) > 0 {
		fields := make([]jen.Code, len(cls.Fields))
		for i, fd := range cls.Fields {
			fields[i] = e.fieldMeta(g, p, cls, fd)
		}
		init = append(init, jen.Id(meta).Dot("Fields").Op("=").Index().Op("*").Qual(runtimePkg, "Field").Custom(multiline, fields...))
	}
	if len(init) > 0 {
		f.Line()
		f.Func().Id("init").Params().Block(init...)
	}
	return f
}

var multiline = jen.Options{Open: "{", Close: "}", Separator: ",", Multi: true}

func classDoc(cls *Class) string {
	kind := "sequence group"
	if cls.Choice {
		kind = "choice group"
	}
	switch {
	case !cls.Group:
		return fmt.Sprintf("%s is generated for the schema type %s.", cls.Ident, cls.Name)
	case cls.Name.IsZero():
		return fmt.Sprintf("%s is generated for an anonymous %s.", cls.Ident, kind)
	default:
		return fmt.Sprintf("%s is generated for the %s %s.", cls.Ident, kind, cls.Name)
	}
}

// zero returns the initial values of a new object: empty collections,
// including those of embedded classes.
func (e *JenniferEmitter) zero(g *Graph, p *Package, cls *Class) jen.Dict {
	d := jen.Dict{}
	if s := cls.Super; s != nil && s.HasCollections() {
		d[jen.Id(s.Ident)] = jen.Op("*").Add(classRef(g, p, s)).Dot("New").Call().Assert(jen.Op("*").Add(typeRef(g, s)))
	}
	for _, fd := range cls.Fields {
		if fd.Multiplicity == typegen.Collection {
			d[jen.Id(fd.Ident)] = jen.Index().Add(elemType(g, fd)).Values()
		}
	}
	return d
}

func (e *JenniferEmitter) fieldMeta(g *Graph, p *Package, cls *Class, fd *Field) jen.Code {
	sel := jen.Id("o").Assert(jen.Op("*").Id(cls.Ident)).Dot(fd.Ident)
	get, add := accessors(fd)
	d := jen.Dict{
		jen.Id("Name"):         jen.Lit(fd.Ident),
		jen.Id("Role"):         jen.Qual(runtimePkg, roleIdent(fd.Role)),
		jen.Id("Multiplicity"): jen.Qual(runtimePkg, multiplicityIdent(fd.Multiplicity)),
		jen.Id("Get"): jen.Func().Params(jen.Id("o").Qual(runtimePkg, "Object")).Index().Any().Block(
			jen.Return(jen.Qual(runtimePkg, get).Call(sel.Clone())),
		),
		jen.Id("Add"): jen.Func().Params(jen.Id("o").Qual(runtimePkg, "Object"), jen.Id("v").Any()).Error().Block(
			jen.Return(jen.Qual(runtimePkg, add).Call(jen.Op("&").Add(sel.Clone()), jen.Id("v"))),
		),
	}
	if !fd.Name.IsZero() {
		d[jen.Id("QName")] = qname(fd.Name)
	}
	if fd.Type.Class != nil {
		d[jen.Id("Class")] = classRef(g, p, fd.Type.Class)
	}
	return jen.Values(d)
}

// accessors returns the runtime helpers reading and writing a field.
func accessors(fd *Field) (get, add string) {
	switch {
	case fd.Multiplicity == typegen.Collection:
		return "Values", "Append"
	case fd.Type.Class != nil:
		return "Ref", "Set"
	case fd.Optional:
		return "Opt", "SetPtr"
	case fd.Type.Nullable():
		return "Present", "Set"
	default:
		return "One", "Set"
	}
}

func roleIdent(r typegen.Role) string {
	switch r {
	case typegen.RoleValue:
		return "RoleValue"
	case typegen.RoleGroup:
		return "RoleGroup"
	case typegen.RoleChoice:
		return "RoleChoice"
	default:
		return "RoleProperty"
	}
}

func multiplicityIdent(m typegen.Multiplicity) string {
	if m == typegen.Collection {
		return "Collection"
	}
	return "Single"
}

func qname(n typegen.QName) *jen.Statement {
	d := jen.Dict{jen.Id("Local"): jen.Lit(n.Local)}
	if n.Namespace != "" {
		d[jen.Id("Namespace")] = jen.Lit(n.Namespace)
	}
	return jen.Qual(runtimePkg, "QName").Values(d)
}

// typeRef returns the type name of cls, qualified when used from
// another package.
func typeRef(g *Graph, cls *Class) *jen.Statement {
	return jen.Qual(g.Package(cls.Package).Path, cls.Ident)
}

// classRef returns an expression yielding the metadata of cls from
// package p. Other packages reach it through the Class method.
func classRef(g *Graph, p *Package, cls *Class) *jen.Statement {
	if cls.Package == p.Name {
		return jen.Id(cls.MetaIdent())
	}
	return jen.Parens(jen.Op("*").Add(typeRef(g, cls))).Call(jen.Nil()).Dot("Class").Call()
}

func goType(g *Graph, fd *Field) *jen.Statement {
	elem := elemType(g, fd)
	switch {
	case fd.Multiplicity == typegen.Collection:
		return jen.Index().Add(elem)
	case fd.Optional:
		return jen.Op("*").Add(elem)
	default:
		return elem
	}
}

func elemType(g *Graph, fd *Field) *jen.Statement {
	if fd.Type.Class != nil {
		return jen.Op("*").Add(typeRef(g, fd.Type.Class))
	}
	return bindingType(fd.Type.Binding)
}

func bindingType(b schema.Binding) *jen.Statement {
	switch b {
	case schema.BindingString:
		return jen.String()
	case schema.BindingBoolean:
		return jen.Bool()
	case schema.BindingInteger:
		return jen.Int64()
	case schema.BindingFloat:
		return jen.Float64()
	case schema.BindingDecimal:
		return jen.Qual(decimalPkg, "Decimal")
	case schema.BindingDateTime:
		return jen.Qual("time", "Time")
	case schema.BindingBytes:
		return jen.Index().Byte()
	default:
		return jen.Any()
	}
}

func (e *JenniferEmitter) modelFile(g *Graph, root *Package) *jen.File {
	f := e.newFile(root)
	entries := g.Registry.Entries()
	classes := make([]jen.Code, len(entries))
	for i, en := range entries {
		classes[i] = classRef(g, root, en.Class)
	}
	f.Comment("Model maps schema type names to their generated classes.")
	f.Var().Id("Model").Op("=").Qual(runtimePkg, "MustRegistry").Custom(
		jen.Options{Open: "(", Close: ")", Separator: ",", Multi: true}, classes...,
	)
	return f
}
