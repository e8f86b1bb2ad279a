package gen

import (
	"go/token"
	"go/types"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/syssam/typegen"
	"github.com/syssam/typegen/internal/logging"
)

// Kind selects the identifier space a name is allocated in.
type Kind uint8

const (
	// KindPackage allocates dotted package names from namespace URIs.
	KindPackage Kind = iota
	// KindClass allocates struct type names.
	KindClass
	// KindField allocates struct field names.
	KindField
)

// Names derives Go identifiers from qualified names. It is a pure
// function of its inputs: the same name and kind always yield the same
// identifier. Collisions between distinct names are resolved by a Scope.
type Names struct {
	main     string
	prefixes map[string]string
	// prefixClasses applies the namespace prefix rule to class names too,
	// used when all classes share one package.
	prefixClasses bool
}

// NewNames returns a name allocator for a schema with the given main
// namespace and namespace prefix table.
func NewNames(mainNamespace string, prefixes map[string]string) *Names {
	return &Names{main: mainNamespace, prefixes: prefixes}
}

// Identifier returns the identifier for name in the given kind. Package
// names are dotted paths derived from the namespace, possibly empty for
// the root package. Class and field names are exported identifiers, which
// never collide with Go's reserved words.
func (n *Names) Identifier(name typegen.QName, kind Kind) string {
	switch kind {
	case KindPackage:
		return PackageName(name.Namespace)
	case KindClass:
		if n.prefixClasses {
			return Exported(n.prefixed(name))
		}
		return Exported(sanitize(name.Local, false))
	default:
		return Exported(n.prefixed(name))
	}
}

// prefixed returns the base identifier of name, qualified with the
// namespace prefix when name lies outside the main namespace.
func (n *Names) prefixed(name typegen.QName) string {
	base := sanitize(name.Local, false)
	if name.Namespace == n.main {
		return base
	}
	if p := n.prefixes[name.Namespace]; p != "" {
		return sanitize(p, false) + Capitalize(base)
	}
	return base
}

// Sanitize maps s onto identifier characters: diacritics are dropped,
// letters, digits and underscores are kept, and every other rune becomes
// an underscore. A leading digit gets an underscore prefix, and reserved
// words of Go get one too. The result is never empty.
func Sanitize(s string) string {
	return reserved(sanitize(s, false))
}

func sanitize(s string, ascii bool) string {
	s = fold(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '_' || r < utf8.RuneSelf && (isASCIILetter(r) || '0' <= r && r <= '9'):
			b.WriteRune(r)
		case !ascii && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	id := b.String()
	if id == "" {
		return "_"
	}
	if r, _ := utf8.DecodeRuneInString(id); unicode.IsDigit(r) {
		id = "_" + id
	}
	return id
}

func isASCIILetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// fold removes diacritical marks.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func reserved(id string) string {
	if IsReserved(id) {
		return "_" + id
	}
	return id
}

// packageSegment turns one namespace or import path element into a package
// name. A package named main cannot be imported, so it is escaped like a
// keyword.
func packageSegment(s string) string {
	id := sanitize(strings.ToLower(s), true)
	if id == "main" {
		return "_" + id
	}
	return reserved(id)
}

// IsReserved reports whether id is a Go keyword or predeclared identifier.
func IsReserved(id string) bool {
	return token.Lookup(id).IsKeyword() || types.Universe.Lookup(id) != nil
}

// Capitalize upper-cases the first rune of s. One-letter names are
// upper-cased as a whole.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == len(s) {
		return strings.ToUpper(s)
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Exported returns the exported form of the identifier id. Identifiers
// that do not start with a letter that has an upper case form are
// prefixed with X.
func Exported(id string) string {
	id = Capitalize(id)
	if r, _ := utf8.DecodeRuneInString(id); !unicode.IsUpper(r) {
		return "X" + id
	}
	return id
}

// PackageName derives a dotted package name from a namespace URI: the
// host labels in reverse order followed by the lower-cased path segments.
// Opaque URIs such as URNs contribute their colon separated segments.
// A namespace that does not parse as a URI maps to the root package.
func PackageName(namespace string) string {
	if namespace == "" {
		return ""
	}
	u, err := url.Parse(namespace)
	if err != nil {
		logging.Error().Err(err).Str("namespace", namespace).Msg("cannot derive package from namespace, using root package")
		return ""
	}
	var segs []string
	if host := u.Hostname(); host != "" {
		labels := strings.Split(host, ".")
		for i := len(labels) - 1; i >= 0; i-- {
			segs = append(segs, labels[i])
		}
	}
	segs = append(segs, strings.Split(u.Opaque, ":")...)
	segs = append(segs, strings.Split(u.Path, "/")...)
	var parts []string
	for _, s := range segs {
		if s == "" {
			continue
		}
		parts = append(parts, packageSegment(s))
	}
	return strings.Join(parts, ".")
}

// Scope hands out identifiers that are unique within one struct or one
// package. A taken identifier is extended with underscores until free.
type Scope struct {
	used map[string]struct{}
}

// NewScope returns a scope in which the given identifiers are taken.
func NewScope(taken ...string) *Scope {
	s := &Scope{used: make(map[string]struct{}, len(taken))}
	for _, id := range taken {
		s.used[id] = struct{}{}
	}
	return s
}

// New reserves and returns a unique identifier based on id.
func (s *Scope) New(id string) string {
	for {
		if _, ok := s.used[id]; !ok {
			s.used[id] = struct{}{}
			return id
		}
		id += "_"
	}
}

// Reserve marks id as taken.
func (s *Scope) Reserve(id string) {
	s.used[id] = struct{}{}
}
