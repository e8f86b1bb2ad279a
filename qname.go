package typegen

import (
	"fmt"
	"strings"
)

// QName is a qualified name: a namespace URI and a local part.
type QName struct {
	Namespace string
	Local     string
}

// Q returns a new QName.
func Q(namespace, local string) QName {
	return QName{Namespace: namespace, Local: local}
}

// IsZero reports whether the name has neither a namespace nor a local part.
func (n QName) IsZero() bool {
	return n.Namespace == "" && n.Local == ""
}

// String returns the name in Clark notation, {namespace}local.
// The braces are omitted for names without a namespace.
func (n QName) String() string {
	if n.Namespace == "" {
		return n.Local
	}
	return "{" + n.Namespace + "}" + n.Local
}

// ParseQName parses a name in Clark notation. A name without braces
// has an empty namespace.
func ParseQName(s string) (QName, error) {
	if !strings.HasPrefix(s, "{") {
		if s == "" {
			return QName{}, fmt.Errorf("typegen: empty qualified name")
		}
		return QName{Local: s}, nil
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return QName{}, fmt.Errorf("typegen: unterminated namespace in %q", s)
	}
	n := QName{Namespace: s[1:end], Local: s[end+1:]}
	if n.Local == "" {
		return QName{}, fmt.Errorf("typegen: missing local part in %q", s)
	}
	return n, nil
}

// MustParseQName is like ParseQName but panics on error.
func MustParseQName(s string) QName {
	n, err := ParseQName(s)
	if err != nil {
		panic(err)
	}
	return n
}
