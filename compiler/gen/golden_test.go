package gen

import (
	"context"
	"flag"
	"fmt"
	"go/scanner"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "regenerate the checked-in city model")

const (
	cityModelPkg = "github.com/syssam/typegen/internal/citymodel"
	cityModelDir = "../../internal/citymodel"
)

// The city model is generated from testdata/city.yaml and compiled by the
// converter tests. Run with -update after changing the emitter.
func TestCityModelUpToDate(t *testing.T) {
	dir := t.TempDir()
	cfg := MustNewConfig(WithPackage(cityModelPkg), WithTarget(dir), WithWorkers(2))
	g, err := Compile(cfg, citySchema(t))
	require.NoError(t, err)
	require.NoError(t, NewJenniferEmitter(cfg).Emit(context.Background(), g))
	generated := readTree(t, dir)

	if *update {
		require.NoError(t, os.RemoveAll(cityModelDir))
		for name, src := range generated {
			path := filepath.Join(cityModelDir, filepath.FromSlash(name))
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, src, 0o644))
		}
		t.Log("updated", cityModelDir)
		return
	}

	checkedIn := readTree(t, cityModelDir)
	require.Equal(t, sortedKeys(generated), sortedKeys(checkedIn), "run go test ./compiler/gen -update")
	for name, src := range generated {
		t.Run(name, func(t *testing.T) {
			if diff := tokenDiff(checkedIn[name], src); diff != "" {
				t.Errorf("%s is stale (run go test ./compiler/gen -update): %s", name, diff)
			}
		})
	}
}

func readTree(t *testing.T, dir string) map[string][]byte {
	t.Helper()
	files := make(map[string][]byte)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = data
		return nil
	})
	require.NoError(t, err)
	return files
}

func sortedKeys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type lexeme struct {
	tok  token.Token
	lit  string
	line int
}

// lex returns the tokens and comments of src. Semicolons are dropped so
// that only layout-independent tokens remain.
func lex(src []byte) []lexeme {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))
	var s scanner.Scanner
	s.Init(file, src, nil, scanner.ScanComments)
	var out []lexeme
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			return out
		}
		if tok == token.SEMICOLON {
			continue
		}
		if lit == "" {
			lit = tok.String()
		}
		out = append(out, lexeme{tok: tok, lit: lit, line: fset.Position(pos).Line})
	}
}

// tokenDiff describes the first token where got differs from want, or
// returns "" when both sources hold the same tokens.
func tokenDiff(want, got []byte) string {
	w, g := lex(want), lex(got)
	for i := 0; i < len(w) && i < len(g); i++ {
		if w[i].tok != g[i].tok || w[i].lit != g[i].lit {
			return fmt.Sprintf("line %d: want %q, generated line %d: %q", w[i].line, w[i].lit, g[i].line, g[i].lit)
		}
	}
	switch {
	case len(w) > len(g):
		return fmt.Sprintf("generated code ends before line %d: %q", w[len(g)].line, w[len(g)].lit)
	case len(g) > len(w):
		return fmt.Sprintf("generated code continues at line %d: %q", g[len(w)].line, g[len(w)].lit)
	}
	return ""
}

func TestTokenDiff(t *testing.T) {
	a := []byte("package x\n\nvar A = map[string]int{\"a\": 1}\n")
	b := []byte("package x\nvar A = map[string]int{\n\t\"a\": 1,\n}\n")
	assert.Contains(t, tokenDiff(a, b), `","`, "trailing commas are tokens")
	assert.Empty(t, tokenDiff(b, []byte("package  x\n\n\nvar A = map[string]int{\n\"a\":   1,\n}")))
	assert.Contains(t, tokenDiff(a, []byte("package x\n// doc\nvar A = map[string]int{\"a\": 1}\n")), "// doc")
	assert.Contains(t, tokenDiff(a, []byte("package x\n")), "ends before")
}
