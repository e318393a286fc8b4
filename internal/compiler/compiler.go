// Package compiler runs the evgen pipeline: schema files are parsed,
// merged into one compilation unit, laid out and turned into Go views.
package compiler

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"github.com/alexhholmes/evgen/internal/analyzer"
	"github.com/alexhholmes/evgen/internal/codegen"
	"github.com/alexhholmes/evgen/internal/config"
	"github.com/alexhholmes/evgen/internal/parser"
	"github.com/alexhholmes/evgen/internal/schema"
)

// Result is the output of one compilation
type Result struct {
	Package  string
	Source   []byte
	Layouts  []*analyzer.Layout
	Analyzer *analyzer.Analyzer
}

// Compile parses and compiles the given schema files into one Go file
func Compile(cfg *config.Config, files ...string) (*Result, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no schema files")
	}

	parsed := make([]*parser.File, 0, len(files))
	for _, name := range files {
		f, err := parser.ParseFile(name)
		if err != nil {
			return nil, err
		}
		Logger().Debug("parsed schema file",
			zap.String("file", name),
			zap.Int("schemas", len(f.Schemas)),
			zap.Int("aliases", len(f.Aliases)))
		parsed = append(parsed, f)
	}
	return CompileFiles(cfg, parsed...)
}

// CompileFiles compiles already parsed schema files. A package or endian
// declared in a file overrides the configuration; aliases and schemas of
// every file share one namespace.
func CompileFiles(cfg *config.Config, files ...*parser.File) (*Result, error) {
	pkg := ""
	aliases := map[string]string{}
	registry := analyzer.NewTypeRegistry()
	var schemas []*schema.Schema

	for _, f := range files {
		if f.Package != "" {
			if pkg != "" && pkg != f.Package {
				return nil, fmt.Errorf("schema files declare packages %q and %q", pkg, f.Package)
			}
			pkg = f.Package
		}

		for _, name := range f.AliasNames() {
			typ := f.Aliases[name]
			if prev, ok := aliases[name]; ok && prev != typ {
				return nil, fmt.Errorf("type %s is declared as both %s and %s", name, prev, typ)
			}
			aliases[name] = typ
			registry.RegisterAlias(name, typ)
		}

		for _, s := range f.Schemas {
			if s.Endian == "" {
				s.Endian = f.Endian
			}
			schemas = append(schemas, s)
		}
	}
	if pkg == "" {
		pkg = cfg.Package
	}

	unit := schema.NewUnit()
	if err := unit.DefineAll(schemas); err != nil {
		return nil, err
	}

	a := analyzer.New(unit, registry)
	layouts, err := a.Layouts()
	if err != nil {
		return nil, err
	}

	gen := codegen.NewGenerator(a, codegen.Options{
		Package: pkg,
		Runtime: cfg.Runtime,
		Endian:  cfg.Endian,
		Header:  cfg.Header,
		Format:  cfg.Gofmt,
		Imports: cfg.Imports,
	})
	src, err := gen.GenerateFile()
	if err != nil {
		return nil, err
	}

	Logger().Info("compiled schemas",
		zap.String("package", pkg),
		zap.Int("schemas", unit.Len()),
		zap.Int("bytes", len(src)))

	return &Result{
		Package:  pkg,
		Source:   src,
		Layouts:  layouts,
		Analyzer: a,
	}, nil
}

// WriteLayouts prints the resolved offset table of every layout
func WriteLayouts(w io.Writer, layouts []*analyzer.Layout) error {
	var b strings.Builder
	for _, l := range layouts {
		fmt.Fprintf(&b, "\n%s (size=%d", l.Name, l.Size)
		if l.Parent != nil {
			fmt.Fprintf(&b, ", parent=%s", l.Parent.Name)
		}
		b.WriteString(")\n")
		b.WriteString("Fields:\n")
		for _, f := range l.All() {
			fmt.Fprintf(&b, "  %-15s %-12s @%d", f.Name, f.Type, f.Offset)
			switch f.Kind {
			case analyzer.BitsField:
				fmt.Fprintf(&b, " bits %d:%d of %s", f.BitOffset, f.BitOffset+f.BitWidth, f.Storage)
			case analyzer.ArrayField, analyzer.EmbedArrayField:
				fmt.Fprintf(&b, " [%d]x%d", f.Count, f.Elem)
			}
			fmt.Fprintf(&b, " size=%d", f.Size)
			if f.Owner != l.Name {
				fmt.Fprintf(&b, " (from %s)", f.Owner)
			}
			if len(f.Group) > 0 {
				fmt.Fprintf(&b, " in %s", strings.Join(f.Group, "."))
			}
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Diff returns a unified diff from old to generated, empty when equal
func Diff(path string, old, generated []byte) (string, error) {
	if string(old) == string(generated) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(old)),
		B:        difflib.SplitLines(string(generated)),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	})
}

// Check compares generated with the file at path. A missing file is stale.
func Check(path string, generated []byte) (string, error) {
	old, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	return Diff(path, old, generated)
}

// Write stores generated at path unless the file already holds it
func Write(path string, generated []byte) (bool, error) {
	old, err := os.ReadFile(path)
	if err == nil && string(old) == string(generated) {
		return false, nil
	}
	if err := os.WriteFile(path, generated, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
