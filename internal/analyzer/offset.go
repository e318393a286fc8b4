package analyzer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexhholmes/evgen/internal/schema"
)

// OffsetOf resolves a dotted field path to a byte offset from the start of
// the named schema. Segments may index arrays and embedded schema arrays,
// and descend into embedded schemas: "hdrs[1].len". Bitfield members
// resolve to the offset of their storage word.
func (a *Analyzer) OffsetOf(name, path string) (int, error) {
	l, err := a.Layout(name)
	if err != nil {
		return 0, err
	}
	if path == "" {
		return 0, schema.NewError(schema.KindUnknownField).Schema(name).Detail("empty field path").Build()
	}

	segments := strings.Split(path, ".")
	offset := 0
	for i, seg := range segments {
		fieldName, index, err := parseSegment(seg)
		if err != nil {
			return 0, schema.NewError(schema.KindUnknownField).Schema(name).Path(segments[:i+1]...).
				Cause(err).Detail("malformed path segment %q", seg).Build()
		}

		f, ok := l.Field(fieldName)
		if !ok {
			return 0, schema.NewError(schema.KindUnknownField).Schema(name).Path(segments[:i+1]...).
				Detail("%s has no field %q", l.Name, fieldName).Build()
		}
		offset += f.Offset

		if index >= 0 {
			if f.Count == 0 {
				return 0, schema.NewError(schema.KindUnknownField).Schema(name).Path(segments[:i+1]...).
					Detail("field %q is not an array", fieldName).Build()
			}
			if index >= f.Count {
				return 0, schema.NewError(schema.KindUnknownField).Schema(name).Path(segments[:i+1]...).
					Detail("index %d out of range [0, %d)", index, f.Count).Build()
			}
			offset += index * f.Elem
		}

		if i == len(segments)-1 {
			break
		}

		switch {
		case f.Kind == EmbedField, f.Kind == EmbedArrayField && index >= 0:
			l, err = a.Layout(f.Type)
			if err != nil {
				return 0, err
			}
		default:
			return 0, schema.NewError(schema.KindUnknownField).Schema(name).Path(segments[:i+1]...).
				Detail("cannot descend into %s field %q", f.Kind, fieldName).Build()
		}
	}

	return offset, nil
}

// parseSegment splits "name[3]" into name and index; index is -1 when absent
func parseSegment(seg string) (string, int, error) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		if seg == "" {
			return "", -1, fmt.Errorf("empty segment")
		}
		return seg, -1, nil
	}
	if !strings.HasSuffix(seg, "]") || open == 0 {
		return "", -1, fmt.Errorf("invalid index syntax")
	}
	n, err := strconv.Atoi(seg[open+1 : len(seg)-1])
	if err != nil || n < 0 {
		return "", -1, fmt.Errorf("invalid index %q", seg[open+1:len(seg)-1])
	}
	return seg[:open], n, nil
}

// sizeExpr is a sum of symbolic terms plus a folded literal
type sizeExpr struct {
	terms []string
	lit   int
}

func (e sizeExpr) literal() bool { return len(e.terms) == 0 }

func (e sizeExpr) String() string {
	if e.literal() {
		return strconv.Itoa(e.lit)
	}
	s := strings.Join(e.terms, " + ")
	if e.lit != 0 {
		s += " + " + strconv.Itoa(e.lit)
	}
	return s
}

func (e *sizeExpr) add(o sizeExpr) {
	e.terms = append(e.terms, o.terms...)
	e.lit += o.lit
}

// SizeExpr renders the size of a schema as a Go constant expression in
// which parent and embedded schemas appear through ident. For a schema
// Msg : Header { int8 flag } this is "HeaderSize + 1" when ident appends
// "Size". Unions render as max(...).
func (a *Analyzer) SizeExpr(name string, ident func(string) string) (string, error) {
	l, err := a.Layout(name)
	if err != nil {
		return "", err
	}

	var e sizeExpr
	if l.Parent != nil {
		e.terms = append(e.terms, ident(l.Parent.Name))
	}
	for _, n := range l.Schema.Children {
		ne, err := a.nodeExpr(name, n, ident)
		if err != nil {
			return "", err
		}
		e.add(ne)
	}
	return e.String(), nil
}

func (a *Analyzer) nodeExpr(owner string, n schema.Node, ident func(string) string) (sizeExpr, error) {
	switch n := n.(type) {
	case *schema.Struct:
		var e sizeExpr
		for _, c := range n.Children {
			ce, err := a.nodeExpr(owner, c, ident)
			if err != nil {
				return sizeExpr{}, err
			}
			e.add(ce)
		}
		return e, nil

	case *schema.Union:
		var alts []sizeExpr
		allLiteral := true
		for _, c := range n.Alternatives {
			ce, err := a.nodeExpr(owner, c, ident)
			if err != nil {
				return sizeExpr{}, err
			}
			alts = append(alts, ce)
			allLiteral = allLiteral && ce.literal()
		}
		switch {
		case len(alts) == 0:
			return sizeExpr{}, nil
		case len(alts) == 1:
			return alts[0], nil
		case allLiteral:
			largest := 0
			for _, alt := range alts {
				largest = max(largest, alt.lit)
			}
			return sizeExpr{lit: largest}, nil
		}
		parts := make([]string, len(alts))
		for i, alt := range alts {
			parts[i] = alt.String()
		}
		return sizeExpr{terms: []string{"max(" + strings.Join(parts, ", ") + ")"}}, nil

	case *schema.Embed:
		term := ident(n.Schema)
		if n.Count > 0 {
			term = fmt.Sprintf("%s*%d", term, n.Count)
		}
		return sizeExpr{terms: []string{term}}, nil

	default:
		size, err := a.NodeSize(owner, n)
		if err != nil {
			return sizeExpr{}, err
		}
		return sizeExpr{lit: size}, nil
	}
}
