package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type TagKind int

const (
	FieldTag TagKind = iota // "int32 len", "uint8 raw[12]"
	SkipTag                 // "skip 3"
	BitsTag                 // "uint8 z0:2"
)

func (k TagKind) String() string {
	switch k {
	case FieldTag:
		return "field"
	case SkipTag:
		return "skip"
	case BitsTag:
		return "bits"
	default:
		return "unknown"
	}
}

// Tag is one parsed field shorthand
type Tag struct {
	Kind  TagKind
	Type  string // element type or schema name
	Name  string
	Count int // array length, 0 for a single value
	Bits  int // bit width for BitsTag, padding amount for SkipTag
}

var (
	skipRe  = regexp.MustCompile(`^skip\s+(\S+)$`)
	fieldRe = regexp.MustCompile(`^(\w+)\s+(\w+)(?:\[([^\]]*)\]|:(\S*))?$`)
)

// ParseTag parses a field shorthand
//
// Semantics:
//   - "<type> <name>"        : single value of type
//   - "<type> <name>[N]"     : fixed array of N values
//   - "<type> <name>:N"      : bitfield member N bits wide
//   - "skip N"               : N bytes of padding, or N bits inside a bitfield
//
// A type that names another schema embeds it; that distinction is made by
// the caller, which knows the declared types.
//
// Examples:
//
//	"int32 len"      → field len of type int32
//	"uint8 raw[12]"  → 12 element uint8 array
//	"uint8 z0:2"     → 2 bit member z0
//	"Header hdrs[2]" → two embedded Header values
//	"skip 3"         → 3 unused bytes
func ParseTag(tag string) (*Tag, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, fmt.Errorf("empty field declaration")
	}

	if m := skipRe.FindStringSubmatch(tag); m != nil {
		n, err := positive(m[1])
		if err != nil {
			return nil, fmt.Errorf("invalid skip %q: %w", tag, err)
		}
		return &Tag{Kind: SkipTag, Bits: n}, nil
	}

	m := fieldRe.FindStringSubmatch(tag)
	if m == nil {
		return nil, fmt.Errorf("invalid field declaration %q (expected \"<type> <name>\")", tag)
	}

	t := &Tag{Kind: FieldTag, Type: m[1], Name: m[2]}
	switch {
	case strings.Contains(tag, "["):
		n, err := positive(m[3])
		if err != nil {
			return nil, fmt.Errorf("invalid count in %q: %w", tag, err)
		}
		t.Count = n
	case strings.Contains(tag, ":"):
		n, err := positive(m[4])
		if err != nil {
			return nil, fmt.Errorf("invalid bit width in %q: %w", tag, err)
		}
		t.Kind = BitsTag
		t.Bits = n
	}
	return t, nil
}

func positive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
