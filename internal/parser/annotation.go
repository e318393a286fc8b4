package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexhholmes/evgen/ev"
)

// Header holds a parsed schema header
type Header struct {
	Name   string
	Parent string // empty without layout inheritance
	Endian string // empty to use the file or config default
}

var (
	headerRe = regexp.MustCompile(`^(\w+)(?:\s*:\s*(\w+))?((?:\s+\S+)*)$`)
	pairRe   = regexp.MustCompile(`^(\w+)=([\w-]+)$`)
)

// ParseHeader parses the schema header of a schema entry
//
// Expected format:
//
//	Header
//	Msg : Header
//	Msg : Header endian=big
//	Record endian=native
//
// Params are space-separated key=value pairs following the name and
// optional parent.
func ParseHeader(text string) (*Header, error) {
	m := headerRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil, fmt.Errorf("invalid schema header %q (expected \"Name [: Parent] [key=value...]\")", text)
	}

	h := &Header{Name: m[1], Parent: m[2]}
	for _, param := range strings.Fields(m[3]) {
		pair := pairRe.FindStringSubmatch(param)
		if pair == nil {
			return nil, fmt.Errorf("invalid parameter %q in schema header", param)
		}

		switch key, value := pair[1], pair[2]; key {
		case "endian":
			if _, err := ev.ParseOrder(value); err != nil {
				return nil, err
			}
			h.Endian = value
		default:
			return nil, fmt.Errorf("unknown parameter: %s", key)
		}
	}

	return h, nil
}
