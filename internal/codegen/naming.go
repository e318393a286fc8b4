package codegen

import (
	"fmt"
	"go/token"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// reserved are method and field names the generated views already use
var reserved = map[string]bool{
	"Ref":      true,
	"CRef":     true,
	"Value":    true,
	"Bytes":    true,
	"Zero":     true,
	"Load":     true,
	"Assign":   true,
	"AsParent": true,
	"b":        true,
	"buf":      true,
}

// Ident maps a schema field name to a Go method name. Snake case parts are
// title cased and joined: "msg_len" becomes "MsgLen". A leading underscore
// produces an unexported name: "_crc" becomes "crc".
func Ident(name string) (string, error) {
	unexported := strings.HasPrefix(name, "_")
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' })
	if len(parts) == 0 {
		return "", fmt.Errorf("field name %q has no identifier characters", name)
	}

	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for i, p := range parts {
		if i == 0 && unexported {
			b.WriteString(p)
			continue
		}
		b.WriteString(title.String(p))
	}

	id := b.String()
	if unexported {
		id = strings.ToLower(id[:1]) + id[1:]
	}
	if token.IsKeyword(id) {
		id += "_"
	}
	if !token.IsIdentifier(id) {
		return "", fmt.Errorf("field name %q does not map to a Go identifier", name)
	}
	return id, nil
}

// viewNames holds the generated identifiers for one schema
type viewNames struct {
	Size  string
	Value string
	Ref   string
	CRef  string

	// unexported constructors that do not slice the buffer
	makeRef  string
	makeCRef string

	// default-policy aliases
	DefValue string
	DefRef   string
	DefCRef  string
}

func namesFor(schema string) viewNames {
	return viewNames{
		Size:     schema + "Size",
		Value:    schema + "ValueOf",
		Ref:      schema + "RefOf",
		CRef:     schema + "CRefOf",
		makeRef:  "make" + schema + "Ref",
		makeCRef: "make" + schema + "CRef",
		DefValue: schema + "Value",
		DefRef:   schema + "Ref",
		DefCRef:  schema + "CRef",
	}
}

// idents returns every top-level identifier declared for the schema
func (n viewNames) idents() []string {
	return []string{
		n.Size, n.Value, n.Ref, n.CRef,
		n.makeRef, n.makeCRef,
		n.DefValue, n.DefRef, n.DefCRef,
		"New" + n.Value, "New" + n.Ref, "New" + n.CRef,
		"New" + n.DefValue, "New" + n.DefRef, "New" + n.DefCRef,
	}
}
