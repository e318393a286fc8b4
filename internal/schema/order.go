package schema

import "strings"

// Order sorts schemas so that every schema follows the schemas it inherits
// from or embeds, keeping declaration order otherwise. Names for which
// defined returns true are treated as already available. A reference that
// is neither in schemas nor defined is unresolved; a chain of references
// leading back to its start is a cycle.
func Order(schemas []*Schema, defined func(string) bool) ([]*Schema, error) {
	byName := make(map[string]*Schema, len(schemas))
	for _, s := range schemas {
		if _, ok := byName[s.Name]; ok {
			return nil, NewError(KindDuplicateSchema).Schema(s.Name).
				Detail("schema %q is declared more than once", s.Name).Build()
		}
		byName[s.Name] = s
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(schemas))
	out := make([]*Schema, 0, len(schemas))
	var stack []string

	var visit func(s *Schema) error
	visit = func(s *Schema) error {
		switch state[s.Name] {
		case done:
			return nil
		case visiting:
			start := 0
			for i, name := range stack {
				if name == s.Name {
					start = i
					break
				}
			}
			cycle := append(append([]string{}, stack[start:]...), s.Name)
			return NewError(KindCycle).Schema(s.Name).
				Detail("cyclic composition %s", strings.Join(cycle, " -> ")).Build()
		}

		state[s.Name] = visiting
		stack = append(stack, s.Name)
		for _, ref := range s.References() {
			dep, ok := byName[ref]
			if !ok {
				if defined != nil && defined(ref) {
					continue
				}
				if ref == s.Parent {
					return Unresolved(s.Name, []string{"parent"}, ref)
				}
				return UnresolvedType(s.Name, nil, ref)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[s.Name] = done
		out = append(out, s)
		return nil
	}

	for _, s := range schemas {
		if err := visit(s); err != nil {
			return nil, err
		}
	}
	return out, nil
}
