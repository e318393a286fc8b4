package parser

import (
	"fmt"
)

// Example demonstrating shorthand parsing for a packed header
func ExampleParseTag() {
	// fields:
	//   - int32 len
	//   - uint8 raw[12]
	//   - bitfield uint8:
	//       - uint8 z0:2
	//       - skip 6
	//   - skip 3

	tags := []string{
		"int32 len",     // single scalar
		"uint8 raw[12]", // array
		"uint8 z0:2",    // bitfield member
		"skip 3",        // padding
	}

	for _, tag := range tags {
		t, err := ParseTag(tag)
		if err != nil {
			fmt.Printf("%s: ERROR: %v\n", tag, err)
			continue
		}

		switch t.Kind {
		case SkipTag:
			fmt.Printf("%s: skip %d\n", t.Kind, t.Bits)
		case BitsTag:
			fmt.Printf("%s: %s %s, %d bits\n", t.Kind, t.Type, t.Name, t.Bits)
		default:
			if t.Count > 0 {
				fmt.Printf("%s: %s %s x%d\n", t.Kind, t.Type, t.Name, t.Count)
			} else {
				fmt.Printf("%s: %s %s\n", t.Kind, t.Type, t.Name)
			}
		}
	}

	// Output:
	// field: int32 len
	// field: uint8 raw x12
	// bits: uint8 z0, 2 bits
	// skip: skip 3
}
