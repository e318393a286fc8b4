package analyzer

import (
	"fmt"

	"github.com/alexhholmes/evgen/internal/schema"
)

// BitSlot is the resolved position of one named bitfield member
type BitSlot struct {
	Name   string
	Type   string
	Offset int // bits from the least significant bit of the storage word
	Width  int
}

// PackBits assigns bit offsets to the members of a bitfield in declaration
// order, least significant bit first. Bit skips advance the offset without
// producing a slot. Errors carry the member name as path and no schema;
// the resolver fills that in.
func PackBits(reg *TypeRegistry, bf *schema.Bitfield) ([]BitSlot, error) {
	if !reg.IsUnsigned(bf.Storage) {
		return nil, schema.NewError(schema.KindInvalid).
			Detail("bitfield storage %q must be an unsigned integer type", bf.Storage).Build()
	}
	capacity, err := reg.Bits(bf.Storage)
	if err != nil {
		return nil, schema.NewError(schema.KindUnknownType).Cause(err).
			Detail("unknown bitfield storage %q", bf.Storage).Build()
	}

	var slots []BitSlot
	offset := 0
	for _, m := range bf.Members {
		switch m := m.(type) {
		case *schema.BitSkip:
			if m.Bits < 0 {
				return nil, schema.NewError(schema.KindInvalid).
					Detail("negative bit skip %d", m.Bits).Build()
			}
			offset += m.Bits

		case *schema.Bits:
			if !reg.IsScalar(m.Type) {
				return nil, schema.NewError(schema.KindUnknownType).Path(m.Name).
					Detail("unknown element type %q", m.Type).Build()
			}
			if !reg.IsInteger(m.Type) {
				return nil, schema.NewError(schema.KindInvalid).Path(m.Name).
					Detail("bitfield member type %q is not an integer", m.Type).Build()
			}
			limit, _ := reg.Bits(m.Type)
			if m.Width < 1 || m.Width > limit {
				return nil, schema.NewError(schema.KindInvalid).Path(m.Name).
					Detail("width %d out of range [1, %d] for %s", m.Width, limit, m.Type).Build()
			}
			slots = append(slots, BitSlot{
				Name:   m.Name,
				Type:   m.Type,
				Offset: offset,
				Width:  m.Width,
			})
			offset += m.Width

		default:
			return nil, fmt.Errorf("unexpected bitfield member %T", m)
		}

		if offset > capacity {
			return nil, schema.NewError(schema.KindBitfieldOverflow).
				Detail("members use %d bits, %s holds %d", offset, bf.Storage, capacity).Build()
		}
	}

	return slots, nil
}
