// Package ev is the runtime used by views generated with evgen.
//
// A view never copies a field out of its buffer. Every accessor is a small
// value holding a window into the caller's bytes plus a byte-order policy
// chosen when the view type is instantiated:
//
//	r := wire.NewMsgRefOf[ev.BigEndian](buf)
//	r.Len().Set(42)
//
// The stored bytes are always in the policy's order regardless of the host.
// Callers must hand views a buffer of at least the schema size and are
// responsible for synchronising concurrent access to it.
package ev

import (
	"encoding/binary"
	"fmt"
)

// Order is the constraint satisfied by byte-order policies.
// Policies are zero-size types so that a view's policy lives in its type.
type Order interface {
	binary.ByteOrder
}

// LittleEndian stores fields least significant byte first.
type LittleEndian struct{}

func (LittleEndian) Uint16(b []byte) uint16       { return binary.LittleEndian.Uint16(b) }
func (LittleEndian) Uint32(b []byte) uint32       { return binary.LittleEndian.Uint32(b) }
func (LittleEndian) Uint64(b []byte) uint64       { return binary.LittleEndian.Uint64(b) }
func (LittleEndian) PutUint16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func (LittleEndian) PutUint32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func (LittleEndian) PutUint64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
func (LittleEndian) String() string               { return "LittleEndian" }

// BigEndian stores fields most significant byte first.
type BigEndian struct{}

func (BigEndian) Uint16(b []byte) uint16       { return binary.BigEndian.Uint16(b) }
func (BigEndian) Uint32(b []byte) uint32       { return binary.BigEndian.Uint32(b) }
func (BigEndian) Uint64(b []byte) uint64       { return binary.BigEndian.Uint64(b) }
func (BigEndian) PutUint16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }
func (BigEndian) PutUint32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }
func (BigEndian) PutUint64(b []byte, v uint64) { binary.BigEndian.PutUint64(b, v) }
func (BigEndian) String() string               { return "BigEndian" }

// NativeEndian stores fields in host order and never converts.
type NativeEndian struct{}

func (NativeEndian) Uint16(b []byte) uint16       { return binary.NativeEndian.Uint16(b) }
func (NativeEndian) Uint32(b []byte) uint32       { return binary.NativeEndian.Uint32(b) }
func (NativeEndian) Uint64(b []byte) uint64       { return binary.NativeEndian.Uint64(b) }
func (NativeEndian) PutUint16(b []byte, v uint16) { binary.NativeEndian.PutUint16(b, v) }
func (NativeEndian) PutUint32(b []byte, v uint32) { binary.NativeEndian.PutUint32(b, v) }
func (NativeEndian) PutUint64(b []byte, v uint64) { binary.NativeEndian.PutUint64(b, v) }
func (NativeEndian) String() string               { return "NativeEndian" }

// ParseOrder maps a configuration spelling to the policy type name
// generated code refers to: "little", "big" or "native".
func ParseOrder(name string) (string, error) {
	switch name {
	case "little", "le", "":
		return "LittleEndian", nil
	case "big", "be":
		return "BigEndian", nil
	case "native", "host":
		return "NativeEndian", nil
	default:
		return "", fmt.Errorf("unknown byte order %q (expected little, big or native)", name)
	}
}
