package structdef

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/embervm/bindsdk/domain/entities"
	dErrors "github.com/embervm/bindsdk/domain/errors"
	"github.com/embervm/bindsdk/memory"
)

// Read reads the named field from the structure at base. The value kind
// follows the field's type tag: int64 for integers, float64 for floats,
// bool for Bool, entities.Ptr for Ptr32.
func (d *Descriptor) Read(mem memory.Memory, base entities.Ptr, name string) (any, error) {
	slot, err := d.slot(name)
	if err != nil {
		return nil, err
	}
	off := uint32(base) + slot.offset
	raw, ok := mem.Read(off, slot.Type.Width())
	if !ok {
		return nil, &dErrors.MemoryAccessError{Offset: off, Count: slot.Type.Width()}
	}
	return decodeField(slot, raw)
}

// Write writes the named field of the structure at base. It fails with
// AccessDenied for read-only fields and TypeMismatch when the value's
// kind does not match the field's type tag exactly or an integer falls
// outside the representable range. All checks happen before any memory
// is touched; on failure memory is unchanged.
func (d *Descriptor) Write(mem memory.Memory, base entities.Ptr, name string, value any) error {
	slot, err := d.slot(name)
	if err != nil {
		return err
	}
	if slot.Access != entities.ReadWrite {
		return &dErrors.AccessDeniedError{Name: name}
	}
	raw, err := encodeField(slot, value)
	if err != nil {
		return err
	}
	off := uint32(base) + slot.offset
	if !mem.Write(off, raw) {
		return &dErrors.MemoryAccessError{Offset: off, Count: uint32(len(raw))}
	}
	return nil
}

// Field widths are fixed, layouts little-endian, matching the 32-bit
// targets the original descriptors come from.

func decodeField(slot fieldSlot, raw []byte) (any, error) {
	switch slot.Type {
	case entities.U8:
		return int64(raw[0]), nil
	case entities.I8:
		return int64(int8(raw[0])), nil
	case entities.U16:
		return int64(binary.LittleEndian.Uint16(raw)), nil
	case entities.I16:
		return int64(int16(binary.LittleEndian.Uint16(raw))), nil
	case entities.U32:
		return int64(binary.LittleEndian.Uint32(raw)), nil
	case entities.I32:
		return int64(int32(binary.LittleEndian.Uint32(raw))), nil
	case entities.U64:
		u := binary.LittleEndian.Uint64(raw)
		if u > math.MaxInt64 {
			return nil, &dErrors.TypeMismatchError{
				Field: slot.Name, Want: slot.Type, Got: fmt.Sprintf("stored value %d overflows int64", u),
			}
		}
		return int64(u), nil
	case entities.I64:
		return int64(binary.LittleEndian.Uint64(raw)), nil
	case entities.F32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(raw))), nil
	case entities.F64:
		return math.Float64frombits(binary.LittleEndian.Uint64(raw)), nil
	case entities.Bool:
		return raw[0] != 0, nil
	case entities.Ptr32:
		return entities.Ptr(binary.LittleEndian.Uint32(raw)), nil
	default:
		return nil, fmt.Errorf("descriptor field %q: unknown type tag %d", slot.Name, slot.Type)
	}
}

func encodeField(slot fieldSlot, value any) ([]byte, error) {
	switch slot.Type {
	case entities.Bool:
		b, ok := value.(bool)
		if !ok {
			return nil, mismatch(slot, value)
		}
		if b {
			return []byte{1}, nil
		}
		return []byte{0}, nil

	case entities.Ptr32:
		p, ok := value.(entities.Ptr)
		if !ok {
			return nil, mismatch(slot, value)
		}
		raw := make([]byte, 4)
		binary.LittleEndian.PutUint32(raw, uint32(p))
		return raw, nil

	case entities.F32:
		f, ok := value.(float64)
		if !ok {
			return nil, mismatch(slot, value)
		}
		raw := make([]byte, 4)
		binary.LittleEndian.PutUint32(raw, math.Float32bits(float32(f)))
		return raw, nil

	case entities.F64:
		f, ok := value.(float64)
		if !ok {
			return nil, mismatch(slot, value)
		}
		raw := make([]byte, 8)
		binary.LittleEndian.PutUint64(raw, math.Float64bits(f))
		return raw, nil
	}

	// Remaining tags are integers of some width and signedness.
	n, ok := value.(int64)
	if !ok {
		return nil, mismatch(slot, value)
	}
	lo, hi := intRange(slot.Type)
	if n < lo || (hi >= 0 && n > hi) {
		return nil, &dErrors.TypeMismatchError{
			Field: slot.Name, Want: slot.Type, Got: fmt.Sprintf("out-of-range value %d", n),
		}
	}
	raw := make([]byte, slot.Type.Width())
	switch slot.Type.Width() {
	case 1:
		raw[0] = byte(n)
	case 2:
		binary.LittleEndian.PutUint16(raw, uint16(n))
	case 4:
		binary.LittleEndian.PutUint32(raw, uint32(n))
	case 8:
		binary.LittleEndian.PutUint64(raw, uint64(n))
	}
	return raw, nil
}

// intRange returns the representable int64 range of an integer tag.
// hi of -1 means "no upper bound below MaxInt64" (I64 and U64; script
// integers are int64, so U64 accepts the non-negative int64 range).
func intRange(t entities.FieldType) (lo, hi int64) {
	switch t {
	case entities.U8:
		return 0, math.MaxUint8
	case entities.I8:
		return math.MinInt8, math.MaxInt8
	case entities.U16:
		return 0, math.MaxUint16
	case entities.I16:
		return math.MinInt16, math.MaxInt16
	case entities.U32:
		return 0, math.MaxUint32
	case entities.I32:
		return math.MinInt32, math.MaxInt32
	case entities.U64:
		return 0, -1
	default: // I64
		return math.MinInt64, -1
	}
}

func mismatch(slot fieldSlot, value any) error {
	return &dErrors.TypeMismatchError{Field: slot.Name, Want: slot.Type, Got: fmt.Sprintf("%T", value)}
}
