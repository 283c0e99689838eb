package entities

// FieldType is the primitive type tag of a structure field. The tag
// fixes both the width of the field in native memory and the script
// value kind that may flow through it: int64 for integer tags, float64
// for float tags, bool for Bool, Ptr for Ptr32.
type FieldType int

const (
	U8 FieldType = iota
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	F32
	F64
	Bool
	Ptr32
)

// Width returns the field width in bytes, matching the native layout.
func (t FieldType) Width() uint32 {
	switch t {
	case U8, I8, Bool:
		return 1
	case U16, I16:
		return 2
	case U32, I32, F32, Ptr32:
		return 4
	case U64, I64, F64:
		return 8
	default:
		return 0
	}
}

// Signed reports whether the tag is a signed integer type.
func (t FieldType) Signed() bool {
	switch t {
	case I8, I16, I32, I64:
		return true
	}
	return false
}

// Integer reports whether the tag is an integer type of either signedness.
func (t FieldType) Integer() bool {
	switch t {
	case U8, I8, U16, I16, U32, I32, U64, I64:
		return true
	}
	return false
}

// Float reports whether the tag is a floating point type.
func (t FieldType) Float() bool {
	return t == F32 || t == F64
}

// String returns the manifest spelling of the type tag.
func (t FieldType) String() string {
	switch t {
	case U8:
		return "u8"
	case I8:
		return "i8"
	case U16:
		return "u16"
	case I16:
		return "i16"
	case U32:
		return "u32"
	case I32:
		return "i32"
	case U64:
		return "u64"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Bool:
		return "bool"
	case Ptr32:
		return "ptr32"
	default:
		return "unknown"
	}
}

// ParseFieldType maps a manifest spelling back to its type tag.
func ParseFieldType(s string) (FieldType, bool) {
	for t := U8; t <= Ptr32; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// Access declares the access rights of a structure field.
type Access int

const (
	// ReadOnly fields reject writes for the descriptor's lifetime.
	ReadOnly Access = iota

	// ReadWrite fields accept both reads and writes.
	ReadWrite
)

// String returns the manifest spelling of the access mode.
func (a Access) String() string {
	if a == ReadWrite {
		return "rw"
	}
	return "ro"
}
