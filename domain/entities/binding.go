package entities

// Kind discriminates the payload of a binding declaration row.
// It is the explicit sum-type tag for member entries: every dispatch
// site switches over it exhaustively.
type Kind int

const (
	// KindVariable is a per-instance mutable slot with no shared payload.
	KindVariable Kind = iota

	// KindConstPointer is a fixed, non-null address of native global
	// state, exposed read-only for the table's lifetime.
	KindConstPointer

	// KindNativeFunc is a native function reference with a declared
	// arity, invoked through the call adapter.
	KindNativeFunc

	// KindClosure is an externally compiled script callable, invoked
	// with the same calling convention as a native function.
	KindClosure

	// KindStructRef pairs a structure descriptor with the base address
	// of the struct instance it describes.
	KindStructRef
)

// String returns the manifest spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindConstPointer:
		return "constant-pointer"
	case KindNativeFunc:
		return "native-function"
	case KindClosure:
		return "precompiled-closure"
	case KindStructRef:
		return "structure-reference"
	default:
		return "unknown"
	}
}

// Ptr is an address into a memory.Memory space. The bridge never
// dereferences raw process pointers: every constant pointer and struct
// base is an offset resolved against an explicit memory handle, so a
// table can be built and tested without a live firmware image.
type Ptr uint32
