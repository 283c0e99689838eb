// Package memory defines the explicit memory handle the bridge reads
// and writes native structures through. The interface is a subset of
// wazero's api.Memory, so a guest module's linear memory satisfies it
// directly; ByteMemory backs the same contract with a plain byte slice
// for host-side state and tests.
package memory

// Memory is a bounded, byte-addressable memory space. Implementations
// report out-of-range accesses through the ok result instead of
// panicking; callers must treat a false result as a hard failure, never
// clamp or wrap the access.
//
// No synchronization is provided. Concurrent native mutation of the
// same region during an access is a data race the caller must avoid
// through external discipline.
type Memory interface {
	// Read returns count bytes at offset, and false if the range is out
	// of bounds. The returned slice may alias the underlying memory.
	Read(offset, count uint32) ([]byte, bool)

	// Write writes data at offset, returning false if the range is out
	// of bounds. On a false return no bytes have been written.
	Write(offset uint32, data []byte) bool

	// Size returns the size of the memory space in bytes.
	Size() uint32
}

// ByteMemory is a Memory backed by a byte slice.
type ByteMemory []byte

// NewByteMemory allocates a zeroed memory space of the given size.
func NewByteMemory(size uint32) ByteMemory {
	return make(ByteMemory, size)
}

// Read implements Memory. The returned slice aliases the backing array.
func (m ByteMemory) Read(offset, count uint32) ([]byte, bool) {
	if !m.inRange(offset, count) {
		return nil, false
	}
	return m[offset : offset+count], true
}

// Write implements Memory.
func (m ByteMemory) Write(offset uint32, data []byte) bool {
	if !m.inRange(offset, uint32(len(data))) {
		return false
	}
	copy(m[offset:], data)
	return true
}

// Size implements Memory.
func (m ByteMemory) Size() uint32 {
	return uint32(len(m))
}

func (m ByteMemory) inRange(offset, count uint32) bool {
	return uint64(offset)+uint64(count) <= uint64(len(m))
}
