// Binary encoding for counter values.
//
// Each counter is stored under its user ID as a fixed 8-byte big-endian
// uint64. Fixed width keeps Increment a single Get/Put inside one
// transaction and lets a corrupt value be detected by length alone.
package bbolt

import (
	"encoding/binary"
	"fmt"
)

// countSize is the byte size of an encoded counter.
const countSize = 8

// encodeCount encodes a counter value.
func encodeCount(n uint64) []byte {
	buf := make([]byte, countSize)
	binary.BigEndian.PutUint64(buf, n)
	return buf
}

// decodeCount decodes a counter value. A nil value (missing key) is zero.
func decodeCount(data []byte) (uint64, error) {
	if data == nil {
		return 0, nil
	}
	if len(data) != countSize {
		return 0, fmt.Errorf("corrupt counter: %d bytes, want %d", len(data), countSize)
	}
	return binary.BigEndian.Uint64(data), nil
}
