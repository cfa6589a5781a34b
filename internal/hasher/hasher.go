// Package hasher computes xxHash64 digests of exported content.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns the hex xxHash64 of data, truncated to hexLen chars
// when 0 < hexLen < 16.
func ContentHash(data []byte, hexLen int) string {
	return format(xxhash.Sum64(data), hexLen)
}

// Reader hashes everything read through it.
type Reader struct {
	r io.Reader
	d *xxhash.Digest
	n int64
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, d: xxhash.New()}
}

// Read reads from the wrapped reader and hashes what it returns.
func (h *Reader) Read(p []byte) (int, error) {
	n, err := h.r.Read(p)
	if n > 0 {
		h.d.Write(p[:n])
		h.n += int64(n)
	}
	return n, err
}

// Sum64 is the digest of the bytes read so far.
func (h *Reader) Sum64() uint64 { return h.d.Sum64() }

// Hex is Sum64 formatted like ContentHash.
func (h *Reader) Hex(hexLen int) string { return format(h.d.Sum64(), hexLen) }

// Size is the number of bytes read so far.
func (h *Reader) Size() int64 { return h.n }

func format(sum uint64, hexLen int) string {
	full := hex.EncodeToString(binary.BigEndian.AppendUint64(nil, sum))
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
