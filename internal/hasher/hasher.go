package hasher

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to hexLen (0 keeps all 16 chars). Used to fingerprint
// normalized image buffers so runs can be compared without diffing bytes.
func ContentHash(data []byte, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(data))
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
