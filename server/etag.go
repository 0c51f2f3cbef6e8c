package server

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// etagOf is the hex BLAKE2b-256 of the rendered bytes. Output is
// deterministic, so equal text always yields the same tag.
func etagOf(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
