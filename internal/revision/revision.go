// Package revision derives content hashes that roll pods when their inputs change.
package revision

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"maps"
	"slices"
	"strconv"
)

// ConfigChecksum returns the hex SHA-256 of a config map's data. Keys are walked in
// sorted order and every key and value is length-prefixed, so the result is stable
// and two different maps never serialize to the same input.
func ConfigChecksum(data map[string]string) string {
	h := sha256.New()
	for _, k := range slices.Sorted(maps.Keys(data)) {
		writeField(h, k)
		writeField(h, data[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeField(h hash.Hash, s string) {
	_, _ = h.Write([]byte(strconv.Itoa(len(s))))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(s))
}
