package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 digest of a house file. Plan keys are derived
// from it, so editing any byte of the file invalidates its cached renders.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey derives a "kind:digest" key from the JSON encoding of parts, so
// plan and artifact options with equal fields share a key.
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range parts {
		if err := enc.Encode(p); err != nil {
			fmt.Fprintf(h, "%#v\n", p)
		}
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}
