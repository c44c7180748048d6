package profile

import (
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"encoding/json"
)

// Fingerprint returns the md5 hex digest of the document's sorted-key JSON
// serialization. Two structurally identical documents always produce the
// same fingerprint regardless of how they were assembled.
func Fingerprint(doc Document) string {
	data, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	sum := md5.Sum(data) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
