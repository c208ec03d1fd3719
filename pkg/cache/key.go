package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes a SHA-256 hash of the input data as a 64-character hex
// string. Used both for cache file naming and for workbook content hashes.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// ArtifactKeyOpts identifies one rendered artifact: the source tables, the
// loading condition, the angle set, and the output format.
type ArtifactKeyOpts struct {
	WorkbookHash string    `json:"workbook_hash"`
	DraftM       float64   `json:"draft_m"`
	LoadKg       float64   `json:"load_kg"`
	Angles       []float64 `json:"angles,omitempty"`
	Format       string    `json:"format"`
}

// ArtifactKey builds a deterministic cache key for a rendered artifact.
// The key format is: artifact:hash(opts).
func ArtifactKey(opts ArtifactKeyOpts) string {
	data, _ := json.Marshal(opts)
	return fmt.Sprintf("artifact:%s", Hash(data))
}
