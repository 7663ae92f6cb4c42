package serialization

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// ChecksumKey is the metadata key under which archives store the SHA-256 of
// their data section, hex encoded.
const ChecksumKey = "checksum_sha256"

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ComputeChecksumReader computes SHA-256 checksum from an io.Reader.
// This is useful for computing checksums of large files without loading them entirely into memory.
func ComputeChecksumReader(r io.Reader) ([32]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return [32]byte{}, err
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// ValidateChecksum compares the checksum of data against the hex-encoded
// stored value. Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(data []byte, stored string) error {
	sum := ComputeChecksum(data)
	if hex.EncodeToString(sum[:]) != stored {
		return ErrChecksumMismatch
	}
	return nil
}
