package project

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest is a SHA-256 sum.
type Digest [32]byte

// Combine hashes content followed by parts in order.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Fingerprint is the digest of the normalize settings that change output.
// Two runs with equal fingerprints print the same text for the same input.
func (c NormalizeConfig) Fingerprint(wordlist Digest) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte(c.Prefix))
	_, _ = h.Write([]byte{0})
	_ = binary.Write(h, binary.LittleEndian, int64(c.PoolSize))
	_, _ = h.Write(wordlist[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Fingerprint is the digest of the printer settings.
func (c FormatConfig) Fingerprint() Digest {
	h := sha256.New()
	_ = binary.Write(h, binary.LittleEndian, int64(c.Indent))
	_ = binary.Write(h, binary.LittleEndian, c.Tabs)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
