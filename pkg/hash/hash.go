package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ContentFingerprint hashes at most prefixLen leading bytes of binary
// content. Stand-in for perceptual image hashing: byte-identical uploads
// (and uploads sharing the same leading bytes) collapse to one fingerprint.
func ContentFingerprint(content []byte, prefixLen int) string {
	if prefixLen > 0 && len(content) > prefixLen {
		content = content[:prefixLen]
	}
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}

// IteratedSHA256 applies SHA256 iteratively n times to produce a derived hash.
// Used for submitter ID hashing (5000 iterations) and IP hashing.
func IteratedSHA256(input string, iterations int) string {
	data := []byte(input)
	for range iterations {
		h := sha256.Sum256(data)
		data = h[:]
	}
	return hex.EncodeToString(data)
}

// HashSubmitterID hashes a raw submitter identifier with 5000 iterations of
// SHA256 so raw identities never enter the submission history.
func HashSubmitterID(raw string) string {
	return IteratedSHA256(raw, 5000)
}

// HashIP hashes an IP address with a salt using 5000 iterations of SHA256.
func HashIP(ip, salt string) string {
	return IteratedSHA256(salt+ip, 5000)
}
