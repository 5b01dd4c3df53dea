package prompt

import (
	"fmt"

	"github.com/minio/highwayhash"
)

// fingerprintKey is fixed so fingerprints are comparable across processes
var fingerprintKey = []byte("gitreadme-prompt-fingerprint-v1!")

// Fingerprint returns a short stable hash of a rendered prompt
func Fingerprint(prompt string) string {
	return fmt.Sprintf("%016x", highwayhash.Sum64([]byte(prompt), fingerprintKey))
}
