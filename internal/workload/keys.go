package workload

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// GenerateKeys returns n distinct ULID-based keys. Keys generated together
// share a millisecond timestamp prefix and differ in their monotonic
// entropy suffix, which is a realistic worst case for prefix-sensitive
// hashers.
func GenerateKeys(n int) ([]string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	ts := ulid.Timestamp(time.Now())

	keys := make([]string, n)
	for i := range keys {
		id, err := ulid.New(ts, entropy)
		if err != nil {
			return nil, fmt.Errorf("generate key %d: %w", i, err)
		}
		keys[i] = "k-" + strings.ToLower(id.String())
	}
	return keys, nil
}
