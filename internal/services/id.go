package services

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateID returns a "<unix-ms>-<9 base36 chars>" identifier. Uniqueness is
// practical, not guaranteed: the timestamp prefix plus the random suffix is
// enough to keep recipe IDs and temp file names from colliding without a
// central allocator.
func GenerateID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.IntN(len(base36Alphabet))]
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}
