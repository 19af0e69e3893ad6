package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderNumber produces a human-facing order number candidate of the
// form ORD-<yyyymmddhhmmss>-<3 digit random>. Uniqueness is confirmed against
// the store by the order repository.
func GenerateOrderNumber() string {
	now := time.Now().UTC()
	datePart := now.Format("20060102150405")

	// 3-digit cryptographic random, 100..999
	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 900)
	}

	return fmt.Sprintf("ORD-%s-%03d", datePart, n.Int64()+100)
}
