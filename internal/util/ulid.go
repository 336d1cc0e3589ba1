package util

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string, used for quiz IDs.
// It uses a monotonic entropy source seeded with the current time; quiz
// creation is an owner-driven wizard step, so generation frequency is low
// and a per-call source is fine.
func NewULID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
