package kernel

import "time"

// Timestamp normalizes t to UTC with microsecond precision, the resolution
// Postgres keeps for timestamptz. Domain timestamps pass through it so that values
// compare equal after a round trip through the store.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
