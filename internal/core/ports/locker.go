package ports

import (
	"context"
	"time"
)

// Locker hands out short-lived exclusive leases shared by every replica.
type Locker interface {
	// TryLock takes key for ttl. It returns ok == false without an error when
	// another holder owns the key.
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)

	// Unlock releases key if it is still held with token.
	Unlock(ctx context.Context, key, token string) error
}
