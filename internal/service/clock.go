package service

import "time"

// Clock supplies wall-clock time. Injected so tests can steer bucket
// rollover without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the production clock.
var SystemClock Clock = systemClock{}

// Buckets are one hour wide in local time.
const bucketLayout = "2006-01-02-15"

// BucketKey derives the hour bucket identifier for t. Two times within
// the same local hour map to the same key.
func BucketKey(t time.Time) string {
	return t.Format(bucketLayout)
}
