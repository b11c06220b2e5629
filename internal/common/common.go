package common

import "time"

type CondenseFile struct {
	Input string
	Output string
	Lines int
	Frames int
	Clamped int
	OriginalDuration time.Duration
	CondensedDuration time.Duration
}

func SecondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
