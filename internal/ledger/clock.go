package ledger

import "time"

// Clock supplies the environment timestamp and round for a bundle.
// Handlers never read wall-clock time directly; everything flows from
// the single value captured at submission.
type Clock interface {
	Now() uint64
	Round() uint64
}

// SystemClock derives the timestamp from the host's clock. The round
// comes from the nanosecond counter; it only feeds hash seeds.
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

func (SystemClock) Round() uint64 {
	return uint64(time.Now().UnixNano())
}
