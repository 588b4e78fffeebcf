package providers

import "time"

// Clock abstracts the wall clock so the import service can stamp rows with a
// deterministic time in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func NewClockProvider() Clock {
	return systemClock{}
}
