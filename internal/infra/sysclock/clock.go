package sysclock

import (
	"time"

	"taskmill/internal/ports"
)

var _ ports.Clock = Clock{}

// Clock reads the wall clock.
type Clock struct{}

func (Clock) Now() time.Time { return time.Now() }
