package helpers

import (
	"time"

	"golang.org/x/time/rate"
)

// OnceAMinute returns a limiter letting one call through per minute, used to throttle repetitive logs.
func OnceAMinute() *rate.Sometimes {
	return &rate.Sometimes{
		First:    1,
		Interval: time.Minute,
	}
}
