package sqlmonitor

import "time"

func milliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
