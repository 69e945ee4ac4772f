package esfaker

import (
	"strconv"
	"time"
)

// IDGenerator returns a new document identifier on every call.
type IDGenerator func() string

// ClockIDs returns an IDGenerator deriving identifiers from the nanosecond
// clock. Readings that do not advance are bumped by one so a run never
// repeats an identifier. Uniqueness across processes is not guaranteed.
func ClockIDs() IDGenerator {
	var last int64
	return func() string {
		n := time.Now().UnixNano()
		if n <= last {
			n = last + 1
		}
		last = n
		return strconv.FormatInt(n, 10)
	}
}
