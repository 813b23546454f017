package ledger

import "time"

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any instant.
// Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
