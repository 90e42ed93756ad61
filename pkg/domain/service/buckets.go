package service

import (
	"math"
	"time"
)

// CalcPercentage compares this month to last month. A zero last month yields
// thisMonth*100 rather than a true percentage.
func CalcPercentage(thisMonth, lastMonth float64) int64 {
	if lastMonth == 0 {
		return round(thisMonth * 100)
	}
	return round(thisMonth / lastMonth * 100)
}

// MonthBucket returns the slot of createdAt in a size-long series ending in the
// month of now. Months are compared modulo 12, so a date a full year back
// shares the current month's slot.
func MonthBucket(now, createdAt time.Time, size int) (int, bool) {
	created := createdAt.In(now.Location())
	diff := (int(now.Month()) - int(created.Month()) + 12) % 12
	if diff >= size {
		return 0, false
	}
	return size - 1 - diff, true
}

func countByMonth(now time.Time, dates []time.Time, size int) []int64 {
	out := make([]int64, size)
	for _, d := range dates {
		if i, ok := MonthBucket(now, d, size); ok {
			out[i]++
		}
	}
	return out
}

func round(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
