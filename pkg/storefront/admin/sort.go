package admin

import (
	"cmp"
	"strings"
	"time"
)

// statusRank fixes the sort order for order statuses: lifecycle order, not
// alphabetical. Unknown statuses sort last.
var statusRank = map[string]int{
	"created":   0,
	"paid":      1,
	"shipped":   2,
	"delivered": 3,
	"cancelled": 4,
}

// ByTime compares by timestamp. desc puts the newest first.
func ByTime[T any](get func(T) time.Time, desc bool) func(a, b T) int {
	return func(a, b T) int {
		c := get(a).Compare(get(b))
		if desc {
			return -c
		}
		return c
	}
}

// ByStatus compares order statuses by their lifecycle position.
func ByStatus[T any](get func(T) string) func(a, b T) int {
	rank := func(s string) int {
		if r, ok := statusRank[s]; ok {
			return r
		}
		return len(statusRank)
	}
	return func(a, b T) int {
		return cmp.Compare(rank(get(a)), rank(get(b)))
	}
}

// ByAmount compares numerically.
func ByAmount[T any](get func(T) float64, desc bool) func(a, b T) int {
	return func(a, b T) int {
		c := cmp.Compare(get(a), get(b))
		if desc {
			return -c
		}
		return c
	}
}

// ByString compares case-folded; ties fall back to the raw strings so the
// order stays deterministic.
func ByString[T any](get func(T) string) func(a, b T) int {
	return func(a, b T) int {
		if c := cmp.Compare(strings.ToLower(get(a)), strings.ToLower(get(b))); c != 0 {
			return c
		}
		return cmp.Compare(get(a), get(b))
	}
}
