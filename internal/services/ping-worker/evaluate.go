package ping_worker

import "github.com/NordCoder/Uptimer/internal/domain/check"

// Evaluate derives the new state from a probe outcome and reports whether the
// change is worth an alert. The first evaluation of a check never alerts.
func Evaluate(prev check.State, prevLastChecked *int64, out check.Outcome, successCodes []int) (check.State, bool) {
	next := check.StateDown
	if out.Responded() && contains(successCodes, out.Code) {
		next = check.StateUp
	}
	if prev == "" {
		prev = check.StateDown
	}
	return next, prevLastChecked != nil && next != prev
}

// Stamp returns the lastChecked value for an evaluation at nowMillis. It is
// strictly greater than prev so that ordering survives clock steps.
func Stamp(prev *int64, nowMillis int64) int64 {
	if prev != nil && nowMillis <= *prev {
		return *prev + 1
	}
	return nowMillis
}

func contains(codes []int, code int) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
