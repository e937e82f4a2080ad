package integrator

import "fmt"

// InvariantError marks an internal invariant violation (history
// corruption, an impossible bucket index) rather than an expected gate
// rejection. Grounded on hersh's CrashError shape (_examples/HershyOrg-hershy/hersh/types.go):
// returned, never panicked, so the host process can decide to terminate
// that market's task.
type InvariantError struct {
	MarketKey string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in market %s: %s", e.MarketKey, e.Detail)
}
