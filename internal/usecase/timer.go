package usecase

import (
	"time"
)

// TimerSnapshot is the client-held state of the pausable session clock.
type TimerSnapshot struct {
	StartedAt          *time.Time
	PausedAt           *time.Time
	PausedTotalSeconds int
}

// ComputeElapsedSeconds returns the billable elapsed seconds for a snapshot.
// The active window runs from startedAt to pausedAt (or now while running);
// accumulated pause time is subtracted and the result floors at zero.
func ComputeElapsedSeconds(snap TimerSnapshot, now time.Time) int {
	if snap.StartedAt == nil {
		return 0
	}

	end := now
	if snap.PausedAt != nil {
		end = *snap.PausedAt
	}

	elapsed := end.Sub(*snap.StartedAt) - time.Duration(snap.PausedTotalSeconds)*time.Second
	if elapsed < 0 {
		return 0
	}

	return int(elapsed / time.Second)
}
