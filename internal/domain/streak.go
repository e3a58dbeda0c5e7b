package domain

import "time"

// StreakCycle is the length of the daily reward schedule.
const StreakCycle = 7

type StreakStatus struct {
	Available     bool      `json:"available"`
	DayNumber     int       `json:"day_number"`
	CurrentStreak int       `json:"current_streak"`
	WillReset     bool      `json:"will_reset"`
	Today         time.Time `json:"today"`
}

// EvaluateStreak decides whether a claim is possible on today and which day of
// the cycle it would pay. rec may be nil for a user who never claimed.
func EvaluateStreak(rec *DailyBonus, today time.Time) StreakStatus {
	st := StreakStatus{Today: today, DayNumber: 1, Available: true}
	if rec == nil || rec.LastClaimDate == nil {
		return st
	}
	st.CurrentStreak = rec.CurrentStreak
	switch gap := DaysBetween(*rec.LastClaimDate, today); {
	case gap <= 0:
		st.Available = false
		st.DayNumber = rec.CurrentStreak%StreakCycle + 1
	case gap == 1:
		st.DayNumber = rec.CurrentStreak%StreakCycle + 1
	default:
		st.WillReset = true
	}
	return st
}

// NextStreak is the streak value a claim evaluated as st produces.
func (st StreakStatus) NextStreak() int {
	if st.WillReset {
		return 1
	}
	return st.CurrentStreak + 1
}
