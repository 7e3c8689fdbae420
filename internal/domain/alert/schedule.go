package alert

import "time"

// Candidate is a reminder that could be created for a reservation start time.
type Candidate struct {
	Kind Kind
	At   time.Time
}

// ReminderOffset returns how long before the reservation start the reminder
// kind fires, and whether the kind is a reminder at all.
func ReminderOffset(k Kind) (time.Duration, bool) {
	switch k {
	case KindReminder24h:
		return 24 * time.Hour, true
	case KindReminder2h:
		return 2 * time.Hour, true
	case KindReminder30m:
		return 30 * time.Minute, true
	case KindArrivalConfirm, KindExpiration, KindStateChange, KindAutoCancel:
		return 0, false
	default:
		return 0, false
	}
}

func reminderKinds() []Kind {
	return []Kind{KindReminder24h, KindReminder2h, KindReminder30m}
}

// ReminderCandidates computes the reminder fire times for a reservation
// starting at startAt. Candidates already in the past at creation time are
// dropped, not created.
func ReminderCandidates(startAt, now time.Time) []Candidate {
	var out []Candidate
	for _, k := range reminderKinds() {
		offset, ok := ReminderOffset(k)
		if !ok {
			continue
		}
		at := startAt.Add(-offset)
		if at.After(now) {
			out = append(out, Candidate{Kind: k, At: at})
		}
	}
	return out
}
