package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// CanTransitionTo encodes the reservation state machine:
// pending -> approved|rejected|cancelled, approved -> cancelled.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected || next == StatusCancelled
	case StatusApproved:
		return next == StatusCancelled
	case StatusRejected, StatusCancelled:
		return false
	default:
		return false
	}
}

// BlockingStatuses are the statuses considered by the conflict predicate:
// an approved reservation holds its window, and a pending one holds it while
// awaiting a decision.
func BlockingStatuses() []Status {
	return []Status{StatusPending, StatusApproved}
}

func AllStatuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled}
}
