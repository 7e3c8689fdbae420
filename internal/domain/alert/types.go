package alert

type Kind string

const (
	KindReminder24h    Kind = "reminder_24h"
	KindReminder2h     Kind = "reminder_2h"
	KindReminder30m    Kind = "reminder_30m"
	KindArrivalConfirm Kind = "arrival_confirm"
	KindExpiration     Kind = "expiration"
	KindStateChange    Kind = "state_change"
	KindAutoCancel     Kind = "auto_cancel"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindReminder24h, KindReminder2h, KindReminder30m,
		KindArrivalConfirm, KindExpiration, KindStateChange, KindAutoCancel:
		return true
	default:
		return false
	}
}

func AllKinds() []Kind {
	return []Kind{
		KindReminder24h, KindReminder2h, KindReminder30m,
		KindArrivalConfirm, KindExpiration, KindStateChange, KindAutoCancel,
	}
}

type Status string

const (
	// StatusPending and StatusScheduled are both "not yet sent"; pending is
	// the post-resend state, scheduled the initial one.
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusSent      Status = "sent"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusSent, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsUnsent reports whether the alert still awaits delivery.
func (s Status) IsUnsent() bool {
	return s == StatusPending || s == StatusScheduled
}

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelRealtime Channel = "realtime"
)

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelRealtime:
		return true
	default:
		return false
	}
}

func AllChannels() []Channel {
	return []Channel{ChannelEmail, ChannelRealtime}
}
