package recurrence

type Pattern string

const (
	PatternDaily   Pattern = "daily"
	PatternWeekly  Pattern = "weekly"
	PatternMonthly Pattern = "monthly"
	PatternCustom  Pattern = "custom"
)

func (p Pattern) String() string {
	return string(p)
}

func (p Pattern) IsValid() bool {
	switch p {
	case PatternDaily, PatternWeekly, PatternMonthly, PatternCustom:
		return true
	default:
		return false
	}
}

func AllPatterns() []Pattern {
	return []Pattern{PatternDaily, PatternWeekly, PatternMonthly, PatternCustom}
}
