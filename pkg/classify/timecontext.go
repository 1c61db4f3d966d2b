package classify

import "time"

// Time-of-day buckets used both for confidence scoring and for synthesizing
// expense descriptions. Boundaries follow Korean office practice: 18:00-22:00
// counts as overtime, anything later (or earlier than 06:00) as late night,
// and any weekend usage as special duty.
const (
	PeriodMorning   = "morning"
	PeriodLunch     = "lunch"
	PeriodAfternoon = "afternoon"
	PeriodOvertime  = "overtime"
	PeriodLateNight = "late_night"
)

// TimeContext describes when an expense happened, in terms the scorer and the
// description builder care about.
type TimeContext struct {
	Period     string
	IsWeekend  bool
	IsOvertime bool
}

// Label is the Korean description prefix for this context ("야근", "점심",
// "토요 특근", ...).
func (tc TimeContext) Label() string {
	if tc.IsWeekend {
		return "주말 특근"
	}
	switch tc.Period {
	case PeriodMorning:
		return "오전"
	case PeriodLunch:
		return "점심"
	case PeriodAfternoon:
		return "오후"
	case PeriodOvertime:
		return "야근"
	case PeriodLateNight:
		return "심야 야근"
	}
	return ""
}

// AnalyzeTime buckets a usage timestamp.
func AnalyzeTime(t time.Time) TimeContext {
	hour := t.Hour()

	var period string
	switch {
	case hour >= 6 && hour < 11:
		period = PeriodMorning
	case hour >= 11 && hour < 14:
		period = PeriodLunch
	case hour >= 14 && hour < 18:
		period = PeriodAfternoon
	case hour >= 18 && hour < 22:
		period = PeriodOvertime
	default:
		period = PeriodLateNight
	}

	weekday := t.Weekday()
	isWeekend := weekday == time.Saturday || weekday == time.Sunday

	return TimeContext{
		Period:     period,
		IsWeekend:  isWeekend,
		IsOvertime: isWeekend || period == PeriodOvertime || period == PeriodLateNight,
	}
}
