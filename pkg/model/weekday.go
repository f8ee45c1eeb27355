package model

// Weekday labels used across settings, blackout rules and pricing
// overrides. They match pkg/timeutil.DayOfWeek output exactly.
const (
	Sunday    = "SUN"
	Monday    = "MON"
	Tuesday   = "TUE"
	Wednesday = "WED"
	Thursday  = "THU"
	Friday    = "FRI"
	Saturday  = "SAT"
)

// Weekdays lists all seven labels in calendar order.
var Weekdays = []string{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
