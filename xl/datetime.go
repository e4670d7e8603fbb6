package xl

import "time"

var (
	serialEpoch = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)
	// Excel treats 1900 as a leap year, so serials from March 1900 on are
	// one day ahead.
	serialLeapBug = time.Date(1900, time.March, 1, 0, 0, 0, 0, time.UTC)
)

// DateToSerial converts t to an Excel serial date in the 1900 date system.
// The wall clock of t is used as is. Dates before 1900 keep only the time
// of day.
func DateToSerial(t time.Time) float64 {
	y, m, d := t.Date()
	secs := float64(t.Hour()*3600+t.Minute()*60+t.Second()) + float64(t.Nanosecond())/1e9
	frac := secs / 86400
	if y < 1900 {
		return frac
	}
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	days := (day.Unix() - serialEpoch.Unix()) / 86400
	if !day.Before(serialLeapBug) {
		days++
	}
	return float64(days) + frac
}
