// Package timeutil provides timezone utilities for the São Paulo timezone (UTC-3).
// The platform reports dates to students in Brasília time while the domain
// stores everything in UTC. Handles date formatting, whole-day arithmetic,
// and age computation. No external dependencies - uses only standard library.
package timeutil

import (
	"fmt"
	"time"
)

// SaoPauloTZ is the São Paulo timezone (UTC-3, no DST).
// Brazil abolished DST in 2019, so this is constant year-round.
var SaoPauloTZ = time.FixedZone("America/Sao_Paulo", -3*60*60)

// Now returns the current time in São Paulo timezone.
func Now() time.Time {
	return time.Now().In(SaoPauloTZ)
}

// ToSaoPaulo converts a time to São Paulo timezone.
func ToSaoPaulo(t time.Time) time.Time {
	return t.In(SaoPauloTZ)
}

// ToUTC converts a time to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// Date creates a time in São Paulo timezone with the given date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, SaoPauloTZ)
}

// DateTime creates a time in São Paulo timezone with the given date and time.
func DateTime(year, month, day, hour, min, sec int) time.Time {
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, SaoPauloTZ)
}

// StartOfDay returns the start of the day (00:00:00) in São Paulo timezone.
func StartOfDay(t time.Time) time.Time {
	local := ToSaoPaulo(t)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, SaoPauloTZ)
}

// EndOfDay returns the end of the day (23:59:59.999999999) in São Paulo timezone.
func EndOfDay(t time.Time) time.Time {
	local := ToSaoPaulo(t)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, SaoPauloTZ)
}

// IsToday checks if the given time is today in São Paulo timezone.
func IsToday(t time.Time) bool {
	now := Now()
	local := ToSaoPaulo(t)
	return local.Year() == now.Year() &&
		local.Month() == now.Month() &&
		local.Day() == now.Day()
}

// DaysSince calculates the number of whole days since the given time.
func DaysSince(t time.Time) int {
	now := StartOfDay(Now())
	then := StartOfDay(t)
	duration := now.Sub(then)
	return int(duration.Hours() / 24)
}

// DaysBetween calculates the number of whole days between two times.
func DaysBetween(t1, t2 time.Time) int {
	a1 := StartOfDay(t1)
	a2 := StartOfDay(t2)
	duration := a2.Sub(a1)
	days := int(duration.Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// IsSameDay checks if two times are on the same day in São Paulo timezone.
func IsSameDay(t1, t2 time.Time) bool {
	a1, a2 := ToSaoPaulo(t1), ToSaoPaulo(t2)
	return a1.Year() == a2.Year() && a1.YearDay() == a2.YearDay()
}

// Age returns complete years between birth date and the reference time,
// subtracting one year while the birthday has not yet arrived.
func Age(birth, ref time.Time) int {
	years := ref.Year() - birth.Year()
	anniversary := time.Date(ref.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, ref.Location())
	if anniversary.After(ref) {
		years--
	}
	return years
}

// Common date/time formats.
const (
	// FormatDate is the standard date format (YYYY-MM-DD).
	FormatDate = "2006-01-02"
	// FormatTime is the standard time format (HH:MM).
	FormatTime = "15:04"
	// FormatDateTime is the standard datetime format.
	FormatDateTime = "2006-01-02 15:04"
	// FormatDateTimeSeconds includes seconds.
	FormatDateTimeSeconds = "2006-01-02 15:04:05"
	// FormatBrazilianDate is the Brazilian date format (DD/MM/YYYY).
	FormatBrazilianDate = "02/01/2006"
	// FormatBrazilianDateTime is the Brazilian datetime format.
	FormatBrazilianDateTime = "02/01/2006 15:04"
)

// FormatSaoPaulo formats a time in São Paulo timezone with the given layout.
func FormatSaoPaulo(t time.Time, layout string) string {
	return ToSaoPaulo(t).Format(layout)
}

// FormatDateStr formats a time as a date string (YYYY-MM-DD) in São Paulo timezone.
func FormatDateStr(t time.Time) string {
	return FormatSaoPaulo(t, FormatDate)
}

// FormatBrazilian formats a time in Brazilian format (DD/MM/YYYY).
func FormatBrazilian(t time.Time) string {
	return FormatSaoPaulo(t, FormatBrazilianDate)
}

// FormatRelative returns a human-readable relative time string in Portuguese.
func FormatRelative(t time.Time) string {
	now := Now()
	local := ToSaoPaulo(t)
	duration := now.Sub(local)

	if duration < 0 {
		duration = -duration
		return formatFutureDuration(duration)
	}

	return formatPastDuration(duration)
}

func formatPastDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "agora mesmo"
	case d < time.Hour:
		return fmt.Sprintf("ha %d min", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("ha %d h", int(d.Hours()))
	case d < 30*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "ontem"
		}
		return fmt.Sprintf("ha %d dias", days)
	default:
		months := int(d.Hours() / 24 / 30)
		if months < 12 {
			return fmt.Sprintf("ha %d meses", months)
		}
		return fmt.Sprintf("ha %d anos", months/12)
	}
}

func formatFutureDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "agora"
	case d < time.Hour:
		return fmt.Sprintf("em %d min", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("em %d h", int(d.Hours()))
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "amanha"
		}
		return fmt.Sprintf("em %d dias", days)
	}
}

// ParseSaoPaulo parses a time string in São Paulo timezone.
func ParseSaoPaulo(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, SaoPauloTZ)
}

// ParseDate parses a date string (YYYY-MM-DD) in São Paulo timezone.
func ParseDate(value string) (time.Time, error) {
	return ParseSaoPaulo(FormatDate, value)
}
