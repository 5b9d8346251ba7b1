package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSaoPaulo(t *testing.T) {
	utc := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	local := ToSaoPaulo(utc)

	assert.Equal(t, 9, local.Hour())
	assert.True(t, local.Equal(utc))
}

func TestToUTC(t *testing.T) {
	local := DateTime(2025, 3, 10, 9, 0, 0)

	utc := ToUTC(local)

	assert.Equal(t, 12, utc.Hour())
	assert.Equal(t, time.UTC, utc.Location())
}

func TestDate(t *testing.T) {
	d := Date(2025, 3, 10)

	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 10, d.Day())
	assert.Equal(t, 0, d.Hour())
}

func TestStartAndEndOfDay(t *testing.T) {
	// 02:30 UTC do dia 11 ainda é dia 10 em São Paulo
	utc := time.Date(2025, 3, 11, 2, 30, 0, 0, time.UTC)

	start := StartOfDay(utc)
	end := EndOfDay(utc)

	assert.Equal(t, 10, start.Day())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 10, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, start.Before(end))
}

func TestIsToday(t *testing.T) {
	assert.True(t, IsToday(Now()))
	assert.False(t, IsToday(Now().AddDate(0, 0, -1)))
}

func TestDaysSince(t *testing.T) {
	assert.Equal(t, 0, DaysSince(Now()))
	assert.Equal(t, 10, DaysSince(Now().AddDate(0, 0, -10)))
}

func TestDaysBetween(t *testing.T) {
	a := Date(2025, 3, 1)
	b := Date(2025, 3, 11)

	assert.Equal(t, 10, DaysBetween(a, b))
	assert.Equal(t, 10, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestDaysBetween_IgnoraHoraDoDia(t *testing.T) {
	a := DateTime(2025, 3, 1, 23, 59, 0)
	b := DateTime(2025, 3, 2, 0, 1, 0)

	assert.Equal(t, 1, DaysBetween(a, b))
}

func TestIsSameDay(t *testing.T) {
	a := DateTime(2025, 3, 10, 1, 0, 0)
	b := DateTime(2025, 3, 10, 23, 0, 0)

	assert.True(t, IsSameDay(a, b))
	assert.False(t, IsSameDay(a, b.AddDate(0, 0, 1)))
}

func TestIsSameDay_FusoConta(t *testing.T) {
	// 01:00 UTC do dia 11 = 22:00 do dia 10 em São Paulo
	noiteAnterior := time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC)
	mesmaNoite := DateTime(2025, 3, 10, 20, 0, 0)

	assert.True(t, IsSameDay(noiteAnterior, mesmaNoite))
}

func TestAge(t *testing.T) {
	birth := Date(1990, 6, 15)

	tests := []struct {
		name string
		ref  time.Time
		want int
	}{
		{"dia anterior ao aniversario", Date(2025, 6, 14), 34},
		{"dia do aniversario", Date(2025, 6, 15), 35},
		{"dia seguinte", Date(2025, 6, 16), 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(birth, tt.ref))
		})
	}
}

func TestFormatDateStr(t *testing.T) {
	utc := time.Date(2025, 3, 11, 2, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-10", FormatDateStr(utc))
}

func TestFormatBrazilian(t *testing.T) {
	d := Date(2025, 3, 10)

	assert.Equal(t, "10/03/2025", FormatBrazilian(d))
}

func TestFormatRelative(t *testing.T) {
	assert.Equal(t, "agora mesmo", FormatRelative(time.Now()))
	assert.Equal(t, "ha 5 min", FormatRelative(time.Now().Add(-5*time.Minute)))
	assert.Equal(t, "ha 3 h", FormatRelative(time.Now().Add(-3*time.Hour)))
	assert.Equal(t, "ontem", FormatRelative(time.Now().Add(-30*time.Hour)))
	assert.Equal(t, "ha 5 dias", FormatRelative(time.Now().Add(-5*24*time.Hour)))
	assert.Equal(t, "ha 2 meses", FormatRelative(time.Now().Add(-65*24*time.Hour)))
	assert.Equal(t, "ha 2 anos", FormatRelative(time.Now().Add(-2*370*24*time.Hour)))
}

func TestFormatRelative_Futuro(t *testing.T) {
	assert.Equal(t, "em 10 min", FormatRelative(time.Now().Add(10*time.Minute+30*time.Second)))
	assert.Equal(t, "em 2 h", FormatRelative(time.Now().Add(2*time.Hour+time.Minute)))
	assert.Equal(t, "amanha", FormatRelative(time.Now().Add(30*time.Hour)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-10")

	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 10, d.Day())
	assert.Equal(t, SaoPauloTZ, d.Location())

	_, err = ParseDate("10/03/2025")
	assert.Error(t, err)
}
