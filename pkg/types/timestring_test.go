package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid morning", input: "09:30", want: "09:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		// Однозначный час нормализуется к двузначному: сравнения
		// лексикографические, без нормализации "9:00" > "10:00"
		{name: "unpadded hour", input: "9:00", want: "09:00"},
		{name: "unpadded hour with minutes", input: "8:45", want: "08:45"},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minutes", input: "10:61", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts.String())
		})
	}
}

func TestTimeString_NormalizedOrdering(t *testing.T) {
	nine, err := NewTimeStringFromString("9:00")
	require.NoError(t, err)

	assert.True(t, nine.IsBefore(TimeString("10:00")))
	assert.False(t, nine.IsAfter(TimeString("10:00")))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("9:05"))
	assert.Equal(t, "09:05", ts.String())
	assert.True(t, ts.IsBefore(TimeString("10:00")))

	require.NoError(t, ts.Scan([]byte("18:30")))
	assert.Equal(t, "18:30", ts.String())

	// Верхняя граница дня читается как есть
	require.NoError(t, ts.Scan("24:00"))
	assert.Equal(t, "24:00", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(123))
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{input: "00:00", want: 0},
		{input: "08:00", want: 480},
		{input: "10:30", want: 630},
		{input: "23:59", want: 1439},
		// Верхняя граница дня, возникает из AddMinutes
		{input: "24:00", want: 1440},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			minutes, err := TimeString(tt.input).Minutes()
			require.NoError(t, err)
			assert.Equal(t, tt.want, minutes)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		add     int
		want    string
		wantErr bool
	}{
		{name: "within hour", start: "10:00", add: 30, want: "10:30"},
		{name: "across hour", start: "10:45", add: 30, want: "11:15"},
		{name: "to day upper bound", start: "23:00", add: 60, want: "24:00"},
		{name: "past midnight", start: "23:30", add: 60, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeString(tt.start).AddMinutes(tt.add)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_SubMinutes(t *testing.T) {
	diff, err := TimeString("12:00").SubMinutes(TimeString("10:30"))
	require.NoError(t, err)
	assert.Equal(t, 90, diff)

	diff, err = TimeString("10:00").SubMinutes(TimeString("12:00"))
	require.NoError(t, err)
	assert.Equal(t, -120, diff)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("11:00").IsAfter(TimeString("10:59")))
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	instant, err := TimeString("10:30").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC), instant)

	_, err = TimeString("bad").OnDate(date)
	assert.Error(t, err)
}
