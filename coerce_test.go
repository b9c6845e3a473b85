package formula

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToNumber(t *testing.T) {
	testCases := []struct {
		name    string
		arg     formulaArg
		want    float64
		wantErr bool
	}{
		{"number passthrough", newNumberArg(3.5), 3.5, false},
		{"true is one", newBooleanArg(true), 1, false},
		{"false is zero", newBooleanArg(false), 0, false},
		{"empty is zero", newEmptyArg(), 0, false},
		{"blank text is zero", newTextArg(""), 0, false},
		{"numeric text", newTextArg("42"), 42, false},
		{"percent text", newTextArg("50%"), 0.5, false},
		{"non-numeric text is an error", newTextArg("abc"), 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := toNumber(tc.arg)
			if tc.wantErr {
				assert.True(t, got.isError())
				return
			}
			assert.False(t, got.isError())
			assert.Equal(t, tc.want, got.Number)
		})
	}
}

func TestToNumberPropagatesError(t *testing.T) {
	got := toNumber(newErrorArg(formulaErrorNA))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorNA, got.Err)
}

func TestToText(t *testing.T) {
	assert.Equal(t, "TRUE", toText(newBooleanArg(true)).Text)
	assert.Equal(t, "3", toText(newNumberArg(3)).Text)
	assert.Equal(t, "", toText(newEmptyArg()).Text)
	assert.True(t, toText(newErrorArg(formulaErrorREF)).isError())
}

func TestToBoolean(t *testing.T) {
	testCases := []struct {
		name    string
		arg     formulaArg
		want    bool
		wantErr bool
	}{
		{"boolean passthrough true", newBooleanArg(true), true, false},
		{"number nonzero", newNumberArg(5), true, false},
		{"number zero", newNumberArg(0), false, false},
		{"empty", newEmptyArg(), false, false},
		{"text TRUE case-insensitive", newTextArg("true"), true, false},
		{"text FALSE case-insensitive", newTextArg("False"), false, false},
		{"text garbage is an error", newTextArg("maybe"), false, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := toBoolean(tc.arg)
			if tc.wantErr {
				assert.True(t, got.isError())
				return
			}
			assert.Equal(t, tc.want, got.Boolean)
		})
	}
}

func TestFoldEqual(t *testing.T) {
	assert.True(t, foldEqual("Hello", "hello"))
	assert.True(t, foldEqual("STRASSE", "strasse"))
	assert.False(t, foldEqual("foo", "bar"))
}

func TestSerialTimeRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		serial float64
	}{
		{"epoch plus one", 1},
		{"well past 1900 leap bug", 44197}, // 2021-01-01
		{"with fraction", 44197.5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			back := timeToSerial(serialToTime(tc.serial))
			assert.InDelta(t, tc.serial, back, 1e-6)
		})
	}
}

func TestSerialToTimeKnownDate(t *testing.T) {
	// Excel serial 44927 is 2023-01-01 (verified against the 1900 leap bug).
	got := serialToTime(44927)
	want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, got.Equal(want), "got %v want %v", got, want)
}

func TestToDateSerialFromText(t *testing.T) {
	got := toDateSerial(newTextArg("2023-01-01"))
	assert.False(t, got.isError())
	assert.InDelta(t, 44927, got.Number, 1e-6)
}

func TestToDateSerialRejectsBoolean(t *testing.T) {
	assert.True(t, toDateSerial(newBooleanArg(true)).isError())
}

func TestToDateSerialGarbageText(t *testing.T) {
	assert.True(t, toDateSerial(newTextArg("not a date")).isError())
}
