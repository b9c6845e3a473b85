package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsErrorString(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want bool
	}{
		{"null", formulaErrorNULL, true},
		{"div", formulaErrorDIV, true},
		{"value", formulaErrorVALUE, true},
		{"ref", formulaErrorREF, true},
		{"name", formulaErrorNAME, true},
		{"num", formulaErrorNUM, true},
		{"na", formulaErrorNA, true},
		{"calc", formulaErrorCALC, true},
		{"spill", formulaErrorSPILL, true},
		{"getting data", formulaErrorGETTINGDATA, true},
		{"plain text", "hello", false},
		{"empty string", "", false},
		{"lowercase error look-alike", "#value!", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isErrorString(tc.in))
		})
	}
}

func TestErrorKindsOmitsPassthroughOnly(t *testing.T) {
	assert.True(t, errorKinds[formulaErrorNUM])
	assert.False(t, errorKinds[formulaErrorSPILL])
	assert.False(t, errorKinds[formulaErrorGETTINGDATA])
}
