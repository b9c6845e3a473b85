package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnNameNumberRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		col  int
	}{
		{"A", 1},
		{"Z", 26},
		{"AA", 27},
		{"AZ", 52},
		{"XFD", MaxCol},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := ColumnNameToNumber(tc.name)
			assert.NoError(t, err)
			assert.Equal(t, tc.col, n)

			name, err := ColumnNumberToName(tc.col)
			assert.NoError(t, err)
			assert.Equal(t, tc.name, name)
		})
	}
}

func TestColumnNameToNumberInvalid(t *testing.T) {
	_, err := ColumnNameToNumber("1A")
	assert.Error(t, err)
}

func TestColumnNumberToNameOutOfRange(t *testing.T) {
	_, err := ColumnNumberToName(0)
	assert.Error(t, err)
	_, err = ColumnNumberToName(MaxCol + 1)
	assert.Error(t, err)
}

func TestParseA1(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  CellRef
	}{
		{"bare", "B2", CellRef{Row: 2, Col: 2}},
		{"col absolute", "$B2", CellRef{Row: 2, Col: 2, ColAbs: true}},
		{"row absolute", "B$2", CellRef{Row: 2, Col: 2, RowAbs: true}},
		{"fully absolute", "$B$2", CellRef{Row: 2, Col: 2, RowAbs: true, ColAbs: true}},
		{"sheet qualified", "Sheet1!A1", CellRef{Row: 1, Col: 1, Sheet: "Sheet1"}},
		{"quoted sheet with space", "'My Sheet'!A1", CellRef{Row: 1, Col: 1, Sheet: "My Sheet"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseA1(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseA1Malformed(t *testing.T) {
	testCases := []string{"", "1A", "A0", "A", "$$A1"}
	for _, in := range testCases {
		_, err := ParseA1(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseR1C1Absolute(t *testing.T) {
	got, err := ParseR1C1("R2C3", nil)
	assert.NoError(t, err)
	assert.Equal(t, CellRef{Row: 2, Col: 3, RowAbs: true, ColAbs: true}, got)
}

func TestParseR1C1RelativeRequiresCurrent(t *testing.T) {
	_, err := ParseR1C1("R[1]C[-1]", nil)
	assert.Error(t, err)

	cur := &CellPos{Row: 5, Col: 5}
	got, err := ParseR1C1("R[1]C[-1]", cur)
	assert.NoError(t, err)
	assert.Equal(t, 6, got.Row)
	assert.Equal(t, 4, got.Col)
	assert.False(t, got.RowAbs)
	assert.False(t, got.ColAbs)
}

func TestParseR1C1SameAsCurrent(t *testing.T) {
	cur := &CellPos{Row: 5, Col: 5}
	got, err := ParseR1C1("RC", cur)
	assert.NoError(t, err)
	assert.Equal(t, 5, got.Row)
	assert.Equal(t, 5, got.Col)
}

func TestAddressA1Variants(t *testing.T) {
	testCases := []struct {
		name   string
		absNum int
		want   string
	}{
		{"fully absolute", 1, "$B$2"},
		{"row absolute only", 2, "B$2"},
		{"col absolute only", 3, "$B2"},
		{"fully relative", 4, "B2"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Address(2, 2, tc.absNum, true, "")
			assert.Equal(t, tc.want, got.Text)
		})
	}
}

func TestAddressR1C1(t *testing.T) {
	got := Address(2, 2, 4, false, "")
	assert.Equal(t, "R[2]C[2]", got.Text)

	got = Address(2, 2, 1, false, "")
	assert.Equal(t, "R2C2", got.Text)
}

func TestAddressWithSheet(t *testing.T) {
	got := Address(1, 1, 1, true, "Sheet1")
	assert.Equal(t, "Sheet1!$A$1", got.Text)

	got = Address(1, 1, 1, true, "My Sheet")
	assert.Equal(t, "'My Sheet'!$A$1", got.Text)
}

func TestAddressOutOfRange(t *testing.T) {
	assert.True(t, Address(0, 1, 1, true, "").isError())
	assert.True(t, Address(1, 1, 5, true, "").isError())
}
