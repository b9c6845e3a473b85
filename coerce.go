package formula

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// caseFolder performs Unicode simple case folding rather than ASCII
// upper/lower-casing, per §9's "Case-insensitive text operations"
// design note.
var caseFolder = cases.Fold()

func foldEqual(a, b string) bool {
	return caseFolder.String(a) == caseFolder.String(b)
}

// toNumber implements to_number(v) (§4.1).
func toNumber(a formulaArg) formulaArg {
	a = a.anchor()
	switch a.Type {
	case ArgNumber:
		return a
	case ArgBoolean:
		if a.Boolean {
			return newNumberArg(1)
		}
		return newNumberArg(0)
	case ArgEmpty:
		return newNumberArg(0)
	case ArgText:
		s := strings.TrimSpace(a.Text)
		if s == "" {
			return newNumberArg(0)
		}
		s = strings.TrimSuffix(s, "%")
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return newErrorArg(formulaErrorVALUE)
		}
		if strings.HasSuffix(a.Text, "%") {
			v /= 100
		}
		return newNumberArg(v)
	case ArgError:
		return a
	default:
		return newErrorArg(formulaErrorVALUE)
	}
}

// toText implements to_text(v) (§4.1).
func toText(a formulaArg) formulaArg {
	a = a.anchor()
	if a.isError() {
		return a
	}
	return newTextArg(a.String())
}

// toBoolean implements to_boolean(v) (§4.1).
func toBoolean(a formulaArg) formulaArg {
	a = a.anchor()
	switch a.Type {
	case ArgBoolean:
		return a
	case ArgNumber:
		return newBooleanArg(a.Number != 0)
	case ArgEmpty:
		return newBooleanArg(false)
	case ArgText:
		if foldEqual(a.Text, "TRUE") {
			return newBooleanArg(true)
		}
		if foldEqual(a.Text, "FALSE") {
			return newBooleanArg(false)
		}
		return newErrorArg(formulaErrorVALUE)
	case ArgError:
		return a
	default:
		return newErrorArg(formulaErrorVALUE)
	}
}

// excelEpoch is the OADate zero point: days-since-1899-12-30 (§GLOSSARY).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// serialToTime converts an Excel serial date (whole days since
// excelEpoch, fractional part = time of day, rounded to the nearest
// second) to a time.Time. Counting
// from 1899-12-30 lines serials from 61 onward up with Excel's 1900 date
// system, which counts a nonexistent 1900-02-29 as serial 60; serials
// below 61 fall one day earlier than Excel displays them.
func serialToTime(serial float64) time.Time {
	days := math.Floor(serial)
	frac := serial - days
	t := excelEpoch.AddDate(0, 0, int(days))
	return t.Add(time.Duration(frac * 86400 * float64(time.Second))).Round(time.Second)
}

// timeToSerial is the inverse of serialToTime.
func timeToSerial(t time.Time) float64 {
	days := int(t.Sub(excelEpoch).Hours() / 24)
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	frac := t.Sub(midnight).Seconds() / 86400
	return float64(days) + frac
}

// dateTextLayouts are the formats to_date_serial(text) attempts, in
// order, per §4.1.
var dateTextLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"3:04:05 PM",
	"15:04:05",
	"3:04 PM",
	"15:04",
}

// toDateSerial implements to_date_serial(v) (§4.1).
func toDateSerial(a formulaArg) formulaArg {
	a = a.anchor()
	switch a.Type {
	case ArgNumber:
		return a
	case ArgError:
		return a
	case ArgBoolean:
		return newErrorArg(formulaErrorVALUE)
	case ArgEmpty:
		return newNumberArg(0)
	case ArgText:
		s := strings.TrimSpace(a.Text)
		for _, layout := range dateTextLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				if !strings.Contains(layout, "2006") {
					// time-only layout: anchor to day zero, keep fraction.
					frac := (float64(t.Hour())*3600 + float64(t.Minute())*60 + float64(t.Second())) / 86400
					return newNumberArg(frac)
				}
				return newNumberArg(timeToSerial(t))
			}
		}
		return newErrorArg(formulaErrorVALUE)
	default:
		return newErrorArg(formulaErrorVALUE)
	}
}
