package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/nfp"
)

// FormatValue renders a formulaArg as TEXT()/VALUETOTEXT() would,
// using fmtStr as the number-format pattern ("General" for the
// default rendering). Parsing is delegated entirely to
// github.com/xuri/nfp; this function only implements the rendering
// logic on top of the resulting token stream, adapted from
// TsubasaBE-go-xlsb/numfmt/numfmt.go's FormatValue/formatFloat split.
func FormatValue(v formulaArg, fmtStr string, date1904 bool) formulaArg {
	v = v.anchor()
	switch v.Type {
	case ArgEmpty:
		return newTextArg("")
	case ArgError:
		return v
	case ArgText:
		return newTextArg(v.Text)
	case ArgBoolean:
		if v.Boolean {
			return newTextArg("TRUE")
		}
		return newTextArg("FALSE")
	case ArgNumber:
		return newTextArg(formatFloat(v.Number, fmtStr, date1904))
	default:
		return newErrorArg(formulaErrorVALUE)
	}
}

func formatFloat(val float64, fmtStr string, date1904 bool) string {
	if fmtStr == "" || strings.EqualFold(fmtStr, "General") {
		return renderGeneral(val)
	}
	sections := nfp.NumberFormatParser().Parse(fmtStr)
	if len(sections) == 0 {
		return renderGeneral(val)
	}
	sec := selectSection(sections, val)
	if isDateFormat(fmtStr) {
		return renderDateTime(val, sec, date1904)
	}
	return renderNumber(val, sec)
}

func renderGeneral(val float64) string {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return strconv.FormatFloat(val, 'G', -1, 64)
	}
	if val == math.Trunc(val) && math.Abs(val) < 1e15 {
		return strconv.FormatInt(int64(val), 10)
	}
	return strconv.FormatFloat(val, 'G', -1, 64)
}

// selectSection picks a section per the "positive;negative;zero;text"
// convention (TsubasaBE numfmt.go's selectSection).
func selectSection(sections []nfp.Section, val float64) nfp.Section {
	switch {
	case len(sections) == 1:
		return sections[0]
	case len(sections) == 2:
		if val < 0 {
			return sections[1]
		}
		return sections[0]
	default:
		switch {
		case val > 0:
			return sections[0]
		case val < 0:
			return sections[1]
		default:
			return sections[2]
		}
	}
}

// isDateFormat scans unquoted format content for date/time token
// characters, since this path never carries a workbook numFmtID.
func isDateFormat(fmtStr string) bool {
	inQuote, inBracket := false, false
	for _, ch := range fmtStr {
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
			}
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		case ch == 'd' || ch == 'D' || ch == 'm' || ch == 'M' ||
			ch == 'y' || ch == 'Y' || ch == 'h' || ch == 'H':
			return true
		}
	}
	return false
}

func convertSerial(serial float64, date1904 bool) time.Time {
	fracSec := int64(math.Round((serial - math.Trunc(serial)) * 86400))
	if fracSec < 0 {
		fracSec = 0
	} else if fracSec > 86399 {
		fracSec = 86399
	}
	if date1904 {
		base := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
		return base.Add(time.Duration(int64(serial))*24*time.Hour + time.Duration(fracSec)*time.Second)
	}
	base := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	intPart := int64(serial)
	switch {
	case intPart == 0:
		return time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(fracSec) * time.Second)
	case intPart >= 61:
		return base.Add(time.Duration(intPart-1)*24*time.Hour + time.Duration(fracSec)*time.Second)
	default:
		return base.Add(time.Duration(intPart)*24*time.Hour + time.Duration(fracSec)*time.Second)
	}
}

func renderDateTime(serial float64, sec nfp.Section, date1904 bool) string {
	t := convertSerial(serial, date1904)
	hasAmPm := false
	for _, tok := range sec.Items {
		if tok.TType == nfp.TokenTypeDateTimes {
			upper := strings.ToUpper(tok.TValue)
			if upper == "AM/PM" || upper == "A/P" {
				hasAmPm = true
				break
			}
		}
	}
	var sb strings.Builder
	lastWasHour := false
	for _, tok := range sec.Items {
		switch tok.TType {
		case nfp.TokenTypeDateTimes:
			upper := strings.ToUpper(tok.TValue)
			sb.WriteString(renderDateToken(upper, t, hasAmPm, lastWasHour))
			lastWasHour = upper == "H" || upper == "HH"
		case nfp.TokenTypeElapsedDateTimes:
			upper := strings.ToUpper(tok.TValue)
			sb.WriteString(renderElapsed(upper, serial))
			lastWasHour = upper == "H" || upper == "HH"
		case nfp.TokenTypeLiteral:
			sb.WriteString(tok.TValue)
		default:
			lastWasHour = false
		}
	}
	if sb.Len() == 0 {
		return renderGeneral(serial)
	}
	return sb.String()
}

func renderDateToken(upper string, t time.Time, hasAmPm, lastWasHour bool) string {
	switch upper {
	case "YYYY":
		return fmt.Sprintf("%04d", t.Year())
	case "YY":
		return fmt.Sprintf("%02d", t.Year()%100)
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		if lastWasHour {
			return fmt.Sprintf("%02d", t.Minute())
		}
		return fmt.Sprintf("%02d", int(t.Month()))
	case "M":
		if lastWasHour {
			return strconv.Itoa(t.Minute())
		}
		return strconv.Itoa(int(t.Month()))
	case "DDDD":
		return t.Weekday().String()
	case "DDD":
		return t.Weekday().String()[:3]
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	case "D":
		return strconv.Itoa(t.Day())
	case "HH":
		h := t.Hour()
		if hasAmPm {
			h = h%12 + boolToHourAdj(h%12 == 0)
		}
		return fmt.Sprintf("%02d", h)
	case "H":
		h := t.Hour()
		if hasAmPm {
			h = h%12 + boolToHourAdj(h%12 == 0)
		}
		return strconv.Itoa(h)
	case "SS":
		return fmt.Sprintf("%02d", t.Second())
	case "S":
		return strconv.Itoa(t.Second())
	case "AM/PM":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case "A/P":
		if t.Hour() < 12 {
			return "A"
		}
		return "P"
	}
	return ""
}

func boolToHourAdj(midnightOrNoon bool) int {
	if midnightOrNoon {
		return 12
	}
	return 0
}

func renderElapsed(upper string, serial float64) string {
	switch upper {
	case "H", "HH":
		return strconv.Itoa(int(serial * 24))
	case "MM":
		return fmt.Sprintf("%02d", int(serial*24*60)%60)
	case "M":
		return strconv.Itoa(int(serial*24*60) % 60)
	case "SS":
		return fmt.Sprintf("%02d", int(serial*24*3600)%60)
	case "S":
		return strconv.Itoa(int(serial*24*3600) % 60)
	}
	return ""
}

// renderNumber renders a non-date numeric value, supporting the
// common 0/#/,/.  placeholder grammar and an optional trailing '%'.
func renderNumber(val float64, sec nfp.Section) string {
	hasPercent, hasThousands, hasDecimal := false, false, false
	decZeros, decHashes, intZeros := 0, 0, 0
	afterDecimal := false
	for _, tok := range sec.Items {
		switch tok.TType {
		case nfp.TokenTypePercent:
			hasPercent = true
		case nfp.TokenTypeThousandsSeparator:
			hasThousands = true
		case nfp.TokenTypeDecimalPoint:
			hasDecimal = true
			afterDecimal = true
		case nfp.TokenTypeZeroPlaceHolder:
			if afterDecimal {
				decZeros += len(tok.TValue)
			} else {
				intZeros += len(tok.TValue)
			}
		case nfp.TokenTypeHashPlaceHolder:
			if afterDecimal {
				decHashes += len(tok.TValue)
			}
		}
	}
	totalDec := decZeros + decHashes
	absVal := math.Abs(val)
	if hasPercent {
		absVal *= 100
	}
	var intStr, fracStr string
	if hasDecimal {
		formatted := strconv.FormatFloat(absVal, 'f', totalDec, 64)
		if dot := strings.IndexByte(formatted, '.'); dot >= 0 {
			intStr, fracStr = formatted[:dot], formatted[dot+1:]
		} else {
			intStr, fracStr = formatted, strings.Repeat("0", totalDec)
		}
		if decHashes > 0 && len(fracStr) > decZeros {
			trimTo := len(fracStr)
			for trimTo > decZeros && fracStr[trimTo-1] == '0' {
				trimTo--
			}
			fracStr = fracStr[:trimTo]
		}
	} else {
		intStr = strconv.FormatFloat(absVal, 'f', 0, 64)
	}
	for len(intStr) < intZeros {
		intStr = "0" + intStr
	}
	if hasThousands {
		intStr = groupThousands(intStr)
	}
	out := intStr
	if fracStr != "" {
		out += "." + fracStr
	}
	if hasPercent {
		out += "%"
	}
	if val < 0 {
		out = "-" + out
	}
	return out
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var parts []string
	for n > 3 {
		parts = append([]string{s[n-3:]}, parts...)
		s = s[:n-3]
		n = len(s)
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}
