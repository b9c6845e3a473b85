package formula

import (
	"math"
	"strings"
	"time"
)

var datetimeFns map[string]Function

func init() {
	fns := map[string]Function{}
	register(fns, "TODAY", fnToday)
	register(fns, "NOW", fnNow)
	register(fns, "DATE", fnDate)
	register(fns, "TIME", fnTime)
	register(fns, "DATEVALUE", fnDateValue)
	register(fns, "TIMEVALUE", fnTimeValue)
	register(fns, "YEAR", fnYear)
	register(fns, "MONTH", fnMonth)
	register(fns, "DAY", fnDay)
	register(fns, "HOUR", fnHour)
	register(fns, "MINUTE", fnMinute)
	register(fns, "SECOND", fnSecond)
	register(fns, "WEEKDAY", fnWeekday)
	register(fns, "ISOWEEKNUM", fnIsoWeekNum)
	register(fns, "DAYS", fnDays)
	register(fns, "DAYS360", fnDays360)
	register(fns, "EDATE", fnEDate)
	register(fns, "EOMONTH", fnEoMonth)
	register(fns, "YEARFRAC", fnYearFrac)
	register(fns, "DATEDIF", fnDateDif)
	register(fns, "WORKDAY.INTL", fnWorkdayIntl)
	register(fns, "NETWORKDAYS.INTL", fnNetworkdaysIntl)
	datetimeFns = fns
}

func fnToday(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 0, 0); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	now := ctx.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return newNumberArg(timeToSerial(midnight))
}

func fnNow(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 0, 0); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	return newNumberArg(timeToSerial(ctx.Now()))
}

func fnDate(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	y, m, d := toNumber(args[0]), toNumber(args[1]), toNumber(args[2])
	for _, a := range []formulaArg{y, m, d} {
		if a.isError() {
			return a
		}
	}
	year := int(y.Number)
	if year >= 0 && year < 1900 {
		year += 1900
	}
	t := time.Date(year, time.Month(1), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, int(m.Number)-1, int(d.Number)-1)
	return newNumberArg(timeToSerial(t))
}

func fnTime(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	h, m, s := toNumber(args[0]), toNumber(args[1]), toNumber(args[2])
	for _, a := range []formulaArg{h, m, s} {
		if a.isError() {
			return a
		}
	}
	total := h.Number*3600 + m.Number*60 + s.Number
	frac := math.Mod(total/86400, 1)
	if frac < 0 {
		frac++
	}
	return newNumberArg(frac)
}

func fnDateValue(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	if !args[0].isText() {
		return newErrorArg(formulaErrorVALUE)
	}
	n := toDateSerial(args[0])
	if n.isError() {
		return n
	}
	return newNumberArg(math.Floor(n.Number))
}

func fnTimeValue(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	if !args[0].isText() {
		return newErrorArg(formulaErrorVALUE)
	}
	n := toDateSerial(args[0])
	if n.isError() {
		return n
	}
	frac := n.Number - math.Floor(n.Number)
	return newNumberArg(frac)
}

func serialArg(a formulaArg) (time.Time, formulaArg) {
	n := toNumber(a)
	if n.isError() {
		return time.Time{}, n
	}
	return serialToTime(n.Number), formulaArg{}
}

func fnYear(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t, e := serialArg(args[0])
	if e.isError() {
		return e
	}
	return newNumberArg(float64(t.Year()))
}

func fnMonth(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t, e := serialArg(args[0])
	if e.isError() {
		return e
	}
	return newNumberArg(float64(t.Month()))
}

func fnDay(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t, e := serialArg(args[0])
	if e.isError() {
		return e
	}
	return newNumberArg(float64(t.Day()))
}

func fnHour(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t, e := serialArg(args[0])
	if e.isError() {
		return e
	}
	return newNumberArg(float64(t.Hour()))
}

func fnMinute(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t, e := serialArg(args[0])
	if e.isError() {
		return e
	}
	return newNumberArg(float64(t.Minute()))
}

func fnSecond(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t, e := serialArg(args[0])
	if e.isError() {
		return e
	}
	return newNumberArg(float64(t.Second()))
}

// fnWeekday implements WEEKDAY(serial[, return_type=1]) (§4.5.8).
func fnWeekday(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t, e := serialArg(args[0])
	if e.isError() {
		return e
	}
	retType := 1
	if len(args) == 2 {
		n := toNumber(args[1])
		if n.isError() {
			return n
		}
		retType = int(n.Number)
	}
	wd := int(t.Weekday()) // Sunday = 0
	switch retType {
	case 1:
		return newNumberArg(float64(wd + 1))
	case 2:
		return newNumberArg(float64((wd+6)%7 + 1))
	case 3:
		return newNumberArg(float64((wd + 6) % 7))
	case 11:
		return newNumberArg(float64((wd+6)%7 + 1))
	case 12:
		return newNumberArg(float64((wd+5)%7 + 1))
	case 13:
		return newNumberArg(float64((wd+4)%7 + 1))
	case 14:
		return newNumberArg(float64((wd+3)%7 + 1))
	case 15:
		return newNumberArg(float64((wd+2)%7 + 1))
	case 16:
		return newNumberArg(float64((wd+1)%7 + 1))
	case 17:
		return newNumberArg(float64(wd + 1))
	}
	return newErrorArg(formulaErrorNUM)
}

func fnIsoWeekNum(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t, e := serialArg(args[0])
	if e.isError() {
		return e
	}
	_, week := t.ISOWeek()
	return newNumberArg(float64(week))
}

func fnDays(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	end, start := toNumber(args[0]), toNumber(args[1])
	if end.isError() {
		return end
	}
	if start.isError() {
		return start
	}
	return newNumberArg(end.Number - start.Number)
}

// fnDays360 implements DAYS360(start, end[, method=false]) (§4.5.8):
// US (NASD) convention by default, European when method is TRUE.
func fnDays360(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	startN, endN := toNumber(args[0]), toNumber(args[1])
	if startN.isError() {
		return startN
	}
	if endN.isError() {
		return endN
	}
	european := false
	if len(args) == 3 {
		b := toBoolean(args[2])
		if b.isError() {
			return b
		}
		european = b.Boolean
	}
	start := serialToTime(startN.Number)
	end := serialToTime(endN.Number)
	sy, sm, sd := start.Year(), int(start.Month()), start.Day()
	ey, em, ed := end.Year(), int(end.Month()), end.Day()
	if european {
		if sd == 31 {
			sd = 30
		}
		if ed == 31 {
			ed = 30
		}
	} else {
		if isLastDayOfFeb(start) {
			sd = 30
		}
		if sd == 31 {
			sd = 30
		}
		if ed == 31 && sd == 30 {
			ed = 30
		}
	}
	return newNumberArg(float64(360*(ey-sy) + 30*(em-sm) + (ed - sd)))
}

func isLastDayOfFeb(t time.Time) bool {
	return t.Month() == time.February && t.AddDate(0, 0, 1).Month() == time.March
}

func fnEDate(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	serial, months := toNumber(args[0]), toNumber(args[1])
	if serial.isError() {
		return serial
	}
	if months.isError() {
		return months
	}
	t := serialToTime(serial.Number).AddDate(0, int(months.Number), 0)
	return newNumberArg(timeToSerial(t))
}

func fnEoMonth(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	serial, months := toNumber(args[0]), toNumber(args[1])
	if serial.isError() {
		return serial
	}
	if months.isError() {
		return months
	}
	t := serialToTime(serial.Number)
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, int(months.Number)+1, 0)
	lastDay := firstOfTarget.AddDate(0, 0, -1)
	return newNumberArg(timeToSerial(lastDay))
}

// fnYearFrac implements YEARFRAC(start, end[, basis=0]) (§4.5.8).
func fnYearFrac(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	startN, endN := toNumber(args[0]), toNumber(args[1])
	if startN.isError() {
		return startN
	}
	if endN.isError() {
		return endN
	}
	basis := 0
	if len(args) == 3 {
		b := toNumber(args[2])
		if b.isError() {
			return b
		}
		basis = int(b.Number)
	}
	s, e := startN.Number, endN.Number
	if e < s {
		s, e = e, s
	}
	start, end := serialToTime(s), serialToTime(e)
	switch basis {
	case 0:
		days360 := fnDays360(ctx, []formulaArg{newNumberArg(s), newNumberArg(e)})
		return newNumberArg(days360.Number / 360)
	case 1:
		days := e - s
		yearDays := actualYearDays(start, end)
		return newNumberArg(days / yearDays)
	case 2:
		return newNumberArg((e - s) / 360)
	case 3:
		return newNumberArg((e - s) / 365)
	case 4:
		days360 := fnDays360(ctx, []formulaArg{newNumberArg(s), newNumberArg(e), newBooleanArg(true)})
		return newNumberArg(days360.Number / 360)
	}
	return newErrorArg(formulaErrorNUM)
}

func actualYearDays(start, end time.Time) float64 {
	spanYears := end.Year() - start.Year()
	if spanYears == 0 {
		if isLeapYear(start.Year()) {
			return 366
		}
		return 365
	}
	totalDays, leapYears := 0, 0
	for y := start.Year(); y <= end.Year(); y++ {
		if isLeapYear(y) {
			leapYears++
		}
	}
	years := spanYears + 1
	totalDays = years*365 + leapYears
	return float64(totalDays) / float64(years)
}

func isLeapYear(y int) bool {
	return (y%4 == 0 && y%100 != 0) || y%400 == 0
}

// fnDateDif implements DATEDIF(start, end, unit) (§4.5.8); negative
// duration is #NUM!.
func fnDateDif(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	startN, endN := toNumber(args[0]), toNumber(args[1])
	if startN.isError() {
		return startN
	}
	if endN.isError() {
		return endN
	}
	unitArg := toText(args[2])
	if unitArg.isError() {
		return unitArg
	}
	if endN.Number < startN.Number {
		return newErrorArg(formulaErrorNUM)
	}
	start, end := serialToTime(startN.Number), serialToTime(endN.Number)
	unit := strings.ToUpper(unitArg.Text)
	switch unit {
	case "Y":
		years := end.Year() - start.Year()
		if end.Month() < start.Month() || (end.Month() == start.Month() && end.Day() < start.Day()) {
			years--
		}
		return newNumberArg(float64(years))
	case "M":
		months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		if end.Day() < start.Day() {
			months--
		}
		return newNumberArg(float64(months))
	case "D":
		return newNumberArg(endN.Number - startN.Number)
	case "YM":
		months := int(end.Month()) - int(start.Month())
		if end.Day() < start.Day() {
			months--
		}
		months = ((months % 12) + 12) % 12
		return newNumberArg(float64(months))
	case "YD":
		anniv := time.Date(end.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		if anniv.After(end) {
			anniv = time.Date(end.Year()-1, start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		}
		return newNumberArg(timeToSerial(end) - timeToSerial(anniv))
	case "MD":
		days := end.Day() - start.Day()
		if days < 0 {
			prevMonthEnd := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
			days = prevMonthEnd.Day() - start.Day() + end.Day()
		}
		return newNumberArg(float64(days))
	}
	return newErrorArg(formulaErrorNUM)
}

// weekendMask parses the WORKDAY.INTL/NETWORKDAYS.INTL weekend
// parameter (§4.5.8): a 1..17 code or a 7-char 0/1 string.
func weekendMask(a formulaArg) ([7]bool, formulaArg) {
	var mask [7]bool
	if a.isText() {
		s := a.Text
		if len(s) != 7 {
			return mask, newErrorArg(formulaErrorVALUE)
		}
		for i, ch := range s {
			if ch != '0' && ch != '1' {
				return mask, newErrorArg(formulaErrorVALUE)
			}
			mask[i] = ch == '1'
		}
		return mask, formulaArg{}
	}
	n := toNumber(a)
	if n.isError() {
		return mask, n
	}
	code := int(n.Number)
	codes := map[int][2]int{
		1: {5, 6}, 2: {6, 0}, 3: {0, 1}, 4: {1, 2}, 5: {2, 3}, 6: {3, 4}, 7: {4, 5},
	}
	if pair, ok := codes[code]; ok {
		mask[pair[0]] = true
		mask[pair[1]] = true
		return mask, formulaArg{}
	}
	if code >= 11 && code <= 17 {
		mask[(code-11)%7] = true
		return mask, formulaArg{}
	}
	return mask, newErrorArg(formulaErrorNUM)
}

func isHoliday(t time.Time, holidays []float64) bool {
	serial := timeToSerial(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	for _, h := range holidays {
		if math.Floor(h) == math.Floor(serial) {
			return true
		}
	}
	return false
}

func fnWorkdayIntl(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, -1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	startN, days := toNumber(args[0]), toNumber(args[1])
	if startN.isError() {
		return startN
	}
	if days.isError() {
		return days
	}
	mask := [7]bool{false, true, true, true, true, true, false}
	if len(args) >= 3 {
		m, e := weekendMask(args[2])
		if e.isError() {
			return e
		}
		mask = m
	}
	var holidays []float64
	if len(args) > 3 {
		holidays = numericSkip(args[3:])
	}
	t := serialToTime(startN.Number)
	remaining := int(days.Number)
	step := 1
	if remaining < 0 {
		step = -1
		remaining = -remaining
	}
	for remaining > 0 {
		t = t.AddDate(0, 0, step)
		if mask[int(t.Weekday())] || isHoliday(t, holidays) {
			continue
		}
		remaining--
	}
	return newNumberArg(timeToSerial(t))
}

func fnNetworkdaysIntl(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, -1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	startN, endN := toNumber(args[0]), toNumber(args[1])
	if startN.isError() {
		return startN
	}
	if endN.isError() {
		return endN
	}
	mask := [7]bool{false, true, true, true, true, true, false}
	if len(args) >= 3 {
		m, e := weekendMask(args[2])
		if e.isError() {
			return e
		}
		mask = m
	}
	var holidays []float64
	if len(args) > 3 {
		holidays = numericSkip(args[3:])
	}
	s, e := startN.Number, endN.Number
	sign := 1.0
	if e < s {
		s, e = e, s
		sign = -1
	}
	t := serialToTime(s)
	end := serialToTime(e)
	count := 0
	for !t.After(end) {
		if !mask[int(t.Weekday())] && !isHoliday(t, holidays) {
			count++
		}
		t = t.AddDate(0, 0, 1)
	}
	return newNumberArg(sign * float64(count))
}
