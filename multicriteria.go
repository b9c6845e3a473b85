package formula

var multiCriteriaFns map[string]Function

func init() {
	fns := map[string]Function{}
	register(fns, "SUMIFS", fnSumIfs)
	register(fns, "COUNTIFS", fnCountIfs)
	register(fns, "AVERAGEIFS", fnAverageIfs)
	register(fns, "MAXIFS", fnMaxIfs)
	register(fns, "MINIFS", fnMinIfs)
	multiCriteriaFns = fns
}

func flattenRange(a formulaArg) []formulaArg {
	return flattenArgs([]formulaArg{a})
}

// matchingIndices returns the positions that satisfy every
// (range, criterion) pair (§4.5.2). All ranges must flatten to the
// same length; a mismatch is a #VALUE! condition.
func matchingIndices(rangePairs [][]formulaArg, criteria []criterion) ([]int, formulaArg) {
	if len(rangePairs) == 0 {
		return nil, formulaArg{}
	}
	n := len(rangePairs[0])
	for _, r := range rangePairs[1:] {
		if len(r) != n {
			return nil, newErrorArg(formulaErrorVALUE)
		}
	}
	var idx []int
	for i := 0; i < n; i++ {
		ok := true
		for ri, r := range rangePairs {
			if !criteria[ri].matches(r[i]) {
				ok = false
				break
			}
		}
		if ok {
			idx = append(idx, i)
		}
	}
	return idx, formulaArg{}
}

// parseRangeCriteriaPairs validates the "(range, criterion)+" tail
// shape shared by SUMIFS/COUNTIFS/AVERAGEIFS/MAXIFS/MINIFS.
func parseRangeCriteriaPairs(tail []formulaArg) ([][]formulaArg, []criterion, formulaArg) {
	if len(tail) < 2 || len(tail)%2 != 0 {
		return nil, nil, newErrorArg(formulaErrorVALUE)
	}
	var ranges [][]formulaArg
	var criteria []criterion
	for i := 0; i+1 < len(tail); i += 2 {
		ranges = append(ranges, flattenRange(tail[i]))
		criteria = append(criteria, parseCriterion(tail[i+1]))
	}
	return ranges, criteria, formulaArg{}
}

func fnSumIfs(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, -1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	sumRange := flattenRange(args[0])
	ranges, criteria, errArg := parseRangeCriteriaPairs(args[1:])
	if errArg.isError() {
		return errArg
	}
	if len(sumRange) != len(ranges[0]) {
		return newErrorArg(formulaErrorVALUE)
	}
	idx, errArg := matchingIndices(ranges, criteria)
	if errArg.isError() {
		return errArg
	}
	sum := 0.0
	for _, i := range idx {
		n := toNumber(sumRange[i])
		if n.isError() {
			return n
		}
		sum += n.Number
	}
	return newNumberArg(sum)
}

func fnCountIfs(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, -1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	ranges, criteria, errArg := parseRangeCriteriaPairs(args)
	if errArg.isError() {
		return errArg
	}
	idx, errArg := matchingIndices(ranges, criteria)
	if errArg.isError() {
		return errArg
	}
	return newNumberArg(float64(len(idx)))
}

func fnAverageIfs(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, -1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	avgRange := flattenRange(args[0])
	ranges, criteria, errArg := parseRangeCriteriaPairs(args[1:])
	if errArg.isError() {
		return errArg
	}
	if len(avgRange) != len(ranges[0]) {
		return newErrorArg(formulaErrorVALUE)
	}
	idx, errArg := matchingIndices(ranges, criteria)
	if errArg.isError() {
		return errArg
	}
	if len(idx) == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	sum := 0.0
	for _, i := range idx {
		n := toNumber(avgRange[i])
		if n.isError() {
			return n
		}
		sum += n.Number
	}
	return newNumberArg(sum / float64(len(idx)))
}

func fnMaxIfs(ctx CalcContext, args []formulaArg) formulaArg {
	return minMaxIfs(args, true)
}

func fnMinIfs(ctx CalcContext, args []formulaArg) formulaArg {
	return minMaxIfs(args, false)
}

func minMaxIfs(args []formulaArg, max bool) formulaArg {
	if _, ok := checkArity(len(args), 3, -1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	valRange := flattenRange(args[0])
	ranges, criteria, errArg := parseRangeCriteriaPairs(args[1:])
	if errArg.isError() {
		return errArg
	}
	if len(valRange) != len(ranges[0]) {
		return newErrorArg(formulaErrorVALUE)
	}
	idx, errArg := matchingIndices(ranges, criteria)
	if errArg.isError() {
		return errArg
	}
	if len(idx) == 0 {
		return newNumberArg(0)
	}
	best := 0.0
	first := true
	for _, i := range idx {
		n := toNumber(valRange[i])
		if n.isError() {
			return n
		}
		if first || (max && n.Number > best) || (!max && n.Number < best) {
			best, first = n.Number, false
		}
	}
	return newNumberArg(best)
}
