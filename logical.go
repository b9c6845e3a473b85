package formula

var logicalFns map[string]Function

func init() {
	fns := map[string]Function{}
	register(fns, "IF", fnIf)
	register(fns, "IFERROR", fnIfError)
	register(fns, "IFNA", fnIfNa)
	register(fns, "IFS", fnIfs)
	register(fns, "SWITCH", fnSwitch)
	register(fns, "AND", fnAnd)
	register(fns, "OR", fnOr)
	register(fns, "NOT", fnNot)
	register(fns, "XOR", fnXor)
	logicalFns = fns
}

// fnIf implements IF(cond, if_true[, if_false=FALSE]) (§4.5.7); it is
// not error-aware, so a condition error still propagates via the
// generic scan in Execute before this runs.
func fnIf(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	if args[0].truthy() {
		return args[1]
	}
	if len(args) == 3 {
		return args[2]
	}
	return newBooleanArg(false)
}

// fnIfError implements IFERROR(v, alt) (§4.5.7): error-aware, since it
// must observe the error itself rather than have it intercepted.
func fnIfError(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	if args[0].anchor().isError() {
		return args[1]
	}
	return args[0]
}

// fnIfNa implements IFNA(v, alt) (§4.5.7): only substitutes for #N/A,
// every other error still propagates.
func fnIfNa(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	a := args[0].anchor()
	if a.isError() && a.Err == formulaErrorNA {
		return args[1]
	}
	if a.isError() {
		return a
	}
	return args[0]
}

// fnIfs implements IFS(cond1, val1[, cond2, val2, ...]) (§4.5.7): an
// even, >=2 argument count; #N/A when no condition is truthy.
func fnIfs(ctx CalcContext, args []formulaArg) formulaArg {
	if len(args) < 2 || len(args)%2 != 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	for i := 0; i+1 < len(args); i += 2 {
		if args[i].isError() {
			return args[i]
		}
		if args[i].truthy() {
			return args[i+1]
		}
	}
	return newErrorArg(formulaErrorNA)
}

// fnSwitch implements SWITCH(expr, case1, val1[, ..., default]).
// Case-insensitive text match (Unicode fold), strict type match for
// non-text operands (§4.5.7).
func fnSwitch(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, -1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	expr := args[0].anchor()
	i := 1
	for ; i+1 < len(args); i += 2 {
		candidate := args[i].anchor()
		if switchMatches(expr, candidate) {
			return args[i+1]
		}
	}
	if i < len(args) {
		return args[i]
	}
	return newErrorArg(formulaErrorNA)
}

func switchMatches(expr, candidate formulaArg) bool {
	if expr.isText() && candidate.isText() {
		return foldEqual(expr.Text, candidate.Text)
	}
	if expr.Type != candidate.Type {
		return false
	}
	switch expr.Type {
	case ArgNumber:
		return expr.Number == candidate.Number
	case ArgBoolean:
		return expr.Boolean == candidate.Boolean
	case ArgEmpty:
		return true
	default:
		return false
	}
}

func fnAnd(ctx CalcContext, args []formulaArg) formulaArg {
	flat := flattenArgs(args)
	if len(flat) == 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	for _, a := range flat {
		if a.isEmpty() {
			continue
		}
		b := toBoolean(a)
		if b.isError() {
			return b
		}
		if !b.Boolean {
			return newBooleanArg(false)
		}
	}
	return newBooleanArg(true)
}

func fnOr(ctx CalcContext, args []formulaArg) formulaArg {
	flat := flattenArgs(args)
	if len(flat) == 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	for _, a := range flat {
		if a.isEmpty() {
			continue
		}
		b := toBoolean(a)
		if b.isError() {
			return b
		}
		if b.Boolean {
			return newBooleanArg(true)
		}
	}
	return newBooleanArg(false)
}

func fnNot(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	b := toBoolean(args[0])
	if b.isError() {
		return b
	}
	return newBooleanArg(!b.Boolean)
}

// fnXor implements XOR (§4.5.7): true when an odd count of the
// arguments are truthy.
func fnXor(ctx CalcContext, args []formulaArg) formulaArg {
	flat := flattenArgs(args)
	if len(flat) == 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	count := 0
	for _, a := range flat {
		if a.isEmpty() {
			continue
		}
		b := toBoolean(a)
		if b.isError() {
			return b
		}
		if b.Boolean {
			count++
		}
	}
	return newBooleanArg(count%2 == 1)
}
