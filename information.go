package formula

var informationFns map[string]Function

func init() {
	fns := map[string]Function{}
	register(fns, "ISNUMBER", fnIsNumber)
	register(fns, "ISTEXT", fnIsText)
	register(fns, "ISBLANK", fnIsBlank)
	register(fns, "ISERROR", fnIsError)
	register(fns, "ISERR", fnIsErr)
	register(fns, "ISNA", fnIsNa)
	register(fns, "ISLOGICAL", fnIsLogical)
	register(fns, "ISNONTEXT", fnIsNonText)
	register(fns, "ISEVEN", fnIsEven)
	register(fns, "ISODD", fnIsOdd)
	register(fns, "TYPE", fnType)
	register(fns, "N", fnN)
	register(fns, "NA", fnNA)
	register(fns, "AREAS", fnAreas)
	informationFns = fns
}

// The IS* predicates (§4.5.7) never propagate errors: each is
// registered error-aware in registry.go and inspects its argument
// directly rather than relying on Execute's generic scan. ISEVEN and
// ISODD return FALSE for an error argument and #VALUE! for text that is
// not numeric.

func fnIsNumber(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	return newBooleanArg(args[0].anchor().isNumber())
}

func fnIsText(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	return newBooleanArg(args[0].anchor().isText())
}

func fnIsBlank(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	return newBooleanArg(args[0].anchor().isEmpty())
}

func fnIsError(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	return newBooleanArg(args[0].anchor().isError())
}

// fnIsErr implements ISERR: true for every error except #N/A.
func fnIsErr(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	a := args[0].anchor()
	return newBooleanArg(a.isError() && a.Err != formulaErrorNA)
}

func fnIsNa(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	a := args[0].anchor()
	return newBooleanArg(a.isError() && a.Err == formulaErrorNA)
}

func fnIsLogical(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	return newBooleanArg(args[0].anchor().isBoolean())
}

func fnIsNonText(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	return newBooleanArg(!args[0].anchor().isText())
}

func fnIsEven(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	a := args[0].anchor()
	if a.isError() {
		return newBooleanArg(false)
	}
	n := toNumber(a)
	if n.isError() {
		return n
	}
	return newBooleanArg(int64(n.Number)%2 == 0)
}

func fnIsOdd(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	a := args[0].anchor()
	if a.isError() {
		return newBooleanArg(false)
	}
	n := toNumber(a)
	if n.isError() {
		return n
	}
	return newBooleanArg(int64(n.Number)%2 != 0)
}

// fnType implements TYPE(v) (§4.5.7): 1 number (includes empty), 2
// text, 4 boolean, 16 error, 64 array.
func fnType(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	a := args[0]
	if a.Type == ArgArray {
		return newNumberArg(64)
	}
	switch a.Type {
	case ArgNumber, ArgEmpty:
		return newNumberArg(1)
	case ArgText:
		return newNumberArg(2)
	case ArgBoolean:
		return newNumberArg(4)
	case ArgError:
		return newNumberArg(16)
	default:
		return newNumberArg(1)
	}
}

// fnN implements N(v) (§4.5.7): number -> v, boolean -> 0/1, else 0,
// error propagates.
func fnN(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	a := args[0].anchor()
	switch a.Type {
	case ArgNumber:
		return a
	case ArgBoolean:
		if a.Boolean {
			return newNumberArg(1)
		}
		return newNumberArg(0)
	case ArgError:
		return a
	default:
		return newNumberArg(0)
	}
}

func fnNA(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 0, 0); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	return newErrorArg(formulaErrorNA)
}

// fnAreas implements AREAS(ref) (§4.5.7): the scalar surface this
// core presents has no multi-area references, so every reference is
// one area.
func fnAreas(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	return newNumberArg(1)
}
