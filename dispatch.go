package formula

// Execute implements the Function contract end to end (§4.3): arity is
// left to each implementation (arity rules vary too much across the
// library to centralize, matching the teacher's own per-function arity
// checks), but the generic error scan and dispatch are centralized
// here so every call site — Evaluate's shunting-yard and any direct
// caller — gets the same propagation behavior.
func Execute(ctx CalcContext, name string, args []formulaArg) formulaArg {
	fn, ok := Lookup(name)
	if !ok {
		return newErrorArg(formulaErrorNAME)
	}
	if !IsErrorAware(name) {
		if e, found := firstError(args); found {
			return e
		}
	}
	return fn(ctx, args)
}

// firstError returns the first Error-typed argument in positional
// order (§4.1 "Error precedence", §8 invariant 1). Arrays are scanned
// row-major.
func firstError(args []formulaArg) (formulaArg, bool) {
	for _, a := range args {
		if a.Type == ArgArray {
			for _, row := range a.Array {
				for _, cell := range row {
					if cell.isError() {
						return cell, true
					}
				}
			}
			continue
		}
		if a.isError() {
			return a, true
		}
	}
	return formulaArg{}, false
}

// flattenArgs expands any ArgArray arguments into their cells in
// row-major order, leaving scalars untouched; this is the "implicit
// shape" flattening §3.2 describes as the calling convention for
// modern array functions and multi-criteria aggregators.
func flattenArgs(args []formulaArg) []formulaArg {
	out := make([]formulaArg, 0, len(args))
	for _, a := range args {
		if a.Type == ArgArray {
			for _, row := range a.Array {
				out = append(out, row...)
			}
			continue
		}
		out = append(out, a)
	}
	return out
}

// checkArity returns a #VALUE! arg (and false) when n is outside
// [min, max]; max < 0 means unbounded (§4.3 point 1).
func checkArity(n, min, max int) (formulaArg, bool) {
	if n < min || (max >= 0 && n > max) {
		return newErrorArg(formulaErrorVALUE), false
	}
	return formulaArg{}, true
}
