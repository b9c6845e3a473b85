package formula

import "sync"

// Function is the shared calling convention every implementation in
// the library exposes (§4.3): execute(ctx, args) -> Value.
type Function func(ctx CalcContext, args []formulaArg) formulaArg

// registry is the case-insensitive name -> Function map (§4.4). Once
// built (on the first Lookup) it is never mutated, so concurrent lookups
// need no lock (§5); the sync.Once only guards the one-time build.
type registry struct {
	once sync.Once
	fns  map[string]Function
}

var globalRegistry registry

// errorAwareFns lists functions that must run their own error handling
// before (or instead of) the generic positional error scan in §4.1/§7:
// IFERROR, IFNA, the IS* predicates, TYPE, N, AGGREGATE (for its
// ignore-errors options), FILTER and UNIQUE. The multi-criteria family
// (SUMIFS, COUNTIFS, ...) is not listed, so an error in any of its
// arguments is returned by the generic scan.
var errorAwareFns = map[string]bool{
	"IFERROR": true, "IFNA": true, "AGGREGATE": true,
	"ISERROR": true, "ISERR": true, "ISNA": true, "ISBLANK": true,
	"ISNUMBER": true, "ISTEXT": true, "ISNONTEXT": true, "ISLOGICAL": true,
	"ISEVEN": true, "ISODD": true, "TYPE": true, "N": true,
	"FILTER": true, "UNIQUE": true,
}

// Lookup resolves name (case-insensitive; dots are kept verbatim since
// dotted modern names like STDEV.S are first class registry keys; an
// "_xlfn." prefix is not stripped here, Evaluate strips it before
// calling Execute) to a Function. ok is false for unknown names;
// per §4.4 the registry itself never returns #NAME? — that is the
// caller's (the compiler's) job.
func Lookup(name string) (Function, bool) {
	globalRegistry.once.Do(buildRegistry)
	fn, ok := globalRegistry.fns[normalizeFnName(name)]
	return fn, ok
}

// IsErrorAware reports whether name performs its own error handling
// ahead of the generic positional scan (§4.3 point 2).
func IsErrorAware(name string) bool {
	return errorAwareFns[normalizeFnName(name)]
}

func normalizeFnName(name string) string {
	return caseFolder.String(name)
}

func register(fns map[string]Function, name string, fn Function) {
	fns[normalizeFnName(name)] = fn
}

// buildRegistry merges every category's registration map (each built
// by that category file's own init()) into the single dispatch table
// (§4.4, §9 "Global state": one process-wide immutable handle, built
// once and never mutated again).
func buildRegistry() {
	merged := map[string]Function{}
	for _, category := range []map[string]Function{
		mathFns, aggregateFns, multiCriteriaFns, statsFns, distributionFns,
		forecastFns, lookupFns, textFns, logicalFns, informationFns,
		datetimeFns, financialFns, securitiesFns,
	} {
		for k, v := range category {
			merged[k] = v
		}
	}
	globalRegistry.fns = merged
}
