package formula

import (
	"math"
	"strconv"
	"strings"

	"github.com/xuri/efp"
)

// Evaluate parses formula (with or without a leading '=') and computes
// its value against ctx, relative to sheet for unqualified references
// (§4.2, §4.6). It is the shunting-yard counterpart of a workbook's
// per-cell recalculation entry point, adapted from the
// evalInfixExp/calculate/parseToken split so that every operand
// carries a formulaArg instead of a stringly-typed efp.Token, and
// function calls dispatch through Execute's case-insensitive registry
// lookup instead of reflection.
func Evaluate(ctx CalcContext, sheet, formula string) formulaArg {
	formula = strings.TrimPrefix(strings.TrimSpace(formula), "=")
	tokens := efp.ExcelParser().Parse(formula)
	if tokens == nil {
		return newErrorArg(formulaErrorVALUE)
	}
	result, err := evalInfixExp(ctx, sheet, tokens)
	if err != "" {
		return newErrorArg(err)
	}
	return result
}

// operator priority table (§4.6): comparisons bind loosest, power
// tightest; unary prefix minus binds tighter than every binary operator
// except ^, so -2^2 is -(2^2).
func getPriority(token efp.Token) int {
	switch token.TValue {
	case "=", "<>", "<", "<=", ">", ">=":
		return 1
	case "&":
		return 2
	case "+", "-":
		if token.TType == efp.TokenTypeOperatorPrefix {
			return 5
		}
		return 3
	case "*", "/":
		return 4
	case "^":
		return 6
	}
	if token.TType == efp.TokenTypeSubexpression && token.TSubType == efp.TokenSubTypeStart {
		return 0
	}
	return 0
}

func evalInfixExp(ctx CalcContext, sheet string, tokens []efp.Token) (formulaArg, string) {
	opdStack, optStack := newTokenStack(), newTokenStack()
	opfStack, opfdStack, optfStack, argsStack := newTokenStack(), newTokenStack(), newTokenStack(), newTokenStack()

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		if opfStack.empty() {
			if errStr := parseToken(ctx, sheet, token, opdStack, optStack); errStr != "" {
				return formulaArg{}, errStr
			}
		}

		if token.TType == efp.TokenTypeFunction && token.TSubType == efp.TokenSubTypeStart {
			opfStack.push(token)
			continue
		}

		if !opfStack.empty() {
			if token.TSubType == efp.TokenSubTypeRange {
				val, errStr := readReference(ctx, sheet, token.TValue)
				if errStr != "" {
					return formulaArg{}, errStr
				}
				opfdStack.push(val)
				continue
			}

			if errStr := parseToken(ctx, sheet, token, opfdStack, optfStack); errStr != "" {
				return formulaArg{}, errStr
			}

			if token.TType == efp.TokenTypeArgument {
				if errStr := drainOperators(opfdStack, optfStack); errStr != "" {
					return formulaArg{}, errStr
				}
				if !opfdStack.empty() {
					argsStack.push(opfdStack.pop())
				}
				continue
			}

			if token.TType == efp.TokenTypeFunction && token.TSubType == efp.TokenSubTypeStop {
				if errStr := drainOperators(opfdStack, optfStack); errStr != "" {
					return formulaArg{}, errStr
				}
				if !opfdStack.empty() {
					argsStack.push(opfdStack.pop())
				}
				name := opfStack.peek().(efp.Token).TValue
				name = strings.TrimPrefix(name, "_xlfn.")
				args := drainArgs(argsStack)
				result := Execute(ctx, name, args)
				opfStack.pop()
				if !opfStack.empty() {
					opfdStack.push(result)
				} else {
					opdStack.push(result)
				}
			}
		}
	}

	if errStr := drainOperators(opdStack, optStack); errStr != "" {
		return formulaArg{}, errStr
	}
	if opdStack.empty() {
		return newEmptyArg(), ""
	}
	return opdStack.pop().(formulaArg), ""
}

// drainOperators applies every pending operator in optStack against
// opdStack, in LIFO order (§4.6 "no explicit precedence climbing
// beyond what the stack already encodes").
func drainOperators(opdStack, optStack *tokenStack) string {
	for !optStack.empty() {
		top := optStack.pop().(efp.Token)
		if errStr := calculate(opdStack, top); errStr != "" {
			return errStr
		}
	}
	return ""
}

// drainArgs pops argsStack (LIFO push order) back into call order.
func drainArgs(argsStack *tokenStack) []formulaArg {
	var reversed []formulaArg
	for !argsStack.empty() {
		reversed = append(reversed, argsStack.pop().(formulaArg))
	}
	args := make([]formulaArg, len(reversed))
	for i, a := range reversed {
		args[len(reversed)-1-i] = a
	}
	return args
}

// parseToken pushes an operand onto opdStack or manages the shunting
// of an operator onto optStack (§4.6).
func parseToken(ctx CalcContext, sheet string, token efp.Token, opdStack, optStack *tokenStack) string {
	if token.TSubType == efp.TokenSubTypeRange {
		val, errStr := readReference(ctx, sheet, token.TValue)
		if errStr != "" {
			return errStr
		}
		opdStack.push(val)
		return ""
	}

	isOperator := token.TType == efp.TokenTypeOperatorInfix ||
		(token.TType == efp.TokenTypeOperatorPrefix && (token.TValue == "-" || token.TValue == "+"))
	if isOperator {
		if optStack.empty() {
			optStack.push(token)
			return ""
		}
		tokenPriority := getPriority(token)
		topOpt := optStack.peek().(efp.Token)
		topPriority := getPriority(topOpt)
		if tokenPriority > topPriority {
			optStack.push(token)
			return ""
		}
		for tokenPriority <= topPriority {
			optStack.pop()
			if errStr := calculate(opdStack, topOpt); errStr != "" {
				return errStr
			}
			if optStack.empty() {
				break
			}
			topOpt = optStack.peek().(efp.Token)
			topPriority = getPriority(topOpt)
		}
		optStack.push(token)
		return ""
	}

	if token.TType == efp.TokenTypeSubexpression && token.TSubType == efp.TokenSubTypeStart {
		optStack.push(token)
		return ""
	}
	if token.TType == efp.TokenTypeSubexpression && token.TSubType == efp.TokenSubTypeStop {
		for !optStack.empty() {
			top := optStack.peek().(efp.Token)
			if top.TType == efp.TokenTypeSubexpression && top.TSubType == efp.TokenSubTypeStart {
				optStack.pop()
				break
			}
			optStack.pop()
			if errStr := calculate(opdStack, top); errStr != "" {
				return errStr
			}
		}
		return ""
	}

	if token.TType == efp.TokenTypeOperand {
		opdStack.push(parseOperand(token))
		return ""
	}
	return ""
}

// parseOperand converts an efp operand token into a formulaArg,
// recognizing number, text, logical and error-literal subtypes.
func parseOperand(token efp.Token) formulaArg {
	if token.TSubType == efp.TokenSubTypeText {
		return newTextArg(unquoteFormulaText(token.TValue))
	}
	if token.TSubType == efp.TokenSubTypeLogical {
		return newBooleanArg(strings.EqualFold(token.TValue, "TRUE"))
	}
	if isErrorString(token.TValue) {
		return newErrorArg(token.TValue)
	}
	if n, err := strconv.ParseFloat(token.TValue, 64); err == nil {
		return newNumberArg(n)
	}
	return newTextArg(token.TValue)
}

func unquoteFormulaText(s string) string {
	s = strings.TrimPrefix(s, "\"")
	s = strings.TrimSuffix(s, "\"")
	return strings.ReplaceAll(s, "\"\"", "\"")
}

// calculate applies opt against the top one (prefix) or two (infix)
// values on opdStack.
func calculate(opdStack *tokenStack, opt efp.Token) string {
	if opt.TType == efp.TokenTypeOperatorPrefix {
		if opdStack.empty() {
			return formulaErrorVALUE
		}
		v := toNumber(opdStack.pop().(formulaArg))
		if v.isError() {
			opdStack.push(v)
			return ""
		}
		switch opt.TValue {
		case "-":
			opdStack.push(newNumberArg(-v.Number))
		default:
			opdStack.push(v)
		}
		return ""
	}

	if opdStack.len() < 2 {
		return formulaErrorVALUE
	}
	r := opdStack.pop().(formulaArg)
	l := opdStack.pop().(formulaArg)

	if opt.TValue == "&" {
		lt, rt := toText(l), toText(r)
		if lt.isError() {
			opdStack.push(lt)
			return ""
		}
		if rt.isError() {
			opdStack.push(rt)
			return ""
		}
		opdStack.push(newTextArg(lt.Text + rt.Text))
		return ""
	}

	switch opt.TValue {
	case "=", "<>", "<", "<=", ">", ">=":
		opdStack.push(compareOperands(l, r, opt.TValue))
		return ""
	}

	ln, rn := toNumber(l), toNumber(r)
	if ln.isError() {
		opdStack.push(ln)
		return ""
	}
	if rn.isError() {
		opdStack.push(rn)
		return ""
	}
	switch opt.TValue {
	case "+":
		opdStack.push(newNumberArg(ln.Number + rn.Number))
	case "-":
		opdStack.push(newNumberArg(ln.Number - rn.Number))
	case "*":
		opdStack.push(newNumberArg(ln.Number * rn.Number))
	case "/":
		if rn.Number == 0 {
			opdStack.push(newErrorArg(formulaErrorDIV))
			return ""
		}
		opdStack.push(newNumberArg(ln.Number / rn.Number))
	case "^":
		opdStack.push(newNumberArg(math.Pow(ln.Number, rn.Number)))
	default:
		return formulaErrorVALUE
	}
	return ""
}

// compareOperands implements Excel's comparison algebra: numbers
// compare numerically, otherwise text comparison (case-insensitive
// fold), with the type ordering Number < Text < Boolean < Error when
// the operand types differ (§4.1).
func compareOperands(l, r formulaArg, op string) formulaArg {
	cmp := compareArgs(l, r)
	var b bool
	switch op {
	case "=":
		b = cmp == 0
	case "<>":
		b = cmp != 0
	case "<":
		b = cmp < 0
	case "<=":
		b = cmp <= 0
	case ">":
		b = cmp > 0
	case ">=":
		b = cmp >= 0
	}
	return newBooleanArg(b)
}

// readReference resolves an A1/R1C1 reference or range token into a
// formulaArg: a scalar for a single cell, an array for a multi-cell
// range (§4.2).
func readReference(ctx CalcContext, sheet, text string) (formulaArg, string) {
	parts := strings.SplitN(text, ":", 2)
	from, ok := resolveRefText(ctx, parts[0])
	if !ok {
		return formulaArg{}, formulaErrorNAME
	}
	if len(parts) == 1 {
		return ctx.Read(refSheet(from, sheet), from.Row, from.Col), ""
	}
	to, ok := resolveRefText(ctx, parts[1])
	if !ok {
		return formulaArg{}, formulaErrorNAME
	}
	r1, r2, c1, c2 := from.Row, to.Row, from.Col, to.Col
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	rows := make([][]formulaArg, 0, r2-r1+1)
	for r := r1; r <= r2; r++ {
		row := make([]formulaArg, 0, c2-c1+1)
		for c := c1; c <= c2; c++ {
			row = append(row, ctx.Read(refSheet(from, sheet), r, c))
		}
		rows = append(rows, row)
	}
	return newArrayArg(rows), ""
}

func refSheet(ref CellRef, fallback string) string {
	if ref.Sheet != "" {
		return ref.Sheet
	}
	return fallback
}
