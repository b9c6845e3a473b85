package formula

import "container/list"

// tokenStack is a LIFO stack of arbitrary values (efp.Token operators
// and formulaArg operands) built on container/list, the
// same structure the shunting-yard evaluator in eval.go uses for its
// operand/operator/argument stacks.
type tokenStack struct {
	list *list.List
}

func newTokenStack() *tokenStack {
	return &tokenStack{list: list.New()}
}

func (s *tokenStack) push(v interface{}) {
	s.list.PushBack(v)
}

func (s *tokenStack) pop() interface{} {
	e := s.list.Back()
	if e == nil {
		return nil
	}
	s.list.Remove(e)
	return e.Value
}

func (s *tokenStack) peek() interface{} {
	e := s.list.Back()
	if e == nil {
		return nil
	}
	return e.Value
}

func (s *tokenStack) empty() bool {
	return s.list.Len() == 0
}

func (s *tokenStack) len() int {
	return s.list.Len()
}
