package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenStackPushPopOrder(t *testing.T) {
	s := newTokenStack()
	assert.True(t, s.empty())
	s.push(1)
	s.push(2)
	s.push(3)
	assert.Equal(t, 3, s.len())
	assert.Equal(t, 3, s.peek())
	assert.Equal(t, 3, s.pop())
	assert.Equal(t, 2, s.pop())
	assert.Equal(t, 1, s.pop())
	assert.True(t, s.empty())
}

func TestTokenStackPopEmptyReturnsNil(t *testing.T) {
	s := newTokenStack()
	assert.Nil(t, s.pop())
	assert.Nil(t, s.peek())
}

func TestTokenStackHoldsFormulaArgs(t *testing.T) {
	s := newTokenStack()
	s.push(newNumberArg(1))
	s.push(newTextArg("x"))
	top := s.pop().(formulaArg)
	assert.Equal(t, newTextArg("x"), top)
}
