package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCycleHasOrderThree(t *testing.T) {
	for _, s := range []Status{StatusTodo, StatusDoing, StatusDone} {
		assert.Equal(t, s, s.Next().Next().Next(), "forward x3 from %s", s)
		assert.Equal(t, s, s.Prev().Prev().Prev(), "backward x3 from %s", s)
	}
}

func TestStatusNextThenPrevIsIdentity(t *testing.T) {
	for _, s := range []Status{StatusTodo, StatusDoing, StatusDone} {
		assert.Equal(t, s, s.Next().Prev())
		assert.Equal(t, s, s.Prev().Next())
	}
}

func TestStatusAdvance(t *testing.T) {
	assert.Equal(t, StatusDoing, StatusTodo.Advance(Forward))
	assert.Equal(t, StatusDone, StatusTodo.Advance(Backward))
	assert.Equal(t, StatusTodo, StatusDone.Advance(Forward))
	assert.Equal(t, StatusDoing, StatusDone.Advance(Backward))
}
