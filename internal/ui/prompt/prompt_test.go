package prompt

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestNewModel_StripsInputMarker(t *testing.T) {
	m := newModel("What is 2+2?:\n  1. 3\n  2. 4\n  3. 5\n> ")
	assert.Equal(t, "What is 2+2?:\n  1. 3\n  2. 4\n  3. 5", m.question)
}

func TestDigitsFor(t *testing.T) {
	assert.Equal(t, 1, digitsFor("q:\n  1. a\n  2. b\n"))

	long := "q:\n"
	for i := 0; i < 12; i++ {
		long += "  x\n"
	}
	assert.Equal(t, 2, digitsFor(long))
}

func TestModel_Update_Enter(t *testing.T) {
	m := newModel("q:\n  1. a\n  2. b\n> ")

	updated, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	got := updated.(model)

	assert.True(t, got.done)
	assert.False(t, got.aborted)
	assert.NotNil(t, cmd)
}

func TestModel_Update_Escape(t *testing.T) {
	m := newModel("q:\n  1. a\n> ")

	updated, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	got := updated.(model)

	assert.True(t, got.aborted)
	assert.NotNil(t, cmd)
}
