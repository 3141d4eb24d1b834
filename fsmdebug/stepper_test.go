package fsmdebug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepperStepsOneLineAtATime(t *testing.T) {
	s, err := NewStepper("Value boo (.*)\n\nStart\n  ^$boo -> Next\n")
	require.NoError(t, err)

	require.NoError(t, s.Step("hello"))
	assert.Equal(t, "Start", s.CurrentState())
	_, values := s.Values()
	assert.Equal(t, "hello", values["boo"])
	assert.Equal(t, 1, s.LinesFed())
}

func TestStepperResetClearsValuesAndCounter(t *testing.T) {
	s, err := NewStepper("Value boo (.*)\n\nStart\n  ^$boo -> Next\n")
	require.NoError(t, err)

	require.NoError(t, s.Step("hello"))
	s.Reset()

	assert.Equal(t, "Start", s.CurrentState())
	assert.Equal(t, 0, s.LinesFed())
	_, values := s.Values()
	assert.Nil(t, values["boo"])
}

func TestStepperRulesReturnsCurrentStateTable(t *testing.T) {
	s, err := NewStepper("Value boo (.*)\n\nStart\n  ^$boo -> Next.Record\n")
	require.NoError(t, err)

	rules := s.Rules()
	require.Len(t, rules, 1)
	assert.Contains(t, rules[0].String(), "boo")
}
