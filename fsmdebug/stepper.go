// Package fsmdebug is a terminal step-debugger over the textfsm runtime,
// the non-HTML half of debugger.py: load a template, feed it one input
// line at a time, and inspect the current state and Value contents between
// lines. It never changes FSM/Template semantics -- every Stepper call
// delegates straight to the real runtime.
package fsmdebug

import (
	"github.com/ntctemplates/gotextfsm/textfsm"
)

// Stepper wraps an FSM and its Template so a REPL can drive parsing one
// line at a time and inspect state between steps.
type Stepper struct {
	template *textfsm.Template
	fsm      *textfsm.FSM
	lines    int
}

// NewStepper compiles src and returns a Stepper positioned at Start.
func NewStepper(src string) (*Stepper, error) {
	tmpl, err := textfsm.ParseString(src)
	if err != nil {
		return nil, err
	}
	return &Stepper{template: tmpl, fsm: textfsm.New(tmpl)}, nil
}

// Step feeds one line through the FSM's current state.
func (s *Stepper) Step(line string) error {
	s.lines++
	return s.fsm.CheckLine(line)
}

// Reset returns the FSM to Start and clears every Value.
func (s *Stepper) Reset() {
	s.fsm.Reset()
	s.lines = 0
}

// CurrentState returns the name of the state the FSM currently resides in.
func (s *Stepper) CurrentState() string {
	return s.fsm.CurrentState()
}

// LinesFed returns how many lines have been stepped since the last Reset.
func (s *Stepper) LinesFed() int {
	return s.lines
}

// Values returns each declared Value's current in-progress content, keyed
// by name, in declaration order via the returned names slice.
func (s *Stepper) Values() (names []string, values map[string]any) {
	values = make(map[string]any, len(s.template.Values))
	for _, v := range s.template.Values {
		names = append(names, v.Name)
		values[v.Name] = v.CurrentValue()
	}
	return names, values
}

// Rules returns the current state's rule table, for a :rules REPL command.
func (s *Stepper) Rules() []*textfsm.Rule {
	return s.template.States[s.CurrentState()]
}

// Result returns the rows accumulated so far without finalizing EOF
// handling.
func (s *Stepper) Result() [][]any {
	rows, _ := s.fsm.ParseText("", false)
	return rows
}

// Template returns the compiled template this Stepper is running.
func (s *Stepper) Template() *textfsm.Template {
	return s.template
}
