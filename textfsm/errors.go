package textfsm

import (
	"fmt"

	"github.com/pkg/errors"
)

// TemplateError is returned for any syntactic or semantic fault found while
// compiling a template: bad Value/State syntax, unknown or duplicate
// options, an invalid regular expression, a missing Start state, a
// non-empty End/EOF state, or a rule that targets an undeclared state.
type TemplateError struct {
	Line int    // 1-based source line, 0 when not line-specific
	Text string // the offending source line, if any
	Msg  string
}

func (e *TemplateError) Error() string {
	if e.Line > 0 {
		if e.Text != "" {
			return fmt.Sprintf("template error at line %d: %s (line: %q)", e.Line, e.Msg, e.Text)
		}
		return fmt.Sprintf("template error at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("template error: %s", e.Msg)
}

func newTemplateError(line int, text, format string, args ...any) error {
	return errors.WithStack(&TemplateError{Line: line, Text: text, Msg: fmt.Sprintf(format, args...)})
}

// RuntimeError is raised when an Error-operator rule fires during a parse.
// The FSM does not recover: the current ParseText/ParseTextToDicts call
// aborts and the caller receives this error.
type RuntimeError struct {
	RuleLine int    // source line of the rule that fired
	Input    string // the input line being processed
	Msg      string // the rule's quoted message, if any
}

func (e *RuntimeError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("state error: %s (rule line: %d, input line: %q)", e.Msg, e.RuleLine, e.Input)
	}
	return fmt.Sprintf("state error raised (rule line: %d, input line: %q)", e.RuleLine, e.Input)
}

func newRuntimeError(ruleLine int, input, msg string) error {
	return errors.WithStack(&RuntimeError{RuleLine: ruleLine, Input: input, Msg: msg})
}
