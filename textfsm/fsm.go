package textfsm

import (
	"io"

	"github.com/sirupsen/logrus"
)

// FSM is the mutable runtime for a compiled Template: current state and
// the accumulated result rows (§4.4). The per-Value parse state (current
// values, Filldown memory, List accumulators) lives on the Template's
// Values, not on the FSM, so FSMs built over the same Template share it:
// New or Reset on one clears it for every other FSM on that Template.
// Neither an FSM nor a Template in use by one is safe for concurrent use.
type FSM struct {
	template         *Template
	currentStateName string
	result           [][]any
	logger           logrus.FieldLogger
}

// New builds an FSM over template, already Reset into the Start state.
func New(template *Template) *FSM {
	f := &FSM{template: template, logger: logrus.StandardLogger()}
	f.Reset()
	return f
}

// SetLogger overrides the FSM's diagnostic logger (rule-match and
// record-emit tracing only, never caller-facing errors -- those are
// returned, not logged). Passing nil silences tracing.
func (f *FSM) SetLogger(logger logrus.FieldLogger) {
	if logger == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		logger = silent
	}
	f.logger = logger
}

// Template returns the compiled template this FSM is running.
func (f *FSM) Template() *Template {
	return f.template
}

// CurrentState returns the name of the state the FSM currently resides in.
func (f *FSM) CurrentState() string {
	return f.currentStateName
}

// Reset returns the FSM to the Start state and clears every Value and the
// accumulated result (§4.4, §8).
func (f *FSM) Reset() {
	f.currentStateName = "Start"
	f.result = nil
	for _, v := range f.template.Values {
		v.clearAllVar()
	}
}

// ParseText feeds text through the FSM line by line and returns the
// accumulated rows. eof=true (the default per §4.4) triggers an implicit
// Record unless the FSM stopped in End or an EOF state was declared.
func (f *FSM) ParseText(text string, eof bool) ([][]any, error) {
	var lines []string
	if text != "" {
		lines = splitLines(text)
	}

	for _, line := range lines {
		if err := f.checkLine(line); err != nil {
			return nil, err
		}
		if f.currentStateName == "End" || f.currentStateName == "EOF" {
			break
		}
	}

	if eof {
		_, hasEOF := f.template.States["EOF"]
		if f.currentStateName != "End" && !hasEOF {
			f.appendRecord()
		}
	}

	return f.result, nil
}

// ParseTextToDicts wraps ParseText, zipping each row with the template's
// header.
func (f *FSM) ParseTextToDicts(text string, eof bool) ([]map[string]any, error) {
	rows, err := f.ParseText(text, eof)
	if err != nil {
		return nil, err
	}
	header := f.template.Header()
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		m := make(map[string]any, len(header))
		for j, name := range header {
			if j < len(row) {
				m[name] = row[j]
			}
		}
		out[i] = m
	}
	return out, nil
}

// CheckLine runs one input line through the current state's rules without
// any end-of-text handling, exposed for step-debuggers and other callers
// that want to drive the FSM one line at a time.
func (f *FSM) CheckLine(line string) error {
	return f.checkLine(line)
}

// checkLine runs one input line through the current state's rules.
func (f *FSM) checkLine(line string) error {
	rules := f.template.States[f.currentStateName]
	for _, rule := range rules {
		m := rule.regex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		names := rule.regex.SubexpNames()
		for i, name := range names {
			if i == 0 || name == "" {
				continue
			}
			if vi, v := f.valueIndex(name); v != nil {
				v.assignVar(m[i], f.result, vi)
			}
		}

		f.logger.WithFields(logrus.Fields{"state": f.currentStateName, "rule_line": rule.LineNum}).Trace("rule matched")

		advance, err := f.runOperations(rule, line)
		if err != nil {
			return err
		}
		if advance {
			if rule.NewState != "" {
				f.currentStateName = rule.NewState
			}
			break
		}
		// Continue: fall through to the next rule in this same state,
		// against the same line.
	}
	return nil
}

func (f *FSM) valueIndex(name string) (int, *Value) {
	for i, v := range f.template.Values {
		if v.Name == name {
			return i, v
		}
	}
	return -1, nil
}

// runOperations applies a matched rule's record-op then line-op. It
// returns true when the FSM should move on to the next input line (i.e.
// the line-op was not Continue).
func (f *FSM) runOperations(rule *Rule, line string) (bool, error) {
	switch rule.RecordOp {
	case Record:
		f.appendRecord()
	case Clear:
		f.clearRecord()
	case Clearall:
		f.clearAllRecord()
	}

	switch rule.LineOp {
	case Error:
		msg := trimQuotes(rule.NewState)
		return false, newRuntimeError(rule.LineNum, line, msg)
	case Continue:
		return false, nil
	default:
		return true, nil
	}
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// appendRecord implements §4.4's Record operator.
func (f *FSM) appendRecord() {
	if len(f.template.Values) == 0 {
		return
	}

	row := make([]any, 0, len(f.template.Values))
	for _, v := range f.template.Values {
		switch v.onSaveRecord() {
		case saveSkipRecord:
			f.clearRecord()
			return
		case saveSkipValue:
			continue
		}
		row = append(row, v.current)
	}

	if rowIsEmpty(row) {
		return
	}

	for i, cell := range row {
		if cell == nil {
			row[i] = ""
		}
	}

	f.result = append(f.result, row)
	f.logger.WithField("row", len(f.result)).Trace("record emitted")
	f.clearRecord()
}

func rowIsEmpty(row []any) bool {
	for _, cell := range row {
		if !isNoneOrEmptyList(cell) {
			return false
		}
	}
	return true
}

// clearRecord implements the Clear operator: drop non-Filldown values.
func (f *FSM) clearRecord() {
	for _, v := range f.template.Values {
		v.clearVar()
	}
}

// clearAllRecord implements the Clearall operator: drop every value.
func (f *FSM) clearAllRecord() {
	for _, v := range f.template.Values {
		v.clearAllVar()
	}
}
