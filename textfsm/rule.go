package textfsm

import (
	"regexp"
	"strings"
)

// LineOp controls how a matched rule affects input consumption (§3, §4.4).
type LineOp int

const (
	// Next consumes the line and (optionally) transitions state. Default.
	Next LineOp = iota
	// Continue keeps evaluating the remaining rules of the current state
	// against the same input line.
	Continue
	// Error aborts the parse with a RuntimeError.
	Error
)

func (op LineOp) String() string {
	switch op {
	case Continue:
		return "Continue"
	case Error:
		return "Error"
	default:
		return "Next"
	}
}

// RecordOp controls the effect a matched rule has on the output row.
type RecordOp int

const (
	// NoRecord does nothing to the row. Default.
	NoRecord RecordOp = iota
	// Record commits the current row and clears non-Filldown values.
	Record
	// Clear drops non-Filldown values without emitting a row.
	Clear
	// Clearall drops every value, Filldown included, without emitting.
	Clearall
)

func (op RecordOp) String() string {
	switch op {
	case Record:
		return "Record"
	case Clear:
		return "Clear"
	case Clearall:
		return "Clearall"
	default:
		return "NoRecord"
	}
}

// Rule is one `^<regex> [-> action]` line inside a State.
type Rule struct {
	Match    string // raw match expression, including its leading '^'
	Regex    string // Match after ${value} substitution
	regex    *regexp.Regexp
	LineOp   LineOp
	RecordOp RecordOp
	NewState string // state name, "End"/"EOF", or a quoted Error message
	LineNum  int
}

// Greedy like the source grammar: when a rule line contains more than one
// " -> ", the match expression is everything up to the LAST one.
var matchActionRe = regexp.MustCompile(`^(.*)(\s->(.*))$`)

var (
	lineOpRe   = `(?P<lnop>Continue|Next|Error)`
	recordOpRe = `(?P<recop>Clear|Clearall|Record|NoRecord)`
	newStateRe = `(?P<newstate>\w+|".*")`

	actionFullRe = regexp.MustCompile(`^\s+` + lineOpRe + `(\.` + recordOpRe + `)?(\s+` + newStateRe + `)?$`)
	actionRecRe  = regexp.MustCompile(`^\s+` + recordOpRe + `(\s+` + newStateRe + `)?$`)
	actionDefRe  = regexp.MustCompile(`^(\s+` + newStateRe + `)?$`)
)

// parseRule parses one rule line (already known to start with '^' after the
// leading indentation has been trimmed). valueMap substitutes ${name}/$name
// with each Value's Template text.
func parseRule(line string, lineNum int, valueMap map[string]string) (*Rule, error) {
	trimmed := strings.TrimRight(line, " \t")
	trimmed = strings.TrimLeft(trimmed, " \t")
	if trimmed == "" {
		return nil, newTemplateError(lineNum, line, "empty rule")
	}

	r := &Rule{LineNum: lineNum}

	var match, action string
	if m := matchActionRe.FindStringSubmatch(trimmed); m != nil {
		match = m[1]
		action = strings.TrimPrefix(m[2], " ->")
	} else {
		match = trimmed
	}
	r.Match = match

	regex, err := substituteValues(match, valueMap)
	if err != nil {
		return nil, newTemplateError(lineNum, line, "%s", err)
	}
	r.Regex = regex

	compiled, err := regexp.Compile("^" + regex)
	if err != nil {
		return nil, newTemplateError(lineNum, line, "invalid regular expression %q: %s", regex, err)
	}
	r.regex = compiled

	if action == "" {
		return r, nil
	}

	var sub []string
	var names []string
	if sub = actionFullRe.FindStringSubmatch(action); sub != nil {
		names = actionFullRe.SubexpNames()
	} else if sub = actionRecRe.FindStringSubmatch(action); sub != nil {
		names = actionRecRe.SubexpNames()
	} else if sub = actionDefRe.FindStringSubmatch(action); sub != nil {
		names = actionDefRe.SubexpNames()
	} else {
		return nil, newTemplateError(lineNum, line, "badly formatted rule action %q", action)
	}

	get := func(name string) string {
		for i, n := range names {
			if n == name && i < len(sub) {
				return sub[i]
			}
		}
		return ""
	}

	if lnop := get("lnop"); lnop != "" {
		switch lnop {
		case "Continue":
			r.LineOp = Continue
		case "Error":
			r.LineOp = Error
		default:
			r.LineOp = Next
		}
	}
	if recop := get("recop"); recop != "" {
		switch recop {
		case "Record":
			r.RecordOp = Record
		case "Clear":
			r.RecordOp = Clear
		case "Clearall":
			r.RecordOp = Clearall
		default:
			r.RecordOp = NoRecord
		}
	}
	r.NewState = get("newstate")

	if r.LineOp == Continue && r.NewState != "" {
		return nil, newTemplateError(lineNum, line, "Continue cannot specify a new state")
	}
	if r.LineOp != Error && r.NewState != "" {
		if !identRe.MatchString(r.NewState) {
			return nil, newTemplateError(lineNum, line, "alphanumeric characters only in state names")
		}
	}
	if r.LineOp != Error && strings.HasPrefix(r.NewState, `"`) {
		return nil, newTemplateError(lineNum, line, "a quoted message is only valid with the Error operator")
	}

	return r, nil
}

// substituteValues replaces ${name} and $name occurrences in match with the
// corresponding entry from valueMap, failing on any name not present.
func substituteValues(match string, valueMap map[string]string) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(match) {
		c := match[i]
		if c != '$' {
			out.WriteByte(c)
			i++
			continue
		}
		// '$'
		j := i + 1
		braced := false
		if j < len(match) && match[j] == '{' {
			braced = true
			j++
		}
		start := j
		for j < len(match) && isIdentByte(match[j]) {
			j++
		}
		name := match[start:j]
		if braced {
			if j >= len(match) || match[j] != '}' {
				return "", patternError("unterminated ${...} substitution")
			}
			j++
		}
		if name == "" {
			out.WriteByte(c)
			i++
			continue
		}
		val, ok := valueMap[name]
		if !ok {
			return "", patternError("unknown value reference $" + name)
		}
		out.WriteString(val)
		i = j
	}
	return out.String(), nil
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// String renders the rule in canonical form (§4.1).
func (r *Rule) String() string {
	var op strings.Builder
	hasLineOp := r.LineOp != Next
	hasRecordOp := r.RecordOp != NoRecord
	if hasLineOp {
		op.WriteString(r.LineOp.String())
	}
	if hasRecordOp {
		if hasLineOp {
			op.WriteString(".")
		}
		op.WriteString(r.RecordOp.String())
	}

	newState := r.NewState
	if op.Len() > 0 && newState != "" {
		newState = " " + newState
	}

	if op.Len() == 0 && newState == "" {
		return "  " + r.Match
	}
	return "  " + r.Match + " -> " + op.String() + newState
}
