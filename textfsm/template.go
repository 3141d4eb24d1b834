// Package textfsm compiles the template DSL (§4.1) into a Template and
// drives an FSM runtime (§4.4) that turns command output into ordered rows.
package textfsm

import (
	"regexp"
	"strings"
)

const maxNameLen = 48

var (
	commentLineRe = regexp.MustCompile(`^\s*#`)
	stateNameRe   = regexp.MustCompile(`^\w+$`)
)

var reservedStateNames = map[string]bool{
	"Next": true, "Continue": true, "Error": true,
	"NoRecord": true, "Record": true, "Clear": true, "Clearall": true,
}

// Template is a compiled FSM definition: an ordered Value list and an
// ordered State table of Rules (§3).
type Template struct {
	Values    []*Value
	StateList []string // declaration order, "End" excluded after validation
	States    map[string][]*Rule
	valueMap  map[string]string // name -> Template text, for ${name} substitution
}

// Header returns Value names in declared order. None of the five built-in
// options suppress themselves from the header (§3 reserves that hook for
// future option kinds).
func (t *Template) Header() []string {
	h := make([]string, len(t.Values))
	for i, v := range t.Values {
		h[i] = v.Name
	}
	return h
}

func (t *Template) valueByName(name string) *Value {
	for _, v := range t.Values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// ParseString compiles src into a Template.
func ParseString(src string) (*Template, error) {
	lines := splitLines(src)
	t := &Template{States: map[string][]*Rule{}, valueMap: map[string]string{}}

	idx, err := parseValues(t, lines)
	if err != nil {
		return nil, err
	}

	if err := parseStates(t, lines, idx); err != nil {
		return nil, err
	}

	if err := validateTemplate(t); err != nil {
		return nil, err
	}

	return t, nil
}

func splitLines(src string) []string {
	return strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
}

// parseValues consumes the contiguous block of `Value ...` declarations at
// the top of the template, up to the blank line that ends it. Returns the
// index of the first line after that blank line.
func parseValues(t *Template, lines []string) (int, error) {
	i := 0
	for ; i < len(lines); i++ {
		lineNum := i + 1
		raw := strings.TrimRight(lines[i], " \t")

		if raw == "" {
			if len(t.Values) == 0 {
				return 0, newTemplateError(lineNum, raw, "no Value definitions found")
			}
			return i + 1, nil
		}
		if commentLineRe.MatchString(raw) {
			continue
		}
		if !strings.HasPrefix(raw, "Value ") {
			if len(t.Values) == 0 {
				return 0, newTemplateError(lineNum, raw, "no Value definitions found")
			}
			return 0, newTemplateError(lineNum, raw, "expected blank line after last Value entry")
		}

		v, err := parseValueLine(raw, lineNum)
		if err != nil {
			return 0, err
		}
		if _, dup := t.valueMap[v.Name]; dup {
			return 0, newTemplateError(lineNum, raw, "duplicate declaration for value %q", v.Name)
		}
		t.Values = append(t.Values, v)
		t.valueMap[v.Name] = v.Template
	}

	if len(t.Values) == 0 {
		return 0, newTemplateError(0, "", "no Value definitions found")
	}
	return i, nil
}

// parseStates consumes State/Rule blocks for the remainder of the template.
func parseStates(t *Template, lines []string, start int) error {
	i := start
	for i < len(lines) {
		// Skip blank/comment lines between state blocks.
		for i < len(lines) {
			raw := strings.TrimRight(lines[i], " \t")
			if raw == "" || commentLineRe.MatchString(raw) {
				i++
				continue
			}
			break
		}
		if i >= len(lines) {
			break
		}

		lineNum := i + 1
		stateName := strings.TrimRight(lines[i], " \t")
		if !stateNameRe.MatchString(stateName) || len(stateName) > maxNameLen || reservedStateNames[stateName] {
			return newTemplateError(lineNum, stateName, "invalid state name %q", stateName)
		}
		if _, dup := t.States[stateName]; dup {
			return newTemplateError(lineNum, stateName, "duplicate state name %q", stateName)
		}
		t.States[stateName] = nil
		t.StateList = append(t.StateList, stateName)
		i++

		for i < len(lines) {
			raw := strings.TrimRight(lines[i], "\t ")
			lineNum = i + 1
			if strings.TrimSpace(lines[i]) == "" {
				i++
				break
			}
			if commentLineRe.MatchString(lines[i]) {
				i++
				continue
			}
			if !hasRulePrefix(lines[i]) {
				return newTemplateError(lineNum, lines[i], "missing whitespace or '^' before rule")
			}
			rule, err := parseRule(raw, lineNum, t.valueMap)
			if err != nil {
				return err
			}
			t.States[stateName] = append(t.States[stateName], rule)
			i++
		}
	}
	return nil
}

func hasRulePrefix(line string) bool {
	return strings.HasPrefix(line, " ^") || strings.HasPrefix(line, "  ^") || strings.HasPrefix(line, "\t^")
}

// validateTemplate enforces §4.1's post-parse checks.
func validateTemplate(t *Template) error {
	if _, ok := t.States["Start"]; !ok {
		return newTemplateError(0, "", "missing required state 'Start'")
	}
	if rules, ok := t.States["End"]; ok && len(rules) > 0 {
		return newTemplateError(0, "", "'End' state must be empty")
	}
	if rules, ok := t.States["EOF"]; ok && len(rules) > 0 {
		return newTemplateError(0, "", "'EOF' state must be empty")
	}

	delete(t.States, "End")
	for i, name := range t.StateList {
		if name == "End" {
			t.StateList = append(t.StateList[:i], t.StateList[i+1:]...)
			break
		}
	}

	for state, rules := range t.States {
		for _, r := range rules {
			if r.LineOp == Error {
				continue
			}
			if r.NewState == "" || r.NewState == "End" || r.NewState == "EOF" {
				continue
			}
			if _, ok := t.States[r.NewState]; !ok {
				return newTemplateError(r.LineNum, "", "state %q not found, referenced from state %q", r.NewState, state)
			}
		}
	}
	return nil
}

// String renders the template canonically (§4.1): Value lines in
// declaration order, a blank line, then each state and its rules.
// Comments are never preserved.
func (t *Template) String() string {
	var b strings.Builder
	for _, v := range t.Values {
		if len(v.Options) > 0 {
			b.WriteString("Value " + v.optionNames() + " " + v.Name + " " + v.Pattern + "\n")
		} else {
			b.WriteString("Value " + v.Name + " " + v.Pattern + "\n")
		}
	}
	b.WriteString("\n")
	for _, name := range t.StateList {
		b.WriteString(name + "\n")
		for _, r := range t.States[name] {
			b.WriteString(r.String() + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
