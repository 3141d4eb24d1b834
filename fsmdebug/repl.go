package fsmdebug

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// REPL drives a Stepper from a readline loop, modeled on debugger.py's
// cmdloop command set: :load, :line, :state, :values, :rules, :reset, :quit.
type REPL struct {
	stepper *Stepper
	out     io.Writer
}

// NewREPL starts with no template loaded; the first command must be :load.
func NewREPL(out io.Writer) *REPL {
	if out == nil {
		out = os.Stdout
	}
	return &REPL{out: out}
}

// Run drives the REPL until :quit, EOF (Ctrl+D), or an unrecoverable
// readline error.
func (r *REPL) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "textfsm> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return fmt.Errorf("fsmdebug: starting readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		if done := r.dispatch(strings.TrimSpace(line)); done {
			return nil
		}
	}
}

// dispatch runs one command line and reports whether the REPL should quit.
func (r *REPL) dispatch(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case ":quit":
		return true
	case ":load":
		r.cmdLoad(arg)
	case ":line":
		r.cmdLine(arg)
	case ":state":
		r.cmdState()
	case ":values":
		r.cmdValues()
	case ":rules":
		r.cmdRules()
	case ":reset":
		r.cmdReset()
	default:
		fmt.Fprintf(r.out, "unknown command %q (try :load :line :state :values :rules :reset :quit)\n", cmd)
	}
	return false
}

func (r *REPL) cmdLoad(path string) {
	if path == "" {
		fmt.Fprintln(r.out, ":load requires a template path")
		return
	}
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(r.out, "error reading %s: %s\n", path, err)
		return
	}
	stepper, err := NewStepper(string(src))
	if err != nil {
		fmt.Fprintf(r.out, "error compiling %s: %s\n", path, err)
		return
	}
	r.stepper = stepper
	fmt.Fprintf(r.out, "loaded %s, header: %v\n", path, stepper.Template().Header())
}

func (r *REPL) cmdLine(text string) {
	if !r.requireLoaded() {
		return
	}
	if err := r.stepper.Step(text); err != nil {
		fmt.Fprintf(r.out, "error: %s\n", err)
		return
	}
	fmt.Fprintf(r.out, "-> state %s\n", r.stepper.CurrentState())
}

func (r *REPL) cmdState() {
	if !r.requireLoaded() {
		return
	}
	fmt.Fprintln(r.out, r.stepper.CurrentState())
}

func (r *REPL) cmdValues() {
	if !r.requireLoaded() {
		return
	}
	names, values := r.stepper.Values()
	for _, name := range names {
		fmt.Fprintf(r.out, "%s = %v\n", name, values[name])
	}
}

func (r *REPL) cmdRules() {
	if !r.requireLoaded() {
		return
	}
	for _, rule := range r.stepper.Rules() {
		fmt.Fprintln(r.out, rule.String())
	}
}

func (r *REPL) cmdReset() {
	if !r.requireLoaded() {
		return
	}
	r.stepper.Reset()
	fmt.Fprintln(r.out, "reset to Start")
}

func (r *REPL) requireLoaded() bool {
	if r.stepper == nil {
		fmt.Fprintln(r.out, "no template loaded; use :load <path>")
		return false
	}
	return true
}
