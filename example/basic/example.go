// Package example is a small runnable demonstration of the textfsm/
// texttable pipeline, in the style of the teacher's example/basic: a
// go:embed'd asset (there, SQL; here, a template) paired with a thin
// wrapper that exercises it end to end.
package example

import (
	"embed"

	"github.com/ntctemplates/gotextfsm/texttable"
	"github.com/ntctemplates/gotextfsm/textfsm"
)

//go:embed templates/*.textfsm
var templateFS embed.FS

const showVersionTemplate = "templates/show_version.textfsm"

// SampleInput is a toy "show version" transcript the template was written
// against.
const SampleInput = "router1 uptime is 3 days, 4 hours\nCisco IOS Software, Version 15.1(4)M,\n"

// Run compiles the embedded show_version template, parses SampleInput
// through it, and returns the result as a texttable.Table ready for
// FormattedTable or String.
func Run() (*texttable.Table, error) {
	src, err := templateFS.ReadFile(showVersionTemplate)
	if err != nil {
		return nil, err
	}

	tmpl, err := textfsm.ParseString(string(src))
	if err != nil {
		return nil, err
	}

	fsm := textfsm.New(tmpl)
	rows, err := fsm.ParseText(SampleInput, true)
	if err != nil {
		return nil, err
	}

	table := texttable.New(tmpl.Header())
	for _, row := range rows {
		if _, err := table.Append(row); err != nil {
			return nil, err
		}
	}
	return table, nil
}
