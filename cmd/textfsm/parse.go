package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ntctemplates/gotextfsm/texttable"
	"github.com/ntctemplates/gotextfsm/textfsm"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse TEMPLATE [INPUT [EXPECTED]]",
	Short: "Re-print a canonical template, parse INPUT, and optionally diff against EXPECTED",
	Args:  cobra.RangeArgs(1, 3),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	templatePath, err := findTemplate(resolveTemplateDirs(cfg), args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	src, err := os.ReadFile(templatePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	tmpl, err := textfsm.ParseString(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Println(tmpl.String())

	if len(args) < 2 {
		return nil
	}

	input, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fsm := textfsm.New(tmpl)
	rows, err := fsm.ParseText(string(input), true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	header := tmpl.Header()
	table := texttable.New(header)
	for _, row := range rows {
		if _, err := table.Append(row); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	actual := table.String()
	fmt.Print(actual)

	if len(args) < 3 {
		return nil
	}

	expected, err := os.ReadFile(args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if actual != string(expected) {
		fmt.Fprintln(os.Stderr, "output does not match expected")
		os.Exit(1)
	}
	return nil
}

// findTemplate scans dirs in order for a file named name and returns the
// path of the first one found.
func findTemplate(dirs []string, name string) (string, error) {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() && e.Name() == name {
				return filepath.Join(dir, name), nil
			}
		}
	}
	return "", fmt.Errorf("template %q not found in %v", name, dirs)
}
