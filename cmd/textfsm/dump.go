package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/ntctemplates/gotextfsm/textfsm"
	"github.com/spf13/cobra"
)

var dumpReprFlag bool

var dumpCmd = &cobra.Command{
	Use:   "dump TEMPLATE",
	Short: "Dump a compiled template's Values/States/Rules",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpReprFlag, "repr", false, "dump the full Go structure instead of the canonical template text")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
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

	if dumpReprFlag {
		repr.Println(tmpl, repr.Indent("  "))
		return nil
	}
	fmt.Println(tmpl.String())
	return nil
}
