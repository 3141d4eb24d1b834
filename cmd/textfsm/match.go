package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/ntctemplates/gotextfsm/clitable"
	"github.com/spf13/cobra"
)

var attrFlag string

var matchCmd = &cobra.Command{
	Use:   "match INPUT",
	Short: "Resolve a template via the index file's attribute match and parse INPUT through it",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&attrFlag, "attr", "", `shell-quoted attribute assignments, e.g. --attr "Vendor=Cisco Command='sh ver'"`)
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	idx := resolveIndexFile(cfg)
	if idx == "" {
		fmt.Fprintln(os.Stderr, "no index file given (--indexfile flag or config.indexfile)")
		os.Exit(2)
	}

	attrs, err := parseAttrs(attrFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	input, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	loader, err := clitable.DefaultLoader()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ct, err := clitable.Open(loader, idx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := ct.ParseCmd(string(input), attrs, ""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	out, err := ct.Table().FormattedTable(0, true, nil, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Print(out)
	return nil
}

// parseAttrs tokenizes a shell-quoted "Key=value Key2='quoted value'" string
// into an attribute map for clitable.GetRowMatch/ParseCmd.
func parseAttrs(s string) (map[string]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	tokens, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("parsing --attr: %w", err)
	}

	attrs := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			return nil, fmt.Errorf("malformed attribute %q, expected Key=value", tok)
		}
		attrs[key] = value
	}
	return attrs, nil
}
