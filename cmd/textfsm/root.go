package main

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "textfsm",
		Short:        "textfsm",
		SilenceUsage: true,
		Long:         `CLI harness for the textfsm template compiler, FSM runtime, and CliTable index lookup.`,
	}

	templateDirs []string
	indexFile    string
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringSliceVarP(&templateDirs, "templatedir", "T", nil, "directories searched for template files, in addition to config.templatepaths")
	rootCmd.PersistentFlags().StringVarP(&indexFile, "indexfile", "i", "", "index CSV file, overriding config.indexfile")
	return rootCmd.Execute()
}

func init() {
}
