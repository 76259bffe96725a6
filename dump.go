package main

import (
	"fmt"

	"unawareness/internal/app"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print necrodancer.xml with its <characters> section rebuilt",
	Long: `dump loads the document, rebuilds <characters> from the parsed characters
and writes the result to stdout. Nothing on disk is modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Bootstrap(envFile)
		if err != nil {
			return err
		}
		defer a.Close()

		a.Doc.ReplaceCharacters()
		a.Doc.Tree.Indent(2)
		if _, err := a.Doc.WriteTo(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("write document: %w", err)
		}
		return nil
	},
}
