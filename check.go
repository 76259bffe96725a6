package main

import (
	"fmt"
	"io"
	"strings"

	"unawareness/internal/app"
	"unawareness/internal/necro"
	"unawareness/internal/necroxml"

	"github.com/spf13/cobra"
)

var strictRefs bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load necrodancer.xml and report what the editor would see",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Bootstrap(envFile)
		if err != nil {
			return err
		}
		defer a.Close()
		return report(cmd.OutOrStdout(), a.Source, a.Doc, strictRefs)
	},
}

func init() {
	checkCmd.Flags().BoolVar(&strictRefs, "strict", false, "Fail when a character starts with an undefined item")
}

// report prints a per-character summary and any dangling item references.
func report(w io.Writer, source string, doc *necroxml.Document, strict bool) error {
	fmt.Fprintf(w, "%s: %d items, %d characters\n", source, len(doc.Items), len(doc.Characters))
	for _, c := range doc.Characters {
		fmt.Fprintf(w, "  %-10s id=%-3s items=%d", c.Name, c.ID, len(c.Items))
		if c.Curses.Len() > 0 {
			fmt.Fprintf(w, " cursed=%s", joinSlots(c.Curses.Slots()))
		}
		fmt.Fprintln(w)
	}

	refs := doc.DanglingRefs()
	for _, r := range refs {
		fmt.Fprintf(w, "warning: character %s starts with undefined item %q\n", r.CharacterID, r.ItemID)
	}
	if strict && len(refs) > 0 {
		return fmt.Errorf("%d undefined item reference(s)", len(refs))
	}
	return nil
}

func joinSlots(slots []necro.Slot) string {
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.String()
	}
	return strings.Join(names, ",")
}
