// unawareness edits the starting equipment and cursed slots of each
// Crypt of the NecroDancer character. It reads necrodancer.xml from the
// game directory named by NECRODANCER_PATH (or a .env file).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "unawareness",
	Short: "NecroDancer character loadout editor",
	Long: `unawareness loads necrodancer.xml from mods/Unawareness (falling back to
the game's data directory) and opens a terminal editor for each character's
starting items and cursed slots.`,
	RunE: runEditor,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Optional .env file read before the environment")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
