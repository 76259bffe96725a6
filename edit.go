package main

import (
	"fmt"

	"unawareness/internal/app"
	"unawareness/internal/editor"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

func runEditor(cmd *cobra.Command, args []string) error {
	a, err := app.Bootstrap(envFile)
	if err != nil {
		return err
	}
	defer a.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	editor.New(screen, editor.NewState(a.Doc, a.Logger), a.Source, a.Logger).Run()
	return nil
}
