package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for addonscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addonscan",
		Short: "Classify FreeCAD addon directories by workbench layout",
		Long: `addonscan scans a FreeCAD-addons checkout and classifies each addon
directory by its initialization-file layout convention:

  old      Init.py + InitGui.py directly at the addon root
  new      __init__.py + init_gui.py in a subpackage under a freecad/ directory
  mixed    both layouts present
  unknown  neither layout present

Each scan writes a CSV report and prints a console summary. Runs are
recorded locally so 'addonscan history' can show how a checkout migrates
over time.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
