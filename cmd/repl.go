/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/suderio/d20go/internal/d20"
	"github.com/suderio/d20go/internal/history"

	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive roll REPL",
	Long: `Starts a read-eval-print loop for rolling dice expressions one after
another, with a scrolling log of past rolls and preset-name autocomplete.
Usage:
	> 1d20+5
	> longsword`,
	Run: func(cmd *cobra.Command, args []string) {
		logPath, _ := cmd.Flags().GetString("log")

		var store *history.Store
		if logPath != "" {
			s, err := history.NewStore(logPath)
			if err != nil {
				fmt.Printf("failed to open history log: %v\n", err)
				os.Exit(1)
			}
			store = s
			defer store.Close()
		}

		roller := d20.NewRoller(d20.ConfigFromViper())

		if err := RunTUI(roller, store, loadedPresets()); err != nil {
			fmt.Printf("fatal REPL error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().String("log", "", "append every roll in this session to a history log file")
}
