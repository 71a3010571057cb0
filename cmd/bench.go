/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"

	"github.com/suderio/d20go/internal/d20"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench [expression]",
	Short: "Stress-roll an expression many times to probe the roll/AST ceilings",
	Long: `Rolls the given expression repeatedly (default 1000 times) against a
single Roller, reporting how many rolls succeeded and their average total.
Every error (including a MaxRolls or MaxASTOperations breach) counts as one
failure; error kinds are not reported separately. Useful for sizing --max-rolls/--max-ast-operations for an
expression with heavy explosions or rerolls.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expr := args[0]
		count, _ := cmd.Flags().GetInt("count")

		bar := progressbar.Default(int64(count), fmt.Sprintf("Rolling %q", expr))

		roller := d20.NewRoller(d20.ConfigFromViper())
		var failures int
		var total float64
		for i := 0; i < count; i++ {
			result, err := roller.Roll(expr)
			if err != nil {
				failures++
			} else {
				total += result.Total
			}
			bar.Add(1)
		}

		fmt.Printf("\n%d/%d rolls succeeded\n", count-failures, count)
		if count > failures {
			fmt.Printf("average total: %.2f\n", total/float64(count-failures))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().Int("count", 1000, "how many times to roll the expression")
}
