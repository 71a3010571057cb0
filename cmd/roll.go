/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/suderio/d20go/internal/d20"
	"github.com/suderio/d20go/internal/history"
	"github.com/suderio/d20go/internal/preset"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rollCmd = &cobra.Command{
	Use:   "roll [expression]",
	Short: "Roll a dice expression",
	Long: `Rolls a dice expression, e.g. "4d6kh3+2" or "2d20kh1", and prints the
rendered breakdown and total. Pass --preset to roll a saved named macro
instead of a literal expression.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		presetName, _ := cmd.Flags().GetString("preset")
		logPath, _ := cmd.Flags().GetString("log")
		advantage, _ := cmd.Flags().GetBool("adv")
		disadvantage, _ := cmd.Flags().GetBool("dis")

		expr, err := resolveExpr(args, presetName)
		if err != nil {
			return err
		}

		opts := []d20.RollOption{}
		switch {
		case advantage && disadvantage:
			return errors.New("cannot roll with both --adv and --dis")
		case advantage:
			opts = append(opts, d20.WithAdvantage(d20.AdvAdv))
		case disadvantage:
			opts = append(opts, d20.WithAdvantage(d20.AdvDis))
		}

		roller := d20.NewRoller(d20.ConfigFromViper())
		result, err := roller.Roll(expr, opts...)
		if err != nil {
			return fmt.Errorf("failed to roll %q: %w", expr, err)
		}

		fmt.Println(result.Result)
		if result.Crit != d20.CritNormal {
			fmt.Printf("(%s!)\n", result.Crit)
		}

		if logPath != "" {
			if err := logRoll(logPath, expr, result); err != nil {
				fmt.Fprintf(os.Stderr, "failed to log roll: %v\n", err)
			}
		}
		return nil
	},
}

func resolveExpr(args []string, presetName string) (string, error) {
	if presetName != "" {
		p, err := loadedPresets().Load(presetName)
		if err != nil {
			return "", fmt.Errorf("failed to load preset %q: %w", presetName, err)
		}
		return p.Expr, nil
	}
	if len(args) == 0 {
		return "", errors.New("must pass an expression or --preset NAME")
	}
	return args[0], nil
}

// loadedPresets builds a preset.Loader over the configured preset
// directories, falling back to ./presets the same way the teacher's data
// loader falls back to a relative directory when no override is set.
func loadedPresets() *preset.Loader {
	dirs := []string{"."}
	if presetDir := viper.GetString("preset_dir"); presetDir != "" {
		dirs = append([]string{presetDir}, dirs...)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".d20go"))
	}
	return preset.NewLoader(dirs)
}

func logRoll(logPath string, expr string, result *d20.RollResult) error {
	store, err := history.NewStore(logPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Append(history.Record{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Expr:      expr,
		Result:    result.Result,
		Total:     result.Total,
		Comment:   result.Comment,
		Crit:      result.Crit.String(),
	})
}

func init() {
	rootCmd.AddCommand(rollCmd)
	rollCmd.Flags().String("preset", "", "roll a saved named macro instead of a literal expression")
	rollCmd.Flags().String("log", "", "append the roll to this history log file")
	rollCmd.Flags().Bool("adv", false, "roll the leftmost 1d20 with advantage")
	rollCmd.Flags().Bool("dis", false, "roll the leftmost 1d20 with disadvantage")
}
