/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "d20go",
	Short: "Roll tabletop dice expressions",
	Long: `d20go parses and rolls RPG dice notation: arithmetic, keep/drop,
rerolls, explosions, and forced minimums/maximums over ordinary or set
expressions, the way the avrae/d20 Python library does.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once
// to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.d20go.yaml)")

	rootCmd.PersistentFlags().Int("max-rolls", 1000, "maximum dice a single roll may draw")
	rootCmd.PersistentFlags().Int("max-ast-operations", 10000, "maximum AST nodes a single roll may visit")
	rootCmd.PersistentFlags().Bool("allow-comments", false, "allow a trailing free-text comment after an expression")
	rootCmd.PersistentFlags().Int("cache-size", 256, "how many parsed expressions the roller's LFU cache holds")

	viper.BindPFlag("max_rolls", rootCmd.PersistentFlags().Lookup("max-rolls"))
	viper.BindPFlag("max_ast_operations", rootCmd.PersistentFlags().Lookup("max-ast-operations"))
	viper.BindPFlag("allow_comments", rootCmd.PersistentFlags().Lookup("allow-comments"))
	viper.BindPFlag("cache_size", rootCmd.PersistentFlags().Lookup("cache-size"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".d20go")
	}

	viper.SetEnvPrefix("D20GO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
