// Package main implements shapepath, a command-line JSONPath query
// tool over a YAML document.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via -ldflags; "dev" otherwise.
var version = "dev"

// usageError wraps a usage failure found by runQuery's own checks
// (missing --query, unknown --output or --duplicate value, an input
// file that cannot be opened) so Execute can map it to exit code 64
// (sysexits.h EX_USAGE). Errors cobra itself reports for arguments or
// flags are not wrapped and exit with 1.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:          "shapepath --query <expr> [file|-]",
	Short:        "Evaluate a JSONPath expression against a YAML document",
	Long:         `shapepath evaluates a restricted JSONPath expression against a YAML document and prints the resulting nodelist.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runQuery,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringP("query", "q", "", "JSONPath expression to evaluate (required)")
	rootCmd.Flags().StringP("output", "o", "json", "output format: json, yaml, bash, or zsh")
	rootCmd.Flags().String("duplicate", "error", "duplicate mapping key policy: error, first-wins, or last-wins")
	rootCmd.Flags().Bool("no-warranty", false, "print the no-warranty notice and exit")

	_ = viper.BindPFlag("query", rootCmd.Flags().Lookup("query"))
	_ = viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("duplicate", rootCmd.Flags().Lookup("duplicate"))
}

func initConfig() {
	viper.SetConfigName(".shapepath")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SHAPEPATH")
	viper.AutomaticEnv()

	viper.SetDefault("output", "json")
	viper.SetDefault("duplicate", "error")

	_ = viper.ReadInConfig()
}

// Execute runs the root command and returns the process exit code per
// spec.md §7's taxonomy: 0 success, 1 parse error, 2 evaluation error,
// 64 usage error.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var ue *usageError
		if asUsageError(err, &ue) {
			fmt.Fprintln(os.Stderr, ue.err)
			return 64
		}
		switch {
		case isParseError(err):
			return 1
		case isEvalError(err):
			return 2
		default:
			slog.Error("shapepath failed", "error", err)
			return 1
		}
	}
	return 0
}

func asUsageError(err error, target **usageError) bool {
	for err != nil {
		if ue, ok := err.(*usageError); ok {
			*target = ue
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func main() {
	os.Exit(Execute())
}
