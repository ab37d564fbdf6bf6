package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shapestone/shape-path/pkg/docload"
	"github.com/shapestone/shape-path/pkg/jsonpath"
	"github.com/shapestone/shape-path/pkg/patheval"
)

// parseStageError marks a failure that happened while loading the
// document or parsing the query expression, mapped to exit code 1.
type parseStageError struct{ err error }

func (e *parseStageError) Error() string { return e.err.Error() }
func (e *parseStageError) Unwrap() error { return e.err }

func isParseError(err error) bool {
	var pe *parseStageError
	return errors.As(err, &pe)
}

func isEvalError(err error) bool {
	var ee *patheval.EvalError
	return errors.As(err, &ee)
}

var duplicatePolicies = map[string]docload.DuplicateKeyPolicy{
	"error":      docload.DuplicateKeyError,
	"first-wins": docload.DuplicateKeyFirstWins,
	"last-wins":  docload.DuplicateKeyLastWins,
}

// ErrOutputUnsupported is returned by --output bash|zsh: shell-quoting
// emission is out of scope (spec.md §1 non-goals); the flag is
// accepted so a caller's scripts don't break, but the CLI refuses to
// render it.
var ErrOutputUnsupported = errors.New("shapepath: --output bash|zsh is not implemented")

func runQuery(cmd *cobra.Command, args []string) error {
	if noWarranty, _ := cmd.Flags().GetBool("no-warranty"); noWarranty {
		fmt.Fprintln(cmd.OutOrStdout(), noWarrantyNotice)
		return nil
	}

	query := viper.GetString("query")
	if query == "" {
		return &usageError{errors.New("--query is required")}
	}

	output := strings.ToLower(viper.GetString("output"))
	switch output {
	case "json", "yaml":
	case "bash", "zsh":
		return ErrOutputUnsupported
	default:
		return &usageError{fmt.Errorf("unknown --output %q: want json, yaml, bash, or zsh", output)}
	}

	policy, ok := duplicatePolicies[strings.ToLower(viper.GetString("duplicate"))]
	if !ok {
		return &usageError{fmt.Errorf("unknown --duplicate %q: want error, first-wins, or last-wins", viper.GetString("duplicate"))}
	}

	source := "-"
	if len(args) == 1 {
		source = args[0]
	}

	var r io.Reader
	if source == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(source)
		if err != nil {
			return &usageError{fmt.Errorf("opening %s: %w", source, err)}
		}
		defer f.Close()
		r = f
	}

	set, err := docload.ParseReader(r, docload.WithDuplicateKeyPolicy(policy))
	if err != nil {
		return &parseStageError{err}
	}

	path, parseErrs := jsonpath.Parse([]byte(query))
	if len(parseErrs) > 0 {
		msgs := make([]string, len(parseErrs))
		for i, e := range parseErrs {
			msgs[i] = e.Error()
		}
		return &parseStageError{fmt.Errorf("invalid query %q: %s", query, strings.Join(msgs, "; "))}
	}

	result, err := patheval.Evaluate(set, path)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), output, result)
}

const noWarrantyNotice = `shapepath is provided "as is", without warranty of any kind, express
or implied, including but not limited to the warranties of
merchantability, fitness for a particular purpose, and
noninfringement.`
