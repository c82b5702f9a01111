package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/arnavsurve/wcc/internal/compiler"
	"github.com/arnavsurve/wcc/internal/compiler/ast"
	"github.com/arnavsurve/wcc/internal/compiler/diag"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type options struct {
	noColor bool
	verbose bool
}

func newRootCmd() (*cobra.Command, *options) {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "wcc <input.w> <output.c>",
		Short: "wcc — translate a .w program into C",
		Long: `wcc compiles a program written in the w teaching language into a
single C source file.

A program is one main function holding int/string declarations, log(...)
statements and arithmetic expression statements:

  int main() {
      int x;
      log("x is" + x);
  }
`,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildRun(cmd, args, opts)
		},
	}

	rootCmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored diagnostics")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print the parsed AST and symbol table")

	return rootCmd, opts
}

func buildRun(cmd *cobra.Command, args []string, opts *options) error {
	// Arguments are valid from here on; failures are not usage errors.
	cmd.SilenceUsage = true

	src, out := args[0], args[1]
	w := cmd.OutOrStdout()
	green := statusColor(opts, color.FgGreen)

	fmt.Fprintf(w, "↪ building %q → %q ...\n", src, out)

	res, err := compiler.CompileAndWrite(src, out)
	if err != nil {
		return err
	}

	if opts.verbose {
		printDebug(w, res)
	}

	fmt.Fprintf(w, "%s wrote C to %s\n", green.Sprint("✔︎"), out)
	return nil
}

func printDebug(w io.Writer, res *compiler.Result) {
	fmt.Fprintln(w, "AST:")
	ast.Dump(w, res.Function, "  ")
	fmt.Fprintln(w, "Symbols:")
	fmt.Fprintln(w, res.Scope)
}

func statusColor(opts *options, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if opts.noColor {
		c.DisableColor()
	}
	return c
}

// reportError renders err once on w. Compile errors show the offending source line.
func reportError(w io.Writer, err error, opts *options) {
	withColor := !opts.noColor && !color.NoColor

	var se *compiler.SourceError
	if errors.As(err, &se) {
		diag.Render(w, se.Err, se.Path, se.Source, withColor)
		return
	}
	diag.Render(w, err, "", "", withColor)
}

// Execute runs the CLI with os.Args. It returns the error already reported
// on stderr so main only has to pick the exit status.
func Execute() error {
	rootCmd, opts := newRootCmd()
	return execute(rootCmd, opts)
}

func execute(rootCmd *cobra.Command, opts *options) error {
	if err := rootCmd.Execute(); err != nil {
		reportError(rootCmd.ErrOrStderr(), err, opts)
		return err
	}
	return nil
}
