// Command akkadian-cuneify renders transliterated Akkadian as cuneiform
//
//	akkadian-cuneify a-na {d}utu
//	echo "sza2 ina" | akkadian-cuneify --normalized
//	akkadian-cuneify --all --sep ' | ' < tablet.txt
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"akkadian/internal/core/cuneify"
	"akkadian/internal/core/signtable"
)

type options struct {
	all        bool
	sep        string
	normalized bool
	analyze    bool
	table      string
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "akkadian-cuneify [text...]",
		Short: "Render Akkadian transliteration as cuneiform",
		Long: `Normalizes ASCII or Unicode transliteration, maps sign values onto
cuneiform glyphs and prints the result. Arguments are joined with spaces;
without arguments the text is read from stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, o)
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&o.all, "all", "a", false, "render every line instead of the first")
	f.StringVar(&o.sep, "sep", "\n", "line separator with --all")
	f.BoolVarP(&o.normalized, "normalized", "n", false, "print the normalized transliteration only")
	f.BoolVar(&o.analyze, "analyze", false, "print lines, chunks and sign counts as JSON")
	f.StringVar(&o.table, "table", "", "signs.json to use instead of the embedded table")
	return cmd
}

func converter(o options) (*cuneify.Converter, error) {
	p := cuneify.DefaultPolicy
	if o.all {
		p = cuneify.JoinLines(o.sep)
	}
	if o.table == "" {
		c, err := cuneify.Default()
		if err != nil {
			return nil, err
		}
		return cuneify.New(c.Table(), cuneify.WithPolicy(p)), nil
	}
	b, err := os.ReadFile(o.table)
	if err != nil {
		return nil, err
	}
	tbl, err := signtable.Parse(b)
	if err != nil {
		return nil, err
	}
	return cuneify.New(tbl, cuneify.WithPolicy(p)), nil
}

func input(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func run(cmd *cobra.Command, args []string, o options) error {
	conv, err := converter(o)
	if err != nil {
		return err
	}
	text, err := input(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch {
	case o.analyze:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(conv.Analyze(text, conv.Policy()))
	case o.normalized:
		_, err = fmt.Fprintln(out, conv.Normalize(text))
	default:
		_, err = fmt.Fprintln(out, conv.Convert(text))
	}
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
