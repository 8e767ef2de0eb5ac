// Command akkadian-signpacker assembles YAML sign fragments into signs.json
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type options struct {
	root    string
	out     string
	pretty  bool
	strict  bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "akkadian-signpacker",
		Short: "Assemble sign fragments into signs.json",
		Long: `Reads core.yaml (schema version, meta, normalization rules) and every
fragment *.yaml under the root, merges the signs, validates code points and
writes a signs.json the sign table loads.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.root, "root", "", "sign source directory (eg ./signs/1 or ./signs); empty auto-discovers")
	f.StringVar(&o.out, "out", "./internal/core/signtable/signs.json", "output path or '-' for stdout")
	f.BoolVar(&o.pretty, "pretty", true, "pretty-print JSON")
	f.BoolVar(&o.strict, "strict", false, "fail when two signs share a reading")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "verbose logging")
	return cmd
}

func run(cmd *cobra.Command, o options) error {
	stderr := cmd.ErrOrStderr()

	root, attempts, err := resolveRoot(strings.TrimSpace(o.root))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to locate sign sources (looked in):\n")
		for _, a := range attempts {
			_, _ = fmt.Fprintf(stderr, "  - %s\n", a)
		}
		_, _ = fmt.Fprintf(stderr, "hint: pass --root or set AKKADIAN_SIGNS_ROOT\n")
		return err
	}
	if o.verbose {
		_, _ = fmt.Fprintf(stderr, "using sign root: %s\n", root)
	}

	obj, err := assemble(root)
	if err != nil {
		return err
	}
	enc, tbl, err := encode(obj, o.pretty)
	if err != nil {
		return err
	}
	for _, d := range tbl.Duplicates {
		_, _ = fmt.Fprintf(stderr, "warning: reading %q of %s shadowed by %s\n", d.Key, d.Ignored, d.Kept)
	}
	if o.strict && len(tbl.Duplicates) > 0 {
		return fmt.Errorf("%d shared readings", len(tbl.Duplicates))
	}

	if o.out == "-" {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n", enc)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(o.out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(o.out, append(enc, '\n'), 0o644); err != nil {
		return err
	}
	if o.verbose {
		_, _ = fmt.Fprintf(stderr, "wrote %s (%d signs, %d keys, %d bytes)\n", o.out, tbl.Signs, tbl.Len(), len(enc))
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
