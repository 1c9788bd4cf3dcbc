package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlfrag"
	"github.com/zoobzio/sqlfrag/driver"
)

// dialectNames lists the supported dialects in display order.
var dialectNames = []string{driver.DialectPostgres, driver.DialectSQLite, driver.DialectMySQL}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List supported dialects and their capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDialects(rootOpts, cmd.OutOrStdout())
		},
	}
}

func runDialects(opts *RootOptions, w io.Writer) error {
	if opts.Format == "json" {
		out := make(map[string][]string, len(dialectNames))
		for _, name := range dialectNames {
			r, err := driver.RendererFor(name)
			if err != nil {
				return err
			}
			flags := []string{}
			for _, c := range r.Capabilities().List() {
				flags = append(flags, c.String())
			}
			out[name] = flags
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	nameColor := color.New(color.FgCyan, color.Bold)
	onColor := color.New(color.FgGreen)
	offColor := color.New(color.Faint)

	for _, name := range dialectNames {
		r, err := driver.RendererFor(name)
		if err != nil {
			return err
		}
		caps := r.Capabilities()
		nameColor.Fprintln(w, name)
		for _, c := range sqlfrag.AllCapabilities() {
			if caps.Has(c) {
				onColor.Fprintf(w, "  + %s\n", c)
			} else {
				offColor.Fprintf(w, "  - %s\n", c)
			}
		}
	}
	if opts.Config != nil {
		fmt.Fprintf(w, "\ndefault: %s\n", opts.Config.Dialect)
	}
	return nil
}
