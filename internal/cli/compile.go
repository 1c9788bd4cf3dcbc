package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlfrag"
	"github.com/zoobzio/sqlfrag/driver"
	"github.com/zoobzio/sqlfrag/internal/querydoc"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Dialect string
}

// compiled is the JSON shape of a compiled query.
type compiled struct {
	Dialect string            `json:"dialect"`
	SQL     string            `json:"sql"`
	Params  []any             `json:"params"`
	Aliases map[string]string `json:"aliases,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [query-file]",
		Short: "Compile a query document to SQL",
		Long: `Compile a YAML or JSON query document to SQL for one dialect.

The document is read from the given file, or from stdin when no file
is given. The SQL is printed followed by its bound parameters.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "", "target dialect (postgres|sqlite|mysql)")

	return cmd
}

func runCompile(opts *CompileOptions, args []string, cmd *cobra.Command) error {
	dialect := opts.Dialect
	if dialect == "" {
		dialect = opts.Config.Dialect
	}
	r, err := driver.RendererFor(dialect)
	if err != nil {
		return err
	}

	q, err := loadQuery(opts.RootOptions, args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	result, err := r.Render(q)
	if err != nil {
		return err
	}
	opts.Logger.Debug("compiled query",
		"dialect", dialect,
		"statement", string(q.Statement),
		"params", len(result.Params),
	)

	return writeCompiled(cmd.OutOrStdout(), opts.Format, dialect, result)
}

// loadQuery reads the query document named by args, or stdin.
func loadQuery(opts *RootOptions, args []string, stdin io.Reader) (*sqlfrag.Query, error) {
	if len(args) == 1 && args[0] != "-" {
		return querydoc.Load(opts.Fs, args[0])
	}
	schema, err := querydoc.Decode(stdin)
	if err != nil {
		return nil, err
	}
	return querydoc.BuildFromSchema(schema)
}

func writeCompiled(w io.Writer, format, dialect string, result *sqlfrag.QueryResult) error {
	if format == "json" {
		out := compiled{Dialect: dialect, SQL: result.SQL, Params: result.Args(), Aliases: result.Aliases}
		if out.Params == nil {
			out.Params = []any{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if _, err := fmt.Fprintln(w, result.SQL); err != nil {
		return err
	}
	if len(result.Params) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "-- params")
	for i, p := range result.Params {
		fmt.Fprintf(w, "-- %d: %s\n", i+1, p)
	}
	return nil
}
