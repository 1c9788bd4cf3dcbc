package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlfrag"
	"github.com/zoobzio/sqlfrag/driver"
	"github.com/zoobzio/sqlfrag/internal/config"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	URL string
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec [query-file]",
		Short: "Run a query document against a database",
		Long: `Run a YAML or JSON query document against the database named by
--url (or SQLFRAG_DATABASE_URL / DATABASE_URL). The dialect follows the
URL scheme. SELECT results, and rows returned by RETURNING, are printed
as JSON. Other statements print the number of affected rows.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.URL, "url", "", "database URL")

	return cmd
}

func runExec(opts *ExecOptions, args []string, cmd *cobra.Command) error {
	url := opts.URL
	if url == "" {
		url = opts.Config.DatabaseURL
	}
	if url == "" {
		return fmt.Errorf("no database URL: use --url or set %s_DATABASE_URL", config.EnvPrefix)
	}

	q, err := loadQuery(opts.RootOptions, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := driver.Open(ctx, url, driver.WithLogger(opts.Logger))
	if err != nil {
		return err
	}
	defer db.Close()

	return execute(ctx, cmd.OutOrStdout(), db, q)
}

// execute runs q and prints its rows. Statements that return nothing, or
// whose RETURNING the dialect drops, print the affected row count.
func execute(ctx context.Context, w io.Writer, db *driver.DB, q *sqlfrag.Query) error {
	returns := len(q.Returns) > 0 && db.Renderer().Capabilities().Has(sqlfrag.Returning)

	var (
		records []driver.Record
		err     error
	)
	switch {
	case q.Statement == sqlfrag.StmtSelect:
		records, err = db.Select(ctx, q)
		if err != nil {
			return err
		}
		return writeRecords(w, records, q.Aliases)
	case q.Statement == sqlfrag.StmtInsert && returns:
		var rec driver.Record
		rec, err = db.Insert(ctx, q)
		records = []driver.Record{rec}
	case q.Statement == sqlfrag.StmtUpdate && returns:
		records, err = db.Update(ctx, q)
	case q.Statement == sqlfrag.StmtDelete && returns:
		records, err = db.Delete(ctx, q)
	default:
		var n int64
		n, err = db.Exec(ctx, q)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%d rows affected\n", n)
		return err
	}
	if err != nil {
		return err
	}
	return writeRecords(w, records, nil)
}

func writeRecords(w io.Writer, records []driver.Record, aliases map[string]string) error {
	out := make([]driver.Record, len(records))
	for i, rec := range records {
		out[i] = rec.Unrender(aliases)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
