// Command sqlfrag compiles and runs declarative SQL query documents.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/zoobzio/sqlfrag/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand(afero.NewOsFs())
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
