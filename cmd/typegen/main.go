// Command typegen generates Go model packages from schema documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/syssam/typegen/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
