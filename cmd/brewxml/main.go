// Command brewxml validates, decodes and canonicalizes BeerXML documents.
//
// Usage:
//
//	brewxml validate recipes.xml
//	brewxml decode recipes.xml --format yaml
//	brewxml convert legacy.xml clean.xml --compact
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/unkn0wn-root/brewxml/internal/cli"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCmd(version, os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, cli.ErrInvalid) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
