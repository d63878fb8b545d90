package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/uniformal/unicheck/internal/cli"
	"github.com/uniformal/unicheck/pkg/version"
)

func main() {
	cmd := cli.NewRootCmd()

	err := fang.Execute(context.Background(), cmd,
		fang.WithVersion(version.String()),
		fang.WithErrorHandler(cli.ErrorHandler),
	)
	if err != nil {
		os.Exit(1)
	}
}
