package main

import (
	"os"

	"github.com/ayoisaiah/focusflow/app"
	"github.com/ayoisaiah/focusflow/internal/osutil"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	if err := run(os.Args); err != nil {
		app.ReportError(err)
		os.Exit(int(osutil.ExitError))
	}
}
