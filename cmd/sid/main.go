package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"sid/internal"
	"sid/internal/di"
	"sid/internal/structures"
)

type command struct {
	name string
	help string
	run  func(ctx context.Context, app *internal.App) error
}

// registry maps a command identifier to its handler; dispatch is explicit
// rather than by host callback name.
var registry = map[string]command{
	"serve": {
		name: "serve",
		help: "run the HTTP daemon (default)",
		run: func(_ context.Context, app *internal.App) error {
			return app.Serve()
		},
	},
	"import": {
		name: "import",
		help: "run one import and print the result",
		run: func(ctx context.Context, app *internal.App) error {
			report, err := app.RunImport(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Import done: inserted=%d updated=%d skipped=%d fetched=%d in %s\n",
				report.Result.Inserted, report.Result.Updated, report.Result.Skipped,
				report.Result.TotalFetched, report.Duration)
			return nil
		},
	},
	"clear-data": {
		name: "clear-data",
		help: "truncate the data table back to header-only state",
		run: func(ctx context.Context, app *internal.App) error {
			if err := app.ClearData(ctx); err != nil {
				return err
			}
			fmt.Println("Data table cleared")
			return nil
		},
	},
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <command>\n\nCommands:\n", os.Args[0])
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", name, registry[name].help)
	}
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	name := flag.Arg(0)
	if name == "" {
		name = "serve"
	}
	cmd, ok := registry[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		usage()
		os.Exit(2)
	}

	app, err := di.InitApp(&structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %s\n", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := cmd.run(context.Background(), app); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
