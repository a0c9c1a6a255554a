// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --config, --verbose, --log-file, --version

package main

import (
	"flag"
	"fmt"
	"io"
)

type cliArgs struct {
	configPath string
	verbose    bool
	logFile    string
	version    bool
}

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("kiloterm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&args.configPath, "config", "", "Read settings from this file instead of ~/.kiloterm and ./.kiloterm")
	fs.BoolVar(&args.verbose, "verbose", false, "Log at debug level (needs a log file)")
	fs.StringVar(&args.logFile, "log-file", "", "Write logs to this file")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	if fs.NArg() > 0 {
		return cliArgs{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return args, nil
}
