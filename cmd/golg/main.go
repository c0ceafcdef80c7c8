// golg is a CLI tool for working with golg settings files: validating
// them, converting legacy files, and demonstrating trace output.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/oklog/run"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	var (
		ctx    = context.Background()
		stdout = os.Stdout
		stderr = os.Stderr
		args   = os.Args[1:]
	)
	err := exec(ctx, stdout, stderr, args)
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.As(err, &(run.SignalError{})):
		os.Exit(0)
	case err != nil:
		fmt.Fprintf(stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func exec(ctx context.Context, stdout, stderr io.Writer, args []string) (err error) {
	rootConfig := &rootConfig{
		stdout: stdout,
		stderr: stderr,
	}

	rootFlags := ff.NewFlagSet("golg")
	rootConfig.registerFlags(rootFlags)

	rootCommand := &ff.Command{
		Name:      "golg",
		ShortHelp: "validate, convert, and demonstrate golg settings",
		Flags:     rootFlags,
	}

	// Config for `golg check`.
	checkConfig := &checkConfig{rootConfig: rootConfig}
	checkFlags := ff.NewFlagSet("check").SetParent(rootFlags)
	checkCommand := &ff.Command{
		Name:      "check",
		ShortHelp: "validate a settings file",
		LongHelp:  "Load the settings and print the resolved configuration as YAML.",
		Flags:     checkFlags,
		Exec:      checkConfig.Exec,
	}
	rootCommand.Subcommands = append(rootCommand.Subcommands, checkCommand)

	// Config for `golg convert`.
	convertConfig := &convertConfig{rootConfig: rootConfig}
	convertFlags := ff.NewFlagSet("convert").SetParent(rootFlags)
	convertConfig.register(convertFlags)
	convertCommand := &ff.Command{
		Name:      "convert",
		Usage:     "golg convert [FLAGS] SRC [DST]",
		ShortHelp: "convert a legacy settings file to YAML",
		LongHelp:  "Rewrite old-style `KEY = value` settings as the YAML form read by golg.",
		Flags:     convertFlags,
		Exec:      convertConfig.Exec,
	}
	rootCommand.Subcommands = append(rootCommand.Subcommands, convertCommand)

	// Config for `golg demo`.
	demoConfig := &demoConfig{rootConfig: rootConfig}
	demoFlags := ff.NewFlagSet("demo").SetParent(rootFlags)
	demoConfig.register(demoFlags)
	demoCommand := &ff.Command{
		Name:      "demo",
		ShortHelp: "run a sample traced workload",
		LongHelp:  "Run instrumented sample functions until interrupted, writing trace records per the settings.",
		Flags:     demoFlags,
		Exec:      demoConfig.Exec,
	}
	rootCommand.Subcommands = append(rootCommand.Subcommands, demoCommand)

	// Print help when appropriate.
	showHelp := true
	defer func() {
		errHelp := errors.Is(err, ff.ErrHelp) || errors.Is(err, ff.ErrNoExec)
		if showHelp || errHelp {
			fmt.Fprintf(stderr, "\n%s\n", ffhelp.Command(rootCommand))
		}
		if errHelp {
			err = nil
		}
	}()

	// Initial parsing.
	if err := rootCommand.Parse(args, ff.WithEnvVarPrefix("GOLG")); err != nil {
		return err
	}

	// Validation and set-up.
	{
		var infodst, debugdst io.Writer
		switch rootConfig.logLevel {
		case "n", "none":
			infodst, debugdst = io.Discard, io.Discard
		case "i", "info":
			infodst, debugdst = stderr, io.Discard
		case "d", "debug":
			infodst, debugdst = stderr, stderr
		default:
			return fmt.Errorf("invalid log level %q", rootConfig.logLevel)
		}
		rootConfig.info = log.New(infodst, "", 0)
		rootConfig.debug = log.New(debugdst, "[DEBUG] ", log.Lmsgprefix)
	}

	// Run errors shouldn't show help by default.
	showHelp = false

	// Run the selected command.
	return rootCommand.Run(ctx)
}
