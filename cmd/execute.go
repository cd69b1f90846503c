package cmd

import (
	"context"
	"jfront/build"
	"jfront/common"
	"jfront/logging"
	"jfront/mods"
	"os"

	"github.com/ComedicChimera/olive"
	"github.com/viant/afs"
)

// Enumeration of exit codes
const (
	exitOK       = 0
	exitFailed   = 1 // the batch has errors or could not be loaded
	exitInternal = 2 // the resolver hit an internal compiler error
)

// Enumeration of diagnostic output formats
const (
	textFormat = "text"
	jsonFormat = "json"
)

const defaultLogLevel = "verbose"

// Execute runs the main `jfront` application
func Execute() {
	os.Exit(run(os.Args))
}

// run parses the command line and executes the selected command.  It returns
// the exit code of the application.
func run(args []string) int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("jfront", "jfront is a semantic checker for Java compilation batches", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})

	checkCmd := cli.AddSubcommand("check", "check a batch and output its diagnostics", true)
	checkCmd.AddPrimaryArg("batch-path", "the path to the batch manifest or its directory", true)
	formatArg := checkCmd.AddSelectorArg("format", "f", "the diagnostic output format", false, []string{textFormat, jsonFormat})
	formatArg.SetDefaultValue(textFormat)

	initCmd := cli.AddSubcommand("init", "initialize a batch manifest", true)
	initCmd.AddPrimaryArg("batch-name", "the name of the new batch", true)
	initCmd.AddFlag("no-classpath", "nc", "indicates whether the manifest should omit the classpath directory")

	cli.AddSubcommand("version", "print the jfront version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return exitFailed
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		// the log level of the manifest applies unless one is given here
		loglevel := ""
		if llVal, ok := result.Arguments["loglevel"]; ok {
			loglevel = llVal.(string)
		}

		return execCheckCommand(subResult, loglevel)
	case "init":
		return execInitCommand(subResult)
	case "version":
		logging.PrintInfoMessage("jfront Version", common.Version)
	}

	return exitOK
}

// execCheckCommand executes the check subcommand and handles all errors
func execCheckCommand(result *olive.ArgParseResult, loglevel string) (code int) {
	batchPath, _ := result.PrimaryArg()

	format := textFormat
	if formatVal, ok := result.Arguments["format"]; ok {
		format = formatVal.(string)
	}

	ctx := context.Background()
	fs := afs.New()

	// attempt to load the batch
	batch, err := mods.LoadBatch(ctx, fs, batchPath)
	if err != nil {
		logging.PrintErrorMessage("Batch Load Error", err)
		return exitFailed
	}

	if loglevel == "" {
		loglevel = batch.LogLevel
	}

	if loglevel == "" {
		loglevel = defaultLogLevel
	}

	// JSON output replaces the console display
	if format == jsonFormat {
		loglevel = "silent"
	}

	logging.Initialize(batch.Root, loglevel)

	defer func() {
		if x := recover(); x != nil {
			if ie, ok := x.(*logging.InternalError); ok {
				if format == jsonFormat {
					logging.PrintErrorMessage("Internal Compiler Error", ie)
				}

				code = exitInternal
				return
			}

			panic(x)
		}
	}()

	loader, err := build.NewBatchLoader(ctx, fs, batch)
	if err != nil {
		logging.PrintErrorMessage("Classpath Error", err)
		return exitFailed
	}

	c := build.NewCompiler(batch, loader)
	ok := c.Analyze(ctx, fs)

	if format == jsonFormat {
		if err := writeDiagnostics(os.Stdout, logging.Diagnostics()); err != nil {
			logging.PrintErrorMessage("Output Error", err)
			return exitFailed
		}
	}

	if !ok || logging.ErrorCount() > 0 {
		return exitFailed
	}

	return exitOK
}

// execInitCommand executes the `init` subcommand.  It handles all errors
// related to this command
func execInitCommand(result *olive.ArgParseResult) int {
	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return exitFailed
	}

	batchName, _ := result.PrimaryArg()
	if err := mods.InitBatch(batchName, workDir, result.HasFlag("no-classpath")); err != nil {
		logging.PrintErrorMessage("Batch Init Error", err)
		return exitFailed
	}

	return exitOK
}
