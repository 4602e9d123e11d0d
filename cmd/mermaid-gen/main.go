package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/povarna/mermaid-gen/internal/setup/logger"
	"github.com/povarna/mermaid-gen/pkg/mermaid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	programName = "mermaid-gen"
	description = "Generate a Mermaid diagram definition using an open-source LLM."

	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type flowchartGenerator interface {
	GenerateFlowchart(ctx context.Context, prompt string) (string, error)
}

type generatorFactory func(ctx context.Context, logger *zerolog.Logger) (flowchartGenerator, error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, newFlowchartGenerator)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer, newGenerator generatorFactory) int {
	// .env must be in the environment before LOG_LEVEL seeds the flag default.
	envErr := godotenv.Load()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	logLevel := fs.String("log-level", os.Getenv("LOG_LEVEL"), "Log level for stderr output (debug, info, warn, error)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [-h] [-log-level LEVEL] prompt\n\n%s\n\n", programName, description)
		fmt.Fprintln(stderr, "positional arguments:")
		fmt.Fprintln(stderr, "  prompt\tThe prompt to generate the Mermaid diagram.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "options:")
		fs.PrintDefaults()
	}

	positional, err := parseArgs(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	switch len(positional) {
	case 0:
		usageError(stderr, "the following arguments are required: prompt")
		return exitUsage
	case 1:
	default:
		usageError(stderr, fmt.Sprintf("unrecognized arguments: %v", positional[1:]))
		return exitUsage
	}
	prompt := positional[0]

	log.Logger = logger.NewConsole(stderr, *logLevel).With().Str("run_id", uuid.New().String()).Logger()

	if envErr != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}
	log.Debug().Int("prompt_length", len(prompt)).Msg("Starting generation")

	generator, err := newGenerator(ctx, &log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("Failed to wire dependencies")
		return exitError
	}

	text, err := generator.GenerateFlowchart(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("Generation failed")
		return exitError
	}

	if _, err := fmt.Fprintln(stdout, text); err != nil {
		log.Error().Err(err).Msg("Failed to write output")
		return exitError
	}

	return exitOK
}

func usageError(stderr io.Writer, msg string) {
	fmt.Fprintf(stderr, "usage: %s [-h] [-log-level LEVEL] prompt\n", programName)
	fmt.Fprintf(stderr, "%s: error: %s\n", programName, msg)
}

// parseArgs accepts flags on either side of the prompt. flag stops at the
// first positional, so parsing resumes after each one; a "--" ends flag parsing.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}

		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}

		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func newFlowchartGenerator(ctx context.Context, logger *zerolog.Logger) (flowchartGenerator, error) {
	generator, err := mermaid.NewGeneratorFromEnv(ctx, logger)
	if err != nil {
		return nil, err
	}

	return generator, nil
}
