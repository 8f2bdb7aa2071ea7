package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/neo4j-field/cypher-guard"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check a query's syntax and schema conformance",
		ArgsUsage: "<query-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "schema",
				Aliases:  []string{"s"},
				Usage:    "path to a YAML or JSON schema file",
				Required: true,
			},
		},
		Action: runValidate,
	}
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("usage: cypherguard validate --schema <schema-file> <query-file>")
	}
	queryPath := cmd.Args().Get(0)
	schemaPath := cmd.String("schema")

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	sch, err := loadSchemaFile(schemaPath)
	if err != nil {
		logger.Error("loading schema", zap.Error(err))
		return err
	}

	data, err := os.ReadFile(queryPath) //nolint:gosec // G304: path is an explicit CLI argument
	if err != nil {
		return fmt.Errorf("reading query file: %w", err)
	}

	start := time.Now()
	errs, parseErr := cypherguard.Validate(string(data), sch)
	logger.Debug("validate finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("errorCount", len(errs)))

	color := colorEnabled(os.Stdout)
	if parseErr != nil {
		var pe *cypherguard.ParseError
		if errors.As(parseErr, &pe) {
			printParseError(os.Stdout, pe, color)
		} else {
			fmt.Fprintln(os.Stderr, parseErr)
		}
		logger.Error("validate failed to parse", zap.Error(parseErr))
		os.Exit(1)
	}

	printValidationErrors(os.Stdout, errs, color)
	logger.Info("validation complete", zap.Int("errorCount", len(errs)))
	if len(errs) > 0 {
		os.Exit(1)
	}
	return nil
}
