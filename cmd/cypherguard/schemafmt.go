package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func schemaFmtCommand() *cli.Command {
	return &cli.Command{
		Name:      "schema-fmt",
		Usage:     "round-trip a schema file through Schema.FromDict/ToDict and pretty-print it",
		ArgsUsage: "<schema-file>",
		Action:    runSchemaFmt,
	}
}

func runSchemaFmt(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("usage: cypherguard schema-fmt <schema-file>")
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	sch, err := loadSchemaFile(cmd.Args().Get(0))
	if err != nil {
		logger.Error("loading schema", zap.Error(err))
		return err
	}

	if err := writeSchemaFile(os.Stdout, sch); err != nil {
		logger.Error("writing schema", zap.Error(err))
		return err
	}
	return nil
}
