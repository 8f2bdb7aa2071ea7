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
	"github.com/neo4j-field/cypher-guard/grammar"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "check a query's syntax only, without a schema",
		ArgsUsage: "<query-file>",
		Action:    runCheck,
	}
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("usage: cypherguard check <query-file>")
	}
	queryPath := cmd.Args().Get(0)

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	data, err := os.ReadFile(queryPath) //nolint:gosec // G304: path is an explicit CLI argument
	if err != nil {
		return fmt.Errorf("reading query file: %w", err)
	}

	start := time.Now()
	_, parseErr := grammar.Parse(string(data))
	logger.Debug("check finished", zap.Duration("elapsed", time.Since(start)))

	color := colorEnabled(os.Stdout)
	if parseErr != nil {
		var pe *cypherguard.ParseError
		if errors.As(parseErr, &pe) {
			printParseError(os.Stdout, pe, color)
		} else {
			fmt.Fprintln(os.Stderr, parseErr)
		}
		logger.Error("syntax check failed", zap.Error(parseErr))
		os.Exit(1)
	}

	if color {
		fmt.Fprintln(os.Stdout, successStyle.Render("syntax OK"))
	} else {
		fmt.Fprintln(os.Stdout, "syntax OK")
	}
	return nil
}
