// Command cypherguard is the CLI embedding of the cypherguard library: the
// same boundary spec.md section 1 describes ("designed to be embedded in
// front of a graph database") given a terminal-facing shape. The library
// itself stays dependency-free; everything in this package is the ambient
// stack an embedder reaches for (CLI flags, logging, schema file loading,
// colored diagnostics) and never runs inside the validator's own call path.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	app := &cli.Command{
		Name:  "cypherguard",
		Usage: "validate Cypher-compatible queries against a database schema",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			checkCommand(),
			validateCommand(),
			schemaFmtCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a stderr zap logger, the way cmd/scaf-lsp configures its
// startup logger: development encoding, level gated by -debug.
func newLogger(cmd *cli.Command) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cmd.Bool("debug") {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}
