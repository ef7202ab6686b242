package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/pathlearn/pathinformatica/internal/cli"
	"github.com/pathlearn/pathinformatica/internal/config"
)

func main() {
	cfg, err := config.ParseEnv()
	if err != nil {
		config.Exitf("pathinformatica: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	})))

	root := cli.NewRootCommand(cfg)
	if err := root.Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			// Flag and usage errors never reach a formatter; print them here.
			os.Stderr.WriteString(err.Error() + "\n")
		}
		os.Exit(cli.GetExitCode(err))
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
