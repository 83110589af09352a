package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/health-atlas/pkg/runtime/app"
	"github.com/de-tools/health-atlas/pkg/runtime/terminal"
	"github.com/de-tools/health-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	loadEnv(&logger)
	ctx := logger.WithContext(context.Background())

	settings, err := config.Load(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	services, err := app.Build(ctx, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Loader:   services.Loader,
		Compiler: services.Compiler,
		Output:   os.Stdout,
	})

	if err := cli.Command().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadEnv reads .env files into the environment. A missing file is not fatal; settings then
// come from the real environment and the config file.
func loadEnv(logger *zerolog.Logger, files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logger.Warn().Err(err).Msg("Error loading .env file")
	}
}
