// mapgen generates mapper descriptors and Go glue from annotated model
// types.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/syssam/mapgen/compiler/gen"
	"github.com/syssam/mapgen/internal/logger"
)

type cmdGlobal struct {
	cmd    *cobra.Command
	logger *logrus.Logger

	flagConfig    string
	flagEnvFile   string
	flagLogLevel  string
	flagLogFormat string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cobra.Command {
	app := &cobra.Command{}
	app.Use = "mapgen"
	app.Short = "Generate mapper descriptors from Go model types"
	app.Long = `Description:
  Generate mapper descriptors from Go model types

  mapgen loads the entity package, maps every type marked with
  //mapgen:table onto its table and writes one descriptor per type,
  plus the typed Go glue exposing the mapping at runtime.
`
	app.SilenceUsage = true
	app.SilenceErrors = true
	app.CompletionOptions = cobra.CompletionOptions{HiddenDefaultCmd: true}
	app.Version = gen.DefaultVersion
	app.SetVersionTemplate("{{.Version}}\n")

	globalCmd := cmdGlobal{cmd: app}
	app.PersistentFlags().StringVarP(&globalCmd.flagConfig, "config", "c", "", "YAML configuration file")
	app.PersistentFlags().StringVar(&globalCmd.flagEnvFile, "env-file", ".env", "Environment file with MAPGEN_* variables")
	app.PersistentFlags().StringVar(&globalCmd.flagLogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	app.PersistentFlags().StringVar(&globalCmd.flagLogFormat, "log-format", logger.FormatText, "Log format (text|json)")
	app.PersistentPreRunE = globalCmd.PreRun

	generateCmd := cmdGenerate{global: &globalCmd}
	app.AddCommand(generateCmd.Command())

	inspectCmd := cmdInspect{global: &globalCmd}
	app.AddCommand(inspectCmd.Command())

	watchCmd := cmdWatch{global: &globalCmd}
	app.AddCommand(watchCmd.Command())

	return app
}

// PreRun loads the environment file and sets up the logger.
func (c *cmdGlobal) PreRun(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" {
		return nil
	}
	if err := loadEnvFile(c.flagEnvFile); err != nil {
		return err
	}
	l, err := logger.Setup(cmd.ErrOrStderr(), c.flagLogLevel, c.flagLogFormat)
	if err != nil {
		return err
	}
	c.logger = l
	return nil
}

// config assembles the run configuration. Later sources win: defaults,
// the configuration file, MAPGEN_* variables, then explicit flags.
func (c *cmdGlobal) config(cmd *cobra.Command, flags *configFlags) (*gen.Config, error) {
	envOpts, err := envOptions(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	flagOpts, err := flags.options(cmd.Flags())
	if err != nil {
		return nil, err
	}
	opts := append(envOpts, flagOpts...)
	if c.logger != nil {
		opts = append(opts, gen.WithLogger(c.logger))
	}
	if c.flagConfig != "" {
		return gen.LoadConfig(c.flagConfig, opts...)
	}
	return gen.NewConfig(opts...)
}
