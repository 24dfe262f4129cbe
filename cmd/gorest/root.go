package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/gorest/bootstrap"
	"github.com/kbukum/gorest/config"
)

const appName = "gorest"

type rootFlags struct {
	configFile string
	envFile    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Call configured REST services",
		Long: `gorest sends signed requests to REST services declared under app.rest
in the configuration file and prints the decoded JSON response.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default: search ./cmd/gorest, ./config, .)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", ".env file with GOREST_ overrides")

	cmd.AddCommand(newCallCmd(flags))
	cmd.AddCommand(newServicesCmd(flags))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func (f *rootFlags) loadConfig() (*config.Config, error) {
	var opts []config.LoaderOption
	if f.configFile != "" {
		opts = append(opts, config.WithConfigFile(f.configFile))
	}
	if f.envFile != "" {
		opts = append(opts, config.WithEnvFile(f.envFile))
	}
	cfg, err := config.Load(appName, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (f *rootFlags) newApp(opts ...bootstrap.Option) (*bootstrap.App, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}
	return bootstrap.NewApp(cfg, opts...)
}
