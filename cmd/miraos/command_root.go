package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/server"
)

// globalFlags are shared by every command
type globalFlags struct {
	configFile string
	appsDir    string
	strategy   string
	http       bool
	dev        bool
}

func NewRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "miraos",
		Short:         "Mira OS app launcher",
		Long:          "Discover scripts in a directory and run each one in its own terminal window.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}

			srv, err := server.NewServer(cfg, server.Options{
				In:  os.Stdin,
				Out: cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	flags.bind(root)
	root.AddCommand(newBrowseCmd(&flags))
	root.AddCommand(newServeCmd(&flags))

	return root
}

func (f *globalFlags) bind(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configFile, "config", "", "YAML or TOML config file")
	pf.StringVar(&f.appsDir, "apps-dir", "", "directory to scan for apps (default \"Modules\")")
	pf.StringVar(&f.strategy, "strategy", "", "launch strategy: auto, console, applescript, emulator or pty")
	pf.BoolVar(&f.http, "http", false, "enable the admin API")
	pf.BoolVar(&f.dev, "dev", false, "development logging")
}

// load reads env and file configuration, then applies the flags the user set
func (f *globalFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFile(f.configFile)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("apps-dir") {
		cfg.Apps.Dir = f.appsDir
	}
	if changed("strategy") {
		cfg.Launch.Strategy = f.strategy
	}
	if changed("http") {
		cfg.HTTP.Enabled = f.http
	}
	if changed("dev") {
		cfg.Logging.Development = f.dev
		if f.dev {
			cfg.Logging.Level = "debug"
		}
	}

	return cfg, cfg.Validate()
}
