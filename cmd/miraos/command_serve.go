package main

import (
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/server"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the admin API without the interactive prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			cfg.HTTP.Enabled = true

			srv, err := server.NewServer(cfg, server.Options{Out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
	return cmd
}
