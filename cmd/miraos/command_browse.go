package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/MiraOS/internal/domain/discovery"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/logging"
)

func newBrowseCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List discovered apps and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}

			scanner, err := discovery.NewScanner(discovery.Options{
				Extension:      cfg.Apps.Extension,
				ReservedPrefix: cfg.Apps.ReservedPrefix,
				Exclude:        cfg.Apps.Exclude,
			}, logging.NewNop())
			if err != nil {
				return err
			}

			items, err := scanner.Scan(cmd.Context(), cfg.Apps.Dir)
			if errors.Is(err, discovery.ErrDirectoryNotFound) {
				return fmt.Errorf("base directory '%s' does not exist", cfg.Apps.Dir)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No apps found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH")
			for _, item := range items {
				fmt.Fprintf(w, "%s\t%s\n", item.Name, item.Path)
			}
			return w.Flush()
		},
	}
	return cmd
}
