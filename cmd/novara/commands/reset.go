package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/novara/internal/service"
)

func resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe stored profiles and the PIN verifier",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			d, err := openDeps()
			if err != nil {
				return err
			}
			defer d.Close()
			m := &service.MaintenanceService{DB: d.db, Vault: d.vault}
			if err := m.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Onboarding state wiped.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}
