package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jask/novara/internal/service"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the latest completed onboarding",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps()
			if err != nil {
				return err
			}
			defer d.Close()
			st, err := d.onboarding.Status(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func printStatus(w io.Writer, st service.Status) {
	if st.PinStored {
		fmt.Fprintf(w, "PIN: stored (updated %s)\n", st.PinUpdated.Format("2006-01-02 15:04:05 MST"))
	} else {
		fmt.Fprintln(w, "PIN: not set")
	}
	if !st.Completed() {
		fmt.Fprintln(w, "onboarding not completed")
		return
	}
	p := st.Profile
	fmt.Fprintf(w, "Profile:     %s\n", p.ID)
	fmt.Fprintf(w, "Role:        %s\n", st.Role)
	fmt.Fprintf(w, "Biometrics:  %s\n", onOff(p.BiometricsEnabled))
	fmt.Fprintf(w, "Completed:   %s\n", p.CompletedAt.Format("2006-01-02 15:04:05 MST"))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
