package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/novara/internal/secrets"
)

// PinChecker verifies a PIN against the stored verifier.
type PinChecker interface {
	Verify(pin string) (bool, error)
}

func pinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Inspect the stored PIN",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: "Check a PIN read from stdin against the stored one",
		RunE: func(cmd *cobra.Command, args []string) error {
			return verifyPin(cmd.InOrStdin(), cmd.OutOrStdout(), secrets.NewPinVault(cfg.Vault.Path))
		},
	})
	return cmd
}

func verifyPin(in io.Reader, out io.Writer, v PinChecker) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("read pin: %w", err)
	}
	ok, err := v.Verify(strings.TrimSpace(line))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("pin does not match")
	}
	fmt.Fprintln(out, "PIN matches.")
	return nil
}
