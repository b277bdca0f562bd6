package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/novara/internal/config"
	"github.com/jask/novara/internal/database"
	"github.com/jask/novara/internal/database/repository"
	"github.com/jask/novara/internal/navigation"
	"github.com/jask/novara/internal/onboarding/seedphrase"
	"github.com/jask/novara/internal/secrets"
	"github.com/jask/novara/internal/service"
	"github.com/jask/novara/internal/tui"
)

var (
	configPath string
	cfg        config.Config
)

// deps are the shell collaborators shared by subcommands.
type deps struct {
	db         *sql.DB
	vault      *secrets.PinVault
	onboarding *service.OnboardingService
}

func (d *deps) Close() error {
	return d.db.Close()
}

func openDeps() (*deps, error) {
	db, err := database.OpenMigrated(cfg.Database.Path, cfg.Database.Migrations)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	vault := secrets.NewPinVault(cfg.Vault.Path)
	return &deps{
		db:    db,
		vault: vault,
		onboarding: &service.OnboardingService{
			Vault:     vault,
			Profiles:  repository.NewProfileRepo(db),
			Clipboard: service.NewClipboard(cfg.UI.Clipboard),
		},
	}, nil
}

func Execute() error {
	root := &cobra.Command{
		Use:          "novara",
		Short:        "Wallet onboarding wizard",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := os.Setenv("NOVARA_CONFIG", configPath); err != nil {
					return err
				}
			}
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <user config dir>/novara/config.toml)")

	root.AddCommand(statusCmd(), resetCmd(), configCmd(), pinCmd())
	return root.Execute()
}

func runWizard(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.UI.LogFile != "" {
		f, err := tea.LogToFile(cfg.UI.LogFile, "novara")
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		defer f.Close()
	} else {
		// stderr would tear the alt screen
		log.SetOutput(io.Discard)
	}

	words, err := seedphrase.NewWordSource(cfg.Seed.Generator)
	if err != nil {
		return err
	}
	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := tui.New(ctx, navigation.New(words), d.onboarding)
	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	opts = append(opts, tea.WithContext(ctx))
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
