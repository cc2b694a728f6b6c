package cmd

import (
	"fmt"
	"os"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/jamhof/recipebox/internal/config"
	"github.com/jamhof/recipebox/internal/database"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var createSuperuserCmd = &cobra.Command{
	Use:     "createsuperuser <email>",
	Short:   "Create a user with staff and superuser privileges",
	Example: `recipebox createsuperuser admin@example.com`,
	Args:    cobra.ExactArgs(1),
	Run:     createSuperuser,
}

func init() {
	rootCmd.AddCommand(createSuperuserCmd)
}

func createSuperuser(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	password, err := promptPassword()
	if err != nil {
		log.Fatalf("failed to read password: %v", err)
	}
	if len(password) < cfg.Auth.MinPasswordLength {
		log.Fatalf("password must be at least %d characters", cfg.Auth.MinPasswordLength)
	}

	user, err := db.CreateSuperuser(cmd.Context(), args[0], password)
	if err != nil {
		log.Fatalf("failed to create superuser: %v", err)
	}

	log.Info("superuser created", "email", user.Email)
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin)) //nolint:unconvert
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	fmt.Fprint(os.Stderr, "Password (again): ")
	confirm, err := term.ReadPassword(int(syscall.Stdin)) //nolint:unconvert
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(password), nil
}
