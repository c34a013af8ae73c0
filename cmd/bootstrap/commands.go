package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"librarylens/config"
	"librarylens/internal/delivery/dto"
	"librarylens/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewRootCommand builds the librarylens CLI. Without a subcommand it serves HTTP.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "librarylens",
		Short:         "Library catalog service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Migrate, seed and start the HTTP server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE:  runMigrate,
		},
		newCreateUserCommand(),
	)

	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	SetupLogger(cfg.App)
	logrus.Info("Configuration loaded successfully")
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	app.Run()
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg.DB, gormLogLevel(cfg.App))
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	return nil
}

func newCreateUserCommand() *cobra.Command {
	var username, email, role string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user account, prompting for the password",
		RunE: func(cmd *cobra.Command, args []string) error {
			roleName, ok := entity.ParseRoleName(role)
			if !ok {
				return fmt.Errorf("unknown role %q", role)
			}

			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			app, err := New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.Close()

			user, err := app.Usecases.Auth.CreateAccount(context.Background(), &dto.CreateAccountRequest{
				Username: username,
				Email:    email,
				Password: password,
			}, roleName)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q (id %d)\n", user.Role, user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&role, "role", string(entity.RoleLibrarian), "Admin, Librarian or Student")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}

// readPassword prompts without echo on a terminal, otherwise reads one line.
func readPassword(cmd *cobra.Command) (string, error) {
	var password string

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		password = string(raw)
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if len(password) < 8 {
		return "", errors.New("password must be at least 8 characters")
	}
	return password, nil
}
