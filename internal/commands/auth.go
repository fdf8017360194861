package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"c4sg/internal/api"
	"c4sg/internal/config"
	"c4sg/internal/models"
	"c4sg/internal/util"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the C4SG server",
	Long: `Authenticate with the C4SG server. Applying to and bookmarking projects, editing and
deleting them all need a logged in user. Use --token to sign in with an existing session token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		e, err := loadEnv()
		if err != nil {
			return err
		}

		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			pr := newPrompter(cmd)
			email, _ := cmd.Flags().GetString("email")
			if email == "" {
				email = pr.Ask("Email", "")
			}
			if email == "" {
				p.Println("Error: email is required")
				return nil
			}

			password, err := readPassword(cmd, pr)
			if err != nil {
				return fmt.Errorf("error reading password: %w", err)
			}

			auth, err := e.client.Login(commandContext(cmd), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %s", api.MessageOf(err))
			}
			token = auth.Token
		}

		principal, err := e.session.SignIn(token)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		err = updateGlobalConfig(e.cfg, func(cfg *config.Config) {
			cfg.UserID = principal.UserID
			cfg.Email = principal.Email
			cfg.Role = principal.Role.String()
		})
		if err != nil {
			return fmt.Errorf("error saving global config: %w", err)
		}

		p.Success("Successfully logged in as %s (%s)", displayName(principal), principal.Role)

		route, err := e.session.TakeRedirect()
		if err != nil {
			logger.WithError(err).Warn("failed to read redirect after login")
		}
		if next := routeCommand(route); next != "" {
			p.Printf("Continue where you left off: %s\n", next)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from the C4SG server",
	Long:  "Remove saved authentication credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		if err := e.client.Logout(commandContext(cmd)); err != nil {
			return fmt.Errorf("error during logout: %w", err)
		}
		if err := e.session.SignOut(); err != nil {
			return fmt.Errorf("error during logout: %w", err)
		}

		err = updateGlobalConfig(e.cfg, func(cfg *config.Config) {
			cfg.UserID = 0
			cfg.Email = ""
			cfg.Role = ""
		})
		if err != nil {
			return fmt.Errorf("error saving global config: %w", err)
		}

		newPrinter(cmd).Println("Successfully logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current user information",
	Long:  "Display the logged in user, its role and, for organization users, their organizations",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		e, err := loadEnv()
		if err != nil {
			return err
		}

		principal := e.session.Principal()
		if !principal.Authenticated() {
			p.Println("You are not logged in")
			return nil
		}

		p.Printf("Logged in as: %s\n", displayName(principal))
		p.Printf("User ID: %d\n", principal.UserID)
		p.Printf("Role: %s\n", principal.Role)
		p.Printf("Server: %s\n", e.cfg.ServerURL)

		if principal.Role != models.RoleOrganization {
			return nil
		}
		orgs, err := e.client.GetUserOrganizations(commandContext(cmd), principal.UserID)
		if err != nil {
			p.Println("Error fetching organizations:", api.MessageOf(err))
			return nil
		}
		for _, org := range orgs {
			p.Printf("Organization: %s (ID: %d)\n", org.Name, org.ID)
		}
		return nil
	},
}

// updateGlobalConfig applies mutate to the running config and to the saved file. The file is
// reloaded first so environment overrides are not written back.
func updateGlobalConfig(running *config.Config, mutate func(*config.Config)) error {
	mutate(running)

	saved, err := config.LoadGlobalConfig()
	if err != nil {
		return err
	}
	mutate(saved)
	return config.SaveGlobalConfig(saved)
}

// readPassword reads the password without echo from a terminal, or as a line otherwise
func readPassword(cmd *cobra.Command, pr *prompter) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(f.Fd()) {
		pr.p.Printf("Password: ")
		passwordBytes, err := term.ReadPassword(f.Fd())
		pr.p.Println()
		if err != nil {
			return "", err
		}
		return string(passwordBytes), nil
	}
	return pr.Ask("Password", ""), nil
}

func displayName(p models.Principal) string {
	if p.Email != "" {
		return p.Email
	}
	return fmt.Sprintf("user %d", p.UserID)
}

// routeCommand turns a remembered route into the command that opens it
func routeCommand(route string) string {
	switch {
	case route == "":
		return ""
	case strings.HasPrefix(route, "project/view/"):
		if id, err := util.ParseID(strings.TrimPrefix(route, "project/view/")); err == nil {
			return fmt.Sprintf("c4sg project show %d", id)
		}
	case strings.HasPrefix(route, "project/edit/"):
		if id, err := util.ParseID(strings.TrimPrefix(route, "project/edit/")); err == nil {
			return fmt.Sprintf("c4sg project edit %d", id)
		}
	case strings.HasPrefix(route, "project/list"):
		return "c4sg project list"
	}
	return ""
}

// commandContext returns the command's context, or a background one outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("token", "", "Sign in with an existing session token")
}
