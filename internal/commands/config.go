package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"c4sg/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage c4sg configuration",
	Long:  "View and update c4sg configuration settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get configuration value",
	Long: `Display a specific configuration value or all configuration.
Keys: server-url, email, user-id, role, log-level, rate-limit, timeout, page-size`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// If no argument is provided, show all config
		if len(args) == 0 {
			p.Println("Current configuration:")
			p.Printf("Server URL: %s\n", cfg.ServerURL)
			p.Printf("Log level: %s\n", cfg.LogLevel)
			p.Printf("Timeout: %s\n", cfg.Timeout())
			p.Printf("Page size: %d\n", cfg.PageSize)
			if cfg.RateLimit > 0 {
				p.Printf("Rate limit: %g requests/s\n", cfg.RateLimit)
			}
			if cfg.Email != "" {
				p.Printf("Email: %s\n", cfg.Email)
			}
			return nil
		}

		value, err := configValue(cfg, args[0])
		if err != nil {
			return err
		}
		p.Println(value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	Long:  "Update configuration settings like the server URL or page size",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		configUpdated := false
		flags := cmd.Flags()

		if flags.Changed("server-url") {
			url, _ := flags.GetString("server-url")
			p.Printf("Server URL updated: %s -> %s\n", cfg.ServerURL, url)
			cfg.ServerURL = url
			configUpdated = true
		}
		if flags.Changed("log-level") {
			cfg.LogLevel, _ = flags.GetString("log-level")
			configUpdated = true
		}
		if flags.Changed("rate-limit") {
			cfg.RateLimit, _ = flags.GetFloat64("rate-limit")
			configUpdated = true
		}
		if flags.Changed("timeout") {
			cfg.TimeoutSeconds, _ = flags.GetInt("timeout")
			configUpdated = true
		}
		if flags.Changed("page-size") {
			size, _ := flags.GetInt("page-size")
			if size <= 0 {
				return fmt.Errorf("page size must be positive")
			}
			cfg.PageSize = size
			configUpdated = true
		}

		// Save configuration if it was updated
		if configUpdated {
			if err := config.SaveGlobalConfig(cfg); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			p.Println("Configuration updated successfully.")
		} else {
			p.Println("No changes were made to the configuration.")
		}

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  "Create a new configuration file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		configPath, err := config.GetGlobalConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		if _, err := os.Stat(configPath); err == nil {
			p.Println("Configuration file already exists.")
			p.Println("Use 'c4sg config set' to modify existing configuration.")
			return nil
		}

		cfg := config.Default()
		if url, _ := cmd.Flags().GetString("server-url"); url != "" {
			cfg.ServerURL = url
		}

		if err := config.SaveGlobalConfig(cfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		p.Println("Configuration initialized successfully.")
		p.Printf("Configuration file created at: %s\n", configPath)
		return nil
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show configuration file paths",
	Long:  "Display paths to the configuration, session token and redirect files",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		globalConfigDir, err := config.GetGlobalConfigDir()
		if err != nil {
			return err
		}
		globalConfigPath := filepath.Join(globalConfigDir, "config.json")
		globalTokenPath := filepath.Join(globalConfigDir, ".auth_token")
		redirectPath := filepath.Join(globalConfigDir, ".redirect_after_login")

		p.Println("Config paths:")
		p.Printf("- Config directory: %s\n", globalConfigDir)
		p.Printf("- Config file: %s\n", globalConfigPath)
		p.Printf("- Auth token file: %s\n", globalTokenPath)
		p.Printf("- Redirect file: %s\n", redirectPath)

		p.Println("\nExistence status:")
		for _, f := range []struct{ label, path string }{
			{"Config file", globalConfigPath},
			{"Auth token", globalTokenPath},
			{"Pending redirect", redirectPath},
		} {
			if _, err := os.Stat(f.path); os.IsNotExist(err) {
				p.Printf("- %s: Does not exist\n", f.label)
			} else {
				p.Printf("- %s: Exists\n", f.label)
			}
		}

		return nil
	},
}

func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "server-url":
		return cfg.ServerURL, nil
	case "email":
		return cfg.Email, nil
	case "user-id":
		return strconv.FormatInt(cfg.UserID, 10), nil
	case "role":
		return cfg.Role, nil
	case "log-level":
		return cfg.LogLevel, nil
	case "rate-limit":
		return strconv.FormatFloat(cfg.RateLimit, 'g', -1, 64), nil
	case "timeout":
		return cfg.Timeout().String(), nil
	case "page-size":
		return strconv.Itoa(cfg.PageSize), nil
	}
	return "", fmt.Errorf("unknown configuration key: %s", key)
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)

	configSetCmd.Flags().String("server-url", "", "Set API server URL")
	configSetCmd.Flags().String("log-level", "", "Set log level (debug, info, warn, error)")
	configSetCmd.Flags().Float64("rate-limit", 0, "Limit requests per second, 0 disables the limit")
	configSetCmd.Flags().Int("timeout", 0, "Set request timeout in seconds")
	configSetCmd.Flags().Int("page-size", 0, "Set projects per list page")

	configInitCmd.Flags().String("server-url", "", "Set API server URL")
}
