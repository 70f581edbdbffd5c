package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "tuition-media",
	Short: "Tuition Media payment ledger",
	Long:  `Records tuition payments, verifies them and keeps the per-user audit trail.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	var cfg *internal.Config

	if os.Getenv("APP_ENV") == "production" || os.Getenv("DOCKER_ENV") == "true" {
		envCfg, err := internal.LoadConfigFromEnv()
		if err != nil {
			return nil, err
		}
		cfg = envCfg
	} else {
		v := viper.New()
		v.AddConfigPath(path)
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.SetEnvPrefix("ENV")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}

		var fileCfg internal.Config
		if err := v.Unmarshal(&fileCfg); err != nil {
			return nil, fmt.Errorf("error unmarshaling config: %w", err)
		}
		cfg = &fileCfg
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", ".", "directory holding config.yml")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(paymentCmd)
	rootCmd.AddCommand(auditCmd)
}
