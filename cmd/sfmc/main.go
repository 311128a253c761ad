package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/sfmc-client/cmd/sfmc/commands"
	"github.com/fivetwenty-io/sfmc-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sfmc",
	Short: "Marketing Cloud data extension CLI",
	Long: `A command-line interface for working with Marketing Cloud data extensions.

Rows are read and upserted over the REST API; data extensions are retrieved,
created and deleted over the SOAP API. Credentials come from flags, SFMC_*
environment variables or $HOME/.sfmc/config.yml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.sfmc/config.yml)")
	rootCmd.PersistentFlags().String("subdomain", "", "tenant subdomain; derives the auth, REST and SOAP endpoints")
	rootCmd.PersistentFlags().String("client-id", "", "installed package client ID")
	rootCmd.PersistentFlags().String("auth-endpoint", "", "auth base URL")
	rootCmd.PersistentFlags().String("rest-endpoint", "", "REST base URL")
	rootCmd.PersistentFlags().String("soap-endpoint", "", "SOAP base URL")
	rootCmd.PersistentFlags().String("business-unit-id", "", "business unit (MID) to authenticate against")
	rootCmd.PersistentFlags().StringP("output", "o", constants.OutputFormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output, including HTTP requests")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("subdomain", rootCmd.PersistentFlags().Lookup("subdomain"))
	_ = viper.BindPFlag("client_id", rootCmd.PersistentFlags().Lookup("client-id"))
	_ = viper.BindPFlag("auth_endpoint", rootCmd.PersistentFlags().Lookup("auth-endpoint"))
	_ = viper.BindPFlag("rest_endpoint", rootCmd.PersistentFlags().Lookup("rest-endpoint"))
	_ = viper.BindPFlag("soap_endpoint", rootCmd.PersistentFlags().Lookup("soap-endpoint"))
	_ = viper.BindPFlag("business_unit_id", rootCmd.PersistentFlags().Lookup("business-unit-id"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewTokenCommand())
	rootCmd.AddCommand(commands.NewRowsCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewSoapCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".sfmc")

		// Search config in ~/.sfmc/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("SFMC")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
