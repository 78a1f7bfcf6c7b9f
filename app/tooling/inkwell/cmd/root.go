// Package cmd contains the inkwell command line client.
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/inkwell/dashboard/foundation/nameservice"
	"github.com/spf13/cobra"
)

var (
	accountName string
	accountPath string
	url         string
	token       string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "kate", "Name of the wallet key.")
	rootCmd.PersistentFlags().StringVarP(&accountPath, "account-path", "p", "zblog/accounts/", "Path to the directory with wallet keys.")
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:3000", "Url of the dashboard.")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", os.Getenv("INKWELL_TOKEN"), "Session token returned by login.")
}

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Manage your blogs from the command line",
}

// Execute runs the command selected by the arguments.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getPrivateKeyPath() string {
	name := accountName
	if !strings.HasSuffix(name, nameservice.KeyExtension) {
		name += nameservice.KeyExtension
	}

	return filepath.Join(accountPath, name)
}
