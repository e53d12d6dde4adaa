// Package cli implements the fastchat command line client: account and room
// management over the HTTP API plus an interactive websocket chat session.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const serverURLKey = "server_url"

var rootCmd = &cobra.Command{
	Use:   "fastchat",
	Short: "Command line client for the fast-chat server",
	Long: `fastchat talks to a running fast-chat server: create users and rooms,
look up room details, and join a room for an interactive chat session.`,
	SilenceUsage: true,
}

// Execute runs the CLI. It is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("server", "http://localhost:8000", "base URL of the fast-chat server")
	viper.BindPFlag(serverURLKey, rootCmd.PersistentFlags().Lookup("server"))
}

func initConfig() {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".fastchat")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("FASTCHAT")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func serverURL() string {
	return strings.TrimRight(viper.GetString(serverURLKey), "/")
}

// wsURL converts the configured HTTP base URL into its websocket equivalent.
func wsURL() string {
	base := serverURL()
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return "ws://" + base
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
