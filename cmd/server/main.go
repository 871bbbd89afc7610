package main

import (
	"context"
	"os"

	"github.com/osa911/portfolio-backend/internal/version"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio-backend",
	Short: "Portfolio backend - AI chat proxy and contact form API",
	Long: `Portfolio backend serves the JSON API behind the portfolio site:
an assistant chat endpoint backed by an LLM provider and a contact form
that is CAPTCHA-checked, rate limited and delivered by email.

Running without a subcommand is the same as "serve".`,
	Version:      version.Info(),
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file tried before .env.<ENV> and .env")
	rootCmd.AddCommand(serveCmd, checkConfigCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
