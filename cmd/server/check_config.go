package main

import (
	"fmt"
	"io"

	"github.com/osa911/portfolio-backend/internal/config"

	"github.com/spf13/cobra"
)

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate configuration and show what is enabled",
	Long: `Load configuration the same way "serve" does, validate it and print
a summary. Secrets are never printed, only whether they are set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}
		printConfigSummary(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "Environment:      %s\n", cfg.Environment)
	fmt.Fprintf(w, "Listen:           :%s%s/\n", cfg.Port, cfg.APIPrefix)
	fmt.Fprintf(w, "Frontend origin:  %s\n", cfg.FrontendOrigin)
	fmt.Fprintf(w, "LLM provider:     %s (%s %s)\n", cfg.LLMProvider, cfg.LLMAPIKeyName(), setOrMissing(cfg.LLMAPIKey()))
	fmt.Fprintf(w, "LLM model:        %s\n", valueOr(cfg.LLMModel, "provider default"))
	fmt.Fprintf(w, "reCAPTCHA:        %s (min score %.2f)\n", enabledOrDisabled(cfg.RecaptchaSecret), cfg.RecaptchaMinScore)
	fmt.Fprintf(w, "SMTP:             %s:%d as %s (password %s)\n", cfg.SMTPHost, cfg.SMTPPort, valueOr(cfg.EmailUser, "<unset>"), setOrMissing(cfg.EmailPass))
	fmt.Fprintf(w, "Contact to:       %s\n", valueOr(cfg.ContactRecipient, "<unset>"))
	fmt.Fprintf(w, "Contact limit:    %d per %s (%s)\n", cfg.ContactRateMax, cfg.ContactRateWindow, rateStore(cfg))
	fmt.Fprintf(w, "Tracing:          %s\n", valueOr(cfg.OTLPEndpoint, "disabled"))
}

func setOrMissing(v string) string {
	if v == "" {
		return "missing"
	}
	return "set"
}

func enabledOrDisabled(v string) string {
	if v == "" {
		return "disabled"
	}
	return "enabled"
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func rateStore(cfg *config.Config) string {
	if cfg.RateLimitRedisURL != "" {
		return "redis"
	}
	return "memory"
}
