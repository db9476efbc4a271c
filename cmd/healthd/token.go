package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/healthstatus/auth"
	"github.com/jonwraymond/healthstatus/config"
)

func tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the refresh endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			token, err := mintToken(cfg, subject, time.Now(), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "operator", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 15*time.Minute, "token lifetime")

	return cmd
}

func mintToken(cfg *config.Config, subject string, now time.Time, ttl time.Duration) (string, error) {
	if cfg.Auth.SigningKey == "" {
		return "", errors.New("auth.signing_key is not configured; the refresh endpoint is open")
	}
	return auth.IssueToken([]byte(cfg.Auth.SigningKey), jwtConfig(cfg), subject, now, ttl)
}
