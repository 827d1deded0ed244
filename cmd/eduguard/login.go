// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/eduguard/eduguard-go/internal/authclient"
	"github.com/eduguard/eduguard-go/internal/validate"
)

// loginConfig holds configuration for the login command.
type loginConfig struct {
	email    string
	password string
}

// newLoginCmd creates the login subcommand.
func newLoginCmd(buildApp appBuilder) *cobra.Command {
	cfg := &loginConfig{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the EduGuard service",
		Long: `Authenticate with email and password. On success the session is
persisted so later commands run without logging in again.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, cfg, buildApp)
		},
	}

	cmd.Flags().StringVar(&cfg.email, "email", "", "account email")
	cmd.Flags().StringVar(&cfg.password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// runLogin executes the login command. Validation runs before anything
// touches the network: a rejected form never reaches the gateway.
func runLogin(cmd *cobra.Command, cfg *loginConfig, buildApp appBuilder) error {
	if err := validate.Email(cfg.email); err != nil {
		return err
	}
	if err := validate.Password(cfg.password); err != nil {
		return err
	}

	a, err := buildApp(cmd)
	if err != nil {
		return err
	}

	err = a.manager.Login(cmd.Context(), authclient.LoginRequest{
		Email:    cfg.email,
		Password: cfg.password,
	})
	if err != nil {
		return err
	}

	state := a.manager.CurrentState()
	cmd.Printf("Logged in as %s (%s)\n", state.User.Email, state.User.Role)
	return nil
}
