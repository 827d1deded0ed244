// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/eduguard/eduguard-go/internal/authclient"
	"github.com/eduguard/eduguard-go/internal/validate"
)

// signupConfig holds configuration for the signup command.
type signupConfig struct {
	email           string
	password        string
	confirmPassword string
	role            string
}

// newSignupCmd creates the signup subcommand.
func newSignupCmd(buildApp appBuilder) *cobra.Command {
	cfg := &signupConfig{}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an EduGuard account",
		Long: `Register a new parent or child account. On success the new session
is persisted, so sign-up also logs you in.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSignup(cmd, cfg, buildApp)
		},
	}

	cmd.Flags().StringVar(&cfg.email, "email", "", "account email")
	cmd.Flags().StringVar(&cfg.password, "password", "", "account password")
	cmd.Flags().StringVar(&cfg.confirmPassword, "confirm-password", "", "password confirmation")
	cmd.Flags().StringVar(&cfg.role, "role", "", "account role (parent or child)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("confirm-password")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

// runSignup executes the signup command. All form predicates run before
// anything touches the network.
func runSignup(cmd *cobra.Command, cfg *signupConfig, buildApp appBuilder) error {
	if err := validate.Email(cfg.email); err != nil {
		return err
	}
	if err := validate.Password(cfg.password); err != nil {
		return err
	}
	if err := validate.PasswordConfirm(cfg.password, cfg.confirmPassword); err != nil {
		return err
	}
	role := authclient.Role(cfg.role)
	if !role.Valid() {
		return oops.Code("VALIDATE_ROLE").
			Errorf("role must be 'parent' or 'child', got %q", cfg.role)
	}

	a, err := buildApp(cmd)
	if err != nil {
		return err
	}

	err = a.manager.Signup(cmd.Context(), authclient.SignupRequest{
		Email:    cfg.email,
		Password: cfg.password,
		Role:     role,
	})
	if err != nil {
		return err
	}

	state := a.manager.CurrentState()
	cmd.Printf("Account created, logged in as %s (%s)\n", state.User.Email, state.User.Role)
	return nil
}
