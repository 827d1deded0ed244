// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// whoamiConfig holds configuration for the whoami command.
type whoamiConfig struct {
	refresh    bool
	jsonOutput bool
}

// newWhoamiCmd creates the whoami subcommand.
func newWhoamiCmd(buildApp appBuilder) *cobra.Command {
	cfg := &whoamiConfig{}

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWhoami(cmd, cfg, buildApp)
		},
	}

	cmd.Flags().BoolVar(&cfg.refresh, "refresh", false, "re-fetch the user from the service")
	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output the user as JSON")

	return cmd
}

// runWhoami executes the whoami command.
func runWhoami(cmd *cobra.Command, cfg *whoamiConfig, buildApp appBuilder) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}

	state, err := a.restoreAuthenticated()
	if err != nil {
		return err
	}

	if cfg.refresh {
		if err := a.manager.RefreshUser(cmd.Context()); err != nil {
			return err
		}
		state = a.manager.CurrentState()
	}

	if cfg.jsonOutput {
		out, err := json.MarshalIndent(state.User, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("%s (%s)\n", state.User.Email, state.User.Role)
	return nil
}
