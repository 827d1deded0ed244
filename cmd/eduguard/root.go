// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/eduguard/eduguard-go/internal/config"
)

// NewRootCmd creates the root command for the eduguard CLI.
func NewRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "eduguard",
		Short: "EduGuard - parent/child account client",
		Long: `EduGuard is the command-line client for the EduGuard authentication
service: sign up, log in, inspect your session, and manage linked
parent/child accounts.`,
		SilenceUsage: true,
	}

	// Global flags, resolved through the config layer so the file can
	// set them and changed flags win.
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	cmd.PersistentFlags().String("api-url", config.DefaultBaseURL, "authentication API base URL")
	cmd.PersistentFlags().Duration("api-timeout", config.DefaultTimeout, "fixed request timeout")
	cmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "log format (json or text)")

	buildApp := func(cmd *cobra.Command) (*app, error) {
		return newApp(configFile, cmd.Flags())
	}

	cmd.AddCommand(newSignupCmd(buildApp))
	cmd.AddCommand(newLoginCmd(buildApp))
	cmd.AddCommand(newLogoutCmd(buildApp))
	cmd.AddCommand(newWhoamiCmd(buildApp))
	cmd.AddCommand(newChildrenCmd(buildApp))
	cmd.AddCommand(newStatusCmd(buildApp))

	return cmd
}

// appBuilder constructs the wired application for a subcommand run.
type appBuilder func(cmd *cobra.Command) (*app, error)
