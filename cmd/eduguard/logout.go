// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package main

import (
	"github.com/spf13/cobra"
)

// newLogoutCmd creates the logout subcommand.
func newLogoutCmd(buildApp appBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the stored session",
		Long: `Remove the persisted credentials. Logout always succeeds: storage
problems are logged but never keep you logged in.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}

			a.manager.Restore()
			a.manager.Logout()
			cmd.Println("Logged out")
			return nil
		},
	}
}
