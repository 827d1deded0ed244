// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/eduguard/eduguard-go/internal/session"
)

// newChildrenCmd creates the children subcommand group.
func newChildrenCmd(buildApp appBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "children",
		Short: "Manage linked child accounts (parent role)",
	}

	cmd.AddCommand(newChildrenListCmd(buildApp))
	cmd.AddCommand(newChildrenLinkCmd(buildApp))
	cmd.AddCommand(newChildrenUnlinkCmd(buildApp))

	return cmd
}

// requireParent restores the session and checks the parent role before
// any child-management call leaves the client.
func requireParent(a *app) (session.State, error) {
	state, err := a.restoreAuthenticated()
	if err != nil {
		return state, err
	}
	if !state.IsParent() {
		return state, oops.Code("PARENT_ROLE_REQUIRED").
			Errorf("child accounts can only be managed from a parent account")
	}
	return state, nil
}

// newChildrenListCmd creates the children list subcommand.
func newChildrenListCmd(buildApp appBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List linked child accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			if _, err := requireParent(a); err != nil {
				return err
			}

			list, err := a.client.Children(cmd.Context())
			if err != nil {
				return err
			}

			if len(list.Children) == 0 {
				cmd.Printf("No linked children (0 of %d used)\n", list.MaxAllowed)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tCREATED")
			for _, child := range list.Children {
				fmt.Fprintf(w, "%d\t%s\t%s\n", child.ID, child.Email, child.CreatedAt)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			cmd.Printf("%d of %d linked\n", list.Total, list.MaxAllowed)
			return nil
		},
	}
}

// newChildrenLinkCmd creates the children link subcommand.
func newChildrenLinkCmd(buildApp appBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "link <child-id>",
		Short: "Link a child account to this parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			childID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return oops.Code("INVALID_CHILD_ID").
					Errorf("child id must be a number, got %q", args[0])
			}

			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			if _, err := requireParent(a); err != nil {
				return err
			}

			link, err := a.client.LinkChild(cmd.Context(), childID)
			if err != nil {
				return err
			}

			cmd.Printf("Linked child %d (link id %d)\n", link.ChildID, link.ID)
			return nil
		},
	}
}

// newChildrenUnlinkCmd creates the children unlink subcommand.
func newChildrenUnlinkCmd(buildApp appBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <child-id>",
		Short: "Remove the link to a child account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			childID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return oops.Code("INVALID_CHILD_ID").
					Errorf("child id must be a number, got %q", args[0])
			}

			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			if _, err := requireParent(a); err != nil {
				return err
			}

			msg, err := a.client.UnlinkChild(cmd.Context(), childID)
			if err != nil {
				return err
			}

			cmd.Println(msg.Message)
			return nil
		},
	}
}
