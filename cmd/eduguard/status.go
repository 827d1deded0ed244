// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/spf13/cobra"

	"github.com/eduguard/eduguard-go/internal/authclient"
	"github.com/eduguard/eduguard-go/internal/session"
)

// statusConfig holds configuration for the status command.
type statusConfig struct {
	jsonOutput bool
	wait       bool
}

// Backoff for --wait polling.
const (
	waitBaseDelay  = 500 * time.Millisecond
	waitMaxRetries = 6
)

// Status is the combined service and session report.
type Status struct {
	Service        string `json:"service"`
	ServiceStatus  string `json:"service_status"`
	ServiceError   string `json:"service_error,omitempty"`
	LoggedIn       bool   `json:"logged_in"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role,omitempty"`
	TokenRemaining string `json:"token_remaining,omitempty"`
}

// newStatusCmd creates the status subcommand.
func newStatusCmd(buildApp appBuilder) *cobra.Command {
	cfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show service health and session state",
		Long: `Check the authentication service's health endpoint and report the
local session: whether a restorable login exists and how long its
token has left.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, cfg, buildApp)
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output status as JSON")
	cmd.Flags().BoolVar(&cfg.wait, "wait", false, "retry with backoff until the service is healthy")

	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, cfg *statusConfig, buildApp appBuilder) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}

	status := Status{Service: "auth"}

	if cfg.wait {
		backoff := retry.WithMaxRetries(waitMaxRetries, retry.NewExponential(waitBaseDelay))
		err = retry.Do(cmd.Context(), backoff, func(ctx context.Context) error {
			health, healthErr := a.client.Health(ctx)
			if healthErr != nil {
				return retry.RetryableError(healthErr)
			}
			status.Service = health.Service
			status.ServiceStatus = health.Status
			return nil
		})
	} else {
		var health *authclient.HealthStatus
		health, err = a.client.Health(cmd.Context())
		if err == nil {
			status.Service = health.Service
			status.ServiceStatus = health.Status
		}
	}
	if err != nil {
		status.ServiceStatus = "unreachable"
		status.ServiceError = err.Error()
	}

	// Session report comes from durable storage only; no network.
	if rec := a.store.ReadSession(); rec != nil && !session.Expired(rec.ExpiresAt, time.Now()) {
		status.LoggedIn = true
		status.Email = rec.User.Email
		status.Role = string(rec.User.Role)
		status.TokenRemaining = session.Remaining(rec.ExpiresAt, time.Now()).Round(time.Second).String()
	}

	if cfg.jsonOutput {
		out, marshalErr := json.MarshalIndent(status, "", "  ")
		if marshalErr != nil {
			return marshalErr
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("Service:  %s (%s)\n", status.Service, status.ServiceStatus)
	if status.ServiceError != "" {
		cmd.Printf("  error:  %s\n", status.ServiceError)
	}
	if status.LoggedIn {
		cmd.Printf("Session:  %s (%s), token valid for %s\n", status.Email, status.Role, status.TokenRemaining)
	} else {
		cmd.Println("Session:  not logged in")
	}
	return nil
}
