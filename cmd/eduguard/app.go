// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/eduguard/eduguard-go/internal/authclient"
	"github.com/eduguard/eduguard-go/internal/config"
	"github.com/eduguard/eduguard-go/internal/credstore"
	"github.com/eduguard/eduguard-go/internal/kv"
	"github.com/eduguard/eduguard-go/internal/logging"
	"github.com/eduguard/eduguard-go/internal/session"
	"github.com/eduguard/eduguard-go/internal/xdg"
)

// credentialsFile is the durable session record under the state dir.
const credentialsFile = "credentials.json"

// app wires the config, API client, credential store, and session
// manager for one command invocation. The manager owns the client's
// credential attachment; subcommands use the client directly only for
// operations outside the session lifecycle (children, health).
type app struct {
	cfg     *config.Config
	client  *authclient.Client
	store   *credstore.Store
	manager *session.Manager
}

// newApp resolves configuration and builds the dependency chain.
func newApp(configPath string, flags *pflag.FlagSet) (*app, error) {
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return nil, err
	}

	logging.SetDefault("eduguard", version, cfg.Log.Format)

	stateDir, err := xdg.StateDir()
	if err != nil {
		return nil, oops.Code("APP_INIT_FAILED").
			With("operation", "resolve state dir").
			Wrap(err)
	}
	if err := xdg.EnsureDir(stateDir); err != nil {
		return nil, oops.Code("APP_INIT_FAILED").
			With("operation", "create state dir").
			Wrap(err)
	}

	kvf, err := openCredentialsKV(filepath.Join(stateDir, credentialsFile))
	if err != nil {
		return nil, err
	}

	client := authclient.New(cfg.API.BaseURL, authclient.WithTimeout(cfg.API.Timeout))
	store := credstore.New(kvf)
	manager := session.NewManager(store, client)

	return &app{
		cfg:     cfg,
		client:  client,
		store:   store,
		manager: manager,
	}, nil
}

// openCredentialsKV opens the credential file. A corrupt file reads as
// "no session": it is scrubbed and reopened empty so the CLI always
// reaches a clean logged-out state instead of failing on every run.
func openCredentialsKV(path string) (*kv.File, error) {
	kvf, err := kv.OpenFile(path)
	if err == nil {
		return kvf, nil
	}
	if oopsErr, ok := oops.AsOops(err); ok && oopsErr.Code() == "KV_CORRUPT" {
		slog.Warn("credential file is corrupt, starting fresh", "path", path)
		if rmErr := os.Remove(path); rmErr != nil {
			return nil, oops.Code("APP_INIT_FAILED").
				With("operation", "remove corrupt credential file").
				With("path", path).
				Wrap(rmErr)
		}
		return kv.OpenFile(path)
	}
	return nil, err
}

// restoreAuthenticated restores the session and fails unless it settles
// authenticated.
func (a *app) restoreAuthenticated() (session.State, error) {
	a.manager.Restore()
	state := a.manager.CurrentState()
	if !state.Authenticated {
		return state, oops.Code("NOT_LOGGED_IN").
			Errorf("not logged in, run 'eduguard login' first")
	}
	return state, nil
}
