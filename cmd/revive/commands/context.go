// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands defines the revive command tree.
package commands

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/revive-exchange/revive/lib/auth"
	"github.com/revive-exchange/revive/lib/catalog"
	"github.com/revive-exchange/revive/lib/clock"
	"github.com/revive-exchange/revive/lib/config"
	"github.com/revive-exchange/revive/lib/demand"
	"github.com/revive-exchange/revive/lib/listing"
	"github.com/revive-exchange/revive/lib/request"
	"github.com/revive-exchange/revive/lib/snapshot"
	"github.com/revive-exchange/revive/lib/workflow"
)

// runContext bundles everything an opened command needs: the loaded
// configuration, the snapshot store, and the service graph over it.
type runContext struct {
	config  *config.Config
	store   *snapshot.Store
	logger  *slog.Logger
	auth    *auth.Service
	catalog *catalog.Service
	listing *listing.Service
	demand  *demand.Service
	request *request.Service
	flow    *workflow.Orchestrator
}

// loadConfig loads and validates configuration from configPath if
// non-empty, otherwise from REVIVE_CONFIG or the defaults, and
// ensures the data directories exist.
func loadConfig(configPath string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openContext constructs the full service graph over the configured
// data directory, logging to logWriter.
func openContext(cfg *config.Config, logWriter io.Writer) (*runContext, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if logWriter == nil {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: level}))

	store, err := snapshot.New(cfg.Paths.Data)
	if err != nil {
		return nil, err
	}

	realClock := clock.Real()
	authService, err := auth.New(store, realClock, logger)
	if err != nil {
		return nil, err
	}
	catalogService, err := catalog.New(store, logger)
	if err != nil {
		return nil, err
	}
	listingService, err := listing.New(store, realClock, logger)
	if err != nil {
		return nil, err
	}
	demandService, err := demand.New(store, realClock, logger)
	if err != nil {
		return nil, err
	}
	requestService, err := request.New(store, realClock, logger)
	if err != nil {
		return nil, err
	}
	flow := workflow.New(authService, catalogService, listingService, requestService, logger)

	return &runContext{
		config:  cfg,
		store:   store,
		logger:  logger,
		auth:    authService,
		catalog: catalogService,
		listing: listingService,
		demand:  demandService,
		request: requestService,
		flow:    flow,
	}, nil
}

// adminLogin prompts for credentials on the terminal and returns an
// administrator session. The password is read with echo disabled.
func adminLogin(authService *auth.Service) (*auth.Session, error) {
	fmt.Fprintf(os.Stderr, "username [%s]: ", auth.AdminUsername)
	reader := bufio.NewReader(os.Stdin)
	username, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading username: %w", err)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		username = auth.AdminUsername
	}

	fmt.Fprint(os.Stderr, "password: ")
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	session, err := authService.Login(username, string(passwordBytes))
	if err != nil {
		return nil, err
	}
	if !session.IsAdministrator() {
		authService.Logout(session)
		return nil, fmt.Errorf("user %q is not an administrator", username)
	}
	return session, nil
}
