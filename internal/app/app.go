// Package app wires configuration, persistence, and the interactive session
// together: load state, seed the admin account, run the session, save state.
package app

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	sdkapp "github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/almansori/corona/internal/domain/user"
	"github.com/almansori/corona/internal/session"
	"github.com/almansori/corona/internal/state"
	"github.com/almansori/corona/internal/storage/snapfile"
)

// Run is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *sdkapp.Telemetry, cfg *Config) error {
	store := snapfile.New(cfg.StatePath)

	// A missing or unreadable state file is not fatal: start empty.
	var st *state.Application
	if snap, err := store.Load(); err != nil {
		lg.Info("no usable saved state, starting empty", zap.Error(err))
		st = state.New(cfg.BcryptCost)
	} else {
		st = state.Restore(snap, cfg.BcryptCost)
		lg.Info("state loaded",
			zap.String("path", cfg.StatePath),
			zap.Int("users", st.Users.Len()),
			zap.Int("products", st.Catalog.Len()),
			zap.Int("orders", len(st.Orders.Orders())),
		)
	}

	// Exactly one admin identity exists: seeded here, never via interactive
	// registration.
	if _, err := st.Users.Register(cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email, user.RoleAdmin); err != nil {
		if !errors.Is(err, user.ErrUsernameTaken) {
			return errors.Wrap(err, "seed admin account")
		}
	} else {
		lg.Info("admin account seeded", zap.String("username", cfg.Admin.Username))
	}

	tel, err := session.NewTelemetry(m.MeterProvider(), m.TracerProvider())
	if err != nil {
		return errors.Wrap(err, "create session telemetry")
	}

	sess := session.New(
		session.Config{Currency: cfg.Currency},
		st, store, os.Stdin, os.Stdout, lg, tel,
	)
	if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "session")
	}

	if err := store.Save(st.Snapshot()); err != nil {
		return errors.Wrap(err, "save state")
	}
	lg.Info("state saved", zap.String("path", cfg.StatePath))

	return nil
}
