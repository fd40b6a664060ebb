// Package roster manages the locally known players and reconciles users
// created offline with the remote identity store.
package roster

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mjaasund/steeldart/internal/clientdb"
	"github.com/mjaasund/steeldart/internal/dependencies/ident"
	"github.com/mjaasund/steeldart/internal/model"
	"github.com/mjaasund/steeldart/internal/remote"
	"github.com/mjaasund/steeldart/internal/store"
)

// Service manages the local user roster
type Service struct {
	users  *store.Collection[model.User]
	client *remote.Client
	ids    ident.Source
	logger *slog.Logger
}

// New creates a new roster service
func New(users *store.Collection[model.User], client *remote.Client, ids ident.Source, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		client: client,
		ids:    ids,
		logger: logger,
	}
}

// CreateLocalUser creates a user offline, pending reconciliation
func (s *Service) CreateLocalUser(ctx context.Context, name, alias string) (model.User, error) {
	user := model.User{
		ID:    s.ids.NewID(),
		Name:  name,
		Alias: alias,
		Rfid:  s.ids.NewID(),
		State: model.UserStateLocal,
	}

	if err := s.users.Add(ctx, user); err != nil {
		return model.User{}, err
	}

	s.logger.Info("local user created",
		slog.String("user_id", user.ID),
		slog.String("name", user.Name),
	)
	return user, nil
}

// LocalUsers returns all users known locally
func (s *Service) LocalUsers(ctx context.Context) ([]model.User, error) {
	return s.users.GetAll(ctx)
}

// UserByName looks a user up through the name index
func (s *Service) UserByName(ctx context.Context, name string) (model.User, error) {
	user, err := s.users.GetByIndex(ctx, clientdb.UserIndexName, name)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

// Reconcile aligns locally created users with the remote identity store.
//
// For every user in state local: if the remote roster already holds the
// same identity (by id or name) the local duplicate is deleted; otherwise
// the user is pushed remotely and the local record replaced with the
// server-assigned identity, marked online. Afterwards every remote user
// is mirrored locally as online.
//
// The pass is best-effort and idempotent: any failure leaves the affected
// user in place for the next run.
func (s *Service) Reconcile(ctx context.Context) error {
	remoteUsers, err := s.client.AllUsers(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]remote.UserDTO, len(remoteUsers))
	byName := make(map[string]remote.UserDTO, len(remoteUsers))
	for _, u := range remoteUsers {
		byID[u.ID] = u
		byName[u.Name] = u
	}

	locals, err := s.users.GetAllByIndex(ctx, clientdb.UserIndexState, string(model.UserStateLocal))
	if err != nil {
		return err
	}

	for _, local := range locals {
		if err := s.reconcileUser(ctx, local, byID, byName); err != nil {
			s.logger.Warn("user left unreconciled for next pass",
				slog.String("user_id", local.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	// Mirror the full remote roster locally.
	for _, u := range remoteUsers {
		if err := s.users.Put(ctx, u.User(model.UserStateOnline)); err != nil {
			s.logger.Warn("failed to mirror remote user",
				slog.String("user_id", u.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

func (s *Service) reconcileUser(
	ctx context.Context,
	local model.User,
	byID, byName map[string]remote.UserDTO,
) error {
	_, idTaken := byID[local.ID]
	_, nameTaken := byName[local.Name]
	if idTaken || nameTaken {
		// Remote already holds this identity; the local record is a
		// duplicate and the mirror pass restores the remote version.
		s.logger.Info("dropping local duplicate of remote user",
			slog.String("user_id", local.ID),
			slog.String("name", local.Name),
		)
		return s.users.Delete(ctx, local.ID)
	}

	created, err := s.client.AddUser(ctx, local.Name, local.Alias, local.Rfid)
	if err != nil {
		return err
	}

	// Replace the offline record with the server-assigned identity.
	if err := s.users.Delete(ctx, local.ID); err != nil {
		return err
	}
	if err := s.users.Put(ctx, created.User(model.UserStateOnline)); err != nil {
		return err
	}

	s.logger.Info("local user promoted to online",
		slog.String("local_id", local.ID),
		slog.String("remote_id", created.ID),
	)
	return nil
}
