package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mjaasund/steeldart/internal/config"
	"github.com/mjaasund/steeldart/internal/model"
	"github.com/mjaasund/steeldart/internal/store/memory"
	"github.com/mjaasund/steeldart/internal/testutil"
)

type FactorySuite struct {
	suite.Suite
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

func (s *FactorySuite) TestNewWithDriverWiresEverything() {
	app, err := NewWithDriver("http://localhost:5000", memory.New(), testutil.NopLogger())
	s.Require().NoError(err)

	s.NotNil(app.DB)
	s.NotNil(app.Users)
	s.NotNil(app.Games)
	s.NotNil(app.Clock)
	s.NotNil(app.IDs)
	s.NotNil(app.Remote)
	s.NotNil(app.Roster)
	s.NotNil(app.Uploader)
	s.NotNil(app.Logger)

	// Collections are backed by the same connected database.
	ctx := context.Background()
	s.Require().NoError(app.Users.Add(ctx, model.User{ID: "u1", Name: "alice"}))
	got, err := app.Users.Get(ctx, "u1")
	s.Require().NoError(err)
	s.Equal("alice", got.Name)

	s.NoError(app.DB.Close())
}

func (s *FactorySuite) TestNewWithMemoryBackend() {
	cfg := &config.Config{
		Server:  config.ServerConfig{Endpoint: "http://localhost:5000"},
		Storage: config.StorageConfig{Backend: config.StorageMemory},
	}

	app, err := New(cfg, nil)
	s.Require().NoError(err)
	s.NotNil(app.Logger) // nil logger falls back to a discarding one
}

func (s *FactorySuite) TestIDSourceYieldsUniqueIDs() {
	app, err := NewWithDriver("http://localhost:5000", memory.New(), testutil.NopLogger())
	s.Require().NoError(err)

	a, b := app.IDs.NewID(), app.IDs.NewID()
	s.NotEmpty(a)
	s.NotEqual(a, b)
}
