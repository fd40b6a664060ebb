package roster

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mjaasund/steeldart/internal/clientdb"
	"github.com/mjaasund/steeldart/internal/dependencies/mocks"
	"github.com/mjaasund/steeldart/internal/model"
	"github.com/mjaasund/steeldart/internal/remote"
	"github.com/mjaasund/steeldart/internal/store"
	"github.com/mjaasund/steeldart/internal/store/memory"
	"github.com/mjaasund/steeldart/internal/testutil"
)

type RosterSuite struct {
	suite.Suite
	ctx     context.Context
	users   *store.Collection[model.User]
	service *Service
	server  *httptest.Server

	remoteUsers []remote.UserDTO
	getAllFails bool
	addFails    bool
	addCalls    int
}

func TestRosterSuite(t *testing.T) {
	suite.Run(t, new(RosterSuite))
}

func (s *RosterSuite) SetupTest() {
	s.ctx = context.Background()
	s.remoteUsers = nil
	s.getAllFails = false
	s.addFails = false
	s.addCalls = 0

	catalog := store.NewCatalog()
	s.Require().NoError(clientdb.Register(catalog))
	db, err := catalog.Connect(clientdb.DatabaseName, memory.New())
	s.Require().NoError(err)
	s.users, err = store.CollectionOf(db, clientdb.Users)
	s.Require().NoError(err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/user/getall", func(w http.ResponseWriter, r *http.Request) {
		if s.getAllFails {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(s.remoteUsers)
	})
	mux.HandleFunc("POST /api/user/add", func(w http.ResponseWriter, r *http.Request) {
		s.addCalls++
		if s.addFails {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		created := remote.UserDTO{
			ID:    "srv-1",
			Name:  r.URL.Query().Get("username"),
			Alias: r.URL.Query().Get("alias"),
			Rfid:  r.URL.Query().Get("rfid"),
		}
		s.remoteUsers = append(s.remoteUsers, created)
		_ = json.NewEncoder(w).Encode(created)
	})
	s.server = httptest.NewServer(mux)

	s.service = New(s.users, remote.NewClient(s.server.URL), mocks.NewIDSource("local"), testutil.NopLogger())
}

func (s *RosterSuite) TearDownTest() {
	s.server.Close()
}

func (s *RosterSuite) TestCreateLocalUser() {
	user, err := s.service.CreateLocalUser(s.ctx, "alice", "The Dart Vader")
	s.Require().NoError(err)

	s.Equal("local-0", user.ID)
	s.Equal(model.UserStateLocal, user.State)
	s.NotEmpty(user.Rfid)

	stored, err := s.users.Get(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(user, stored)
}

func (s *RosterSuite) TestCreateLocalUserNameTaken() {
	_, err := s.service.CreateLocalUser(s.ctx, "alice", "")
	s.Require().NoError(err)

	_, err = s.service.CreateLocalUser(s.ctx, "alice", "")
	s.ErrorIs(err, model.ErrKeyExists)
}

func (s *RosterSuite) TestUserByName() {
	created, err := s.service.CreateLocalUser(s.ctx, "alice", "")
	s.Require().NoError(err)

	found, err := s.service.UserByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)

	_, err = s.service.UserByName(s.ctx, "bob")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *RosterSuite) TestReconcilePromotesLocalUser() {
	_, err := s.service.CreateLocalUser(s.ctx, "alice", "ally")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Reconcile(s.ctx))
	s.Equal(1, s.addCalls)

	// The offline record is replaced by the server-assigned identity.
	_, err = s.users.Get(s.ctx, "local-0")
	s.ErrorIs(err, model.ErrNotFound)

	promoted, err := s.users.Get(s.ctx, "srv-1")
	s.Require().NoError(err)
	s.Equal("alice", promoted.Name)
	s.Equal("ally", promoted.Alias)
	s.Equal(model.UserStateOnline, promoted.State)
}

func (s *RosterSuite) TestReconcileDropsDuplicateByName() {
	s.remoteUsers = []remote.UserDTO{{ID: "srv-9", Name: "alice"}}
	_, err := s.service.CreateLocalUser(s.ctx, "alice", "")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Reconcile(s.ctx))

	// No push happened; the remote identity wins.
	s.Equal(0, s.addCalls)
	_, err = s.users.Get(s.ctx, "local-0")
	s.ErrorIs(err, model.ErrNotFound)

	mirrored, err := s.users.Get(s.ctx, "srv-9")
	s.Require().NoError(err)
	s.Equal(model.UserStateOnline, mirrored.State)
}

func (s *RosterSuite) TestReconcileDropsDuplicateByID() {
	s.remoteUsers = []remote.UserDTO{{ID: "local-0", Name: "someone else"}}
	_, err := s.service.CreateLocalUser(s.ctx, "alice", "")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Reconcile(s.ctx))
	s.Equal(0, s.addCalls)

	kept, err := s.users.Get(s.ctx, "local-0")
	s.Require().NoError(err)
	s.Equal("someone else", kept.Name)
	s.Equal(model.UserStateOnline, kept.State)
}

func (s *RosterSuite) TestReconcileMirrorsRemoteRoster() {
	s.remoteUsers = []remote.UserDTO{
		{ID: "srv-1", Name: "alice", MMR: 1200},
		{ID: "srv-2", Name: "bob", MMR: 900},
	}

	s.Require().NoError(s.service.Reconcile(s.ctx))

	all, err := s.users.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
	for _, u := range all {
		s.Equal(model.UserStateOnline, u.State)
	}
}

func (s *RosterSuite) TestReconcileFailsWhenRosterUnavailable() {
	s.getAllFails = true
	_, err := s.service.CreateLocalUser(s.ctx, "alice", "")
	s.Require().NoError(err)

	s.Error(s.service.Reconcile(s.ctx))

	kept, err := s.users.Get(s.ctx, "local-0")
	s.Require().NoError(err)
	s.Equal(model.UserStateLocal, kept.State)
}

func (s *RosterSuite) TestReconcileKeepsUserWhenPushFails() {
	s.addFails = true
	_, err := s.service.CreateLocalUser(s.ctx, "alice", "")
	s.Require().NoError(err)

	// Best-effort: the failed push is logged, not fatal.
	s.Require().NoError(s.service.Reconcile(s.ctx))

	kept, err := s.users.Get(s.ctx, "local-0")
	s.Require().NoError(err)
	s.Equal(model.UserStateLocal, kept.State)
}

func (s *RosterSuite) TestReconcileIsIdempotent() {
	_, err := s.service.CreateLocalUser(s.ctx, "alice", "")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Reconcile(s.ctx))
	s.Require().NoError(s.service.Reconcile(s.ctx))

	s.Equal(1, s.addCalls)
	all, err := s.users.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
	s.Equal("srv-1", all[0].ID)
}
