package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mjaasund/steeldart/internal/model"
)

type ClientSuite struct {
	suite.Suite
	ctx     context.Context
	server  *httptest.Server
	handler http.HandlerFunc
	lastURL string
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.ctx = context.Background()
	s.handler = nil
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lastURL = r.URL.String()
		s.handler(w, r)
	}))
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) respondJSON(v any) {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (s *ClientSuite) client() *Client {
	return NewClient(s.server.URL + "/") // trailing slash must not double up
}

func (s *ClientSuite) TestAddGameReturnsResults() {
	s.respondJSON(map[string]any{
		"playerResults": []PlayerResult{{ID: "p1", Placement: 1, TotalScore: 301}},
	})

	results, err := s.client().AddGame(s.ctx, GamePayload{Goal: 301, PlayerIDs: []string{"p1"}})
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("p1", results[0].ID)
	s.Equal("/api/dartgame/add", s.lastURL)
}

func (s *ClientSuite) TestAddGameRejectsEmptyResults() {
	s.respondJSON(map[string]any{"playerResults": []PlayerResult{}})

	_, err := s.client().AddGame(s.ctx, GamePayload{Goal: 301})
	s.ErrorIs(err, errMissingResults)
}

func (s *ClientSuite) TestAddGameRejectsResultWithoutID() {
	s.respondJSON(map[string]any{"playerResults": []PlayerResult{{Placement: 1}}})

	_, err := s.client().AddGame(s.ctx, GamePayload{Goal: 301})
	s.ErrorIs(err, model.ErrInvalidPayload)
}

func (s *ClientSuite) TestMostRecentGames() {
	s.respondJSON([]GameRecord{{ID: "g1"}, {ID: "g2"}})

	games, err := s.client().MostRecentGames(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(games, 2)
	s.Equal("/api/DartGame/GetMostRecent/2", s.lastURL)
}

func (s *ClientSuite) TestAllUsersRejectsInvalidEntry() {
	s.respondJSON([]UserDTO{{ID: "u1", Name: "alice"}, {ID: "u2"}})

	_, err := s.client().AllUsers(s.ctx)
	s.ErrorIs(err, model.ErrInvalidPayload)
}

func (s *ClientSuite) TestAddUserSendsQueryParams() {
	s.respondJSON(UserDTO{ID: "u1", Name: "alice"})

	user, err := s.client().AddUser(s.ctx, "alice", "ally", "rf-1")
	s.Require().NoError(err)
	s.Equal("u1", user.ID)
	s.Equal("/api/user/add?alias=ally&rfid=rf-1&username=alice", s.lastURL)
}

func (s *ClientSuite) TestUserByID() {
	s.respondJSON(UserDTO{ID: "u1", Name: "alice"})

	user, err := s.client().UserByID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("alice", user.Name)
	s.Equal("/api/user/getbyid/u1", s.lastURL)
}

func (s *ClientSuite) TestHTTPErrorSurfaced() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}

	_, err := s.client().AllUsers(s.ctx)
	s.Require().Error(err)
	s.Contains(err.Error(), "500")
}

func (s *ClientSuite) TestUserStateConversion() {
	dto := UserDTO{ID: "u1", Name: "alice", Alias: "ally", Rfid: "rf", Rank: 3, MMR: 1100}
	u := dto.User(model.UserStateOnline)

	s.Equal(model.User{
		ID: "u1", Name: "alice", Alias: "ally", Rfid: "rf",
		Rank: 3, MMR: 1100, State: model.UserStateOnline,
	}, u)
}
