// Package clientdb declares the local database schema: the collections,
// keys and secondary indexes used by the scoring client.
package clientdb

import (
	"github.com/mjaasund/steeldart/internal/model"
	"github.com/mjaasund/steeldart/internal/store"
)

// DatabaseName is the local client database
const DatabaseName = "dart"

// Index names
const (
	UserIndexName  = "name"
	UserIndexState = "state"
	UserIndexAlias = "alias"
	UserIndexRfid  = "rfid"
	GameIndexState = "state"
)

// Users is the schema for the roster of known players
var Users = store.Schema[model.User]{
	Collection: "users",
	Key:        func(u model.User) string { return u.ID },
	Indexes: []store.Index[model.User]{
		{Name: UserIndexName, Value: func(u model.User) string { return u.Name }, Unique: true},
		{Name: UserIndexState, Value: func(u model.User) string { return string(u.State) }},
		{Name: UserIndexAlias, Value: func(u model.User) string { return u.Alias }},
		{Name: UserIndexRfid, Value: func(u model.User) string { return u.Rfid }},
	},
}

// Games is the schema for in-progress and completed local games
var Games = store.Schema[model.Game]{
	Collection: "games",
	Key:        func(g model.Game) string { return g.ID },
	Indexes: []store.Index[model.Game]{
		{Name: GameIndexState, Value: func(g model.Game) string { return string(g.State) }},
	},
}

// Register declares the client database on the catalog. Calling it twice
// for the same catalog fails with model.ErrDuplicateSetup.
func Register(catalog *store.Catalog) error {
	return catalog.Register(DatabaseName, Users, Games)
}
