package model

// UserState tracks where a user identity lives in its lifecycle
type UserState string

const (
	// UserStateUnregistered is a placeholder identity that was never saved
	UserStateUnregistered UserState = "unregistered"
	// UserStateLocal is a user created offline, pending reconciliation
	UserStateLocal UserState = "local"
	// UserStateOnline is a user mirrored from the remote identity store
	UserStateOnline UserState = "online"
)

// User is a durable player identity, distinct from a Participant in a game
type User struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Alias string    `json:"alias"`
	Rfid  string    `json:"rfid"` // hardware token identifier
	Rank  int       `json:"rank"`
	MMR   int       `json:"mmr"`
	State UserState `json:"state"`
}

// NewDefaultUser returns an empty unregistered user with the given ids
func NewDefaultUser(id, rfid string) User {
	return User{
		ID:    id,
		Rfid:  rfid,
		State: UserStateUnregistered,
	}
}
