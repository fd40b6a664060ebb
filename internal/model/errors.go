package model

import "errors"

// Common errors used across the application
var (
	// Store errors
	ErrNotFound          = errors.New("record not found")
	ErrKeyExists         = errors.New("key already exists")
	ErrDuplicateSetup    = errors.New("database setup already registered")
	ErrUnknownDatabase   = errors.New("database not registered")
	ErrUnknownCollection = errors.New("collection not registered")
	ErrUnknownIndex      = errors.New("unknown index")

	// Game errors
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerInGame   = errors.New("player is already in the game")
	ErrNoSuchColumn   = errors.New("no participant at that column")
	ErrNoSuchRound    = errors.New("no round at that row")
	ErrNoParticipants = errors.New("game has no participants")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Remote errors
	ErrInvalidPayload = errors.New("response payload failed validation")
)
