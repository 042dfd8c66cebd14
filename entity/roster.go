package entity

import (
	"sync"

	"github.com/google/uuid"
)

// RosterEntry is one player known from PlayerListItem, supplementing the
// minimal (uuid, name) pair with the gamemode and ping fields the server
// also reports.
type RosterEntry struct {
	UUID     uuid.UUID
	Name     string
	GameMode int32
	Ping     int32
}

// PlayerRoster tracks the server's player list, populated and purged by
// PlayerListItem events.
type PlayerRoster struct {
	mu      sync.RWMutex
	players map[uuid.UUID]*RosterEntry
}

func NewPlayerRoster() *PlayerRoster {
	return &PlayerRoster{players: make(map[uuid.UUID]*RosterEntry)}
}

func (r *PlayerRoster) Add(e RosterEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := e
	r.players[e.UUID] = &cp
}

func (r *PlayerRoster) UpdateGameMode(id uuid.UUID, gameMode int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.players[id]; ok {
		e.GameMode = gameMode
	}
}

func (r *PlayerRoster) UpdatePing(id uuid.UUID, ping int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.players[id]; ok {
		e.Ping = ping
	}
}

func (r *PlayerRoster) UpdateDisplayName(id uuid.UUID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.players[id]; ok {
		e.Name = name
	}
}

func (r *PlayerRoster) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, id)
}

// ByName looks up a player by display name, used by the "attack" control
// command.
func (r *PlayerRoster) ByName(name string) (RosterEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.players {
		if e.Name == name {
			return *e, true
		}
	}
	return RosterEntry{}, false
}
