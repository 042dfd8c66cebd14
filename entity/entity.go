// Package entity is the id->entity registry shared across agents.
// Ownership exists because the same entity is reported to every
// connected agent; only the first agent that reports motion for an
// entity may keep applying further updates to it.
package entity

import (
	"sync"

	"github.com/SwarmBotMC/adamant/world"
	"github.com/google/uuid"
)

// Kind distinguishes a plain mob/object entity from a player entity that
// carries a Mojang profile uuid.
type Kind int

const (
	Normal Kind = iota
	Player
)

// BotID identifies the agent that currently owns an entity's updates.
type BotID uint32

// NoOwner marks an entity with no current owner (newly spawned, or the
// previous owner disconnected).
const NoOwner BotID = 0

// Entity is one tracked world entity.
type Entity struct {
	ID       int32
	Location world.Location
	Kind     Kind
	UUID     uuid.UUID // only meaningful when Kind == Player

	owner    BotID
	hasOwner bool
}

// Registry is the shared id->entity map.
type Registry struct {
	mu      sync.RWMutex
	entities map[int32]*Entity
}

func NewRegistry() *Registry {
	return &Registry{entities: make(map[int32]*Entity)}
}

// Spawn inserts a newly seen entity, owned by owner, or ownerless when
// owner is NoOwner.
func (r *Registry) Spawn(id int32, loc world.Location, kind Kind, id2 uuid.UUID, owner BotID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities[id] = &Entity{ID: id, Location: loc, Kind: kind, UUID: id2, owner: owner, hasOwner: owner != NoOwner}
}

// Get returns the entity by id, if tracked.
func (r *Registry) Get(id int32) (*Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entities[id]
	return e, ok
}

// ApplyMove updates an entity's location if reporter is its current owner
// or the entity has no owner (first reporter claims it). Returns false
// ("drop update") when a different agent already owns it, or the entity
// is unknown.
func (r *Registry) ApplyMove(id int32, reporter BotID, newLoc world.Location) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entities[id]
	if !ok {
		return false
	}
	if e.hasOwner && e.owner != reporter {
		return false
	}
	e.owner = reporter
	e.hasOwner = true
	e.Location = newLoc
	return true
}

// FindByUUID looks up a player entity's current entity id by its
// Mojang profile uuid, used to resolve an operator "attack" command's
// player name (via PlayerRoster.ByName) into the entity id AttackEntity
// needs.
func (r *Registry) FindByUUID(id uuid.UUID) (int32, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entities {
		if e.Kind == Player && e.UUID == id {
			return e.ID, true
		}
	}
	return 0, false
}

// Destroy removes entities by id (DestroyEntities packet).
func (r *Registry) Destroy(ids []int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.entities, id)
	}
}

// ReleaseOwner clears ownership of every entity owned by bot, making them
// reclaimable by the next reporter. Called when an agent disconnects.
func (r *Registry) ReleaseOwner(bot BotID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entities {
		if e.hasOwner && e.owner == bot {
			e.hasOwner = false
		}
	}
}
