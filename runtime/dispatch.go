package runtime

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/entity"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/protocol/codec"
	"github.com/SwarmBotMC/adamant/protocol/packet"
	"github.com/SwarmBotMC/adamant/world"
)

// overworldDimension is the dimension id whose ChunkData carries a sky
// light array; nether (-1) and the end (1) do not.
const overworldDimension = 0

// dispatchInbound decodes one Play-state packet and applies it against
// world/entity state and this agent's LocalState, queuing any packets
// the protocol itself requires in reply (KeepAlive echo, TeleportConfirm).
// It never blocks and never talks to the network directly; all writes go
// through out.
func dispatchInbound(id int32, body []byte, bot entity.BotID, local *agent.LocalState, glob *global.State, out *agent.OutQueue, log *slog.Logger) {
	switch id {
	case packet.IDJoinGame:
		var p packet.JoinGame
		if err := packet.Unmarshal(body, &p); err != nil {
			log.Warn("decode join game", "err", err)
			return
		}
		local.Client.EntityID = p.EntityID
		local.Dimension = p.Dimension

	case packet.IDRespawn:
		var p packet.Respawn
		if err := packet.Unmarshal(body, &p); err != nil {
			log.Warn("decode respawn", "err", err)
			return
		}
		local.Dimension = p.Dimension
		local.Follower = nil
		local.Problem = nil
		local.LastProblem = nil

	case packet.IDPlayerPositionLook:
		var p packet.PlayerPositionAndLookIn
		if err := packet.Unmarshal(body, &p); err != nil {
			log.Warn("decode player position and look", "err", err)
			return
		}
		applyTeleportCorrection(local, p)
		out.Send(&packet.TeleportConfirm{TeleportID: p.TeleportID})

	case packet.IDKeepAliveIn:
		var p packet.KeepAliveIn
		if err := packet.Unmarshal(body, &p); err != nil {
			log.Warn("decode keep alive", "err", err)
			return
		}
		out.Send(&packet.KeepAlive{ID_: p.ID_})

	case packet.IDChunkData:
		cd, err := packet.DecodeChunkData(body, local.Dimension == overworldDimension)
		if err != nil {
			log.Warn("decode chunk data", "err", err)
			return
		}
		glob.World.ApplyChunkData(cd)

	case packet.IDMultiBlockChange:
		mb, err := packet.DecodeMultiBlockChange(body)
		if err != nil {
			log.Warn("decode multi block change", "err", err)
			return
		}
		for _, rec := range mb.Records {
			loc := world.BlockLocation{
				X: mb.ChunkX*16 + int32(rec.X),
				Y: int32(rec.Y),
				Z: mb.ChunkZ*16 + int32(rec.Z),
			}
			glob.World.ApplyBlockChange(loc, rec.BlockID)
		}

	case packet.IDBlockChange:
		var p packet.BlockChange
		if err := packet.Unmarshal(body, &p); err != nil {
			log.Warn("decode block change", "err", err)
			return
		}
		x, y, z := codec.DecodeBlockPosition(p.Location)
		glob.World.ApplyBlockChange(world.BlockLocation{X: x, Y: int32(y), Z: z}, p.BlockID)

	case packet.IDExplosion:
		ex, err := packet.DecodeExplosion(body)
		if err != nil {
			log.Warn("decode explosion", "err", err)
			return
		}
		applyExplosion(glob, ex)

	case packet.IDUpdateHealth:
		var p packet.UpdateHealth
		if err := packet.Unmarshal(body, &p); err != nil {
			log.Warn("decode update health", "err", err)
			return
		}
		if p.Health <= 0 {
			local.Alive = false
			out.Send(&packet.ClientStatus{ActionID: 0})
		}

	case packet.IDChatMessageIn:
		// Chat content is surfaced to operators as a JSON passthrough, not
		// interpreted by the runtime itself.

	case packet.IDPluginMessageIn:
		// Forwarded as opaque bytes; this system has no mod-channel
		// integrations to react to.

	case packet.IDPlayerListItem:
		pl, err := packet.DecodePlayerListItem(body)
		if err != nil {
			log.Warn("decode player list item", "err", err)
			return
		}
		applyPlayerListItem(glob, pl)

	case packet.IDSpawnLivingEntity:
		var p packet.SpawnLivingEntity
		if err := packet.Unmarshal(body, &p); err != nil {
			log.Warn("decode spawn living entity", "err", err)
			return
		}
		glob.Entities.Spawn(p.EntityID, world.NewLocation(p.X, p.Y, p.Z), entity.Normal, uuid.Nil, entity.NoOwner)

	case packet.IDSpawnPlayer:
		var p packet.SpawnPlayer
		if err := packet.Unmarshal(body, &p); err != nil {
			log.Warn("decode spawn player", "err", err)
			return
		}
		glob.Entities.Spawn(p.EntityID, world.NewLocation(p.X, p.Y, p.Z), entity.Player, p.PlayerUUID, entity.NoOwner)

	case packet.IDEntityRelativeMove:
		var p packet.EntityRelativeMove
		if err := packet.Unmarshal(body, &p); err != nil {
			log.Warn("decode entity relative move", "err", err)
			return
		}
		if e, ok := glob.Entities.Get(p.EntityID); ok {
			moved := e.Location.Add(world.NewDisplacement(float64(p.DX)/4096, float64(p.DY)/4096, float64(p.DZ)/4096))
			glob.Entities.ApplyMove(p.EntityID, bot, moved)
		}

	case packet.IDEntityLookAndMove:
		var p packet.EntityLookAndRelativeMove
		if err := packet.Unmarshal(body, &p); err != nil {
			log.Warn("decode entity look and move", "err", err)
			return
		}
		if e, ok := glob.Entities.Get(p.EntityID); ok {
			moved := e.Location.Add(world.NewDisplacement(float64(p.DX)/4096, float64(p.DY)/4096, float64(p.DZ)/4096))
			glob.Entities.ApplyMove(p.EntityID, bot, moved)
		}

	case packet.IDEntityTeleport:
		var p packet.EntityTeleport
		if err := packet.Unmarshal(body, &p); err != nil {
			log.Warn("decode entity teleport", "err", err)
			return
		}
		glob.Entities.ApplyMove(p.EntityID, bot, world.NewLocation(p.X, p.Y, p.Z))

	case packet.IDDestroyEntities:
		de, err := packet.DecodeDestroyEntities(body)
		if err != nil {
			log.Warn("decode destroy entities", "err", err)
			return
		}
		glob.Entities.Destroy(de.EntityIDs)

	case packet.IDWindowItems:
		wi, err := packet.DecodeWindowItems(body)
		if err != nil {
			log.Warn("decode window items", "err", err)
			return
		}
		applyWindowItems(local, wi)

	case packet.IDSetSlot:
		ss, err := packet.DecodeSetSlot(body)
		if err != nil {
			log.Warn("decode set slot", "err", err)
			return
		}
		applySetSlot(local, ss)

	case packet.IDDisconnectPlay:
		var p packet.DisconnectPlay
		if err := packet.Unmarshal(body, &p); err != nil {
			log.Warn("decode disconnect play", "err", err)
		} else {
			log.Info("disconnected by server", "bot_id", bot, "reason", p.Reason)
		}
		local.Disconnected = true

	case packet.IDEntityAnimation:
		// Cosmetic only; no agent state depends on swing/hurt animations.

	default:
		log.Debug("unhandled packet", "bot_id", bot, "id", id)
	}
}

// applyTeleportCorrection applies the server's authoritative position
// correction, honoring the per-field relative/absolute flag bits (bit
// order: X, Y, Z, Y_ROT, X_ROT), then feeds the corrected pose directly
// into the simulator so the next physics tick starts from the corrected
// position rather than fighting it.
func applyTeleportCorrection(local *agent.LocalState, p packet.PlayerPositionAndLookIn) {
	sim := local.Sim
	loc := sim.Location
	x, y, z := p.X, p.Y, p.Z
	if p.Flags&0x01 != 0 {
		x += loc.X()
	}
	if p.Flags&0x02 != 0 {
		y += loc.Y()
	}
	if p.Flags&0x04 != 0 {
		z += loc.Z()
	}
	yaw, pitch := float64(p.Yaw), float64(p.Pitch)
	if p.Flags&0x08 != 0 {
		yaw += sim.Yaw
	}
	if p.Flags&0x10 != 0 {
		pitch += sim.Pitch
	}
	corrected := world.NewLocation(x, y, z)
	local.Intent.Teleport = &corrected
	sim.Yaw, sim.Pitch = yaw, pitch
}

func applyExplosion(glob *global.State, ex *packet.Explosion) {
	origin := world.BlockLocation{X: int32(ex.X), Y: int32(ex.Y), Z: int32(ex.Z)}
	for _, rec := range ex.Records {
		loc := origin.Add(int32(rec.DX), int32(rec.DY), int32(rec.DZ))
		glob.World.SetBlock(loc, world.NewBlockState(0, 0))
	}
}

func applyPlayerListItem(glob *global.State, pl *packet.PlayerListItem) {
	for _, e := range pl.Entries {
		switch pl.Action {
		case packet.PlayerListAddPlayer:
			glob.Roster.Add(entity.RosterEntry{UUID: e.UUID, Name: e.Name, GameMode: e.GameMode, Ping: e.Ping})
		case packet.PlayerListUpdateGameMode:
			glob.Roster.UpdateGameMode(e.UUID, e.GameMode)
		case packet.PlayerListUpdateLatency:
			glob.Roster.UpdatePing(e.UUID, e.Ping)
		case packet.PlayerListUpdateDisplayName:
			if e.HasDisplay {
				glob.Roster.UpdateDisplayName(e.UUID, e.DisplayName)
			}
		case packet.PlayerListRemovePlayer:
			glob.Roster.Remove(e.UUID)
		}
	}
}

func applyWindowItems(local *agent.LocalState, wi *packet.WindowItems) {
	if wi.WindowID != 0 {
		return // only the player's own inventory window is tracked
	}
	for i, s := range wi.Slots {
		if i >= len(local.Inventory.Slots) {
			break
		}
		local.Inventory.Slots[i] = agent.Slot{Present: s.Present, ItemID: int32(s.ItemID), Count: s.Count, Damage: s.Damage}
	}
}

func applySetSlot(local *agent.LocalState, ss *packet.SetSlot) {
	if ss.WindowID != 0 || ss.Slot < 0 || int(ss.Slot) >= len(local.Inventory.Slots) {
		return
	}
	s := ss.Item
	local.Inventory.Slots[ss.Slot] = agent.Slot{Present: s.Present, ItemID: int32(s.ItemID), Count: s.Count, Damage: s.Damage}
}
