// Package packet defines the Minecraft 1.12.2 (protocol 340) Play- and
// Login-state packet structs this system sends and consumes. Field
// layout and packet ids must match the protocol specification
// bit-for-bit.
package packet

// Packet is implemented by every packet struct. ID returns the packet's
// numeric id within its current protocol state/direction.
type Packet interface {
	ID() int32
}

// Login-state packet ids (both directions share the 0x00-0x02 id space per
// direction independently).
const (
	IDLoginStart         int32 = 0x00 // serverbound
	IDEncryptionResponse int32 = 0x01 // serverbound
	IDLoginDisconnect    int32 = 0x00 // clientbound
	IDEncryptionRequest  int32 = 0x01 // clientbound
	IDLoginSuccess       int32 = 0x02 // clientbound
	IDSetCompression     int32 = 0x03 // clientbound
)

// Handshake state id.
const IDHandshake int32 = 0x00 // serverbound, Handshaking state

// Play-state clientbound ids consumed by this system.
const (
	IDSpawnLivingEntity    int32 = 0x03
	IDSpawnPlayer          int32 = 0x05
	IDEntityAnimation      int32 = 0x06
	IDExplosion            int32 = 0x1C
	IDChatMessageIn        int32 = 0x0F
	IDMultiBlockChange     int32 = 0x10
	IDBlockChange          int32 = 0x0B
	IDWindowItems          int32 = 0x14
	IDSetSlot              int32 = 0x16
	IDDisconnectPlay       int32 = 0x1A
	IDKeepAliveIn          int32 = 0x1F
	IDChunkData            int32 = 0x20
	IDJoinGame             int32 = 0x23
	IDEntityRelativeMove   int32 = 0x25
	IDEntityLookAndMove    int32 = 0x26
	IDEntityTeleport       int32 = 0x4C
	IDPlayerListItem       int32 = 0x2E
	IDPlayerPositionLook   int32 = 0x2F
	IDDestroyEntities      int32 = 0x31
	IDRespawn              int32 = 0x38
	IDUpdateHealth         int32 = 0x41
	IDPluginMessageIn      int32 = 0x18
)

// Play-state serverbound ids emitted by this system.
const (
	IDTeleportConfirm     int32 = 0x00
	IDChatMessageOut      int32 = 0x02
	IDClientStatus        int32 = 0x03
	IDClickWindow         int32 = 0x07
	IDKeepAliveOut        int32 = 0x0B
	IDPlayerPosition      int32 = 0x0C
	IDPlayerPosRotation   int32 = 0x0D
	IDPlayerLook          int32 = 0x0E
	IDEntityActionOut     int32 = 0x15
	IDHeldItemChangeOut   int32 = 0x1A
	IDUseEntityOut        int32 = 0x0A
	IDPlayerDigOut        int32 = 0x13
	IDArmAnimationOut     int32 = 0x1D
	IDPlayerBlockPlaceOut int32 = 0x1F
	IDUseItemOut          int32 = 0x20
)
