package packet

import "github.com/google/uuid"

// LoginSuccess ends the login sequence; the session has reached Play.
type LoginSuccess struct {
	UUID     string `mc:"string"`
	Username string `mc:"string"`
}

func (LoginSuccess) ID() int32 { return IDLoginSuccess }

// SetCompression instructs both sides to enable zlib compression above the
// given byte threshold.
type SetCompression struct {
	Threshold int32 `mc:"varint"`
}

func (SetCompression) ID() int32 { return IDSetCompression }

// EncryptionRequest asks the client to negotiate encryption (and optionally
// authenticate with the session server).
type EncryptionRequest struct {
	ServerID    string `mc:"string"`
	PublicKey   []byte `mc:"bytearray"`
	VerifyToken []byte `mc:"bytearray"`
}

func (EncryptionRequest) ID() int32 { return IDEncryptionRequest }

// LoginDisconnect is sent instead of LoginSuccess when the server rejects
// the login attempt; Reason is a raw chat-component JSON string.
type LoginDisconnect struct {
	Reason string `mc:"string"`
}

func (LoginDisconnect) ID() int32 { return IDLoginDisconnect }

// DisconnectPlay is sent while in Play state to end the connection.
type DisconnectPlay struct {
	Reason string `mc:"string"`
}

func (DisconnectPlay) ID() int32 { return IDDisconnectPlay }

// JoinGame establishes the agent's entity id, game mode, and dimension.
type JoinGame struct {
	EntityID     int32  `mc:"i32"`
	GameMode     uint8  `mc:"u8"`
	Dimension    int32  `mc:"i32"`
	Difficulty   uint8  `mc:"u8"`
	MaxPlayers   uint8  `mc:"u8"`
	LevelType    string `mc:"string"`
	ReducedDebug bool   `mc:"bool"`
}

func (JoinGame) ID() int32 { return IDJoinGame }

// Respawn signals a dimension change; any in-flight path/follower state must
// be invalidated.
type Respawn struct {
	Dimension  int32  `mc:"i32"`
	Difficulty uint8  `mc:"u8"`
	GameMode   uint8  `mc:"u8"`
	LevelType  string `mc:"string"`
}

func (Respawn) ID() int32 { return IDRespawn }

// PlayerPositionAndLookIn is the server's authoritative position correction;
// the client must reply with TeleportConfirm.
type PlayerPositionAndLookIn struct {
	X, Y, Z    float64 `mc:"f64"`
	Yaw, Pitch float32 `mc:"f32"`
	Flags      int8    `mc:"i8"`
	TeleportID int32   `mc:"varint"`
}

func (PlayerPositionAndLookIn) ID() int32 { return IDPlayerPositionLook }

// KeepAliveIn must be echoed back immediately via an outbound KeepAlive
// carrying the same id.
type KeepAliveIn struct {
	ID_ int64 `mc:"i64"`
}

func (KeepAliveIn) ID() int32 { return IDKeepAliveIn }

// BlockChange updates a single block.
type BlockChange struct {
	Location  int64 `mc:"position"`
	BlockID   int32 `mc:"varint"`
}

func (BlockChange) ID() int32 { return IDBlockChange }

// UpdateHealth reports health/food/saturation.
type UpdateHealth struct {
	Health         float32 `mc:"f32"`
	Food           int32   `mc:"varint"`
	FoodSaturation float32 `mc:"f32"`
}

func (UpdateHealth) ID() int32 { return IDUpdateHealth }

// ChatMessageIn is a server-to-client chat/system message; Message is the
// raw chat-component JSON. Position distinguishes chat/system/hotbar.
type ChatMessageIn struct {
	Message  string `mc:"string"`
	Position int8   `mc:"i8"`
}

func (ChatMessageIn) ID() int32 { return IDChatMessageIn }

// PluginMessageIn is a server-to-client plugin channel message, forwarded
// as opaque bytes since the core does not interpret mod-specific channels.
type PluginMessageIn struct {
	Channel string `mc:"string"`
	Data    []byte `mc:"rest"`
}

func (PluginMessageIn) ID() int32 { return IDPluginMessageIn }

// EntityRelativeMove moves an entity by a delta encoded in 1/4096ths of a
// block (the wire's fixed-point delta format).
type EntityRelativeMove struct {
	EntityID           int32 `mc:"varint"`
	DX, DY, DZ         int16 `mc:"i16"`
	OnGround           bool  `mc:"bool"`
}

func (EntityRelativeMove) ID() int32 { return IDEntityRelativeMove }

// EntityLookAndRelativeMove is EntityRelativeMove plus a new yaw/pitch.
type EntityLookAndRelativeMove struct {
	EntityID   int32 `mc:"varint"`
	DX, DY, DZ int16 `mc:"i16"`
	Yaw, Pitch uint8 `mc:"u8"`
	OnGround   bool  `mc:"bool"`
}

func (EntityLookAndRelativeMove) ID() int32 { return IDEntityLookAndMove }

// EntityTeleport sets an entity's absolute position and rotation.
type EntityTeleport struct {
	EntityID   int32   `mc:"varint"`
	X, Y, Z    float64 `mc:"f64"`
	Yaw, Pitch uint8   `mc:"u8"`
	OnGround   bool    `mc:"bool"`
}

func (EntityTeleport) ID() int32 { return IDEntityTeleport }

// SpawnLivingEntity introduces a non-player entity.
type SpawnLivingEntity struct {
	EntityID       int32     `mc:"varint"`
	EntityUUID     uuid.UUID `mc:"uuid"`
	Type           int32     `mc:"varint"`
	X, Y, Z        float64 `mc:"f64"`
	Yaw, Pitch     uint8   `mc:"u8"`
	HeadPitch      uint8   `mc:"u8"`
	VelX, VelY, VelZ int16 `mc:"i16"`
}

func (SpawnLivingEntity) ID() int32 { return IDSpawnLivingEntity }

// EntityAnimation plays a one-shot animation (swing, hurt, critical hit
// etc.) on an already-known entity.
type EntityAnimation struct {
	EntityID  int32 `mc:"varint"`
	Animation uint8 `mc:"u8"`
}

func (EntityAnimation) ID() int32 { return IDEntityAnimation }

// SpawnPlayer introduces a player entity already present in the roster.
type SpawnPlayer struct {
	EntityID   int32     `mc:"varint"`
	PlayerUUID uuid.UUID `mc:"uuid"`
	X, Y, Z    float64   `mc:"f64"`
	Yaw, Pitch uint8     `mc:"u8"`
}

func (SpawnPlayer) ID() int32 { return IDSpawnPlayer }
