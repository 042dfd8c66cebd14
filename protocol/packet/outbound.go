package packet

// Handshake begins a connection and selects the next state (1=status,
// 2=login).
type Handshake struct {
	ProtocolVersion int32  `mc:"varint"`
	ServerAddress   string `mc:"string"`
	ServerPort      uint16 `mc:"u16"`
	NextState       int32  `mc:"varint"`
}

func (Handshake) ID() int32 { return IDHandshake }

// LoginStart begins the login sequence with the client's username.
type LoginStart struct {
	Username string `mc:"string"`
}

func (LoginStart) ID() int32 { return IDLoginStart }

// EncryptionResponse answers an EncryptionRequest with the RSA-encrypted
// shared secret and verify token.
type EncryptionResponse struct {
	SharedSecret []byte `mc:"bytearray"`
	VerifyToken  []byte `mc:"bytearray"`
}

func (EncryptionResponse) ID() int32 { return IDEncryptionResponse }

// TeleportConfirm acknowledges a server-initiated PlayerPositionAndLook.
type TeleportConfirm struct {
	TeleportID int32 `mc:"varint"`
}

func (TeleportConfirm) ID() int32 { return IDTeleportConfirm }

// KeepAlive is the serverbound echo of a KeepAliveIn; both directions
// share the same shape, and each has its own type and ID.
type KeepAlive struct {
	ID_ int64 `mc:"i64"`
}

func (KeepAlive) ID() int32 { return IDKeepAliveOut }

// PlayerPosition reports the agent's absolute x/y/z and on-ground flag.
type PlayerPosition struct {
	X, Y, Z  float64 `mc:"f64"`
	OnGround bool    `mc:"bool"`
}

func (PlayerPosition) ID() int32 { return IDPlayerPosition }

// PlayerLook reports yaw/pitch only.
type PlayerLook struct {
	Yaw, Pitch float32 `mc:"f32"`
	OnGround   bool    `mc:"bool"`
}

func (PlayerLook) ID() int32 { return IDPlayerLook }

// PlayerPositionAndRotation reports both position and rotation in one
// packet, used by the physics layer after a tick that moved and turned the
// agent.
type PlayerPositionAndRotation struct {
	X, Y, Z    float64 `mc:"f64"`
	Yaw, Pitch float32 `mc:"f32"`
	OnGround   bool    `mc:"bool"`
}

func (PlayerPositionAndRotation) ID() int32 { return IDPlayerPosRotation }

// ChatMessageOut sends a chat line (command or message) to the server.
type ChatMessageOut struct {
	Message string `mc:"string"`
}

func (ChatMessageOut) ID() int32 { return IDChatMessageOut }

// ClickWindow performs an inventory click.
type ClickWindow struct {
	WindowID    uint8  `mc:"u8"`
	Slot        int16  `mc:"i16"`
	Button      int8   `mc:"i8"`
	ActionNum   int16  `mc:"i16"`
	Mode        int32  `mc:"varint"`
	ClickedItem []byte `mc:"rest"`
}

func (ClickWindow) ID() int32 { return IDClickWindow }

// PlaceBlock is emitted when a physics tick commits a block placement
// (requested by a task such as Bridge or PillarAndMine): target block
// position, the face it is placed against, the hand holding the item, and
// the cursor position within that face.
type PlaceBlock struct {
	Location                        int64 `mc:"position"`
	Face                            int32 `mc:"varint"`
	Hand                            int32 `mc:"varint"`
	CursorX, CursorY, CursorZ       uint8 `mc:"u8"`
}

func (PlaceBlock) ID() int32 { return IDPlayerBlockPlaceOut }

// HeldItemChange switches the agent's selected hotbar slot (0-8).
type HeldItemChange struct {
	Slot int16 `mc:"i16"`
}

func (HeldItemChange) ID() int32 { return IDHeldItemChangeOut }

// ArmAnimation swings the main or off hand.
type ArmAnimation struct {
	Hand int32 `mc:"varint"`
}

func (ArmAnimation) ID() int32 { return IDArmAnimationOut }

// EntityAction performs a client-controlled entity state change (sneak,
// sprint, leave-bed, jump-with-horse etc.)
type EntityAction struct {
	EntityID  int32 `mc:"varint"`
	ActionID  int32 `mc:"varint"`
	JumpBoost int32 `mc:"varint"`
}

func (EntityAction) ID() int32 { return IDEntityActionOut }

// PlayerDig is used both to start/finish breaking a block and to drop items.
type PlayerDig struct {
	Status   int32 `mc:"varint"`
	Location int64 `mc:"position"`
	Face     int8  `mc:"i8"`
}

func (PlayerDig) ID() int32 { return IDPlayerDigOut }

// ClientStatus signals respawn/stats requests.
type ClientStatus struct {
	ActionID int32 `mc:"varint"`
}

func (ClientStatus) ID() int32 { return IDClientStatus }

// UseItem activates the currently held item (e.g. placing a water bucket).
type UseItem struct {
	Hand int32 `mc:"varint"`
}

func (UseItem) ID() int32 { return IDUseItemOut }

// InteractEntity attacks (type=1) or interacts with (type=0) an entity.
type InteractEntity struct {
	EntityID int32  `mc:"varint"`
	Type     int32  `mc:"varint"`
	Sneaking bool   `mc:"bool"`
}

func (InteractEntity) ID() int32 { return IDUseEntityOut }
