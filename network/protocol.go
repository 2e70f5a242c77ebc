package network

// Message IDs. 1xx are room lifecycle requests, 2xx in-match actions,
// 3xx server-to-client events.
const (
	MsgTypeHeartbeat = 1

	MsgTypeCreateRoom = 101
	MsgTypeJoinRoom   = 102
	MsgTypeLeaveRoom  = 103
	MsgTypeStartGame  = 104

	MsgTypeMove          = 201
	MsgTypeMonsterAttack = 202
	MsgTypeSheriffShoot  = 203
	MsgTypeDoctorRevive  = 204
	MsgTypeCastVote      = 205
	MsgTypeChat          = 206

	MsgTypeRoomCreated   = 301
	MsgTypeRoomJoined    = 302
	MsgTypeRoomLeft      = 303
	MsgTypeRoomError     = 304
	MsgTypeGameStarted   = 305
	MsgTypePhaseUpdate   = 306
	MsgTypePlayerMoved   = 307
	MsgTypeCombatResult  = 308
	MsgTypePlayerRevived = 309
	MsgTypeVoteUpdate    = 310
	MsgTypeVoteResult    = 311
	MsgTypeGameEnded     = 312
	MsgTypeChatMessage   = 313
	MsgTypeMonsterReplay = 314
	MsgTypeGameEvent     = 315
	MsgTypeGameState     = 316
)
