// game/messages.go
package game

// Room messages. Every mutation of room state travels through the
// inbox, including timer expirations, so the loop goroutine is the
// single writer.

type roomMsg interface{ isRoomMsg() }

type joinMsg struct {
	PlayerID string
	Name     string
}

type leaveMsg struct {
	PlayerID string
}

type startMsg struct {
	PlayerID string
}

type moveMsg struct {
	PlayerID   string
	LocationID int
}

type attackMsg struct {
	PlayerID string
	TargetID string
}

type shootMsg struct {
	PlayerID string
	TargetID string
}

type reviveMsg struct {
	PlayerID string
	TargetID string
}

type voteMsg struct {
	PlayerID string
	TargetID string
}

type chatMsg struct {
	PlayerID string
	Message  string
}

// phaseExpiredMsg carries the generation counter at arming time so a
// stale timer firing after a phase change is ignored.
type phaseExpiredMsg struct {
	Phase Phase
	Seq   uint64
}

type enableMonsterMsg struct {
	Seq uint64
}

type nightDelayMsg struct {
	Seq uint64
}

type shutdownMsg struct{}

func (joinMsg) isRoomMsg()          {}
func (leaveMsg) isRoomMsg()         {}
func (startMsg) isRoomMsg()         {}
func (moveMsg) isRoomMsg()          {}
func (attackMsg) isRoomMsg()        {}
func (shootMsg) isRoomMsg()         {}
func (reviveMsg) isRoomMsg()        {}
func (voteMsg) isRoomMsg()          {}
func (chatMsg) isRoomMsg()          {}
func (phaseExpiredMsg) isRoomMsg()  {}
func (enableMonsterMsg) isRoomMsg() {}
func (nightDelayMsg) isRoomMsg()    {}
func (shutdownMsg) isRoomMsg()      {}
