// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/monsterhunt/gameserver/session"
)

var ErrSessionNotFound = errors.New("session not found")

// Broadcaster fans events out to room members. Rooms hold player ids only;
// the session layer resolves them to live connections.
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgID uint16, data []byte) error
	SendToSession(sessionID string, msgID uint16, data []byte) error
}

type RoomBroadcaster struct {
	sessionManager *session.Manager
}

func NewRoomBroadcaster(sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{sessionManager: sessionManager}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomID string, msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.GetByRoomID(roomID) {
		if err := s.Send(msgID, data); err != nil {
			// Dead connections are reaped by the read loop; keep going.
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) SendToSession(sessionID string, msgID uint16, data []byte) error {
	s, exists := b.sessionManager.Get(sessionID)
	if !exists {
		return ErrSessionNotFound
	}
	return s.Send(msgID, data)
}
