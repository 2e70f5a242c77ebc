package game

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/monsterhunt/gameserver/catalog"
	"github.com/monsterhunt/gameserver/models"
	"github.com/monsterhunt/gameserver/network"
	"github.com/monsterhunt/gameserver/scene"
	"github.com/monsterhunt/gameserver/session"
	"github.com/monsterhunt/gameserver/timer"
)

// mockConnection records sends so tests can assert on direct replies.
type mockConnection struct {
	mutex sync.Mutex
	sent  []uint16
}

func (m *mockConnection) Send(msgID uint16, data []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sent = append(m.sent, msgID)
	return nil
}

func (m *mockConnection) Close() error                         { return nil }
func (m *mockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *mockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *mockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func (m *mockConnection) count(msgID uint16) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	n := 0
	for _, id := range m.sent {
		if id == msgID {
			n++
		}
	}
	return n
}

// mockStore is an in-memory stand-in for the persistence layer.
type mockStore struct {
	unlocked []catalog.MonsterType
	err      error
}

func (s *mockStore) LookupUnlockedMonsters(ctx context.Context, username string) ([]catalog.MonsterType, error) {
	return s.unlocked, s.err
}

func (s *mockStore) CreateMatch(ctx context.Context, roomID, mode string, private bool, userID string) error {
	return nil
}
func (s *mockStore) AddMatchParticipant(ctx context.Context, roomID, userID string) error { return nil }
func (s *mockStore) MarkMatchStarted(ctx context.Context, roomID string) error            { return nil }
func (s *mockStore) GetMatch(ctx context.Context, roomID string) (*models.Match, error) {
	return nil, nil
}
func (s *mockStore) GetUserStats(ctx context.Context, username string) (*models.UserStats, error) {
	return nil, nil
}
func (s *mockStore) Transaction(fn func(tx *gorm.DB) error) error { return nil }
func (s *mockStore) Close() error                                 { return nil }

func newTestManager(t *testing.T) (*Manager, *session.Manager) {
	t.Helper()
	sm := session.NewManager()
	tm := timer.NewManager()
	t.Cleanup(tm.Close)
	return NewManager(&recordingBroadcaster{}, tm, nil, nil, 64), sm
}

func newTestSession(sm *session.Manager, id string) (*session.Session, *mockConnection) {
	conn := &mockConnection{}
	sess := session.NewSession(id, conn)
	sm.Add(sess)
	return sess, conn
}

func TestManagerCreateRoomRegisters(t *testing.T) {
	m, sm := newTestManager(t)
	sess, conn := newTestSession(sm, "s1")

	m.HandleCreateRoom(sess, "anna", ModeHuntAndDiscuss, "", false, "", string(scene.Village))

	require.Equal(t, 1, m.RoomCount())
	assert.NotEmpty(t, sess.GetRoom())
	assert.Equal(t, 1, conn.count(network.MsgTypeRoomCreated))

	rooms := m.PublicRooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, ModeHuntAndDiscuss, rooms[0].Mode)
	assert.False(t, rooms[0].Private)
}

func TestManagerCreateRoomWhileInRoomRejected(t *testing.T) {
	m, sm := newTestManager(t)
	sess, conn := newTestSession(sm, "s1")

	m.HandleCreateRoom(sess, "anna", ModeHuntAndDiscuss, "", false, "", "")
	m.HandleCreateRoom(sess, "anna", ModeHuntAndDiscuss, "", false, "", "")

	assert.Equal(t, 1, m.RoomCount())
	assert.Equal(t, 1, conn.count(network.MsgTypeRoomError))
}

func TestManagerJoinUnknownRoom(t *testing.T) {
	m, sm := newTestManager(t)
	sess, conn := newTestSession(sm, "s1")

	m.HandleJoinRoom(sess, "NOPE42", "ben", "", "")

	assert.Empty(t, sess.GetRoom())
	assert.Equal(t, 1, conn.count(network.MsgTypeRoomError))
}

func TestManagerJoinWrongPassword(t *testing.T) {
	m, sm := newTestManager(t)
	host, _ := newTestSession(sm, "s1")
	m.HandleCreateRoom(host, "anna", ModeHuntAndDiscuss, "", true, "secret", "")
	roomID := host.GetRoom()
	require.NotEmpty(t, roomID)

	guest, conn := newTestSession(sm, "s2")
	m.HandleJoinRoom(guest, roomID, "ben", "", "wrong")
	assert.Empty(t, guest.GetRoom())
	assert.Equal(t, 1, conn.count(network.MsgTypeRoomError))

	m.HandleJoinRoom(guest, roomID, "ben", "", "secret")
	assert.Equal(t, roomID, guest.GetRoom())
}

func TestManagerPrivateRoomSkippedByMatchmaking(t *testing.T) {
	m, sm := newTestManager(t)
	host, _ := newTestSession(sm, "s1")
	m.HandleCreateRoom(host, "anna", ModeHuntAndDiscuss, "", true, "secret", "")

	guest, _ := newTestSession(sm, "s2")
	m.FindOrCreateRoom(guest, "ben", ModeHuntAndDiscuss, "")

	require.NotEmpty(t, guest.GetRoom())
	assert.NotEqual(t, host.GetRoom(), guest.GetRoom())
	assert.Equal(t, 2, m.RoomCount())
}

func TestManagerMatchmakingJoinsOpenRoom(t *testing.T) {
	m, sm := newTestManager(t)
	host, _ := newTestSession(sm, "s1")
	m.HandleCreateRoom(host, "anna", ModeHuntFury, "", false, "", "")

	guest, _ := newTestSession(sm, "s2")
	m.FindOrCreateRoom(guest, "ben", ModeHuntFury, "")

	assert.Equal(t, host.GetRoom(), guest.GetRoom())
	assert.Equal(t, 1, m.RoomCount())
}

func TestManagerLeaveClearsMapping(t *testing.T) {
	m, sm := newTestManager(t)
	sess, _ := newTestSession(sm, "s1")
	m.HandleCreateRoom(sess, "anna", ModeHuntAndDiscuss, "", false, "", "")
	require.NotEmpty(t, sess.GetRoom())

	m.HandleLeaveRoom(sess)

	assert.Empty(t, sess.GetRoom())
	_, ok := m.roomOf(sess)
	assert.False(t, ok)
}

func TestMonsterTypeResolvedFromUnlocks(t *testing.T) {
	b := &recordingBroadcaster{}
	tm := timer.NewManager()
	t.Cleanup(tm.Close)

	r, err := NewRoom(RoomOptions{
		ID:          "TEST04",
		ModeName:    ModeHuntAndDiscuss,
		SceneType:   scene.Village,
		Broadcaster: b,
		Timers:      tm,
		Store:       &mockStore{unlocked: []catalog.MonsterType{catalog.Vampire}},
	})
	require.NoError(t, err)

	for _, id := range []string{"p1", "p2", "p3"} {
		r.handle(joinMsg{PlayerID: id, Name: id})
	}
	r.handle(startMsg{PlayerID: "p1"})

	require.True(t, r.Started())
	assert.Equal(t, catalog.Vampire, r.monsterType)
	assert.Equal(t, "Vampire", r.monsterCfg.Name)
}

func TestMonsterTypeFallsBackOnLookupError(t *testing.T) {
	b := &recordingBroadcaster{}
	tm := timer.NewManager()
	t.Cleanup(tm.Close)

	r, err := NewRoom(RoomOptions{
		ID:          "TEST05",
		ModeName:    ModeHuntAndDiscuss,
		SceneType:   scene.Village,
		Broadcaster: b,
		Timers:      tm,
		Store:       &mockStore{err: context.DeadlineExceeded},
	})
	require.NoError(t, err)

	for _, id := range []string{"p1", "p2", "p3"} {
		r.handle(joinMsg{PlayerID: id, Name: id})
	}
	r.handle(startMsg{PlayerID: "p1"})

	assert.Equal(t, catalog.DefaultMonster(), r.monsterType)
}
