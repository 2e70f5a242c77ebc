// game/manager.go
package game

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/monsterhunt/gameserver/broadcast"
	"github.com/monsterhunt/gameserver/catalog"
	"github.com/monsterhunt/gameserver/logger"
	"github.com/monsterhunt/gameserver/monitor"
	"github.com/monsterhunt/gameserver/network"
	"github.com/monsterhunt/gameserver/persistence"
	"github.com/monsterhunt/gameserver/scene"
	"github.com/monsterhunt/gameserver/services"
	"github.com/monsterhunt/gameserver/session"
	"github.com/monsterhunt/gameserver/timer"
)

// Manager is the room registry. It owns room lookup and membership maps;
// everything inside a room happens on that room's goroutine.
type Manager struct {
	rooms       map[string]*Room
	playerRooms map[string]string            // session id -> room id
	passwords   map[string]string            // room id -> password, private rooms only
	userIDs     map[string]map[string]string // room id -> session id -> durable user id

	mutex sync.RWMutex

	broadcaster broadcast.Broadcaster
	timers      *timer.Manager
	store       persistence.Store
	stats       *services.StatsService
	inboxSize   int
}

func NewManager(b broadcast.Broadcaster, t *timer.Manager, store persistence.Store, stats *services.StatsService, inboxSize int) *Manager {
	return &Manager{
		rooms:       make(map[string]*Room),
		playerRooms: make(map[string]string),
		passwords:   make(map[string]string),
		userIDs:     make(map[string]map[string]string),
		broadcaster: b,
		timers:      t,
		store:       store,
		stats:       stats,
		inboxSize:   inboxSize,
	}
}

// RoomInfo is the public listing entry served over the HTTP API.
type RoomInfo struct {
	ID          string `json:"id"`
	Mode        string `json:"mode"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	Started     bool   `json:"started"`
	Private     bool   `json:"private"`
}

func newRoomID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

func (m *Manager) HandleCreateRoom(sess *session.Session, playerName, modeName, userID string, private bool, password, sceneType string) {
	if sess.GetRoom() != "" {
		m.sendError(sess, "already in a room")
		return
	}
	if modeName != ModeHuntAndDiscuss && modeName != ModeHuntFury {
		modeName = ModeHuntAndDiscuss
	}
	st := scene.Type(sceneType)
	if _, ok := scene.Get(st); !ok {
		st = scene.Random()
	}

	roomID := newRoomID()
	r, err := NewRoom(RoomOptions{
		ID:          roomID,
		ModeName:    modeName,
		SceneType:   st,
		InboxSize:   m.inboxSize,
		Broadcaster: m.broadcaster,
		Timers:      m.timers,
		Store:       m.store,
		OnStart:     m.onRoomStart,
		OnEnd:       m.onRoomEnd,
		OnEmpty:     m.removeRoom,
	})
	if err != nil {
		m.sendError(sess, "could not create room")
		return
	}

	m.mutex.Lock()
	m.rooms[roomID] = r
	m.playerRooms[sess.ID] = roomID
	m.userIDs[roomID] = make(map[string]string)
	if userID != "" {
		m.userIDs[roomID][sess.ID] = userID
	}
	if private && password != "" {
		m.passwords[roomID] = password
	}
	m.mutex.Unlock()

	sess.PlayerName = playerName
	sess.UserID = userID
	sess.SetRoom(roomID)
	r.Start()

	monitor.RoomsCreated.Inc()
	monitor.ActiveRooms.Inc()
	logger.Log.Infow("room created", "room", roomID, "mode", modeName, "scene", st, "private", private)

	m.sendJSON(sess, network.MsgTypeRoomCreated, roomCreatedPayload{RoomID: roomID})
	r.post(joinMsg{PlayerID: sess.ID, Name: playerName})

	if m.store != nil {
		go m.recordMatchCreated(roomID, modeName, private, userID)
	}
}

func (m *Manager) recordMatchCreated(roomID, modeName string, private bool, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.store.CreateMatch(ctx, roomID, modeName, private, userID); err != nil {
		logger.Log.Warnw("persist match create failed", "room", roomID, "error", err)
		return
	}
	if userID != "" {
		if err := m.store.AddMatchParticipant(ctx, roomID, userID); err != nil {
			logger.Log.Warnw("persist match participant failed", "room", roomID, "error", err)
		}
	}
}

func (m *Manager) HandleJoinRoom(sess *session.Session, roomID, playerName, userID, password string) {
	if sess.GetRoom() != "" {
		m.sendError(sess, "already in a room")
		return
	}

	m.mutex.Lock()
	r, ok := m.rooms[roomID]
	if !ok {
		m.mutex.Unlock()
		m.sendError(sess, "room not found")
		return
	}
	if pw, private := m.passwords[roomID]; private && pw != password {
		m.mutex.Unlock()
		m.sendError(sess, "wrong password")
		return
	}
	if r.Started() {
		m.mutex.Unlock()
		m.sendError(sess, "game already started")
		return
	}
	if r.PlayerCount() >= MaxPlayers {
		m.mutex.Unlock()
		m.sendError(sess, "room is full")
		return
	}
	m.playerRooms[sess.ID] = roomID
	if userID != "" {
		m.userIDs[roomID][sess.ID] = userID
	}
	m.mutex.Unlock()

	sess.PlayerName = playerName
	sess.UserID = userID
	sess.SetRoom(roomID)
	r.post(joinMsg{PlayerID: sess.ID, Name: playerName})

	if m.store != nil && userID != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := m.store.AddMatchParticipant(ctx, roomID, userID); err != nil {
				logger.Log.Warnw("persist match participant failed", "room", roomID, "error", err)
			}
		}()
	}
}

// FindOrCreateRoom is quick matchmaking: joins the first open public room
// playing the requested mode, or creates one on a random scene.
func (m *Manager) FindOrCreateRoom(sess *session.Session, playerName, modeName, userID string) {
	m.mutex.RLock()
	var found string
	for id, r := range m.rooms {
		if _, private := m.passwords[id]; private {
			continue
		}
		if r.ModeName() == modeName && !r.Started() && r.PlayerCount() < MaxPlayers {
			found = id
			break
		}
	}
	m.mutex.RUnlock()

	if found != "" {
		m.HandleJoinRoom(sess, found, playerName, userID, "")
		return
	}
	m.HandleCreateRoom(sess, playerName, modeName, userID, false, "", "")
}

func (m *Manager) HandleLeaveRoom(sess *session.Session) {
	r, ok := m.roomOf(sess)
	if !ok {
		return
	}
	m.mutex.Lock()
	delete(m.playerRooms, sess.ID)
	m.mutex.Unlock()

	r.post(leaveMsg{PlayerID: sess.ID})
	sess.SetRoom("")
}

// HandleDisconnect is the connection teardown path. Same as an explicit
// leave; a dropped player in a running match dies in place.
func (m *Manager) HandleDisconnect(sess *session.Session) {
	m.HandleLeaveRoom(sess)
}

func (m *Manager) HandleStartGame(sess *session.Session) {
	if r, ok := m.roomOf(sess); ok {
		r.post(startMsg{PlayerID: sess.ID})
	}
}

func (m *Manager) HandleMove(sess *session.Session, locationID int) {
	if r, ok := m.roomOf(sess); ok {
		r.post(moveMsg{PlayerID: sess.ID, LocationID: locationID})
	}
}

func (m *Manager) HandleMonsterAttack(sess *session.Session, targetID string) {
	if r, ok := m.roomOf(sess); ok {
		r.post(attackMsg{PlayerID: sess.ID, TargetID: targetID})
	}
}

func (m *Manager) HandleSheriffShoot(sess *session.Session, targetID string) {
	if r, ok := m.roomOf(sess); ok {
		r.post(shootMsg{PlayerID: sess.ID, TargetID: targetID})
	}
}

func (m *Manager) HandleDoctorRevive(sess *session.Session, targetID string) {
	if r, ok := m.roomOf(sess); ok {
		r.post(reviveMsg{PlayerID: sess.ID, TargetID: targetID})
	}
}

func (m *Manager) HandleCastVote(sess *session.Session, targetID string) {
	if r, ok := m.roomOf(sess); ok {
		r.post(voteMsg{PlayerID: sess.ID, TargetID: targetID})
	}
}

func (m *Manager) HandleChat(sess *session.Session, message string) {
	if r, ok := m.roomOf(sess); ok {
		r.post(chatMsg{PlayerID: sess.ID, Message: message})
	}
}

func (m *Manager) roomOf(sess *session.Session) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	roomID, ok := m.playerRooms[sess.ID]
	if !ok {
		return nil, false
	}
	r, ok := m.rooms[roomID]
	return r, ok
}

// PublicRooms lists joinable and running rooms for the HTTP API.
func (m *Manager) PublicRooms() []RoomInfo {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	infos := make([]RoomInfo, 0, len(m.rooms))
	for id, r := range m.rooms {
		_, private := m.passwords[id]
		infos = append(infos, RoomInfo{
			ID:          id,
			Mode:        r.ModeName(),
			PlayerCount: r.PlayerCount(),
			MaxPlayers:  MaxPlayers,
			Started:     r.Started(),
			Private:     private,
		})
	}
	return infos
}

func (m *Manager) RoomCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

// Close tears down every room. Used on server shutdown.
func (m *Manager) Close() {
	m.mutex.Lock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mutex.Unlock()

	for _, r := range rooms {
		r.post(shutdownMsg{})
	}
}

func (m *Manager) onRoomStart(roomID string) {
	monitor.MatchesStarted.Inc()
	if m.store == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.store.MarkMatchStarted(ctx, roomID); err != nil {
			logger.Log.Warnw("persist match start failed", "room", roomID, "error", err)
		}
	}()
}

// onRoomEnd runs on the room goroutine at the moment the match finishes,
// while the player records are still intact.
func (m *Manager) onRoomEnd(r *Room, winner Winner) {
	monitor.MatchesEnded.WithLabelValues(string(winner)).Inc()

	if m.stats == nil {
		return
	}

	m.mutex.RLock()
	ids := m.userIDs[r.ID]
	resolved := make(map[string]string, len(ids))
	for sessID, userID := range ids {
		resolved[sessID] = userID
	}
	m.mutex.RUnlock()

	var participants []services.Participant
	for id, p := range r.state.Players {
		userID, ok := resolved[id]
		if !ok {
			continue
		}
		part := services.Participant{
			UserID: userID,
			Role:   p.Role,
			Alive:  p.Alive,
		}
		if p.Role == catalog.RoleMonster {
			part.Monster = r.monsterType
		}
		participants = append(participants, part)
	}
	if len(participants) > 0 {
		go m.stats.RecordMatchEnd(r.ID, string(winner), participants)
	}
}

func (m *Manager) removeRoom(roomID string) {
	m.mutex.Lock()
	delete(m.rooms, roomID)
	delete(m.passwords, roomID)
	delete(m.userIDs, roomID)
	for sessID, id := range m.playerRooms {
		if id == roomID {
			delete(m.playerRooms, sessID)
		}
	}
	m.mutex.Unlock()

	monitor.ActiveRooms.Dec()
	logger.Log.Infow("room removed", "room", roomID)
}

func (m *Manager) sendJSON(sess *session.Session, msgID uint16, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Log.Errorw("marshal payload", "session", sess.ID, "error", err)
		return
	}
	sess.Send(msgID, data)
}

func (m *Manager) sendError(sess *session.Session, msg string) {
	m.sendJSON(sess, network.MsgTypeRoomError, roomErrorPayload{Message: msg})
}
