// server/server.go
package server

import (
	"encoding/json"
	"net/http"
	"net/rpc"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/monsterhunt/gameserver/broadcast"
	"github.com/monsterhunt/gameserver/game"
	"github.com/monsterhunt/gameserver/logger"
	"github.com/monsterhunt/gameserver/monitor"
	"github.com/monsterhunt/gameserver/network"
	"github.com/monsterhunt/gameserver/persistence"
	gameserver_rpc "github.com/monsterhunt/gameserver/rpc"
	"github.com/monsterhunt/gameserver/services"
	"github.com/monsterhunt/gameserver/session"
	"github.com/monsterhunt/gameserver/timer"
)

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	roomManager    *game.Manager
	sessionManager *session.Manager
	broadcaster    broadcast.Broadcaster
	timers         *timer.Manager
	store          persistence.Store
	rpcServer      *gameserver_rpc.Server
	shutdownChan   chan struct{}
}

func NewGameServer(addr, rpcAddr string, store persistence.Store, inboxSize int) *GameServer {
	s := &GameServer{
		addr:           addr,
		sessionManager: session.NewManager(),
		timers:         timer.NewManager(),
		store:          store,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.sessionManager)

	var stats *services.StatsService
	if store != nil {
		stats = services.NewStatsService(store)
	}
	s.roomManager = game.NewManager(s.broadcaster, s.timers, store, stats, inboxSize)

	rpcServer, err := gameserver_rpc.NewServer(rpcAddr)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	if store != nil {
		rpc.Register(gameserver_rpc.NewAdminService(store, s.roomManager, s.sessionManager))
	}

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.routes())
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
	s.roomManager.Close()
	s.timers.Close()
}

func (s *GameServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/rooms", s.handleListRooms)
		r.Get("/matches/{roomID}", s.handleGetMatch)
		r.Get("/users/{username}/stats", s.handleUserStats)
	})

	return r
}

func (s *GameServer) handleListRooms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.roomManager.PublicRooms())
}

func (s *GameServer) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "persistence disabled", http.StatusServiceUnavailable)
		return
	}
	match, err := s.store.GetMatch(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		if err == persistence.ErrRecordNotFound {
			http.Error(w, "match not found", http.StatusNotFound)
			return
		}
		logger.Log.Errorw("get match failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (s *GameServer) handleUserStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "persistence disabled", http.StatusServiceUnavailable)
		return
	}
	stats, err := s.store.GetUserStats(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if err == persistence.ErrRecordNotFound {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		logger.Log.Errorw("get user stats failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	monitor.OnlinePlayers.Inc()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.roomManager.HandleDisconnect(sess)
		s.sessionManager.Remove(sess.GetID())
		monitor.OnlinePlayers.Dec()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

// Client request payloads.

type createRoomReq struct {
	PlayerName string `json:"playerName"`
	GameMode   string `json:"gameMode"`
	UserID     string `json:"userId"`
	Private    bool   `json:"private"`
	Password   string `json:"password"`
	SceneType  string `json:"sceneType"`
}

type joinRoomReq struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
	UserID     string `json:"userId"`
	Password   string `json:"password"`
}

type moveReq struct {
	LocationID int `json:"locationId"`
}

type targetReq struct {
	TargetID string `json:"targetId"`
}

type chatReq struct {
	Message string `json:"message"`
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	start := time.Now()
	monitor.MessagesReceived.Inc()
	defer func() {
		monitor.MessageLatency.Observe(time.Since(start).Seconds())
	}()

	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.LastActive = time.Now()

	case network.MsgTypeCreateRoom:
		var req createRoomReq
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		// An empty room id on join doubles as quick matchmaking, so
		// explicit creation always honors the request as given.
		s.roomManager.HandleCreateRoom(sess, req.PlayerName, req.GameMode, req.UserID, req.Private, req.Password, req.SceneType)

	case network.MsgTypeJoinRoom:
		var req joinRoomReq
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		if req.RoomID == "" {
			s.roomManager.FindOrCreateRoom(sess, req.PlayerName, game.ModeHuntAndDiscuss, req.UserID)
			return
		}
		s.roomManager.HandleJoinRoom(sess, req.RoomID, req.PlayerName, req.UserID, req.Password)

	case network.MsgTypeLeaveRoom:
		s.roomManager.HandleLeaveRoom(sess)

	case network.MsgTypeStartGame:
		s.roomManager.HandleStartGame(sess)

	case network.MsgTypeMove:
		var req moveReq
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		s.roomManager.HandleMove(sess, req.LocationID)

	case network.MsgTypeMonsterAttack:
		var req targetReq
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		s.roomManager.HandleMonsterAttack(sess, req.TargetID)

	case network.MsgTypeSheriffShoot:
		var req targetReq
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		s.roomManager.HandleSheriffShoot(sess, req.TargetID)

	case network.MsgTypeDoctorRevive:
		var req targetReq
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		s.roomManager.HandleDoctorRevive(sess, req.TargetID)

	case network.MsgTypeCastVote:
		var req targetReq
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		s.roomManager.HandleCastVote(sess, req.TargetID)

	case network.MsgTypeChat:
		var req chatReq
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			return
		}
		s.roomManager.HandleChat(sess, req.Message)

	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}
}
