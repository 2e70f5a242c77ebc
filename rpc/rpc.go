package rpc

import (
	"context"
	"net"
	"net/rpc"
	"time"

	"github.com/monsterhunt/gameserver/logger"
	"github.com/monsterhunt/gameserver/models"
	"github.com/monsterhunt/gameserver/persistence"
)

// Server manages the RPC listener used by admin tooling.
type Server struct {
	listener net.Listener
	address  string
}

func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// RoomCounter is what the admin service needs from the room registry.
type RoomCounter interface {
	RoomCount() int
}

// SessionCounter is what it needs from the session layer.
type SessionCounter interface {
	Count() int
}

// AdminService exposes operational queries over net/rpc. Methods follow
// the net/rpc signature rules: exported, pointer reply, error return.
type AdminService struct {
	store    persistence.Store
	rooms    RoomCounter
	sessions SessionCounter
}

func NewAdminService(store persistence.Store, rooms RoomCounter, sessions SessionCounter) *AdminService {
	return &AdminService{store: store, rooms: rooms, sessions: sessions}
}

type UserStatsArgs struct {
	Username string
}

type UserStatsReply struct {
	Stats *models.UserStats
}

func (a *AdminService) GetUserStats(args *UserStatsArgs, reply *UserStatsReply) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := a.store.GetUserStats(ctx, args.Username)
	if err != nil {
		return err
	}
	reply.Stats = stats
	return nil
}

type ServerStatsArgs struct{}

type ServerStatsReply struct {
	Rooms    int
	Sessions int
}

func (a *AdminService) GetServerStats(_ *ServerStatsArgs, reply *ServerStatsReply) error {
	reply.Rooms = a.rooms.RoomCount()
	reply.Sessions = a.sessions.Count()
	return nil
}
