package session

import (
	"net"
	"testing"
	"time"

	"github.com/monsterhunt/gameserver/network"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct{}

func (m *MockConnection) Send(msgID uint16, data []byte) error { return nil }
func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager should not return nil")
	}
	if manager.sessions == nil {
		t.Fatal("NewManager should initialize the sessions map")
	}
}

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sessionID := "test_session_1"
	sess := NewSession(sessionID, &MockConnection{})

	manager.Add(sess)
	if manager.Count() != 1 {
		t.Fatalf("Expected session count to be 1, got %d", manager.Count())
	}

	retrievedSess, exists := manager.Get(sessionID)
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if retrievedSess != sess {
		t.Fatal("Get should return the same session instance")
	}

	manager.Remove(sessionID)
	if manager.Count() != 0 {
		t.Fatalf("Expected session count to be 0 after removal, got %d", manager.Count())
	}

	_, exists = manager.Get(sessionID)
	if exists {
		t.Fatal("Get should not find the removed session")
	}
}

func TestSession_SetAndGetRoom(t *testing.T) {
	sess := NewSession("s1", &MockConnection{})

	if sess.GetRoom() != "" {
		t.Fatal("New session should not be in a room")
	}

	sess.SetRoom("ROOM01")
	if sess.GetRoom() != "ROOM01" {
		t.Errorf("Expected room ROOM01, got %s", sess.GetRoom())
	}

	sess.SetRoom("")
	if sess.GetRoom() != "" {
		t.Error("Clearing the room should leave the session roomless")
	}
}

func TestManager_GetByRoomID(t *testing.T) {
	manager := NewManager()

	s1 := NewSession("s1", &MockConnection{})
	s2 := NewSession("s2", &MockConnection{})
	s3 := NewSession("s3", &MockConnection{})
	manager.Add(s1)
	manager.Add(s2)
	manager.Add(s3)

	s1.SetRoom("ROOM01")
	s2.SetRoom("ROOM01")
	s3.SetRoom("ROOM02")

	members := manager.GetByRoomID("ROOM01")
	if len(members) != 2 {
		t.Fatalf("Expected 2 sessions in ROOM01, got %d", len(members))
	}

	if len(manager.GetByRoomID("ROOM03")) != 0 {
		t.Error("Unknown room should have no sessions")
	}
}
