// game/state.go
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/monsterhunt/gameserver/catalog"
	"github.com/monsterhunt/gameserver/scene"
)

type Phase string

const (
	PhaseLobby Phase = "lobby"
	PhaseNight Phase = "night"
	PhaseDay   Phase = "day"
	PhaseEnded Phase = "ended"
)

type Winner string

const (
	WinnerVillagers Winner = "villagers"
	WinnerMonster   Winner = "monster"
)

// Player is one match member. Mutated only inside the owning room's loop.
type Player struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Role       catalog.Role `json:"role"`
	Alive      bool         `json:"isAlive"`
	LocationID int          `json:"locationId"`
	Health     int          `json:"health"`
	IsHiding   bool         `json:"isHiding"`
	LastAction int64        `json:"lastAction"` // unix ms of last accepted action
}

// MonsterAction is one entry of the per-night action log replayed to
// villagers at dawn.
type MonsterAction struct {
	Timestamp   int64  `json:"timestamp"`
	Action      string `json:"action"` // "move" or "kill"
	LocationID  int    `json:"locationId"`
	TargetID    string `json:"targetId,omitempty"`
	Description string `json:"description"`
}

const (
	CombatMonsterAttack = "monster_attack"
	CombatSheriffShoot  = "sheriff_shoot"
)

type CombatResult struct {
	Attacker string `json:"attacker"`
	Target   string `json:"target"`
	Damage   int    `json:"damage"`
	Killed   bool   `json:"killed"`
	Kind     string `json:"type"`
}

const (
	EventGameStart    = "game_start"
	EventMonsterMoved = "monster_moved"
	EventPlayerKilled = "player_killed"
	EventPlayerSaved  = "player_saved"
	EventVoteFailed   = "vote_failed"
)

type Event struct {
	ID              string   `json:"id"`
	Timestamp       int64    `json:"timestamp"`
	Type            string   `json:"type"`
	Message         string   `json:"message"`
	AffectedPlayers []string `json:"affectedPlayers,omitempty"`
	LocationID      int      `json:"locationId,omitempty"`
}

func newEvent(eventType, message string, affected []string, locationID int) Event {
	return Event{
		ID:              fmt.Sprintf("%d-%06d", time.Now().UnixMilli(), rand.Intn(1000000)),
		Timestamp:       time.Now().UnixMilli(),
		Type:            eventType,
		Message:         message,
		AffectedPlayers: affected,
		LocationID:      locationID,
	}
}

// State is the full room snapshot broadcast to clients.
type State struct {
	ID                     string              `json:"id"`
	Phase                  Phase               `json:"phase"`
	Mode                   string              `json:"gameMode"`
	SceneType              scene.Type          `json:"sceneType"`
	MonsterType            catalog.MonsterType `json:"monsterType"`
	SceneGraph             *scene.Scene        `json:"sceneGraph"`
	Players                map[string]*Player  `json:"players"`
	PhaseTimer             int                 `json:"phaseTimer"` // seconds
	PhaseStart             int64               `json:"phaseStartTime"`
	MonsterActions         []MonsterAction     `json:"monsterActions"`
	Votes                  map[string]string   `json:"votes"`
	Winner                 Winner              `json:"winner,omitempty"`
	Background             string              `json:"currentBackground"`
	MonsterMovementEnabled bool                `json:"monsterMovementEnabled"`
	MonsterLastDamagedAt   int64               `json:"monsterLastDamagedAt"`
	HostID                 string              `json:"hostId"`
	HasStarted             bool                `json:"hasStarted"`
}

// Outbound payloads for the small fixed-shape messages.

type roomCreatedPayload struct {
	RoomID string `json:"roomId"`
}

type roomErrorPayload struct {
	Message string `json:"message"`
}

type roomLeftPayload struct {
	PlayerID string `json:"playerId"`
}

type phaseUpdatePayload struct {
	Phase      Phase  `json:"phase"`
	Timer      int    `json:"timer"`
	Background string `json:"background"`
	PhaseStart int64  `json:"phaseStartTime"`
}

type playerMovedPayload struct {
	PlayerID   string `json:"playerId"`
	LocationID int    `json:"locationId"`
}

type playerRevivedPayload struct {
	PlayerID string `json:"playerId"`
}

type voteResultPayload struct {
	EliminatedID *string `json:"eliminatedId"`
}

type gameEndedPayload struct {
	Winner Winner `json:"winner"`
}

type chatPayload struct {
	PlayerID string `json:"playerId"`
	Message  string `json:"message"`
}
