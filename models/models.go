// models/models.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the durable player record. Unlock columns gate which monster
// types and scenes a player can get; match results accumulate into the
// xp/wins columns.
type User struct {
	gorm.Model
	Username    string `gorm:"uniqueIndex;not null"`
	XP          int    `gorm:"default:0"`
	HuntTokens  int64  `gorm:"default:0"`
	GamesPlayed int    `gorm:"default:0"`

	WinsVillager int `gorm:"default:0"`
	WinsDoctor   int `gorm:"default:0"`
	WinsSheriff  int `gorm:"default:0"`
	WinsWerewolf int `gorm:"default:0"`
	WinsVampire  int `gorm:"default:0"`

	UnlockedWerewolf bool `gorm:"default:true"`
	UnlockedVampire  bool `gorm:"default:false"`

	SceneVillage bool `gorm:"default:true"`
	SceneCastle  bool `gorm:"default:false"`
}

// Match status values.
const (
	MatchWaiting    = "waiting"
	MatchInProgress = "in_progress"
	MatchCompleted  = "completed"
)

type Match struct {
	gorm.Model
	RoomID       string   `gorm:"uniqueIndex;not null"`
	Mode         string   `gorm:"not null"`
	Status       string   `gorm:"not null"`
	IsPrivate    bool     `gorm:"default:false"`
	Participants []string `gorm:"serializer:json;type:jsonb"`
	WinnerSide   string
	WinnerUserID string
	StartedAt    *time.Time
	CompletedAt  *time.Time
}

// UserStats is the read model served over the admin RPC and HTTP API.
type UserStats struct {
	Username    string         `json:"username"`
	XP          int            `json:"xp"`
	GamesPlayed int            `json:"gamesPlayed"`
	Wins        map[string]int `json:"wins"`
}
