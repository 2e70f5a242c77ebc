// persistence/store.go
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/monsterhunt/gameserver/catalog"
	"github.com/monsterhunt/gameserver/models"
)

var ErrRecordNotFound = errors.New("record not found")

// Store is the boundary to the durable user/match records. The match
// sessions call it best-effort: reads fall back to defaults, writes are
// fire-and-forget.
type Store interface {
	// LookupUnlockedMonsters returns the monster types the named player has
	// unlocked. Used once per match, at role assignment.
	LookupUnlockedMonsters(ctx context.Context, username string) ([]catalog.MonsterType, error)

	CreateMatch(ctx context.Context, roomID, mode string, private bool, userID string) error
	AddMatchParticipant(ctx context.Context, roomID, userID string) error
	MarkMatchStarted(ctx context.Context, roomID string) error
	GetMatch(ctx context.Context, roomID string) (*models.Match, error)

	GetUserStats(ctx context.Context, username string) (*models.UserStats, error)

	Transaction(fn func(tx *gorm.DB) error) error
	Close() error
}
