// services/stats_service.go
package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/monsterhunt/gameserver/catalog"
	"github.com/monsterhunt/gameserver/logger"
	"github.com/monsterhunt/gameserver/models"
	"github.com/monsterhunt/gameserver/persistence"
)

// Participant is a match member as seen at game end. UserID is empty for
// guests, which get no attribution.
type Participant struct {
	UserID  string
	Role    catalog.Role
	Monster catalog.MonsterType
	Alive   bool
}

type StatsService struct {
	store persistence.Store
}

func NewStatsService(store persistence.Store) *StatsService {
	return &StatsService{store: store}
}

// RecordMatchEnd commits the outcome of a finished match: games-played for
// everyone, XP and a role win for the winning side, and the match record
// itself. Called after the session is already terminal; failures are logged
// and never retried.
func (s *StatsService) RecordMatchEnd(roomID, winnerSide string, participants []Participant) {
	err := s.store.Transaction(func(tx *gorm.DB) error {
		var winnerUserID string

		for _, part := range participants {
			if part.UserID == "" {
				continue
			}

			var user models.User
			if err := tx.Where("username = ?", part.UserID).First(&user).Error; err != nil {
				logger.Log.Warnf("stats: user %s not found for match %s: %v", part.UserID, roomID, err)
				continue
			}

			user.GamesPlayed++

			if won(winnerSide, part.Role) {
				// Surviving winners get the full award.
				if part.Alive {
					user.XP += 10
				} else {
					user.XP += 5
				}
				addRoleWin(&user, part)
				if winnerUserID == "" {
					winnerUserID = part.UserID
				}
			}

			if err := tx.Save(&user).Error; err != nil {
				return err
			}
		}

		var match models.Match
		if err := tx.Where("room_id = ?", roomID).First(&match).Error; err != nil {
			logger.Log.Warnf("stats: match %s not found: %v", roomID, err)
			return nil
		}

		now := time.Now()
		match.Status = models.MatchCompleted
		match.CompletedAt = &now
		match.WinnerSide = winnerSide
		match.WinnerUserID = winnerUserID
		return tx.Save(&match).Error
	})

	if err != nil {
		logger.Log.Errorf("stats: failed to record match %s end: %v", roomID, err)
	}
}

func won(winnerSide string, role catalog.Role) bool {
	if winnerSide == "villagers" {
		return role == catalog.RoleVillager || role == catalog.RoleDoctor || role == catalog.RoleSheriff
	}
	if winnerSide == "monster" {
		return role == catalog.RoleMonster
	}
	return false
}

// The monster's win is counted under its concrete type, everyone else under
// their role.
func addRoleWin(user *models.User, part Participant) {
	switch part.Role {
	case catalog.RoleVillager:
		user.WinsVillager++
	case catalog.RoleDoctor:
		user.WinsDoctor++
	case catalog.RoleSheriff:
		user.WinsSheriff++
	case catalog.RoleMonster:
		switch part.Monster {
		case catalog.Vampire:
			user.WinsVampire++
		default:
			user.WinsWerewolf++
		}
	}
}
