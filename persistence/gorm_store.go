// persistence/gorm_store.go
package persistence

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/monsterhunt/gameserver/catalog"
	"github.com/monsterhunt/gameserver/models"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(host string, port int, user, password, dbname string) (*GormStore, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gl := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gl,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.User{}, &models.Match{}); err != nil {
		return nil, err
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) LookupUnlockedMonsters(ctx context.Context, username string) ([]catalog.MonsterType, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	var unlocked []catalog.MonsterType
	if user.UnlockedWerewolf {
		unlocked = append(unlocked, catalog.Werewolf)
	}
	if user.UnlockedVampire {
		unlocked = append(unlocked, catalog.Vampire)
	}
	return unlocked, nil
}

func (s *GormStore) CreateMatch(ctx context.Context, roomID, mode string, private bool, userID string) error {
	var participants []string
	if userID != "" {
		participants = []string{userID}
	}

	match := models.Match{
		RoomID:       roomID,
		Mode:         mode,
		Status:       models.MatchWaiting,
		IsPrivate:    private,
		Participants: participants,
	}
	return s.db.WithContext(ctx).Create(&match).Error
}

func (s *GormStore) AddMatchParticipant(ctx context.Context, roomID, userID string) error {
	return s.Transaction(func(tx *gorm.DB) error {
		var match models.Match
		if err := tx.Where("room_id = ?", roomID).First(&match).Error; err != nil {
			return err
		}
		for _, p := range match.Participants {
			if p == userID {
				return nil
			}
		}
		match.Participants = append(match.Participants, userID)
		return tx.Save(&match).Error
	})
}

func (s *GormStore) MarkMatchStarted(ctx context.Context, roomID string) error {
	now := time.Now()
	return s.db.WithContext(ctx).
		Model(&models.Match{}).
		Where("room_id = ? AND status = ?", roomID, models.MatchWaiting).
		Updates(map[string]interface{}{
			"status":     models.MatchInProgress,
			"started_at": &now,
		}).Error
}

func (s *GormStore) GetMatch(ctx context.Context, roomID string) (*models.Match, error) {
	var match models.Match
	if err := s.db.WithContext(ctx).Where("room_id = ?", roomID).First(&match).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (s *GormStore) GetUserStats(ctx context.Context, username string) (*models.UserStats, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &models.UserStats{
		Username:    user.Username,
		XP:          user.XP,
		GamesPlayed: user.GamesPlayed,
		Wins: map[string]int{
			"villager": user.WinsVillager,
			"doctor":   user.WinsDoctor,
			"sheriff":  user.WinsSheriff,
			"werewolf": user.WinsWerewolf,
			"vampire":  user.WinsVampire,
		},
	}, nil
}

func (s *GormStore) Transaction(fn func(tx *gorm.DB) error) error {
	return s.db.Transaction(fn)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
