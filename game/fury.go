// game/fury.go
package game

import (
	"time"

	"github.com/monsterhunt/gameserver/catalog"
)

// furyMode is the continuous hunt variant: no voting, shorter days,
// the monster keeps stalking around the clock.
type furyMode struct{}

func (m *furyMode) Name() string { return ModeHuntFury }

func (m *furyMode) NightDuration() time.Duration { return 60 * time.Second }
func (m *furyMode) DayDuration() time.Duration   { return 30 * time.Second }

func (m *furyMode) MonsterMovesImmediately() bool { return true }
func (m *furyMode) MonsterMovementForDay() bool   { return true }

// RepositionForDay resets the board: the monster returns to its lair,
// survivors regroup at the player spawn, and the hunt continues.
func (m *furyMode) RepositionForDay(r *Room) {
	for _, p := range r.state.Players {
		if !p.Alive {
			continue
		}
		p.IsHiding = false
		if p.Role == catalog.RoleMonster {
			p.LocationID = r.scn.MonsterSpawn
		} else {
			p.LocationID = r.scn.PlayerSpawn
		}
	}
}

func (m *furyMode) Cooldown(r *Room, p *Player) time.Duration {
	if p.Role == catalog.RoleMonster {
		if r.state.Phase == PhaseNight {
			return r.monsterCfg.Cooldown
		}
		return 0
	}
	if r.state.Phase == PhaseDay {
		return 2 * time.Second
	}
	return 0
}

// SheriffDamage is doubled in daylight: a clear shot hits harder.
func (m *furyMode) SheriffDamage(phase Phase) int {
	if phase == PhaseDay {
		return 2
	}
	return 1
}

func (m *furyMode) SheriffNightOnly() bool { return false }

func (m *furyMode) VotingEnabled() bool         { return false }
func (m *furyMode) SendsMonsterReplay() bool    { return false }
func (m *furyMode) NotifiesMonsterOfPrey() bool { return true }

// CheckWin: last side standing. The monster wins once every villager
// is dead, villagers win when the monster is.
func (m *furyMode) CheckWin(r *Room) (Winner, bool) {
	monsterAlive := false
	villagersAlive := 0
	for _, p := range r.state.Players {
		if !p.Alive {
			continue
		}
		if p.Role == catalog.RoleMonster {
			monsterAlive = true
		} else {
			villagersAlive++
		}
	}
	if !monsterAlive {
		return WinnerVillagers, true
	}
	if villagersAlive == 0 {
		return WinnerMonster, true
	}
	return "", false
}
