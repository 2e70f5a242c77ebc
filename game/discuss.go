// game/discuss.go
package game

import (
	"time"

	"github.com/monsterhunt/gameserver/catalog"
)

// discussMode is the social variant: hunting at night, gathering and
// voting during the day.
type discussMode struct{}

const monsterDamageGrace = 5 * time.Second

func (m *discussMode) Name() string { return ModeHuntAndDiscuss }

func (m *discussMode) NightDuration() time.Duration { return 60 * time.Second }
func (m *discussMode) DayDuration() time.Duration   { return 60 * time.Second }

func (m *discussMode) MonsterMovesImmediately() bool { return false }
func (m *discussMode) MonsterMovementForDay() bool   { return false }

// RepositionForDay gathers every survivor at the player spawn for the
// discussion.
func (m *discussMode) RepositionForDay(r *Room) {
	for _, p := range r.state.Players {
		if p.Alive {
			p.LocationID = r.scn.PlayerSpawn
			p.IsHiding = false
		}
	}
}

func (m *discussMode) Cooldown(r *Room, p *Player) time.Duration {
	if r.state.Phase == PhaseNight {
		if p.Role == catalog.RoleMonster {
			// Being shot suppresses the attack cooldown for a moment.
			if r.state.MonsterLastDamagedAt > 0 &&
				time.Since(time.UnixMilli(r.state.MonsterLastDamagedAt)) < monsterDamageGrace {
				return 0
			}
			return r.monsterCfg.Cooldown
		}
		return 0
	}
	return 2 * time.Second
}

func (m *discussMode) SheriffDamage(phase Phase) int {
	if phase == PhaseNight {
		return 1
	}
	return 0
}

func (m *discussMode) SheriffNightOnly() bool { return true }

func (m *discussMode) VotingEnabled() bool       { return true }
func (m *discussMode) SendsMonsterReplay() bool  { return true }
func (m *discussMode) NotifiesMonsterOfPrey() bool { return false }

// CheckWin: villagers win when the monster dies, the monster wins when
// no villagers remain or when it is down to a single 1v1 opponent.
func (m *discussMode) CheckWin(r *Room) (Winner, bool) {
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
	if villagersAlive <= 1 {
		return WinnerMonster, true
	}
	return "", false
}
