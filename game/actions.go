// game/actions.go
package game

import (
	"fmt"
	"time"

	"github.com/monsterhunt/gameserver/catalog"
	"github.com/monsterhunt/gameserver/logger"
	"github.com/monsterhunt/gameserver/network"
)

const sheriffCooldown = 2 * time.Second

// Invalid in-match actions are dropped without a reply. Clients act on
// local state and a rejected action simply never echoes back; errors are
// reserved for lobby operations and the sheriff's wasted shot.

func (r *Room) onCooldown(p *Player, d time.Duration) bool {
	if d <= 0 {
		return false
	}
	return time.Now().UnixMilli()-p.LastAction < d.Milliseconds()
}

func (r *Room) handleMove(m moveMsg) {
	p, ok := r.state.Players[m.PlayerID]
	if !ok || !p.Alive {
		return
	}
	if r.onCooldown(p, r.mode.Cooldown(r, p)) {
		return
	}
	if !r.scn.IsAdjacent(p.LocationID, m.LocationID) {
		return
	}
	isMonster := p.Role == catalog.RoleMonster
	// The movement-enable gate only holds the monster back at night,
	// during the start-of-night grace period.
	if isMonster && r.state.Phase == PhaseNight && !r.state.MonsterMovementEnabled {
		return
	}

	p.LocationID = m.LocationID
	p.LastAction = time.Now().UnixMilli()
	p.IsHiding = r.scn.IsHiding(m.LocationID)

	r.broadcastJSON(network.MsgTypePlayerMoved, playerMovedPayload{
		PlayerID:   m.PlayerID,
		LocationID: m.LocationID,
	})

	if isMonster {
		r.monsterMoved(p)
	} else if r.mode.NotifiesMonsterOfPrey() && r.state.Phase == PhaseDay {
		r.notifyMonsterOfPrey(p)
	}
	r.broadcastState()
}

// monsterMoved records the move in the night log, warns players one
// step away, and springs the ambush on anyone hiding at the new spot.
func (r *Room) monsterMoved(monster *Player) {
	locName := r.scn.LocationName(monster.LocationID)
	r.state.MonsterActions = append(r.state.MonsterActions, MonsterAction{
		Timestamp:   time.Now().UnixMilli(),
		Action:      "move",
		LocationID:  monster.LocationID,
		Description: fmt.Sprintf("%s moved to %s", r.monsterCfg.Name, locName),
	})

	for _, adj := range r.scn.Adjacent(monster.LocationID) {
		for _, p := range r.state.Players {
			if !p.Alive || p.Role == catalog.RoleMonster || p.LocationID != adj {
				continue
			}
			if _, seen := r.notifiedPlayers[p.ID]; seen {
				continue
			}
			r.notifiedPlayers[p.ID] = struct{}{}
			r.broadcastEvent(newEvent(EventMonsterMoved,
				fmt.Sprintf("%s is near!", r.monsterCfg.Name),
				[]string{p.ID}, p.LocationID))
		}
	}

	if r.scn.IsHiding(monster.LocationID) {
		r.ambush(monster)
	}
}

// ambush kills everyone hiding where the monster just arrived. The
// sheriff is armed and exempt.
func (r *Room) ambush(monster *Player) {
	killed := false
	for _, p := range r.state.Players {
		if !p.Alive || p.Role == catalog.RoleMonster || p.Role == catalog.RoleSheriff {
			continue
		}
		if p.LocationID != monster.LocationID {
			continue
		}
		damage := p.Health
		p.Health = 0
		p.Alive = false
		killed = true

		r.state.MonsterActions = append(r.state.MonsterActions, MonsterAction{
			Timestamp:   time.Now().UnixMilli(),
			Action:      "kill",
			LocationID:  monster.LocationID,
			TargetID:    p.ID,
			Description: fmt.Sprintf("%s killed %s at %s", r.monsterCfg.Name, p.Name, r.scn.LocationName(monster.LocationID)),
		})
		r.broadcastJSON(network.MsgTypeCombatResult, CombatResult{
			Attacker: monster.ID,
			Target:   p.ID,
			Damage:   damage,
			Killed:   true,
			Kind:     CombatMonsterAttack,
		})
		r.broadcastEvent(newEvent(EventPlayerKilled,
			fmt.Sprintf("%s was ambushed by the %s", p.Name, r.monsterCfg.Name),
			[]string{p.ID}, monster.LocationID))
	}
	if killed {
		r.checkWin()
	}
}

// notifyMonsterOfPrey tips the monster off the first time prey moves in
// a phase.
func (r *Room) notifyMonsterOfPrey(p *Player) {
	if r.notifiedMonster {
		return
	}
	for id, other := range r.state.Players {
		if other.Role == catalog.RoleMonster && other.Alive {
			r.notifiedMonster = true
			ev := newEvent(EventMonsterMoved,
				fmt.Sprintf("Prey stirs near %s", r.scn.LocationName(p.LocationID)),
				[]string{id}, p.LocationID)
			r.sendJSON(id, network.MsgTypeGameEvent, ev)
			return
		}
	}
}

func (r *Room) handleAttack(m attackMsg) {
	attacker, ok := r.state.Players[m.PlayerID]
	if !ok || !attacker.Alive || attacker.Role != catalog.RoleMonster {
		return
	}
	// Attacks are a night action in both modes. The movement delay does
	// not gate them; prey wandering into the lair early is fair game.
	if r.state.Phase != PhaseNight {
		return
	}
	target, ok := r.state.Players[m.TargetID]
	if !ok || !target.Alive || target.Role == catalog.RoleMonster {
		return
	}
	if target.LocationID != attacker.LocationID {
		return
	}
	if r.onCooldown(attacker, r.mode.Cooldown(r, attacker)) {
		return
	}

	attacker.LastAction = time.Now().UnixMilli()
	target.Health--
	killed := target.Health <= 0
	if killed {
		target.Alive = false
	}

	r.state.MonsterActions = append(r.state.MonsterActions, MonsterAction{
		Timestamp:   time.Now().UnixMilli(),
		Action:      "kill",
		LocationID:  attacker.LocationID,
		TargetID:    target.ID,
		Description: fmt.Sprintf("%s attacked %s at %s", r.monsterCfg.Name, target.Name, r.scn.LocationName(attacker.LocationID)),
	})
	r.broadcastJSON(network.MsgTypeCombatResult, CombatResult{
		Attacker: attacker.ID,
		Target:   target.ID,
		Damage:   1,
		Killed:   killed,
		Kind:     CombatMonsterAttack,
	})
	if killed {
		r.broadcastEvent(newEvent(EventPlayerKilled,
			fmt.Sprintf("%s was slain by the %s", target.Name, r.monsterCfg.Name),
			[]string{target.ID}, attacker.LocationID))
	}
	r.broadcastState()

	logger.Log.Debugw("monster attack", "room", r.ID, "target", target.Name, "killed", killed)

	if killed {
		r.checkWin()
	}
}

func (r *Room) handleShoot(m shootMsg) {
	shooter, ok := r.state.Players[m.PlayerID]
	if !ok || !shooter.Alive || shooter.Role != catalog.RoleSheriff {
		return
	}
	if r.mode.SheriffNightOnly() && r.state.Phase != PhaseNight {
		return
	}
	if r.onCooldown(shooter, sheriffCooldown) {
		return
	}
	target, ok := r.state.Players[m.TargetID]
	if !ok || !target.Alive || target.LocationID != shooter.LocationID {
		return
	}
	if target.Role != catalog.RoleMonster {
		// The shot rings out but silver only bites monsters.
		r.sendError(m.PlayerID, "your shot had no effect")
		return
	}

	damage := r.mode.SheriffDamage(r.state.Phase)
	if damage <= 0 {
		return
	}

	shooter.LastAction = time.Now().UnixMilli()
	target.Health -= damage
	r.state.MonsterLastDamagedAt = time.Now().UnixMilli()
	killed := target.Health <= 0
	if killed {
		target.Alive = false
	}

	r.broadcastJSON(network.MsgTypeCombatResult, CombatResult{
		Attacker: shooter.ID,
		Target:   target.ID,
		Damage:   damage,
		Killed:   killed,
		Kind:     CombatSheriffShoot,
	})
	if killed {
		r.broadcastEvent(newEvent(EventPlayerKilled,
			fmt.Sprintf("The %s was felled by %s", r.monsterCfg.Name, shooter.Name),
			[]string{target.ID}, shooter.LocationID))
	}
	r.broadcastState()

	logger.Log.Debugw("sheriff shot", "room", r.ID, "shooter", shooter.Name, "killed", killed)

	if killed {
		r.checkWin()
	}
}

func (r *Room) handleRevive(m reviveMsg) {
	doctor, ok := r.state.Players[m.PlayerID]
	if !ok || !doctor.Alive || doctor.Role != catalog.RoleDoctor {
		return
	}
	if r.state.Phase != PhaseNight || m.TargetID == m.PlayerID {
		return
	}
	if r.onCooldown(doctor, r.mode.Cooldown(r, doctor)) {
		return
	}
	target, ok := r.state.Players[m.TargetID]
	if !ok || target.Alive || target.Role == catalog.RoleMonster {
		return
	}
	if target.LocationID != doctor.LocationID {
		return
	}

	doctor.LastAction = time.Now().UnixMilli()
	target.Alive = true
	target.Health = 1
	target.IsHiding = false

	r.broadcastJSON(network.MsgTypePlayerRevived, playerRevivedPayload{PlayerID: target.ID})
	r.broadcastEvent(newEvent(EventPlayerSaved,
		fmt.Sprintf("%s was brought back by the doctor", target.Name),
		[]string{target.ID}, target.LocationID))
	r.broadcastState()

	logger.Log.Infow("player revived", "room", r.ID, "target", target.Name)
}

func (r *Room) handleVote(m voteMsg) {
	if !r.mode.VotingEnabled() || r.state.Phase != PhaseDay || r.votesResolved {
		return
	}
	voter, ok := r.state.Players[m.PlayerID]
	if !ok || !voter.Alive {
		return
	}
	// Any target id is recorded as cast. The tally only considers living
	// players as candidates, so a stray id can never be eliminated.
	// Re-voting replaces the earlier choice.
	r.state.Votes[m.PlayerID] = m.TargetID
	r.broadcastJSON(network.MsgTypeVoteUpdate, r.state.Votes)

	if r.allAliveVoted() {
		r.processVotes()
	}
}

func (r *Room) allAliveVoted() bool {
	for id, p := range r.state.Players {
		if !p.Alive {
			continue
		}
		if _, voted := r.state.Votes[id]; !voted {
			return false
		}
	}
	return true
}

func (r *Room) handleChat(m chatMsg) {
	p, ok := r.state.Players[m.PlayerID]
	if !ok || m.Message == "" {
		return
	}
	// In-match chat is a daytime privilege of the living.
	if r.state.HasStarted {
		if r.state.Phase != PhaseDay || !p.Alive {
			return
		}
	}
	r.broadcastJSON(network.MsgTypeChatMessage, chatPayload{
		PlayerID: m.PlayerID,
		Message:  m.Message,
	})
}
