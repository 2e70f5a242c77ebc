// game/room.go
package game

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/monsterhunt/gameserver/broadcast"
	"github.com/monsterhunt/gameserver/catalog"
	"github.com/monsterhunt/gameserver/logger"
	"github.com/monsterhunt/gameserver/network"
	"github.com/monsterhunt/gameserver/persistence"
	"github.com/monsterhunt/gameserver/scene"
	"github.com/monsterhunt/gameserver/timer"
)

const (
	MaxPlayers = 5
	MinPlayers = 3

	voteToNightDelay = 3 * time.Second
	unlockLookupWait = 2 * time.Second
)

// Room is one match. All state is owned by the run goroutine; everything
// else posts messages into the inbox, timers included.
type Room struct {
	ID string

	mode        Mode
	sceneType   scene.Type
	scn         *scene.Scene
	monsterType catalog.MonsterType
	monsterCfg  catalog.MonsterConfig

	state *State

	joinOrder []string
	// connected tracks members still holding a session. Dead players stay
	// in state.Players for the record, so the room is torn down on
	// connection count, not survivor count.
	connected map[string]struct{}

	// notified* throttle informational events to once per phase.
	notifiedPlayers map[string]struct{}
	notifiedMonster bool

	// votesResolved blocks a second tally between an early all-voted
	// resolution and the scheduled night transition.
	votesResolved bool

	nightCount int
	phaseSeq   uint64

	phaseTimerID   int64
	monsterTimerID int64
	delayTimerID   int64

	broadcaster broadcast.Broadcaster
	timers      *timer.Manager
	store       persistence.Store

	onStart func(roomID string)
	onEnd   func(r *Room, winner Winner)
	onEmpty func(roomID string)

	// Read lock-free by the matchmaker.
	playerCount atomic.Int32
	started     atomic.Bool

	inbox    chan roomMsg
	done     chan struct{}
	stopOnce sync.Once
}

type RoomOptions struct {
	ID          string
	ModeName    string
	SceneType   scene.Type
	InboxSize   int
	Broadcaster broadcast.Broadcaster
	Timers      *timer.Manager
	Store       persistence.Store
	OnStart     func(roomID string)
	OnEnd       func(r *Room, winner Winner)
	OnEmpty     func(roomID string)
}

func NewRoom(opts RoomOptions) (*Room, error) {
	scn, ok := scene.Get(opts.SceneType)
	if !ok {
		return nil, fmt.Errorf("unknown scene type %q", opts.SceneType)
	}
	mode := modeByName(opts.ModeName)
	if opts.InboxSize <= 0 {
		opts.InboxSize = 64
	}

	r := &Room{
		ID:              opts.ID,
		mode:            mode,
		sceneType:       opts.SceneType,
		scn:             scn,
		connected:       make(map[string]struct{}),
		notifiedPlayers: make(map[string]struct{}),
		broadcaster:     opts.Broadcaster,
		timers:          opts.Timers,
		store:           opts.Store,
		onStart:         opts.OnStart,
		onEnd:           opts.OnEnd,
		onEmpty:         opts.OnEmpty,
		inbox:           make(chan roomMsg, opts.InboxSize),
		done:            make(chan struct{}),
	}
	r.state = &State{
		ID:         opts.ID,
		Phase:      PhaseLobby,
		Mode:       mode.Name(),
		SceneType:  opts.SceneType,
		SceneGraph: scn,
		Players:    make(map[string]*Player),
		Votes:      make(map[string]string),
		Background: scn.Backgrounds.Day,
	}
	return r, nil
}

func (r *Room) Start() {
	go r.run()
}

func (r *Room) PlayerCount() int { return int(r.playerCount.Load()) }
func (r *Room) Started() bool    { return r.started.Load() }
func (r *Room) ModeName() string { return r.mode.Name() }

// post delivers a message to the room loop. A full inbox drops the
// message rather than block the caller.
func (r *Room) post(msg roomMsg) {
	select {
	case <-r.done:
	case r.inbox <- msg:
	default:
		logger.Log.Warnw("room inbox full, dropping message", "room", r.ID, "msg", fmt.Sprintf("%T", msg))
	}
}

func (r *Room) run() {
	for {
		select {
		case <-r.done:
			return
		case msg := <-r.inbox:
			r.handle(msg)
		}
	}
}

func (r *Room) stop() {
	r.stopOnce.Do(func() {
		r.cancelTimers()
		close(r.done)
	})
}

func (r *Room) handle(msg roomMsg) {
	switch m := msg.(type) {
	case joinMsg:
		r.handleJoin(m)
	case leaveMsg:
		r.handleLeave(m.PlayerID)
	case startMsg:
		r.handleStart(m)
	case phaseExpiredMsg:
		r.handlePhaseExpired(m)
	case enableMonsterMsg:
		r.handleEnableMonster(m)
	case nightDelayMsg:
		r.handleNightDelay(m)
	case shutdownMsg:
		r.stop()
	default:
		r.handleAction(msg)
	}
}

// handleAction routes in-match player messages. Anything arriving before
// the match starts or after it ends is dropped.
func (r *Room) handleAction(msg roomMsg) {
	if r.state.Phase == PhaseLobby || r.state.Phase == PhaseEnded {
		if m, ok := msg.(chatMsg); ok && r.state.Phase == PhaseLobby {
			r.handleChat(m)
		}
		return
	}
	switch m := msg.(type) {
	case moveMsg:
		r.handleMove(m)
	case attackMsg:
		r.handleAttack(m)
	case shootMsg:
		r.handleShoot(m)
	case reviveMsg:
		r.handleRevive(m)
	case voteMsg:
		r.handleVote(m)
	case chatMsg:
		r.handleChat(m)
	}
}

func (r *Room) handleJoin(m joinMsg) {
	if r.state.HasStarted {
		r.sendError(m.PlayerID, "game already started")
		return
	}
	if len(r.state.Players) >= MaxPlayers {
		r.sendError(m.PlayerID, "room is full")
		return
	}
	if _, exists := r.state.Players[m.PlayerID]; exists {
		return
	}

	r.state.Players[m.PlayerID] = &Player{
		ID:         m.PlayerID,
		Name:       m.Name,
		Alive:      true,
		LocationID: r.scn.PlayerSpawn,
		Health:     1,
	}
	r.joinOrder = append(r.joinOrder, m.PlayerID)
	r.connected[m.PlayerID] = struct{}{}
	r.state.HostID = r.joinOrder[0]
	r.playerCount.Store(int32(len(r.state.Players)))

	logger.Log.Infow("player joined room", "room", r.ID, "player", m.Name, "count", len(r.state.Players))

	r.sendJSON(m.PlayerID, network.MsgTypeRoomJoined, r.state)
	r.broadcastState()
}

func (r *Room) handleLeave(playerID string) {
	p, ok := r.state.Players[playerID]
	if !ok {
		return
	}
	delete(r.connected, playerID)

	if !r.state.HasStarted {
		delete(r.state.Players, playerID)
		for i, id := range r.joinOrder {
			if id == playerID {
				r.joinOrder = append(r.joinOrder[:i], r.joinOrder[i+1:]...)
				break
			}
		}
		if len(r.joinOrder) > 0 {
			r.state.HostID = r.joinOrder[0]
		} else {
			r.state.HostID = ""
		}
		r.playerCount.Store(int32(len(r.state.Players)))
		r.broadcastJSON(network.MsgTypeRoomLeft, roomLeftPayload{PlayerID: playerID})
		r.broadcastState()
	} else if r.state.Phase != PhaseEnded && p.Alive {
		// Leaving a running match counts as a death.
		p.Alive = false
		p.Health = 0
		r.broadcastJSON(network.MsgTypeRoomLeft, roomLeftPayload{PlayerID: playerID})
		r.broadcastEvent(newEvent(EventPlayerKilled, fmt.Sprintf("%s left the game and died", p.Name), []string{playerID}, p.LocationID))
		r.broadcastState()
		r.checkWin()
	} else {
		r.broadcastJSON(network.MsgTypeRoomLeft, roomLeftPayload{PlayerID: playerID})
	}

	logger.Log.Infow("player left room", "room", r.ID, "player", playerID, "connected", len(r.connected))

	if len(r.connected) == 0 {
		if r.onEmpty != nil {
			r.onEmpty(r.ID)
		}
		r.stop()
	}
}

func (r *Room) handleStart(m startMsg) {
	if m.PlayerID != r.state.HostID {
		r.sendError(m.PlayerID, "only the host can start the game")
		return
	}
	if r.state.HasStarted {
		r.sendError(m.PlayerID, "game already started")
		return
	}
	roles, ok := catalog.RolesFor(len(r.state.Players))
	if !ok {
		r.sendError(m.PlayerID, fmt.Sprintf("need %d to %d players to start", MinPlayers, MaxPlayers))
		return
	}

	r.assignRoles(roles)
	r.state.HasStarted = true
	r.started.Store(true)

	logger.Log.Infow("game started", "room", r.ID, "mode", r.mode.Name(),
		"scene", r.sceneType, "monster", r.monsterType, "players", len(r.state.Players))

	if r.onStart != nil {
		r.onStart(r.ID)
	}

	r.broadcastJSON(network.MsgTypeGameStarted, r.state)
	r.broadcastEvent(newEvent(EventGameStart,
		fmt.Sprintf("The hunt begins! A %s prowls the %s.", r.monsterCfg.Name, r.scn.Name),
		nil, 0))
	r.enterNight()
}

// assignRoles shuffles the fixed role set over join order and resolves
// which monster the monster player gets to play.
func (r *Room) assignRoles(roles []catalog.Role) {
	rand.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})

	var monsterPlayer *Player
	for i, id := range r.joinOrder {
		p := r.state.Players[id]
		p.Role = roles[i]
		if p.Role == catalog.RoleMonster {
			monsterPlayer = p
		}
	}

	r.monsterType = r.resolveMonsterType(monsterPlayer)
	r.monsterCfg, _ = catalog.Monster(r.monsterType)
	r.state.MonsterType = r.monsterType

	for _, p := range r.state.Players {
		switch p.Role {
		case catalog.RoleMonster:
			p.Health = r.monsterCfg.Health
		case catalog.RoleSheriff:
			p.Health = 2
		default:
			p.Health = 1
		}
	}
}

// resolveMonsterType picks a random monster from the player's unlocked
// set. Lookup failures fall back to the default rather than stall the
// start.
func (r *Room) resolveMonsterType(monsterPlayer *Player) catalog.MonsterType {
	if r.store == nil || monsterPlayer == nil {
		return catalog.DefaultMonster()
	}
	ctx, cancel := context.WithTimeout(context.Background(), unlockLookupWait)
	defer cancel()

	unlocked, err := r.store.LookupUnlockedMonsters(ctx, monsterPlayer.Name)
	if err != nil || len(unlocked) == 0 {
		if err != nil && err != persistence.ErrRecordNotFound {
			logger.Log.Warnw("monster unlock lookup failed", "room", r.ID, "player", monsterPlayer.Name, "error", err)
		}
		return catalog.DefaultMonster()
	}
	return unlocked[rand.Intn(len(unlocked))]
}

func (r *Room) enterNight() {
	r.phaseSeq++
	r.nightCount++
	r.cancelTimers()

	r.state.Phase = PhaseNight
	r.state.MonsterActions = nil
	r.state.Votes = make(map[string]string)
	r.state.Background = r.scn.Backgrounds.Night
	r.state.MonsterMovementEnabled = r.mode.MonsterMovesImmediately()
	r.notifiedPlayers = make(map[string]struct{})
	r.notifiedMonster = false

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

	r.setPhaseClock(r.mode.NightDuration())
	r.broadcastState()
	r.broadcastPhase()

	seq := r.phaseSeq
	if !r.mode.MonsterMovesImmediately() {
		r.monsterTimerID = r.timers.After(r.monsterCfg.MovementDelay, func() {
			r.post(enableMonsterMsg{Seq: seq})
		})
	}
	r.phaseTimerID = r.timers.After(r.mode.NightDuration(), func() {
		r.post(phaseExpiredMsg{Phase: PhaseNight, Seq: seq})
	})

	logger.Log.Infow("night begins", "room", r.ID, "night", r.nightCount)
}

func (r *Room) enterDay() {
	if r.checkWin() {
		return
	}
	r.phaseSeq++
	r.cancelTimers()

	r.state.Phase = PhaseDay
	r.state.Votes = make(map[string]string)
	r.state.Background = r.scn.Backgrounds.Day
	r.state.MonsterMovementEnabled = r.mode.MonsterMovementForDay()
	r.notifiedPlayers = make(map[string]struct{})
	r.notifiedMonster = false
	r.votesResolved = false

	r.mode.RepositionForDay(r)
	r.sendMonsterReplay()

	r.setPhaseClock(r.mode.DayDuration())
	r.broadcastState()
	r.broadcastPhase()

	seq := r.phaseSeq
	r.phaseTimerID = r.timers.After(r.mode.DayDuration(), func() {
		r.post(phaseExpiredMsg{Phase: PhaseDay, Seq: seq})
	})

	logger.Log.Infow("day begins", "room", r.ID, "night", r.nightCount)
}

// sendMonsterReplay delivers the night's action log to every
// non-monster member at dawn.
func (r *Room) sendMonsterReplay() {
	if !r.mode.SendsMonsterReplay() || len(r.state.MonsterActions) == 0 {
		return
	}
	data, err := json.Marshal(r.state.MonsterActions)
	if err != nil {
		logger.Log.Errorw("marshal monster replay", "room", r.ID, "error", err)
		return
	}
	for id := range r.connected {
		if p, ok := r.state.Players[id]; ok && p.Role != catalog.RoleMonster {
			r.broadcaster.SendToSession(id, network.MsgTypeMonsterReplay, data)
		}
	}
}

func (r *Room) handlePhaseExpired(m phaseExpiredMsg) {
	if m.Seq != r.phaseSeq || r.state.Phase != m.Phase {
		return
	}
	switch m.Phase {
	case PhaseNight:
		r.enterDay()
	case PhaseDay:
		if r.mode.VotingEnabled() {
			r.processVotes()
		} else {
			r.enterNight()
		}
	}
}

func (r *Room) handleEnableMonster(m enableMonsterMsg) {
	if m.Seq != r.phaseSeq || r.state.Phase != PhaseNight {
		return
	}
	r.state.MonsterMovementEnabled = true
	r.broadcastState()
}

func (r *Room) handleNightDelay(m nightDelayMsg) {
	if m.Seq != r.phaseSeq || r.state.Phase != PhaseDay {
		return
	}
	r.enterNight()
}

// processVotes tallies the day's votes. A target is eliminated only on
// a strict majority of living players; ties and short counts spare
// everyone.
func (r *Room) processVotes() {
	if r.votesResolved {
		return
	}
	r.votesResolved = true
	r.timers.Cancel(r.phaseTimerID)

	counts := make(map[string]int)
	alive := 0
	for _, p := range r.state.Players {
		if p.Alive {
			alive++
		}
	}
	for _, target := range r.state.Votes {
		counts[target]++
	}
	majority := alive/2 + 1

	// Only living players are candidates. Votes cast for the dead or for
	// unknown ids still count toward turnout but can never banish anyone.
	var leader string
	leaderCount := 0
	for _, id := range r.joinOrder {
		if p := r.state.Players[id]; p == nil || !p.Alive {
			continue
		}
		if counts[id] > leaderCount {
			leader = id
			leaderCount = counts[id]
		}
	}

	if leaderCount >= majority {
		victim := r.state.Players[leader]
		victim.Alive = false
		victim.Health = 0
		r.broadcastJSON(network.MsgTypeVoteResult, voteResultPayload{EliminatedID: &leader})
		r.broadcastEvent(newEvent(EventPlayerKilled,
			fmt.Sprintf("%s was banished by the village", victim.Name),
			[]string{leader}, victim.LocationID))
		logger.Log.Infow("vote eliminated player", "room", r.ID, "player", victim.Name, "votes", leaderCount)
	} else {
		r.broadcastJSON(network.MsgTypeVoteResult, voteResultPayload{})
		r.broadcastEvent(newEvent(EventVoteFailed, "The village could not decide", nil, 0))
	}
	r.broadcastState()

	if r.checkWin() {
		return
	}
	seq := r.phaseSeq
	r.delayTimerID = r.timers.After(voteToNightDelay, func() {
		r.post(nightDelayMsg{Seq: seq})
	})
}

// checkWin reports whether the match is over, finishing it on the first
// hit. Once ended it stays ended.
func (r *Room) checkWin() bool {
	if r.state.Phase == PhaseEnded {
		return true
	}
	winner, over := r.mode.CheckWin(r)
	if !over {
		return false
	}
	r.finish(winner)
	return true
}

func (r *Room) finish(winner Winner) {
	r.cancelTimers()
	r.state.Phase = PhaseEnded
	r.state.Winner = winner

	r.broadcastJSON(network.MsgTypeGameEnded, gameEndedPayload{Winner: winner})
	r.broadcastState()

	logger.Log.Infow("game ended", "room", r.ID, "winner", winner, "nights", r.nightCount)

	if r.onEnd != nil {
		r.onEnd(r, winner)
	}
}

func (r *Room) cancelTimers() {
	r.timers.Cancel(r.phaseTimerID)
	r.timers.Cancel(r.monsterTimerID)
	r.timers.Cancel(r.delayTimerID)
}

func (r *Room) setPhaseClock(d time.Duration) {
	r.state.PhaseTimer = int(d / time.Second)
	r.state.PhaseStart = time.Now().UnixMilli()
}

func (r *Room) broadcastState() {
	r.broadcastJSON(network.MsgTypeGameState, r.state)
}

func (r *Room) broadcastPhase() {
	r.broadcastJSON(network.MsgTypePhaseUpdate, phaseUpdatePayload{
		Phase:      r.state.Phase,
		Timer:      r.state.PhaseTimer,
		Background: r.state.Background,
		PhaseStart: r.state.PhaseStart,
	})
}

func (r *Room) broadcastEvent(ev Event) {
	r.broadcastJSON(network.MsgTypeGameEvent, ev)
}

func (r *Room) broadcastJSON(msgID uint16, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Log.Errorw("marshal broadcast payload", "room", r.ID, "msgId", msgID, "error", err)
		return
	}
	r.broadcaster.BroadcastToRoom(r.ID, msgID, data)
}

func (r *Room) sendJSON(playerID string, msgID uint16, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Log.Errorw("marshal session payload", "room", r.ID, "msgId", msgID, "error", err)
		return
	}
	r.broadcaster.SendToSession(playerID, msgID, data)
}

func (r *Room) sendError(playerID, msg string) {
	r.sendJSON(playerID, network.MsgTypeRoomError, roomErrorPayload{Message: msg})
}
