// game/mode.go
package game

import "time"

const (
	ModeHuntAndDiscuss = "huntAndDiscuss"
	ModeHuntFury       = "huntFury"
)

// Mode captures the rule differences between the two match variants.
// Everything a mode returns is consulted from inside the room loop.
type Mode interface {
	Name() string

	NightDuration() time.Duration
	DayDuration() time.Duration

	// MonsterMovesImmediately reports whether the monster may move as
	// soon as night starts instead of after the movement delay.
	MonsterMovesImmediately() bool

	// MonsterMovementForDay reports whether the monster keeps moving
	// during the day phase.
	MonsterMovementForDay() bool

	// RepositionForDay adjusts player positions at dawn.
	RepositionForDay(r *Room)

	// Cooldown returns the minimum interval between accepted actions
	// for the given player in the current phase.
	Cooldown(r *Room, p *Player) time.Duration

	SheriffDamage(phase Phase) int
	SheriffNightOnly() bool

	VotingEnabled() bool
	SendsMonsterReplay() bool
	NotifiesMonsterOfPrey() bool

	CheckWin(r *Room) (Winner, bool)
}

func modeByName(name string) Mode {
	switch name {
	case ModeHuntFury:
		return &furyMode{}
	default:
		return &discussMode{}
	}
}
