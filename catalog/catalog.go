// Package catalog is the static role and monster data: which role set a
// player count maps to, and the stat block for each monster type.
package catalog

import (
	"math/rand"
	"time"
)

type Role string

const (
	RoleMonster  Role = "monster"
	RoleSheriff  Role = "sheriff"
	RoleDoctor   Role = "doctor"
	RoleVillager Role = "villager"
)

type MonsterType string

const (
	Werewolf MonsterType = "werewolf"
	Vampire  MonsterType = "vampire"
)

type MonsterConfig struct {
	Name          string
	Health        int
	Cooldown      time.Duration // movement/attack cooldown at night
	MovementDelay time.Duration // grace period before the monster may move after night begins
}

var monsters = map[MonsterType]MonsterConfig{
	Werewolf: {
		Name:          "Werewolf",
		Health:        2,
		Cooldown:      2 * time.Second,
		MovementDelay: 10 * time.Second,
	},
	Vampire: {
		Name:          "Vampire",
		Health:        2,
		Cooldown:      2 * time.Second,
		MovementDelay: 10 * time.Second,
	},
}

var roleTables = map[int][]Role{
	3: {RoleMonster, RoleVillager, RoleVillager},
	4: {RoleMonster, RoleSheriff, RoleVillager, RoleVillager},
	5: {RoleMonster, RoleSheriff, RoleDoctor, RoleVillager, RoleVillager},
}

// RolesFor returns a copy of the fixed role set for n players, or false for
// unsupported counts.
func RolesFor(n int) ([]Role, bool) {
	table, ok := roleTables[n]
	if !ok {
		return nil, false
	}
	roles := make([]Role, len(table))
	copy(roles, table)
	return roles, true
}

func Monster(t MonsterType) (MonsterConfig, bool) {
	cfg, ok := monsters[t]
	return cfg, ok
}

func DefaultMonster() MonsterType {
	return Werewolf
}

func MonsterTypes() []MonsterType {
	return []MonsterType{Werewolf, Vampire}
}

func RandomMonster() MonsterType {
	types := MonsterTypes()
	return types[rand.Intn(len(types))]
}

// IsMonsterType reports whether s names a known monster.
func IsMonsterType(s string) bool {
	_, ok := monsters[MonsterType(s)]
	return ok
}
