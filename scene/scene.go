// Package scene holds the static location graphs matches are played on.
// Scenes are built once at init and only ever read, so they are safe to
// share across rooms.
package scene

import (
	"math/rand"
)

type LocationType string

const (
	TypeSpawn  LocationType = "spawn"
	TypeSafe   LocationType = "safe"
	TypeHiding LocationType = "hiding"
)

type Type string

const (
	Village Type = "village"
	Castle  Type = "castle"
)

type Location struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Type        LocationType `json:"type"`
	Description string       `json:"description,omitempty"`
}

type Backgrounds struct {
	Night string `json:"night"`
	Day   string `json:"day"`
}

type Scene struct {
	Name         string           `json:"name"`
	Locations    map[int]Location `json:"locations"`
	Adjacency    map[int][]int    `json:"adjacencyList"`
	MonsterSpawn int              `json:"monsterStartLocation"`
	PlayerSpawn  int              `json:"playersStartLocation"`
	Backgrounds  Backgrounds      `json:"backgrounds"`
}

var scenes = map[Type]*Scene{
	Village: villageScene,
	Castle:  castleScene,
}

func Get(t Type) (*Scene, bool) {
	s, ok := scenes[t]
	return s, ok
}

func Random() Type {
	types := Types()
	return types[rand.Intn(len(types))]
}

func Types() []Type {
	return []Type{Village, Castle}
}

func (s *Scene) Location(id int) (Location, bool) {
	loc, ok := s.Locations[id]
	return loc, ok
}

// Adjacent returns the ids reachable from id. A location with no outgoing
// edges yields nil.
func (s *Scene) Adjacent(id int) []int {
	return s.Adjacency[id]
}

func (s *Scene) IsAdjacent(from, to int) bool {
	for _, id := range s.Adjacency[from] {
		if id == to {
			return true
		}
	}
	return false
}

// IsHiding reports whether id is a hiding-type location.
func (s *Scene) IsHiding(id int) bool {
	loc, ok := s.Locations[id]
	return ok && loc.Type == TypeHiding
}

// LocationName returns the display name, or "unknown" for bad ids.
func (s *Scene) LocationName(id int) string {
	if loc, ok := s.Locations[id]; ok {
		return loc.Name
	}
	return "unknown"
}
