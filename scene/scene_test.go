package scene

import (
	"testing"
)

func TestAllScenesWellFormed(t *testing.T) {
	for _, st := range Types() {
		s, ok := Get(st)
		if !ok {
			t.Fatalf("scene %q should exist", st)
		}

		if _, ok := s.Location(s.MonsterSpawn); !ok {
			t.Errorf("%s: monster spawn %d is not a location", s.Name, s.MonsterSpawn)
		}
		if _, ok := s.Location(s.PlayerSpawn); !ok {
			t.Errorf("%s: player spawn %d is not a location", s.Name, s.PlayerSpawn)
		}
		if s.Backgrounds.Night == "" || s.Backgrounds.Day == "" {
			t.Errorf("%s: backgrounds must be set", s.Name)
		}

		// Every adjacency edge must point at a real location.
		for from, neighbors := range s.Adjacency {
			if _, ok := s.Location(from); !ok {
				t.Errorf("%s: adjacency source %d is not a location", s.Name, from)
			}
			for _, to := range neighbors {
				if _, ok := s.Location(to); !ok {
					t.Errorf("%s: edge %d->%d points at unknown location", s.Name, from, to)
				}
			}
		}
	}
}

func TestEveryLocationReachableFromSpawns(t *testing.T) {
	for _, st := range Types() {
		s, _ := Get(st)

		reachable := make(map[int]bool)
		queue := []int{s.PlayerSpawn, s.MonsterSpawn}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			if reachable[id] {
				continue
			}
			reachable[id] = true
			queue = append(queue, s.Adjacent(id)...)
		}

		for id := range s.Locations {
			if !reachable[id] {
				t.Errorf("%s: location %d is unreachable", s.Name, id)
			}
		}
	}
}

func TestAdjacencyIsSymmetric(t *testing.T) {
	for _, st := range Types() {
		s, _ := Get(st)
		for from, neighbors := range s.Adjacency {
			for _, to := range neighbors {
				if !s.IsAdjacent(to, from) {
					t.Errorf("%s: edge %d->%d has no reverse edge", s.Name, from, to)
				}
			}
		}
	}
}

func TestIsAdjacent(t *testing.T) {
	s, _ := Get(Village)

	if !s.IsAdjacent(0, 1) {
		t.Error("forest should connect to the village")
	}
	if s.IsAdjacent(0, 7) {
		t.Error("forest should not connect directly to a hiding spot")
	}
}

func TestIsHiding(t *testing.T) {
	s, _ := Get(Village)

	if s.IsHiding(s.PlayerSpawn) {
		t.Error("player spawn must not be a hiding spot")
	}
	if !s.IsHiding(7) {
		t.Error("location 7 should be a hiding spot")
	}
}

func TestLocationNameUnknown(t *testing.T) {
	s, _ := Get(Castle)

	if got := s.LocationName(9999); got != "unknown" {
		t.Errorf("expected \"unknown\" for bad id, got %q", got)
	}
}

func TestRandomReturnsKnownScene(t *testing.T) {
	for i := 0; i < 10; i++ {
		if _, ok := Get(Random()); !ok {
			t.Fatal("Random must return a registered scene type")
		}
	}
}
