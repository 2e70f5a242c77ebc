package catalog

import "testing"

func TestRolesForSupportedCounts(t *testing.T) {
	tests := []struct {
		players  int
		monster  int
		sheriff  int
		doctor   int
		villager int
	}{
		{players: 3, monster: 1, sheriff: 0, doctor: 0, villager: 2},
		{players: 4, monster: 1, sheriff: 1, doctor: 0, villager: 2},
		{players: 5, monster: 1, sheriff: 1, doctor: 1, villager: 2},
	}

	for _, tt := range tests {
		roles, ok := RolesFor(tt.players)
		if !ok {
			t.Fatalf("RolesFor(%d) should be supported", tt.players)
		}
		if len(roles) != tt.players {
			t.Fatalf("RolesFor(%d) returned %d roles", tt.players, len(roles))
		}

		counts := make(map[Role]int)
		for _, r := range roles {
			counts[r]++
		}
		if counts[RoleMonster] != tt.monster {
			t.Errorf("%d players: expected %d monster, got %d", tt.players, tt.monster, counts[RoleMonster])
		}
		if counts[RoleSheriff] != tt.sheriff {
			t.Errorf("%d players: expected %d sheriff, got %d", tt.players, tt.sheriff, counts[RoleSheriff])
		}
		if counts[RoleDoctor] != tt.doctor {
			t.Errorf("%d players: expected %d doctor, got %d", tt.players, tt.doctor, counts[RoleDoctor])
		}
		if counts[RoleVillager] != tt.villager {
			t.Errorf("%d players: expected %d villagers, got %d", tt.players, tt.villager, counts[RoleVillager])
		}
	}
}

func TestRolesForUnsupportedCounts(t *testing.T) {
	for _, n := range []int{0, 1, 2, 6, 10} {
		if _, ok := RolesFor(n); ok {
			t.Errorf("RolesFor(%d) should not be supported", n)
		}
	}
}

func TestRolesForReturnsCopy(t *testing.T) {
	roles, _ := RolesFor(3)
	roles[0] = RoleDoctor

	again, _ := RolesFor(3)
	if again[0] != RoleMonster {
		t.Error("mutating a returned role set must not affect the table")
	}
}

func TestMonsterConfigs(t *testing.T) {
	for _, mt := range MonsterTypes() {
		cfg, ok := Monster(mt)
		if !ok {
			t.Fatalf("monster %q should exist", mt)
		}
		if cfg.Name == "" {
			t.Errorf("%s: name must be set", mt)
		}
		if cfg.Health <= 0 {
			t.Errorf("%s: health must be positive", mt)
		}
		if cfg.Cooldown <= 0 || cfg.MovementDelay <= 0 {
			t.Errorf("%s: cooldown and movement delay must be positive", mt)
		}
	}
}

func TestUnknownMonster(t *testing.T) {
	if _, ok := Monster(MonsterType("dragon")); ok {
		t.Error("unknown monster should not resolve")
	}
	if IsMonsterType("dragon") {
		t.Error("dragon is not a known monster type")
	}
	if !IsMonsterType("werewolf") {
		t.Error("werewolf is a known monster type")
	}
}

func TestDefaultMonsterIsKnown(t *testing.T) {
	if _, ok := Monster(DefaultMonster()); !ok {
		t.Fatal("default monster must be registered")
	}
}
