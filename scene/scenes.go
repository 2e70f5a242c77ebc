package scene

// Village layout: Forest <-> Village <-> Houses <-> Hiding Spots.
var villageScene = &Scene{
	Name: "Village",
	Locations: map[int]Location{
		0:  {ID: 0, Name: "Forest", Type: TypeSpawn, Description: "Monster spawn point"},
		1:  {ID: 1, Name: "Village", Type: TypeSafe, Description: "Central village area"},
		2:  {ID: 2, Name: "House 1", Type: TypeSafe},
		3:  {ID: 3, Name: "House 2", Type: TypeSafe},
		4:  {ID: 4, Name: "House 3", Type: TypeSafe},
		5:  {ID: 5, Name: "House 4", Type: TypeSafe},
		6:  {ID: 6, Name: "House 5", Type: TypeSafe},
		7:  {ID: 7, Name: "Under Bed", Type: TypeHiding},
		8:  {ID: 8, Name: "Behind Door", Type: TypeHiding},
		9:  {ID: 9, Name: "In Closet", Type: TypeHiding},
		10: {ID: 10, Name: "Under Bed", Type: TypeHiding},
		11: {ID: 11, Name: "Behind Door", Type: TypeHiding},
		12: {ID: 12, Name: "In Closet", Type: TypeHiding},
		13: {ID: 13, Name: "Under Bed", Type: TypeHiding},
		14: {ID: 14, Name: "Behind Door", Type: TypeHiding},
		15: {ID: 15, Name: "In Closet", Type: TypeHiding},
		16: {ID: 16, Name: "Under Bed", Type: TypeHiding},
		17: {ID: 17, Name: "Behind Door", Type: TypeHiding},
		18: {ID: 18, Name: "In Closet", Type: TypeHiding},
		19: {ID: 19, Name: "Under Bed", Type: TypeHiding},
		20: {ID: 20, Name: "Behind Door", Type: TypeHiding},
		21: {ID: 21, Name: "In Closet", Type: TypeHiding},
	},
	Adjacency: map[int][]int{
		0:  {1},
		1:  {0, 2, 3, 4, 5, 6},
		2:  {1, 7, 8, 9},
		3:  {1, 10, 11, 12},
		4:  {1, 13, 14, 15},
		5:  {1, 16, 17, 18},
		6:  {1, 19, 20, 21},
		7:  {2},
		8:  {2},
		9:  {2},
		10: {3},
		11: {3},
		12: {3},
		13: {4},
		14: {4},
		15: {4},
		16: {5},
		17: {5},
		18: {5},
		19: {6},
		20: {6},
		21: {6},
	},
	MonsterSpawn: 0,
	PlayerSpawn:  1,
	Backgrounds: Backgrounds{
		Night: "village_night",
		Day:   "village_day",
	},
}

// Castle layout: Castle Outside <-> Hall <-> Floors <-> Rooms <-> Hiding Spots.
var castleScene = &Scene{
	Name: "Castle",
	Locations: map[int]Location{
		0:  {ID: 0, Name: "Castle Outside", Type: TypeSpawn, Description: "Monster spawn point"},
		1:  {ID: 1, Name: "Hall", Type: TypeSafe, Description: "Central castle hall"},
		2:  {ID: 2, Name: "Floor 1", Type: TypeSafe},
		3:  {ID: 3, Name: "Floor 2", Type: TypeSafe},
		4:  {ID: 4, Name: "Floor 3", Type: TypeSafe},
		5:  {ID: 5, Name: "Bedroom 1", Type: TypeSafe},
		6:  {ID: 6, Name: "Dining Area 1", Type: TypeSafe},
		7:  {ID: 7, Name: "Kitchen 1", Type: TypeSafe},
		8:  {ID: 8, Name: "Bedroom 2", Type: TypeSafe},
		9:  {ID: 9, Name: "Dining Area 2", Type: TypeSafe},
		10: {ID: 10, Name: "Kitchen 2", Type: TypeSafe},
		11: {ID: 11, Name: "Bedroom 3", Type: TypeSafe},
		12: {ID: 12, Name: "Dining Area 3", Type: TypeSafe},
		13: {ID: 13, Name: "Kitchen 3", Type: TypeSafe},
		14: {ID: 14, Name: "Under Bed", Type: TypeHiding},
		15: {ID: 15, Name: "In Closet", Type: TypeHiding},
		16: {ID: 16, Name: "Under Table", Type: TypeHiding},
		17: {ID: 17, Name: "Behind Curtain", Type: TypeHiding},
		18: {ID: 18, Name: "Behind Shelf", Type: TypeHiding},
		19: {ID: 19, Name: "In Barrel", Type: TypeHiding},
		20: {ID: 20, Name: "Under Bed", Type: TypeHiding},
		21: {ID: 21, Name: "In Closet", Type: TypeHiding},
		22: {ID: 22, Name: "Under Table", Type: TypeHiding},
		23: {ID: 23, Name: "Behind Curtain", Type: TypeHiding},
		24: {ID: 24, Name: "Behind Shelf", Type: TypeHiding},
		25: {ID: 25, Name: "In Barrel", Type: TypeHiding},
		26: {ID: 26, Name: "Under Bed", Type: TypeHiding},
		27: {ID: 27, Name: "In Closet", Type: TypeHiding},
		28: {ID: 28, Name: "Under Table", Type: TypeHiding},
		29: {ID: 29, Name: "Behind Curtain", Type: TypeHiding},
		30: {ID: 30, Name: "Behind Shelf", Type: TypeHiding},
		31: {ID: 31, Name: "In Barrel", Type: TypeHiding},
	},
	Adjacency: map[int][]int{
		0:  {1},
		1:  {0, 2, 3, 4},
		2:  {1, 5, 6, 7},
		5:  {2, 14, 15},
		6:  {2, 16, 17},
		7:  {2, 18, 19},
		14: {5},
		15: {5},
		16: {6},
		17: {6},
		18: {7},
		19: {7},
		3:  {1, 8, 9, 10},
		8:  {3, 20, 21},
		9:  {3, 22, 23},
		10: {3, 24, 25},
		20: {8},
		21: {8},
		22: {9},
		23: {9},
		24: {10},
		25: {10},
		4:  {1, 11, 12, 13},
		11: {4, 26, 27},
		12: {4, 28, 29},
		13: {4, 30, 31},
		26: {11},
		27: {11},
		28: {12},
		29: {12},
		30: {13},
		31: {13},
	},
	MonsterSpawn: 0,
	PlayerSpawn:  1,
	Backgrounds: Backgrounds{
		Night: "castle_night",
		Day:   "castle_day",
	},
}
