// Package board holds the immutable catalog for the Arcane Estates board:
// the 40 space definitions, the color groups, and the gameplay constants.
// It is pure data with lookup helpers; all mutable game state lives in
// internal/game.
package board

import "fmt"

// Size is the number of spaces on the board.
const Size = 40

// Gameplay constants.
const (
	GoSalary       = 200
	JailFine       = 50
	MaxJailTurns   = 3
	MaxDoubles     = 3
	StartingCrowns = 1500
	MaxTowers      = 4
	MaxPlayers     = 6
	MinPlayers     = 2

	JailPosition = 10

	// AuctionCountdownSeconds is the default wall-clock countdown for an
	// open auction.
	AuctionCountdownSeconds = 30
)

// SpaceType classifies a board space.
type SpaceType int

const (
	SpaceGo SpaceType = iota
	SpaceProperty
	SpacePortal
	SpaceManaWell
	SpaceJail
	SpaceFreeParking
	SpaceGoToJail
	SpaceFateCard
	SpaceGuildCard
	SpaceTax
)

var spaceTypeNames = map[SpaceType]string{
	SpaceGo:          "go",
	SpaceProperty:    "property",
	SpacePortal:      "portal",
	SpaceManaWell:    "mana-well",
	SpaceJail:        "jail",
	SpaceFreeParking: "free-parking",
	SpaceGoToJail:    "go-to-jail",
	SpaceFateCard:    "fate-card",
	SpaceGuildCard:   "guild-card",
	SpaceTax:         "tax",
}

func (t SpaceType) String() string {
	if name, ok := spaceTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("space-type-%d", int(t))
}

// Purchasable reports whether a space of this type can be owned by a player.
func (t SpaceType) Purchasable() bool {
	return t == SpaceProperty || t == SpacePortal || t == SpaceManaWell
}

// ColorGroup identifies a rent-doubling set of ordinary properties.
type ColorGroup string

const (
	ColorBrown     ColorGroup = "brown"
	ColorLightBlue ColorGroup = "light-blue"
	ColorPink      ColorGroup = "pink"
	ColorOrange    ColorGroup = "orange"
	ColorRed       ColorGroup = "red"
	ColorYellow    ColorGroup = "yellow"
	ColorGreen     ColorGroup = "green"
	ColorDarkBlue  ColorGroup = "dark-blue"
)

// ColorGroups maps each color group to the space indices that form it.
var ColorGroups = map[ColorGroup][]int{
	ColorBrown:     {1, 3},
	ColorLightBlue: {6, 8, 9},
	ColorPink:      {11, 13, 14},
	ColorOrange:    {16, 18, 19},
	ColorRed:       {21, 23, 24},
	ColorYellow:    {26, 27, 29},
	ColorGreen:     {31, 32, 34},
	ColorDarkBlue:  {37, 39},
}

// PortalPositions are the four portal station spaces.
var PortalPositions = []int{5, 15, 25, 35}

// ManaWellPositions are the two mana well spaces.
var ManaWellPositions = []int{12, 28}

// PortalRents indexes rent by the number of portals the owner holds (1-4).
var PortalRents = []int{25, 50, 100, 200}

// SpaceDefinition is one immutable catalog entry.
//
// For ordinary properties Rent has six entries: base, one to four towers,
// fortress. Cost doubles as the tax amount for tax spaces.
type SpaceDefinition struct {
	Index     int
	Name      string
	Type      SpaceType
	Color     ColorGroup
	Cost      int
	Rent      []int
	TowerCost int
	Mortgage  int
}

// Space returns the definition at index, or false if out of range.
func Space(index int) (SpaceDefinition, bool) {
	if index < 0 || index >= Size {
		return SpaceDefinition{}, false
	}
	return Spaces[index], true
}

// Spaces is the full board in play order, GO at index 0.
var Spaces = [Size]SpaceDefinition{
	{Index: 0, Name: "The Grand Portal", Type: SpaceGo},
	{Index: 1, Name: "Dusty Attic", Type: SpaceProperty, Color: ColorBrown, Cost: 60, Rent: []int{2, 10, 30, 90, 160, 250}, TowerCost: 50, Mortgage: 30},
	{Index: 2, Name: "Guild Card", Type: SpaceGuildCard},
	{Index: 3, Name: "Candle Corridor", Type: SpaceProperty, Color: ColorBrown, Cost: 60, Rent: []int{4, 20, 60, 180, 320, 450}, TowerCost: 50, Mortgage: 30},
	{Index: 4, Name: "Wizard's Tithe", Type: SpaceTax, Cost: 200},
	{Index: 5, Name: "Northgate Portal", Type: SpacePortal, Cost: 200, Mortgage: 100},
	{Index: 6, Name: "Frost Garden", Type: SpaceProperty, Color: ColorLightBlue, Cost: 100, Rent: []int{6, 30, 90, 270, 400, 550}, TowerCost: 50, Mortgage: 50},
	{Index: 7, Name: "Fate Card", Type: SpaceFateCard},
	{Index: 8, Name: "Moonwell Plaza", Type: SpaceProperty, Color: ColorLightBlue, Cost: 100, Rent: []int{6, 30, 90, 270, 400, 550}, TowerCost: 50, Mortgage: 50},
	{Index: 9, Name: "Silver Brook", Type: SpaceProperty, Color: ColorLightBlue, Cost: 120, Rent: []int{8, 40, 100, 300, 450, 600}, TowerCost: 50, Mortgage: 60},
	{Index: 10, Name: "The Dungeon", Type: SpaceJail},
	{Index: 11, Name: "Potion Cellar", Type: SpaceProperty, Color: ColorPink, Cost: 140, Rent: []int{10, 50, 150, 450, 625, 750}, TowerCost: 100, Mortgage: 70},
	{Index: 12, Name: "Water Mana Well", Type: SpaceManaWell, Cost: 150, Mortgage: 75},
	{Index: 13, Name: "Herb Greenhouse", Type: SpaceProperty, Color: ColorPink, Cost: 140, Rent: []int{10, 50, 150, 450, 625, 750}, TowerCost: 100, Mortgage: 70},
	{Index: 14, Name: "Crystal Lab", Type: SpaceProperty, Color: ColorPink, Cost: 160, Rent: []int{12, 60, 180, 500, 700, 900}, TowerCost: 100, Mortgage: 80},
	{Index: 15, Name: "Eastwind Portal", Type: SpacePortal, Cost: 200, Mortgage: 100},
	{Index: 16, Name: "Rune Library", Type: SpaceProperty, Color: ColorOrange, Cost: 180, Rent: []int{14, 70, 200, 550, 750, 950}, TowerCost: 100, Mortgage: 90},
	{Index: 17, Name: "Guild Card", Type: SpaceGuildCard},
	{Index: 18, Name: "Scroll Archive", Type: SpaceProperty, Color: ColorOrange, Cost: 180, Rent: []int{14, 70, 200, 550, 750, 950}, TowerCost: 100, Mortgage: 90},
	{Index: 19, Name: "Prophecy Hall", Type: SpaceProperty, Color: ColorOrange, Cost: 200, Rent: []int{16, 80, 220, 600, 800, 1000}, TowerCost: 100, Mortgage: 100},
	{Index: 20, Name: "Enchanted Garden", Type: SpaceFreeParking},
	{Index: 21, Name: "Dragon Roost", Type: SpaceProperty, Color: ColorRed, Cost: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, TowerCost: 150, Mortgage: 110},
	{Index: 22, Name: "Fate Card", Type: SpaceFateCard},
	{Index: 23, Name: "Phoenix Aviary", Type: SpaceProperty, Color: ColorRed, Cost: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, TowerCost: 150, Mortgage: 110},
	{Index: 24, Name: "Griffin Stable", Type: SpaceProperty, Color: ColorRed, Cost: 240, Rent: []int{20, 100, 300, 750, 925, 1100}, TowerCost: 150, Mortgage: 120},
	{Index: 25, Name: "Southfire Portal", Type: SpacePortal, Cost: 200, Mortgage: 100},
	{Index: 26, Name: "Starlight Tower", Type: SpaceProperty, Color: ColorYellow, Cost: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, TowerCost: 150, Mortgage: 130},
	{Index: 27, Name: "Astral Observatory", Type: SpaceProperty, Color: ColorYellow, Cost: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, TowerCost: 150, Mortgage: 130},
	{Index: 28, Name: "Lightning Mana Well", Type: SpaceManaWell, Cost: 150, Mortgage: 75},
	{Index: 29, Name: "Eclipse Chamber", Type: SpaceProperty, Color: ColorYellow, Cost: 280, Rent: []int{24, 120, 360, 850, 1025, 1200}, TowerCost: 150, Mortgage: 140},
	{Index: 30, Name: "Banished!", Type: SpaceGoToJail},
	{Index: 31, Name: "Enchanted Forge", Type: SpaceProperty, Color: ColorGreen, Cost: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, TowerCost: 200, Mortgage: 150},
	{Index: 32, Name: "Arcane Armory", Type: SpaceProperty, Color: ColorGreen, Cost: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, TowerCost: 200, Mortgage: 150},
	{Index: 33, Name: "Guild Card", Type: SpaceGuildCard},
	{Index: 34, Name: "Mythril Vault", Type: SpaceProperty, Color: ColorGreen, Cost: 320, Rent: []int{28, 150, 450, 1000, 1200, 1400}, TowerCost: 200, Mortgage: 160},
	{Index: 35, Name: "Westmist Portal", Type: SpacePortal, Cost: 200, Mortgage: 100},
	{Index: 36, Name: "Fate Card", Type: SpaceFateCard},
	{Index: 37, Name: "Grand Spellhall", Type: SpaceProperty, Color: ColorDarkBlue, Cost: 350, Rent: []int{35, 175, 500, 1100, 1300, 1500}, TowerCost: 200, Mortgage: 175},
	{Index: 38, Name: "Enchantment Fee", Type: SpaceTax, Cost: 100},
	{Index: 39, Name: "Arcanum Throne Room", Type: SpaceProperty, Color: ColorDarkBlue, Cost: 400, Rent: []int{50, 200, 600, 1400, 1700, 2000}, TowerCost: 200, Mortgage: 200},
}

// PlayerTokens are the selectable lobby tokens, in auto-assignment order.
var PlayerTokens = []string{
	"wizard-hat",
	"crystal-ball",
	"dragon",
	"cauldron",
	"wand",
	"owl",
}
