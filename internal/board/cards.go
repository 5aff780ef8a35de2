package board

import "fmt"

// Deck identifies which of the two card decks a card belongs to.
type Deck int

const (
	DeckFate Deck = iota
	DeckGuild
)

func (d Deck) String() string {
	switch d {
	case DeckFate:
		return "fate"
	case DeckGuild:
		return "guild"
	default:
		return fmt.Sprintf("deck-%d", int(d))
	}
}

// EffectKind enumerates the ten card effect kinds.
type EffectKind int

const (
	EffectCollect EffectKind = iota
	EffectPay
	EffectMoveTo
	EffectMoveBack
	EffectGoToJail
	EffectGetOutOfJail
	EffectCollectFromEach
	EffectPayEach
	EffectRepair
	EffectNearest
)

var effectKindNames = map[EffectKind]string{
	EffectCollect:         "collect",
	EffectPay:             "pay",
	EffectMoveTo:          "move-to",
	EffectMoveBack:        "move-back",
	EffectGoToJail:        "go-to-jail",
	EffectGetOutOfJail:    "get-out-of-jail",
	EffectCollectFromEach: "collect-from-each",
	EffectPayEach:         "pay-each",
	EffectRepair:          "repair",
	EffectNearest:         "nearest",
}

func (k EffectKind) String() string {
	if name, ok := effectKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("effect-%d", int(k))
}

// Effect is a tagged card effect descriptor. Only the fields relevant to
// Kind are meaningful.
type Effect struct {
	Kind           EffectKind
	Amount         int       // collect, pay, collect-from-each, pay-each
	Position       int       // move-to destination
	CollectGo      bool      // move-to: pay GO salary when wrapping
	Spaces         int       // move-back distance
	PerTower       int       // repair charge per tower
	PerFortress    int       // repair charge per fortress
	Nearest        SpaceType // nearest: SpacePortal or SpaceManaWell
	RentMultiplier int       // nearest: 0 means no multiplier
}

// CardDefinition is one immutable deck entry.
type CardDefinition struct {
	ID     int
	Deck   Deck
	Text   string
	Effect Effect
}

// FateCards is the fate deck.
var FateCards = []CardDefinition{
	{ID: 1, Deck: DeckFate, Text: "A portal malfunction sends you to the Grand Portal. Collect 200 Crowns.", Effect: Effect{Kind: EffectMoveTo, Position: 0, CollectGo: true}},
	{ID: 2, Deck: DeckFate, Text: "The Arcane Council demands repairs. Pay 25 Crowns per Tower, 100 per Fortress.", Effect: Effect{Kind: EffectRepair, PerTower: 25, PerFortress: 100}},
	{ID: 3, Deck: DeckFate, Text: "You discover an ancient spellbook! Advance to Grand Spellhall.", Effect: Effect{Kind: EffectMoveTo, Position: 37, CollectGo: true}},
	{ID: 4, Deck: DeckFate, Text: "Dungeon Escape Scroll — keep until needed.", Effect: Effect{Kind: EffectGetOutOfJail}},
	{ID: 5, Deck: DeckFate, Text: "A mischievous spirit moves you back 3 spaces.", Effect: Effect{Kind: EffectMoveBack, Spaces: 3}},
	{ID: 6, Deck: DeckFate, Text: "Your enchantments have been sold! Collect 150 Crowns.", Effect: Effect{Kind: EffectCollect, Amount: 150}},
	{ID: 7, Deck: DeckFate, Text: "You've won a potion brewing competition! Collect 100 Crowns.", Effect: Effect{Kind: EffectCollect, Amount: 100}},
	{ID: 8, Deck: DeckFate, Text: "Advance to Southfire Portal. If you pass the Grand Portal, collect 200.", Effect: Effect{Kind: EffectMoveTo, Position: 25, CollectGo: true}},
	{ID: 9, Deck: DeckFate, Text: "A magical mishap requires repairs. Pay 40 Crowns per Tower, 115 per Fortress.", Effect: Effect{Kind: EffectRepair, PerTower: 40, PerFortress: 115}},
	{ID: 10, Deck: DeckFate, Text: "Bank error in your favor! Collect 200 Crowns.", Effect: Effect{Kind: EffectCollect, Amount: 200}},
	{ID: 11, Deck: DeckFate, Text: "You are cursed! Pay a curse removal fee of 50 Crowns.", Effect: Effect{Kind: EffectPay, Amount: 50}},
	{ID: 12, Deck: DeckFate, Text: "Advance to Frost Garden.", Effect: Effect{Kind: EffectMoveTo, Position: 6, CollectGo: true}},
	{ID: 13, Deck: DeckFate, Text: "You found a chest of ancient coins! Collect 20 Crowns.", Effect: Effect{Kind: EffectCollect, Amount: 20}},
	{ID: 14, Deck: DeckFate, Text: "Advance to the nearest Portal Station. Pay owner twice the normal rent.", Effect: Effect{Kind: EffectNearest, Nearest: SpacePortal, RentMultiplier: 2}},
	{ID: 15, Deck: DeckFate, Text: "Advance to the nearest Mana Well. Pay owner twice the normal rent.", Effect: Effect{Kind: EffectNearest, Nearest: SpaceManaWell, RentMultiplier: 2}},
	{ID: 16, Deck: DeckFate, Text: "Your magical investments pay off! Collect 50 Crowns.", Effect: Effect{Kind: EffectCollect, Amount: 50}},
}

// GuildCards is the guild deck.
var GuildCards = []CardDefinition{
	{ID: 1, Deck: DeckGuild, Text: "Scholarship award! Collect 200 Crowns.", Effect: Effect{Kind: EffectCollect, Amount: 200}},
	{ID: 2, Deck: DeckGuild, Text: "Academy fees due. Pay 150 Crowns.", Effect: Effect{Kind: EffectPay, Amount: 150}},
	{ID: 3, Deck: DeckGuild, Text: "Healing potion sale! Collect 50 Crowns from each player.", Effect: Effect{Kind: EffectCollectFromEach, Amount: 50}},
	{ID: 4, Deck: DeckGuild, Text: "You've been caught practicing forbidden magic. Go to the Dungeon.", Effect: Effect{Kind: EffectGoToJail}},
	{ID: 5, Deck: DeckGuild, Text: "Dungeon Escape Scroll — keep until needed.", Effect: Effect{Kind: EffectGetOutOfJail}},
	{ID: 6, Deck: DeckGuild, Text: "Receive an apprentice bonus of 25 Crowns.", Effect: Effect{Kind: EffectCollect, Amount: 25}},
	{ID: 7, Deck: DeckGuild, Text: "The Grand Council levies a special tax of 10 Crowns.", Effect: Effect{Kind: EffectPay, Amount: 10}},
	{ID: 8, Deck: DeckGuild, Text: "Your magical services are in demand! Collect 100 Crowns.", Effect: Effect{Kind: EffectCollect, Amount: 100}},
	{ID: 9, Deck: DeckGuild, Text: "Academy library fine. Pay 20 Crowns.", Effect: Effect{Kind: EffectPay, Amount: 20}},
	{ID: 10, Deck: DeckGuild, Text: "Inheritance from a distant relative! Collect 100 Crowns.", Effect: Effect{Kind: EffectCollect, Amount: 100}},
	{ID: 11, Deck: DeckGuild, Text: "Pay a guild membership fee of 50 Crowns.", Effect: Effect{Kind: EffectPay, Amount: 50}},
	{ID: 12, Deck: DeckGuild, Text: "It's your birthday! Collect 10 Crowns from each player.", Effect: Effect{Kind: EffectCollectFromEach, Amount: 10}},
	{ID: 13, Deck: DeckGuild, Text: "You sold your enchanted belongings. Collect 45 Crowns.", Effect: Effect{Kind: EffectCollect, Amount: 45}},
	{ID: 14, Deck: DeckGuild, Text: "Holiday fund matures! Collect 100 Crowns.", Effect: Effect{Kind: EffectCollect, Amount: 100}},
	{ID: 15, Deck: DeckGuild, Text: "Arcane Council repair assessment: Pay 40 Crowns per Tower, 115 per Fortress.", Effect: Effect{Kind: EffectRepair, PerTower: 40, PerFortress: 115}},
	{ID: 16, Deck: DeckGuild, Text: "Advance to the Grand Portal. Collect 200 Crowns.", Effect: Effect{Kind: EffectMoveTo, Position: 0, CollectGo: true}},
}

// CardsFor returns the deck contents for the given deck tag.
func CardsFor(deck Deck) []CardDefinition {
	if deck == DeckGuild {
		return GuildCards
	}
	return FateCards
}
