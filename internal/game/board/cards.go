package board

import "math/rand"

// CardEffect identifies what a drawn event card does.
type CardEffect string

const (
	// EffectCashDelta credits or debits the drawer by Amount.
	EffectCashDelta CardEffect = "CASH_DELTA"
	// EffectAbsoluteMove relocates the drawer to the Target tile.
	EffectAbsoluteMove CardEffect = "ABSOLUTE_MOVE"
	// EffectRelativeStep moves the drawer by Amount tiles (may be negative).
	EffectRelativeStep CardEffect = "RELATIVE_STEP"
	// EffectPayAllOthers makes the drawer pay Amount to every other player.
	EffectPayAllOthers CardEffect = "PAY_ALL_OTHERS"
	// EffectCollectFromAllOthers collects Amount from every other player.
	EffectCollectFromAllOthers CardEffect = "COLLECT_FROM_ALL_OTHERS"
	// EffectMoveToNearestStation relocates forward to the next station.
	EffectMoveToNearestStation CardEffect = "MOVE_TO_NEAREST_STATION"
)

// Card is one event card. Amount carries the cash delta or step count
// depending on the effect; Target is the destination for absolute moves.
type Card struct {
	ID     int        `json:"id"`
	Text   string     `json:"text"`
	Effect CardEffect `json:"effect"`
	Amount int        `json:"amount,omitempty"`
	Target int        `json:"target,omitempty"`
}

// Deck is a card list drawn from uniformly with replacement, so the deck
// never exhausts and every draw is independent.
type Deck struct {
	cards []Card
}

// NewDeck wraps a card list in a Deck.
func NewDeck(cards []Card) *Deck {
	return &Deck{cards: cards}
}

// Draw picks one card uniformly at random. The caller supplies the RNG so
// draws happen at the session's serialization point.
func (d *Deck) Draw(rng *rand.Rand) Card {
	return d.cards[rng.Intn(len(d.cards))]
}

// Size returns the number of distinct cards in the deck.
func (d *Deck) Size() int {
	return len(d.cards)
}

// ChanceDeck returns the standard chance deck.
func ChanceDeck() *Deck {
	return NewDeck([]Card{
		{ID: 1, Text: "Banka sana kâr payı ödedi.", Effect: EffectCashDelta, Amount: 1500000},
		{ID: 2, Text: "Hız sınırını aştın, ceza öde.", Effect: EffectCashDelta, Amount: -500000},
		{ID: 3, Text: "Başlangıç noktasına git.", Effect: EffectAbsoluteMove, Target: 0},
		{ID: 4, Text: "Üç kare geri git.", Effect: EffectRelativeStep, Amount: -3},
		{ID: 5, Text: "Doğrudan Nezarethaneye git.", Effect: EffectAbsoluteMove, Target: 14},
		{ID: 6, Text: "Tüm oyunculara 200B öde.", Effect: EffectPayAllOthers, Amount: 200000},
		{ID: 7, Text: "Piyangodan para kazandın!", Effect: EffectCashDelta, Amount: 2000000},
		{ID: 8, Text: "En yakın istasyona git.", Effect: EffectMoveToNearestStation},
	})
}

// CommunityFundDeck returns the standard community-fund deck.
func CommunityFundDeck() *Deck {
	return NewDeck([]Card{
		{ID: 1, Text: "Doktor parası öde.", Effect: EffectCashDelta, Amount: -500000},
		{ID: 2, Text: "Bankadan hata ile para geldi.", Effect: EffectCashDelta, Amount: 1000000},
		{ID: 3, Text: "Doğum günün kutlu olsun! Herkesten 100B al.", Effect: EffectCollectFromAllOthers, Amount: 100000},
		{ID: 4, Text: "Hayat sigortası vadesi doldu.", Effect: EffectCashDelta, Amount: 1000000},
		{ID: 5, Text: "Hastane masrafları.", Effect: EffectCashDelta, Amount: -1000000},
		{ID: 6, Text: "Vergi iadesi.", Effect: EffectCashDelta, Amount: 500000},
	})
}
