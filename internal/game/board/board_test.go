package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	b := Default()

	assert.Equal(t, 56, b.Len())
	assert.Equal(t, 14, b.JailIndex())

	// Tile IDs must match their board index.
	for i, tile := range b.Tiles() {
		assert.Equal(t, i, tile.ID, "tile %q has id %d at index %d", tile.Name, tile.ID, i)
	}

	start, ok := b.Tile(0)
	require.True(t, ok)
	assert.Equal(t, TileStart, start.Kind)

	gotoJail, ok := b.Tile(42)
	require.True(t, ok)
	assert.Equal(t, TileGoToJail, gotoJail.Kind)
}

func TestDefaultCatalogGroups(t *testing.T) {
	b := Default()

	wantSizes := map[string]int{
		"brown":     4,
		"lightblue": 5,
		"pink":      6,
		"orange":    4,
		"red":       6,
		"yellow":    4,
		"green":     4,
		"darkblue":  5,
	}
	for group, size := range wantSizes {
		assert.Len(t, b.GroupTiles(group), size, "group %s", group)
	}

	// Every grouped tile must carry purchase and construction pricing.
	for _, tile := range b.Tiles() {
		if tile.Kind != TileProperty {
			continue
		}
		assert.NotEmpty(t, tile.Group, "property %q has no group", tile.Name)
		assert.Greater(t, tile.Price, 0, "property %q", tile.Name)
		assert.Greater(t, tile.BaseRent, 0, "property %q", tile.Name)
		assert.Greater(t, tile.ConstructionCost, 0, "property %q", tile.Name)
	}
}

func TestPurchasable(t *testing.T) {
	assert.True(t, Tile{Kind: TileProperty}.Purchasable())
	assert.True(t, Tile{Kind: TileStation}.Purchasable())
	assert.True(t, Tile{Kind: TileUtility}.Purchasable())
	assert.False(t, Tile{Kind: TileTax}.Purchasable())
	assert.False(t, Tile{Kind: TileJail}.Purchasable())
	assert.False(t, Tile{Kind: TileStart}.Purchasable())
}

func TestTileOutOfRange(t *testing.T) {
	b := Default()

	_, ok := b.Tile(-1)
	assert.False(t, ok)
	_, ok = b.Tile(b.Len())
	assert.False(t, ok)
}

func TestNextStationFrom(t *testing.T) {
	b := Default()

	assert.Equal(t, 7, b.NextStationFrom(0))
	assert.Equal(t, 22, b.NextStationFrom(7), "scan starts after the current tile")
	assert.Equal(t, 48, b.NextStationFrom(40))
	assert.Equal(t, 7, b.NextStationFrom(50), "scan wraps past start")
}

func TestNextStationFromNoStations(t *testing.T) {
	b := New([]Tile{
		{ID: 0, Kind: TileStart},
		{ID: 1, Kind: TileProperty, Group: "brown", Price: 1, BaseRent: 1, ConstructionCost: 1},
	})
	assert.Equal(t, -1, b.NextStationFrom(0))
}

func TestDeckDrawDeterministic(t *testing.T) {
	deck := ChanceDeck()
	require.Equal(t, 8, deck.Size())
	assert.Equal(t, 6, CommunityFundDeck().Size())

	// Same seed, same draw sequence.
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		assert.Equal(t, deck.Draw(a), deck.Draw(b))
	}
}

func TestDeckDrawsWithReplacement(t *testing.T) {
	deck := NewDeck([]Card{{ID: 1, Effect: EffectCashDelta, Amount: 100}})
	rng := rand.New(rand.NewSource(1))

	// A single-card deck never exhausts.
	for i := 0; i < 5; i++ {
		assert.Equal(t, 1, deck.Draw(rng).ID)
	}
}

func TestJailCardTargetsJailTile(t *testing.T) {
	b := Default()
	deck := ChanceDeck()

	rng := rand.New(rand.NewSource(1))
	found := false
	for i := 0; i < 200 && !found; i++ {
		card := deck.Draw(rng)
		if card.Effect == EffectAbsoluteMove && card.Target == b.JailIndex() {
			found = true
		}
	}
	assert.True(t, found, "chance deck carries a go-to-jail card")
}
