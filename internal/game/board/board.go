package board

// TileKind identifies the effect class of a board tile
type TileKind string

const (
	TileStart         TileKind = "START"
	TileProperty      TileKind = "PROPERTY"
	TileStation       TileKind = "STATION"
	TileUtility       TileKind = "UTILITY"
	TileTax           TileKind = "TAX"
	TileChance        TileKind = "CHANCE"
	TileCommunityFund TileKind = "COMMUNITY_FUND"
	TileJail          TileKind = "JAIL"
	TileFreeParking   TileKind = "FREE_PARKING"
	TileGoToJail      TileKind = "GO_TO_JAIL"
)

// Tile is one cell of the board catalog. Tiles are static configuration and
// are never mutated at runtime; all dynamic state (owner, construction level)
// lives in the session ledger.
type Tile struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Kind             TileKind `json:"kind"`
	Price            int      `json:"price,omitempty"`
	BaseRent         int      `json:"baseRent,omitempty"`
	Group            string   `json:"group,omitempty"`
	ConstructionCost int      `json:"constructionCost,omitempty"`
	// TaxAmount is the fixed levy for TAX tiles. When TaxRate is non-zero
	// the tile is a percentage tax over cash plus property face value and
	// TaxAmount is ignored.
	TaxAmount int     `json:"taxAmount,omitempty"`
	TaxRate   float64 `json:"taxRate,omitempty"`
}

// Purchasable reports whether the tile can be owned by a player.
func (t Tile) Purchasable() bool {
	switch t.Kind {
	case TileProperty, TileStation, TileUtility:
		return true
	}
	return false
}

// Board is an immutable tile catalog shared by every session.
type Board struct {
	tiles     []Tile
	groups    map[string][]int
	jailIndex int
}

// New builds a Board from a tile list. The group index and the jail position
// are derived once up front.
func New(tiles []Tile) *Board {
	b := &Board{
		tiles:     tiles,
		groups:    make(map[string][]int),
		jailIndex: -1,
	}
	for _, t := range tiles {
		if t.Group != "" && t.Kind == TileProperty {
			b.groups[t.Group] = append(b.groups[t.Group], t.ID)
		}
		if t.Kind == TileJail {
			b.jailIndex = t.ID
		}
	}
	return b
}

// Default returns the standard 56-tile catalog.
func Default() *Board {
	return New(defaultTiles())
}

// Len returns the number of tiles on the board.
func (b *Board) Len() int {
	return len(b.tiles)
}

// Tile returns the tile at the given index; ok is false when the index is
// out of range.
func (b *Board) Tile(id int) (Tile, bool) {
	if id < 0 || id >= len(b.tiles) {
		return Tile{}, false
	}
	return b.tiles[id], true
}

// Tiles returns the full catalog in board order.
func (b *Board) Tiles() []Tile {
	return b.tiles
}

// JailIndex returns the position of the jail tile.
func (b *Board) JailIndex() int {
	return b.jailIndex
}

// GroupTiles returns the tile ids that make up a property group.
func (b *Board) GroupTiles(group string) []int {
	return b.groups[group]
}

// NextStationFrom scans forward from the given position (wrapping) and
// returns the index of the next station tile. Returns -1 on a board with no
// stations.
func (b *Board) NextStationFrom(pos int) int {
	for i := 1; i <= len(b.tiles); i++ {
		idx := (pos + i) % len(b.tiles)
		if b.tiles[idx].Kind == TileStation {
			return idx
		}
	}
	return -1
}
