package board

// defaultTiles returns the standard catalog: a 56-tile map of Turkish
// provinces, four stations, two utilities and the usual special tiles.
// Rent values are the unimproved base; the engine scales them by
// construction level. Utilities charge a flat base rent.
func defaultTiles() []Tile {
	return []Tile{
		// Bottom row
		{ID: 0, Name: "BAŞLANGIÇ", Kind: TileStart},
		{ID: 1, Name: "KİLİS", Kind: TileProperty, Price: 600000, BaseRent: 30000, Group: "brown", ConstructionCost: 300000},
		{ID: 2, Name: "OSMANİYE", Kind: TileProperty, Price: 600000, BaseRent: 30000, Group: "brown", ConstructionCost: 300000},
		{ID: 3, Name: "KAMU FONU", Kind: TileCommunityFund},
		{ID: 4, Name: "ŞANLIURFA", Kind: TileProperty, Price: 800000, BaseRent: 40000, Group: "brown", ConstructionCost: 400000},
		{ID: 5, Name: "GAZİANTEP", Kind: TileProperty, Price: 800000, BaseRent: 40000, Group: "brown", ConstructionCost: 400000},
		{ID: 6, Name: "GELİR VERGİSİ", Kind: TileTax, TaxAmount: 2000000},
		{ID: 7, Name: "HAYDARPAŞA", Kind: TileStation, Price: 2000000, BaseRent: 250000},
		{ID: 8, Name: "KARS", Kind: TileProperty, Price: 1000000, BaseRent: 50000, Group: "lightblue", ConstructionCost: 500000},
		{ID: 9, Name: "AĞRI", Kind: TileProperty, Price: 1000000, BaseRent: 50000, Group: "lightblue", ConstructionCost: 500000},
		{ID: 10, Name: "ŞANS", Kind: TileChance},
		{ID: 11, Name: "ERZİNCAN", Kind: TileProperty, Price: 1200000, BaseRent: 60000, Group: "lightblue", ConstructionCost: 600000},
		{ID: 12, Name: "ERZURUM", Kind: TileProperty, Price: 1200000, BaseRent: 60000, Group: "lightblue", ConstructionCost: 600000},
		{ID: 13, Name: "SİVAS", Kind: TileProperty, Price: 1400000, BaseRent: 70000, Group: "lightblue", ConstructionCost: 700000},

		// Left row
		{ID: 14, Name: "NEZARETHANE", Kind: TileJail},
		{ID: 15, Name: "ARTVİN", Kind: TileProperty, Price: 1400000, BaseRent: 70000, Group: "pink", ConstructionCost: 700000},
		{ID: 16, Name: "RİZE", Kind: TileProperty, Price: 1500000, BaseRent: 75000, Group: "pink", ConstructionCost: 750000},
		{ID: 17, Name: "TRABZON", Kind: TileProperty, Price: 1500000, BaseRent: 75000, Group: "pink", ConstructionCost: 750000},
		{ID: 18, Name: "GİRESUN", Kind: TileProperty, Price: 1600000, BaseRent: 80000, Group: "pink", ConstructionCost: 800000},
		{ID: 19, Name: "TEDAŞ", Kind: TileUtility, Price: 1500000, BaseRent: 100000},
		{ID: 20, Name: "ORDU", Kind: TileProperty, Price: 1600000, BaseRent: 80000, Group: "pink", ConstructionCost: 800000},
		{ID: 21, Name: "SAMSUN", Kind: TileProperty, Price: 1800000, BaseRent: 90000, Group: "pink", ConstructionCost: 900000},
		{ID: 22, Name: "ANKARA GARI", Kind: TileStation, Price: 2000000, BaseRent: 250000},
		{ID: 23, Name: "YOZGAT", Kind: TileProperty, Price: 1800000, BaseRent: 90000, Group: "orange", ConstructionCost: 900000},
		{ID: 24, Name: "ÇORUM", Kind: TileProperty, Price: 1900000, BaseRent: 95000, Group: "orange", ConstructionCost: 950000},
		{ID: 25, Name: "KAMU FONU", Kind: TileCommunityFund},
		{ID: 26, Name: "KIRŞEHİR", Kind: TileProperty, Price: 2000000, BaseRent: 100000, Group: "orange", ConstructionCost: 1000000},
		{ID: 27, Name: "NEVŞEHİR", Kind: TileProperty, Price: 2000000, BaseRent: 100000, Group: "orange", ConstructionCost: 1000000},

		// Top row
		{ID: 28, Name: "ÜCRETSİZ OTOPARK", Kind: TileFreeParking},
		{ID: 29, Name: "KAYSERİ", Kind: TileProperty, Price: 2200000, BaseRent: 110000, Group: "red", ConstructionCost: 1100000},
		{ID: 30, Name: "KONYA", Kind: TileProperty, Price: 2200000, BaseRent: 110000, Group: "red", ConstructionCost: 1100000},
		{ID: 31, Name: "ADANA", Kind: TileProperty, Price: 2400000, BaseRent: 120000, Group: "red", ConstructionCost: 1200000},
		{ID: 32, Name: "MERSİN", Kind: TileProperty, Price: 2400000, BaseRent: 120000, Group: "red", ConstructionCost: 1200000},
		{ID: 33, Name: "ŞANS", Kind: TileChance},
		{ID: 34, Name: "ANTALYA", Kind: TileProperty, Price: 2600000, BaseRent: 130000, Group: "red", ConstructionCost: 1300000},
		{ID: 35, Name: "MUĞLA", Kind: TileProperty, Price: 2600000, BaseRent: 130000, Group: "red", ConstructionCost: 1300000},
		{ID: 36, Name: "ALSANCAK GARI", Kind: TileStation, Price: 2000000, BaseRent: 250000},
		{ID: 37, Name: "AYDIN", Kind: TileProperty, Price: 2800000, BaseRent: 140000, Group: "yellow", ConstructionCost: 1400000},
		{ID: 38, Name: "DENİZLİ", Kind: TileProperty, Price: 2800000, BaseRent: 140000, Group: "yellow", ConstructionCost: 1400000},
		{ID: 39, Name: "İSKİ", Kind: TileUtility, Price: 1500000, BaseRent: 100000},
		{ID: 40, Name: "MANİSA", Kind: TileProperty, Price: 3000000, BaseRent: 150000, Group: "yellow", ConstructionCost: 1500000},
		{ID: 41, Name: "İZMİR", Kind: TileProperty, Price: 3200000, BaseRent: 160000, Group: "yellow", ConstructionCost: 1600000},

		// Right row
		{ID: 42, Name: "HAPSE GİR", Kind: TileGoToJail},
		{ID: 43, Name: "ÇANAKKALE", Kind: TileProperty, Price: 3200000, BaseRent: 160000, Group: "green", ConstructionCost: 1600000},
		{ID: 44, Name: "BALIKESİR", Kind: TileProperty, Price: 3400000, BaseRent: 170000, Group: "green", ConstructionCost: 1700000},
		{ID: 45, Name: "KAMU FONU", Kind: TileCommunityFund},
		{ID: 46, Name: "BURSA", Kind: TileProperty, Price: 3400000, BaseRent: 170000, Group: "green", ConstructionCost: 1700000},
		{ID: 47, Name: "ESKİŞEHİR", Kind: TileProperty, Price: 3600000, BaseRent: 180000, Group: "green", ConstructionCost: 1800000},
		{ID: 48, Name: "SİRKECİ GARI", Kind: TileStation, Price: 2000000, BaseRent: 250000},
		{ID: 49, Name: "ŞANS", Kind: TileChance},
		{ID: 50, Name: "SAKARYA", Kind: TileProperty, Price: 3800000, BaseRent: 190000, Group: "darkblue", ConstructionCost: 1000000},
		{ID: 51, Name: "KOCAELİ", Kind: TileProperty, Price: 3800000, BaseRent: 190000, Group: "darkblue", ConstructionCost: 1000000},
		{ID: 52, Name: "LÜKS VERGİSİ", Kind: TileTax, TaxRate: 0.10},
		{ID: 53, Name: "TEKİRDAĞ", Kind: TileProperty, Price: 4000000, BaseRent: 200000, Group: "darkblue", ConstructionCost: 1200000},
		{ID: 54, Name: "EDİRNE", Kind: TileProperty, Price: 4000000, BaseRent: 200000, Group: "darkblue", ConstructionCost: 1200000},
		{ID: 55, Name: "ARDAHAN", Kind: TileProperty, Price: 6000000, BaseRent: 500000, Group: "darkblue", ConstructionCost: 2000000},
	}
}
