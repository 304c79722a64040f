package catalog

// Seed returns the built-in catalog snapshot used when no CATALOG_PATH is
// configured. Prices are in the fixed display currency unit.
func Seed() *Snapshot {
	snap, err := New(seedServices, seedOffers)
	if err != nil {
		panic(err)
	}
	return snap
}

var seedServices = []Service{
	{ID: "viu", Name: "Viu Premium", Category: CategoryStreaming, BasePrice: 149, CurrentPrice: 149, Popularity: 7.0,
		Features: []string{"Asian dramas", "Ad-free", "Full HD"}},
	{ID: "wetv", Name: "WeTV VIP", Category: CategoryStreaming, BasePrice: 129, CurrentPrice: 129, Popularity: 6.5,
		Features: []string{"C-dramas", "Early access"}},
	{ID: "iqiyi", Name: "iQIYI VIP", Category: CategoryStreaming, BasePrice: 139, CurrentPrice: 125, Seasonal: true, Popularity: 8.2,
		Features: []string{"Originals", "4K", "Offline viewing"}},
	{ID: "disney-plus", Name: "Disney+", Category: CategoryStreaming, BasePrice: 178, CurrentPrice: 178, Popularity: 8.5,
		Features: []string{"Marvel", "Pixar", "4 screens"}},
	{ID: "netflix-mobile", Name: "Netflix Mobile", Category: CategoryStreaming, BasePrice: 65, CurrentPrice: 65, Popularity: 9.0,
		Features: []string{"1 screen", "480p", "Phone and tablet only"}},
	{ID: "netflix-basic", Name: "Netflix Basic", Category: CategoryStreaming, BasePrice: 98, CurrentPrice: 98, Popularity: 9.0,
		Features: []string{"1 screen", "720p"}},
	{ID: "netflix-standard", Name: "Netflix Standard", Category: CategoryStreaming, BasePrice: 128, CurrentPrice: 128, Popularity: 9.2,
		Features: []string{"2 screens", "1080p"}},
	{ID: "netflix-premium", Name: "Netflix Premium", Category: CategoryStreaming, BasePrice: 158, CurrentPrice: 158, Popularity: 9.4,
		Features: []string{"4 screens", "4K", "Spatial audio"}},
	{ID: "spotify", Name: "Spotify Premium", Category: CategoryMusic, BasePrice: 58, CurrentPrice: 58, Popularity: 8.8,
		Features: []string{"Ad-free", "Offline playback"}},
	{ID: "joox", Name: "JOOX VIP", Category: CategoryMusic, BasePrice: 48, CurrentPrice: 45, Seasonal: true, Popularity: 5.5,
		Features: []string{"Karaoke", "Lossless"}},
	{ID: "kkbox", Name: "KKBOX Premium", Category: CategoryMusic, BasePrice: 49, CurrentPrice: 49, Popularity: 4.8,
		Features: []string{"Hi-Fi", "Lyrics"}},
}

var seedOffers = []OfferGroup{
	{ID: "offerGroup12", ServiceIDs: []string{"viu", "wetv"}, FullPrice: 278, SellingPrice: 119},
	{ID: "offerGroup21", ServiceIDs: []string{"iqiyi"}, FullPrice: 139, SellingPrice: 118},
	{ID: "offerGroup34", ServiceIDs: []string{"spotify", "joox"}, FullPrice: 106, SellingPrice: 88},
	{ID: "offerGroup47", ServiceIDs: []string{"viu", "wetv", "iqiyi", "disney-plus"}, FullPrice: 595, SellingPrice: 268, PromotionLabel: "Mega Pack"},
	{ID: "offerGroup52", ServiceIDs: []string{"netflix-standard", "viu"}, FullPrice: 277, SellingPrice: 238},
	{ID: "offerGroup63", ServiceIDs: []string{"netflix-premium", "viu", "wetv"}, FullPrice: 436, SellingPrice: 338},
	{ID: "offerGroup70", ServiceIDs: []string{"wetv", "iqiyi"}, FullPrice: 268, SellingPrice: 148},
	{ID: "offerGroup118", ServiceIDs: []string{"viu", "wetv", "iqiyi"}, FullPrice: 417, SellingPrice: 159, PromotionLabel: "Pack6"},
}
