package services

import (
	"testing"

	"github.com/kirari-dev/streamtycoon/tycoon/economy"
	"github.com/kirari-dev/streamtycoon/tycoon/economy/effects"
)

func newShopPlayer(money int64) *economy.Player {
	p := economy.NewPlayer(economy.DefaultConfig(), economy.NopNotifier{})
	p.Money = money
	return p
}

func TestSearchEmptyQueryListsAll(t *testing.T) {
	s := NewShopSearchService()
	entries := s.Search("", newShopPlayer(0))
	if len(entries) != len(effects.ShopItems) {
		t.Fatalf("got %d entries, want the whole catalog of %d", len(entries), len(effects.ShopItems))
	}
}

func TestSearchFindsByName(t *testing.T) {
	s := NewShopSearchService()
	entries := s.Search("microphone", newShopPlayer(0))
	if len(entries) == 0 {
		t.Fatal("no results for microphone")
	}
	found := false
	for _, e := range entries {
		if e.Item.ID == "decent_mic" || e.Item.ID == "pro_mic" {
			found = true
		}
	}
	if !found {
		t.Fatalf("microphone search missed the mics: %v", ids(entries))
	}
}

func TestSearchAffordability(t *testing.T) {
	s := NewShopSearchService()
	rich := s.Search("decent microphone", newShopPlayer(100000))
	poor := s.Search("decent microphone", newShopPlayer(0))

	richMic := entryByID(rich, "decent_mic")
	poorMic := entryByID(poor, "decent_mic")
	if richMic == nil || poorMic == nil {
		t.Fatal("decent_mic not in results")
	}
	if !richMic.Affordable || poorMic.Affordable {
		t.Fatalf("affordability wrong: rich=%v poor=%v", richMic.Affordable, poorMic.Affordable)
	}
}

func TestSearchAvailability(t *testing.T) {
	s := NewShopSearchService()
	p := newShopPlayer(100000)

	entries := s.Search("", p)
	pro := entryByID(entries, "pro_mic")
	if pro == nil || pro.Available {
		t.Fatal("pro_mic should be unavailable without decent_mic")
	}

	p.Inventory = append(p.Inventory, economy.Purchase{ItemID: "decent_mic"})
	entries = s.Search("", p)
	if mic := entryByID(entries, "decent_mic"); mic == nil || mic.Available {
		t.Fatal("owned unique item should be unavailable")
	}
	if pro = entryByID(entries, "pro_mic"); pro == nil || !pro.Available {
		t.Fatal("pro_mic should open up once decent_mic is owned")
	}
}

func TestSearchScaledPricing(t *testing.T) {
	s := NewShopSearchService()
	p := newShopPlayer(100000)
	p.Inventory = append(p.Inventory, economy.Purchase{ItemID: "energy_drinks"})

	entries := s.Search("energy drink", p)
	drinks := entryByID(entries, "energy_drinks")
	if drinks == nil {
		t.Fatal("energy_drinks not found")
	}
	if drinks.Owned != 1 {
		t.Fatalf("Owned = %d, want 1", drinks.Owned)
	}
	base := effects.ItemByID("energy_drinks").Cost
	if drinks.Price <= base {
		t.Fatalf("Price = %d, want scaled above base %d", drinks.Price, base)
	}
}

func TestByCategory(t *testing.T) {
	s := NewShopSearchService()
	entries := s.ByCategory("audio", newShopPlayer(0))
	if len(entries) == 0 {
		t.Fatal("audio category empty")
	}
	for i, e := range entries {
		if e.Item.Category != "audio" {
			t.Fatalf("entry %q is not audio", e.Item.ID)
		}
		if i > 0 && entries[i-1].Price > e.Price {
			t.Fatal("category listing not sorted by price")
		}
	}
}

func entryByID(entries []ShopEntry, id string) *ShopEntry {
	for i := range entries {
		if entries[i].Item.ID == id {
			return &entries[i]
		}
	}
	return nil
}

func ids(entries []ShopEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Item.ID)
	}
	return out
}
