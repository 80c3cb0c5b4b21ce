package services

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/kirari-dev/streamtycoon/tycoon/economy"
	"github.com/kirari-dev/streamtycoon/tycoon/economy/effects"
)

// shopIndex implements fuzzy.Source over the item catalog, matching
// against name, category and description together.
type shopIndex []effects.Item

func (s shopIndex) Len() int { return len(s) }

func (s shopIndex) String(i int) string {
	it := s[i]
	return strings.ToLower(it.Name + " " + it.Category + " " + it.Description)
}

// ShopEntry is one search result with player-relative pricing.
type ShopEntry struct {
	Item       *effects.Item `json:"item"`
	Price      int64         `json:"price"` // scaled by copies already owned
	Owned      int           `json:"owned"`
	Affordable bool          `json:"affordable"`
	Available  bool          `json:"available"` // requirements met, repeat rules ok
}

// ShopSearchService answers catalog queries for the shells.
type ShopSearchService struct {
	index shopIndex
}

func NewShopSearchService() *ShopSearchService {
	return &ShopSearchService{index: shopIndex(effects.ShopItems)}
}

// Search returns catalog entries ranked by fuzzy relevance. An empty
// query lists the whole catalog grouped by category then price.
func (s *ShopSearchService) Search(query string, player *economy.Player) []ShopEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		entries := s.entries(player, nil)
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i].Item, entries[j].Item
			if a.Category != b.Category {
				return a.Category < b.Category
			}
			return entries[i].Price < entries[j].Price
		})
		return entries
	}

	matches := fuzzy.FindFrom(query, s.index)
	picked := make([]int, 0, len(matches))
	for _, m := range matches {
		picked = append(picked, m.Index)
	}
	return s.entries(player, picked)
}

// ByCategory lists the catalog entries for one category in price order.
func (s *ShopSearchService) ByCategory(category string, player *economy.Player) []ShopEntry {
	var picked []int
	for i := range s.index {
		if s.index[i].Category == category {
			picked = append(picked, i)
		}
	}
	entries := s.entries(player, picked)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Price < entries[j].Price })
	return entries
}

// entries materializes results for the given indices, nil meaning all.
func (s *ShopSearchService) entries(player *economy.Player, picked []int) []ShopEntry {
	if picked == nil {
		picked = make([]int, len(s.index))
		for i := range picked {
			picked[i] = i
		}
	}
	owned := ownedCounts(player)
	entries := make([]ShopEntry, 0, len(picked))
	for _, i := range picked {
		item := &effects.ShopItems[i]
		n := owned[item.ID]
		price := effects.ScaledCost(item, n)
		entries = append(entries, ShopEntry{
			Item:       item,
			Price:      price,
			Owned:      n,
			Affordable: player.Money >= price,
			Available:  available(item, n, owned),
		})
	}
	return entries
}

func available(item *effects.Item, owned int, counts map[string]int) bool {
	if owned > 0 && !item.Repeatable {
		return false
	}
	for _, req := range item.Requires {
		if counts[req] == 0 {
			return false
		}
	}
	return true
}

func ownedCounts(player *economy.Player) map[string]int {
	counts := make(map[string]int, len(player.Inventory))
	for _, p := range player.Inventory {
		counts[p.ItemID]++
	}
	return counts
}
