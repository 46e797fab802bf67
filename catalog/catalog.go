package catalog

import (
	"strings"

	"github.com/therohitbiruli/dinex-menu/models"
)

// Uncategorized is the display bucket for items whose category is
// blank or no longer in the restaurant's category list.
const Uncategorized = "Uncategorized"

// Filter toggles, named exactly as shown to customers.
const (
	FilterVegetarian    = "Vegetarian"
	FilterNonVegetarian = "Non-Vegetarian"
	FilterPopular       = "Popular"
	FilterChefSpecial   = "Chef Special"
	FilterSpicy         = "Spicy"
)

// Search returns items whose name, description or category contains
// the query, case-insensitively. An empty query matches everything.
func Search(items []models.MenuItem, query string) []models.MenuItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var out []models.MenuItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Description), q) ||
			strings.Contains(strings.ToLower(item.Category), q) {
			out = append(out, item)
		}
	}
	return out
}

func matchesFilter(item models.MenuItem, filter string) bool {
	switch filter {
	case FilterVegetarian:
		return item.IsVeg
	case FilterNonVegetarian:
		return !item.IsVeg
	case FilterPopular:
		return item.Popular
	case FilterChefSpecial:
		return item.ChefSpecial
	case FilterSpicy:
		return item.SpiceLevel > 2
	default:
		// Unknown toggles never exclude anything.
		return true
	}
}

// Filter keeps items that satisfy every active toggle.
func Filter(items []models.MenuItem, active []string) []models.MenuItem {
	if len(active) == 0 {
		return items
	}
	var out []models.MenuItem
	for _, item := range items {
		keep := true
		for _, f := range active {
			if !matchesFilter(item, f) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// Query applies the text search and then the active toggles.
func Query(items []models.MenuItem, query string, active []string) []models.MenuItem {
	return Filter(Search(items, query), active)
}

type Group struct {
	Category string            `json:"category"`
	Items    []models.MenuItem `json:"items"`
}

// GroupByCategory partitions items into display groups following the
// restaurant's ordered category list. Empty groups are skipped. Items
// with a blank or unknown category land in a trailing Uncategorized
// group.
func GroupByCategory(items []models.MenuItem, categories []string) []Group {
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		index[c] = i
	}
	buckets := make([][]models.MenuItem, len(categories))
	var leftover []models.MenuItem
	for _, item := range items {
		if i, ok := index[item.Category]; ok && item.Category != "" {
			buckets[i] = append(buckets[i], item)
		} else {
			leftover = append(leftover, item)
		}
	}
	var groups []Group
	for i, c := range categories {
		if len(buckets[i]) == 0 {
			continue
		}
		groups = append(groups, Group{Category: c, Items: buckets[i]})
	}
	if len(leftover) > 0 {
		groups = append(groups, Group{Category: Uncategorized, Items: leftover})
	}
	return groups
}

// RemoveCategory drops a category from the ordered list and clears it
// from every item that referenced it. Items themselves are kept; they
// fall into the Uncategorized bucket on the next grouping.
func RemoveCategory(categories []string, items []models.MenuItem, name string) ([]string, []models.MenuItem) {
	kept := make([]string, 0, len(categories))
	for _, c := range categories {
		if c != name {
			kept = append(kept, c)
		}
	}
	updated := make([]models.MenuItem, len(items))
	copy(updated, items)
	for i := range updated {
		if updated[i].Category == name {
			updated[i].Category = ""
		}
	}
	return kept, updated
}

// SameCategorySet reports whether b is a reordering of a: same labels,
// same count, any order.
func SameCategorySet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, c := range a {
		counts[c]++
	}
	for _, c := range b {
		counts[c]--
		if counts[c] < 0 {
			return false
		}
	}
	return true
}
