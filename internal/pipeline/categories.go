package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// Category pairs a cache namespace with the listing page it tracks.
type Category struct {
	Name        string
	ListingPath string
}

// DefaultCategories is the compiled-in processing order. Category names
// double as cache directory and artifact names, so they must stay
// filesystem-safe.
var DefaultCategories = []Category{
	{Name: "trinkets", ListingPath: "/items/armor/trinkets"},
	{Name: "rings", ListingPath: "/items/armor/rings"},
	{Name: "amulets", ListingPath: "/items/armor/amulets"},
	{Name: "weapons", ListingPath: "/items/weapons"},
}

// SelectCategories resolves user-supplied names against the compiled-in
// list, preserving compiled-in order. An empty selection means all
// categories.
func SelectCategories(names []string) ([]Category, error) {
	if len(names) == 0 {
		return DefaultCategories, nil
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		wanted[name] = struct{}{}
	}

	var selected []Category
	for _, category := range DefaultCategories {
		if _, ok := wanted[category.Name]; ok {
			selected = append(selected, category)
			delete(wanted, category.Name)
		}
	}
	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for name := range wanted {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown categories: %s (known: %s)", strings.Join(unknown, ", "), KnownCategoryNames())
	}
	return selected, nil
}

// KnownCategoryNames returns the compiled-in names as a comma-separated list.
func KnownCategoryNames() string {
	names := make([]string, len(DefaultCategories))
	for i, category := range DefaultCategories {
		names[i] = category.Name
	}
	return strings.Join(names, ", ")
}
