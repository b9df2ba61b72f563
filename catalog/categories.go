package catalog

import "github.com/agentbazaar/bazaar/types"

// CategoryInfo is the display metadata of a category.
type CategoryInfo struct {
	Value types.Category
	Label string
	Icon  string
}

var categoryMeta = map[types.Category]struct{ label, icon string }{
	types.Productivity: {"Productivity", "⚡"},
	types.Marketing:    {"Marketing", "📣"},
	types.Personal:     {"Personal", "🧘"},
	types.Ecommerce:    {"E-commerce", "🛒"},
	types.DevTools:     {"Dev Tools", "🛠"},
	types.Finance:      {"Finance", "💰"},
}

// Categories lists display metadata in the order of types.AllCategories.
var Categories = buildCategories()

func buildCategories() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(types.AllCategories))
	for _, c := range types.AllCategories {
		info := CategoryInfo{Value: c, Label: string(c)}
		if meta, ok := categoryMeta[c]; ok {
			info.Label, info.Icon = meta.label, meta.icon
		}
		out = append(out, info)
	}
	return out
}

// CategoryLabel returns the label for c, "All" for the empty category and
// the raw value for unknown ones.
func CategoryLabel(c types.Category) string {
	if c == "" {
		return "All"
	}
	if meta, ok := categoryMeta[c]; ok {
		return meta.label
	}
	return string(c)
}

// NextCategory cycles All -> each category -> All.
func NextCategory(c types.Category) types.Category {
	if c == "" {
		return Categories[0].Value
	}
	for i, info := range Categories {
		if info.Value == c {
			if i == len(Categories)-1 {
				return ""
			}
			return Categories[i+1].Value
		}
	}
	return ""
}
