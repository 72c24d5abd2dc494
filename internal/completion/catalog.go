package completion

import "strings"

// ItemKind tags a suggestion catalog entry.
type ItemKind int

const (
	ItemFilter      ItemKind = iota // key:value filter
	ItemCombination                 // several filters accepted together
	ItemCommand                     // in-band slash command
	ItemHistory                     // previously used query
	ItemView                        // saved view
)

var itemKindNames = map[ItemKind]string{
	ItemFilter:      "filter",
	ItemCombination: "combination",
	ItemCommand:     "command",
	ItemHistory:     "history",
	ItemView:        "view",
}

func (k ItemKind) String() string {
	if s, ok := itemKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseItemKind maps a kind name back to its ItemKind.
func ParseItemKind(s string) (ItemKind, bool) {
	for k, name := range itemKindNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return k, true
		}
	}
	return 0, false
}

// BulkReplaces reports whether accepting an item of this kind replaces the
// whole fragment sequence instead of appending to it.
func (k ItemKind) BulkReplaces() bool {
	return k == ItemCombination || k == ItemHistory || k == ItemView
}

// Item is a single suggestion. Key is only set for filters; for every other
// kind Value is the literal fragment text.
type Item struct {
	Kind        ItemKind
	Key         string
	Value       string
	Description string
}

// Text returns the fragment text that accepting the item produces.
func (i Item) Text() string {
	if i.Kind == ItemFilter {
		return i.Key + ":" + i.Value
	}
	return i.Value
}

// Slash commands recognized in the live input.
const (
	CommandHistory = "/history"
	CommandViews   = "/views"
	CommandHelp    = "/help"
)

// DefaultCommands returns the fixed slash-command list.
func DefaultCommands() []Item {
	return []Item{
		{Kind: ItemCommand, Value: CommandHistory, Description: "Show search history"},
		{Kind: ItemCommand, Value: CommandViews, Description: "Show saved views"},
		{Kind: ItemCommand, Value: CommandHelp, Description: "Show available commands"},
	}
}

// Catalog is the read-only suggestion source handed to the engine at
// construction. Accessors return copies so callers cannot mutate it.
type Catalog struct {
	filters      []Item
	combinations []Item
	history      []Item
	views        []Item
	commands     []Item
}

// CatalogSource lists the raw entries a Catalog is built from.
type CatalogSource struct {
	Filters      []Item
	Combinations []Item
	History      []Item
	Views        []Item
	Commands     []Item
}

// NewCatalog builds an immutable catalog. Entries are re-tagged with the kind
// of the list they came from, entries with an empty value are dropped, and
// duplicates (same fragment text) keep their first occurrence. A nil Commands
// list means DefaultCommands.
func NewCatalog(src CatalogSource) *Catalog {
	commands := src.Commands
	if commands == nil {
		commands = DefaultCommands()
	}
	return &Catalog{
		filters:      normalize(src.Filters, ItemFilter),
		combinations: normalize(src.Combinations, ItemCombination),
		history:      normalize(src.History, ItemHistory),
		views:        normalize(src.Views, ItemView),
		commands:     normalize(commands, ItemCommand),
	}
}

func normalize(items []Item, kind ItemKind) []Item {
	out := make([]Item, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		it.Kind = kind
		it.Key = strings.TrimSpace(it.Key)
		it.Value = strings.TrimSpace(it.Value)
		if it.Value == "" || (kind == ItemFilter && it.Key == "") {
			continue
		}
		if seen[it.Text()] {
			continue
		}
		seen[it.Text()] = true
		out = append(out, it)
	}
	return out
}

func (c *Catalog) Filters() []Item      { return clone(c.filters) }
func (c *Catalog) Combinations() []Item { return clone(c.combinations) }
func (c *Catalog) History() []Item      { return clone(c.history) }
func (c *Catalog) Views() []Item        { return clone(c.views) }
func (c *Catalog) Commands() []Item     { return clone(c.commands) }

// Source returns the catalog's entries in the shape NewCatalog accepts.
func (c *Catalog) Source() CatalogSource {
	return CatalogSource{
		Filters:      c.Filters(),
		Combinations: c.Combinations(),
		History:      c.History(),
		Views:        c.Views(),
		Commands:     c.Commands(),
	}
}

// Size returns the total number of entries.
func (c *Catalog) Size() int {
	return len(c.filters) + len(c.combinations) + len(c.history) + len(c.views) + len(c.commands)
}

// FilterKeys returns the distinct filter keys in catalog order.
func (c *Catalog) FilterKeys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, f := range c.filters {
		if !seen[f.Key] {
			seen[f.Key] = true
			keys = append(keys, f.Key)
		}
	}
	return keys
}

func clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
