// Package completion selects the suggestion list shown under the composer.
package completion

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Category labels shown above the suggestion list.
const (
	CategorySuggested = "Suggested Filters"
	CategoryCommands  = "Available Commands"
	CategoryHistory   = "Search History"
	CategoryViews     = "Saved Views"
	CategoryMatching  = "Matching Filters"
	CategoryAvailable = "Available Filters"
)

// Result is the category label and ordered items the panel should show.
type Result struct {
	Category string
	Items    []Item
}

// Len returns the number of items.
func (r Result) Len() int {
	return len(r.Items)
}

// Item returns the item at index i.
func (r Result) Item(i int) (Item, bool) {
	if i < 0 || i >= len(r.Items) {
		return Item{}, false
	}
	return r.Items[i], true
}

// Engine maps the live text onto a category and item list. It is a pure
// function of its input and the catalog it was built with.
type Engine struct {
	catalog       *Catalog
	fuzzyFallback bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithFuzzyFallback ranks filter keys with fuzzy matching when the plain
// substring match for "Available Filters" finds nothing.
func WithFuzzyFallback(enabled bool) Option {
	return func(e *Engine) {
		e.fuzzyFallback = enabled
	}
}

// NewEngine creates an engine over the given catalog. A nil catalog behaves
// like an empty one with the default commands.
func NewEngine(catalog *Catalog, opts ...Option) *Engine {
	if catalog == nil {
		catalog = NewCatalog(CatalogSource{})
	}
	e := &Engine{catalog: catalog}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine reads from.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Evaluate selects the suggestion category and items for the live text.
// The first matching rule wins:
//
//   - empty text: the initial suggestion set, with or without fragments
//   - exactly /history or /views: that command's full list
//   - leading '/': commands with the text as prefix
//   - contains ':': filters whose key starts with the part before the first ':'
//   - anything else: filters whose key contains the text
//
// Key comparisons ignore case. The fragments flag does not change the result:
// empty text shows the initial set whether or not fragments exist.
func (e *Engine) Evaluate(text string, _ bool) Result {
	switch {
	case text == "":
		return e.Initial()
	case text == CommandHistory || text == CommandViews:
		r, _ := e.commandList(text)
		return r
	case strings.HasPrefix(text, "/"):
		return Result{Category: CategoryCommands, Items: e.commandsWithPrefix(text)}
	case strings.Contains(text, ":"):
		key, _, _ := strings.Cut(text, ":")
		return Result{Category: CategoryMatching, Items: e.filtersWhere(func(k string) bool {
			return strings.HasPrefix(k, strings.ToLower(key))
		})}
	default:
		needle := strings.ToLower(text)
		items := e.filtersWhere(func(k string) bool {
			return strings.Contains(k, needle)
		})
		if len(items) == 0 && e.fuzzyFallback {
			items = e.fuzzyFilters(text)
		}
		return Result{Category: CategoryAvailable, Items: items}
	}
}

// Initial returns the suggestion set shown for empty live text: combinations,
// then history, then views, then commands.
func (e *Engine) Initial() Result {
	c := e.catalog
	items := make([]Item, 0, len(c.combinations)+len(c.history)+len(c.views)+len(c.commands))
	items = append(items, c.combinations...)
	items = append(items, c.history...)
	items = append(items, c.views...)
	items = append(items, c.commands...)
	return Result{Category: CategorySuggested, Items: items}
}

// CommandTarget returns the list an accepted command opens. /help opens the
// full command list.
func (e *Engine) CommandTarget(item Item) (Result, bool) {
	if item.Kind != ItemCommand {
		return Result{}, false
	}
	if item.Value == CommandHelp {
		return Result{Category: CategoryCommands, Items: e.catalog.Commands()}, true
	}
	return e.commandList(item.Value)
}

func (e *Engine) commandList(value string) (Result, bool) {
	switch value {
	case CommandHistory:
		return Result{Category: CategoryHistory, Items: e.catalog.History()}, true
	case CommandViews:
		return Result{Category: CategoryViews, Items: e.catalog.Views()}, true
	default:
		return Result{}, false
	}
}

func (e *Engine) commandsWithPrefix(prefix string) []Item {
	var out []Item
	for _, cmd := range e.catalog.commands {
		if strings.HasPrefix(cmd.Value, prefix) {
			out = append(out, cmd)
		}
	}
	return out
}

func (e *Engine) filtersWhere(match func(lowerKey string) bool) []Item {
	var out []Item
	for _, f := range e.catalog.filters {
		if match(strings.ToLower(f.Key)) {
			out = append(out, f)
		}
	}
	return out
}

// fuzzyFilters ranks filters by how well their key fuzzy-matches text. Ties
// keep catalog order.
func (e *Engine) fuzzyFilters(text string) []Item {
	keys := make([]string, len(e.catalog.filters))
	for i, f := range e.catalog.filters {
		keys[i] = f.Key
	}
	matches := fuzzy.Find(text, keys)
	out := make([]Item, 0, len(matches))
	for _, m := range matches {
		out = append(out, e.catalog.filters[m.Index])
	}
	return out
}
