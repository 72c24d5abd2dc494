package completion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return NewCatalog(CatalogSource{
		Filters: []Item{
			{Key: "status", Value: "active", Description: "Active users"},
			{Key: "status", Value: "inactive", Description: "Inactive users"},
			{Key: "age", Value: ">25", Description: "Users over 25"},
			{Key: "location", Value: "SF", Description: "Users in San Francisco"},
			{Key: "role", Value: "admin", Description: "Admin users"},
		},
		Combinations: []Item{
			{Value: "status:active location:SF", Description: "Active users in SF"},
			{Value: "role:admin status:active", Description: "Active admins"},
		},
		History: []Item{
			{Value: "status:active role:admin", Description: "Last used: Active admins"},
			{Value: "age:>25 location:SF", Description: "Last used: SF users over 25"},
		},
		Views: []Item{
			{Value: "status:active", Description: "Active Users View"},
			{Value: "role:admin status:active", Description: "Active Admins View"},
		},
	})
}

func texts(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text()
	}
	return out
}

func TestEvaluateIdempotent(t *testing.T) {
	e := NewEngine(testCatalog())
	first := e.Evaluate("", true)
	second := e.Evaluate("", true)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("evaluate is not idempotent (-first +second):\n%s", diff)
	}
}

func TestEvaluateCategory(t *testing.T) {
	e := NewEngine(testCatalog())
	tests := []struct {
		text           string
		fragmentsEmpty bool
		want           string
	}{
		{text: "", fragmentsEmpty: true, want: CategorySuggested},
		{text: "", fragmentsEmpty: false, want: CategorySuggested},
		{text: "/h", fragmentsEmpty: true, want: CategoryCommands},
		{text: "/h", fragmentsEmpty: false, want: CategoryCommands},
		{text: "status", fragmentsEmpty: true, want: CategoryAvailable},
		{text: "status", fragmentsEmpty: false, want: CategoryAvailable},
		{text: "status:", fragmentsEmpty: true, want: CategoryMatching},
		{text: "status:", fragmentsEmpty: false, want: CategoryMatching},
		{text: "/history", fragmentsEmpty: true, want: CategoryHistory},
		{text: "/views", fragmentsEmpty: false, want: CategoryViews},
		{text: "/help", fragmentsEmpty: true, want: CategoryCommands},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Evaluate(tt.text, tt.fragmentsEmpty).Category)
		})
	}
}

func TestEvaluateInitialOrder(t *testing.T) {
	r := NewEngine(testCatalog()).Evaluate("", true)
	want := []string{
		"status:active location:SF", "role:admin status:active",
		"status:active role:admin", "age:>25 location:SF",
		"status:active", "role:admin status:active",
		"/history", "/views", "/help",
	}
	assert.Equal(t, want, texts(r.Items))
}

func TestEvaluateItems(t *testing.T) {
	e := NewEngine(testCatalog())
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "command prefix", text: "/h", want: []string{"/history", "/help"}},
		{name: "unknown command", text: "/x", want: []string{}},
		{name: "key prefix before colon", text: "stat:whatever", want: []string{"status:active", "status:inactive"}},
		{name: "colon match ignores case", text: "LOC:", want: []string{"location:SF"}},
		{name: "substring", text: "at", want: []string{"status:active", "status:inactive", "location:SF"}},
		{name: "substring ignores case", text: "ROLE", want: []string{"role:admin"}},
		{name: "no match", text: "zzz", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, texts(e.Evaluate(tt.text, false).Items))
		})
	}
}

func TestEvaluateExactCommandsShowFullLists(t *testing.T) {
	e := NewEngine(testCatalog())

	h := e.Evaluate("/history", true)
	assert.Equal(t, []string{"status:active role:admin", "age:>25 location:SF"}, texts(h.Items))

	v := e.Evaluate("/views", true)
	assert.Equal(t, []string{"status:active", "role:admin status:active"}, texts(v.Items))
}

func TestCommandTarget(t *testing.T) {
	e := NewEngine(testCatalog())
	cmds := e.Catalog().Commands()
	require.Len(t, cmds, 3)

	r, ok := e.CommandTarget(cmds[0])
	require.True(t, ok)
	assert.Equal(t, CategoryHistory, r.Category)

	r, ok = e.CommandTarget(cmds[1])
	require.True(t, ok)
	assert.Equal(t, CategoryViews, r.Category)

	r, ok = e.CommandTarget(cmds[2])
	require.True(t, ok)
	assert.Equal(t, CategoryCommands, r.Category)
	assert.Len(t, r.Items, 3)

	_, ok = e.CommandTarget(Item{Kind: ItemFilter, Key: "a", Value: "b"})
	assert.False(t, ok)
}

func TestFuzzyFallback(t *testing.T) {
	plain := NewEngine(testCatalog())
	assert.Empty(t, plain.Evaluate("lcn", false).Items)

	fz := NewEngine(testCatalog(), WithFuzzyFallback(true))
	r := fz.Evaluate("lcn", false)
	assert.Equal(t, CategoryAvailable, r.Category)
	assert.Equal(t, []string{"location:SF"}, texts(r.Items))

	// A substring hit never falls through to fuzzy ranking.
	assert.Equal(t, []string{"role:admin"}, texts(fz.Evaluate("role", false).Items))
}

func TestEngineNeverMutatesCatalog(t *testing.T) {
	c := testCatalog()
	e := NewEngine(c)
	r := e.Evaluate("", true)
	r.Items[0].Value = "mutated"
	assert.Equal(t, "status:active location:SF", e.Evaluate("", true).Items[0].Value)

	filters := c.Filters()
	filters[0].Key = "mutated"
	assert.Equal(t, "status", c.Filters()[0].Key)
}

func TestNilCatalogHasDefaultCommands(t *testing.T) {
	r := NewEngine(nil).Evaluate("", true)
	assert.Equal(t, []string{"/history", "/views", "/help"}, texts(r.Items))
}
