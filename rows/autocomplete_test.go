package rows

import (
	"goal-stock/models"
	"goal-stock/search"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *search.Catalog {
	return search.NewStaticCatalog([]models.Ticker{
		{Symbol: "AAPL", Name: "Apple Inc.", Rank: 1},
		{Symbol: "AMZN", Name: "Amazon.com, Inc.", Rank: 2},
		{Symbol: "AMD", Name: "Advanced Micro Devices, Inc.", Rank: 3},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Rank: 4},
	}, search.EngineMemory)
}

func newTestAutocomplete() (*Autocomplete, *string) {
	var selected string
	ac := NewAutocomplete(testCatalog(), func(symbol string) { selected = symbol })
	return ac, &selected
}

func TestInputOpensAndCloses(t *testing.T) {
	ac, _ := newTestAutocomplete()
	assert.Equal(t, Idle, ac.State())

	ac.Input("  am ")
	require.Equal(t, SuggestionsOpen, ac.State())
	assert.Equal(t, "AM", ac.Query())
	assert.Len(t, ac.Matches(), 2)
	_, ok := ac.Highlighted()
	assert.False(t, ok)

	ac.Input("amzn")
	assert.Len(t, ac.Matches(), 1)

	ac.Input("zzz")
	assert.Equal(t, Idle, ac.State())
	assert.Empty(t, ac.Matches())

	ac.Input("a")
	require.True(t, ac.Open())
	ac.Input("   ")
	assert.False(t, ac.Open())
}

func TestInputResetsHighlight(t *testing.T) {
	ac, _ := newTestAutocomplete()
	ac.Input("a")
	ac.KeyDown(KeyArrowDown)
	ac.KeyDown(KeyArrowDown)

	ac.Input("am")
	_, ok := ac.Highlighted()
	assert.False(t, ok)
}

func TestArrowNavigationWraps(t *testing.T) {
	ac, _ := newTestAutocomplete()
	ac.Input("a") // AAPL, AMZN, AMD
	require.Len(t, ac.Matches(), 3)

	assert.True(t, ac.KeyDown(KeyArrowDown))
	idx, ok := ac.Highlighted()
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	ac.KeyDown(KeyArrowDown)
	ac.KeyDown(KeyArrowDown)
	idx, _ = ac.Highlighted()
	assert.Equal(t, 2, idx)

	ac.KeyDown(KeyArrowDown)
	idx, _ = ac.Highlighted()
	assert.Equal(t, 0, idx, "down at the last index wraps to 0")

	ac.KeyDown(KeyArrowUp)
	idx, _ = ac.Highlighted()
	assert.Equal(t, 2, idx, "up at index 0 wraps to the last index")
}

func TestArrowUpFromNoneSelectsLast(t *testing.T) {
	ac, _ := newTestAutocomplete()
	ac.Input("a")
	ac.KeyDown(KeyArrowUp)
	idx, ok := ac.Highlighted()
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestArrowsIgnoredWhenIdle(t *testing.T) {
	ac, _ := newTestAutocomplete()
	assert.False(t, ac.KeyDown(KeyArrowDown))
	assert.False(t, ac.KeyDown(KeyArrowUp))
	_, ok := ac.Highlighted()
	assert.False(t, ok)
}

func TestEnterSelectsHighlighted(t *testing.T) {
	ac, selected := newTestAutocomplete()
	ac.Input("a")
	ac.KeyDown(KeyArrowDown)
	ac.KeyDown(KeyArrowDown)

	assert.True(t, ac.KeyDown(KeyEnter))
	assert.Equal(t, "AMZN", *selected)
	assert.Equal(t, Idle, ac.State())
}

func TestEnterWithoutHighlightIsNoop(t *testing.T) {
	ac, selected := newTestAutocomplete()

	assert.True(t, ac.KeyDown(KeyEnter), "enter is swallowed even when idle")
	assert.Equal(t, Idle, ac.State())

	ac.Input("a")
	assert.True(t, ac.KeyDown(KeyEnter))
	assert.Empty(t, *selected)
	assert.Equal(t, SuggestionsOpen, ac.State())
}

func TestEscapeAndOutsideClose(t *testing.T) {
	ac, _ := newTestAutocomplete()
	ac.Input("a")
	ac.KeyDown(KeyArrowDown)
	assert.True(t, ac.KeyDown(KeyEscape))
	assert.Equal(t, Idle, ac.State())
	_, ok := ac.Highlighted()
	assert.False(t, ok)
	assert.False(t, ac.KeyDown(KeyEscape))

	ac.Input("a")
	ac.PointerOutside()
	assert.Equal(t, Idle, ac.State())
}

func TestSelectByClick(t *testing.T) {
	ac, selected := newTestAutocomplete()
	ac.Input("m")

	assert.False(t, ac.Select(10))
	assert.True(t, ac.Select(1))
	assert.Equal(t, "AMD", *selected)
	assert.False(t, ac.Open())
	assert.False(t, ac.Select(0), "closed popup has nothing to select")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "suggestions-open", SuggestionsOpen.String())
}
