//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/domsift/domsift"
	"github.com/domsift/domsift/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements domsift.BoundsExtractor.
var _ domsift.BoundsExtractor = (*rod.Fetcher)(nil)

func TestFetcher_ExtractBounds(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Cards</title></head>
<body>
<div class="grid">
	<div class="card" style="width:300px;height:100px;">First card</div>
	<div class="card" style="width:300px;height:100px;">Second card</div>
	<div class="card" style="width:300px;height:100px;">Third card</div>
</div>
<div style="display:none;width:500px;height:500px;">Hidden panel</div>
</body>
</html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	bounds, err := fetcher.ExtractBounds(context.Background(), srv.URL)
	require.NoError(t, err)
	require.NotEmpty(t, bounds)

	var cards []domsift.ElementBounds
	for _, b := range bounds {
		assert.NotContains(t, b.TextContent, "Hidden panel", "hidden elements are excluded")
		if b.ClassName == "card" {
			cards = append(cards, b)
		}
	}

	require.Len(t, cards, 3)
	for i, card := range cards {
		assert.Equal(t, "div", card.TagName)
		assert.Equal(t, "div.grid", card.ParentSelector)
		assert.Equal(t, i, card.SiblingIndex)
		assert.InDelta(t, 300, card.Width, 1)
		assert.Positive(t, card.Height)
	}

	// Cards with matching widths under one parent form a width group.
	groups := domsift.GroupByWidth(bounds, domsift.DefaultWidthTolerance)
	require.NotEmpty(t, groups)
	assert.Len(t, groups[0].Elements, 3)
}
