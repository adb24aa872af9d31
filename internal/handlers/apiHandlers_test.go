package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload
}

func TestCatalogJSON(t *testing.T) {
	f := newFixture(t)
	category := f.seedCategory(t, f.owner, "Snow")
	f.seedItem(t, f.owner, category, "Snowboard", "")
	f.seedItem(t, f.owner, category, "Goggles", "")

	w := f.get("/api/v1/catalog.json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	payload := decodeJSON(t, w.Body.Bytes())
	catalog, ok := payload["catalog"].([]any)
	require.True(t, ok)
	require.Len(t, catalog, 2)

	// Newest item first.
	first := catalog[0].(map[string]any)
	second := catalog[1].(map[string]any)
	assert.Equal(t, "Goggles", first["name"])
	assert.Equal(t, "Snowboard", second["name"])
}

func TestItemJSON(t *testing.T) {
	f := newFixture(t)
	snow := f.seedCategory(t, f.owner, "Snow")
	f.seedCategory(t, f.owner, "Surf")
	f.seedItem(t, f.owner, snow, "Snowboard", "All-mountain")

	t.Run("returns the item filed under the category", func(t *testing.T) {
		w := f.get("/api/v1/categories/1/item/1/JSON", nil)
		require.Equal(t, http.StatusOK, w.Code)

		payload := decodeJSON(t, w.Body.Bytes())
		item, ok := payload["item"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Snowboard", item["name"])
		assert.Equal(t, "All-mountain", item["description"])
	})

	t.Run("an item filed elsewhere is an error payload, not a status", func(t *testing.T) {
		w := f.get("/api/v1/categories/2/item/1/JSON", nil)
		require.Equal(t, http.StatusOK, w.Code)

		payload := decodeJSON(t, w.Body.Bytes())
		assert.Equal(t, "Item 1 does not belong to category 2.", payload["error"])
	})

	t.Run("missing ids are an error payload too", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/categories/999/item/1/JSON",
			"/api/v1/categories/1/item/999/JSON",
		} {
			w := f.get(path, nil)
			require.Equal(t, http.StatusOK, w.Code)

			payload := decodeJSON(t, w.Body.Bytes())
			assert.Equal(t, "Item or Category does not exist!", payload["error"])
		}
	})
}

func TestCategoriesJSON(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, f.owner, "Snow")
	f.seedCategory(t, f.intruder, "Surf")

	w := f.get("/api/v1/categories/JSON", nil)
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeJSON(t, w.Body.Bytes())
	categories, ok := payload["categories"].([]any)
	require.True(t, ok)
	require.Len(t, categories, 2)

	names := []string{
		categories[0].(map[string]any)["name"].(string),
		categories[1].(map[string]any)["name"].(string),
	}
	assert.ElementsMatch(t, []string{"Snow", "Surf"}, names)
}
