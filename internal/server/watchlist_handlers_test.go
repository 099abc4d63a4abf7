package server

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"cinelist/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func duneBody() fiber.Map {
	return fiber.Map{
		"movieId":     "438631",
		"title":       "Dune",
		"mediaType":   "movie",
		"posterPath":  "/d5NXSklXo0qyIYkgV94XAgMIckC.jpg",
		"releaseDate": "2021-10-22",
	}
}

func TestWatchlist_Lifecycle(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("alice", "alice@example.com", "secret123")

	var lists []models.Watchlist
	status, raw := api.do(http.MethodGet, "/api/watchlist", token, nil, &lists)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", raw)

	var created models.Watchlist
	status, raw = api.do(http.MethodPost, "/api/watchlist/create", token, fiber.Map{
		"name":        "  Sci-fi  ",
		"description": "Space <b>operas</b>",
	}, &created)
	require.Equal(t, http.StatusCreated, status, raw)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Sci-fi", created.Name)
	assert.Equal(t, "Space operas", created.Description)
	assert.Empty(t, created.Items)
	assert.Contains(t, raw, `"items":[]`)

	item := api.addItem(token, created.ID, duneBody())
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, models.ItemStatusPlanToWatch, item.Status)
	assert.Nil(t, item.Rating)
	assert.False(t, item.AddedAt.IsZero())

	var got models.Watchlist
	status, _ = api.do(http.MethodGet, "/api/watchlist/"+created.ID, token, nil, &got)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, item.ID, got.Items[0].ID)
	assert.Equal(t, "438631", got.Items[0].MovieID)
	assert.Equal(t, models.MediaTypeMovie, got.Items[0].MediaType)
	assert.Equal(t, "Dune", got.Items[0].Title)
	assert.Equal(t, "/d5NXSklXo0qyIYkgV94XAgMIckC.jpg", got.Items[0].PosterPath)
	assert.Equal(t, "2021-10-22", got.Items[0].ReleaseDate)
	assert.True(t, !got.UpdatedAt.Before(created.UpdatedAt))

	var updated models.Watchlist
	status, raw = api.do(http.MethodPut, "/api/watchlist/"+created.ID, token, fiber.Map{"name": "Favourites"}, &updated)
	require.Equal(t, http.StatusOK, status, raw)
	assert.Equal(t, "Favourites", updated.Name)
	assert.Empty(t, updated.Description)
	assert.Len(t, updated.Items, 1)

	status, raw = api.do(http.MethodDelete, "/api/watchlist/"+created.ID, token, nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, raw, `"deleted":true`)

	status, raw = api.do(http.MethodGet, "/api/watchlist/"+created.ID, token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Watchlist not found", decodeError(t, raw).Error)

	status, _ = api.do(http.MethodDelete, "/api/watchlist/"+created.ID, token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestWatchlist_ItemScenario(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("alice", "alice@example.com", "secret123")
	w := api.createWatchlist(token, "Weekend")

	item := api.addItem(token, w.ID, duneBody())

	// Same movie twice is rejected.
	status, raw := api.do(http.MethodPost, "/api/watchlist/"+w.ID+"/add-item", token, duneBody(), nil)
	assert.Equal(t, http.StatusBadRequest, status)
	e := decodeError(t, raw)
	assert.Equal(t, "Item already exists", e.Error)
	assert.Equal(t, models.CodeConflict, e.Code)

	// Same catalog id as a TV show is a different item.
	tv := duneBody()
	tv["mediaType"] = "tv"
	api.addItem(token, w.ID, tv)

	var patched models.WatchlistItem
	status, raw = api.do(http.MethodPut, "/api/watchlist/"+w.ID+"/items/"+item.ID, token, fiber.Map{
		"status":        "watched",
		"rating":        5,
		"personalNotes": "Loved <script>alert(1)</script>the sandworms",
	}, &patched)
	require.Equal(t, http.StatusOK, status, raw)
	assert.Equal(t, models.ItemStatusWatched, patched.Status)
	require.NotNil(t, patched.Rating)
	assert.Equal(t, 5, *patched.Rating)
	assert.Equal(t, "Loved the sandworms", patched.PersonalNotes)
	assert.Equal(t, "Dune", patched.Title)

	// Partial update leaves other fields alone; transitions are unrestricted.
	status, raw = api.do(http.MethodPut, "/api/watchlist/"+w.ID+"/items/"+item.ID, token, fiber.Map{
		"status": "plan_to_watch",
	}, &patched)
	require.Equal(t, http.StatusOK, status, raw)
	assert.Equal(t, models.ItemStatusPlanToWatch, patched.Status)
	require.NotNil(t, patched.Rating)
	assert.Equal(t, 5, *patched.Rating)

	status, raw = api.do(http.MethodDelete, "/api/watchlist/"+w.ID+"/items/"+item.ID, token, nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, raw, `"removed":true`)

	status, raw = api.do(http.MethodDelete, "/api/watchlist/"+w.ID+"/items/"+item.ID, token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Item not found", decodeError(t, raw).Error)

	var got models.Watchlist
	status, _ = api.do(http.MethodGet, "/api/watchlist/"+w.ID, token, nil, &got)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, models.MediaTypeTV, got.Items[0].MediaType)

	// Removed items can be added again.
	api.addItem(token, w.ID, duneBody())
}

func TestWatchlist_ValidationErrors(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("alice", "alice@example.com", "secret123")
	w := api.createWatchlist(token, "Weekend")
	item := api.addItem(token, w.ID, duneBody())

	itemPath := "/api/watchlist/" + w.ID + "/items/" + item.ID
	addPath := "/api/watchlist/" + w.ID + "/add-item"

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		message string
	}{
		{name: "create without name", method: http.MethodPost, path: "/api/watchlist/create", body: fiber.Map{"description": "x"}},
		{name: "create blank name", method: http.MethodPost, path: "/api/watchlist/create", body: fiber.Map{"name": "   "}},
		{name: "create markup-only name", method: http.MethodPost, path: "/api/watchlist/create", body: fiber.Map{"name": "<b></b>"}},
		{name: "update blank name", method: http.MethodPut, path: "/api/watchlist/" + w.ID, body: fiber.Map{"name": ""}},
		{name: "add missing mediaType", method: http.MethodPost, path: addPath, body: fiber.Map{"movieId": "1", "title": "Up"}},
		{name: "add bad mediaType", method: http.MethodPost, path: addPath, body: fiber.Map{"movieId": "1", "title": "Up", "mediaType": "book"}},
		{name: "add missing movieId", method: http.MethodPost, path: addPath, body: fiber.Map{"title": "Up", "mediaType": "movie"}},
		{name: "add missing title", method: http.MethodPost, path: addPath, body: fiber.Map{"movieId": "1", "mediaType": "movie"}},
		{name: "add malformed json", method: http.MethodPost, path: addPath, body: `{"movieId"`},
		{
			name: "update item empty body", method: http.MethodPut, path: itemPath, body: fiber.Map{},
			message: "At least one of status, rating or personalNotes is required",
		},
		{
			name: "update item bad status", method: http.MethodPut, path: itemPath, body: fiber.Map{"status": "finished"},
		},
		{
			name: "update item rating too high", method: http.MethodPut, path: itemPath, body: fiber.Map{"rating": 6},
			message: "rating must be between 1 and 5",
		},
		{
			name: "update item rating zero", method: http.MethodPut, path: itemPath, body: fiber.Map{"rating": 0},
			message: "rating must be between 1 and 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := api.do(tt.method, tt.path, token, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, status, raw)
			e := decodeError(t, raw)
			assert.Equal(t, models.CodeValidation, e.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, e.Error)
			}
		})
	}

	// Nothing above changed the stored item.
	var got models.Watchlist
	status, _ := api.do(http.MethodGet, "/api/watchlist/"+w.ID, token, nil, &got)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, models.ItemStatusPlanToWatch, got.Items[0].Status)
	assert.Nil(t, got.Items[0].Rating)
	assert.Equal(t, "Weekend", got.Name)
}

func TestWatchlist_OwnershipIsolation(t *testing.T) {
	api := newTestAPI(t, nil)
	alice := api.register("alice", "alice@example.com", "secret123")
	bob := api.register("bob", "bob@example.com", "secret123")

	w := api.createWatchlist(alice, "Alice only")
	item := api.addItem(alice, w.ID, duneBody())

	var before models.Watchlist
	status, _ := api.do(http.MethodGet, "/api/watchlist/"+w.ID, alice, nil, &before)
	require.Equal(t, http.StatusOK, status)

	itemPath := "/api/watchlist/" + w.ID + "/items/" + item.ID
	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{name: "get", method: http.MethodGet, path: "/api/watchlist/" + w.ID},
		{name: "update", method: http.MethodPut, path: "/api/watchlist/" + w.ID, body: fiber.Map{"name": "Mine now"}},
		{name: "delete", method: http.MethodDelete, path: "/api/watchlist/" + w.ID},
		{name: "add item", method: http.MethodPost, path: "/api/watchlist/" + w.ID + "/add-item", body: fiber.Map{"movieId": "2", "title": "Up", "mediaType": "movie"}},
		{name: "update item", method: http.MethodPut, path: itemPath, body: fiber.Map{"rating": 1}},
		{name: "remove item", method: http.MethodDelete, path: itemPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := api.do(tt.method, tt.path, bob, tt.body, nil)
			assert.Equal(t, http.StatusNotFound, status, raw)
			e := decodeError(t, raw)
			assert.Equal(t, models.CodeNotFound, e.Code)
			assert.NotContains(t, e.Error, w.ID)
		})
	}

	var bobs []models.Watchlist
	status, _ = api.do(http.MethodGet, "/api/watchlist", bob, nil, &bobs)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, bobs)

	var after models.Watchlist
	status, _ = api.do(http.MethodGet, "/api/watchlist/"+w.ID, alice, nil, &after)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, before.Name, after.Name)
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt))
	require.Len(t, after.Items, 1)
	assert.Nil(t, after.Items[0].Rating)
}

func TestWatchlist_UnknownIDs(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("alice", "alice@example.com", "secret123")
	w := api.createWatchlist(token, "Weekend")

	status, _ := api.do(http.MethodGet, "/api/watchlist/does-not-exist", token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = api.do(http.MethodPut, "/api/watchlist/"+w.ID+"/items/nope", token, fiber.Map{"status": "watched"}, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = api.do(http.MethodPost, "/api/watchlist/nope/add-item", token, duneBody(), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestWatchlist_ListOrder(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("alice", "alice@example.com", "secret123")

	first := api.createWatchlist(token, "First")
	second := api.createWatchlist(token, "Second")

	var lists []models.Watchlist
	status, _ := api.do(http.MethodGet, "/api/watchlist", token, nil, &lists)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, lists, 2)

	ids := []string{lists[0].ID, lists[1].ID}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)
}

func TestWatchlist_ConcurrentDuplicateAdd(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("alice", "alice@example.com", "secret123")
	w := api.createWatchlist(token, "Race")

	const workers = 6
	statuses := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/watchlist/"+w.ID+"/add-item", jsonBody(t, duneBody()))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		wg.Add(1)
		go func(i int, req *http.Request) {
			defer wg.Done()
			resp, err := api.app.Test(req, -1)
			if err != nil {
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i, req)
	}
	wg.Wait()

	created := 0
	for _, s := range statuses {
		if s == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusBadRequest, s)
		}
	}
	assert.Equal(t, 1, created)

	var got models.Watchlist
	status, _ := api.do(http.MethodGet, "/api/watchlist/"+w.ID, token, nil, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, got.Items, 1)
}
