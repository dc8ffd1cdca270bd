package skilldisplay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/skilltree/internal/catalog"
	"github.com/specialistvlad/skilltree/internal/skillid"
)

type fakeAPI struct {
	server     *httptest.Server
	skillCalls atomic.Int32
	lastKey    atomic.Value
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/skillset/7", func(w http.ResponseWriter, r *http.Request) {
		f.lastKey.Store(r.Header.Get("x-api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uid":7,"name":"Backend","skills":[{"uid":1,"title":"Go"},{"uid":2,"title":"HTTP"}]}`))
	})
	mux.HandleFunc("GET /api/v1/skill/1", func(w http.ResponseWriter, r *http.Request) {
		f.skillCalls.Add(1)
		_, _ = w.Write([]byte(`{
			"uid": 1,
			"title": "Go",
			"description": "<p>Basics</p>",
			"goals": "<ul><li>Write code</li></ul>",
			"owner": {"uid": 612, "firstName": "Ada", "lastName": "Lovelace"},
			"links": [{"title": "Tour", "url": "https://go.dev/tour"}],
			"tags": [{"title": "language"}],
			"prerequisites": [{"uid": 3}, {"uid": 4}]
		}`))
	})
	mux.HandleFunc("GET /api/v1/skill/2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"uid":2,"title":"HTTP","owner":null}`))
	})
	mux.HandleFunc("GET /api/v1/skill/500", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("GET /api/v1/skill/666", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func TestNewClient_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "ftp://example.com", "/relative"} {
		_, err := NewClient(raw)
		assert.Error(t, err, "url %q", raw)
	}
}

func TestClient_SkillSet(t *testing.T) {
	api := newFakeAPI(t)
	c, err := NewClient(api.server.URL+"/", WithAPIKey("secret"))
	require.NoError(t, err)

	set, err := c.SkillSet(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, &catalog.SkillSet{
		ID:   7,
		Name: "Backend",
		Skills: []catalog.SkillSummary{
			{ID: 1, Title: "Go"},
			{ID: 2, Title: "HTTP"},
		},
	}, set)
	assert.Equal(t, "secret", api.lastKey.Load())
}

func TestClient_Skill(t *testing.T) {
	api := newFakeAPI(t)
	c, err := NewClient(api.server.URL)
	require.NoError(t, err)

	s, err := c.Skill(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, skillid.ID(1), s.ID)
	assert.Equal(t, "<p>Basics</p>", s.Description)
	assert.Equal(t, "Ada Lovelace", s.Owner.FullName())
	assert.Equal(t, int64(612), s.Owner.UID)
	assert.Equal(t, []catalog.Link{{Title: "Tour", URL: "https://go.dev/tour"}}, s.Links)
	assert.Equal(t, []string{"language"}, s.Tags)
	assert.Equal(t, []skillid.ID{3, 4}, s.Prerequisites)

	s2, err := c.Skill(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, s2.Owner)
	assert.Empty(t, s2.Prerequisites)
}

func TestClient_Skill_IsCached(t *testing.T) {
	api := newFakeAPI(t)
	c, err := NewClient(api.server.URL)
	require.NoError(t, err)

	first, err := c.Skill(context.Background(), 1)
	require.NoError(t, err)
	first.Tags[0] = "mutated"

	second, err := c.Skill(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), api.skillCalls.Load())
	assert.Equal(t, []string{"language"}, second.Tags, "callers get their own copy")

	c.Purge()
	_, err = c.Skill(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.skillCalls.Load())
}

func TestClient_Errors(t *testing.T) {
	api := newFakeAPI(t)
	c, err := NewClient(api.server.URL, WithCacheSize(1))
	require.NoError(t, err)

	_, err = c.Skill(context.Background(), 404)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	_, err = c.SkillSet(context.Background(), 99)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = c.Skill(context.Background(), 500)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.NotErrorIs(t, err, catalog.ErrNotFound)
	assert.Contains(t, err.Error(), "500")

	_, err = c.Skill(context.Background(), 666)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestClient_ContextCancelled(t *testing.T) {
	api := newFakeAPI(t)
	c, err := NewClient(api.server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Skill(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
