package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gazetadovale/newsdesk/internal/api"
	"github.com/gazetadovale/newsdesk/internal/config"
	"github.com/gazetadovale/newsdesk/internal/console"
	"github.com/gazetadovale/newsdesk/internal/handlers"
	"github.com/gazetadovale/newsdesk/internal/importer"
	"github.com/gazetadovale/newsdesk/internal/metadata"
	"github.com/gazetadovale/newsdesk/internal/models"
	"github.com/gazetadovale/newsdesk/internal/testhelpers"
	"github.com/gazetadovale/newsdesk/internal/upstream"
)

// fakeUpstream is a minimal stand-in for the external content API.
type fakeUpstream struct {
	articles []models.Article
	regions  []models.Region
	cities   []models.City

	deletedNews  []int
	createdNews  int
	lastCategory string
}

func (f *fakeUpstream) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /news", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.articles)
	})
	mux.HandleFunc("GET /news/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, a := range f.articles {
			if fmt.Sprintf("%d", a.ID) == r.PathValue("id") {
				json.NewEncoder(w).Encode(a)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("POST /news", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.createdNews++
		f.lastCategory = r.FormValue("category")
		article := models.Article{
			ID:        100 + f.createdNews,
			Title:     r.FormValue("title"),
			CreatedAt: time.Now(),
		}
		f.articles = append(f.articles, article)
		json.NewEncoder(w).Encode(article)
	})
	mux.HandleFunc("DELETE /news/{id}", func(w http.ResponseWriter, r *http.Request) {
		var id int
		fmt.Sscanf(r.PathValue("id"), "%d", &id)
		f.deletedNews = append(f.deletedNews, id)
		kept := f.articles[:0]
		for _, a := range f.articles {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		f.articles = kept
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /regions", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.regions)
	})
	mux.HandleFunc("GET /cities", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.cities)
	})
	mux.HandleFunc("GET /publicidade", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Advertisement{})
	})
	mux.HandleFunc("GET /partners", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Partner{})
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.User{})
	})
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email == "editor@gazeta.com" && creds.Password == "s3cret" {
			json.NewEncoder(w).Encode(map[string]string{"token": "upstream-token"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	})

	return mux
}

type testStack struct {
	router   http.Handler
	upstream *fakeUpstream
	baseURL  string
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	fake := &fakeUpstream{
		regions: []models.Region{{ID: 1, Name: "Vale do Aço"}},
		cities:  []models.City{{ID: 10, Name: "Ipatinga", RegionID: 1}},
		articles: []models.Article{
			{
				ID: 1, Title: "Obras na avenida", Category: models.CategoryPolitics,
				City: "Ipatinga", Images: []string{"uploads/obras.jpg"},
				CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			},
			{
				ID: 2, Title: "Festival de inverno", Category: models.CategoryEntertainment,
				City: "Outra Cidade",
				CreatedAt: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
			},
		},
	}

	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	log := testhelpers.NewTestLogger()
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host: "127.0.0.1", Port: 0,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Upstream: config.UpstreamConfig{BaseURL: server.URL, Timeout: config.Duration(5 * time.Second)},
		Session:  config.SessionConfig{TTL: config.Duration(time.Hour)},
	}

	client := upstream.New(cfg.Upstream, log)
	sessions := console.NewSessionManager(cfg.Session.TTL.Std(), client)

	router := api.NewRouter(cfg, api.Handlers{
		Feed:   handlers.NewFeedHandler(client, log),
		Auth:   handlers.NewAuthHandler(client, sessions, log),
		Form:   handlers.NewNewsFormHandler(nil, log),
		Admin:  handlers.NewAdminHandler(nil, log),
		Create: handlers.NewCreateHandler(client, nil, log),
		Tools: handlers.NewToolsHandler(
			metadata.NewExtractor(log),
			importer.New(client, log),
			log,
		),
	}, log)

	return &testStack{router: router, upstream: fake, baseURL: server.URL}
}

func (s *testStack) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testStack) login(t *testing.T) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/v1/login", "", models.Credentials{
		Email:    "editor@gazeta.com",
		Password: "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFeedReturnsPartitionedArticles(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodGet, "/api/v1/feed", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Featured  []models.Article `json:"featured"`
		Remainder []models.Article `json:"remainder"`
		Recent    []models.Article `json:"recent"`
		Count     int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Featured, 2)
	assert.Equal(t, 2, result.Featured[0].ID, "newest first")

	// Relative image references come back as full URLs.
	require.Len(t, result.Featured[1].Images, 1)
	assert.Equal(t, stack.baseURL+"/uploads/obras.jpg", result.Featured[1].Images[0])
}

func TestFeedRegionFilter(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodGet, "/api/v1/feed?region_id=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Featured []models.Article `json:"featured"`
		Count    int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	require.Equal(t, 1, result.Count)
	assert.Equal(t, 1, result.Featured[0].ID, "city name resolves to its region")
}

func TestFeedRejectsBadParams(t *testing.T) {
	stack := newTestStack(t)

	for _, path := range []string{
		"/api/v1/feed?region_id=abc",
		"/api/v1/feed?city_id=abc",
		"/api/v1/feed?from=not-a-date",
		"/api/v1/feed?to=2026/08/01",
	} {
		rec := stack.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestFeedDateUpperBoundCoversWholeDay(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodGet, "/api/v1/feed?from=2026-08-02&to=2026-08-02", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Count, "article created during the day matches a date-only bound")
}

func TestArticleByID(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodGet, "/api/v1/news/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var article models.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &article))
	assert.Equal(t, "Obras na avenida", article.Title)

	rec = stack.do(t, http.MethodGet, "/api/v1/news/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodPost, "/api/v1/login", "", models.Credentials{
		Email:    "editor@gazeta.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRequiresSession(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodGet, "/admin/news", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = stack.do(t, http.MethodGet, "/admin/news", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	stack := newTestStack(t)
	token := stack.login(t)

	rec := stack.do(t, http.MethodGet, "/admin/news", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = stack.do(t, http.MethodPost, "/api/v1/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = stack.do(t, http.MethodGet, "/admin/news", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminListUnknownKind(t *testing.T) {
	stack := newTestStack(t)
	token := stack.login(t)

	rec := stack.do(t, http.MethodGet, "/admin/banners", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminDeleteFlow(t *testing.T) {
	stack := newTestStack(t)
	token := stack.login(t)

	// Request: nothing destructive yet.
	rec := stack.do(t, http.MethodPost, "/admin/news/1/delete", token,
		map[string]string{"label": "Obras na avenida"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, stack.upstream.deletedNews)

	// The pending delete shows up in the list response.
	rec = stack.do(t, http.MethodGet, "/admin/news", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending_delete"`)
	assert.Contains(t, rec.Body.String(), "Obras na avenida")

	// Cancel never fires the delete.
	rec = stack.do(t, http.MethodPost, "/admin/news/delete/cancel", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, stack.upstream.deletedNews)

	// Confirm with nothing pending conflicts.
	rec = stack.do(t, http.MethodPost, "/admin/news/delete/confirm", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Request again and confirm: the delete fires exactly once.
	rec = stack.do(t, http.MethodPost, "/admin/news/1/delete", token,
		map[string]string{"label": "Obras na avenida"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = stack.do(t, http.MethodPost, "/admin/news/delete/confirm", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []int{1}, stack.upstream.deletedNews)
}

func TestAdminDeleteRequestNeedsLabel(t *testing.T) {
	stack := newTestStack(t)
	token := stack.login(t)

	rec := stack.do(t, http.MethodPost, "/admin/news/1/delete", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFormSubmitValidation(t *testing.T) {
	stack := newTestStack(t)
	token := stack.login(t)

	rec := stack.do(t, http.MethodPost, "/admin/news/form/open", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = stack.do(t, http.MethodPost, "/admin/news/form/submit", token, console.FormFields{
		Title: "Só título",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "content")
	assert.Zero(t, stack.upstream.createdNews)
}

func TestFormCreateFlow(t *testing.T) {
	stack := newTestStack(t)
	token := stack.login(t)

	rec := stack.do(t, http.MethodPost, "/admin/news/form/open", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Stage one image through the multipart endpoint.
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("images", "foto.jpg")
	require.NoError(t, err)
	fw.Write([]byte("jpegbytes"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/news/form/images", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	imgRec := httptest.NewRecorder()
	stack.router.ServeHTTP(imgRec, req)
	require.Equal(t, http.StatusOK, imgRec.Code, imgRec.Body.String())

	var staged struct {
		Previews []struct {
			Token string `json:"token"`
		} `json:"previews"`
		Dropped int `json:"dropped"`
	}
	require.NoError(t, json.Unmarshal(imgRec.Body.Bytes(), &staged))
	require.Len(t, staged.Previews, 1)
	assert.Zero(t, staged.Dropped)

	// The staged bytes are servable for preview.
	rec = stack.do(t, http.MethodGet, "/admin/news/form/previews/"+staged.Previews[0].Token, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpegbytes", rec.Body.String())

	// Submit the complete form.
	rec = stack.do(t, http.MethodPost, "/admin/news/form/submit", token, console.FormFields{
		Title:    "Nova matéria",
		Content:  "Texto completo.",
		Category: models.CategoryHealth,
		CityID:   10,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, stack.upstream.createdNews)
	assert.Equal(t, "Saúde", stack.upstream.lastCategory)

	// Successful submit resets the form and releases previews.
	rec = stack.do(t, http.MethodGet, "/admin/news/form/previews/"+staged.Previews[0].Token, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = stack.do(t, http.MethodGet, "/admin/news/form", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"mode":"create"`), rec.Body.String())
}
