package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aseptimu/shortyurl/internal/app/config"
	"github.com/aseptimu/shortyurl/internal/app/service"
	"github.com/aseptimu/shortyurl/internal/app/store"
	"github.com/aseptimu/shortyurl/internal/app/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingStore считает вставки, чтобы проверять, что запрос ничего не сохранил.
type countingStore struct {
	*store.InMemoryStore
	creates int
}

func (s *countingStore) Create(ctx context.Context, shortURL, originalURL string) (service.URLRecord, error) {
	s.creates++
	return s.InMemoryStore.Create(ctx, shortURL, originalURL)
}

type testApp struct {
	router *gin.Engine
	getter *service.GetURLService
	store  *countingStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := &countingStore{InMemoryStore: store.NewStore()}
	getter := service.NewGetURLService(st)
	cfg := &config.ConfigType{BaseAddress: config.LocalBaseAddress}

	router := gin.New()
	New(cfg, service.NewURLService(st), getter, st, zap.NewNop().Sugar()).RegisterRoutes(router)
	return &testApp{router: router, getter: getter, store: st}
}

func (a *testApp) do(t *testing.T, method, target, body string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(method, target, reader))
	res := w.Result()
	t.Cleanup(func() { res.Body.Close() })
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(data)
}

func (a *testApp) shorten(t *testing.T, url string) string {
	t.Helper()
	res, body := a.do(t, http.MethodPost, "/", fmt.Sprintf(`{"url":%q}`, url))
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp struct {
		ShortURL string `json:"shortUrl"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.True(t, strings.HasPrefix(resp.ShortURL, config.LocalBaseAddress+"/"), resp.ShortURL)

	code := strings.TrimPrefix(resp.ShortURL, config.LocalBaseAddress+"/")
	require.True(t, utils.IsShortCode(code, service.ShortURLLength), code)
	return code
}

func TestHello(t *testing.T) {
	app := newTestApp(t)

	res, body := app.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"message":"Hello World"}`, body)
}

func TestRoutes_ShortenResolveScenario(t *testing.T) {
	app := newTestApp(t)
	code := app.shorten(t, "https://example.com")

	res, _ := app.do(t, http.MethodGet, "/"+code, "")
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "https://example.com", res.Header.Get("Location"))

	res, body := app.do(t, http.MethodGet, "/"+code+"?cli=true", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"url":"https://example.com"}`, body)
}

func TestRoutes_ClickCounting(t *testing.T) {
	app := newTestApp(t)
	code := app.shorten(t, "https://example.com/counted")

	const n = 5
	for i := 0; i < n; i++ {
		res, _ := app.do(t, http.MethodGet, "/"+code, "")
		require.Equal(t, http.StatusFound, res.StatusCode)
	}
	for i := 0; i < 3; i++ {
		res, _ := app.do(t, http.MethodGet, "/"+code+"?cli=true", "")
		require.Equal(t, http.StatusOK, res.StatusCode)
	}

	stats, err := app.getter.GetStats(context.Background(), code)
	require.NoError(t, err)
	assert.EqualValues(t, n, stats.Clicks)
}

func TestRoutes_BadRequestPersistsNothing(t *testing.T) {
	app := newTestApp(t)

	res, body := app.do(t, http.MethodPost, "/", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.JSONEq(t, `{"message":"Bad Request"}`, body)

	res, _ = app.do(t, http.MethodPost, "/", `{"url":""}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	assert.Zero(t, app.store.creates)
}

func TestRoutes_UnknownCode(t *testing.T) {
	app := newTestApp(t)

	code := app.shorten(t, "https://example.com/untouched")

	res, body := app.do(t, http.MethodGet, "/doesnotexist", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.JSONEq(t, `{"message":"Not Found"}`, body)

	stats, err := app.getter.GetStats(context.Background(), code)
	require.NoError(t, err)
	assert.Zero(t, stats.Clicks)
}

func TestRoutes_Ping(t *testing.T) {
	app := newTestApp(t)

	res, body := app.do(t, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}
