package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/metamingle/server/internal/app"
	"github.com/metamingle/server/internal/cache"
	"github.com/metamingle/server/internal/config"
	"github.com/metamingle/server/internal/db"
	"github.com/metamingle/server/internal/handler"
	"github.com/metamingle/server/internal/identity"
	"github.com/metamingle/server/internal/middleware"
	"github.com/metamingle/server/internal/server"
)

type testEnv struct {
	engine *gin.Engine
	cfg    *config.Config
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbase.AutoMigrate(db.AllModels()...))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	appCtx := app.New(dbase, cache.NewRedisCache(cfg),
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	engine := server.NewEngine(cfg, appCtx, handler.NewRegistrar(appCtx))
	return &testEnv{engine: engine, cfg: cfg}
}

// do performs a request as the given principal and decodes the JSON body.
func (e *testEnv) do(t *testing.T, as identity.Principal, method, path string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != "" {
		token, err := middleware.SignToken(e.cfg.JWT.Secret, e.cfg.JWT.Issuer, as)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w.Code, decoded
}

func (e *testEnv) mustCreateProfile(t *testing.T, as identity.Principal, name string, age int, interests ...string) {
	t.Helper()
	status, _ := e.do(t, as, http.MethodPost, "/v1/profile", gin.H{
		"name": name, "bio": "Fun loving person", "age": age, "interests": interests,
	})
	require.Equal(t, http.StatusOK, status)
}

func TestHealthz(t *testing.T) {
	env := setupEnv(t)

	status, body := env.do(t, "", http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["db"])
	assert.Equal(t, true, body["redis"])
}

func TestAuthRequired(t *testing.T) {
	env := setupEnv(t)

	status, body := env.do(t, "", http.MethodGet, "/v1/matches", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthenticated", body["code"])
}

func TestProfileScenario(t *testing.T) {
	env := setupEnv(t)
	w1 := identity.Principal("wallet_1")

	env.mustCreateProfile(t, w1, "Alice", 25, "music", "travel")

	status, body := env.do(t, w1, http.MethodGet, "/v1/profiles/wallet_1", nil)
	require.Equal(t, http.StatusOK, status)
	profile := body["data"].(map[string]any)["profile"].(map[string]any)
	assert.Equal(t, "Alice", profile["name"])

	// duplicate registration is rejected
	status, body = env.do(t, w1, http.MethodPost, "/v1/profile", gin.H{
		"name": "Alice", "age": 25,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ProfileAlreadyExists", body["code"])

	// a stranger's profile reads as an empty result
	status, body = env.do(t, w1, http.MethodGet, "/v1/profiles/wallet_9", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["data"].(map[string]any)["profile"])
}

func TestConnectionScenario(t *testing.T) {
	env := setupEnv(t)
	w1 := identity.Principal("wallet_1")
	w2 := identity.Principal("wallet_2")
	env.mustCreateProfile(t, w1, "Alice", 25)
	env.mustCreateProfile(t, w2, "Bob", 27)

	status, _ := env.do(t, w1, http.MethodPost, "/v1/connections", gin.H{"to": "wallet_2"})
	require.Equal(t, http.StatusOK, status)

	status, body := env.do(t, w1, http.MethodPost, "/v1/connections", gin.H{"to": "wallet_2"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "RequestAlreadyExists", body["code"])

	status, _ = env.do(t, w2, http.MethodPost, "/v1/connections/respond", gin.H{"from": "wallet_1", "accept": true})
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, w1, http.MethodGet, "/v1/connections/active", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"wallet_2"}, body["data"].(map[string]any)["connections"])
}

func TestDateAndReviewScenario(t *testing.T) {
	env := setupEnv(t)
	w1 := identity.Principal("wallet_1")
	w2 := identity.Principal("wallet_2")
	env.mustCreateProfile(t, w1, "Alice", 25)
	env.mustCreateProfile(t, w2, "Bob", 27)

	status, _ := env.do(t, w1, http.MethodPost, "/v1/connections", gin.H{"to": "wallet_2"})
	require.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, w2, http.MethodPost, "/v1/connections/respond", gin.H{"from": "wallet_1", "accept": true})
	require.Equal(t, http.StatusOK, status)

	status, body := env.do(t, w1, http.MethodPost, "/v1/dates", gin.H{
		"with": "wallet_2", "scheduled_at": 1234567, "location": "Virtual Beach",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["data"].(map[string]any)["date_id"])

	status, _ = env.do(t, w1, http.MethodPost, "/v1/reviews", gin.H{
		"date_id": 0, "reviewee": "wallet_2", "rating": 5, "comment": "Great date!",
	})
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, w1, http.MethodPost, "/v1/reviews", gin.H{
		"date_id": 0, "reviewee": "wallet_2", "rating": 4, "comment": "again",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DuplicateReview", body["code"])
}

func TestGiftScenario(t *testing.T) {
	env := setupEnv(t)
	w1 := identity.Principal("wallet_1")
	w2 := identity.Principal("wallet_2")
	env.mustCreateProfile(t, w1, "Alice", 25)
	env.mustCreateProfile(t, w2, "Bob", 27)

	status, body := env.do(t, w1, http.MethodPost, "/v1/gifts", gin.H{
		"name": "Virtual Rose", "description": "A beautiful virtual rose", "price": 50,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["data"].(map[string]any)["gift_id"])

	status, _ = env.do(t, w1, http.MethodPost, "/v1/gifts/0/send", gin.H{"to": "wallet_2"})
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, w1, http.MethodPost, "/v1/gifts/1/send", gin.H{"to": "wallet_2"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "GiftNotFound", body["code"])
}

func TestMatchScenario(t *testing.T) {
	env := setupEnv(t)
	w1 := identity.Principal("wallet_1")
	env.mustCreateProfile(t, w1, "Alice", 25, "music", "travel")
	env.mustCreateProfile(t, "wallet_2", "Bob", 27, "music")
	env.mustCreateProfile(t, "wallet_3", "Carol", 25, "music", "travel")

	status, _ := env.do(t, w1, http.MethodPost, "/v1/matches/generate", nil)
	require.Equal(t, http.StatusOK, status)

	status, body := env.do(t, w1, http.MethodGet, "/v1/matches", nil)
	require.Equal(t, http.StatusOK, status)
	matches := body["data"].(map[string]any)["matches"].([]any)
	require.Len(t, matches, 2)

	best := matches[0].(map[string]any)
	assert.Equal(t, "wallet_3", best["counterpart"])
}
