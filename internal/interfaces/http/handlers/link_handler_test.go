package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/fuckinutkin/greenland/internal/infrastructure/repositories"
	"github.com/fuckinutkin/greenland/internal/usecases"
	"github.com/fuckinutkin/greenland/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("development")
	m.Run()
}

type testEnv struct {
	router  *gin.Engine
	links   *usecases.LinkUsecase
	support *usecases.SupportUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	linkRepo := repositories.NewMemoryLinkRepository()
	threadRepo := repositories.NewMemoryThreadRepository()
	links := usecases.NewLinkUsecase(linkRepo, threadRepo, usecases.NopNotifier{}, "https://pay.example.com")
	support := usecases.NewSupportUsecase(linkRepo, threadRepo, usecases.NopNotifier{})

	linkHandler := NewLinkHandler(links)
	supportHandler := NewSupportHandler(links, support)

	router := gin.New()
	router.GET("/check", linkHandler.CheckPage)
	router.GET("/api/link", linkHandler.GetLink)
	router.POST("/api/support/send", supportHandler.Send)
	router.GET("/api/support/poll", supportHandler.Poll)

	return &testEnv{router: router, links: links, support: support}
}

func (e *testEnv) createLink(t *testing.T, input usecases.CreateLinkInput) string {
	t.Helper()
	out, err := e.links.CreateLink(context.Background(), input)
	require.NoError(t, err)
	return out.Link.ID
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetLinkWireFormat(t *testing.T) {
	env := newTestEnv(t)
	id := env.createLink(t, usecases.CreateLinkInput{
		OwnerID:  42,
		Amount:   "12.5",
		Network:  "erc20",
		Duration: null.Int64From(1800),
	})

	w := env.get("/api/link?id=" + id)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, true, body["ok"])
	assert.Equal(t, id, body["id"])
	assert.Equal(t, "12.5", body["amount"])
	assert.Equal(t, "erc20", body["network"])
	assert.Equal(t, float64(1800), body["durationSeconds"])
	assert.Nil(t, body["currency"])
	assert.Equal(t, float64(0), body["opens"])
	assert.NotZero(t, body["createdAt"])

	createdAt := int64(body["createdAt"].(float64))
	assert.Equal(t, float64(createdAt+1800*1000), body["expiresAt"])
}

func TestGetLinkTimerlessHasNullExpiry(t *testing.T) {
	env := newTestEnv(t)
	id := env.createLink(t, usecases.CreateLinkInput{OwnerID: 1, Amount: "100", Currency: "usdt"})

	w := env.get("/api/link?id=" + id)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "usdt", body["currency"])
	assert.Nil(t, body["durationSeconds"])
	assert.Nil(t, body["expiresAt"])
}

func TestGetLinkNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/api/link?id=000000")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"link_not_found"}`, w.Body.String())
}

func TestCheckPageCountsOpens(t *testing.T) {
	env := newTestEnv(t)
	id := env.createLink(t, usecases.CreateLinkInput{OwnerID: 42, Amount: "12.5"})

	for i := 0; i < 3; i++ {
		w := env.get("/check?id=" + id)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "$12.5")
		assert.Contains(t, w.Body.String(), id)
	}

	w := env.get("/api/link?id=" + id)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(3), body["opens"])
}

func TestCheckPageNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/check?id=999999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Link not found", w.Body.String())
}

func TestCheckPageShowsTimer(t *testing.T) {
	env := newTestEnv(t)
	id := env.createLink(t, usecases.CreateLinkInput{
		OwnerID: 1, Amount: "5", Duration: null.Int64From(900),
	})

	w := env.get("/check?id=" + id)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "15:00")
}
