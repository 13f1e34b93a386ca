package handler

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"microquest/dispenser/internal/config"
	"microquest/dispenser/internal/model"
	"microquest/dispenser/internal/repository"
	"microquest/dispenser/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pool := service.NewChallengePoolWithRand([]model.Challenge{
		{ID: "water", Text: "Drink a full glass of water."},
		{ID: "squats", Text: "Do fifteen bodyweight squats."},
	}, rand.New(rand.NewSource(1)))
	hourRepo := repository.NewKVHourStateRepository(repository.NewMemoryStateStore())
	svc := service.NewDispenserService(pool, hourRepo, service.SystemClock, 3, 5*time.Second, zap.NewNop())

	cfg := &config.Config{}
	return SetupRouter(cfg, zap.NewNop(), NewDispenserHandler(svc))
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("%s %s: bad response body %q: %v", method, path, w.Body.String(), err)
	}
	return w, payload
}

func TestRequestEndpointDispenses(t *testing.T) {
	router := newTestRouter(t)

	w, payload := doJSON(t, router, http.MethodPost, "/api/v1/challenge/request", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	data, _ := payload["data"].(map[string]any)
	challenge, _ := data["challenge"].(map[string]any)
	if challenge == nil {
		t.Fatalf("no challenge in response: %s", w.Body.String())
	}
	if id, _ := challenge["id"].(string); id == "" {
		t.Fatalf("challenge id missing: %s", w.Body.String())
	}
}

func TestResolveEndpoint(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/challenge/request", "")
	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/challenge/resolve", `{"action":"done"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("resolve status = %d: %s", w.Code, w.Body.String())
	}

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/challenge/view", "")
	if w.Code != http.StatusOK {
		t.Fatalf("view status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"served":1`) {
		t.Errorf("view does not reflect the done resolve: %s", w.Body.String())
	}
}

func TestResolveEndpointRejectsBadAction(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/challenge/request", "")
	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/challenge/resolve", `{"action":"maybe"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad action status = %d, want 400", w.Code)
	}
}

func TestResolveEndpointWhileIdleConflicts(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/challenge/resolve", `{"action":"done"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("resolve while idle status = %d, want 409", w.Code)
	}
}

func TestOverrideEndpointWithoutSignalConflicts(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/challenge/override", "")
	if w.Code != http.StatusConflict {
		t.Errorf("override without signal status = %d, want 409", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Errorf("healthz status = %d", w.Code)
	}
}
