package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, r *Refresher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(r.Library, r).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestListResources(t *testing.T) {
	router := newTestRouter(t, newTestRefresher(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resources", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload struct {
		Categories map[string][]Resource `json:"categories"`
		Sections   []Section             `json:"sections"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Categories["Academic Framework"]) != 2 || len(payload.Sections) != 4 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDigestEndpoint(t *testing.T) {
	quietLogs(t)
	refresher := newTestRefresher(t)
	router := newTestRouter(t, refresher)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resources/digest", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before refresh, got %d", resp.Code)
	}

	if _, err := refresher.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/resources/digest", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 after refresh, got %d", resp.Code)
	}
	var d Digest
	if err := json.Unmarshal(resp.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode digest: %v", err)
	}
	if d.Summary.TotalResources != 10 {
		t.Fatalf("unexpected digest %+v", d.Summary)
	}
}
