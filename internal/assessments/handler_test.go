package assessments

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/readiness"
	"readiness-backend/internal/readiness/recommendations"
	"readiness-backend/internal/shared/server/middleware"
	localstore "readiness-backend/internal/shared/storage/object/local"
)

func newTestRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func answersJSON(score int) string {
	var parts []string
	for _, a := range uniformAnswers(score) {
		parts = append(parts, `{"question_id":"`+a.QuestionID+`","score":`+string(rune('0'+a.Score))+`}`)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func decodeResult(t *testing.T, resp *httptest.ResponseRecorder) ResultResponse {
	t.Helper()
	var out ResultResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v; body=%s", err, resp.Body.String())
	}
	return out
}

func TestSubmitEndpointAllFives(t *testing.T) {
	quietLogs(t)
	svc, _ := newTestService()
	r := newTestRouter(t, svc)

	resp := doJSON(r, http.MethodPost, "/api/v1/assessments", `{"responses":`+answersJSON(5)+`,"company_info":{"name":"Acme"}}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	out := decodeResult(t, resp)
	if out.OverallScore != 5 {
		t.Fatalf("expected overall 5, got %v", out.OverallScore)
	}
	if len(out.Recommendations) != 0 {
		t.Fatalf("expected empty recommendations, got %+v", out.Recommendations)
	}
	if !strings.Contains(resp.Body.String(), `"recommendations":[]`) {
		t.Fatalf("expected recommendations to encode as an empty array: %s", resp.Body.String())
	}
	if out.CategoryScores["leadership"] != 5 || len(out.CategoryScores) != 6 {
		t.Fatalf("unexpected category scores %v", out.CategoryScores)
	}
	if out.AssessmentID == "" {
		t.Fatalf("expected assessment id")
	}
}

func TestSubmitEndpointAllOnes(t *testing.T) {
	quietLogs(t)
	svc, _ := newTestService()
	r := newTestRouter(t, svc)

	resp := doJSON(r, http.MethodPost, "/api/v1/assessments", `{"responses":`+answersJSON(1)+`}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	out := decodeResult(t, resp)
	if out.OverallScore != 1 {
		t.Fatalf("expected overall 1, got %v", out.OverallScore)
	}
	if len(out.Recommendations) != 7 {
		t.Fatalf("expected 7 recommendations, got %d", len(out.Recommendations))
	}
	if out.Recommendations[0].Priority != recommendations.PriorityCritical {
		t.Fatalf("expected Critical first, got %s", out.Recommendations[0].Priority)
	}
	if !strings.Contains(resp.Body.String(), `"priority":"Critical"`) {
		t.Fatalf("expected priority encoded by name: %s", resp.Body.String())
	}
}

func TestSubmitEndpointEmptyResponses(t *testing.T) {
	quietLogs(t)
	svc, _ := newTestService()
	r := newTestRouter(t, svc)

	resp := doJSON(r, http.MethodPost, "/api/v1/assessments", `{"responses":[]}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	out := decodeResult(t, resp)
	if out.OverallScore != 0 || len(out.CategoryScores) != 0 {
		t.Fatalf("expected zero result, got %+v", out)
	}
	if len(out.Recommendations) != 1 || out.Recommendations[0].Title != "Establish AI Foundation" {
		t.Fatalf("expected only foundation, got %+v", out.Recommendations)
	}
}

func TestSubmitEndpointRoundsToTwoDecimals(t *testing.T) {
	quietLogs(t)
	svc, _ := newTestService()
	r := newTestRouter(t, svc)

	body := `{"responses":[{"question_id":"l1","score":4},{"question_id":"l2","score":4},{"question_id":"l3","score":3}]}`
	resp := doJSON(r, http.MethodPost, "/api/v1/assessments", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	out := decodeResult(t, resp)
	if out.CategoryScores["leadership"] != 3.67 {
		t.Fatalf("expected leadership 3.67, got %v", out.CategoryScores["leadership"])
	}
	if out.OverallScore != 0.92 {
		t.Fatalf("expected overall 0.92, got %v", out.OverallScore)
	}
}

func TestSubmitEndpointReportsWarnings(t *testing.T) {
	quietLogs(t)
	svc, _ := newTestService()
	r := newTestRouter(t, svc)

	body := `{"responses":[{"question_id":"l1","score":0},{"question_id":"","score":3},{"question_id":"d1","score":5}]}`
	resp := doJSON(r, http.MethodPost, "/api/v1/assessments", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	out := decodeResult(t, resp)
	if len(out.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %+v", out.Warnings)
	}
	if out.Warnings[0].Index != 0 || out.Warnings[1].Index != 1 {
		t.Fatalf("unexpected warning indexes %+v", out.Warnings)
	}
	if out.CategoryScores["data"] != 5 || len(out.CategoryScores) != 1 {
		t.Fatalf("expected only data scored, got %v", out.CategoryScores)
	}
}

func TestSubmitEndpointNonIntegerScoreIsAnswerWarning(t *testing.T) {
	for _, score := range []string{`4.5`, `"4"`, `true`} {
		t.Run(score, func(t *testing.T) {
			quietLogs(t)
			svc, _ := newTestService()
			r := newTestRouter(t, svc)

			body := `{"responses":[{"question_id":"l1","score":` + score + `},{"question_id":"d1","score":5}]}`
			resp := doJSON(r, http.MethodPost, "/api/v1/assessments", body)
			if resp.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d; body=%s", resp.Code, resp.Body.String())
			}
			out := decodeResult(t, resp)
			if len(out.Warnings) != 1 {
				t.Fatalf("expected 1 warning, got %+v", out.Warnings)
			}
			w := out.Warnings[0]
			if w.Index != 0 || w.QuestionID != "l1" || w.Reason != readiness.ReasonScoreOutOfRange {
				t.Fatalf("unexpected warning %+v", w)
			}
			if !strings.Contains(w.Message, score) {
				t.Fatalf("expected message to echo %s, got %q", score, w.Message)
			}
			if out.CategoryScores["data"] != 5 || len(out.CategoryScores) != 1 {
				t.Fatalf("expected only data scored, got %v", out.CategoryScores)
			}
		})
	}
}

func TestSubmitEndpointMalformedJSON(t *testing.T) {
	quietLogs(t)
	svc, _ := newTestService()
	r := newTestRouter(t, svc)

	resp := doJSON(r, http.MethodPost, "/api/v1/assessments", `{"responses":`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload.Error.Code != ErrorCodeValidation {
		t.Fatalf("expected validation_error, got %q", payload.Error.Code)
	}
}

func TestGetEndpoint(t *testing.T) {
	quietLogs(t)
	svc, _ := newTestService()
	r := newTestRouter(t, svc)

	created := decodeResult(t, doJSON(r, http.MethodPost, "/api/v1/assessments", `{"responses":`+answersJSON(3)+`}`))

	resp := doJSON(r, http.MethodGet, "/api/v1/assessments/"+created.AssessmentID, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	got := decodeResult(t, resp)
	if got.AssessmentID != created.AssessmentID || got.OverallScore != 3 {
		t.Fatalf("unexpected assessment %+v", got)
	}

	resp = doJSON(r, http.MethodGet, "/api/v1/assessments/unknown", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestListEndpoint(t *testing.T) {
	quietLogs(t)
	svc, _ := newTestService()
	r := newTestRouter(t, svc)

	doJSON(r, http.MethodPost, "/api/v1/assessments", `{"responses":`+answersJSON(4)+`}`)

	resp := doJSON(r, http.MethodGet, "/api/v1/assessments?limit=10", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var items []SummaryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 1 || items[0].ReadinessLevel != LevelAdvanced {
		t.Fatalf("unexpected list %+v", items)
	}
}

func TestReportEndpoint(t *testing.T) {
	quietLogs(t)
	svc, _ := newTestService()
	r := newTestRouter(t, svc)

	created := decodeResult(t, doJSON(r, http.MethodPost, "/api/v1/assessments", `{"responses":`+answersJSON(1)+`,"company_info":{"name":"Acme"}}`))

	resp := doJSON(r, http.MethodGet, "/api/v1/assessments/"+created.AssessmentID+"/report", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := resp.Body.String()
	for _, want := range []string{"Acme", "Beginning", "Establish AI Foundation"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in report", want)
		}
	}
}

func TestExportEndpoint(t *testing.T) {
	quietLogs(t)
	svc, _ := newTestService()
	r := newTestRouter(t, svc)

	created := decodeResult(t, doJSON(r, http.MethodPost, "/api/v1/assessments", `{"responses":`+answersJSON(2)+`}`))

	resp := doJSON(r, http.MethodPost, "/api/v1/assessments/"+created.AssessmentID+"/export", "")
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without store, got %d", resp.Code)
	}

	svc.Store = localstore.New(t.TempDir())
	resp = doJSON(r, http.MethodPost, "/api/v1/assessments/"+created.AssessmentID+"/export", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "reports/"+created.AssessmentID+".md") {
		t.Fatalf("expected report key in body: %s", resp.Body.String())
	}
}

func TestCatalogEndpoint(t *testing.T) {
	svc, _ := newTestService()
	r := newTestRouter(t, svc)

	resp := doJSON(r, http.MethodGet, "/api/v1/catalog", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload struct {
		Categories []map[string]any `json:"categories"`
		Questions  []map[string]any `json:"questions"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if len(payload.Categories) != 6 || len(payload.Questions) != 15 {
		t.Fatalf("unexpected catalog sizes %d/%d", len(payload.Categories), len(payload.Questions))
	}
}
