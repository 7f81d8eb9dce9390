package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tip-advisor/domain"
	"tip-advisor/repository"
	"tip-advisor/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeGenerator struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
	block chan struct{}
}

func (f *fakeGenerator) GenerateContent(
	ctx context.Context,
	prompt string,
	cfg service.GenerationConfig,
) (string, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.text, f.err
}

func newTestRouter(gen service.TextGenerator) *gin.Engine {
	client := service.NewSuggestionClient(gen)
	sessions := service.NewSessionService(repository.NewMemorySessionRepository(), client)
	return NewRouter(
		NewTipHandler(service.NewTipService()),
		NewSuggestionHandler(client, sessions),
	)
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {

	router := newTestRouter(&fakeGenerator{})

	w := doJSON(router, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCalculateTipHandler_OK(t *testing.T) {

	router := newTestRouter(&fakeGenerator{})

	w := doJSON(router, http.MethodPost, "/tip/calculate", `{"bill_amount":"50.00","tip_percent":"20"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result domain.TipResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if result.TipAmount != 10 || result.TotalAmount != 60 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestCalculateTipHandler_UnparsableIsZero(t *testing.T) {

	router := newTestRouter(&fakeGenerator{})

	w := doJSON(router, http.MethodPost, "/tip/calculate", `{"bill_amount":"","tip_percent":"15"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result domain.TipResult
	_ = json.Unmarshal(w.Body.Bytes(), &result)
	if result.TipAmount != 0 || result.TotalAmount != 0 {
		t.Errorf("expected zero result, got %+v", result)
	}
}

func TestCalculateTipHandler_BadRequest(t *testing.T) {

	router := newTestRouter(&fakeGenerator{})

	w := doJSON(router, http.MethodPost, "/tip/calculate", `{invalid-json}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalculateTipHandler_MethodNotAllowed(t *testing.T) {

	router := newTestRouter(&fakeGenerator{})

	w := doJSON(router, http.MethodGet, "/tip/calculate", "")

	if w.Code != http.StatusNotFound && w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 404 or 405, got %d", w.Code)
	}
}

func TestLegend(t *testing.T) {

	router := newTestRouter(&fakeGenerator{})

	w := doJSON(router, http.MethodGet, "/tip/legend", "")

	var body struct {
		ServiceQualities []string             `json:"service_qualities"`
		Legend           []domain.LegendEntry `json:"legend"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(body.ServiceQualities) != 4 || len(body.Legend) != 4 {
		t.Errorf("unexpected legend %+v", body)
	}
}

func TestSuggestTipHandler_Success(t *testing.T) {

	gen := &fakeGenerator{text: "Tip 18% ($9.00), total $59.00"}
	router := newTestRouter(gen)

	w := doJSON(router, http.MethodPost, "/tip/suggest",
		`{"bill_amount":50,"service_quality":"Good","group_size":2}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp suggestionResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Suggestion != gen.text || resp.Failed {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestSuggestTipHandler_RemoteFailure(t *testing.T) {

	router := newTestRouter(&fakeGenerator{err: errors.New("timeout")})

	w := doJSON(router, http.MethodPost, "/tip/suggest", `{"bill_amount":50}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp suggestionResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Suggestion != "Error: timeout" || !resp.Failed {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestSuggestTipHandler_Validation(t *testing.T) {

	gen := &fakeGenerator{text: "ok"}
	router := newTestRouter(gen)

	bodies := []string{
		`{"bill_amount":-1}`,
		`{"bill_amount":50,"service_quality":"Amazing"}`,
		`{"bill_amount":50,"group_size":-3}`,
		`{"bill_amount":50,"group_size":1000}`,
		`{"bill_amount":2000000000}`,
		`{}`,
		`{"service_quality":"Good","group_size":2}`,
	}

	for _, body := range bodies {
		w := doJSON(router, http.MethodPost, "/tip/suggest", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
		}
	}
	if gen.calls != 0 {
		t.Errorf("generator should not be called for invalid input")
	}
}

func TestSuggestTipRequest_Defaults(t *testing.T) {

	bill := 30.0
	req := suggestTipRequest{BillAmount: &bill}.toDomain()

	if req.ServiceQuality != domain.ServiceGood {
		t.Errorf("expected Good, got %s", req.ServiceQuality)
	}
	if req.GroupSize != 2 {
		t.Errorf("expected group size 2, got %d", req.GroupSize)
	}
	if req.BillAmount != 30 {
		t.Errorf("expected bill 30, got %v", req.BillAmount)
	}
}

func TestSuggestTipHandler_ZeroBillIsAccepted(t *testing.T) {

	gen := &fakeGenerator{text: "ok"}
	router := newTestRouter(gen)

	w := doJSON(router, http.MethodPost, "/tip/suggest", `{"bill_amount":0}`)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSessionFlow(t *testing.T) {

	gen := &fakeGenerator{text: "20% feels right", block: make(chan struct{})}
	router := newTestRouter(gen)

	w := doJSON(router, http.MethodPost, "/sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var created struct {
		SessionID string `json:"session_id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	path := "/sessions/" + created.SessionID

	w = doJSON(router, http.MethodPost, path+"/suggestion", `{"bill_amount":80,"service_quality":"Excellent"}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}

	w = doJSON(router, http.MethodPost, path+"/suggestion", `{"bill_amount":80}`)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 while loading, got %d", w.Code)
	}

	close(gen.block)

	var state domain.SessionState
	deadline := time.Now().Add(2 * time.Second)
	for {
		w = doJSON(router, http.MethodGet, path, "")
		_ = json.Unmarshal(w.Body.Bytes(), &state)
		if !state.Loading || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if state.Loading {
		t.Fatalf("suggestion never completed")
	}
	if state.Suggestion != "20% feels right" {
		t.Errorf("unexpected suggestion %q", state.Suggestion)
	}
}

func TestSession_NotFound(t *testing.T) {

	router := newTestRouter(&fakeGenerator{})

	w := doJSON(router, http.MethodGet, "/sessions/unknown", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	w = doJSON(router, http.MethodPost, "/sessions/unknown/suggestion", `{"bill_amount":10}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
