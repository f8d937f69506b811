package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	contractx "agenthub/agent/contract"
	planx "agenthub/agent/plan"
	promptx "agenthub/agent/prompt"
)

type fakeDispatcher struct {
	reply string
	err   error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, agentID, userMessage string) (string, error) {
	return f.reply, f.err
}

type fakeGateway struct {
	completion string
	err        error
}

func (f *fakeGateway) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	return f.completion, f.err
}

func newTestServer(t *testing.T, disp contractx.Dispatcher, gw contractx.Gateway) *Server {
	t.Helper()

	catalog := promptx.NewCatalog()
	gen, err := planx.NewGenerator(gw, catalog)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	ex, err := planx.NewExecutor(disp, catalog)
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}
	srv, err := New(disp, gen, ex, catalog)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) agentResponse {
	t.Helper()

	var resp agentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestAgentEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeDispatcher{reply: "🌤️ İstanbul: 21°C"}, &fakeGateway{})

	req := httptest.NewRequest(http.MethodPost, "/api/agent",
		strings.NewReader(`{"agentId":"1","userMessage":"istanbul hava"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if !resp.Success || resp.Response != "🌤️ İstanbul: 21°C" {
		t.Fatalf("response = %+v", resp)
	}
	if resp.AgentName != "Hava Durumu Agent" {
		t.Fatalf("agentName = %q, want catalog name", resp.AgentName)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("response must carry a request id")
	}
}

func TestAgentEndpointEmptyMessage(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeDispatcher{}, &fakeGateway{})

	req := httptest.NewRequest(http.MethodPost, "/api/agent",
		strings.NewReader(`{"agentId":"1","userMessage":"  "}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Success {
		t.Fatal("success must be false on validation failure")
	}
}

func TestAgentEndpointGatewayExhausted(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeDispatcher{err: contractx.ErrCredentialsExhausted}, &fakeGateway{})

	req := httptest.NewRequest(http.MethodPost, "/api/agent",
		strings.NewReader(`{"agentId":"1","userMessage":"hava"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Fatal("success must be false")
	}
	if !strings.Contains(resp.Error, "Yapay zeka servisi") {
		t.Fatalf("error = %q, want the service-unavailable message", resp.Error)
	}
}

func TestCoordinateEndpoint(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{completion: `{
		"explanation": "Hava durumuna bakıyorum.",
		"steps": [{"agent": "weather", "task": "hava", "input": "İstanbul"}]
	}`}
	srv := newTestServer(t, &fakeDispatcher{reply: "🌤️ 21°C"}, gw)

	req := httptest.NewRequest(http.MethodPost, "/api/coordinate",
		strings.NewReader(`{"userMessage":"istanbul hava nasıl"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("response = %+v", resp)
	}
	for _, want := range []string{"🤖 Hava durumuna bakıyorum.", "Adım 1", "🌤️ 21°C"} {
		if !strings.Contains(resp.Response, want) {
			t.Fatalf("transcript missing %q:\n%s", want, resp.Response)
		}
	}
}

func TestCoordinateEndpointMalformedPlan(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeDispatcher{}, &fakeGateway{completion: "bu bir plan değil"})

	req := httptest.NewRequest(http.MethodPost, "/api/coordinate",
		strings.NewReader(`{"userMessage":"bir şeyler yap"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Fatal("success must be false")
	}
	if !strings.Contains(resp.Error, "Plan oluşturulamadı") {
		t.Fatalf("error = %q, want the malformed-plan message", resp.Error)
	}
}

func TestHealthAndCORS(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeDispatcher{}, &fakeGateway{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want *", got)
	}

	pre := httptest.NewRequest(http.MethodOptions, "/api/agent", nil)
	preRec := httptest.NewRecorder()
	srv.ServeHTTP(preRec, pre)
	if preRec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", preRec.Code)
	}
}
