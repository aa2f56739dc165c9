package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ganot/nirapod/internal/app"
	"github.com/ganot/nirapod/internal/config"
	"github.com/ganot/nirapod/internal/mcp"
	"github.com/stretchr/testify/require"
)

type testHandler struct {
	method string
	params map[string]any
}

func (h *testHandler) Handle(_ context.Context, method string, params json.RawMessage) (any, error) {
	h.method = method
	h.params = map[string]any{}
	if err := json.Unmarshal(params, &h.params); err != nil {
		return nil, err
	}
	return map[string]string{"tool": method}, nil
}

func newAppServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Timing.AlertDelay = time.Hour
	a, err := app.New(context.Background(), cfg, nil, app.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	handler := mcp.NewHandler(mcp.Services{
		Contacts:      a.Contacts,
		Alerts:        a.Alerts,
		Notifications: a.Notifications,
		Rides:         a.Rides,
		Resources:     a.Resources,
		Guides:        a.Guides,
		Wellness:      a.Wellness,
		Incidents:     a.Incidents,
		Tutorials:     a.Tutorials,
		Profile:       a.Profile,
		Health:        a.Health,
		Activity:      a.Activity,
	})
	server := httptest.NewServer(NewServer(handler, Options{Metrics: a.Metrics.Handler()}))
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, method, url string, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 && data[0] == '{' {
		require.NoError(t, json.Unmarshal(data, &out))
	}
	return resp, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHTTPServer_Health(t *testing.T) {
	server := httptest.NewServer(NewServer(&testHandler{}, Options{}))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestHTTPServer_MergesParams(t *testing.T) {
	handler := &testHandler{}
	server := httptest.NewServer(NewServer(handler, Options{}))
	t.Cleanup(server.Close)

	resp, _ := do(t, http.MethodPatch, server.URL+"/api/contacts/7?descending=true", `{"id":"ignored","name":"Bob"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "update_contact", handler.method)
	require.Equal(t, "7", handler.params["id"])
	require.Equal(t, "Bob", handler.params["name"])
	require.Equal(t, true, handler.params["descending"])

	resp, _ = do(t, http.MethodGet, server.URL+"/api/activity?limit=5&panel=contacts", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "get_recent_activity", handler.method)
	require.Equal(t, float64(5), handler.params["limit"])
	require.Equal(t, "contacts", handler.params["panel"])

	resp, body := do(t, http.MethodGet, server.URL+"/api/activity?limit=many", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "INVALID_INPUT", errorCode(body))

	resp, body = do(t, http.MethodGet, server.URL+"/api/nowhere", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestHTTPServer_Contacts(t *testing.T) {
	server := newAppServer(t)

	resp, body := do(t, http.MethodGet, server.URL+"/api/contacts/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "John Smith", body["name"])

	resp, body = do(t, http.MethodGet, server.URL+"/api/contacts/nope", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "NOT_FOUND", errorCode(body))

	resp, body = do(t, http.MethodPost, server.URL+"/api/contacts", `{"name":"Bob"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "VALIDATION_FAILED", errorCode(body))

	resp, body = do(t, http.MethodPost, server.URL+"/api/contacts", `{"name":"Bob","phone":"555-0100"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, body["id"])

	resp, _ = do(t, http.MethodPost, server.URL+"/api/contacts", `{not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHTTPServer_SOSConflict(t *testing.T) {
	server := newAppServer(t)

	resp, body := do(t, http.MethodPost, server.URL+"/api/sos", `{"location":"Main St"}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Equal(t, "sending", body["status"])

	resp, body = do(t, http.MethodPost, server.URL+"/api/sos", "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "ALERT_IN_PROGRESS", errorCode(body))

	resp, body = do(t, http.MethodDelete, server.URL+"/api/sos", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "cancelled", body["status"])
}

func TestHTTPServer_IncidentStatus(t *testing.T) {
	server := newAppServer(t)

	resp, body := do(t, http.MethodPost, server.URL+"/api/incidents/1/status", `{"status":"resolved"}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, "MISSING_NOTE", errorCode(body))

	resp, body = do(t, http.MethodPost, server.URL+"/api/incidents/1/status", `{"status":"resolved","note":"Bike recovered"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "resolved", body["status"])
}

func TestHTTPServer_ContactsView(t *testing.T) {
	server := newAppServer(t)

	resp, body := do(t, http.MethodPut, server.URL+"/api/contacts-view/groups", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "groups", body["view"])
	require.NotEmpty(t, body["groups"])

	resp, body = do(t, http.MethodGet, server.URL+"/api/contacts-view", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "groups", body["view"])

	resp, body = do(t, http.MethodPut, server.URL+"/api/contacts-view/settings", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "INVALID_INPUT", errorCode(body))
}

func TestHTTPServer_ProfileEdit(t *testing.T) {
	server := newAppServer(t)

	resp, body := do(t, http.MethodPut, server.URL+"/api/profile/edit/phone", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "phone", body["field"])

	resp, body = do(t, http.MethodPut, server.URL+"/api/profile/edit/email", "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "DRAFT_STATE", errorCode(body))

	resp, body = do(t, http.MethodPost, server.URL+"/api/profile/edit", `{"value":"call me"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "VALIDATION_FAILED", errorCode(body))

	resp, body = do(t, http.MethodPost, server.URL+"/api/profile/edit", `{"value":"(555) 000-2222"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "(555) 000-2222", body["phone"])

	resp, body = do(t, http.MethodPatch, server.URL+"/api/profile/security", `{"notification_level":"Loud"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "INVALID_INPUT", errorCode(body))
}

func TestHTTPServer_Medications(t *testing.T) {
	server := newAppServer(t)

	resp, body := do(t, http.MethodPost, server.URL+"/api/medications/1/taken", "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "INVALID_TRANSITION", errorCode(body))

	resp, body = do(t, http.MethodPost, server.URL+"/api/medications/2/taken", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "taken", body["status"])

	resp, body = do(t, http.MethodGet, server.URL+"/api/medications", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(1), body["due"])

	resp, body = do(t, http.MethodPost, server.URL+"/api/medications", `{"name":"Iron","time":"noon","dosage":"65mg"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "VALIDATION_FAILED", errorCode(body))
}

func TestHTTPServer_RPC(t *testing.T) {
	server := newAppServer(t)

	resp, body := do(t, http.MethodPost, server.URL+"/rpc", `{"jsonrpc":"2.0","method":"get_contact","params":{"id":"1"},"id":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := body["result"].(map[string]any)
	require.Equal(t, "John Smith", result["name"])

	_, body = do(t, http.MethodPost, server.URL+"/rpc", `{"jsonrpc":"2.0","method":"nope","id":2}`)
	rpcErr := body["error"].(map[string]any)
	require.Equal(t, float64(ErrMethodNotFound), rpcErr["code"])

	_, body = do(t, http.MethodPost, server.URL+"/rpc", `{"jsonrpc":"2.0","method":"get_contact","params":{"id":"x"},"id":3}`)
	rpcErr = body["error"].(map[string]any)
	require.Equal(t, float64(ErrApplication), rpcErr["code"])
	require.Equal(t, "NOT_FOUND", rpcErr["data"].(map[string]any)["code"])
}

func TestHTTPServer_Metrics(t *testing.T) {
	server := newAppServer(t)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(data), "nirapod_panel_operations_total")
}

func TestStatusForCode(t *testing.T) {
	require.Equal(t, http.StatusNotFound, StatusForCode("NOT_FOUND"))
	require.Equal(t, http.StatusConflict, StatusForCode("RIDE_IN_PROGRESS"))
	require.Equal(t, http.StatusInternalServerError, StatusForCode("SOMETHING_ELSE"))
}
