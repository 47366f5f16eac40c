package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/appianeng/maverick-mcp/internal/common"
	"github.com/appianeng/maverick-mcp/internal/maverick"
)

func testLogger() *common.Logger {
	return common.NewLoggerFromConfig(common.LoggingConfig{
		Level:   "error", // minimal logging
		Outputs: []string{"console"},
		Format:  "json",
	})
}

func newTestDispatcher(url string) *Dispatcher {
	client := maverick.NewClient(url, "test-api-token", 0, testLogger())
	return NewDispatcher(client, testLogger())
}

func TestInvoke_UnknownTool(t *testing.T) {
	requests := 0
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)
	_, err := d.Invoke(context.Background(), "delete_everything", map[string]any{})
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("Expected ErrUnknownTool, got %v", err)
	}
	if requests != 0 {
		t.Errorf("Expected no upstream requests for an unknown tool, got %d", requests)
	}
}

func TestInvoke_CreateSite(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		if body["subdomain"] != "demo" || body["purpose"] != "development" {
			t.Errorf("Unexpected body: %v", body)
		}
		if _, ok := body["dryRun"]; ok {
			t.Error("dryRun must not be forwarded in the creation body")
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "Site creation started for demo"})
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)
	text, err := d.Invoke(context.Background(), ToolCreateSite, map[string]any{
		"subdomain": "demo",
		"purpose":   "development",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "Site created successfully: Site creation started for demo" {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestInvoke_CreateSite_InvalidArgsNeverReachUpstream(t *testing.T) {
	requests := 0
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusCreated)
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)

	_, err := d.Invoke(context.Background(), ToolCreateSite, map[string]any{})
	if err == nil || err.Error() != "subdomain parameter is required" {
		t.Errorf("Expected required error, got %v", err)
	}

	_, err = d.Invoke(context.Background(), ToolCreateSite, map[string]any{
		"subdomain": "demo",
		"topology":  "mesh",
	})
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Errorf("Expected *ArgumentError for enum violation, got %v", err)
	}

	if requests != 0 {
		t.Errorf("Expected no upstream requests on invalid input, got %d", requests)
	}
}

func TestInvoke_CreateSite_DryRun(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/suite/webapi/sites" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("dryRun") != "true" {
			t.Errorf("Expected dryRun=true query, got %q", r.URL.RawQuery)
		}
		body, _ := io.ReadAll(r.Body)
		if strings.TrimSpace(string(body)) != `{"subdomain":"demo"}` {
			t.Errorf("Unexpected body: %s", body)
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)
	text, err := d.Invoke(context.Background(), ToolCreateSite, map[string]any{
		"subdomain": "demo",
		"dryRun":    true,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "Dry run successful - no validation errors found. Site would be created if dryRun=false" {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestInvoke_QuerySites_DefaultPagination(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("startIndex") != "1" || q.Get("batchSize") != "20" {
			t.Errorf("Expected default pagination, got %q", r.URL.RawQuery)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)
	text, err := d.Invoke(context.Background(), ToolQuerySites, map[string]any{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "No sites found matching the query criteria." {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestInvoke_QuerySites_LabelFilterPairing(t *testing.T) {
	requests := 0
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNoContent)
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)

	_, err := d.Invoke(context.Background(), ToolQuerySites, map[string]any{"labelName": "team"})
	if err == nil || err.Error() != "labelName must be used together with labelValue" {
		t.Errorf("Expected pairing error, got %v", err)
	}

	_, err = d.Invoke(context.Background(), ToolQuerySites, map[string]any{"labelValue": []any{"core"}})
	if err == nil || err.Error() != "labelValue must be used together with labelName" {
		t.Errorf("Expected pairing error, got %v", err)
	}

	if requests != 0 {
		t.Errorf("Expected no upstream requests, got %d", requests)
	}

	_, err = d.Invoke(context.Background(), ToolQuerySites, map[string]any{
		"labelName":  "team",
		"labelValue": []any{"core"},
	})
	if err != nil {
		t.Errorf("Expected paired filter accepted, got %v", err)
	}
	if requests != 1 {
		t.Errorf("Expected one upstream request, got %d", requests)
	}
}

func TestInvoke_GetSiteByID(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/suite/webapi/sites/1004544" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"siteId": 1004544, "subdomain": "demo"})
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)
	text, err := d.Invoke(context.Background(), ToolGetSiteByID, map[string]any{"identifier": "1004544"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(text, "Site details for '1004544':") {
		t.Errorf("Unexpected text: %q", text)
	}
	if !strings.Contains(text, "Subdomain: demo") {
		t.Errorf("Expected site fields in output:\n%s", text)
	}
}

func TestInvoke_GetSiteByID_NotFound(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)
	_, err := d.Invoke(context.Background(), ToolGetSiteByID, map[string]any{"identifier": "ghost"})

	var nfErr *maverick.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("Expected *NotFoundError, got %T", err)
	}
}

func TestInvoke_ManageSite_UnknownActionNeverReachesUpstream(t *testing.T) {
	requests := 0
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)
	_, err := d.Invoke(context.Background(), ToolManageSite, map[string]any{
		"identifier": "1004544",
		"action":     "destroy",
	})
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("Expected *ArgumentError for unknown action, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "action must be one of: ") {
		t.Errorf("Unexpected error message: %q", err.Error())
	}
	if requests != 0 {
		t.Errorf("Expected no upstream requests, got %d", requests)
	}
}

func TestInvoke_ManageSite_RevertRequiresRestoreSpec(t *testing.T) {
	requests := 0
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)
	_, err := d.Invoke(context.Background(), ToolManageSite, map[string]any{
		"identifier": "1004544",
		"action":     "revert",
	})
	if err == nil || err.Error() != "revert action requires restoreSpec with siteID and createdAt" {
		t.Errorf("Unexpected error: %v", err)
	}
	if requests != 0 {
		t.Errorf("Expected no upstream requests, got %d", requests)
	}
}

func TestInvoke_ManageSite_RestoreSpecFromJSONText(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") != "revert" {
			t.Errorf("Expected action=revert, got %q", r.URL.RawQuery)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		spec, ok := body["restoreSpec"].(map[string]any)
		if !ok {
			t.Fatalf("Expected restoreSpec object, got %v", body)
		}
		if spec["siteID"] != float64(1004544) || spec["createdAt"] != "2026-08-20T00:00:00Z" {
			t.Errorf("Unexpected restoreSpec: %v", spec)
		}
		w.Write([]byte(`{}`))
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)
	text, err := d.Invoke(context.Background(), ToolManageSite, map[string]any{
		"identifier":  "1004544",
		"action":      "revert",
		"restoreSpec": `{"siteID": 1004544, "createdAt": "2026-08-20T00:00:00Z"}`,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "Site revert completed successfully" {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestInvoke_ManageSite_Restart(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Query().Get("action") != "restart" {
			t.Errorf("Unexpected request: %s %s?%s", r.Method, r.URL.Path, r.URL.RawQuery)
		}
		w.Write([]byte(`{}`))
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)
	text, err := d.Invoke(context.Background(), ToolManageSite, map[string]any{
		"identifier": "my-test-site",
		"action":     "restart",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "Site restart completed successfully" {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestInvoke_ManageSite_AmbiguousName(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)
	_, err := d.Invoke(context.Background(), ToolManageSite, map[string]any{
		"identifier": "demo",
		"action":     "stop",
	})

	var ambErr *maverick.AmbiguousNameError
	if !errors.As(err, &ambErr) {
		t.Fatalf("Expected *AmbiguousNameError, got %T", err)
	}
	if FormatError(err) != "Multiple sites found with the same name. Please use site ID instead." {
		t.Errorf("Unexpected formatted error: %q", FormatError(err))
	}
}

func TestInvoke_GetSiteResizeStatus_NoResize(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/suite/webapi/resizes/1004544" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)
	text, err := d.Invoke(context.Background(), ToolGetSiteResizeStatus, map[string]any{"siteId": "1004544"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "No resize operation in progress for site 1004544. A new resize can be initiated." {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestInvoke_TokenNeverInToolOutput(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer mockServer.Close()

	d := newTestDispatcher(mockServer.URL)
	invocations := []struct {
		tool string
		args map[string]any
	}{
		{ToolCreateSite, map[string]any{"subdomain": "demo"}},
		{ToolQuerySites, map[string]any{}},
		{ToolGetSiteByID, map[string]any{"identifier": "demo"}},
		{ToolManageSite, map[string]any{"identifier": "demo", "action": "stop"}},
		{ToolGetSiteResizeStatus, map[string]any{"siteId": "1004544"}},
	}

	for _, inv := range invocations {
		_, err := d.Invoke(context.Background(), inv.tool, inv.args)
		if err == nil {
			t.Fatalf("%s: expected error for 500 response", inv.tool)
		}
		if strings.Contains(err.Error(), "test-api-token") {
			t.Errorf("%s: credential leaked into error: %q", inv.tool, err.Error())
		}
		if strings.Contains(FormatError(err), "test-api-token") {
			t.Errorf("%s: credential leaked into formatted output: %q", inv.tool, FormatError(err))
		}
	}
}
