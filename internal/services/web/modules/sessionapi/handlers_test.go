package sessionapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sufni/dashboard/internal/services/sessions/model"
	"github.com/sufni/dashboard/internal/services/sessions/storage"
)

func TestListLoadsSnapshotOnce(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{groups: sampleGroups()}
	handler := mountHandler(t, Dependencies{Sessions: gateway})

	for range 2 {
		rr := serve(handler, httptest.NewRequest(http.MethodGet, "/api/session", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
		var got []sessionJSON
		if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		want := []sessionJSON{
			{ID: "3", Name: "Enduro stage 2", Description: "rebound +2", Timestamp: 1715698800},
			{ID: "1", Name: "Local loop", Timestamp: 1715504400},
		}
		if len(got) != len(want) {
			t.Fatalf("sessions = %+v, want %+v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("sessions[%d] = %+v, want %+v", i, got[i], want[i])
			}
		}
	}
	if gateway.loadCalls != 1 {
		t.Fatalf("LoadList calls = %d, want 1", gateway.loadCalls)
	}
}

func TestListEmptyIsArray(t *testing.T) {
	t.Parallel()

	rr := serve(mountHandler(t, Dependencies{Sessions: &fakeGateway{loaded: true}}), httptest.NewRequest(http.MethodGet, "/api/session", nil))
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want %q", got, "[]")
	}
}

func TestListLoadFailure(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{loadErr: errors.New("database is locked")}
	rr := serve(mountHandler(t, Dependencies{Sessions: gateway}), httptest.NewRequest(http.MethodGet, "/api/session", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rr.Body.String(), "locked") {
		t.Fatal("expected internal error detail to stay hidden")
	}
}

func TestGetSession(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{details: map[string]model.Detail{
		"1": {Session: model.Session{ID: "1", Name: "Local loop", Timestamp: time.Unix(1715504400, 0)}, Data: []byte{1, 2, 3}},
	}}
	handler := mountHandler(t, Dependencies{Sessions: gateway})

	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/api/session/1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if strings.Contains(rr.Body.String(), `"data"`) {
		t.Fatalf("body = %q, want no data field", rr.Body.String())
	}

	missing := serve(handler, httptest.NewRequest(http.MethodGet, "/api/session/9", nil))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("missing status = %d, want %d", missing.Code, http.StatusNotFound)
	}
	assertJSONError(t, missing, "session not found")
}

func TestCreateAccess(t *testing.T) {
	t.Parallel()

	body := `{"name":"Import","description":"from csv","data":"AQID","timestamp":1715504400}`
	tests := []struct {
		name   string
		deps   func(*fakeGateway) Dependencies
		token  string
		status int
	}{
		{
			name: "configured token",
			deps: func(g *fakeGateway) Dependencies {
				return Dependencies{Sessions: g, Tokens: []string{"other", "import-token"}}
			},
			token:  "import-token",
			status: http.StatusCreated,
		},
		{
			name:   "full access viewer",
			deps:   func(g *fakeGateway) Dependencies { return Dependencies{Sessions: g, Resolvers: fullAccessResolvers()} },
			status: http.StatusCreated,
		},
		{
			name:   "wrong token",
			deps:   func(g *fakeGateway) Dependencies { return Dependencies{Sessions: g, Tokens: []string{"import-token"}} },
			token:  "guess",
			status: http.StatusForbidden,
		},
		{
			name:   "no tokens configured",
			deps:   func(g *fakeGateway) Dependencies { return Dependencies{Sessions: g, Tokens: []string{" "}} },
			token:  " ",
			status: http.StatusForbidden,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gateway := &fakeGateway{putID: "12"}
			req := httptest.NewRequest(http.MethodPut, "/api/session", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if tc.token != "" {
				req.Header.Set(TokenHeader, tc.token)
			}
			rr := serve(mountHandler(t, tc.deps(gateway)), req)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			if tc.status != http.StatusCreated {
				if len(gateway.puts) != 0 {
					t.Fatalf("puts = %+v, want none", gateway.puts)
				}
				return
			}
			var got map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode create: %v", err)
			}
			if got["id"] != "12" {
				t.Fatalf("id = %q, want %q", got["id"], "12")
			}
			if len(gateway.puts) != 1 {
				t.Fatalf("puts = %d, want 1", len(gateway.puts))
			}
			put := gateway.puts[0]
			if put.Name != "Import" || put.Description != "from csv" || string(put.Data) != "\x01\x02\x03" {
				t.Fatalf("put = %+v, want decoded payload", put)
			}
			if !put.Timestamp.Equal(time.Unix(1715504400, 0)) {
				t.Fatalf("timestamp = %v, want %v", put.Timestamp, time.Unix(1715504400, 0))
			}
		})
	}
}

func TestCreateDefaultsTimestampToNow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{putID: "4"}
	deps := Dependencies{Sessions: gateway, Tokens: []string{"t"}, Now: func() time.Time { return now }}
	req := httptest.NewRequest(http.MethodPut, "/api/session", strings.NewReader(`{"name":"n","data":"AQ=="}`))
	req.Header.Set(TokenHeader, "t")
	rr := serve(mountHandler(t, deps), req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	if !gateway.puts[0].Timestamp.Equal(now) {
		t.Fatalf("timestamp = %v, want %v", gateway.puts[0].Timestamp, now)
	}
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "malformed", body: `{"name":`, want: "invalid JSON payload"},
		{name: "bad base64", body: `{"name":"n","data":"***"}`, want: "invalid JSON payload"},
		{name: "missing name", body: `{"name":"  ","data":"AQ=="}`, want: "name is required"},
		{name: "missing data", body: `{"name":"n"}`, want: "data is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gateway := &fakeGateway{}
			req := httptest.NewRequest(http.MethodPut, "/api/session", strings.NewReader(tc.body))
			req.Header.Set(TokenHeader, "t")
			rr := serve(mountHandler(t, Dependencies{Sessions: gateway, Tokens: []string{"t"}}), req)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
			assertJSONError(t, rr, tc.want)
			if len(gateway.puts) != 0 {
				t.Fatalf("puts = %+v, want none", gateway.puts)
			}
		})
	}
}

func TestUpdateAndDeleteRequireFullAccess(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	handler := mountHandler(t, Dependencies{Sessions: gateway, Tokens: []string{"t"}})

	patch := httptest.NewRequest(http.MethodPatch, "/api/session/1", strings.NewReader(`{"name":"x"}`))
	patch.Header.Set(TokenHeader, "t")
	if rr := serve(handler, patch); rr.Code != http.StatusForbidden {
		t.Fatalf("PATCH status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	del := httptest.NewRequest(http.MethodDelete, "/api/session/1", nil)
	del.Header.Set(TokenHeader, "t")
	if rr := serve(handler, del); rr.Code != http.StatusForbidden {
		t.Fatalf("DELETE status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	if len(gateway.updates) != 0 || len(gateway.removes) != 0 {
		t.Fatalf("updates = %v removes = %v, want none", gateway.updates, gateway.removes)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	handler := mountHandler(t, Dependencies{Sessions: gateway, Resolvers: fullAccessResolvers()})

	rr := serve(handler, httptest.NewRequest(http.MethodPatch, "/api/session/1", strings.NewReader(`{"name":" Renamed ","description":" d "}`)))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("PATCH status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if len(gateway.updates) != 1 || gateway.updates[0] != "1|Renamed|d" {
		t.Fatalf("updates = %v, want [1|Renamed|d]", gateway.updates)
	}

	rr = serve(handler, httptest.NewRequest(http.MethodDelete, "/api/session/1", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if len(gateway.removes) != 1 || gateway.removes[0] != "1" {
		t.Fatalf("removes = %v, want [1]", gateway.removes)
	}
}

func TestDeleteMissingSession(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{writeErr: storage.ErrNotFound}
	rr := serve(mountHandler(t, Dependencies{Sessions: gateway, Resolvers: fullAccessResolvers()}), httptest.NewRequest(http.MethodDelete, "/api/session/5", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestUnavailableStore(t *testing.T) {
	t.Parallel()

	rr := serve(mountHandler(t, Dependencies{}), httptest.NewRequest(http.MethodGet, "/api/session", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestUnknownAPIPath(t *testing.T) {
	t.Parallel()

	rr := serve(mountHandler(t, Dependencies{}), httptest.NewRequest(http.MethodGet, "/api/nothing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	assertJSONError(t, rr, "Not Found")
}

func mountHandler(t *testing.T, deps Dependencies) http.Handler {
	t.Helper()
	mount, err := New(deps).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/api/" {
		t.Fatalf("Prefix = %q, want %q", mount.Prefix, "/api/")
	}
	return mount.Handler
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body %q: %v", rr.Body.String(), err)
	}
	if payload["error"] != want {
		t.Fatalf("error = %q, want %q", payload["error"], want)
	}
}
