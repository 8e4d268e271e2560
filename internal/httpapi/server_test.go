package httpapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todotour/internal/export"
	"todotour/internal/guide"
	"todotour/internal/httpapi"
	"todotour/internal/testutil"
	"todotour/internal/tour"
)

type viewBody struct {
	Run       bool   `json:"run"`
	StepIndex int    `json:"stepIndex"`
	Phase     string `json:"phase"`
	Input     string `json:"input"`
	Steps     []struct {
		Target string `json:"target"`
	} `json:"steps"`
	Tasks []struct {
		ID        string `json:"id"`
		Text      string `json:"text"`
		Completed bool   `json:"completed"`
	} `json:"tasks"`
	Edit *struct {
		Index int    `json:"index"`
		Draft string `json:"draft"`
	} `json:"edit"`
}

type fixture struct {
	handler http.Handler
	clock   *testutil.FakeClock
	svc     *testutil.FakeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := testutil.NewFakeClock()
	ctrl := guide.New(guide.Options{IdlePeriod: 2 * time.Second, AfterFunc: clock.AfterFunc})
	t.Cleanup(ctrl.Close)
	ctrl.Mount()

	svc := testutil.NewFakeService()
	srv := httpapi.New(ctrl, httpapi.Options{
		Exporter:   export.New(svc.Provider(), nil),
		ExportList: "Tour",
	})
	return &fixture{handler: srv.Handler(), clock: clock, svc: svc}
}

func (f *fixture) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, viewBody) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var v viewBody
	if rec.Code == http.StatusOK && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
			t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, v
}

func TestServer_State(t *testing.T) {
	f := newFixture(t)

	rec, v := f.do(t, http.MethodGet, "/api/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !v.Run || v.StepIndex != 0 || v.Phase != "running" {
		t.Errorf("unexpected view: %#v", v)
	}
	if len(v.Steps) != tour.StepCount || v.Steps[0].Target != tour.TargetTaskInput {
		t.Errorf("unexpected steps: %#v", v.Steps)
	}
	if v.Tasks == nil {
		t.Error("expected tasks to encode as an empty array")
	}
}

func TestServer_TourFlow(t *testing.T) {
	f := newFixture(t)

	f.do(t, http.MethodPost, "/api/input", `{"text":"buy milk"}`)
	f.clock.Advance(2 * time.Second)
	_, v := f.do(t, http.MethodGet, "/api/state", "")
	if v.StepIndex != tour.StepAddButton {
		t.Fatalf("expected step %d after idle, got %d", tour.StepAddButton, v.StepIndex)
	}

	_, v = f.do(t, http.MethodPost, "/api/tasks", "")
	if v.StepIndex != tour.StepCheckbox || len(v.Tasks) != 1 || v.Tasks[0].Text != "buy milk" {
		t.Fatalf("unexpected view after add: %#v", v)
	}

	_, v = f.do(t, http.MethodPost, "/api/tasks/0/toggle", "")
	if !v.Tasks[0].Completed {
		t.Error("expected task completed")
	}

	_, v = f.do(t, http.MethodPost, "/api/tour/callback",
		`{"status":"running","type":"step:after","index":2,"action":"next"}`)
	if v.StepIndex != tour.StepEditButton {
		t.Fatalf("expected step %d, got %d", tour.StepEditButton, v.StepIndex)
	}

	_, v = f.do(t, http.MethodPost, "/api/tasks/0/edit", "")
	if v.StepIndex != tour.StepEditInput || v.Edit == nil || v.Edit.Draft != "buy milk" {
		t.Fatalf("unexpected view after edit: %#v", v)
	}

	f.do(t, http.MethodPost, "/api/draft", `{"text":"buy oat milk"}`)
	f.clock.Advance(2 * time.Second)

	_, v = f.do(t, http.MethodPost, "/api/save", "")
	if v.StepIndex != tour.StepDeleteButton || v.Tasks[0].Text != "buy oat milk" || v.Edit != nil {
		t.Fatalf("unexpected view after save: %#v", v)
	}

	_, v = f.do(t, http.MethodDelete, "/api/tasks/0?confirm=false", "")
	if len(v.Tasks) != 1 {
		t.Fatal("declined delete must keep the task")
	}
	_, v = f.do(t, http.MethodDelete, "/api/tasks/0?confirm=true", "")
	if len(v.Tasks) != 0 {
		t.Fatal("expected task deleted")
	}

	_, v = f.do(t, http.MethodPost, "/api/tour/callback",
		`{"status":"finished","type":"tour:end","index":6,"action":"next"}`)
	if v.Run || v.Phase != "finished" {
		t.Errorf("expected finished tour, got %#v", v)
	}
}

func TestServer_AddWithText(t *testing.T) {
	f := newFixture(t)

	_, v := f.do(t, http.MethodPost, "/api/tasks", `{"text":"  buy eggs "}`)
	if len(v.Tasks) != 1 || v.Tasks[0].Text != "buy eggs" {
		t.Errorf("unexpected tasks: %#v", v.Tasks)
	}
}

func TestServer_EmptyChunkedBody(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/input", `{"text":"walk dog"}`)

	emptyChunked := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, io.NopCloser(strings.NewReader("")))
		req.ContentLength = -1
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		return rec
	}

	rec := emptyChunked(http.MethodPost, "/api/tasks")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var v viewBody
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(v.Tasks) != 1 || v.Tasks[0].Text != "walk dog" {
		t.Errorf("unexpected tasks: %#v", v.Tasks)
	}

	rec = emptyChunked(http.MethodPost, "/api/input")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing text, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "text is required") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestServer_BadRequests(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/api/input", ""},
		{http.MethodPost, "/api/input", "{"},
		{http.MethodPost, "/api/tasks/abc/toggle", ""},
		{http.MethodDelete, "/api/tasks/0", ""},
		{http.MethodPost, "/api/tour/callback", "not json"},
	}
	for _, tc := range tests {
		rec, _ := f.do(t, tc.method, tc.path, tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s %s: expected 400, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestServer_Export(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/tasks", `{"text":"buy milk"}`)

	rec, _ := f.do(t, http.MethodPost, "/api/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res export.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.List != "Tour" || res.Created != 1 {
		t.Errorf("unexpected result: %#v", res)
	}
	if got := len(f.svc.Tasks("tour")); got != 1 {
		t.Errorf("expected 1 exported task, got %d", got)
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
}
