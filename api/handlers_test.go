package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/radscribe/server/middleware"
	"github.com/skillsenselab/radscribe/transcribe"
)

func testEngine(t *testing.T, cfg Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loader := transcribe.LoaderFunc(func(_ context.Context, tag transcribe.Tag) (transcribe.Model, error) {
		return transcribe.ModelFunc(func(context.Context, transcribe.AudioInput) (string, error) {
			return "text from " + string(tag), nil
		}), nil
	})
	reg := transcribe.NewRegistry(loader)
	orch := transcribe.NewOrchestrator(reg)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	New(orch, reg, cfg).Register(engine)
	return engine
}

func compareRequest(t *testing.T, models []string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", "clip.wav")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("RIFFfakewav")); err != nil {
		t.Fatal(err)
	}
	for _, m := range models {
		_ = writer.WriteField("models", m)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/compare", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestCompareEndpoint(t *testing.T) {
	engine := testEngine(t, Config{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, compareRequest(t, []string{"tiny", "base"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Results []struct {
				Model     string  `json:"model"`
				Outcome   string  `json:"outcome"`
				Text      string  `json:"text"`
				ElapsedMs float64 `json:"elapsed_ms"`
			} `json:"results"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(resp.Data.Results))
	}
	if resp.Data.Results[0].Model != "tiny" || resp.Data.Results[1].Model != "base" {
		t.Errorf("order = [%s %s], want [tiny base]", resp.Data.Results[0].Model, resp.Data.Results[1].Model)
	}
	for _, r := range resp.Data.Results {
		if r.Outcome != "success" {
			t.Errorf("outcome for %s = %s", r.Model, r.Outcome)
		}
		if r.ElapsedMs < 0 {
			t.Errorf("elapsed for %s = %v, want non-negative", r.Model, r.ElapsedMs)
		}
	}
}

func TestCompareEndpoint_EchoesRequestID(t *testing.T) {
	engine := testEngine(t, Config{})

	req := compareRequest(t, []string{"tiny"})
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			RequestID string `json:"request_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.RequestID != "req-42" {
		t.Errorf("request_id = %q, want req-42", resp.Data.RequestID)
	}
}

func TestCompareEndpoint_Validation(t *testing.T) {
	engine := testEngine(t, Config{})

	tests := []struct {
		name       string
		models     []string
		wantStatus int
		wantCode   string
	}{
		{"no models", nil, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unknown model", []string{"huge"}, http.StatusBadRequest, "UNKNOWN_VARIANT"},
		{"duplicate models", []string{"tiny", "tiny"}, http.StatusBadRequest, "INVALID_REQUEST"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, compareRequest(t, tc.models))
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error.Code != tc.wantCode {
				t.Errorf("code = %s, want %s", resp.Error.Code, tc.wantCode)
			}
		})
	}
}

func TestCompareEndpoint_MissingAudio(t *testing.T) {
	engine := testEngine(t, Config{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("models", "tiny")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/compare", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestModelsEndpoint(t *testing.T) {
	engine := testEngine(t, Config{})

	// Load one model via a comparison, then list.
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, compareRequest(t, []string{"base"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("compare status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/models", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Data []struct {
			Tag    string `json:"tag"`
			Loaded bool   `json:"loaded"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 5 {
		t.Fatalf("models = %d, want 5", len(resp.Data))
	}
	for _, m := range resp.Data {
		wantLoaded := m.Tag == "base"
		if m.Loaded != wantLoaded {
			t.Errorf("loaded[%s] = %v, want %v", m.Tag, m.Loaded, wantLoaded)
		}
	}
}

func TestLiveKeyEndpoint(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		engine := testEngine(t, Config{LiveStreamKey: "dg_live_secret"})
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/live-key", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp["key"] != "dg_live_secret" {
			t.Errorf("key = %q", resp["key"])
		}
	})

	t.Run("unconfigured", func(t *testing.T) {
		engine := testEngine(t, Config{})
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/live-key", nil))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

func TestMaintenanceMode(t *testing.T) {
	engine := testEngine(t, Config{MaintenanceMode: true})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, compareRequest(t, []string{"tiny"}))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("compare status = %d, want 503", rec.Code)
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("index status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["message"] == "" {
		t.Error("expected a maintenance message at /")
	}
}
