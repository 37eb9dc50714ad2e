package webhook

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Mavwarf/mkicon/internal/httputil"
)

func TestSendSuccess(t *testing.T) {
	var gotBody, gotContentType, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := Send(srv.URL, []byte(`{"files":5}`), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != "POST" {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotBody != `{"files":5}` {
		t.Errorf("body = %q", gotBody)
	}
	if gotContentType != "application/json" {
		t.Errorf("content-type = %q, want application/json", gotContentType)
	}
}

func TestSendUserAgent(t *testing.T) {
	old := httputil.UserAgent
	httputil.UserAgent = "mkicon/0.9.0"
	t.Cleanup(func() { httputil.UserAgent = old })

	var gotUA []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = append(gotUA, r.Header.Get("User-Agent"))
	}))
	defer srv.Close()

	if err := Send(srv.URL, []byte(`{}`), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Send(srv.URL, []byte(`{}`), map[string]string{"User-Agent": "custom"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotUA) != 2 || gotUA[0] != "mkicon/0.9.0" || gotUA[1] != "custom" {
		t.Errorf("User-Agent = %q, want [mkicon/0.9.0 custom]", gotUA)
	}
}

func TestSendExpandsHeaders(t *testing.T) {
	t.Setenv("MKICON_TEST_TOKEN", "secret123")

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	headers := map[string]string{"Authorization": "Bearer $MKICON_TEST_TOKEN"}
	if err := Send(srv.URL, []byte(`{}`), headers); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer secret123")
	}
}

func TestSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		io.WriteString(w, "internal server error")
	}))
	defer srv.Close()

	err := Send(srv.URL, []byte(`{}`), nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "internal server error") {
		t.Errorf("error should contain status and body snippet: %v", err)
	}
}

func TestSendBadURL(t *testing.T) {
	if err := Send("://nope", []byte(`{}`), nil); err == nil {
		t.Fatal("expected error for malformed URL")
	}
}
