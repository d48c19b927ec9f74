package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

var testPayload = Request{
	JobDescription:      "Senior Developer",
	InterviewTranscript: "Tell me about your experience",
	Seniority:           SenioritySenior,
	EvaluateInterviewer: true,
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(zap.NewNop(), srv.URL)
}

func TestEvaluateInterviewSendsPayload(t *testing.T) {
	var got Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != EvaluateFullPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != contentType {
			t.Errorf("unexpected content type %q", ct)
		}
		if r.Header.Get(requestIDHeader) == "" {
			t.Errorf("expected %s header", requestIDHeader)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte(`{"status":"success","candidateEvaluation":{"overallScore":75},"evaluatedAt":"2026-01-02T03:04:05Z"}`))
	})

	result, err := client.EvaluateInterview(context.Background(), testPayload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != testPayload {
		t.Fatalf("server got %+v, want %+v", got, testPayload)
	}

	if result.Candidate == nil || result.Candidate.OverallScore != 75 {
		t.Fatalf("unexpected candidate: %+v", result.Candidate)
	}
	if result.Status != StatusSuccess {
		t.Fatalf("unexpected status %q", result.Status)
	}
}

func TestEvaluateInterviewServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "message from body",
			status:  http.StatusUnauthorized,
			body:    `{"message":"Missing or invalid token"}`,
			message: "API Error (401): Missing or invalid token",
		},
		{
			name:    "status text fallback",
			status:  http.StatusForbidden,
			body:    `not json`,
			message: "API Error (403): Forbidden",
		},
		{
			name:    "empty message field",
			status:  http.StatusTooManyRequests,
			body:    `{"message":"  "}`,
			message: "API Error (429): Too Many Requests",
		},
		{
			name:    "unknown status",
			status:  599,
			body:    ``,
			message: "API Error (599): Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.EvaluateInterview(context.Background(), testPayload)
			if err == nil {
				t.Fatal("expected error")
			}

			if err.Error() != tt.message {
				t.Fatalf("expected %q, got %q", tt.message, err.Error())
			}

			if StatusCode(err) != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, StatusCode(err))
			}

			if IsNoResponse(err) {
				t.Fatal("server error must not be classified as no response")
			}
		})
	}
}

func TestEvaluateInterviewNoResponse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	client := New(zap.NewNop(), "http://"+addr)
	_, err = client.EvaluateInterview(context.Background(), testPayload)
	if err == nil {
		t.Fatal("expected error")
	}

	if !IsNoResponse(err) {
		t.Fatalf("expected no response error, got %v", err)
	}

	if !strings.Contains(err.Error(), "No response from server") {
		t.Fatalf("unexpected message %q", err.Error())
	}

	if !strings.Contains(err.Error(), "http://"+addr) {
		t.Fatalf("expected base url in message, got %q", err.Error())
	}
}

func TestEvaluateInterviewTimeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
	})
	defer close(release)
	client.HTTPClient.Timeout = 50 * time.Millisecond

	_, err := client.EvaluateInterview(context.Background(), testPayload)
	if !IsNoResponse(err) {
		t.Fatalf("expected no response error on timeout, got %v", err)
	}
}

func TestEvaluateInterviewRequestSetupError(t *testing.T) {
	client := New(zap.NewNop(), "http://bad host")

	_, err := client.EvaluateInterview(context.Background(), testPayload)
	if err == nil {
		t.Fatal("expected error")
	}

	if IsNoResponse(err) || StatusCode(err) != 0 {
		t.Fatalf("request construction errors must be propagated as is, got %v", err)
	}
}

func TestEvaluateInterviewMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[1,2,3]`))
	})

	_, err := client.EvaluateInterview(context.Background(), testPayload)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected malformed response error, got %v", err)
	}
}

func TestCheckHealth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != HealthPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("health check must be unauthenticated")
		}
		w.Write([]byte(`{"status":"UP"}`))
	})

	health, err := client.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if health["status"] != "UP" {
		t.Fatalf("unexpected health: %+v", health)
	}
}

func TestCheckHealthPropagatesFailures(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.CheckHealth(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected raw status in error, got %q", err.Error())
	}

	if IsNoResponse(err) || StatusCode(err) != 0 {
		t.Fatalf("health errors must not be rewritten, got %T", err)
	}
}

func TestNewDefaults(t *testing.T) {
	client := New(nil, " http://example.test/ ")
	if client.BaseURL != "http://example.test" {
		t.Fatalf("unexpected base url %q", client.BaseURL)
	}
	if client.HTTPClient.Timeout != DefaultTimeout {
		t.Fatalf("unexpected timeout %v", client.HTTPClient.Timeout)
	}

	if New(nil, "").BaseURL != DefaultBaseURL {
		t.Fatal("expected default base url")
	}
}
