package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/supplycheck/internal/model"
)

// newMasterServer serves cards.json and cardSupplies.json from memory
func newMasterServer(t *testing.T, cards, supplies string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var requests atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/master/cards.json", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, cards)
	})
	mux.HandleFunc("/master/cardSupplies.json", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, supplies)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &requests
}

func newTestPipeline(t *testing.T, baseURL string) *Pipeline {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Sources.CardsURL = baseURL + "/master/cards.json"
	cfg.Sources.SuppliesURL = baseURL + "/master/cardSupplies.json"
	cfg.RateLimiting.RequestsPerSecond = 0
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	return p
}

func TestPipeline_Run_Mapped(t *testing.T) {
	server, requests := newMasterServer(t,
		`[{"id":"c1","cardSupplyId":1},{"id":"c2","cardSupplyId":2}]`,
		`[{"id":1,"cardSupplyType":"limited"}]`)

	var out bytes.Buffer
	report, err := newTestPipeline(t, server.URL).Run(context.Background(), &out)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Mapped != 1 || report.Fallback != 1 {
		t.Errorf("expected mapped=1 fallback=1, got mapped=%d fallback=%d", report.Mapped, report.Fallback)
	}
	want := []model.SampleEntry{{ID: model.StringID("c1"), SupplyType: "limited"}}
	if diff := cmp.Diff(want, report.Sample, idComparer); diff != "" {
		t.Errorf("sample mismatch (-want +got):\n%s", diff)
	}
	if !report.Verified() {
		t.Error("expected verification success")
	}
	if report.Supplies != 1 || report.Cards != 2 {
		t.Errorf("unexpected totals: cards=%d supplies=%d", report.Cards, report.Supplies)
	}
	if got := requests.Load(); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
	if len(report.Fetches) != 2 {
		t.Fatalf("expected fetch metadata for both datasets, got %d", len(report.Fetches))
	}
	if !strings.HasSuffix(report.Fetches[0].URL, "/master/cards.json") ||
		!strings.HasSuffix(report.Fetches[1].URL, "/master/cardSupplies.json") {
		t.Errorf("unexpected fetch order: %+v", report.Fetches)
	}
	if report.Fetches[0].StatusCode != http.StatusOK || report.Fetches[0].Bytes == 0 {
		t.Errorf("unexpected cards metadata: %+v", report.Fetches[0])
	}

	wantOut := "Fetching data...\nLoaded 2 cards and 1 supplies.\nSupply Map created.\n"
	if out.String() != wantOut {
		t.Errorf("unexpected progress output:\n%q\nwant:\n%q", out.String(), wantOut)
	}
}

func TestPipeline_Run_NoSupplies(t *testing.T) {
	server, _ := newMasterServer(t, `[{"id":"c1","cardSupplyId":1}]`, `[]`)

	report, err := newTestPipeline(t, server.URL).Run(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Mapped != 0 || report.Fallback != 1 {
		t.Errorf("expected mapped=0 fallback=1, got mapped=%d fallback=%d", report.Mapped, report.Fallback)
	}
	if len(report.Sample) != 0 {
		t.Errorf("expected empty sample, got %v", report.Sample)
	}
	if report.Verified() {
		t.Error("expected verification failure")
	}
}

func TestPipeline_Run_MissingSupplyID(t *testing.T) {
	server, _ := newMasterServer(t,
		`[{"id":"c1"},{"id":"c2","cardSupplyId":1}]`,
		`[{"id":1,"cardSupplyType":"birthday"},{"cardSupplyType":"term_limited"}]`)

	report, err := newTestPipeline(t, server.URL).Run(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Mapped != 1 || report.Fallback != 1 {
		t.Errorf("expected mapped=1 fallback=1, got mapped=%d fallback=%d", report.Mapped, report.Fallback)
	}
	if report.ByType[model.FallbackSupplyType] != 1 {
		t.Errorf("expected card without supply id to be normal")
	}
	if report.Skipped != 1 {
		t.Errorf("expected 1 skipped supply, got %d", report.Skipped)
	}
}

func TestPipeline_Run_FetchFailure(t *testing.T) {
	tests := []struct {
		name       string
		failPath   string
		wantPrefix string
		wantCalls  int32
	}{
		{"cards", "/master/cards.json", "fetch cards:", 1},
		{"supplies", "/master/cardSupplies.json", "fetch supplies:", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests.Add(1)
				if r.URL.Path == tt.failPath {
					w.WriteHeader(http.StatusBadGateway)
					return
				}
				_, _ = fmt.Fprint(w, `[]`)
			}))
			defer server.Close()

			var out bytes.Buffer
			report, err := newTestPipeline(t, server.URL).Run(context.Background(), &out)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if report != nil {
				t.Error("expected no partial report")
			}
			if !strings.HasPrefix(err.Error(), tt.wantPrefix) {
				t.Errorf("unexpected error: %v", err)
			}
			var statusErr *HTTPStatusError
			if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadGateway {
				t.Errorf("expected wrapped 502 status error, got %v", err)
			}
			if got := requests.Load(); got != tt.wantCalls {
				t.Errorf("expected %d requests, got %d", tt.wantCalls, got)
			}
			if strings.Contains(out.String(), "Loaded") {
				t.Errorf("counts printed on failure: %q", out.String())
			}
		})
	}
}

func TestPipeline_Run_MalformedDataset(t *testing.T) {
	tests := []struct {
		name       string
		cards      string
		supplies   string
		wantPrefix string
		wantMsg    string
	}{
		{"null cards body", `null`, `[]`, "fetch cards:", "expected an array"},
		{"null supplies body", `[]`, `null`, "fetch supplies:", "expected an array"},
		{"null card record", `[{"id":"c1","cardSupplyId":1},null]`, `[]`, "fetch cards:", "card record is null"},
		{"null supply record", `[]`, `[null]`, "fetch supplies:", "supply record is null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newMasterServer(t, tt.cards, tt.supplies)

			var out bytes.Buffer
			report, err := newTestPipeline(t, server.URL).Run(context.Background(), &out)
			if err == nil {
				t.Fatalf("expected error, got report %+v", report)
			}
			if report != nil {
				t.Error("expected no partial report")
			}
			if !strings.HasPrefix(err.Error(), tt.wantPrefix) || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("unexpected error: %v", err)
			}
			if !strings.Contains(err.Error(), "decode json:") {
				t.Errorf("expected a decode failure, got %v", err)
			}
			if strings.Contains(out.String(), "Loaded") {
				t.Errorf("counts printed on failure: %q", out.String())
			}
		})
	}
}

func TestPipeline_Run_Cancelled(t *testing.T) {
	server, _ := newMasterServer(t, `[]`, `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestPipeline(t, server.URL).Run(ctx, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
