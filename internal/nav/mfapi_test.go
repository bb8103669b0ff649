package nav

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// newMockServer serves mfapi-style responses. history maps fund code to
// records; latest maps fund code to its latest record.
func newMockServer(t *testing.T, history map[string][]mfapiRecord, latest map[string]mfapiRecord) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		path := strings.TrimPrefix(r.URL.Path, "/")
		w.Header().Set("Content-Type", "application/json")

		var resp mfapiResponse
		if code, ok := strings.CutSuffix(path, "/latest"); ok {
			rec, found := latest[code]
			if found {
				resp.Data = []mfapiRecord{rec}
			}
		} else {
			recs, found := history[path]
			if !found {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"status":"ERROR"}`))
				return
			}
			resp.Meta.SchemeName = "Test Scheme " + path
			resp.Meta.FundHouse = "Test AMC"
			resp.Data = recs
		}
		resp.Status = "SUCCESS"
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestHTTPProvider_FetchHistory(t *testing.T) {
	server := newMockServer(t, map[string][]mfapiRecord{
		"119551": {
			{Date: "15-03-2023", NAV: "11.00000"},
			{Date: "15-01-2023", NAV: "10.00000"},
			{Date: "not-a-date", NAV: "9.5"},
			{Date: "16-01-2023", NAV: "0.00000"},
			{Date: "15-02-2023", NAV: "10.50000"},
		},
	}, nil)
	defer server.Close()

	p := NewHTTPProvider(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	series, err := p.FetchHistory(context.Background(), "119551")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.SchemeName != "Test Scheme 119551" {
		t.Errorf("expected scheme name from meta, got %q", series.SchemeName)
	}
	if series.FundHouse != "Test AMC" {
		t.Errorf("expected fund house from meta, got %q", series.FundHouse)
	}
	if len(series.Quotes) != 3 {
		t.Fatalf("expected 3 valid quotes, got %d", len(series.Quotes))
	}

	want := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	if !series.Quotes[0].Date.Equal(want) {
		t.Errorf("expected first date %v, got %v", want, series.Quotes[0].Date)
	}
	if !series.Quotes[0].NAV.Equal(decimal.NewFromInt(11)) {
		t.Errorf("expected NAV 11, got %s", series.Quotes[0].NAV)
	}
}

func TestHTTPProvider_FetchHistory_NotFound(t *testing.T) {
	server := newMockServer(t, nil, nil)
	defer server.Close()

	p := NewHTTPProvider(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	_, err := p.FetchHistory(context.Background(), "000000")
	if err == nil {
		t.Fatal("expected error for unknown fund")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", apiErr.StatusCode)
	}
}

func TestHTTPProvider_FetchLatest(t *testing.T) {
	server := newMockServer(t, nil, map[string]mfapiRecord{
		"119551": {Date: "20-03-2023", NAV: "11.25"},
		"empty":  {NAV: ""},
	})
	defer server.Close()

	p := NewHTTPProvider(WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	t.Run("returns quote", func(t *testing.T) {
		q, err := p.FetchLatest(context.Background(), "119551")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q == nil {
			t.Fatal("expected quote, got nil")
		}
		if !q.NAV.Equal(decimal.RequireFromString("11.25")) {
			t.Errorf("expected NAV 11.25, got %s", q.NAV)
		}
	})

	t.Run("no usable record", func(t *testing.T) {
		q, err := p.FetchLatest(context.Background(), "empty")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q != nil {
			t.Errorf("expected nil quote, got %+v", q)
		}
	})
}

func TestHTTPProvider_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	p := NewHTTPProvider(
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithTimeout(50*time.Millisecond),
	)

	start := time.Now()
	_, err := p.FetchHistory(context.Background(), "119551")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("expected call to be bounded by timeout, took %v", elapsed)
	}
}
