package hh

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRates_Success(t *testing.T) {
	payload := `{
		"currency": [
			{"code": "RUR", "abbr": "руб.", "rate": 1.0},
			{"code": "USD", "abbr": "USD", "rate": 0.0125},
			{"code": "EUR", "abbr": "EUR", "rate": 0.0115}
		],
		"experience": [{"id": "noExperience"}]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dictionaries" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 100, srv.Client(), nil)
	rates, err := client.Rates(context.Background())
	if err != nil {
		t.Fatalf("Rates: %v", err)
	}

	if len(rates) != 3 {
		t.Fatalf("expected 3 rates, got %d", len(rates))
	}
	if rates["RUR"] != 1.0 {
		t.Errorf("RUR rate = %v, want 1.0", rates["RUR"])
	}
	if rates["USD"] != 0.0125 {
		t.Errorf("USD rate = %v, want 0.0125", rates["USD"])
	}
}

func TestRates_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 100, srv.Client(), nil)
	if _, err := client.Rates(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestRates_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 100, srv.Client(), nil)
	if _, err := client.Rates(context.Background()); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
