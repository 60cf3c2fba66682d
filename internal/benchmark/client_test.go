package benchmark

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const sampleCSV = `industry,system,measure_type,system_share,carbon_reduction_median,energy_potential_median
electronics,HVAC,chiller upgrade,40%,"1,250",3.5
electronics,lighting,led retrofit,10%,30,0.8
textiles,steam,boiler tune-up,55%,900,2.1
`

func TestFetchRecords(t *testing.T) {
	var gotAuth, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	client := New(context.Background(), zap.NewNop(), srv.URL, "sekret")

	records, err := client.FetchRecords()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if records.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", records.Len())
	}
	if records.Items[0].CarbonReductionMedian != 1250 {
		t.Fatalf("expected quoted thousands to parse, got %v", records.Items[0].CarbonReductionMedian)
	}
	if gotAuth != "Bearer sekret" {
		t.Fatalf("expected bearer token header, got %q", gotAuth)
	}
	if !strings.Contains(gotAgent, "carbon-adviser") {
		t.Fatalf("unexpected user agent: %q", gotAgent)
	}
}

func TestFetchRecordsNoTokenOmitsAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("did not expect authorization header")
		}
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	client := New(context.Background(), zap.NewNop(), srv.URL, "")

	if _, err := client.FetchRecords(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchRecordsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := New(context.Background(), zap.NewNop(), srv.URL, "")

	if _, err := client.FetchRecords(); err == nil {
		t.Fatalf("expected error for bad status")
	}
}

func TestReadRowsShortRowsPadded(t *testing.T) {
	csv := "industry,system,measure_type\nelectronics,HVAC\n"

	rows, err := readRows(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["measure_type"] != "" {
		t.Fatalf("expected missing cell to be empty, got %q", rows[0]["measure_type"])
	}
}

func TestReadRowsEmptyBody(t *testing.T) {
	rows, err := readRows(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
