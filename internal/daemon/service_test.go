package daemon

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/planfile"
	"github.com/theirongolddev/horizon/internal/store"
)

type stubSource struct {
	version string
	plan    model.Plan
	err     error
	loads   int
}

func (s *stubSource) Version() (string, error) { return s.version, s.err }
func (s *stubSource) Load() (model.Plan, error) {
	s.loads++
	return s.plan, s.err
}
func (s *stubSource) Describe() string { return "stub" }

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{FinalNetWorth: 1000, NetIncome: 500, Expenses: 200}
	curr := Snapshot{FinalNetWorth: 1250.5, NetIncome: 500, Expenses: 150}

	delta := diffSnapshots(prev, curr)
	if math.Abs(delta.FinalNetWorth-250.5) > 1e-9 {
		t.Fatalf("FinalNetWorth delta = %f, want 250.5", delta.FinalNetWorth)
	}
	if delta.NetIncome != 0 {
		t.Fatalf("NetIncome delta = %f, want 0", delta.NetIncome)
	}
	if delta.Expenses != -50 {
		t.Fatalf("Expenses delta = %f, want -50", delta.Expenses)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots should have a zero delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Source:       &stubSource{},
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollOnce_SkipsUnchangedVersion(t *testing.T) {
	src := &stubSource{version: "1", plan: model.SamplePlan()}
	s := New(Config{Source: src})

	s.pollOnce()
	s.pollOnce()
	if src.loads != 1 {
		t.Fatalf("loads = %d, want 1", src.loads)
	}

	src.version = "2"
	src.plan.Elements.IncomeStreams[0].GrossAmount = 90000
	s.pollOnce()
	if src.loads != 2 {
		t.Fatalf("loads = %d, want 2", src.loads)
	}

	st := s.snapshotStatus()
	if st.PollCount != 3 {
		t.Errorf("poll count = %d, want 3", st.PollCount)
	}
	if st.EventCount != 2 {
		t.Fatalf("event count = %d, want 2", st.EventCount)
	}
	if s.events[0].Type != "snapshot" || s.events[1].Type != "projection_delta" {
		t.Errorf("event types = %s, %s", s.events[0].Type, s.events[1].Type)
	}
	if s.events[1].Delta.NetIncome <= 0 {
		t.Errorf("raising income should raise net income, delta = %+v", s.events[1].Delta)
	}
}

func TestPollOnce_NoEventWhenTotalsUnchanged(t *testing.T) {
	src := &stubSource{version: "1", plan: model.SamplePlan()}
	s := New(Config{Source: src})
	s.pollOnce()

	src.version = "2"
	src.plan.Elements.Debts[0].Description = "renamed"
	s.pollOnce()

	if got := s.snapshotStatus().EventCount; got != 1 {
		t.Errorf("event count = %d, want 1", got)
	}
}

func TestPollOnce_RecordsError(t *testing.T) {
	src := &stubSource{err: errors.New("disk gone")}
	s := New(Config{Source: src})
	s.pollOnce()

	st := s.snapshotStatus()
	if st.LastError != "disk gone" {
		t.Errorf("last error = %q", st.LastError)
	}
	if st.Summary != (Snapshot{}) {
		t.Errorf("summary should be empty after failure: %+v", st.Summary)
	}
}

func TestHTTPEndpoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.toml")
	if err := planfile.WriteFile(path, model.SamplePlan()); err != nil {
		t.Fatal(err)
	}

	s := New(Config{Source: FileSource{Path: path}})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/projection")
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("projection before poll = %d, want 503", resp.StatusCode)
	}

	s.pollOnce()

	var years []model.YearlySnapshot
	getJSON(t, srv.URL+"/v1/projection", http.StatusOK, &years)
	if len(years) != 36 {
		t.Fatalf("years = %d, want 36", len(years))
	}

	var one model.YearlySnapshot
	getJSON(t, srv.URL+"/v1/projection/2026", http.StatusOK, &one)
	if one.Year != 2026 || math.Abs(one.Income.Gross-82400) > 1e-6 {
		t.Errorf("2026 snapshot = year %d gross %f", one.Year, one.Income.Gross)
	}

	getJSON(t, srv.URL+"/v1/projection/1999", http.StatusNotFound, nil)
	getJSON(t, srv.URL+"/v1/projection/abc", http.StatusNotFound, nil)

	var st Status
	getJSON(t, srv.URL+"/v1/status", http.StatusOK, &st)
	if st.Summary.Plan != "sample" || st.Source != path {
		t.Errorf("status = %+v", st)
	}

	var events []Event
	getJSON(t, srv.URL+"/v1/events", http.StatusOK, &events)
	if len(events) != 1 || events[0].Snapshot.FinalNetWorth != st.Summary.FinalNetWorth {
		t.Errorf("events = %+v", events)
	}

	resp, err = http.Post(srv.URL+"/v1/status", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /v1/status = %d, want 405", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz = %d", resp.StatusCode)
	}
}

func TestStoreSource(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "plans.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = st.Close() }()

	if err := st.SavePlan(model.SamplePlan()); err != nil {
		t.Fatal(err)
	}
	src := StoreSource{Store: st, Name: "sample"}

	v1, err := src.Version()
	if err != nil {
		t.Fatal(err)
	}
	if err := st.PutElement("sample", model.OneTimeIncome{ID: "gift", Year: 2030, Amount: 1000}); err != nil {
		t.Fatal(err)
	}
	v2, _ := src.Version()
	if v1 == v2 {
		t.Errorf("version did not change after edit: %s", v1)
	}

	plan, err := src.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Elements.OneTimeIncomes) != 2 {
		t.Errorf("one-time incomes = %d, want 2", len(plan.Elements.OneTimeIncomes))
	}
	if src.Describe() != "store:sample" {
		t.Errorf("describe = %q", src.Describe())
	}
}

func TestWriteSSE(t *testing.T) {
	var buf bytes.Buffer
	writeSSE(&buf, Event{ID: 7, Type: "projection_delta"})

	out := buf.String()
	if !strings.HasPrefix(out, "event: projection_delta\ndata: {") {
		t.Errorf("unexpected frame: %q", out)
	}
	if !strings.HasSuffix(out, "}\n\n") {
		t.Errorf("frame not terminated: %q", out)
	}
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx // test helper
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}
