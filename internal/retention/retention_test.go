package retention

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/soraiaclinic/clinic-platform/internal/clients"
	"github.com/soraiaclinic/clinic-platform/internal/messages"
)

func seedClient(t *testing.T, repo *clients.InMemoryRepository, name string, status clients.Status, lastSession string) *clients.Client {
	t.Helper()
	c, err := repo.Create(context.Background(), &clients.CreateClientRequest{
		Name:            name,
		Email:           strings.ToLower(name) + "@example.com",
		Status:          status,
		TreatmentStage:  clients.StageInTreatment,
		LastSessionDate: lastSession,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return c
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func TestCandidates(t *testing.T) {
	repo := clients.NewInMemoryRepository()
	seedClient(t, repo, "Ana", clients.StatusActive, "2026-03-01")    // recent, active
	seedClient(t, repo, "Bruna", clients.StatusInactive, "2026-03-01") // inactive wins regardless of date
	seedClient(t, repo, "Clara", clients.StatusActive, "2025-12-01")  // stale session
	seedClient(t, repo, "Dora", clients.StatusActive, "")             // never attended, still active

	svc := NewService(repo, messages.NewGenerator(nil, nil, nil, nil), 60, nil).WithClock(fixedNow)

	list, err := svc.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("candidates = %d, want 2", len(list))
	}

	byName := map[string]*Candidate{}
	for _, c := range list {
		byName[c.Client.Name] = c
	}
	if c, ok := byName["Bruna"]; !ok || c.Reason != "inactive" {
		t.Errorf("Bruna candidate = %+v", c)
	}
	if c, ok := byName["Clara"]; !ok || c.Reason != "no_recent_session" {
		t.Errorf("Clara candidate = %+v", c)
	} else if c.DaysSince <= 60 {
		t.Errorf("Clara days since = %d, want > 60", c.DaysSince)
	}
}

func TestCandidatesBoundary(t *testing.T) {
	repo := clients.NewInMemoryRepository()
	// Exactly 60 days before the fixed clock: not yet a candidate.
	seedClient(t, repo, "Eva", clients.StatusActive, "2026-01-09")

	svc := NewService(repo, messages.NewGenerator(nil, nil, nil, nil), 60, nil).WithClock(fixedNow)

	list, err := svc.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("candidates = %d, want 0", len(list))
	}
}

func TestDraftMessageFallsBack(t *testing.T) {
	repo := clients.NewInMemoryRepository()
	c := seedClient(t, repo, "Maria", clients.StatusInactive, "2025-12-01")

	svc := NewService(repo, messages.NewGenerator(nil, nil, nil, nil), 60, nil).WithClock(fixedNow)

	text, fallback, err := svc.DraftMessage(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("DraftMessage: %v", err)
	}
	if !fallback {
		t.Fatal("nil llm should fall back")
	}
	if !strings.Contains(text, "Maria") {
		t.Fatalf("text missing client name: %q", text)
	}
}

func TestHandlerEndpoints(t *testing.T) {
	repo := clients.NewInMemoryRepository()
	c := seedClient(t, repo, "Maria", clients.StatusInactive, "2025-12-01")

	svc := NewService(repo, messages.NewGenerator(nil, nil, nil, nil), 60, nil).WithClock(fixedNow)
	srv := httptest.NewServer(NewHandler(svc, nil).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/candidates")
	if err != nil {
		t.Fatalf("GET candidates: %v", err)
	}
	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if body.Count != 1 {
		t.Fatalf("count = %d, want 1", body.Count)
	}

	resp, err = http.Post(srv.URL+"/"+c.ID+"/message", "application/json", nil)
	if err != nil {
		t.Fatalf("POST message: %v", err)
	}
	var msg struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if msg.Text == "" {
		t.Fatal("empty message text")
	}

	resp, err = http.Post(srv.URL+"/unknown/message", "application/json", nil)
	if err != nil {
		t.Fatalf("POST unknown: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestWorkerSweepsUntilCancelled(t *testing.T) {
	repo := clients.NewInMemoryRepository()
	seedClient(t, repo, "Maria", clients.StatusInactive, "")

	svc := NewService(repo, messages.NewGenerator(nil, nil, nil, nil), 60, nil).WithClock(fixedNow)
	worker := NewWorker(svc, 10*time.Millisecond, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}
