package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"leadscout/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleLead(title string) *model.Lead {
	return &model.Lead{
		Title:       title,
		Source:      "StepStone",
		SourceURL:   "https://www.stepstone.de/job/" + title,
		Keywords:    "AI,LLM",
		Preview:     "We build AI things.",
		Location:    "Berlin",
		CompanyName: "Acme GmbH",
		Status:      model.StatusNew,
	}
}

func TestCreateThenGet(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(sampleLead("ai-engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected a non-zero ID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "ai-engineer" || got.CompanyName != "Acme GmbH" {
		t.Errorf("Get returned %+v", got)
	}
	if got.Status != model.StatusNew {
		t.Errorf("Status = %q, want new", got.Status)
	}
}

func TestGetUnknownReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(999)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateRefreshesTimestamp(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(sampleLead("ai-engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Deterministic clock so updated_at visibly advances.
	base := created.UpdatedAt
	s.now = func() time.Time { return base.Add(time.Hour) }

	created.Status = model.StatusActivated
	created.CompanyWebsite = "https://acme.example"
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != model.StatusActivated {
		t.Errorf("Status = %q, want activated", got.Status)
	}
	if got.CompanyWebsite != "https://acme.example" {
		t.Errorf("CompanyWebsite = %q", got.CompanyWebsite)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("UpdatedAt %v not after CreatedAt %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestUpdateUnknownReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	lead := sampleLead("ghost")
	lead.ID = 42
	if err := s.Update(lead); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(sampleLead("ai-engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(created.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(created.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		tick := base.Add(time.Duration(i) * time.Minute)
		s.now = func() time.Time { return tick }
		if _, err := s.Create(sampleLead(title)); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}

	leads, err := s.List(model.ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(leads) != 3 {
		t.Fatalf("List returned %d leads, want 3", len(leads))
	}
	if leads[0].Title != "third" || leads[2].Title != "first" {
		t.Errorf("order = %q, %q, %q; want newest first", leads[0].Title, leads[1].Title, leads[2].Title)
	}
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)

	a := sampleLead("ai-engineer")
	a.Status = model.StatusActivated
	a.Keywords = "AI,LLM"
	b := sampleLead("data-engineer")
	b.Keywords = "Data Engineer"
	for _, l := range []*model.Lead{a, b} {
		if _, err := s.Create(l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	byStatus, err := s.List(model.ListFilter{Status: model.StatusActivated})
	if err != nil {
		t.Fatalf("List by status: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].Title != "ai-engineer" {
		t.Errorf("status filter returned %+v", byStatus)
	}

	byKeyword, err := s.List(model.ListFilter{Keyword: "LLM"})
	if err != nil {
		t.Fatalf("List by keyword: %v", err)
	}
	if len(byKeyword) != 1 || byKeyword[0].Title != "ai-engineer" {
		t.Errorf("keyword filter returned %+v", byKeyword)
	}

	none, err := s.List(model.ListFilter{Status: model.StatusReplied})
	if err != nil {
		t.Fatalf("List with no matches: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no leads, got %d", len(none))
	}
}

func TestFindBySourceURL(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(sampleLead("ai-engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindBySourceURL(created.SourceURL)
	if err != nil {
		t.Fatalf("FindBySourceURL: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Errorf("FindBySourceURL = %+v, want lead %d", found, created.ID)
	}

	missing, err := s.FindBySourceURL("https://nowhere.example")
	if err != nil {
		t.Fatalf("FindBySourceURL unknown: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown URL, got %+v", missing)
	}
}

func TestFindByTitle(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(sampleLead("ai-engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindByTitle("ai-engineer")
	if err != nil {
		t.Fatalf("FindByTitle: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Errorf("FindByTitle = %+v, want lead %d", found, created.ID)
	}

	missing, err := s.FindByTitle("ghost")
	if err != nil {
		t.Fatalf("FindByTitle unknown: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown title, got %+v", missing)
	}
}

func TestCountByStatus(t *testing.T) {
	s := newTestStore(t)

	statuses := []model.Status{model.StatusNew, model.StatusNew, model.StatusActivated}
	for i, status := range statuses {
		l := sampleLead(string(rune('a' + i)))
		l.SourceURL = l.SourceURL + string(rune('a'+i))
		l.Status = status
		if _, err := s.Create(l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	counts, err := s.CountByStatus()
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[model.StatusNew] != 2 || counts[model.StatusActivated] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if _, ok := counts[model.StatusReplied]; ok {
		t.Errorf("empty status present in counts: %v", counts)
	}
}
