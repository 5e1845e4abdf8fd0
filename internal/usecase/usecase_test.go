package usecase

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/domain"
	"resume-builder/internal/metrics"
	"resume-builder/internal/model"
	"resume-builder/pkg/infrastructure"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newService(t *testing.T) (*ResumeService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewResumeService(store, metrics.NewNoop()), store
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", ResumePatch{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, created.ID, "alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Template != "modern" {
		t.Fatalf("template = %q, want modern", got.Template)
	}
	if got.IsPublic {
		t.Fatal("isPublic should default to false")
	}
	if got.PersonalInfo == nil {
		t.Fatal("personalInfo should be an empty record")
	}
	if got.Title != "" || got.Summary != "" {
		t.Fatalf("title/summary should be empty, got %q/%q", got.Title, got.Summary)
	}
	if got.Experiences == nil || got.Education == nil || got.Skills == nil || got.Projects == nil {
		t.Fatalf("lists should be empty, not nil: %+v", got.Content)
	}
	if got.OwnerID != "alice" {
		t.Fatalf("owner = %q", got.OwnerID)
	}
}

func TestCreateIgnoresClientID(t *testing.T) {
	svc, _ := newService(t)
	fixed := uuid.New()
	r, err := svc.Create(context.Background(), "alice", ResumePatch{ID: fixed.String()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.ID == fixed {
		t.Fatal("Create must assign its own id")
	}
}

func TestUpdatePhoneOnlyPatch(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	r, _ := svc.Create(ctx, "alice", ResumePatch{
		Title: strPtr("Main"),
		PersonalInfo: &PersonalInfoPatch{
			FullName: strPtr("Ada Lovelace"),
			Email:    strPtr("ada@example.com"),
			Phone:    strPtr("+44 1"),
			Location: strPtr("London"),
		},
		Skills: &[]model.Skill{{Name: "Mathematics"}},
	})

	created := r.CreatedAt
	svc.now = fixedClock(created.Add(time.Minute))

	updated, err := svc.Update(ctx, r.ID, "alice", ResumePatch{
		PersonalInfo: &PersonalInfoPatch{Phone: strPtr("+44 2")},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	pi := updated.PersonalInfo
	if pi.Phone != "+44 2" {
		t.Fatalf("phone = %q", pi.Phone)
	}
	if pi.FullName != "Ada Lovelace" || pi.Email != "ada@example.com" || pi.Location != "London" {
		t.Fatalf("other personal info fields changed: %+v", pi)
	}
	if updated.Title != "Main" || len(updated.Skills) != 1 {
		t.Fatalf("unrelated fields changed: title=%q skills=%v", updated.Title, updated.Skills)
	}
	if !updated.UpdatedAt.After(created) {
		t.Fatalf("updatedAt not refreshed: %v", updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Fatalf("createdAt changed: %v", updated.CreatedAt)
	}
}

func TestUpdateReplacesListsWholesale(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	r, _ := svc.Create(ctx, "alice", ResumePatch{
		Skills: &[]model.Skill{{Name: "Go"}, {Name: "SQL"}},
	})

	updated, err := svc.Update(ctx, r.ID, "alice", ResumePatch{
		Skills: &[]model.Skill{{Name: "Rust"}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.Skills) != 1 || updated.Skills[0].Name != "Rust" {
		t.Fatalf("skills = %+v", updated.Skills)
	}

	cleared, _ := svc.Update(ctx, r.ID, "alice", ResumePatch{Skills: &[]model.Skill{}})
	if cleared.Skills == nil || len(cleared.Skills) != 0 {
		t.Fatalf("skills = %#v, want empty list", cleared.Skills)
	}
}

func TestUpdateReplacesSummary(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	r, _ := svc.Create(ctx, "alice", ResumePatch{Summary: strPtr("First draft")})
	if r.Summary != "First draft" {
		t.Fatalf("summary = %q", r.Summary)
	}

	updated, err := svc.Update(ctx, r.ID, "alice", ResumePatch{Summary: strPtr("Second draft")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Summary != "Second draft" {
		t.Fatalf("summary = %q, want Second draft", updated.Summary)
	}
	if s := updated.ListSummary(); s.ID != r.ID {
		t.Fatalf("list summary id = %s, want %s", s.ID, r.ID)
	}

	kept, _ := svc.Update(ctx, r.ID, "alice", ResumePatch{Title: strPtr("Main")})
	if kept.Summary != "Second draft" {
		t.Fatalf("summary changed by unrelated patch: %q", kept.Summary)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	r, _ := svc.Create(ctx, "alice", ResumePatch{Title: strPtr("Private")})

	if _, err := svc.Get(ctx, r.ID, "bob"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get: got %v, want ErrNotFound", err)
	}
	if _, err := svc.Update(ctx, r.ID, "bob", ResumePatch{Title: strPtr("Hijacked")}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update: got %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, r.ID, "bob"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete: got %v, want ErrNotFound", err)
	}

	got, err := svc.Get(ctx, r.ID, "alice")
	if err != nil {
		t.Fatalf("owner Get: %v", err)
	}
	if got.Title != "Private" {
		t.Fatalf("title = %q, resume was modified by another owner", got.Title)
	}
}

func TestSaveCreatesOrUpdates(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Save(ctx, "alice", ResumePatch{Title: strPtr("First")})
	if err != nil {
		t.Fatalf("Save create: %v", err)
	}
	updated, err := svc.Save(ctx, "alice", ResumePatch{ID: created.ID.String(), Title: strPtr("Second")})
	if err != nil {
		t.Fatalf("Save update: %v", err)
	}
	if updated.ID != created.ID || updated.Title != "Second" {
		t.Fatalf("Save did not update in place: %+v", updated)
	}

	_, err = svc.Save(ctx, "alice", ResumePatch{ID: "not-a-uuid"})
	var verr *model.ValidationError
	if !errors.As(err, &verr) || verr.Fields["id"] == "" {
		t.Fatalf("Save with bad id: got %v", err)
	}

	if _, err := svc.Save(ctx, "alice", ResumePatch{ID: uuid.NewString()}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Save with unknown id: got %v", err)
	}
}

func TestTemplateNormalization(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	r, _ := svc.Create(ctx, "alice", ResumePatch{Template: strPtr("  Classic ")})
	if r.Template != "classic" {
		t.Fatalf("template = %q", r.Template)
	}
	r, _ = svc.Update(ctx, r.ID, "alice", ResumePatch{Template: strPtr("  ")})
	if r.Template != "classic" {
		t.Fatalf("blank template should keep the stored one, got %q", r.Template)
	}
}

func TestValidateFullUpdate(t *testing.T) {
	longSummary := strings.Repeat("a", MinSummaryLength)

	full := ResumePatch{
		PersonalInfo: &PersonalInfoPatch{
			FullName: strPtr("Ada"),
			Email:    strPtr("ada@example.com"),
			Phone:    strPtr("+44 1"),
			Location: strPtr("London"),
		},
		Summary: strPtr(longSummary),
	}
	if err := ValidateFullUpdate(full); err != nil {
		t.Fatalf("complete update rejected: %v", err)
	}

	err := ValidateFullUpdate(ResumePatch{
		PersonalInfo: &PersonalInfoPatch{FullName: strPtr("  "), Email: strPtr("ada@example.com")},
		Summary:      strPtr("too short"),
	})
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"personalInfo.fullName", "personalInfo.phone", "personalInfo.location", "summary"} {
		if verr.Fields[field] == "" {
			t.Errorf("missing message for %s in %v", field, verr.Fields)
		}
	}
	if _, ok := verr.Fields["personalInfo.email"]; ok {
		t.Errorf("email was present and should not be reported")
	}
}

func TestMergePersonalInfoFromNil(t *testing.T) {
	got := MergePersonalInfo(nil, PersonalInfoPatch{Email: strPtr(" a@b.co ")})
	if got == nil || got.Email != "a@b.co" || got.FullName != "" {
		t.Fatalf("merge = %+v", got)
	}
}

// fakeEngine hands out fakeSessions and records how often they are closed.
type fakeEngine struct {
	launchErr error
	printErr  error
	pdf       []byte
	delay     time.Duration

	launches atomic.Int32
	closes   atomic.Int32
}

func (f *fakeEngine) Launch(ctx context.Context) (infrastructure.PDFSession, error) {
	if f.launchErr != nil {
		return nil, f.launchErr
	}
	f.launches.Add(1)
	return &fakeSession{engine: f}, nil
}

type fakeSession struct {
	engine *fakeEngine
}

func (s *fakeSession) PrintToPDF(ctx context.Context, html string) ([]byte, error) {
	if s.engine.delay > 0 {
		select {
		case <-time.After(s.engine.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.engine.printErr != nil {
		return nil, s.engine.printErr
	}
	return s.engine.pdf, nil
}

func (s *fakeSession) Close() error {
	s.engine.closes.Add(1)
	return nil
}

type memoryArchive struct {
	keys []string
	err  error
}

func (a *memoryArchive) Put(ctx context.Context, key, contentType string, data []byte) error {
	if a.err != nil {
		return a.err
	}
	a.keys = append(a.keys, key)
	return nil
}

func seedResume(t *testing.T, store ResumeStore, owner, name string) *domain.Resume {
	t.Helper()
	svc := NewResumeService(store, nil)
	r, err := svc.Create(context.Background(), owner, ResumePatch{
		PersonalInfo: &PersonalInfoPatch{FullName: strPtr(name)},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return r
}

func TestExportSuccessReleasesSessionOnce(t *testing.T) {
	store := repository.NewMemoryStore()
	r := seedResume(t, store, "alice", "Ada  King Lovelace")
	engine := &fakeEngine{pdf: []byte("%PDF-1.7 fake")}
	archive := &memoryArchive{}
	rec := metrics.NewInMemory()

	ex := NewExporter(store, engine, WithArchive(archive), WithExportMetrics(rec))
	ex.now = fixedClock(time.Date(2024, 5, 17, 9, 0, 0, 0, time.UTC))

	res, err := ex.Export(context.Background(), r.ID, "alice", "en")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Filename != "Ada_King_Lovelace_2024-05-17.pdf" {
		t.Fatalf("filename = %q", res.Filename)
	}
	if string(res.PDF) != "%PDF-1.7 fake" {
		t.Fatalf("pdf = %q", res.PDF)
	}
	if got := engine.closes.Load(); got != 1 {
		t.Fatalf("session closed %d times, want 1", got)
	}
	if len(archive.keys) != 1 || !strings.HasSuffix(archive.keys[0], "/Ada_King_Lovelace_2024-05-17.pdf") {
		t.Fatalf("archive keys = %v", archive.keys)
	}
	if snap := rec.Snapshot(); snap.ExportsSucceeded != 1 || snap.ExportBytes != uint64(len(res.PDF)) {
		t.Fatalf("metrics = %+v", snap)
	}
}

func TestExportRenderTimeoutReleasesSessionOnce(t *testing.T) {
	store := repository.NewMemoryStore()
	r := seedResume(t, store, "alice", "Ada")
	engine := &fakeEngine{pdf: []byte("%PDF"), delay: time.Second}
	ex := NewExporter(store, engine)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := ex.Export(ctx, r.ID, "alice", "en")
	if !errors.Is(err, domain.ErrExportFailed) {
		t.Fatalf("got %v, want ErrExportFailed", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("cause not attached: %v", err)
	}
	if got := engine.closes.Load(); got != 1 {
		t.Fatalf("session closed %d times, want 1", got)
	}
}

func TestExportFailures(t *testing.T) {
	tests := []struct {
		name       string
		engine     *fakeEngine
		wantCloses int32
	}{
		{name: "launch failure", engine: &fakeEngine{launchErr: errors.New("no chrome")}, wantCloses: 0},
		{name: "print crash", engine: &fakeEngine{printErr: errors.New("target crashed")}, wantCloses: 1},
		{name: "not a pdf", engine: &fakeEngine{pdf: []byte("<html>")}, wantCloses: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repository.NewMemoryStore()
			r := seedResume(t, store, "alice", "Ada")
			archive := &memoryArchive{}
			ex := NewExporter(store, tt.engine, WithArchive(archive))

			_, err := ex.Export(context.Background(), r.ID, "alice", "en")
			if !errors.Is(err, domain.ErrExportFailed) {
				t.Fatalf("got %v, want ErrExportFailed", err)
			}
			if got := tt.engine.closes.Load(); got != tt.wantCloses {
				t.Fatalf("session closed %d times, want %d", got, tt.wantCloses)
			}
			if len(archive.keys) != 0 {
				t.Fatal("failed export must not be archived")
			}
		})
	}
}

func TestExportNotFoundAndRenderError(t *testing.T) {
	store := repository.NewMemoryStore()
	r := seedResume(t, store, "alice", "Ada")
	engine := &fakeEngine{pdf: []byte("%PDF")}
	ex := NewExporter(store, engine)

	if _, err := ex.Export(context.Background(), r.ID, "bob", "en"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("other owner: got %v, want ErrNotFound", err)
	}

	broken := domain.NewResume("alice", time.Now())
	broken.PersonalInfo = nil
	_ = store.Create(context.Background(), broken)
	if _, err := ex.Export(context.Background(), broken.ID, "alice", "en"); !errors.Is(err, domain.ErrRender) {
		t.Fatalf("missing personal info: got %v, want ErrRender", err)
	}
	if engine.launches.Load() != 0 {
		t.Fatal("engine launched for a resume that cannot be rendered")
	}
}

func TestExportArchiveFailureIsNotFatal(t *testing.T) {
	store := repository.NewMemoryStore()
	r := seedResume(t, store, "alice", "Ada")
	ex := NewExporter(store, &fakeEngine{pdf: []byte("%PDF")}, WithArchive(&memoryArchive{err: errors.New("bucket gone")}))

	if _, err := ex.Export(context.Background(), r.ID, "alice", "en"); err != nil {
		t.Fatalf("Export: %v", err)
	}
}

func TestPreview(t *testing.T) {
	store := repository.NewMemoryStore()
	r := seedResume(t, store, "alice", "Ada <Lovelace>")
	ex := NewExporter(store, &fakeEngine{})

	html, err := ex.Preview(context.Background(), r.ID, "alice", "pt")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !strings.Contains(html, "Ada &lt;Lovelace&gt;") {
		t.Fatal("preview does not contain the escaped name")
	}
	if !strings.Contains(html, `lang="pt"`) {
		t.Fatal("preview ignored the requested language")
	}
}

func TestExportFilename(t *testing.T) {
	day := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	tests := []struct {
		name string
		want string
	}{
		{"Ada Lovelace", "Ada_Lovelace_2024-01-02.pdf"},
		{"  Ada \t\n Lovelace  ", "Ada_Lovelace_2024-01-02.pdf"},
		{`Ada "Countess" Lovelace`, "Ada_Countess_Lovelace_2024-01-02.pdf"},
		{"José García", "José_García_2024-01-02.pdf"},
		{"../../etc/passwd", "etcpasswd_2024-01-02.pdf"},
		{"", "resume_2024-01-02.pdf"},
		{"\"\r\n;", "resume_2024-01-02.pdf"},
	}
	for _, tt := range tests {
		if got := ExportFilename(tt.name, day); got != tt.want {
			t.Errorf("ExportFilename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
