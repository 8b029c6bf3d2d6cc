package board

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"classboard/internal/apperr"
	"classboard/internal/model"
)

type fakeGridStore struct {
	grid       model.DailyGrid
	getErr     error
	replaceErr error

	replaced     model.DailyGrid
	replacedDate string
}

func (f *fakeGridStore) GetAssignments(ctx context.Context, date string) (model.DailyGrid, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.grid == nil {
		return model.EmptyGrid(), nil
	}
	return f.grid, nil
}

func (f *fakeGridStore) ReplaceAssignments(ctx context.Context, date string, grid model.DailyGrid) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replacedDate = date
	f.replaced = grid.Clone()
	return nil
}

type fakeCommentStore struct {
	comments  []model.Comment
	listErr   error
	upsertErr error
	deleteErr error

	upserted []model.Comment
	deleted  int
}

func (f *fakeCommentStore) ListComments(ctx context.Context, date string) ([]model.Comment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.comments, nil
}

func (f *fakeCommentStore) UpsertComment(ctx context.Context, c model.Comment) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, c)
	return nil
}

func (f *fakeCommentStore) DeleteComment(ctx context.Context, date string, slot model.TimeSlot, group model.ClassGroup) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted++
	return nil
}

type fakeLectureSource struct {
	lectures []model.LectureInfo
	err      error
}

func (f *fakeLectureSource) FetchLectures(ctx context.Context, date string) ([]model.LectureInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lectures, nil
}

func strptr(s string) *string { return &s }

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestLoadRejectsBadDate(t *testing.T) {
	_, err := Load(context.Background(), "not-a-date",
		&fakeGridStore{}, &fakeCommentStore{}, &fakeLectureSource{}, testLogger())
	if !errors.Is(err, apperr.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestLoadGridFailureIsFatal(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := Load(context.Background(), "2026-04-15",
		&fakeGridStore{getErr: boom}, &fakeCommentStore{}, &fakeLectureSource{}, testLogger())
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped grid error, got %v", err)
	}
}

func TestLoadDegradesCommentsAndLectures(t *testing.T) {
	grid := model.EmptyGrid()
	grid.Set(model.Period1, "1-A", "4F大教室")

	b, err := Load(context.Background(), "2026-04-15",
		&fakeGridStore{grid: grid},
		&fakeCommentStore{listErr: errors.New("comments down")},
		&fakeLectureSource{err: errors.New("lectures down")},
		testLogger())
	if err != nil {
		t.Fatalf("load should survive comment/lecture failures: %v", err)
	}

	view := b.View(model.Period1, "1-A")
	if view.Classroom != "4F大教室" {
		t.Errorf("classroom = %q, want 4F大教室", view.Classroom)
	}
	if view.HasComment {
		t.Error("degraded load should carry no comments")
	}
	if view.LectureName != nil {
		t.Error("degraded load should carry no lectures")
	}
}

func TestLoadNormalizesSlashDate(t *testing.T) {
	b, err := Load(context.Background(), "2026/04/15",
		&fakeGridStore{}, &fakeCommentStore{}, &fakeLectureSource{}, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if b.Date() != "2026-04-15" {
		t.Errorf("date = %q, want 2026-04-15", b.Date())
	}
}

func TestViewMergesAllThreeCollections(t *testing.T) {
	grid := model.EmptyGrid()
	grid.Set(model.Period2, "2-A", "3F実習室")

	comments := []model.Comment{
		{Date: "2026-04-15", TimeSlot: model.Period2, ClassGroup: "2-A", Comment: "持ち物: 実習着"},
	}
	lectures := []model.LectureInfo{
		{TimeSlot: model.Period2, ClassGroup: "2-A", LectureName: strptr("解剖学"), TeacherName: strptr("田中")},
	}

	b, err := Load(context.Background(), "2026-04-15",
		&fakeGridStore{grid: grid},
		&fakeCommentStore{comments: comments},
		&fakeLectureSource{lectures: lectures},
		testLogger())
	if err != nil {
		t.Fatal(err)
	}

	v := b.View(model.Period2, "2-A")
	if v.Classroom != "3F実習室" {
		t.Errorf("classroom = %q", v.Classroom)
	}
	if v.LectureName == nil || *v.LectureName != "解剖学" {
		t.Errorf("lecture = %v", v.LectureName)
	}
	if v.TeacherName == nil || *v.TeacherName != "田中" {
		t.Errorf("teacher = %v", v.TeacherName)
	}
	if !v.HasComment || v.Comment != "持ち物: 実習着" {
		t.Errorf("comment = %q (has=%v)", v.Comment, v.HasComment)
	}

	// A neighboring cell shares nothing.
	other := b.View(model.Period2, "2-B")
	if other.Classroom != model.Unassigned || other.HasComment || other.LectureName != nil {
		t.Errorf("neighbor cell leaked data: %+v", other)
	}
}

func TestViewFirstMatchWinsOnDuplicates(t *testing.T) {
	comments := []model.Comment{
		{TimeSlot: model.Period1, ClassGroup: "1-A", Comment: "first"},
		{TimeSlot: model.Period1, ClassGroup: "1-A", Comment: "second"},
	}
	b, err := Load(context.Background(), "2026-04-15",
		&fakeGridStore{}, &fakeCommentStore{comments: comments}, &fakeLectureSource{}, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if v := b.View(model.Period1, "1-A"); v.Comment != "first" {
		t.Errorf("comment = %q, want first", v.Comment)
	}
}

func TestViewAllCoversEveryTrackCell(t *testing.T) {
	b, err := Load(context.Background(), "2026-04-15",
		&fakeGridStore{}, &fakeCommentStore{}, &fakeLectureSource{}, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	views := b.ViewAll()
	want := len(model.RegularClassGroups)*len(model.RegularTimeSlots) +
		len(model.NursingClassGroups)*len(model.NursingTimeSlots)
	if len(views) != want {
		t.Fatalf("got %d cells, want %d", len(views), want)
	}

	// Nursing cells never include lunch or afternoon periods.
	for _, v := range views {
		if v.ClassGroup == "1-N" && (v.TimeSlot == model.Lunch || v.TimeSlot == model.Period3) {
			t.Errorf("nursing track contains %s", v.TimeSlot)
		}
	}
}

func TestSetCellValidation(t *testing.T) {
	b, err := Load(context.Background(), "2026-04-15",
		&fakeGridStore{}, &fakeCommentStore{}, &fakeLectureSource{}, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	if err := b.SetCell(model.Period1, "9-Z", "x"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("unknown group: got %v", err)
	}
	// 5限目 is outside every track.
	if err := b.SetCell(model.Period5, "1-A", "x"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("out-of-track slot: got %v", err)
	}
	// Lunch is not in the nursing track.
	if err := b.SetCell(model.Lunch, "2-N", "x"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("lunch for nursing: got %v", err)
	}
	if err := b.SetCell(model.Lunch, "1-A", "4F大教室"); err != nil {
		t.Errorf("valid cell: got %v", err)
	}
}

func TestSetAllSkipsSpecialSlots(t *testing.T) {
	b, err := Load(context.Background(), "2026-04-15",
		&fakeGridStore{}, &fakeCommentStore{}, &fakeLectureSource{}, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	if err := b.SetAll("1-A", "5F大教室"); err != nil {
		t.Fatal(err)
	}

	grid := b.Grid()
	for _, slot := range []model.TimeSlot{model.Period1, model.Period2, model.Lunch, model.Period3, model.Period4} {
		if room, _ := grid.Classroom(slot, "1-A"); room != "5F大教室" {
			t.Errorf("%s not filled: %q", slot, room)
		}
	}
	for _, slot := range model.SpecialTimeSlots {
		if _, ok := grid.Classroom(slot, "1-A"); ok {
			t.Errorf("special slot %s was filled by bulk apply", slot)
		}
	}
}

func TestCommitPersistsLocalEdits(t *testing.T) {
	grids := &fakeGridStore{}
	b, err := Load(context.Background(), "2026-04-15",
		grids, &fakeCommentStore{}, &fakeLectureSource{}, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	if err := b.SetCell(model.Period1, "1-A", "1F実習室"); err != nil {
		t.Fatal(err)
	}
	if grids.replaced != nil {
		t.Fatal("SetCell must not touch the store before Commit")
	}

	if err := b.Commit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if grids.replacedDate != "2026-04-15" {
		t.Errorf("replaced date = %q", grids.replacedDate)
	}
	if room, _ := grids.replaced.Classroom(model.Period1, "1-A"); room != "1F実習室" {
		t.Errorf("persisted grid missing edit: %q", room)
	}
}

func TestSetCommentOptimisticRollback(t *testing.T) {
	store := &fakeCommentStore{
		comments: []model.Comment{
			{Date: "2026-04-15", TimeSlot: model.Period1, ClassGroup: "1-A", Comment: "original"},
		},
	}
	b, err := Load(context.Background(), "2026-04-15",
		&fakeGridStore{}, store, &fakeLectureSource{}, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	store.upsertErr = errors.New("write refused")
	err = b.SetComment(context.Background(), model.Period1, "1-A", "4F大教室", "updated")
	if err == nil {
		t.Fatal("expected store error")
	}
	if v := b.View(model.Period1, "1-A"); v.Comment != "original" {
		t.Errorf("rollback failed, comment = %q", v.Comment)
	}

	store.upsertErr = nil
	if err := b.SetComment(context.Background(), model.Period1, "1-A", "4F大教室", "updated"); err != nil {
		t.Fatal(err)
	}
	if v := b.View(model.Period1, "1-A"); v.Comment != "updated" {
		t.Errorf("comment = %q, want updated", v.Comment)
	}
	if len(store.upserted) != 1 || store.upserted[0].Date != "2026-04-15" {
		t.Errorf("store writes: %+v", store.upserted)
	}
}

func TestSetCommentRejectsInvalidTarget(t *testing.T) {
	b, err := Load(context.Background(), "2026-04-15",
		&fakeGridStore{}, &fakeCommentStore{}, &fakeLectureSource{}, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SetComment(context.Background(), "0限目", "1-A", "", "x"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("got %v", err)
	}
	if err := b.SetComment(context.Background(), model.Period1, "1-X", "", "x"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("got %v", err)
	}
}

func TestClearCommentRollbackOnFailure(t *testing.T) {
	store := &fakeCommentStore{
		comments: []model.Comment{
			{Date: "2026-04-15", TimeSlot: model.Period3, ClassGroup: "2-B", Comment: "keep me"},
		},
		deleteErr: errors.New("delete refused"),
	}
	b, err := Load(context.Background(), "2026-04-15",
		&fakeGridStore{}, store, &fakeLectureSource{}, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	if err := b.ClearComment(context.Background(), model.Period3, "2-B"); err == nil {
		t.Fatal("expected delete error")
	}
	if v := b.View(model.Period3, "2-B"); !v.HasComment {
		t.Error("failed delete must restore the comment")
	}

	store.deleteErr = nil
	if err := b.ClearComment(context.Background(), model.Period3, "2-B"); err != nil {
		t.Fatal(err)
	}
	if v := b.View(model.Period3, "2-B"); v.HasComment {
		t.Error("comment survived a successful clear")
	}
	if store.deleted != 1 {
		t.Errorf("deleted calls = %d", store.deleted)
	}
}
