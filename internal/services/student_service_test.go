package services

import (
	"context"
	"io"
	"log"
	"net/http"
	"testing"

	"school-backend/internal/apperr"
	"school-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeStudentStore struct {
	students map[string]*models.Student
}

func (f *fakeStudentStore) Create(ctx context.Context, s *models.Student) error {
	if _, ok := f.students[s.StudentID]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	f.students[s.StudentID] = s
	return nil
}

func (f *fakeStudentStore) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	s, ok := f.students[studentID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (f *fakeStudentStore) List(ctx context.Context) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStudentStore) ListByClass(ctx context.Context, className string) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.students {
		if s.ClassName == className {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.students {
		if s.TeacherID == teacherID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) Update(ctx context.Context, s *models.Student) error {
	f.students[s.StudentID] = s
	return nil
}

func (f *fakeStudentStore) UpdateProfileImage(ctx context.Context, studentID, imageURL string) error {
	if s, ok := f.students[studentID]; ok {
		s.ProfileImageURL = imageURL
	}
	return nil
}

func (f *fakeStudentStore) UpdateClassBulk(ctx context.Context, studentIDs []string, className string) (int64, error) {
	var updated int64
	for _, id := range studentIDs {
		if s, ok := f.students[id]; ok {
			s.ClassName = className
			updated++
		}
	}
	return updated, nil
}

func (f *fakeStudentStore) Delete(ctx context.Context, studentID string) error {
	delete(f.students, studentID)
	return nil
}

type fakeTeacherFinder map[string]*models.Teacher

func (f fakeTeacherFinder) GetByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	t, ok := f[teacherID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return t, nil
}

func newStudentFixture() (*StudentService, *fakeStudentStore) {
	store := &fakeStudentStore{students: map[string]*models.Student{
		"S001": {StudentID: "S001", FullName: "Asha Verma", ClassName: "5A", TeacherID: "T001"},
		"S002": {StudentID: "S002", FullName: "Rohan Gupta", ClassName: "5A", TeacherID: "T001"},
		"S003": {StudentID: "S003", FullName: "Meera Nair", ClassName: "6A", TeacherID: "T002"},
	}}
	teachers := fakeTeacherFinder{
		"T001": {TeacherID: "T001"},
		"T002": {TeacherID: "T002"},
	}
	return NewStudentService(store, teachers, log.New(io.Discard, "", 0)), store
}

func TestBulkUpdateClassMovesStudents(t *testing.T) {
	svc, store := newStudentFixture()

	updated, err := svc.BulkUpdateClass(context.Background(), &models.BulkUpdateClassRequest{
		StudentIDs: []string{"S001", "S002", "NOPE"},
		NewClass:   "6A",
	})
	if err != nil {
		t.Fatalf("BulkUpdateClass: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2", updated)
	}
	for _, id := range []string{"S001", "S002"} {
		if got := store.students[id].ClassName; got != "6A" {
			t.Errorf("student %s class = %q, want 6A", id, got)
		}
	}
	if got := store.students["S003"].ClassName; got != "6A" {
		// S003 was already in 6A; make sure nothing moved it out.
		t.Errorf("student S003 class = %q, want 6A", got)
	}
}

func TestBulkUpdateClassNoMatches(t *testing.T) {
	svc, _ := newStudentFixture()

	_, err := svc.BulkUpdateClass(context.Background(), &models.BulkUpdateClassRequest{
		StudentIDs: []string{"X1", "X2"},
		NewClass:   "6A",
	})
	if !apperr.IsNotFound(err) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestCreateStudentUnknownTeacher(t *testing.T) {
	svc, _ := newStudentFixture()

	_, err := svc.Create(context.Background(), &models.CreateStudentRequest{
		StudentID: "S100",
		FirstName: "Kiran",
		LastName:  "Rao",
		ClassName: "5A",
		TeacherID: "T999",
	})
	if apperr.StatusOf(err) != http.StatusBadRequest {
		t.Errorf("err = %v, want BadRequest", err)
	}
}

func TestCreateStudentDuplicate(t *testing.T) {
	svc, _ := newStudentFixture()

	_, err := svc.Create(context.Background(), &models.CreateStudentRequest{
		StudentID: "S001",
		FirstName: "Asha",
		LastName:  "Verma",
		ClassName: "5A",
		TeacherID: "T001",
	})
	if apperr.StatusOf(err) != http.StatusConflict {
		t.Errorf("err = %v, want Conflict", err)
	}
}
