package inmem

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

var studentComparators = map[string]comparator[*models.Student]{
	"student_number": func(a, b *models.Student) int { return strings.Compare(a.StudentNumber, b.StudentNumber) },
	"first_name":     func(a, b *models.Student) int { return strings.Compare(a.FirstName, b.FirstName) },
	"last_name":      func(a, b *models.Student) int { return strings.Compare(a.LastName, b.LastName) },
	"year_level":     func(a, b *models.Student) int { return cmp.Compare(a.YearLevel, b.YearLevel) },
}

type studentRepository struct {
	s *Store
}

func (s *Store) studentView(id int64) *models.Student {
	st, ok := s.students[id]
	if !ok {
		return nil
	}
	cp := *st
	cp.Campus = s.campusView(st.CampusID)
	cp.Department = s.departmentView(st.DepartmentID)
	return &cp
}

func (s *Store) checkStudent(st *models.Student) error {
	if _, ok := s.campuses[st.CampusID]; !ok {
		return repositories.ForeignKeyViolation("students_campus_id_fkey")
	}
	if _, ok := s.departments[st.DepartmentID]; !ok {
		return repositories.ForeignKeyViolation("students_department_id_fkey")
	}
	if st.YearLevel <= 0 {
		return apperrors.NewValidationError("year_level", "year_level must be a positive integer.")
	}
	for _, other := range s.students {
		if other.ID != st.ID && other.StudentNumber == st.StudentNumber {
			return repositories.UniqueViolation(repositories.ConstraintStudentNumber)
		}
	}
	return nil
}

func (r *studentRepository) List(_ context.Context, filter models.StudentFilter, opts models.ListOptions) ([]*models.Student, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Student, 0)
	for id, st := range r.s.students {
		if filter.CampusID != nil && st.CampusID != *filter.CampusID {
			continue
		}
		if filter.DepartmentID != nil && st.DepartmentID != *filter.DepartmentID {
			continue
		}
		if filter.YearLevel != nil && st.YearLevel != *filter.YearLevel {
			continue
		}
		view := r.s.studentView(id)
		if matchesSearch(opts.Search, view.StudentNumber, view.FirstName, view.LastName, view.Campus.Name, view.Department.Name) {
			out = append(out, view)
		}
	}
	sortItems(out, opts.Ordering, studentComparators, func(s *models.Student) int64 { return s.ID })
	return paginate(out, opts), int64(len(out)), nil
}

func (r *studentRepository) GetByID(_ context.Context, id int64) (*models.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if st := r.s.studentView(id); st != nil {
		return st, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("student %d not found.", id))
}

func (r *studentRepository) Create(_ context.Context, student *models.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkStudent(student); err != nil {
		return err
	}
	student.ID = r.s.nextID("students")
	stored := *student
	stored.Campus, stored.Department = nil, nil
	r.s.students[stored.ID] = &stored
	return nil
}

func (r *studentRepository) Update(_ context.Context, student *models.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.students[student.ID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("student %d not found.", student.ID))
	}
	if err := r.s.checkStudent(student); err != nil {
		return err
	}
	stored := *student
	stored.Campus, stored.Department = nil, nil
	r.s.students[stored.ID] = &stored
	return nil
}

func (r *studentRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.students[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("student %d not found.", id))
	}
	r.s.deleteStudent(id)
	return nil
}

// deleteStudent cascades to GWA records
func (s *Store) deleteStudent(id int64) {
	for rid, rec := range s.records {
		if rec.StudentID == id {
			delete(s.records, rid)
		}
	}
	delete(s.students, id)
}
