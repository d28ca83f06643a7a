package inmem

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
	"github.com/yigit/honorsociety/internal/pkg/validation"
)

var gwaRecordComparators = map[string]comparator[*models.GWARecord]{
	"academic_year": func(a, b *models.GWARecord) int { return strings.Compare(a.AcademicYear, b.AcademicYear) },
	"semester":      func(a, b *models.GWARecord) int { return strings.Compare(a.Semester, b.Semester) },
	"gwa":           func(a, b *models.GWARecord) int { return cmp.Compare(a.GWA, b.GWA) },
	"created_at":    func(a, b *models.GWARecord) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

type gwaRecordRepository struct {
	s *Store
}

func (s *Store) recordView(id int64) *models.GWARecord {
	rec, ok := s.records[id]
	if !ok {
		return nil
	}
	cp := *rec
	cp.Student = s.studentView(rec.StudentID)
	if u, ok := s.users[rec.EncodedByID]; ok {
		user := *u
		cp.EncodedBy = &user
	}
	return &cp
}

func (s *Store) checkRecord(rec *models.GWARecord) error {
	if _, ok := s.students[rec.StudentID]; !ok {
		return repositories.ForeignKeyViolation("gwa_records_student_id_fkey")
	}
	if _, ok := s.users[rec.EncodedByID]; !ok {
		return repositories.ForeignKeyViolation("gwa_records_encoded_by_fkey")
	}
	for _, other := range s.records {
		if other.ID != rec.ID && other.StudentID == rec.StudentID &&
			other.Semester == rec.Semester && other.AcademicYear == rec.AcademicYear {
			return repositories.UniqueViolation(repositories.ConstraintGWARecordUnique)
		}
	}
	return nil
}

func recordMatches(rec *models.GWARecord, filter models.GWARecordFilter) bool {
	switch {
	case filter.StudentID != nil && rec.StudentID != *filter.StudentID:
		return false
	case filter.Semester != nil && rec.Semester != *filter.Semester:
		return false
	case filter.AcademicYear != nil && rec.AcademicYear != *filter.AcademicYear:
		return false
	case filter.MinGWA != nil && rec.GWA < *filter.MinGWA:
		return false
	case filter.MaxGWA != nil && rec.GWA > *filter.MaxGWA:
		return false
	}
	return true
}

// filtered returns hydrated, sorted matches; caller holds the read lock
func (r *gwaRecordRepository) filtered(filter models.GWARecordFilter, search string, ordering []models.SortField) []*models.GWARecord {
	out := make([]*models.GWARecord, 0)
	for id, rec := range r.s.records {
		if !recordMatches(rec, filter) {
			continue
		}
		view := r.s.recordView(id)
		if matchesSearch(search, view.Student.StudentNumber, view.Student.FirstName, view.Student.LastName, view.Semester, view.AcademicYear) {
			out = append(out, view)
		}
	}
	sortItems(out, ordering, gwaRecordComparators, func(rec *models.GWARecord) int64 { return rec.ID })
	return out
}

func (r *gwaRecordRepository) List(_ context.Context, filter models.GWARecordFilter, opts models.ListOptions) ([]*models.GWARecord, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.filtered(filter, opts.Search, opts.Ordering)
	return paginate(out, opts), int64(len(out)), nil
}

func (r *gwaRecordRepository) ListAll(_ context.Context, filter models.GWARecordFilter, ordering []models.SortField) ([]*models.GWARecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filtered(filter, "", ordering), nil
}

func (r *gwaRecordRepository) GetByID(_ context.Context, id int64) (*models.GWARecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if rec := r.s.recordView(id); rec != nil {
		return rec, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("GWA record %d not found.", id))
}

func (r *gwaRecordRepository) Create(_ context.Context, record *models.GWARecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkRecord(record); err != nil {
		return err
	}
	now := r.s.now()
	record.ID = r.s.nextID("gwa_records")
	record.GWA = validation.RoundGWA(record.GWA)
	record.CreatedAt, record.UpdatedAt = now, now

	stored := *record
	stored.Student, stored.EncodedBy = nil, nil
	r.s.records[stored.ID] = &stored
	return nil
}

func (r *gwaRecordRepository) Update(_ context.Context, record *models.GWARecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.records[record.ID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("GWA record %d not found.", record.ID))
	}
	if err := r.s.checkRecord(record); err != nil {
		return err
	}
	record.GWA = validation.RoundGWA(record.GWA)
	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = r.s.now()

	stored := *record
	stored.Student, stored.EncodedBy = nil, nil
	r.s.records[stored.ID] = &stored
	return nil
}

func (r *gwaRecordRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.records[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("GWA record %d not found.", id))
	}
	delete(r.s.records, id)
	return nil
}

func (r *gwaRecordRepository) Statistics(_ context.Context, filter models.GWARecordFilter, honorThreshold float64) (*models.GWAStatistics, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := &models.GWAStatistics{}
	var sum, lo, hi float64
	for _, rec := range r.s.records {
		if !recordMatches(rec, filter) {
			continue
		}
		if stats.TotalRecords == 0 || rec.GWA < lo {
			lo = rec.GWA
		}
		if stats.TotalRecords == 0 || rec.GWA > hi {
			hi = rec.GWA
		}
		sum += rec.GWA
		stats.TotalRecords++
		if rec.GWA <= honorThreshold {
			stats.HonorEligible++
		}
	}

	if stats.TotalRecords > 0 {
		avg := validation.RoundGWA(sum / float64(stats.TotalRecords))
		stats.AverageGWA = &avg
		stats.HighestGWA = &lo
		stats.LowestGWA = &hi
	}
	return stats, nil
}
