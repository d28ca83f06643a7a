package repositories

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/honorsociety/internal/app/models"
)

// fakeRow assigns values positionally, failing when the target count differs
type fakeRow struct {
	values []interface{}
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("%d scan targets for %d columns", len(dest), len(r.values))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func studentRowValues() []interface{} {
	return []interface{}{
		int64(5), "2024-001", "John", "Doe", int64(1), int64(2), 3,
		"Main Campus", "MAIN",
		"Computer Science", "CS", int64(1), "Main Campus", "MAIN",
	}
}

func TestColumnsMatchScanTargets(t *testing.T) {
	assert.Len(t, studentScanTargets(newStudentWithRelations()), len(studentColumns))
	assert.Len(t, gwaRecordScanTargets(newGWARecordWithRelations()), len(gwaRecordColumns))
}

func TestScanStudent(t *testing.T) {
	s, err := scanStudent(fakeRow{values: studentRowValues()})
	require.NoError(t, err)
	assert.Equal(t, "2024-001", s.StudentNumber)
	assert.Equal(t, 3, s.YearLevel)
	assert.Equal(t, int64(1), s.Campus.ID)
	assert.Equal(t, "MAIN", s.Campus.Code)
	assert.Equal(t, int64(2), s.Department.ID)
	assert.Equal(t, "CS", s.Department.Code)
	assert.Equal(t, int64(1), s.Department.Campus.ID)
}

func TestScanGWARecord(t *testing.T) {
	created := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	values := append([]interface{}{
		int64(9), int64(5), "1st Semester", "2024-2025", 1.5,
		int64(7), created, created, "officer1",
	}, studentRowValues()...)

	rec, err := scanGWARecord(fakeRow{values: values})
	require.NoError(t, err)
	assert.Equal(t, int64(9), rec.ID)
	assert.Equal(t, 1.5, rec.GWA)
	assert.Equal(t, int64(7), rec.EncodedBy.ID)
	assert.Equal(t, "officer1", rec.EncodedBy.Username)
	assert.Equal(t, "Doe", rec.Student.LastName)
	assert.Equal(t, int64(2), rec.Student.Department.ID)
}

func TestScanOfficer(t *testing.T) {
	created := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	o, err := scanOfficer(fakeRow{values: []interface{}{
		int64(3), int64(7), "Secretary", int64(1), true, false,
		"officer1", "o@example.com", "Ana", "Cruz", created,
		"Main Campus", "MAIN",
	}})
	require.NoError(t, err)
	require.Len(t, officerColumns, 13)
	assert.True(t, o.IsActive)
	assert.False(t, o.IsVerified)
	assert.Equal(t, int64(7), o.User.ID)
	assert.Equal(t, "Cruz", o.User.LastName)
	assert.Equal(t, int64(1), o.Campus.ID)
}

func TestGWARecordStatisticsQuery(t *testing.T) {
	r := NewGWARecordRepository(nil)
	year := "2024-2025"

	sql, args, err := r.statisticsQuery(models.GWARecordFilter{AcademicYear: &year}, models.HonorThreshold).ToSql()
	require.NoError(t, err)
	// scanned as total, average, highest (best), lowest (worst), honor count
	assert.Contains(t, sql, "SELECT COUNT(g.id), ROUND(AVG(g.gwa), 2)::float8, MIN(g.gwa)::float8, MAX(g.gwa)::float8, COUNT(g.id) FILTER (WHERE g.gwa <= $1)")
	assert.Contains(t, sql, "FROM gwa_records g JOIN students s ON s.id = g.student_id")
	assert.Contains(t, sql, "g.academic_year = $2")
	assert.Equal(t, []interface{}{models.HonorThreshold, "2024-2025"}, args)
}

func TestGWARecordListQueries(t *testing.T) {
	r := NewGWARecordRepository(nil)
	semester := "2nd Semester"
	opts := models.ListOptions{
		Search:   "doe",
		Ordering: []models.SortField{{Field: "gwa", Desc: true}},
		Page:     3,
		PageSize: 10,
	}

	count, page := r.listQueries(models.GWARecordFilter{Semester: &semester}, opts)

	countSQL, countArgs, err := count.ToSql()
	require.NoError(t, err)
	assert.Contains(t, countSQL, "SELECT COUNT(*) FROM gwa_records g JOIN students s ON s.id = g.student_id")
	assert.Contains(t, countSQL, "JOIN users u ON u.id = g.encoded_by")
	assert.Len(t, countArgs, 6)

	pageSQL, pageArgs, err := page.ToSql()
	require.NoError(t, err)
	assert.Contains(t, pageSQL, "g.semester = $1")
	assert.Contains(t, pageSQL, "s.student_number ILIKE $2")
	assert.Contains(t, pageSQL, "g.academic_year ILIKE $6")
	assert.Contains(t, pageSQL, "ORDER BY g.gwa DESC, g.id ASC LIMIT 10 OFFSET 20")
	assert.Equal(t, countArgs, pageArgs)
	assert.Equal(t, "2nd Semester", pageArgs[0])
	assert.Equal(t, "%doe%", pageArgs[1])
}

func TestStudentListQueries(t *testing.T) {
	r := NewStudentRepository(nil)
	campusID := int64(4)
	opts := models.ListOptions{Search: "science", Ordering: models.StudentDefaultOrdering, Page: 1, PageSize: 25}

	_, page := r.listQueries(models.StudentFilter{CampusID: &campusID}, opts)
	sql, args, err := page.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "JOIN campuses c ON c.id = s.campus_id JOIN departments d ON d.id = s.department_id JOIN campuses dc ON dc.id = d.campus_id")
	assert.Contains(t, sql, "s.campus_id = $1")
	assert.Contains(t, sql, "c.name ILIKE $5 OR d.name ILIKE $6")
	assert.Contains(t, sql, "ORDER BY s.last_name ASC, s.first_name ASC, s.id ASC LIMIT 25 OFFSET 0")
	assert.Equal(t, int64(4), args[0])
	assert.Len(t, args, 6)
}
