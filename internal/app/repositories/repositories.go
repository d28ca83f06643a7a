package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/honorsociety/internal/app/models"
)

// CampusRepository is the data access contract for campuses
type CampusRepository interface {
	List(ctx context.Context, filter models.CampusFilter, opts models.ListOptions) ([]*models.Campus, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Campus, error)
	Create(ctx context.Context, campus *models.Campus) error
	Update(ctx context.Context, campus *models.Campus) error
	// Delete removes the campus and, transitively, everything that belongs to it
	Delete(ctx context.Context, id int64) error
}

// DepartmentRepository is the data access contract for departments
type DepartmentRepository interface {
	List(ctx context.Context, filter models.DepartmentFilter, opts models.ListOptions) ([]*models.Department, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	Create(ctx context.Context, department *models.Department) error
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id int64) error
}

// CourseRepository is the data access contract for courses
type CourseRepository interface {
	List(ctx context.Context, filter models.CourseFilter, opts models.ListOptions) ([]*models.Course, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// StudentRepository is the data access contract for students
type StudentRepository interface {
	List(ctx context.Context, filter models.StudentFilter, opts models.ListOptions) ([]*models.Student, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// GWARecordRepository is the data access contract for GWA records
type GWARecordRepository interface {
	List(ctx context.Context, filter models.GWARecordFilter, opts models.ListOptions) ([]*models.GWARecord, int64, error)
	// ListAll returns every matching record without pagination
	ListAll(ctx context.Context, filter models.GWARecordFilter, ordering []models.SortField) ([]*models.GWARecord, error)
	GetByID(ctx context.Context, id int64) (*models.GWARecord, error)
	Create(ctx context.Context, record *models.GWARecord) error
	Update(ctx context.Context, record *models.GWARecord) error
	Delete(ctx context.Context, id int64) error
	// Statistics aggregates the filtered set; honorThreshold bounds the honor_eligible count
	Statistics(ctx context.Context, filter models.GWARecordFilter, honorThreshold float64) (*models.GWAStatistics, error)
}

// OfficerRepository is the data access contract for officers
type OfficerRepository interface {
	List(ctx context.Context, filter models.OfficerFilter, opts models.ListOptions) ([]*models.Officer, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Officer, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Officer, error)
	Create(ctx context.Context, officer *models.Officer) error
	Update(ctx context.Context, officer *models.Officer) error
	// SetStatus changes the approval flags, which the API never writes
	SetStatus(ctx context.Context, id int64, isActive, isVerified bool) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository is the data access contract for user accounts
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

// TokenRepository persists the refresh-token blacklist
type TokenRepository interface {
	// Revoke blacklists jti; revoking an already revoked jti returns apperrors.ErrTokenRevoked
	Revoke(ctx context.Context, jti string, userID int64, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// DeleteExpired drops rows whose token would have expired before now
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Driver               string
	Health               HealthChecker
	CampusRepository     CampusRepository
	DepartmentRepository DepartmentRepository
	CourseRepository     CourseRepository
	StudentRepository    StudentRepository
	GWARecordRepository  GWARecordRepository
	OfficerRepository    OfficerRepository
	UserRepository       UserRepository
	TokenRepository      TokenRepository
}

// NewRepositories initializes the PostgreSQL-backed repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Driver:               "postgres",
		Health:               db,
		CampusRepository:     NewCampusRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		CourseRepository:     NewCourseRepository(db),
		StudentRepository:    NewStudentRepository(db),
		GWARecordRepository:  NewGWARecordRepository(db),
		OfficerRepository:    NewOfficerRepository(db),
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
	}
}
