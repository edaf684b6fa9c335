package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"registra/models"
)

// newTestRegistry opens an in-memory database and builds a Registry
// over it. A single connection keeps the memory database alive and
// serializes transactions at the driver level, so the concurrency tests
// exercise the coordinator's own locking rather than sqlite quirks.
func newTestRegistry(t *testing.T) (*Registry, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.Course{},
		&models.Enrollment{},
		&models.EnrollmentEvent{},
	))

	return New(db), db
}

func seedStudent(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	user := models.User{
		Name:     "Test Student",
		Email:    email,
		Password: "hashed",
		Role:     models.RoleStudent,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func seedCourse(t *testing.T, db *gorm.DB, code string, seats int) uint {
	t.Helper()
	course := models.Course{
		Code:       code,
		Name:       code + " Test Course",
		Instructor: "Prof. Test",
		Credits:    3,
		TotalSeats: seats,
		Department: "CS",
	}
	require.NoError(t, db.Create(&course).Error)
	return course.ID
}

// requireCounterConsistent asserts the derived invariant: enrolled_seats
// equals the count of ENROLLED ledger rows for the course.
func requireCounterConsistent(t *testing.T, db *gorm.DB, courseID uint) {
	t.Helper()

	var course models.Course
	require.NoError(t, db.First(&course, courseID).Error)

	var active int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("course_id = ? AND status = ?", courseID, models.EnrollmentStatusEnrolled).
		Count(&active).Error)

	require.Equal(t, active, int64(course.EnrolledSeats),
		"enrolled_seats must equal the count of ENROLLED ledger rows")
}
