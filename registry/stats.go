package registry

import (
	"context"

	"gorm.io/gorm"

	"registra/models"
)

// StatsAggregator derives dashboard numbers. Pure reads, no transaction:
// a slightly stale snapshot is fine for a dashboard and must never
// contend with the coordinator's write path.
type StatsAggregator struct {
	db *gorm.DB
}

// Overview is the admin dashboard summary.
type Overview struct {
	TotalCourses      int64   `json:"total_courses"`
	TotalEnrollments  int64   `json:"total_enrollments"`
	ActiveEnrollments int64   `json:"active_enrollments"`
	TotalCapacity     int64   `json:"total_capacity"`
	EnrolledSeats     int64   `json:"enrolled_seats"`
	UtilizationRate   float64 `json:"utilization_rate"`
}

// UtilizationRate returns enrolled seats over total capacity across all
// live courses, as a percentage. Zero capacity yields 0, not an error.
func (s *StatsAggregator) UtilizationRate(ctx context.Context) (float64, error) {
	capacity, enrolled, err := s.seatTotals(ctx)
	if err != nil {
		return 0, err
	}
	if capacity == 0 {
		return 0, nil
	}
	return float64(enrolled) / float64(capacity) * 100, nil
}

// Overview collects the admin dashboard counters in one pass.
func (s *StatsAggregator) Overview(ctx context.Context) (*Overview, error) {
	db := s.db.WithContext(ctx)
	o := &Overview{}

	if err := db.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&o.TotalCourses).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Enrollment{}).Count(&o.TotalEnrollments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Enrollment{}).
		Where("status = ?", models.EnrollmentStatusEnrolled).
		Count(&o.ActiveEnrollments).Error; err != nil {
		return nil, err
	}

	capacity, enrolled, err := s.seatTotals(ctx)
	if err != nil {
		return nil, err
	}
	o.TotalCapacity = capacity
	o.EnrolledSeats = enrolled
	if capacity > 0 {
		o.UtilizationRate = float64(enrolled) / float64(capacity) * 100
	}
	return o, nil
}

func (s *StatsAggregator) seatTotals(ctx context.Context) (capacity, enrolled int64, err error) {
	row := struct {
		Capacity int64
		Enrolled int64
	}{}
	err = s.db.WithContext(ctx).Model(&models.Course{}).
		Where("is_deleted = ?", false).
		Select("COALESCE(SUM(total_seats), 0) AS capacity, COALESCE(SUM(enrolled_seats), 0) AS enrolled").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Capacity, row.Enrolled, nil
}
