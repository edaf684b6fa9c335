package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUtilizationRateNoCourses(t *testing.T) {
	reg, _ := newTestRegistry(t)

	rate, err := reg.Stats.UtilizationRate(context.Background())
	require.NoError(t, err)
	require.Zero(t, rate)
}

func TestUtilizationRateZeroCapacity(t *testing.T) {
	reg, db := newTestRegistry(t)
	seedCourse(t, db, "CS101", 0)

	rate, err := reg.Stats.UtilizationRate(context.Background())
	require.NoError(t, err)
	require.Zero(t, rate)
}

func TestUtilizationRate(t *testing.T) {
	reg, db := newTestRegistry(t)
	ctx := context.Background()

	first := seedCourse(t, db, "CS101", 10)
	seedCourse(t, db, "CS102", 10)

	for i := 0; i < 5; i++ {
		sid := seedStudent(t, db, string(rune('a'+i))+"@uni.edu")
		_, err := reg.Coordinator.Enroll(ctx, sid, first)
		require.NoError(t, err)
	}

	// 5 of 20 seats filled
	rate, err := reg.Stats.UtilizationRate(ctx)
	require.NoError(t, err)
	require.InDelta(t, 25.0, rate, 0.001)
}

func TestOverview(t *testing.T) {
	reg, db := newTestRegistry(t)
	ctx := context.Background()

	courseID := seedCourse(t, db, "CS101", 4)
	seedCourse(t, db, "CS102", 6)

	alice := seedStudent(t, db, "alice@uni.edu")
	bob := seedStudent(t, db, "bob@uni.edu")

	_, err := reg.Coordinator.Enroll(ctx, alice, courseID)
	require.NoError(t, err)
	_, err = reg.Coordinator.Enroll(ctx, bob, courseID)
	require.NoError(t, err)
	require.NoError(t, reg.Coordinator.Drop(ctx, bob, courseID))

	o, err := reg.Stats.Overview(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), o.TotalCourses)
	require.Equal(t, int64(2), o.TotalEnrollments)
	require.Equal(t, int64(1), o.ActiveEnrollments)
	require.Equal(t, int64(10), o.TotalCapacity)
	require.Equal(t, int64(1), o.EnrolledSeats)
	require.InDelta(t, 10.0, o.UtilizationRate, 0.001)
}
