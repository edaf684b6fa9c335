package utils

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"registra/config"
	"registra/database"
	"registra/models"
	"registra/registry"
)

// logReconcile logs reconcile job events with timestamp
func logReconcile(message string) {
	log.Printf("[SEAT-RECONCILE %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartReconcileScheduler runs the seat-counter audit on the configured
// cron schedule. The coordinator keeps the counter correct on its own;
// this job exists to detect and repair drift left behind by anything
// that predates it or bypasses it.
func StartReconcileScheduler() *cron.Cron {
	c := cron.New()

	spec := config.AppConfig.ReconcileCron
	if _, err := c.AddFunc(spec, ReconcileSeatCounters); err != nil {
		log.Fatalf("Failed to schedule seat reconcile job (%q): %v", spec, err)
	}

	c.Start()
	logReconcile("Scheduled with spec " + spec)
	return c
}

// ReconcileSeatCounters recounts enrolled_seats from the ledger for every
// live course and repairs any course whose counter drifted.
func ReconcileSeatCounters() {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("is_deleted = ?", false).Find(&courses).Error; err != nil {
		logReconcile("Error fetching courses: " + err.Error())
		return
	}

	repairedTotal := 0
	for _, course := range courses {
		count, repaired, err := registry.Default.Courses.Recount(context.Background(), course.ID)
		if err != nil {
			logReconcile("Error recounting course " + course.Code + ": " + err.Error())
			continue
		}
		if repaired {
			repairedTotal++
			logReconcile("Repaired counter for " + course.Code +
				" (stored " + strconv.Itoa(course.EnrolledSeats) + ", ledger " + strconv.FormatInt(count, 10) + ")")
		}
	}

	if repairedTotal > 0 {
		logReconcile("Run complete, repaired " + strconv.Itoa(repairedTotal) + " course(s)")
	}
}
