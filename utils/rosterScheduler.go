package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/akshayrachakonda/course-enrollment/config"
	"github.com/akshayrachakonda/course-enrollment/database"
	"github.com/akshayrachakonda/course-enrollment/services/enrollment"

	"github.com/robfig/cron/v3"
)

// InitializeRosterReconciler starts the periodic roster rebuild. The
// roster table is a cache over enrollment records; if a roster write is
// lost (crash between the enrollment insert and the roster insert) this
// job repairs it by replaying active enrollments.
func InitializeRosterReconciler() {
	minutes := config.AppConfig.RosterReconcileMinutes
	if minutes <= 0 {
		minutes = 15
	}

	log.Println("[ROSTER-RECONCILER] Initializing roster reconciler...")

	c := cron.New()

	c.AddFunc(fmt.Sprintf("@every %dm", minutes), func() {
		ReconcileRosters()
	})

	c.Start()
	log.Printf("[ROSTER-RECONCILER] Roster reconciler started - runs every %d minutes", minutes)
}

// ReconcileRosters rebuilds every course roster from active enrollment
// records.
func ReconcileRosters() {
	start := time.Now()
	log.Println("[ROSTER-RECONCILER] Running roster reconciliation...")

	if err := enrollment.RebuildAllRosters(context.Background(), database.Database.Db); err != nil {
		log.Printf("[ROSTER-RECONCILER] Reconciliation failed: %v", err)
		return
	}

	log.Printf("[ROSTER-RECONCILER] Reconciliation completed in %s", time.Since(start))
}
