// Package digest runs the scheduled due-task digest: a periodic, read-only
// log of open tasks approaching their due date.
package digest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zulandar/summit/internal/config"
	"github.com/zulandar/summit/internal/models"
	"gorm.io/gorm"
)

// Run starts the cron-scheduled digest job and blocks until ctx is
// cancelled. The job never mutates state.
func Run(ctx context.Context, db *gorm.DB, cfg config.DigestConfig) error {
	if db == nil {
		return fmt.Errorf("digest: db is required")
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Cron, func() {
		if err := logDueTasks(db, cfg.LookaheadDays); err != nil {
			log.Printf("digest: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("digest: schedule %q: %w", cfg.Cron, err)
	}

	c.Start()
	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	return nil
}

// logDueTasks logs every non-Done task due within the lookahead window.
func logDueTasks(db *gorm.DB, lookaheadDays int) error {
	due, err := DueTasks(db, lookaheadDays)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		log.Printf("digest: no tasks due within %d days", lookaheadDays)
		return nil
	}
	for _, t := range due {
		log.Printf("digest: task %s %q due %s (status %s, %d deliverables)",
			t.ID, t.Title, t.DueDate.Format("2006-01-02"), t.Status, len(t.FinalDeliverables))
	}
	return nil
}

// DueTasks returns the non-Done tasks due within lookaheadDays, soonest
// first.
func DueTasks(db *gorm.DB, lookaheadDays int) ([]models.Task, error) {
	now := time.Now()
	horizon := now.AddDate(0, 0, lookaheadDays)

	var tasks []models.Task
	if err := db.Where("status <> ? AND due_date IS NOT NULL AND due_date <= ?", models.StatusDone, horizon).
		Order("due_date ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("digest: list due tasks: %w", err)
	}
	return tasks, nil
}
