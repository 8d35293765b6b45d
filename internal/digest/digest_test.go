package digest

import (
	"testing"
	"time"

	"github.com/zulandar/summit/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Node{}, &models.Objective{}, &models.Task{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedTaskDue(t *testing.T, db *gorm.DB, id, status string, due *time.Time) {
	t.Helper()
	tk := models.Task{ID: id, ObjectiveID: "ob-11111111", Title: id, Status: status, DueDate: due}
	if err := db.Create(&tk).Error; err != nil {
		t.Fatalf("seed task %s: %v", id, err)
	}
}

func TestDueTasks(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	tomorrow := now.AddDate(0, 0, 1)
	nextMonth := now.AddDate(0, 1, 0)

	seedTaskDue(t, db, "tk-duesoon1", "Todo", &tomorrow)
	seedTaskDue(t, db, "tk-done0001", models.StatusDone, &tomorrow)
	seedTaskDue(t, db, "tk-farout01", "In Progress", &nextMonth)
	seedTaskDue(t, db, "tk-nodue001", "Todo", nil)

	due, err := DueTasks(db, 7)
	if err != nil {
		t.Fatalf("DueTasks: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("due count = %d, want 1", len(due))
	}
	if due[0].ID != "tk-duesoon1" {
		t.Errorf("due task = %s, want tk-duesoon1", due[0].ID)
	}
}

func TestDueTasks_IncludesOverdue(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	lastWeek := now.AddDate(0, 0, -7)
	tomorrow := now.AddDate(0, 0, 1)

	seedTaskDue(t, db, "tk-overdue1", "Blocked", &lastWeek)
	seedTaskDue(t, db, "tk-duesoon1", "Todo", &tomorrow)

	due, err := DueTasks(db, 7)
	if err != nil {
		t.Fatalf("DueTasks: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("due count = %d, want 2", len(due))
	}
	// Soonest (most overdue) first.
	if due[0].ID != "tk-overdue1" {
		t.Errorf("first due task = %s, want tk-overdue1", due[0].ID)
	}
}
