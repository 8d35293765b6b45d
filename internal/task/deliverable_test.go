package task

import (
	"errors"
	"testing"

	"github.com/zulandar/summit/internal/apperr"
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
	if err := db.AutoMigrate(
		&models.Node{},
		&models.Period{},
		&models.Objective{},
		&models.Task{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedTask(t *testing.T, db *gorm.DB) *models.Task {
	t.Helper()
	nodeID := "nd-11111111"
	n := models.Node{ID: nodeID, Name: "Platform", Active: true}
	if err := db.Create(&n).Error; err != nil {
		t.Fatalf("seed node: %v", err)
	}
	o := models.Objective{ID: "ob-11111111", NodeID: &nodeID, Description: "Stabilize the platform", TargetValue: 100}
	if err := db.Create(&o).Error; err != nil {
		t.Fatalf("seed objective: %v", err)
	}
	tk, err := Create(db, CreateOpts{ObjectiveID: o.ID, Title: "Write the runbook"})
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return tk
}

func TestAddDeliverable_Defaults(t *testing.T) {
	db := openTestDB(t)
	tk := seedTask(t, db)

	list, err := AddDeliverable(db, tk.ID, DeliverableDraft{URL: "https://example.com/runbook"})
	if err != nil {
		t.Fatalf("AddDeliverable: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}

	d := list[0]
	if d.Type != "link" {
		t.Errorf("type = %q, want %q", d.Type, "link")
	}
	if d.Title != "https://example.com/runbook" {
		t.Errorf("title = %q, want url fallback", d.Title)
	}
	if d.ID == "" {
		t.Error("deliverable has no stable ID")
	}
	if d.AddedAt.IsZero() {
		t.Error("added_at not stamped")
	}
	if d.PromotedFromCommentID != nil {
		t.Error("direct add should not record a promotion origin")
	}
}

func TestAddDeliverable_PreservesOrder(t *testing.T) {
	db := openTestDB(t)
	tk := seedTask(t, db)

	urls := []string{"https://a.test/1", "https://a.test/2", "https://a.test/3"}
	var list []models.Deliverable
	var err error
	for _, u := range urls {
		list, err = AddDeliverable(db, tk.ID, DeliverableDraft{URL: u})
		if err != nil {
			t.Fatalf("AddDeliverable(%s): %v", u, err)
		}
	}
	if len(list) != 3 {
		t.Fatalf("list length = %d, want 3", len(list))
	}
	for i, u := range urls {
		if list[i].URL != u {
			t.Errorf("list[%d].URL = %q, want %q", i, list[i].URL, u)
		}
	}
}

func TestAddDeliverable_EmptyURL(t *testing.T) {
	db := openTestDB(t)
	tk := seedTask(t, db)

	for _, url := range []string{"", "   "} {
		if _, err := AddDeliverable(db, tk.ID, DeliverableDraft{URL: url}); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("AddDeliverable(url=%q) error = %v, want ErrValidation", url, err)
		}
	}

	list, err := ListDeliverables(db, tk.ID)
	if err != nil {
		t.Fatalf("ListDeliverables: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("rejected add mutated the list: length = %d", len(list))
	}
}

func TestAddDeliverable_TaskNotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := AddDeliverable(db, "tk-missing0", DeliverableDraft{URL: "https://x.test"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListDeliverables_TaskNotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := ListDeliverables(db, "tk-missing0"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRemoveDeliverable_MiddleIndex(t *testing.T) {
	db := openTestDB(t)
	tk := seedTask(t, db)

	for _, u := range []string{"https://a.test/1", "https://a.test/2", "https://a.test/3"} {
		if _, err := AddDeliverable(db, tk.ID, DeliverableDraft{URL: u}); err != nil {
			t.Fatalf("AddDeliverable: %v", err)
		}
	}

	list, err := RemoveDeliverable(db, tk.ID, 1)
	if err != nil {
		t.Fatalf("RemoveDeliverable: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
	if list[0].URL != "https://a.test/1" || list[1].URL != "https://a.test/3" {
		t.Errorf("remaining order wrong: %q, %q", list[0].URL, list[1].URL)
	}
}

func TestRemoveDeliverable_OutOfRange(t *testing.T) {
	db := openTestDB(t)
	tk := seedTask(t, db)
	if _, err := AddDeliverable(db, tk.ID, DeliverableDraft{URL: "https://a.test/1"}); err != nil {
		t.Fatalf("AddDeliverable: %v", err)
	}

	for _, index := range []int{-1, 1, 5} {
		if _, err := RemoveDeliverable(db, tk.ID, index); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("RemoveDeliverable(index=%d) error = %v, want ErrValidation", index, err)
		}
	}

	list, err := ListDeliverables(db, tk.ID)
	if err != nil {
		t.Fatalf("ListDeliverables: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("rejected remove mutated the list: length = %d", len(list))
	}
}

func TestRemoveDeliverable_TaskNotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := RemoveDeliverable(db, "tk-missing0", 0); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCanComplete_TracksCount(t *testing.T) {
	db := openTestDB(t)
	tk := seedTask(t, db)

	check, err := CanComplete(db, tk.ID)
	if err != nil {
		t.Fatalf("CanComplete: %v", err)
	}
	if check.CanComplete || check.DeliverableCount != 0 {
		t.Errorf("empty task: canComplete=%v count=%d, want false/0", check.CanComplete, check.DeliverableCount)
	}

	if _, err := AddDeliverable(db, tk.ID, DeliverableDraft{URL: "https://x.test"}); err != nil {
		t.Fatalf("AddDeliverable: %v", err)
	}

	check, err = CanComplete(db, tk.ID)
	if err != nil {
		t.Fatalf("CanComplete: %v", err)
	}
	if !check.CanComplete || check.DeliverableCount != 1 {
		t.Errorf("after add: canComplete=%v count=%d, want true/1", check.CanComplete, check.DeliverableCount)
	}
}

func TestCanComplete_TaskNotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := CanComplete(db, "tk-missing0"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
