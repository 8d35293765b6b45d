package objective

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
		&models.KeyResult{},
		&models.Task{},
		&models.Comment{},
		&models.Project{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedNode(t *testing.T, db *gorm.DB, id string) string {
	t.Helper()
	if err := db.Create(&models.Node{ID: id, Name: "Node " + id, Active: true}).Error; err != nil {
		t.Fatalf("seed node: %v", err)
	}
	return id
}

func seedPeriod(t *testing.T, db *gorm.DB, nodeID, id string) string {
	t.Helper()
	if err := db.Create(&models.Period{ID: id, NodeID: nodeID, Alias: "Q1"}).Error; err != nil {
		t.Fatalf("seed period: %v", err)
	}
	return id
}

func TestCreate_RequiresExactlyOneParent(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111")
	periodID := seedPeriod(t, db, nodeID, "pd-11111111")

	tests := []struct {
		name string
		opts CreateOpts
	}{
		{"no parent", CreateOpts{Description: "x"}},
		{"both parents", CreateOpts{NodeID: nodeID, PeriodID: periodID, Description: "x"}},
		{"no description", CreateOpts{NodeID: nodeID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Create(db, tt.opts); !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}

	if _, err := Create(db, CreateOpts{NodeID: "nd-missing0", Description: "x"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing node error = %v, want ErrNotFound", err)
	}
	if _, err := Create(db, CreateOpts{PeriodID: "pd-missing0", Description: "x"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing period error = %v, want ErrNotFound", err)
	}
}

func TestCreate_AssignsDenseDisplayOrder(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111")

	for i := 0; i < 3; i++ {
		o, err := Create(db, CreateOpts{NodeID: nodeID, Description: "Objective"})
		if err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
		if o.DisplayOrder != i {
			t.Errorf("objective #%d display_order = %d, want %d", i, o.DisplayOrder, i)
		}
	}
}

func TestCreate_OrderScopedToSiblings(t *testing.T) {
	db := openTestDB(t)
	nodeA := seedNode(t, db, "nd-aaaaaaaa")
	nodeB := seedNode(t, db, "nd-bbbbbbbb")

	if _, err := Create(db, CreateOpts{NodeID: nodeA, Description: "A1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := Create(db, CreateOpts{NodeID: nodeB, Description: "B1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.DisplayOrder != 0 {
		t.Errorf("first sibling on node B got order %d, want 0", b.DisplayOrder)
	}
}

func TestCreate_TargetValueDefault(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111")

	o, err := Create(db, CreateOpts{NodeID: nodeID, Description: "x"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if o.TargetValue != 100 {
		t.Errorf("target value = %v, want 100 default", o.TargetValue)
	}
	if o.CurrentValue != 0 {
		t.Errorf("current value = %v, want 0", o.CurrentValue)
	}
}

func TestUpdateOrder_Verbatim(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111")

	o, err := Create(db, CreateOpts{NodeID: nodeID, Description: "x"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := UpdateOrder(db, o.ID, 42)
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if got.DisplayOrder != 42 {
		t.Errorf("display_order = %d, want 42 with no renormalization", got.DisplayOrder)
	}
}

func TestList_Filters(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111")
	periodID := seedPeriod(t, db, nodeID, "pd-11111111")

	if _, err := Create(db, CreateOpts{NodeID: nodeID, Description: "direct"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := Create(db, CreateOpts{PeriodID: periodID, Description: "grouped"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byNode, err := List(db, ListFilters{NodeID: nodeID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byNode) != 1 || byNode[0].Description != "direct" {
		t.Errorf("node filter returned %d objectives", len(byNode))
	}

	byPeriod, err := List(db, ListFilters{PeriodID: periodID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byPeriod) != 1 || byPeriod[0].Description != "grouped" {
		t.Errorf("period filter returned %d objectives", len(byPeriod))
	}
}

func TestDelete_Cascades(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111")

	o, err := Create(db, CreateOpts{NodeID: nodeID, Description: "x"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := CreateKeyResult(db, o.ID, KeyResultOpts{Description: "kr"}); err != nil {
		t.Fatalf("CreateKeyResult: %v", err)
	}
	tk := models.Task{ID: "tk-11111111", ObjectiveID: o.ID, Title: "t", Status: "Todo"}
	if err := db.Create(&tk).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	cm := models.Comment{ID: "cm-11111111", TaskID: tk.ID, UserName: "a", Content: "c"}
	if err := db.Create(&cm).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	if err := Delete(db, o.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, check := range []struct {
		name  string
		model interface{}
	}{
		{"objective", &models.Objective{}},
		{"key result", &models.KeyResult{}},
		{"task", &models.Task{}},
		{"comment", &models.Comment{}},
	} {
		var count int64
		if err := db.Model(check.model).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", check.name, err)
		}
		if count != 0 {
			t.Errorf("%s rows left after cascade: %d", check.name, count)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := Get(db, "ob-missing0"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
