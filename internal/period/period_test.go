package period

import (
	"errors"
	"testing"
	"time"

	"github.com/zulandar/summit/internal/apperr"
	"github.com/zulandar/summit/internal/models"
)

func TestCreate_Validation(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111", "Growth")

	if _, err := Create(db, CreateOpts{NodeID: nodeID}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty alias error = %v, want ErrValidation", err)
	}
	if _, err := Create(db, CreateOpts{NodeID: "nd-missing0", Alias: "Q1"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing node error = %v, want ErrNotFound", err)
	}
}

func TestCreate_AllowsDuplicateAlias(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111", "Growth")

	if _, err := Create(db, CreateOpts{NodeID: nodeID, Alias: "Q1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Direct creation does not enforce alias uniqueness.
	if _, err := Create(db, CreateOpts{NodeID: nodeID, Alias: "Q1"}); err != nil {
		t.Errorf("duplicate alias on direct create: %v", err)
	}
}

func TestUpdate(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111", "Growth")
	p, err := Create(db, CreateOpts{NodeID: nodeID, Alias: "Q1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	alias := "Q1 2026"
	target := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	got, err := Update(db, p.ID, UpdateOpts{Alias: &alias, TargetDate: &target})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Alias != "Q1 2026" {
		t.Errorf("alias = %q, want Q1 2026", got.Alias)
	}
	if got.TargetDate == nil || !got.TargetDate.Equal(target) {
		t.Errorf("target date = %v, want %v", got.TargetDate, target)
	}

	empty := ""
	if _, err := Update(db, p.ID, UpdateOpts{Alias: &empty}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty alias update error = %v, want ErrValidation", err)
	}
}

func TestDelete_DetachesObjectives(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111", "Growth")
	p, err := Create(db, CreateOpts{NodeID: nodeID, Alias: "Q1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	o := models.Objective{ID: "ob-11111111", PeriodID: &p.ID, Description: "Grow signups"}
	if err := db.Create(&o).Error; err != nil {
		t.Fatalf("seed objective: %v", err)
	}

	if err := Delete(db, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var got models.Objective
	if err := db.Where("id = ?", o.ID).First(&got).Error; err != nil {
		t.Fatalf("objective deleted along with period: %v", err)
	}
	if got.PeriodID != nil {
		t.Errorf("period_id = %v, want detached (nil)", *got.PeriodID)
	}

	if err := Delete(db, p.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestListByNode(t *testing.T) {
	db := openTestDB(t)
	nodeA := seedNode(t, db, "nd-aaaaaaaa", "A")
	nodeB := seedNode(t, db, "nd-bbbbbbbb", "B")

	for _, alias := range []string{"Q1", "Q2"} {
		if _, err := Create(db, CreateOpts{NodeID: nodeA, Alias: alias}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := Create(db, CreateOpts{NodeID: nodeB, Alias: "Q1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	periods, err := ListByNode(db, nodeA)
	if err != nil {
		t.Fatalf("ListByNode: %v", err)
	}
	if len(periods) != 2 {
		t.Errorf("period count = %d, want 2", len(periods))
	}
}
