package objective

import (
	"errors"
	"testing"

	"github.com/zulandar/summit/internal/apperr"
)

func TestCreateKeyResult_AssignsDenseOrder(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111")
	o, err := Create(db, CreateOpts{NodeID: nodeID, Description: "obj"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	descriptions := []string{"Ship v1", "Cut latency", "Raise NPS"}
	for i, d := range descriptions {
		kr, err := CreateKeyResult(db, o.ID, KeyResultOpts{Description: d})
		if err != nil {
			t.Fatalf("CreateKeyResult(%q): %v", d, err)
		}
		if kr.DisplayOrder != i {
			t.Errorf("%q display_order = %d, want %d", d, kr.DisplayOrder, i)
		}
	}
}

func TestCreateKeyResult_DuplicateDescription(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111")
	o, err := Create(db, CreateOpts{NodeID: nodeID, Description: "obj"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := CreateKeyResult(db, o.ID, KeyResultOpts{Description: "Ship v1"}); err != nil {
		t.Fatalf("CreateKeyResult: %v", err)
	}

	// Case and whitespace variants collide.
	for _, dup := range []string{"ship v1  ", "SHIP V1", "  Ship v1"} {
		if _, err := CreateKeyResult(db, o.ID, KeyResultOpts{Description: dup}); !errors.Is(err, apperr.ErrDuplicate) {
			t.Errorf("CreateKeyResult(%q) error = %v, want ErrDuplicate", dup, err)
		}
	}

	// Different objective, same description is fine.
	other, err := Create(db, CreateOpts{NodeID: nodeID, Description: "other obj"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := CreateKeyResult(db, other.ID, KeyResultOpts{Description: "Ship v1"}); err != nil {
		t.Errorf("same description under another objective: %v", err)
	}
}

func TestCreateKeyResult_Validation(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111")
	o, err := Create(db, CreateOpts{NodeID: nodeID, Description: "obj"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := CreateKeyResult(db, o.ID, KeyResultOpts{Description: "   "}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank description error = %v, want ErrValidation", err)
	}
	if _, err := CreateKeyResult(db, "ob-missing0", KeyResultOpts{Description: "x"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing objective error = %v, want ErrNotFound", err)
	}
}

func TestCreateKeyResult_Defaults(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111")
	o, err := Create(db, CreateOpts{NodeID: nodeID, Description: "obj"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	kr, err := CreateKeyResult(db, o.ID, KeyResultOpts{Description: "Ship v1"})
	if err != nil {
		t.Fatalf("CreateKeyResult: %v", err)
	}
	if kr.TargetValue != 100 {
		t.Errorf("target value = %v, want 100 default", kr.TargetValue)
	}
	if kr.CurrentValue != 0 {
		t.Errorf("current value = %v, want 0 default", kr.CurrentValue)
	}
}

func TestUpdateKeyResultOrder_Verbatim(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111")
	o, err := Create(db, CreateOpts{NodeID: nodeID, Description: "obj"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	kr, err := CreateKeyResult(db, o.ID, KeyResultOpts{Description: "Ship v1"})
	if err != nil {
		t.Fatalf("CreateKeyResult: %v", err)
	}

	got, err := UpdateKeyResultOrder(db, kr.ID, 7)
	if err != nil {
		t.Fatalf("UpdateKeyResultOrder: %v", err)
	}
	if got.DisplayOrder != 7 {
		t.Errorf("display_order = %d, want 7", got.DisplayOrder)
	}
}

func TestUpdateKeyResultProgress(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111")
	o, err := Create(db, CreateOpts{NodeID: nodeID, Description: "obj"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	kr, err := CreateKeyResult(db, o.ID, KeyResultOpts{Description: "Ship v1"})
	if err != nil {
		t.Fatalf("CreateKeyResult: %v", err)
	}

	got, err := UpdateKeyResultProgress(db, kr.ID, 60)
	if err != nil {
		t.Fatalf("UpdateKeyResultProgress: %v", err)
	}
	if got.CurrentValue != 60 {
		t.Errorf("current value = %v, want 60", got.CurrentValue)
	}
}

func TestDeleteKeyResult(t *testing.T) {
	db := openTestDB(t)
	nodeID := seedNode(t, db, "nd-11111111")
	o, err := Create(db, CreateOpts{NodeID: nodeID, Description: "obj"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	kr, err := CreateKeyResult(db, o.ID, KeyResultOpts{Description: "Ship v1"})
	if err != nil {
		t.Fatalf("CreateKeyResult: %v", err)
	}

	if err := DeleteKeyResult(db, kr.ID); err != nil {
		t.Fatalf("DeleteKeyResult: %v", err)
	}
	if err := DeleteKeyResult(db, kr.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}
