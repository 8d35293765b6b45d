package period

import (
	"fmt"

	"github.com/zulandar/summit/internal/apperr"
	"github.com/zulandar/summit/internal/models"
	"gorm.io/gorm"
)

// ReplicationResult reports the groups created by a replication run.
type ReplicationResult struct {
	CreatedGroups []models.Period `json:"created_groups"`
	Count         int             `json:"count"`
}

// ReplicateOne copies a single period to every other node. A target node
// that already has a period with the same alias is skipped, so re-running
// after a partial failure is safe. The loop is deliberately not wrapped in
// one transaction: each insert is independently idempotent.
func ReplicateOne(db *gorm.DB, groupID string) (*ReplicationResult, error) {
	src, err := Get(db, groupID)
	if err != nil {
		return nil, err
	}

	targets, err := otherNodes(db, src.NodeID)
	if err != nil {
		return nil, err
	}

	result := &ReplicationResult{CreatedGroups: []models.Period{}}
	for _, nodeID := range targets {
		created, err := createIfAbsent(db, nodeID, src)
		if err != nil {
			return nil, err
		}
		if created != nil {
			result.CreatedGroups = append(result.CreatedGroups, *created)
		}
	}
	result.Count = len(result.CreatedGroups)
	return result, nil
}

// ReplicateAll copies every period of a node to every other node, applying
// the same per-(node, alias) skip rule as ReplicateOne.
func ReplicateAll(db *gorm.DB, nodeID string) (*ReplicationResult, error) {
	var count int64
	if err := db.Model(&models.Node{}).Where("id = ?", nodeID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("period: check node %s: %w", nodeID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("period: node %w: %s", apperr.ErrNotFound, nodeID)
	}

	targets, err := otherNodes(db, nodeID)
	if err != nil {
		return nil, err
	}

	groups, err := ListByNode(db, nodeID)
	if err != nil {
		return nil, err
	}

	result := &ReplicationResult{CreatedGroups: []models.Period{}}
	for _, targetID := range targets {
		for i := range groups {
			created, err := createIfAbsent(db, targetID, &groups[i])
			if err != nil {
				return nil, err
			}
			if created != nil {
				result.CreatedGroups = append(result.CreatedGroups, *created)
			}
		}
	}
	result.Count = len(result.CreatedGroups)
	return result, nil
}

// otherNodes returns the IDs of all nodes except srcNodeID, failing when
// there is nowhere to replicate to.
func otherNodes(db *gorm.DB, srcNodeID string) ([]string, error) {
	var ids []string
	if err := db.Model(&models.Node{}).Where("id <> ?", srcNodeID).
		Order("created_at ASC").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("period: list target nodes: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("period: %w: no other nodes to replicate to", apperr.ErrValidation)
	}
	return ids, nil
}

// createIfAbsent inserts a copy of src on nodeID unless that node already
// has a period with the same alias. Returns nil when skipped.
func createIfAbsent(db *gorm.DB, nodeID string, src *models.Period) (*models.Period, error) {
	var count int64
	if err := db.Model(&models.Period{}).
		Where("node_id = ? AND alias = ?", nodeID, src.Alias).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("period: check alias %q on node %s: %w", src.Alias, nodeID, err)
	}
	if count > 0 {
		return nil, nil
	}

	id, err := models.NewID("pd")
	if err != nil {
		return nil, err
	}
	p := models.Period{
		ID:         id,
		NodeID:     nodeID,
		Alias:      src.Alias,
		TargetDate: src.TargetDate,
	}
	if err := db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("period: replicate %q to node %s: %w", src.Alias, nodeID, err)
	}
	return &p, nil
}
