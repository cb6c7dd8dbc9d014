package board

import (
	"strings"

	"gorm.io/gorm"

	"github.com/sujalbistaa/feedhub/internal/models"
)

// WarningContext optionally pins a warning to the thread or reply that
// provoked it.
type WarningContext struct {
	ThreadID *uint
	ReplyID  *uint
}

// WarningService owns the append-only moderation warnings and resolves the
// single warning that represents an identity's standing.
type WarningService struct {
	db *gorm.DB
}

func NewWarningService(db *gorm.DB) *WarningService {
	return &WarningService{db: db}
}

// Issue appends a warning against the target identity. Prior warnings are
// never touched; an identity accumulates as many as moderators issue.
func (s *WarningService) Issue(target string, level models.WarningLevel, reason string, ctx WarningContext, adminID *uint) (models.UserWarning, error) {
	reason = strings.TrimSpace(reason)
	if target == "" {
		return models.UserWarning{}, &ValidationError{Field: "anonymous_id", Reason: "must not be empty"}
	}
	if reason == "" {
		return models.UserWarning{}, &ValidationError{Field: "reason", Reason: "must not be empty"}
	}
	if !level.Valid() {
		return models.UserWarning{}, &ValidationError{Field: "warning_level", Reason: "must be low, medium or high"}
	}

	warning := models.UserWarning{
		AnonymousID:  target,
		WarningLevel: level,
		Reason:       reason,
		ThreadID:     ctx.ThreadID,
		ReplyID:      ctx.ReplyID,
		AdminID:      adminID,
	}
	if err := s.db.Create(&warning).Error; err != nil {
		return models.UserWarning{}, &PersistenceError{Op: "insert warning", Err: err}
	}
	return warning, nil
}

// Effective returns the warning that stands for the identity: the highest
// severity wins, and among equals the most recent. A later low warning
// never hides an earlier high one. Returns nil when the identity carries
// no warnings.
func (s *WarningService) Effective(target string) (*models.UserWarning, error) {
	all, err := s.EffectiveAll([]string{target})
	if err != nil {
		return nil, err
	}
	if w, ok := all[target]; ok {
		return &w, nil
	}
	return nil, nil
}

// EffectiveAll resolves the effective warning for each of the given
// identities in one query, for badge rendering across a listing.
func (s *WarningService) EffectiveAll(targets []string) (map[string]models.UserWarning, error) {
	result := make(map[string]models.UserWarning)
	if len(targets) == 0 {
		return result, nil
	}

	var warnings []models.UserWarning
	err := s.db.
		Where("anonymous_id IN ?", targets).
		Order("created_at desc").
		Find(&warnings).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list warnings", Err: err}
	}

	// Rows arrive newest first, so the first row seen per identity already
	// wins recency ties; only a strictly higher severity displaces it.
	for _, w := range warnings {
		cur, ok := result[w.AnonymousID]
		if !ok || w.WarningLevel.Rank() > cur.WarningLevel.Rank() {
			result[w.AnonymousID] = w
		}
	}
	return result, nil
}

// List returns every warning ever issued, newest first, for the admin view.
func (s *WarningService) List() ([]models.UserWarning, error) {
	var warnings []models.UserWarning
	if err := s.db.Order("created_at desc").Find(&warnings).Error; err != nil {
		return nil, &PersistenceError{Op: "list warnings", Err: err}
	}
	return warnings, nil
}
