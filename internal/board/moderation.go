package board

import (
	"github.com/sujalbistaa/feedhub/internal/logging"
	"github.com/sujalbistaa/feedhub/internal/models"
)

// Moderation bundles the admin-authority operations. The caller supplies an
// already-authenticated admin id; this layer never checks credentials
// itself. Every action is fire-and-forget past the persistence call: a
// failed listing refresh downstream does not roll anything back.
type Moderation struct {
	threads  *ThreadService
	warnings *WarningService
}

func NewModeration(threads *ThreadService, warnings *WarningService) *Moderation {
	return &Moderation{threads: threads, warnings: warnings}
}

// Archive moves a thread out of the public listing while keeping it
// readable in the audit view. Repeat calls are no-ops.
func (m *Moderation) Archive(threadID uint) error {
	return m.threads.SetStatus(threadID, models.ThreadArchived)
}

// Remove tombstones a thread. The record stays for audit; nothing restores
// its visibility afterwards.
func (m *Moderation) Remove(threadID uint) error {
	return m.threads.SetStatus(threadID, models.ThreadDeleted)
}

// ReplyAsAdmin posts a moderator reply on the thread.
func (m *Moderation) ReplyAsAdmin(threadID uint, content string, adminID uint) (models.Reply, error) {
	reply, err := m.threads.SubmitReply(threadID, content, AdminAuthor(adminID), "")
	if err != nil {
		return models.Reply{}, err
	}
	logging.Log.WithFields(map[string]any{
		"thread_id": threadID,
		"admin_id":  adminID,
	}).Info("admin reply posted")
	return reply, nil
}

// Warn issues a warning against an anonymous identity.
func (m *Moderation) Warn(target string, level models.WarningLevel, reason string, ctx WarningContext, adminID uint) (models.UserWarning, error) {
	warning, err := m.warnings.Issue(target, level, reason, ctx, &adminID)
	if err != nil {
		return models.UserWarning{}, err
	}
	logging.Log.WithFields(map[string]any{
		"anonymous_id": target,
		"level":        level,
		"admin_id":     adminID,
	}).Info("user warning issued")
	return warning, nil
}
