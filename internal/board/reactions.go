package board

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sujalbistaa/feedhub/internal/models"
)

// Counts is the aggregate reaction tally for one thread.
type Counts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// ReactionService owns the one-reaction-per-(thread, identity) ledger.
type ReactionService struct {
	db  *gorm.DB
	pub Publisher
}

func NewReactionService(db *gorm.DB, pub Publisher) *ReactionService {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &ReactionService{db: db, pub: pub}
}

// Cast applies toggle semantics for one vote identity on one thread:
// casting the same kind again removes the reaction, a different kind
// replaces it, and a first cast inserts it. After the call the identity
// holds zero or one reaction on the thread. The read-then-write is not
// atomic across callers; the unique (thread_id, anonymous_id) index is the
// backstop and the returned counts are eventually consistent.
func (s *ReactionService) Cast(threadID uint, voteID string, kind models.LikeType) (Counts, error) {
	if voteID == "" {
		return Counts{}, &ValidationError{Field: "anonymous_id", Reason: "must not be empty"}
	}
	if !kind.Valid() {
		return Counts{}, &ValidationError{Field: "like_type", Reason: "must be like or dislike"}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var thread models.Thread
		if err := tx.Where("status = ?", models.ThreadActive).First(&thread, threadID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "thread", ID: threadID}
			}
			return &PersistenceError{Op: "find thread", Err: err}
		}

		var existing models.ThreadLike
		err := tx.
			Where("thread_id = ? AND anonymous_id = ?", threadID, voteID).
			First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.ThreadLike{ThreadID: threadID, AnonymousID: voteID, LikeType: kind}
			if err := tx.Create(&like).Error; err != nil {
				return &PersistenceError{Op: "insert reaction", Err: err}
			}
		case err != nil:
			return &PersistenceError{Op: "find reaction", Err: err}
		case existing.LikeType == kind:
			if err := tx.Delete(&existing).Error; err != nil {
				return &PersistenceError{Op: "delete reaction", Err: err}
			}
		default:
			if err := tx.Model(&existing).Update("like_type", kind).Error; err != nil {
				return &PersistenceError{Op: "update reaction", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return Counts{}, err
	}

	counts, err := s.Counts(threadID)
	if err != nil {
		return Counts{}, err
	}

	s.pub.Publish(Event{Type: EventVote, Data: map[string]any{
		"id":       threadID,
		"likes":    counts.Likes,
		"dislikes": counts.Dislikes,
	}})
	return counts, nil
}

// Counts tallies the thread's reactions by kind.
func (s *ReactionService) Counts(threadID uint) (Counts, error) {
	var counts Counts
	err := s.db.Model(&models.ThreadLike{}).
		Where("thread_id = ? AND like_type = ?", threadID, models.Like).
		Count(&counts.Likes).Error
	if err != nil {
		return Counts{}, &PersistenceError{Op: "count likes", Err: err}
	}
	err = s.db.Model(&models.ThreadLike{}).
		Where("thread_id = ? AND like_type = ?", threadID, models.Dislike).
		Count(&counts.Dislikes).Error
	if err != nil {
		return Counts{}, &PersistenceError{Op: "count dislikes", Err: err}
	}
	return counts, nil
}
