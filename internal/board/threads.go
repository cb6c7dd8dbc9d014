package board

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sujalbistaa/feedhub/internal/identity"
	"github.com/sujalbistaa/feedhub/internal/logging"
	"github.com/sujalbistaa/feedhub/internal/models"
)

// ThreadService owns threads and replies: submissions, listings and the
// moderation status machine.
type ThreadService struct {
	db  *gorm.DB
	pub Publisher
}

func NewThreadService(db *gorm.DB, pub Publisher) *ThreadService {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &ThreadService{db: db, pub: pub}
}

// Submit creates a new active thread under a fresh submission identity.
// Content length caps are the submission path's job; the store only rejects
// empty content and out-of-range ratings.
func (s *ThreadService) Submit(content string, rating int, imageURL, ip string) (models.Thread, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Thread{}, &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if rating < 1 || rating > 5 {
		return models.Thread{}, &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}

	thread := models.Thread{
		Content:     content,
		Rating:      rating,
		AnonymousID: identity.NewSubmissionID(),
		Status:      models.ThreadActive,
		ImageURL:    imageURL,
		IPAddress:   ip,
	}
	if err := s.db.Create(&thread).Error; err != nil {
		return models.Thread{}, &PersistenceError{Op: "insert thread", Err: err}
	}

	s.pub.Publish(Event{Type: EventThreadCreated, Data: thread})
	return thread, nil
}

// SubmitReply appends a reply to an existing thread. The thread row is
// checked here rather than left to a storage foreign key: the default
// sqlite store does not enforce one.
func (s *ThreadService) SubmitReply(threadID uint, content string, author Author, ip string) (models.Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Reply{}, &ValidationError{Field: "content", Reason: "must not be empty"}
	}

	var thread models.Thread
	if err := s.db.First(&thread, threadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Reply{}, &NotFoundError{Entity: "thread", ID: threadID}
		}
		return models.Reply{}, &PersistenceError{Op: "find thread", Err: err}
	}

	reply := models.Reply{ThreadID: threadID, Content: content, IPAddress: ip}
	if id, ok := author.AdminID(); ok {
		reply.AdminID = &id
	} else if token, ok := author.AnonymousID(); ok {
		reply.AnonymousID = &token
	} else {
		return models.Reply{}, &ValidationError{Field: "author", Reason: "must be anonymous or admin"}
	}

	if err := s.db.Create(&reply).Error; err != nil {
		return models.Reply{}, &PersistenceError{Op: "insert reply", Err: err}
	}

	s.pub.Publish(Event{Type: EventReplyCreated, Data: reply})
	return reply, nil
}

// ListActive returns public threads, newest first.
func (s *ThreadService) ListActive() ([]models.Thread, error) {
	var threads []models.Thread
	err := s.db.
		Where("status = ?", models.ThreadActive).
		Order("created_at desc").
		Find(&threads).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list active threads", Err: err}
	}
	return threads, nil
}

// ListAll returns every thread regardless of status, replies included, for
// the admin audit view. Tombstoned threads show up here and only here.
func (s *ThreadService) ListAll() ([]models.Thread, error) {
	var threads []models.Thread
	err := s.db.
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("replies.created_at asc")
		}).
		Order("created_at desc").
		Find(&threads).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list all threads", Err: err}
	}
	return threads, nil
}

// ListReplies returns a thread's replies, oldest first.
func (s *ThreadService) ListReplies(threadID uint) ([]models.Reply, error) {
	var replies []models.Reply
	err := s.db.
		Where("thread_id = ?", threadID).
		Order("created_at asc").
		Find(&replies).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list replies", Err: err}
	}
	return replies, nil
}

// SetStatus drives the one-directional status machine:
//
//	active -> archived -> deleted
//	active -> deleted
//
// Setting the current status again is a no-op. Any transition back toward
// visibility is rejected, so a deleted thread stays a tombstone.
func (s *ThreadService) SetStatus(threadID uint, status models.ThreadStatus) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Reason: "unknown status"}
	}

	var thread models.Thread
	if err := s.db.First(&thread, threadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "thread", ID: threadID}
		}
		return &PersistenceError{Op: "find thread", Err: err}
	}

	if thread.Status == status {
		return nil
	}
	if !transitionAllowed(thread.Status, status) {
		return &ValidationError{
			Field:  "status",
			Reason: string(thread.Status) + " threads cannot become " + string(status),
		}
	}

	if err := s.db.Model(&thread).Update("status", status).Error; err != nil {
		return &PersistenceError{Op: "update thread status", Err: err}
	}

	logging.Log.WithField("thread_id", threadID).Infof("thread status set to %s", status)
	s.pub.Publish(Event{Type: EventThreadUpdated, Data: thread})
	return nil
}

func transitionAllowed(from, to models.ThreadStatus) bool {
	switch from {
	case models.ThreadActive:
		return to == models.ThreadArchived || to == models.ThreadDeleted
	case models.ThreadArchived:
		return to == models.ThreadDeleted
	}
	return false
}
