package models

import "time"

// ThreadStatus is the moderation state of a thread. Moderation is
// one-directional: a thread never returns to active.
type ThreadStatus string

const (
	ThreadActive   ThreadStatus = "active"
	ThreadArchived ThreadStatus = "archived"
	ThreadDeleted  ThreadStatus = "deleted"
)

// Valid reports whether s is one of the known statuses.
func (s ThreadStatus) Valid() bool {
	return s == ThreadActive || s == ThreadArchived || s == ThreadDeleted
}

// LikeType is the kind of reaction cast on a thread.
type LikeType string

const (
	Like    LikeType = "like"
	Dislike LikeType = "dislike"
)

func (t LikeType) Valid() bool { return t == Like || t == Dislike }

// WarningLevel orders low < medium < high.
type WarningLevel string

const (
	WarningLow    WarningLevel = "low"
	WarningMedium WarningLevel = "medium"
	WarningHigh   WarningLevel = "high"
)

func (l WarningLevel) Valid() bool {
	return l == WarningLow || l == WarningMedium || l == WarningHigh
}

// Rank maps a level to its severity order for comparisons.
func (l WarningLevel) Rank() int {
	switch l {
	case WarningHigh:
		return 3
	case WarningMedium:
		return 2
	case WarningLow:
		return 1
	}
	return 0
}

// Thread is a single piece of rated anonymous feedback. Deleted threads are
// tombstones: excluded from the public listing, kept for audit.
type Thread struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	Content     string       `gorm:"not null" json:"content"`
	Rating      int          `gorm:"not null" json:"rating"`
	AnonymousID string       `gorm:"not null;index" json:"anonymousId"`
	Status      ThreadStatus `gorm:"not null;default:active;index" json:"status"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	IPAddress   string       `json:"-"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Replies     []Reply      `gorm:"foreignKey:ThreadID" json:"replies,omitempty"`
}

// Reply belongs to a thread. Exactly one of AnonymousID and AdminID is set;
// the board package's Author type guarantees that at the API boundary.
type Reply struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ThreadID    uint      `gorm:"not null;index" json:"threadId"`
	Content     string    `gorm:"not null" json:"content"`
	AnonymousID *string   `gorm:"index" json:"anonymousId,omitempty"`
	AdminID     *uint     `json:"adminId,omitempty"`
	IPAddress   string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ThreadLike is one reaction by one vote identity on one thread. The
// composite unique index is the correctness backstop for toggle races.
type ThreadLike struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ThreadID    uint      `gorm:"not null;uniqueIndex:idx_thread_anon" json:"threadId"`
	AnonymousID string    `gorm:"not null;uniqueIndex:idx_thread_anon" json:"anonymousId"`
	LikeType    LikeType  `gorm:"not null" json:"likeType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserWarning is an append-only moderation record against an anonymous
// identity. Warnings are never edited or removed.
type UserWarning struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	AnonymousID  string       `gorm:"not null;index" json:"anonymousId"`
	WarningLevel WarningLevel `gorm:"not null" json:"warningLevel"`
	Reason       string       `gorm:"not null" json:"reason"`
	ThreadID     *uint        `json:"threadId,omitempty"`
	ReplyID      *uint        `json:"replyId,omitempty"`
	AdminID      *uint        `json:"adminId,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// AdminUser is a moderator account. Only the id leaks into public records.
type AdminUser struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Email        string     `gorm:"not null;uniqueIndex" json:"email"`
	Username     string     `gorm:"not null" json:"username"`
	PasswordHash string     `gorm:"not null" json:"-"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// News is a ticker item shown above the public listing.
type News struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Content      string     `gorm:"not null" json:"content"`
	DisplayOrder int        `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool       `gorm:"not null;default:true" json:"-"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&Thread{},
		&Reply{},
		&ThreadLike{},
		&UserWarning{},
		&AdminUser{},
		&News{},
	}
}
