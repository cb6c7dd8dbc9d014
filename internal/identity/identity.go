// Package identity mints the opaque anonymous tokens the board runs on.
//
// Two distinct kinds exist and must not be conflated: a submission identity
// is minted fresh for every thread or reply (authorship tag), while a vote
// identity is minted once per browser and carried back to us on every vote
// (deduplication key). Neither is authenticated and neither can be resolved
// back to a person.
package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewSubmissionID returns a fresh per-submission authorship token.
// Generation never fails.
func NewSubmissionID() string {
	return "anon_" + suffix()
}

// NewVoteID returns a fresh vote-deduplication token. The HTTP layer hands
// it to the client in a long-lived cookie and reuses it on later votes.
func NewVoteID() string {
	return "session_" + suffix()
}

func suffix() string {
	rnd := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), rnd)
}
