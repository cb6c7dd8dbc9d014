package board

// Author tags a reply as either anonymous or admin-authored. The zero value
// is neither; construct through AnonymousAuthor or AdminAuthor so the
// mutual exclusion holds structurally instead of as a runtime check on two
// nullable fields.
type Author struct {
	token   string
	adminID uint
	admin   bool
}

// AnonymousAuthor tags a reply with a per-submission anonymous token.
func AnonymousAuthor(token string) Author {
	return Author{token: token}
}

// AdminAuthor tags a reply as written by the given moderator.
func AdminAuthor(adminID uint) Author {
	return Author{adminID: adminID, admin: true}
}

func (a Author) IsAdmin() bool { return a.admin }

// AnonymousID returns the anonymous token, if this is an anonymous author.
func (a Author) AnonymousID() (string, bool) {
	if a.admin {
		return "", false
	}
	return a.token, a.token != ""
}

// AdminID returns the moderator id, if this is an admin author.
func (a Author) AdminID() (uint, bool) {
	if !a.admin {
		return 0, false
	}
	return a.adminID, true
}
