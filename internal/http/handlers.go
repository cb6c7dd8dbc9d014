package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sujalbistaa/feedhub/internal/auth"
	"github.com/sujalbistaa/feedhub/internal/blob"
	"github.com/sujalbistaa/feedhub/internal/board"
	"github.com/sujalbistaa/feedhub/internal/identity"
	"github.com/sujalbistaa/feedhub/internal/logging"
	"github.com/sujalbistaa/feedhub/internal/models"
	"github.com/sujalbistaa/feedhub/internal/ws"
)

const (
	maxThreadLength = 60
	maxReplyLength  = 200
	maxUploadBytes  = 5 << 20
	rateLimitRPS    = 1.0 / 3.0 // 1 request every 3 seconds
	rateLimitBurst  = 1

	voteCookieName   = "fh_session"
	voteCookieMaxAge = 365 * 24 * 60 * 60
)

// --- Structs for request binding ---

type CreateThreadInput struct {
	Content  string `json:"content" binding:"required,min=1,max=60"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	ImageURL string `json:"imageUrl"`
}

type CreateReplyInput struct {
	Content string `json:"content" binding:"required,min=1,max=200"`
}

type VoteInput struct {
	Type models.LikeType `json:"type" binding:"required,oneof=like dislike"`
}

// Env carries every dependency the handlers need.
type Env struct {
	Threads   *board.ThreadService
	Reactions *board.ReactionService
	Warnings  *board.WarningService
	News      *board.NewsService
	Mod       *board.Moderation
	Admins    *auth.AdminStore
	Blobs     blob.Store
	Hub       *ws.Hub
}

// respondError maps the board error taxonomy onto status codes. Anything
// unrecognised is a persistence-level failure and stays a 500.
func respondError(c *gin.Context, err error) {
	var ve *board.ValidationError
	var nfe *board.NotFoundError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.As(err, &nfe):
		c.JSON(http.StatusNotFound, gin.H{"error": nfe.Error()})
	default:
		logging.Log.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func threadIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread ID"})
		return 0, false
	}
	return uint(id), true
}

// --- Public handlers ---

func (e *Env) GetThreads(c *gin.Context) {
	threads, err := e.Threads.ListActive()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

func (e *Env) CreateThread(c *gin.Context) {
	var input CreateThreadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	thread, err := e.Threads.Submit(input.Content, input.Rating, input.ImageURL, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, thread)
}

func (e *Env) GetReplies(c *gin.Context) {
	threadID, ok := threadIDParam(c)
	if !ok {
		return
	}
	replies, err := e.Threads.ListReplies(threadID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, replies)
}

func (e *Env) CreateReply(c *gin.Context) {
	threadID, ok := threadIDParam(c)
	if !ok {
		return
	}
	var input CreateReplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	// Every public reply gets its own submission identity; it is not the
	// vote identity and not reused across replies.
	author := board.AnonymousAuthor(identity.NewSubmissionID())
	reply, err := e.Threads.SubmitReply(threadID, input.Content, author, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// voteIdentity returns the caller's persistent vote token, minting and
// setting the cookie on first use.
func (e *Env) voteIdentity(c *gin.Context) string {
	if token, err := c.Cookie(voteCookieName); err == nil && token != "" {
		return token
	}
	token := identity.NewVoteID()
	c.SetCookie(voteCookieName, token, voteCookieMaxAge, "/", "", false, true)
	return token
}

func (e *Env) VoteOnThread(c *gin.Context) {
	threadID, ok := threadIDParam(c)
	if !ok {
		return
	}
	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	counts, err := e.Reactions.Cast(threadID, e.voteIdentity(c), input.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (e *Env) GetVotes(c *gin.Context) {
	threadID, ok := threadIDParam(c)
	if !ok {
		return
	}
	counts, err := e.Reactions.Counts(threadID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (e *Env) GetWarningBadge(c *gin.Context) {
	warning, err := e.Warnings.Effective(c.Param("anonymous_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warning": warning})
}

func (e *Env) GetNews(c *gin.Context) {
	items, err := e.News.ListActive(time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// UploadImage resolves an image attachment to a URL before thread
// submission. Size and MIME checks live here, not in the core.
func (e *Env) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be 5MB or smaller"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	if len(data) > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be 5MB or smaller"})
		return
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are allowed"})
		return
	}

	url, err := e.Blobs.Put(data, filepath.Ext(header.Filename))
	if err != nil {
		logging.Log.WithError(err).Error("blob store put failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
