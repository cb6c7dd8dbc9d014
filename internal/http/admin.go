package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sujalbistaa/feedhub/internal/auth"
	"github.com/sujalbistaa/feedhub/internal/board"
	"github.com/sujalbistaa/feedhub/internal/models"
)

type AdminLoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AdminReplyInput struct {
	Content string `json:"content" binding:"required,min=1,max=200"`
	AdminID uint   `json:"adminId" binding:"required"`
}

type WarnInput struct {
	AnonymousID  string              `json:"anonymousId" binding:"required"`
	WarningLevel models.WarningLevel `json:"warningLevel" binding:"required,oneof=low medium high"`
	Reason       string              `json:"reason" binding:"required"`
	ThreadID     *uint               `json:"threadId"`
	ReplyID      *uint               `json:"replyId"`
	AdminID      uint                `json:"adminId" binding:"required"`
}

type CreateNewsInput struct {
	Title        string `json:"title" binding:"required"`
	Content      string `json:"content" binding:"required"`
	DisplayOrder int    `json:"displayOrder"`
}

// AuditThread is one row of the admin listing: the thread with its replies
// plus the effective warning per author, keyed by anonymous id.
type AuditThread struct {
	models.Thread
	Warnings map[string]models.UserWarning `json:"warnings,omitempty"`
}

func (e *Env) AdminLogin(c *gin.Context) {
	var input AdminLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	admin, err := e.Admins.VerifyLogin(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

// AdminListThreads returns every thread in every status for the audit
// view, with each author's effective warning resolved in one batch.
func (e *Env) AdminListThreads(c *gin.Context) {
	threads, err := e.Threads.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}

	seen := make(map[string]bool)
	var ids []string
	for _, t := range threads {
		if !seen[t.AnonymousID] {
			seen[t.AnonymousID] = true
			ids = append(ids, t.AnonymousID)
		}
		for _, r := range t.Replies {
			if r.AnonymousID != nil && !seen[*r.AnonymousID] {
				seen[*r.AnonymousID] = true
				ids = append(ids, *r.AnonymousID)
			}
		}
	}

	effective, err := e.Warnings.EffectiveAll(ids)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]AuditThread, 0, len(threads))
	for _, t := range threads {
		row := AuditThread{Thread: t, Warnings: make(map[string]models.UserWarning)}
		if w, ok := effective[t.AnonymousID]; ok {
			row.Warnings[t.AnonymousID] = w
		}
		for _, r := range t.Replies {
			if r.AnonymousID == nil {
				continue
			}
			if w, ok := effective[*r.AnonymousID]; ok {
				row.Warnings[*r.AnonymousID] = w
			}
		}
		out = append(out, row)
	}
	c.JSON(http.StatusOK, out)
}

func (e *Env) AdminListWarnings(c *gin.Context) {
	warnings, err := e.Warnings.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, warnings)
}

func (e *Env) AdminArchiveThread(c *gin.Context) {
	threadID, ok := threadIDParam(c)
	if !ok {
		return
	}
	if err := e.Mod.Archive(threadID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Thread archived"})
}

func (e *Env) AdminDeleteThread(c *gin.Context) {
	threadID, ok := threadIDParam(c)
	if !ok {
		return
	}
	if err := e.Mod.Remove(threadID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Thread deleted"})
}

func (e *Env) AdminReply(c *gin.Context) {
	threadID, ok := threadIDParam(c)
	if !ok {
		return
	}
	var input AdminReplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	reply, err := e.Mod.ReplyAsAdmin(threadID, input.Content, input.AdminID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

func (e *Env) AdminWarn(c *gin.Context) {
	var input WarnInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	ctx := board.WarningContext{ThreadID: input.ThreadID, ReplyID: input.ReplyID}
	warning, err := e.Mod.Warn(input.AnonymousID, input.WarningLevel, input.Reason, ctx, input.AdminID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, warning)
}

func (e *Env) AdminCreateNews(c *gin.Context) {
	var input CreateNewsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	item, err := e.News.Create(input.Title, input.Content, input.DisplayOrder, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (e *Env) AdminDeleteNews(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news ID"})
		return
	}
	if err := e.News.Deactivate(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "News item deactivated"})
}
