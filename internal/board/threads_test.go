package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sujalbistaa/feedhub/internal/models"
)

func TestSubmitValidation(t *testing.T) {
	svc := NewThreadService(testDB(t), nil)

	t.Run("rating bounds", func(t *testing.T) {
		for _, rating := range []int{1, 2, 3, 4, 5} {
			_, err := svc.Submit("fine", rating, "", "")
			require.NoError(t, err)
		}
		for _, rating := range []int{0, 6, -1, 100} {
			_, err := svc.Submit("fine", rating, "", "")
			require.Error(t, err)
			require.True(t, IsValidation(err))
		}
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.Submit("", 3, "", "")
		require.True(t, IsValidation(err))

		_, err = svc.Submit("   ", 3, "", "")
		require.True(t, IsValidation(err))
	})
}

func TestSubmitAssignsFreshIdentity(t *testing.T) {
	svc := NewThreadService(testDB(t), nil)

	a, err := svc.Submit("first", 4, "", "")
	require.NoError(t, err)
	b, err := svc.Submit("second", 4, "", "")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(a.AnonymousID, "anon_"))
	require.NotEqual(t, a.AnonymousID, b.AnonymousID)
	require.Equal(t, models.ThreadActive, a.Status)
}

func TestSubmitReply(t *testing.T) {
	svc := NewThreadService(testDB(t), nil)

	thread, err := svc.Submit("a thread", 3, "", "")
	require.NoError(t, err)

	t.Run("anonymous author", func(t *testing.T) {
		reply, err := svc.SubmitReply(thread.ID, "hello", AnonymousAuthor("anon_1_x"), "")
		require.NoError(t, err)
		require.NotNil(t, reply.AnonymousID)
		require.Equal(t, "anon_1_x", *reply.AnonymousID)
		require.Nil(t, reply.AdminID)
	})

	t.Run("admin author", func(t *testing.T) {
		reply, err := svc.SubmitReply(thread.ID, "noted", AdminAuthor(7), "")
		require.NoError(t, err)
		require.NotNil(t, reply.AdminID)
		require.Equal(t, uint(7), *reply.AdminID)
		require.Nil(t, reply.AnonymousID)
	})

	t.Run("unknown thread", func(t *testing.T) {
		_, err := svc.SubmitReply(9999, "hello", AnonymousAuthor("anon_1_x"), "")
		require.True(t, IsNotFound(err))
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.SubmitReply(thread.ID, "  ", AnonymousAuthor("anon_1_x"), "")
		require.True(t, IsValidation(err))
	})

	t.Run("zero author", func(t *testing.T) {
		_, err := svc.SubmitReply(thread.ID, "hello", Author{}, "")
		require.True(t, IsValidation(err))
	})

	t.Run("listed oldest first", func(t *testing.T) {
		replies, err := svc.ListReplies(thread.ID)
		require.NoError(t, err)
		require.Len(t, replies, 2)
		require.Equal(t, "hello", replies[0].Content)
	})
}

func TestStatusMachine(t *testing.T) {
	t.Run("archive is idempotent", func(t *testing.T) {
		svc := NewThreadService(testDB(t), nil)
		thread, err := svc.Submit("to archive", 3, "", "")
		require.NoError(t, err)

		require.NoError(t, svc.SetStatus(thread.ID, models.ThreadArchived))
		require.NoError(t, svc.SetStatus(thread.ID, models.ThreadArchived))

		all, err := svc.ListAll()
		require.NoError(t, err)
		require.Equal(t, models.ThreadArchived, all[0].Status)
	})

	t.Run("no transition restores visibility", func(t *testing.T) {
		svc := NewThreadService(testDB(t), nil)
		thread, err := svc.Submit("to delete", 3, "", "")
		require.NoError(t, err)

		require.NoError(t, svc.SetStatus(thread.ID, models.ThreadDeleted))

		err = svc.SetStatus(thread.ID, models.ThreadActive)
		require.True(t, IsValidation(err))
		err = svc.SetStatus(thread.ID, models.ThreadArchived)
		require.True(t, IsValidation(err))

		active, err := svc.ListActive()
		require.NoError(t, err)
		require.Empty(t, active)
	})

	t.Run("archived can still be deleted", func(t *testing.T) {
		svc := NewThreadService(testDB(t), nil)
		thread, err := svc.Submit("escalate", 3, "", "")
		require.NoError(t, err)

		require.NoError(t, svc.SetStatus(thread.ID, models.ThreadArchived))
		require.NoError(t, svc.SetStatus(thread.ID, models.ThreadDeleted))

		err = svc.SetStatus(thread.ID, models.ThreadArchived)
		require.True(t, IsValidation(err))
	})

	t.Run("unknown thread", func(t *testing.T) {
		svc := NewThreadService(testDB(t), nil)
		err := svc.SetStatus(42, models.ThreadArchived)
		require.True(t, IsNotFound(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := NewThreadService(testDB(t), nil)
		thread, err := svc.Submit("x", 3, "", "")
		require.NoError(t, err)
		err = svc.SetStatus(thread.ID, models.ThreadStatus("hidden"))
		require.True(t, IsValidation(err))
	})
}

func TestListingScenario(t *testing.T) {
	pub := &capturePublisher{}
	svc := NewThreadService(testDB(t), pub)

	thread, err := svc.Submit("Great service!", 5, "", "")
	require.NoError(t, err)

	active, err := svc.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "Great service!", active[0].Content)
	require.Equal(t, models.ThreadActive, active[0].Status)

	require.NoError(t, svc.SetStatus(thread.ID, models.ThreadArchived))

	active, err = svc.ListActive()
	require.NoError(t, err)
	require.Empty(t, active)

	all, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, models.ThreadArchived, all[0].Status)

	require.Equal(t, []string{EventThreadCreated, EventThreadUpdated}, pub.types())
}
