package meeting

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository/memory"
)

type stubSession struct {
	user *domain.SessionUser
}

func (s *stubSession) CurrentUser() *domain.SessionUser { return s.user }

var fixedNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T, session *stubSession) *UseCase {
	t.Helper()
	n := 0
	return New(memory.NewMeetingRepository(), session, nil,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("m-%d", n)
		}),
	)
}

func TestAddAndUpdateMeeting(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, &stubSession{})

	meeting, err := store.Add(ctx, domain.Meeting{Title: "Kickoff", Date: "2024-01-20", Content: "agenda"})
	require.NoError(t, err)
	assert.Equal(t, "m-1", meeting.ID)
	assert.Equal(t, fixedNow, meeting.CreatedAt)
	assert.NotNil(t, meeting.Comments)
	assert.NotNil(t, meeting.Attendees)

	content := "updated agenda"
	updated, err := store.Update(ctx, meeting.ID, domain.MeetingPatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "updated agenda", updated.Content)
	assert.Equal(t, "Kickoff", updated.Title)

	missing, err := store.Update(ctx, "nope", domain.MeetingPatch{Content: &content})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	session := &stubSession{}
	store := newStore(t, session)
	meeting, err := store.Add(ctx, domain.Meeting{Title: "Retro"})
	require.NoError(t, err)

	comment, err := store.AddComment(ctx, meeting.ID, "first")
	require.NoError(t, err)
	assert.Equal(t, AnonymousAuthor, comment.Author)

	session.user = &domain.SessionUser{ID: "1", Name: "Kim"}
	comment, err = store.AddComment(ctx, meeting.ID, "second")
	require.NoError(t, err)
	assert.Equal(t, "Kim", comment.Author)
	assert.Equal(t, fixedNow, comment.Timestamp)

	blank, err := store.AddComment(ctx, meeting.ID, "  ")
	require.NoError(t, err)
	assert.Nil(t, blank)

	unknown, err := store.AddComment(ctx, "nope", "hello")
	require.NoError(t, err)
	assert.Nil(t, unknown)

	got, err := store.Get(ctx, meeting.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "first", got.Comments[0].Content)
}

func TestSearchAndSeed(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, &stubSession{})
	require.NoError(t, store.SeedDemoData(ctx))

	all, err := store.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byContent, err := store.Search(ctx, "2fa")
	require.NoError(t, err)
	require.Len(t, byContent, 1)
	assert.Equal(t, "3", byContent[0].ID)

	byTitle, err := store.Search(ctx, "디자인 시스템")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "2", byTitle[0].ID)
}

func TestSetAttachmentsAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, &stubSession{})
	meeting, err := store.Add(ctx, domain.Meeting{Title: "Design"})
	require.NoError(t, err)

	updated, err := store.SetAttachments(ctx, meeting.ID, []domain.Attachment{{ID: "a1", Name: "spec.pdf"}})
	require.NoError(t, err)
	require.Len(t, updated.Attachments, 1)

	removed, err := store.Delete(ctx, meeting.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = store.Delete(ctx, meeting.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
