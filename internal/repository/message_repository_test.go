package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alumni-network/internal/domain"
	"alumni-network/internal/repository"
	"alumni-network/internal/repository/repotest"
)

func TestMessageRepository_ThreadOrderAndReadState(t *testing.T) {
	db := repotest.Open(t)
	repo := repository.NewMessageRepository(db)
	ctx := context.Background()

	alice := repotest.CreateUser(t, db, "Alice", domain.RoleAlumni)
	bob := repotest.CreateUser(t, db, "Bob", domain.RoleStudent)
	carol := repotest.CreateUser(t, db, "Carol", domain.RoleStudent)

	for _, msg := range []*domain.Message{
		{SenderID: alice, ReceiverID: bob, Body: "one"},
		{SenderID: bob, ReceiverID: alice, Body: "two"},
		{SenderID: alice, ReceiverID: bob, Body: "three"},
	} {
		require.NoError(t, repo.Create(ctx, msg))
		assert.NotZero(t, msg.ID)
	}
	require.NoError(t, repo.Create(ctx, &domain.Message{SenderID: carol, ReceiverID: bob, Body: "other thread"}))

	thread, err := repo.ListThread(ctx, bob, alice)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "one", thread[0].Body)
	assert.Equal(t, "two", thread[1].Body)
	assert.Equal(t, "three", thread[2].Body)
	assert.Equal(t, "Alice", thread[0].SenderName)
	assert.Equal(t, "Bob", thread[1].SenderName)

	unread, err := repo.CountUnread(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	changed, err := repo.MarkThreadRead(ctx, bob, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)

	changed, err = repo.MarkThreadRead(ctx, bob, alice)
	require.NoError(t, err)
	assert.Zero(t, changed)

	unread, err = repo.CountUnread(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	aliceUnread, err := repo.CountUnread(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aliceUnread)
}

func TestMessageRepository_MarkReadOnlyForRecipient(t *testing.T) {
	db := repotest.Open(t)
	repo := repository.NewMessageRepository(db)
	ctx := context.Background()

	alice := repotest.CreateUser(t, db, "Alice", domain.RoleAlumni)
	bob := repotest.CreateUser(t, db, "Bob", domain.RoleStudent)

	msg := &domain.Message{SenderID: alice, ReceiverID: bob, Body: "hi"}
	require.NoError(t, repo.Create(ctx, msg))

	updated, err := repo.MarkRead(ctx, msg.ID, alice)
	require.NoError(t, err)
	assert.False(t, updated)

	updated, err = repo.MarkRead(ctx, msg.ID, bob)
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = repo.MarkRead(ctx, msg.ID, bob)
	require.NoError(t, err)
	assert.False(t, updated)

	got, err := repo.GetByID(ctx, msg.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsRead)

	missing, err := repo.GetByID(ctx, msg.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMessageRepository_ListConversations(t *testing.T) {
	db := repotest.Open(t)
	repo := repository.NewMessageRepository(db)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	alice := repotest.CreateUser(t, db, "Alice", domain.RoleAlumni)
	bob := repotest.CreateUser(t, db, "Bob", domain.RoleStudent)
	carol := repotest.CreateUser(t, db, "Carol", domain.RoleStudent)
	repotest.CreateUser(t, db, "Dave", domain.RoleStudent)
	require.NoError(t, users.SetAvatar(ctx, carol, "avatars/carol.png"))

	require.NoError(t, repo.Create(ctx, &domain.Message{SenderID: bob, ReceiverID: alice, Body: "from bob 1"}))
	require.NoError(t, repo.Create(ctx, &domain.Message{SenderID: bob, ReceiverID: alice, Body: "from bob 2"}))
	require.NoError(t, repo.Create(ctx, &domain.Message{SenderID: alice, ReceiverID: carol, Body: "to carol"}))

	convs, err := repo.ListConversations(ctx, alice)
	require.NoError(t, err)
	require.Len(t, convs, 2)

	assert.Equal(t, carol, convs[0].UserID)
	assert.Equal(t, "to carol", convs[0].LastMessage)
	assert.Zero(t, convs[0].UnreadCount)
	require.NotNil(t, convs[0].AvatarURL)
	assert.Equal(t, "avatars/carol.png", *convs[0].AvatarURL)

	assert.Equal(t, bob, convs[1].UserID)
	assert.Equal(t, "from bob 2", convs[1].LastMessage)
	assert.Equal(t, int64(2), convs[1].UnreadCount)
	assert.Equal(t, domain.RoleStudent, convs[1].Role)

	contacts, err := users.ListContacts(ctx, alice)
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "Bob", contacts[0].Name)
	assert.Equal(t, "Dave", contacts[2].Name)
}
