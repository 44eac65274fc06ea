package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/pubsub"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/repository"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/testutil"
)

func newChatService(db *gorm.DB, publisher *pubsub.Publisher) *ChatService {
	return NewChatService(
		repository.NewMessageRepository(db),
		repository.NewUserRepository(db),
		publisher,
		&config.Config{},
	)
}

func TestChatService_Send_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newChatService(db, nil)
	sender := testutil.TestUser(t, db)
	recipient := testutil.TestUser(t, db)

	req := &dto.SendMessageRequest{
		RecipientID: recipient.ID,
		Content:     "Hey, want to practice speaking this weekend?",
	}

	item, err := service.Send(sender.ID, req)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, sender.ID, item.SenderID)
	assert.Equal(t, recipient.ID, item.RecipientID)
	assert.False(t, item.Read)
}

func TestChatService_Send_ToSelf(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newChatService(db, nil)
	user := testutil.TestUser(t, db)

	_, err := service.Send(user.ID, &dto.SendMessageRequest{
		RecipientID: user.ID,
		Content:     "note to self",
	})
	assert.ErrorIs(t, err, ErrMessageToSelf)
}

func TestChatService_Send_RecipientNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newChatService(db, nil)
	sender := testutil.TestUser(t, db)

	_, err := service.Send(sender.ID, &dto.SendMessageRequest{
		RecipientID: 99999,
		Content:     "hello?",
	})
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestChatService_Send_PublishesToChannel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	// Subscribe before sending so the broadcast is not lost
	sub := client.Subscribe(context.Background(), pubsub.ChannelChatMessages)
	defer sub.Close()
	_, err = sub.Receive(context.Background())
	require.NoError(t, err)

	service := newChatService(db, pubsub.NewPublisher(client))
	sender := testutil.TestUser(t, db)
	recipient := testutil.TestUser(t, db)

	item, err := service.Send(sender.ID, &dto.SendMessageRequest{
		RecipientID: recipient.ID,
		Content:     "did you see my correction?",
	})
	require.NoError(t, err)

	select {
	case raw := <-sub.Channel():
		var msg pubsub.ChatMessage
		require.NoError(t, json.Unmarshal([]byte(raw.Payload), &msg))
		assert.Equal(t, item.ID, msg.MessageID)
		assert.Equal(t, sender.ID, msg.SenderID)
		assert.Equal(t, recipient.ID, msg.RecipientID)
		assert.Equal(t, "did you see my correction?", msg.Content)
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for chat message broadcast")
	}
}

func TestChatService_ListConversation_MarksRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newChatService(db, nil)
	alice := testutil.TestUser(t, db)
	bob := testutil.TestUser(t, db)

	testutil.TestMessage(t, db, bob.ID, alice.ID, "hi alice")
	testutil.TestMessage(t, db, bob.ID, alice.ID, "are you there?")
	testutil.TestMessage(t, db, alice.ID, bob.ID, "yes, sorry!")

	items, total, err := service.ListConversation(alice.ID, bob.ID, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 3)

	// Opening the conversation marks incoming messages as read
	var unread int64
	db.Model(&model.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read = ?", alice.ID, bob.ID, false).
		Count(&unread)
	assert.Equal(t, int64(0), unread)
}

func TestChatService_ListConversations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newChatService(db, nil)
	alice := testutil.TestUser(t, db, testutil.WithUsername("alice"))
	bob := testutil.TestUser(t, db, testutil.WithUsername("bob"))
	carol := testutil.TestUser(t, db, testutil.WithUsername("carol"))

	testutil.TestMessage(t, db, bob.ID, alice.ID, "first from bob")
	testutil.TestMessage(t, db, bob.ID, alice.ID, "second from bob")
	testutil.TestMessage(t, db, alice.ID, carol.ID, "hi carol")

	items, err := service.ListConversations(alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byName := map[string]*dto.ConversationItem{}
	for _, item := range items {
		byName[item.User.Username] = item
	}

	require.Contains(t, byName, "bob")
	assert.Equal(t, int64(2), byName["bob"].UnreadCount)
	assert.Equal(t, "second from bob", byName["bob"].LastMessage.Content)

	require.Contains(t, byName, "carol")
	assert.Equal(t, int64(0), byName["carol"].UnreadCount)
}

func TestChatService_ListConversations_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newChatService(db, nil)
	user := testutil.TestUser(t, db)

	items, err := service.ListConversations(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
