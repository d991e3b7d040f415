package repository

import (
	"context"
	"testing"
	"time"

	"elitepainters/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMessageRepository_StampNeverGoesBackwards(t *testing.T) {
	repo := &messageRepository{}

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := []time.Time{
		base.Add(1500 * time.Microsecond),
		base.Add(time.Second),
		base, // wall clock stepped back
		base.Add(2 * time.Second),
	}
	i := 0
	repo.now = func() time.Time {
		t := clock[i]
		i++
		return t
	}

	var stamps []time.Time
	ids := map[string]bool{}
	for range clock {
		id, at := repo.stamp()
		ids[id] = true
		stamps = append(stamps, at)
	}

	assert.Len(t, ids, len(clock))
	assert.Equal(t, base.Add(time.Millisecond), stamps[0])
	assert.Equal(t, base.Add(time.Second), stamps[2])
	for j := 1; j < len(stamps); j++ {
		assert.False(t, stamps[j].Before(stamps[j-1]))
	}
}

func TestMessageRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id, time and unread", func(mt *mtest.T) {
		repo := NewMessageRepository(*mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		msg, err := repo.Create(context.Background(), entity.Message{
			ConversationId: entity.ConversationKey("c1"),
			FromRole:       entity.RoleCustomer,
			FromId:         "c1",
			ToId:           "a1",
			Body:           "hello",
			Read:           true,
		})
		require.NoError(mt, err)
		assert.NotEmpty(mt, msg.Id)
		assert.False(mt, msg.CreatedAt.IsZero())
		assert.False(mt, msg.Read)
	})

	mt.Run("history is sorted oldest first", func(mt *mtest.T) {
		repo := NewMessageRepository(*mt.DB)
		t0 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.messages", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "01A"}, {Key: "conversationId", Value: "cust_c1__admin"}, {Key: "body", Value: "one"}, {Key: "createdAt", Value: t0}},
			bson.D{{Key: "_id", Value: "01B"}, {Key: "conversationId", Value: "cust_c1__admin"}, {Key: "body", Value: "two"}, {Key: "createdAt", Value: t0}},
		))

		messages, err := repo.GetByConversation(context.Background(), entity.MessageIndexFilter{ConversationId: "cust_c1__admin"})
		require.NoError(mt, err)
		require.Len(mt, messages, 2)
		assert.Equal(mt, "one", messages[0].Body)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		sort := started.Command.Lookup("sort").Document()
		keys, err := sort.Elements()
		require.NoError(mt, err)
		require.Len(mt, keys, 2)
		assert.Equal(mt, "createdAt", keys[0].Key())
		assert.Equal(mt, "_id", keys[1].Key())
	})

	mt.Run("empty history is not nil", func(mt *mtest.T) {
		repo := NewMessageRepository(*mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.messages", mtest.FirstBatch))

		messages, err := repo.GetByConversation(context.Background(), entity.MessageIndexFilter{ConversationId: "cust_c9__admin"})
		require.NoError(mt, err)
		assert.NotNil(mt, messages)
		assert.Empty(mt, messages)
	})

	mt.Run("count unread", func(mt *mtest.T) {
		repo := NewMessageRepository(*mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.messages", mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(3)}},
		))

		n, err := repo.CountUnread(context.Background(), "c1")
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)
	})

	mt.Run("mark read reports modified documents", func(mt *mtest.T) {
		repo := NewMessageRepository(*mt.DB)
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 2}, {Key: "nModified", Value: 2}},
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}},
		)

		n, err := repo.MarkRead(context.Background(), "cust_c1__admin", "c1")
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), n)

		n, err = repo.MarkRead(context.Background(), "cust_c1__admin", "c1")
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})

	mt.Run("store errors surface", func(mt *mtest.T) {
		repo := NewMessageRepository(*mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		_, err := repo.CountUnread(context.Background(), "c1")
		assert.Error(mt, err)
	})
}
