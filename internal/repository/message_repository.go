package repository

import (
	"context"
	"sync"
	"time"

	"elitepainters/internal/entity"

	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const messagesCollection = "messages"

type MessageRepository interface {
	Create(ctx context.Context, message entity.Message) (entity.Message, error)
	GetByConversation(ctx context.Context, filter entity.MessageIndexFilter) ([]entity.Message, error)
	CountUnread(ctx context.Context, toId string) (int64, error)
	MarkRead(ctx context.Context, conversationId, toId string) (int64, error)
}

type messageRepository struct {
	db mongo.Database

	// createdAt never goes backwards for messages written through this store.
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func NewMessageRepository(db mongo.Database) MessageRepository {
	return &messageRepository{
		db:  db,
		now: time.Now,
	}
}

// stamp returns the next id and createdAt. BSON dates hold milliseconds, so
// the time is truncated before the comparison. Ids are drawn under the same
// lock, which keeps (createdAt, _id) in stamp order when createdAt ties.
func (r *messageRepository) stamp() (string, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.now().UTC().Truncate(time.Millisecond)
	if t.Before(r.last) {
		t = r.last
	}
	r.last = t
	return ulid.Make().String(), t
}

func (r *messageRepository) Create(ctx context.Context, message entity.Message) (entity.Message, error) {
	collection := r.db.Collection(messagesCollection)

	message.Id, message.CreatedAt = r.stamp()
	message.Read = false

	_, err := collection.InsertOne(ctx, message)
	if err != nil {
		return entity.Message{}, err
	}

	return message, nil
}

// GetByConversation returns the conversation oldest first.
func (r *messageRepository) GetByConversation(ctx context.Context, filter entity.MessageIndexFilter) ([]entity.Message, error) {
	collection := r.db.Collection(messagesCollection)

	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}
	opts.SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := collection.Find(ctx, bson.M{"conversationId": filter.ConversationId}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := make([]entity.Message, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, toId string) (int64, error) {
	collection := r.db.Collection(messagesCollection)
	filter := bson.M{
		"toId": toId,
		"read": false,
	}

	return collection.CountDocuments(ctx, filter)
}

// MarkRead flags every unread message of the conversation addressed to toId
// and returns how many changed.
func (r *messageRepository) MarkRead(ctx context.Context, conversationId, toId string) (int64, error) {
	collection := r.db.Collection(messagesCollection)
	filter := bson.M{
		"conversationId": conversationId,
		"toId":           toId,
		"read":           false,
	}
	update := bson.M{
		"$set": bson.M{
			"read": true,
		},
	}

	result, err := collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}

	return result.ModifiedCount, nil
}
