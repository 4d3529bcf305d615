// Package mongo stores messages and the user directory in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/s21platform/skills-messenger/internal/config"
	"github.com/s21platform/skills-messenger/internal/model"
)

const (
	messagesCollection = "messages"
	usersCollection    = "users"
)

type Repository struct {
	client   *mongo.Client
	messages *mongo.Collection
	users    *mongo.Collection
}

func New(cfg *config.Config) *Repository {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal("error connect: ", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("error ping: ", err)
	}

	repo := NewFromDatabase(client.Database(cfg.Mongo.Database))
	repo.client = client

	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal("error create indexes: ", err)
	}

	return repo
}

func NewFromDatabase(db *mongo.Database) *Repository {
	return &Repository{
		messages: db.Collection(messagesCollection),
		users:    db.Collection(usersCollection),
	}
}

func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.messages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("conversation_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "sender_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("sender_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "receiver_id", Value: 1}, {Key: "is_read", Value: 1}},
			Options: options.Index().SetName("receiver_unread_idx"),
		},
	})
	return err
}

func (r *Repository) Close() {
	if r.client == nil {
		return
	}
	_ = r.client.Disconnect(context.Background())
}

// WithTx runs cb directly. Every write here is a single-document or single-filter
// update, so no multi-document transaction is required.
func (r *Repository) WithTx(ctx context.Context, cb func(ctx context.Context) error) error {
	return cb(ctx)
}

func (r *Repository) SaveMessage(ctx context.Context, message *model.Message) error {
	if message.Attachments == nil {
		message.Attachments = model.Attachments{}
	}

	_, err := r.messages.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to save message: %v", err)
	}

	return nil
}

func (r *Repository) GetMessage(ctx context.Context, messageID string) (*model.Message, error) {
	var message model.Message
	err := r.messages.FindOne(ctx, bson.M{"_id": messageID}).Decode(&message)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: message %s", model.ErrNotFound, messageID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %v", err)
	}

	return &message, nil
}

func (r *Repository) GetConversationMessages(ctx context.Context, conversationID string) (model.MessageList, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	messages, err := r.findMessages(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation messages: %v", err)
	}

	return messages, nil
}

func (r *Repository) GetUserMessages(ctx context.Context, userID string) (model.MessageList, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID},
		bson.M{"receiver_id": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	messages, err := r.findMessages(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get user messages: %v", err)
	}

	return messages, nil
}

func (r *Repository) MarkMessageRead(ctx context.Context, messageID string, readAt time.Time) (int64, error) {
	res, err := r.messages.UpdateOne(ctx,
		bson.M{"_id": messageID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true, "read_at": readAt, "updated_at": readAt}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark message as read: %v", err)
	}

	return res.ModifiedCount, nil
}

func (r *Repository) MarkConversationRead(ctx context.Context, conversationID, receiverID string, readAt time.Time) (int64, error) {
	res, err := r.messages.UpdateMany(ctx,
		bson.M{"conversation_id": conversationID, "receiver_id": receiverID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true, "read_at": readAt, "updated_at": readAt}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark conversation as read: %v", err)
	}

	return res.ModifiedCount, nil
}

func (r *Repository) MarkConversationSeen(ctx context.Context, conversationID, receiverID string, seenAt time.Time) (int64, error) {
	res, err := r.messages.UpdateMany(ctx,
		bson.M{"conversation_id": conversationID, "receiver_id": receiverID, "is_seen": false},
		bson.M{"$set": bson.M{"is_seen": true, "seen_at": seenAt, "updated_at": seenAt}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark conversation as seen: %v", err)
	}

	return res.ModifiedCount, nil
}

func (r *Repository) DeleteMessage(ctx context.Context, messageID string) error {
	res, err := r.messages.DeleteOne(ctx, bson.M{"_id": messageID})
	if err != nil {
		return fmt.Errorf("failed to delete message: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: message %s", model.ErrNotFound, messageID)
	}

	return nil
}

func (r *Repository) CountUnread(ctx context.Context, userID string) (int64, error) {
	count, err := r.messages.CountDocuments(ctx, bson.M{"receiver_id": userID, "is_read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %v", err)
	}

	return count, nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: user %s", model.ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}

	return &user, nil
}

func (r *Repository) GetUsers(ctx context.Context, userIDs []string) ([]model.User, error) {
	users := make([]model.User, 0, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}

	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %v", err)
	}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %v", err)
	}

	return users, nil
}

func (r *Repository) AddNewUser(ctx context.Context, userID string) error {
	_, err := r.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$setOnInsert": bson.M{"nickname": "", "avatar_url": ""}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *Repository) UpdateUserNickname(ctx context.Context, userUUID, newNickname string) error {
	_, err := r.users.UpdateByID(ctx, userUUID, bson.M{"$set": bson.M{"nickname": newNickname}})
	return err
}

func (r *Repository) UpdateUserAvatar(ctx context.Context, userUUID, avatarLink string) error {
	_, err := r.users.UpdateByID(ctx, userUUID, bson.M{"$set": bson.M{"avatar_url": avatarLink}})
	return err
}

func (r *Repository) findMessages(ctx context.Context, filter interface{}, opts *options.FindOptions) (model.MessageList, error) {
	cur, err := r.messages.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	messages := model.MessageList{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}
