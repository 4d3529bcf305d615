package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/s21platform/skills-messenger/internal/config"
	"github.com/s21platform/skills-messenger/internal/model"
)

var messageColumns = []string{
	"id",
	"conversation_id",
	"sender_id",
	"receiver_id",
	"content",
	"message_type",
	"attachments",
	"related_skill_id",
	"is_read",
	"read_at",
	"is_seen",
	"seen_at",
	"created_at",
	"updated_at",
}

type txKey struct{}

type querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type Repository struct {
	connection *sqlx.DB
}

func New(cfg *config.Config) *Repository {
	conStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.Host, cfg.Postgres.Port)

	conn, err := sqlx.Connect("postgres", conStr)
	if err != nil {
		log.Fatal("error connect: ", err)
	}

	return &Repository{
		connection: conn,
	}
}

func NewFromDB(conn *sqlx.DB) *Repository {
	return &Repository{connection: conn}
}

func (r *Repository) Close() {
	_ = r.connection.Close()
}

// Chk returns the transaction bound to ctx, or the pool when there is none.
func (r *Repository) Chk(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return r.connection
}

func (r *Repository) WithTx(ctx context.Context, cb func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return cb(ctx)
	}

	tx, err := r.connection.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = cb(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *Repository) SaveMessage(ctx context.Context, message *model.Message) error {
	query := sq.Insert("messages").
		Columns(messageColumns...).
		Values(
			message.ID,
			message.ConversationID,
			message.SenderID,
			message.ReceiverID,
			message.Content,
			message.MessageType,
			message.Attachments,
			message.RelatedSkillID,
			message.IsRead,
			message.ReadAt,
			message.IsSeen,
			message.SeenAt,
			message.CreatedAt,
			message.UpdatedAt,
		).
		PlaceholderFormat(sq.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to save message: %v", err)
	}

	return nil
}

func (r *Repository) GetMessage(ctx context.Context, messageID string) (*model.Message, error) {
	query, args, err := sq.Select(messageColumns...).
		From("messages").
		Where(sq.Eq{"id": messageID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var message model.Message
	err = r.Chk(ctx).GetContext(ctx, &message, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: message %s", model.ErrNotFound, messageID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %v", err)
	}

	return &message, nil
}

func (r *Repository) GetConversationMessages(ctx context.Context, conversationID string) (model.MessageList, error) {
	query, args, err := sq.Select(messageColumns...).
		From("messages").
		Where(sq.Eq{"conversation_id": conversationID}).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	messages := model.MessageList{}
	err = r.Chk(ctx).SelectContext(ctx, &messages, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation messages: %v", err)
	}

	return messages, nil
}

func (r *Repository) GetUserMessages(ctx context.Context, userID string) (model.MessageList, error) {
	query, args, err := sq.Select(messageColumns...).
		From("messages").
		Where(sq.Or{
			sq.Eq{"sender_id": userID},
			sq.Eq{"receiver_id": userID},
		}).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	messages := model.MessageList{}
	err = r.Chk(ctx).SelectContext(ctx, &messages, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get user messages: %v", err)
	}

	return messages, nil
}

func (r *Repository) MarkMessageRead(ctx context.Context, messageID string, readAt time.Time) (int64, error) {
	query, args, err := sq.Update("messages").
		Set("is_read", true).
		Set("read_at", readAt).
		Set("updated_at", readAt).
		Where(sq.Eq{"id": messageID, "is_read": false}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	return r.exec(ctx, query, args)
}

func (r *Repository) MarkConversationRead(ctx context.Context, conversationID, receiverID string, readAt time.Time) (int64, error) {
	query, args, err := sq.Update("messages").
		Set("is_read", true).
		Set("read_at", readAt).
		Set("updated_at", readAt).
		Where(sq.Eq{
			"conversation_id": conversationID,
			"receiver_id":     receiverID,
			"is_read":         false,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	return r.exec(ctx, query, args)
}

func (r *Repository) MarkConversationSeen(ctx context.Context, conversationID, receiverID string, seenAt time.Time) (int64, error) {
	query, args, err := sq.Update("messages").
		Set("is_seen", true).
		Set("seen_at", seenAt).
		Set("updated_at", seenAt).
		Where(sq.Eq{
			"conversation_id": conversationID,
			"receiver_id":     receiverID,
			"is_seen":         false,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	return r.exec(ctx, query, args)
}

func (r *Repository) DeleteMessage(ctx context.Context, messageID string) error {
	query, args, err := sq.Delete("messages").
		Where(sq.Eq{"id": messageID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	affected, err := r.exec(ctx, query, args)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: message %s", model.ErrNotFound, messageID)
	}

	return nil
}

func (r *Repository) CountUnread(ctx context.Context, userID string) (int64, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("messages").
		Where(sq.Eq{"receiver_id": userID, "is_read": false}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	var count int64
	err = r.Chk(ctx).GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %v", err)
	}

	return count, nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (*model.User, error) {
	query, args, err := sq.Select("id", "nickname", "avatar_url").
		From("users").
		Where(sq.Eq{"id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var user model.User
	err = r.Chk(ctx).GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", model.ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}

	return &user, nil
}

func (r *Repository) GetUsers(ctx context.Context, userIDs []string) ([]model.User, error) {
	if len(userIDs) == 0 {
		return []model.User{}, nil
	}

	query, args, err := sq.Select("id", "nickname", "avatar_url").
		From("users").
		Where(sq.Eq{"id": userIDs}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var users []model.User
	err = r.Chk(ctx).SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %v", err)
	}

	return users, nil
}

func (r *Repository) AddNewUser(ctx context.Context, userID string) error {
	query, args, err := sq.Insert("users").
		Columns("id", "nickname", "avatar_url").
		Values(userID, "", "").
		Suffix("ON CONFLICT (id) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

func (r *Repository) UpdateUserNickname(ctx context.Context, userUUID, newNickname string) error {
	query, args, err := sq.Update("users").
		Set("nickname", newNickname).
		Where(sq.Eq{"id": userUUID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateUserAvatar(ctx context.Context, userUUID, avatarLink string) error {
	query, args, err := sq.Update("users").
		Set("avatar_url", avatarLink).
		Where(sq.Eq{"id": userUUID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) exec(ctx context.Context, query string, args []interface{}) (int64, error) {
	res, err := r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %v", err)
	}

	return affected, nil
}
