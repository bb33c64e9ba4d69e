package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/platform/obs"
)

// Postgres-backed implementation of the ChatRepository port.
type PostgresChatRepository struct{ DB *sql.DB }

func NewPostgresChatRepository(db *sql.DB) *PostgresChatRepository {
	return &PostgresChatRepository{DB: db}
}

// Append one message to a session transcript.
func (r *PostgresChatRepository) InsertMessage(ctx context.Context, m *domain.ChatMessage) (_ *domain.ChatMessage, err error) {
	defer obs.Time(ctx, "chat.Insert")(&err)

	if r.DB == nil {
		return nil, errors.New("chat repository: DB is nil")
	}

	query := `
	INSERT INTO chat_messages (session_id, user_id, role, content)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at;
	`
	out := *m
	err = r.DB.QueryRowContext(ctx, query, m.SessionID, m.UserID, m.Role, m.Content).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert chat message: %w", err)
	}

	return &out, nil
}

// Return the most recent messages of a session in chronological order.
func (r *PostgresChatRepository) ListMessages(ctx context.Context, sessionID string, limit int) (_ []*domain.ChatMessage, err error) {
	defer obs.Time(ctx, "chat.List")(&err)

	if r.DB == nil {
		return nil, errors.New("chat repository: DB is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	// Newest N selected first, then flipped back to reading order.
	query := `
	SELECT id, session_id, user_id, role, content, created_at
	FROM (
		SELECT id, session_id, user_id, role, content, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	) latest
	ORDER BY created_at ASC, id ASC;
	`
	rows, err := r.DB.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	msgs := make([]*domain.ChatMessage, 0, limit)
	for rows.Next() {
		var m domain.ChatMessage
		var uid sql.NullInt64
		if err := rows.Scan(&m.ID, &m.SessionID, &uid, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("list chat messages: scan row: %w", err)
		}
		if uid.Valid {
			m.UserID = &uid.Int64
		}
		msgs = append(msgs, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list chat messages: row iteration: %w", err)
	}

	return msgs, nil
}
