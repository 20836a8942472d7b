package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"proxymint/internal/domain"
)

const defaultEventLimit = 100

// EventRepo stores the append-only observability log.
type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Insert(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	var requestID interface{}
	if e.RequestID != nil {
		requestID = *e.RequestID
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events
		 (id, scope, name, account, from_account, to_account, amount, request_id, token_name, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Scope, e.Name, e.Account.String(), e.From.String(), e.To.String(),
		e.Amount, requestID, e.TokenName, e.Payload)
	return err
}

func (r *EventRepo) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultEventLimit
	}

	query := `SELECT id, scope, name, account, from_account, to_account, amount, request_id, token_name, payload, created_at
	          FROM events WHERE 1=1`
	args := []interface{}{}
	if filter.Scope != "" {
		query += ` AND scope = ?`
		args = append(args, filter.Scope)
	}
	if filter.Name != "" {
		query += ` AND name = ?`
		args = append(args, filter.Name)
	}
	query += ` ORDER BY created_at, id LIMIT ? OFFSET ?`
	args = append(args, limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var account, from, to string
		var requestID sql.NullInt64
		if err := rows.Scan(&e.ID, &e.Scope, &e.Name, &account, &from, &to,
			&e.Amount, &requestID, &e.TokenName, &e.Payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Account = domain.Account(account)
		e.From = domain.Account(from)
		e.To = domain.Account(to)
		if requestID.Valid {
			id := requestID.Int64
			e.RequestID = &id
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
