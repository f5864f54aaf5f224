package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/studyhub-dev/studyhub/shared/domain"
	internal_errors "github.com/studyhub-dev/studyhub/shared/errors"
	sharedpg "github.com/studyhub-dev/studyhub/shared/storage/pg"
)

const eventColumns = "id, user_id, name, image, description, event_date, location, related_group_id, created_at"

var errEventNotFound = internal_errors.NotFound("Event not found")

func (s *Storage) CreateEvent(ctx context.Context, event domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	event.Id = newId()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO events(id, user_id, name, image, description, event_date, location, related_group_id)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		event.Id, event.UserId, event.Name, event.Image, event.Description, event.EventDate, event.Location, event.RelatedGroupId,
	).Scan(&event.CreatedOn)
	if err != nil {
		if sharedpg.IsForeignKeyViolation(err) {
			return nil, errGroupNotFound
		}
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}
	return &event, nil
}

func (s *Storage) Event(ctx context.Context, id domain.EventId) (*domain.Event, error) {
	if !validId(id) {
		return nil, errEventNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	event, err := scanEvent(s.db.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM events WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errEventNotFound
	}
	return event, err
}

// Events lists events newest first. A non-empty groupId narrows to events related to that group.
func (s *Storage) Events(ctx context.Context, groupId domain.GroupId) ([]domain.Event, error) {
	if groupId != "" && !validId(groupId) {
		return []domain.Event{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := "SELECT " + eventColumns + " FROM events"
	var args []any
	if groupId != "" {
		query += " WHERE related_group_id = $1"
		args = append(args, groupId)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return events, nil
}

// DeleteEvent removes the event and returns what was deleted so its image can be cleaned up.
func (s *Storage) DeleteEvent(ctx context.Context, id domain.EventId) (*domain.Event, error) {
	if !validId(id) {
		return nil, errEventNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	event, err := scanEvent(s.db.QueryRowContext(ctx, "DELETE FROM events WHERE id = $1 RETURNING "+eventColumns, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errEventNotFound
	}
	return event, err
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var (
		e             domain.Event
		userId, group sql.NullString
	)
	err := row.Scan(&e.Id, &userId, &e.Name, &e.Image, &e.Description, &e.EventDate, &e.Location, &group, &e.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	if userId.Valid {
		e.UserId = &userId.String
	}
	if group.Valid {
		e.RelatedGroupId = &group.String
	}
	return &e, nil
}
