package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/studyhub-dev/studyhub/shared/domain"
	internal_errors "github.com/studyhub-dev/studyhub/shared/errors"
	sharedpg "github.com/studyhub-dev/studyhub/shared/storage/pg"
)

// Members are listed in join order.
const groupSelect = `
	SELECT g.id, g.name, g.description, g.created_at,
	       COALESCE(array_agg(m.user_id::text ORDER BY m.joined_at) FILTER (WHERE m.user_id IS NOT NULL), '{}')
	FROM study_groups g
	LEFT JOIN study_group_members m ON m.group_id = g.id`

var (
	errGroupNotFound = internal_errors.NotFound("Study Group not found")
	errAlreadyMember = internal_errors.Validation("User is already a member of the Study Group")
	errNotMember     = internal_errors.Validation("User is not a member of this study group")
)

func (s *Storage) CreateGroup(ctx context.Context, name, description string) (*domain.StudyGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	group := domain.StudyGroup{Id: newId(), Name: name, Description: description, Members: []domain.UserId{}}
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO study_groups(id, name, description) VALUES($1, $2, $3) RETURNING created_at",
		group.Id, name, description).Scan(&group.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert study group: %w", err)
	}
	return &group, nil
}

func (s *Storage) Group(ctx context.Context, id domain.GroupId) (*domain.StudyGroup, error) {
	if !validId(id) {
		return nil, errGroupNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.group(ctx, s.db, id)
}

func (s *Storage) Groups(ctx context.Context) ([]domain.StudyGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.groups(ctx, s.db, groupSelect+" GROUP BY g.id ORDER BY g.created_at DESC")
}

// GroupsByMember lists the groups userId has joined.
func (s *Storage) GroupsByMember(ctx context.Context, userId domain.UserId) ([]domain.StudyGroup, error) {
	if !validId(userId) {
		return []domain.StudyGroup{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.groups(ctx, s.db, groupSelect+`
		WHERE g.id IN (SELECT group_id FROM study_group_members WHERE user_id = $1)
		GROUP BY g.id ORDER BY g.created_at DESC`, userId)
}

// UpdateGroup changes name and description; empty fields keep their stored value.
func (s *Storage) UpdateGroup(ctx context.Context, id domain.GroupId, update domain.StudyGroupUpdate) (*domain.StudyGroup, error) {
	if !validId(id) {
		return nil, errGroupNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var group *domain.StudyGroup
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE study_groups SET
				name = COALESCE(NULLIF($2, ''), name),
				description = COALESCE(NULLIF($3, ''), description)
			WHERE id = $1`, id, update.Name, update.Description)
		if err != nil {
			return fmt.Errorf("failed to update study group: %w", err)
		}
		if err := requireAffected(result, errGroupNotFound); err != nil {
			return err
		}
		group, err = s.group(ctx, tx, id)
		return err
	})
	return group, err
}

func (s *Storage) DeleteGroup(ctx context.Context, id domain.GroupId) error {
	if !validId(id) {
		return errGroupNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, "DELETE FROM study_groups WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete study group: %w", err)
	}
	return requireAffected(result, errGroupNotFound)
}

func (s *Storage) AddMember(ctx context.Context, groupId domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error) {
	if !validId(groupId) {
		return nil, errGroupNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var group *domain.StudyGroup
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO study_group_members(group_id, user_id) VALUES($1, $2)", groupId, userId)
		if err != nil {
			switch {
			case sharedpg.IsUniqueViolation(err):
				return errAlreadyMember
			case sharedpg.IsForeignKeyViolation(err):
				return errGroupNotFound
			}
			return fmt.Errorf("failed to add study group member: %w", err)
		}
		group, err = s.group(ctx, tx, groupId)
		return err
	})
	return group, err
}

func (s *Storage) RemoveMember(ctx context.Context, groupId domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error) {
	if !validId(groupId) {
		return nil, errGroupNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var group *domain.StudyGroup
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"DELETE FROM study_group_members WHERE group_id = $1 AND user_id = $2", groupId, userId)
		if err != nil {
			return fmt.Errorf("failed to remove study group member: %w", err)
		}
		if err := requireAffected(result, errNotMember); err != nil {
			return err
		}
		group, err = s.group(ctx, tx, groupId)
		return err
	})
	return group, err
}

func (s *Storage) group(ctx context.Context, q Querier, id domain.GroupId) (*domain.StudyGroup, error) {
	group, err := scanGroup(q.QueryRowContext(ctx, groupSelect+" WHERE g.id = $1 GROUP BY g.id", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errGroupNotFound
	}
	return group, err
}

func (s *Storage) groups(ctx context.Context, q Querier, query string, args ...any) ([]domain.StudyGroup, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query study groups: %w", err)
	}
	defer rows.Close()

	groups := []domain.StudyGroup{}
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return groups, nil
}

func scanGroup(row rowScanner) (*domain.StudyGroup, error) {
	var (
		group   domain.StudyGroup
		members pq.StringArray
	)
	if err := row.Scan(&group.Id, &group.Name, &group.Description, &group.CreatedAt, &members); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan study group: %w", err)
	}
	group.Members = []domain.UserId(members)
	if group.Members == nil {
		group.Members = []domain.UserId{}
	}
	return &group, nil
}

// requireAffected turns a zero-row write into notFound.
func requireAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
