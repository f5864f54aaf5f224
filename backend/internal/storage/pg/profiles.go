package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/studyhub-dev/studyhub/shared/domain"
	internal_errors "github.com/studyhub-dev/studyhub/shared/errors"
	sharedpg "github.com/studyhub-dev/studyhub/shared/storage/pg"
)

const profileSelect = `
	SELECT p.id, p.user_id, u.name, u.avatar, u.is_admin,
	       p.social, p.courses, p.education, p.experience, p.created_at, p.updated_at
	FROM profiles p
	JOIN users u ON u.id = p.user_id`

var (
	errProfileNotFound = internal_errors.NotFound("Profile not found")
	errProfileExists   = internal_errors.Validation("Profile already exists")
)

type rowScanner interface {
	Scan(dest ...any) error
}

// =========================================================================
// Public Methods
// =========================================================================

func (s *Storage) CreateProfile(ctx context.Context, userId domain.UserId, social domain.Social) (*domain.Profile, error) {
	if !validId(userId) {
		return nil, errUserNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var profile *domain.Profile
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.insertProfile(ctx, tx, userId, social); err != nil {
			return err
		}
		var err error
		profile, err = s.profileBy(ctx, tx, "p.user_id", userId, false)
		return err
	})
	return profile, err
}

func (s *Storage) ProfileByUser(ctx context.Context, userId domain.UserId) (*domain.Profile, error) {
	if !validId(userId) {
		return nil, errProfileNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.profileBy(ctx, s.db, "p.user_id", userId, false)
}

func (s *Storage) ProfileById(ctx context.Context, id domain.ProfileId) (*domain.Profile, error) {
	if !validId(id) {
		return nil, errProfileNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.profileBy(ctx, s.db, "p.id", id, false)
}

func (s *Storage) Profiles(ctx context.Context) ([]domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, profileSelect+" ORDER BY p.created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return profiles, nil
}

// UpdateProfile loads the user's profile under a row lock, lets mutate change
// it and writes the document columns back. Returning an error from mutate
// aborts without writing.
func (s *Storage) UpdateProfile(ctx context.Context, userId domain.UserId, mutate func(*domain.Profile) error) (*domain.Profile, error) {
	if !validId(userId) {
		return nil, errProfileNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var profile *domain.Profile
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		profile, err = s.profileBy(ctx, tx, "p.user_id", userId, true)
		if err != nil {
			return err
		}
		if err := mutate(profile); err != nil {
			return err
		}
		return s.writeProfile(ctx, tx, profile)
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Storage) insertProfile(ctx context.Context, q Querier, userId domain.UserId, social domain.Social) error {
	socialJSON, err := json.Marshal(social)
	if err != nil {
		return fmt.Errorf("failed to marshal social links: %w", err)
	}
	_, err = q.ExecContext(ctx,
		"INSERT INTO profiles(id, user_id, social) VALUES($1, $2, $3)",
		newId(), userId, socialJSON)
	if err != nil {
		if sharedpg.IsUniqueViolation(err) {
			return errProfileExists
		}
		if sharedpg.IsForeignKeyViolation(err) {
			return errUserNotFound
		}
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// profileBy fetches one profile by a trusted column name.
func (s *Storage) profileBy(ctx context.Context, q Querier, column string, value string, forUpdate bool) (*domain.Profile, error) {
	query := profileSelect + " WHERE " + column + " = $1"
	if forUpdate {
		query += " FOR UPDATE OF p"
	}
	profile, err := scanProfile(q.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errProfileNotFound
	}
	return profile, err
}

func (s *Storage) writeProfile(ctx context.Context, q Querier, p *domain.Profile) error {
	normalizeProfile(p)
	social, err := json.Marshal(p.Social)
	if err != nil {
		return fmt.Errorf("failed to marshal social links: %w", err)
	}
	courses, err := json.Marshal(p.Courses)
	if err != nil {
		return fmt.Errorf("failed to marshal courses: %w", err)
	}
	education, err := json.Marshal(p.Education)
	if err != nil {
		return fmt.Errorf("failed to marshal education: %w", err)
	}
	experience, err := json.Marshal(p.Experience)
	if err != nil {
		return fmt.Errorf("failed to marshal experience: %w", err)
	}

	err = q.QueryRowContext(ctx, `
		UPDATE profiles
		SET social = $2, courses = $3, education = $4, experience = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		p.Id, social, courses, education, experience).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var (
		p                                      domain.Profile
		social, courses, education, experience []byte
	)
	err := row.Scan(&p.Id, &p.UserId, &p.User.Name, &p.User.Avatar, &p.User.Admin,
		&social, &courses, &education, &experience, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}
	p.User.Id = p.UserId

	for _, doc := range []struct {
		raw  []byte
		into any
	}{
		{social, &p.Social},
		{courses, &p.Courses},
		{education, &p.Education},
		{experience, &p.Experience},
	} {
		if err := json.Unmarshal(doc.raw, doc.into); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile document: %w", err)
		}
	}
	normalizeProfile(&p)
	return &p, nil
}

// normalizeProfile keeps empty lists as [] on the wire and in the database.
func normalizeProfile(p *domain.Profile) {
	if p.Courses == nil {
		p.Courses = []domain.Course{}
	}
	if p.Education == nil {
		p.Education = []domain.Education{}
	}
	if p.Experience == nil {
		p.Experience = []domain.Experience{}
	}
}
