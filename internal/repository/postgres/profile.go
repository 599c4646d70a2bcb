package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amit-tzadok/LDR/internal/model"
)

var _ model.ProfileStore = (*ProfileRepository)(nil)

const profileColumns = `id, name, email, photo_url, couples, active_couple_code, couple_code, created_at, updated_at`

type ProfileRepository struct {
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func scanProfile(row pgx.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.PhotoURL, &p.Couples, &p.ActiveCoupleCode, &p.CoupleCode,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

func nonNilCouples(couples []string) []string {
	if couples == nil {
		return []string{}
	}
	return couples
}

// rowQuerier is satisfied by both the pool and a transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertProfile(ctx context.Context, q rowQuerier, profile model.Profile) (model.Profile, error) {
	query := `INSERT INTO profiles (id, name, email, photo_url, couples, active_couple_code, couple_code)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + profileColumns

	saved, err := scanProfile(q.QueryRow(ctx, query,
		profile.ID, profile.Name, profile.Email, profile.PhotoURL, nonNilCouples(profile.Couples),
		profile.ActiveCoupleCode, profile.CoupleCode,
	))
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return saved, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to get profile by id: %w", err)
	}

	return p, nil
}

func (r *ProfileRepository) UpdateDetails(ctx context.Context, id uuid.UUID, patch model.MemberMetaPatch) (model.Profile, error) {
	query := `UPDATE profiles
			  SET name = COALESCE($2, name),
			      email = COALESCE($3, email),
			      photo_url = COALESCE($4, photo_url),
			      updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + profileColumns

	p, err := scanProfile(r.db.QueryRow(ctx, query, id, patch.Name, patch.Email, patch.PhotoURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return p, nil
}

// upgradedCouples is couples with a legacy-only couple_code folded in.
const upgradedCouples = `(CASE WHEN cardinality(couples) = 0 AND couple_code IS NOT NULL AND couple_code <> ''
			  THEN ARRAY[couple_code] ELSE couples END)`

func (r *ProfileRepository) AddMembership(ctx context.Context, id uuid.UUID, spaceID string) (model.Profile, error) {
	query := `UPDATE profiles
			  SET couples = CASE WHEN $2::text = ANY` + upgradedCouples + ` THEN ` + upgradedCouples + `
			                     ELSE array_append(` + upgradedCouples + `, $2::text) END,
			      active_couple_code = $2::text,
			      updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + profileColumns

	p, err := scanProfile(r.db.QueryRow(ctx, query, id, spaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to add profile membership: %w", err)
	}

	return p, nil
}

func (r *ProfileRepository) SetMemberships(ctx context.Context, id uuid.UUID, m model.Memberships) error {
	const query = `UPDATE profiles
			  SET couples = $2, active_couple_code = $3, couple_code = $4, updated_at = NOW()
			  WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, nonNilCouples(m.Couples), m.ActiveCoupleCode, m.CoupleCode)
	if err != nil {
		return fmt.Errorf("failed to set profile memberships: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
