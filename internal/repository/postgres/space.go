package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amit-tzadok/LDR/internal/model"
)

var _ model.SpaceStore = (*SpaceRepository)(nil)

const spaceColumns = `id, members, pair_invite_code, trio_invite_code, members_meta, custom_name, status,
		next_meet_date, relationship_start, created_by, created_at, updated_at`

type SpaceRepository struct {
	db *Connection
}

func NewSpaceRepository(db *Connection) *SpaceRepository {
	return &SpaceRepository{
		db: db,
	}
}

func scanSpace(row pgx.Row) (model.Space, error) {
	var (
		space  model.Space
		status string
	)
	err := row.Scan(
		&space.ID, &space.Members, &space.PairInviteCode, &space.TrioInviteCode, &space.MembersMeta,
		&space.CustomName, &status, &space.Settings.NextMeetDate, &space.Settings.RelationshipStart,
		&space.CreatedBy, &space.CreatedAt, &space.UpdatedAt,
	)
	if err != nil {
		return model.Space{}, err
	}
	space.Status = model.SpaceStatus(status)
	if space.MembersMeta == nil {
		space.MembersMeta = make(map[uuid.UUID]model.MemberMeta)
	}
	return space, nil
}

func (r *SpaceRepository) Create(ctx context.Context, space model.Space) (model.Space, error) {
	query := `INSERT INTO spaces (id, members, pair_invite_code, trio_invite_code, members_meta, custom_name, status, created_by)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + spaceColumns

	if space.Status == "" {
		space.Status = model.SpaceStatusActive
	}
	if space.MembersMeta == nil {
		space.MembersMeta = make(map[uuid.UUID]model.MemberMeta)
	}

	saved, err := scanSpace(r.db.QueryRow(ctx, query,
		space.ID, space.Members, space.PairInviteCode, space.TrioInviteCode, space.MembersMeta,
		space.CustomName, string(space.Status), space.CreatedBy,
	))
	if err != nil {
		return model.Space{}, fmt.Errorf("failed to create space: %w", err)
	}

	return saved, nil
}

func (r *SpaceRepository) GetByID(ctx context.Context, id string) (model.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE id = $1`

	space, err := scanSpace(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Space{}, model.ErrNotFound
		}
		return model.Space{}, fmt.Errorf("failed to get space by id: %w", err)
	}

	return space, nil
}

func (r *SpaceRepository) GetByInviteCode(ctx context.Context, code string) (model.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces
			  WHERE pair_invite_code = $1 OR trio_invite_code = $1
			  LIMIT 1`

	space, err := scanSpace(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Space{}, model.ErrNotFound
		}
		return model.Space{}, fmt.Errorf("failed to get space by invite code: %w", err)
	}

	return space, nil
}

func (r *SpaceRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces
			  WHERE $1::uuid = ANY(members)
			  ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces by member: %w", err)
	}
	defer rows.Close()

	var spaces []model.Space
	for rows.Next() {
		space, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan space: %w", err)
		}
		spaces = append(spaces, space)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list spaces by member: %w", err)
	}

	return spaces, nil
}

// AddMember is a single conditional UPDATE: concurrent joiners racing for the
// same slot serialize on the row lock and the loser re-evaluates the WHERE
// clause against the winner's member list.
func (r *SpaceRepository) AddMember(ctx context.Context, id string, userID uuid.UUID, meta model.MemberMeta, expectedCount int) (model.Space, error) {
	query := `UPDATE spaces
			  SET members = array_append(members, $2::uuid),
			      members_meta = members_meta || jsonb_build_object($6::text, $3::jsonb),
			      updated_at = NOW()
			  WHERE id = $1
			    AND status = 'active'
			    AND cardinality(members) = $4
			    AND cardinality(members) < $5
			    AND NOT ($2::uuid = ANY(members))
			  RETURNING ` + spaceColumns

	space, err := scanSpace(r.db.QueryRow(ctx, query,
		id, userID, meta, expectedCount, model.MaxSpaceMembers, userID.String(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Space{}, model.ErrMembershipConflict
		}
		return model.Space{}, fmt.Errorf("failed to add space member: %w", err)
	}

	return space, nil
}

func (r *SpaceRepository) RemoveMember(ctx context.Context, id string, userID uuid.UUID) (model.Space, error) {
	query := `UPDATE spaces
			  SET members = array_remove(members, $2::uuid),
			      members_meta = members_meta - $3::text,
			      updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + spaceColumns

	space, err := scanSpace(r.db.QueryRow(ctx, query, id, userID, userID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Space{}, model.ErrNotFound
		}
		return model.Space{}, fmt.Errorf("failed to remove space member: %w", err)
	}

	return space, nil
}

func (r *SpaceRepository) SetCustomName(ctx context.Context, id string, name *string) error {
	const query = `UPDATE spaces SET custom_name = $2, updated_at = NOW() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, name)
	if err != nil {
		return fmt.Errorf("failed to set space name: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *SpaceRepository) SetStatus(ctx context.Context, id string, status model.SpaceStatus) error {
	const query = `UPDATE spaces SET status = $2, updated_at = NOW() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to set space status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *SpaceRepository) PatchMemberMeta(ctx context.Context, id string, userID uuid.UUID, patch model.MemberMetaPatch) error {
	const query = `UPDATE spaces
			  SET members_meta = jsonb_set(
			          members_meta,
			          ARRAY[$4::text],
			          COALESCE(members_meta -> $4::text, jsonb_build_object('id', $4::text)) || $3::jsonb
			      ),
			      updated_at = NOW()
			  WHERE id = $1 AND $2::uuid = ANY(members)`

	cmd, err := r.db.Exec(ctx, query, id, userID, patch, userID.String())
	if err != nil {
		return fmt.Errorf("failed to patch member meta: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *SpaceRepository) ReplaceMembersMeta(ctx context.Context, id string, meta map[uuid.UUID]model.MemberMeta) error {
	const query = `UPDATE spaces SET members_meta = $2::jsonb, updated_at = NOW() WHERE id = $1`

	if meta == nil {
		meta = make(map[uuid.UUID]model.MemberMeta)
	}

	cmd, err := r.db.Exec(ctx, query, id, meta)
	if err != nil {
		return fmt.Errorf("failed to replace members meta: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// UpdateSettings writes only the fields present in patch, so concurrent
// edits of different dates do not overwrite each other.
func (r *SpaceRepository) UpdateSettings(ctx context.Context, id string, patch model.SpaceSettingsPatch) (model.SpaceSettings, error) {
	const query = `UPDATE spaces
			  SET next_meet_date = CASE WHEN $2::bool THEN $3::date ELSE next_meet_date END,
			      relationship_start = CASE WHEN $4::bool THEN $5::date ELSE relationship_start END,
			      updated_at = NOW()
			  WHERE id = $1
			  RETURNING next_meet_date, relationship_start`

	var nextMeet, start *time.Time
	if patch.NextMeetDate != nil {
		nextMeet = patch.NextMeetDate.Date
	}
	if patch.RelationshipStart != nil {
		start = patch.RelationshipStart.Date
	}

	var settings model.SpaceSettings
	err := r.db.QueryRow(ctx, query,
		id, patch.NextMeetDate != nil, nextMeet, patch.RelationshipStart != nil, start,
	).Scan(&settings.NextMeetDate, &settings.RelationshipStart)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SpaceSettings{}, model.ErrNotFound
		}
		return model.SpaceSettings{}, fmt.Errorf("failed to update space settings: %w", err)
	}

	return settings, nil
}
