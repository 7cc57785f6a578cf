package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/BindingStudio/internal/models"
)

const profileColumns = `id, name, front_angle, back_angle, stance_width, setback, boot_size,
	rider_weight, rider_height, board_type, highback_height, binding_stiffness, stance, last_modified`

// ProfileRepository stores profiles in PostgreSQL. Ids come from the
// BIGSERIAL column and timestamps from NOW().
type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, fields models.ProfileFields) (*models.BindingProfile, error) {
	query := `
		INSERT INTO binding_profiles (name, front_angle, back_angle, stance_width, setback, boot_size,
			rider_weight, rider_height, board_type, highback_height, binding_stiffness, stance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + profileColumns

	return scanProfile(r.db.QueryRow(ctx, query,
		fields.Name,
		fields.FrontAngle,
		fields.BackAngle,
		fields.StanceWidth,
		fields.Setback,
		fields.BootSize,
		fields.RiderWeight,
		fields.RiderHeight,
		fields.BoardType,
		fields.HighbackHeight,
		fields.BindingStiffness,
		fields.Stance,
	))
}

func (r *ProfileRepository) Get(ctx context.Context, id int64) (*models.BindingProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM binding_profiles WHERE id = $1`
	return scanProfile(r.db.QueryRow(ctx, query, id))
}

func (r *ProfileRepository) List(ctx context.Context) ([]models.BindingProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM binding_profiles ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]models.BindingProfile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *ProfileRepository) Update(ctx context.Context, id int64, patch models.ProfilePatch) (*models.BindingProfile, error) {
	query := `
		UPDATE binding_profiles
		SET name = COALESCE($1, name),
			front_angle = COALESCE($2, front_angle),
			back_angle = COALESCE($3, back_angle),
			stance_width = COALESCE($4, stance_width),
			setback = COALESCE($5, setback),
			boot_size = COALESCE($6, boot_size),
			rider_weight = COALESCE($7, rider_weight),
			rider_height = COALESCE($8, rider_height),
			board_type = COALESCE($9, board_type),
			highback_height = COALESCE($10, highback_height),
			binding_stiffness = COALESCE($11, binding_stiffness),
			stance = COALESCE($12, stance),
			last_modified = NOW()
		WHERE id = $13
		RETURNING ` + profileColumns

	return scanProfile(r.db.QueryRow(ctx, query,
		patch.Name,
		patch.FrontAngle,
		patch.BackAngle,
		patch.StanceWidth,
		patch.Setback,
		patch.BootSize,
		patch.RiderWeight,
		patch.RiderHeight,
		patch.BoardType,
		patch.HighbackHeight,
		patch.BindingStiffness,
		patch.Stance,
		id,
	))
}

func (r *ProfileRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM binding_profiles WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanProfile(row pgx.Row) (*models.BindingProfile, error) {
	var profile models.BindingProfile
	err := row.Scan(
		&profile.ID,
		&profile.Name,
		&profile.FrontAngle,
		&profile.BackAngle,
		&profile.StanceWidth,
		&profile.Setback,
		&profile.BootSize,
		&profile.RiderWeight,
		&profile.RiderHeight,
		&profile.BoardType,
		&profile.HighbackHeight,
		&profile.BindingStiffness,
		&profile.Stance,
		&profile.LastModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}
