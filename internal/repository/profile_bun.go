package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/saeid-a/BindingStudio/internal/models"
	"github.com/uptrace/bun"
)

type profileRecord struct {
	bun.BaseModel `bun:"table:binding_profiles,alias:bp"`

	ID               int64     `bun:"id,pk,autoincrement"`
	Name             string    `bun:"name,notnull"`
	FrontAngle       float64   `bun:"front_angle,notnull"`
	BackAngle        float64   `bun:"back_angle,notnull"`
	StanceWidth      float64   `bun:"stance_width,notnull"`
	Setback          float64   `bun:"setback,notnull"`
	BootSize         float64   `bun:"boot_size,notnull"`
	RiderWeight      float64   `bun:"rider_weight,notnull"`
	RiderHeight      float64   `bun:"rider_height,notnull"`
	BoardType        string    `bun:"board_type,notnull"`
	HighbackHeight   *float64  `bun:"highback_height"`
	BindingStiffness *int      `bun:"binding_stiffness"`
	Stance           string    `bun:"stance,notnull"`
	LastModified     time.Time `bun:"last_modified,notnull"`
}

func (rec profileRecord) toModel() *models.BindingProfile {
	return &models.BindingProfile{
		ID:               rec.ID,
		Name:             rec.Name,
		FrontAngle:       rec.FrontAngle,
		BackAngle:        rec.BackAngle,
		StanceWidth:      rec.StanceWidth,
		Setback:          rec.Setback,
		BootSize:         rec.BootSize,
		RiderWeight:      rec.RiderWeight,
		RiderHeight:      rec.RiderHeight,
		BoardType:        rec.BoardType,
		HighbackHeight:   rec.HighbackHeight,
		BindingStiffness: rec.BindingStiffness,
		Stance:           rec.Stance,
		LastModified:     rec.LastModified,
	}
}

func recordFromModel(profile models.BindingProfile) profileRecord {
	return profileRecord{
		ID:               profile.ID,
		Name:             profile.Name,
		FrontAngle:       profile.FrontAngle,
		BackAngle:        profile.BackAngle,
		StanceWidth:      profile.StanceWidth,
		Setback:          profile.Setback,
		BootSize:         profile.BootSize,
		RiderWeight:      profile.RiderWeight,
		RiderHeight:      profile.RiderHeight,
		BoardType:        profile.BoardType,
		HighbackHeight:   profile.HighbackHeight,
		BindingStiffness: profile.BindingStiffness,
		Stance:           profile.Stance,
		LastModified:     profile.LastModified,
	}
}

// BunProfileRepository is the embedded SQLite store used for single-node
// deployments and local development.
type BunProfileRepository struct {
	db  bun.IDB
	now func() time.Time
}

func NewBunProfileRepository(db bun.IDB) *BunProfileRepository {
	return &BunProfileRepository{db: db, now: time.Now}
}

// CreateSchema creates the profiles table when it does not exist yet.
func (r *BunProfileRepository) CreateSchema(ctx context.Context) error {
	_, err := r.db.NewCreateTable().
		Model((*profileRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// timestamp is the current time at the precision SQLite keeps, so what Create
// and Update return matches what Get reads back.
func (r *BunProfileRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func (r *BunProfileRepository) Create(ctx context.Context, fields models.ProfileFields) (*models.BindingProfile, error) {
	rec := recordFromModel(models.NewBindingProfile(0, fields, r.timestamp()))
	if _, err := r.db.NewInsert().Model(&rec).Exec(ctx); err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

func (r *BunProfileRepository) Get(ctx context.Context, id int64) (*models.BindingProfile, error) {
	rec, err := r.get(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

func (r *BunProfileRepository) List(ctx context.Context) ([]models.BindingProfile, error) {
	var records []profileRecord
	if err := r.db.NewSelect().Model(&records).Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}

	profiles := make([]models.BindingProfile, 0, len(records))
	for _, rec := range records {
		profiles = append(profiles, *rec.toModel())
	}
	return profiles, nil
}

func (r *BunProfileRepository) Update(ctx context.Context, id int64, patch models.ProfilePatch) (*models.BindingProfile, error) {
	var updated *models.BindingProfile
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		rec, err := r.get(ctx, tx, id)
		if err != nil {
			return err
		}

		profile := rec.toModel()
		patch.Apply(profile)
		profile.LastModified = r.timestamp()

		next := recordFromModel(*profile)
		if _, err := tx.NewUpdate().Model(&next).WherePK().Exec(ctx); err != nil {
			return err
		}
		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *BunProfileRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*profileRecord)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *BunProfileRepository) get(ctx context.Context, db bun.IDB, id int64) (*profileRecord, error) {
	rec := new(profileRecord)
	err := db.NewSelect().Model(rec).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}
