package repository

import (
	"context"
	"encoding/json"
	"errors"

	"devconnect/internal/database"
	"devconnect/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `
	id, user_id,
	COALESCE(company, ''), COALESCE(website, ''), COALESCE(location, ''),
	COALESCE(status, ''), skills, COALESCE(bio, ''), COALESCE(github_username, ''),
	social, experience, education, created_at, updated_at`

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// Upsert is a single conditional statement keyed by user id, so two
// concurrent writes for the same user cannot interleave between an existence
// check and the write. Absent patch fields arrive as NULL and leave the
// stored column untouched; social keys are merged into the stored object.
func (r *PostgresProfileRepository) Upsert(ctx context.Context, userID uuid.UUID, p profile.Patch) (profile.Profile, error) {
	socialJSON, err := socialPatchJSON(p.Social)
	if err != nil {
		return profile.Profile{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO profiles (id, user_id, company, website, location, status, skills, bio, github_username, social)
		 VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, '{}'), $8, $9, $10::jsonb)
		 ON CONFLICT (user_id) DO UPDATE SET
			company = COALESCE($3, profiles.company),
			website = COALESCE($4, profiles.website),
			location = COALESCE($5, profiles.location),
			status = COALESCE($6, profiles.status),
			skills = COALESCE($7, profiles.skills),
			bio = COALESCE($8, profiles.bio),
			github_username = COALESCE($9, profiles.github_username),
			social = profiles.social || $10::jsonb,
			updated_at = now()
		 RETURNING `+profileColumns,
		uuid.New(), userID,
		p.Company, p.Website, p.Location, p.Status, p.Skills, p.Bio, p.GithubUsername,
		socialJSON,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`,
		userID,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) GetWithOwner(ctx context.Context, userID uuid.UUID) (profile.WithOwner, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+withOwnerColumns()+`
		 FROM profiles p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = $1`,
		userID,
	)
	return scanWithOwner(row)
}

func (r *PostgresProfileRepository) ListWithOwners(ctx context.Context) ([]profile.WithOwner, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+withOwnerColumns()+`
		 FROM profiles p
		 JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.WithOwner, 0)
	for rows.Next() {
		po, err := scanWithOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) SetExperience(ctx context.Context, userID uuid.UUID, entries []profile.Experience) error {
	return r.setDocumentColumn(ctx, "experience", userID, entries)
}

func (r *PostgresProfileRepository) SetEducation(ctx context.Context, userID uuid.UUID, entries []profile.Education) error {
	return r.setDocumentColumn(ctx, "education", userID, entries)
}

func (r *PostgresProfileRepository) DeleteWithUser(ctx context.Context, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresProfileRepository) setDocumentColumn(ctx context.Context, column string, userID uuid.UUID, entries any) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	// column is one of two compile-time constants, never user input.
	affected, err := r.db.Exec(ctx,
		`UPDATE profiles SET `+column+` = $2::jsonb, updated_at = now() WHERE user_id = $1`,
		userID, string(b),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func withOwnerColumns() string {
	return `p.id, p.user_id,
	COALESCE(p.company, ''), COALESCE(p.website, ''), COALESCE(p.location, ''),
	COALESCE(p.status, ''), p.skills, COALESCE(p.bio, ''), COALESCE(p.github_username, ''),
	p.social, p.experience, p.education, p.created_at, p.updated_at,
	u.name, u.avatar`
}

func socialPatchJSON(p profile.SocialPatch) (string, error) {
	m := map[string]string{}
	set := func(key string, v *string) {
		if v != nil {
			m[key] = *v
		}
	}
	set("youtube", p.Youtube)
	set("twitter", p.Twitter)
	set("facebook", p.Facebook)
	set("linkedin", p.Linkedin)
	set("instagram", p.Instagram)

	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var (
		p                         profile.Profile
		socialRaw, expRaw, eduRaw []byte
	)
	err := row.Scan(
		&p.ID, &p.UserID,
		&p.Company, &p.Website, &p.Location,
		&p.Status, &p.Skills, &p.Bio, &p.GithubUsername,
		&socialRaw, &expRaw, &eduRaw, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	if err := decodeDocuments(&p, socialRaw, expRaw, eduRaw); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

func scanWithOwner(row database.Row) (profile.WithOwner, error) {
	var (
		po                        profile.WithOwner
		socialRaw, expRaw, eduRaw []byte
	)
	err := row.Scan(
		&po.ID, &po.UserID,
		&po.Company, &po.Website, &po.Location,
		&po.Status, &po.Skills, &po.Bio, &po.GithubUsername,
		&socialRaw, &expRaw, &eduRaw, &po.CreatedAt, &po.UpdatedAt,
		&po.Owner.Name, &po.Owner.Avatar,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.WithOwner{}, profile.ErrNotFound
		}
		return profile.WithOwner{}, err
	}
	if err := decodeDocuments(&po.Profile, socialRaw, expRaw, eduRaw); err != nil {
		return profile.WithOwner{}, err
	}
	po.Owner.ID = po.UserID
	return po, nil
}

func decodeDocuments(p *profile.Profile, socialRaw, expRaw, eduRaw []byte) error {
	if len(socialRaw) > 0 {
		if err := json.Unmarshal(socialRaw, &p.Social); err != nil {
			return err
		}
	}
	p.Experience = make([]profile.Experience, 0)
	if len(expRaw) > 0 {
		if err := json.Unmarshal(expRaw, &p.Experience); err != nil {
			return err
		}
	}
	p.Education = make([]profile.Education, 0)
	if len(eduRaw) > 0 {
		if err := json.Unmarshal(eduRaw, &p.Education); err != nil {
			return err
		}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return nil
}
