package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector/internal/domain/profile"
	"github.com/khoahotran/devconnector/pkg/apperror"
	"github.com/khoahotran/devconnector/pkg/logger"
)

const pgUniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func selectProfiles() sq.SelectBuilder {
	return psql.Select(
		"p.id", "p.owner_id", "p.company", "p.website", "p.bio", "p.status", "p.location",
		"p.github_username", "p.skills", "p.social", "p.experience", "p.education",
		"p.created_at", "p.updated_at", "u.id", "u.name", "u.avatar",
	).
		From("profiles p").
		LeftJoin("users u ON u.id = p.owner_id")
}

func (r *postgresProfileRepo) scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	var socialBytes, experienceBytes, educationBytes []byte
	var userID *uuid.UUID
	var userName, userAvatar *string

	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Company,
		&p.Website,
		&p.Bio,
		&p.Status,
		&p.Location,
		&p.GitHubUsername,
		&p.Skills,
		&socialBytes,
		&experienceBytes,
		&educationBytes,
		&p.CreatedAt,
		&p.UpdatedAt,
		&userID,
		&userName,
		&userAvatar,
	)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		p.User = &profile.Owner{ID: *userID}
		if userName != nil {
			p.User.Name = *userName
		}
		if userAvatar != nil {
			p.User.Avatar = *userAvatar
		}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}

	// Unmarshal JSONB
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		r.logger.Warn("Failed to unmarshal social", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil || p.Experience == nil {
		if err != nil {
			r.logger.Warn("Failed to unmarshal experience", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		}
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil || p.Education == nil {
		if err != nil {
			r.logger.Warn("Failed to unmarshal education", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		}
		p.Education = []profile.Education{}
	}
	return p, nil
}

func (r *postgresProfileRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query, args, err := selectProfiles().Where(sq.Eq{"p.owner_id": ownerID}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile query", err)
	}

	p, err := r.scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	query, args, err := selectProfiles().OrderBy("p.created_at ASC").ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan profile", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profiles", err)
	}
	return profiles, nil
}

type profileDocument struct {
	social     []byte
	experience []byte
	education  []byte
}

func marshalDocument(p *profile.Profile) (profileDocument, error) {
	var doc profileDocument
	var err error
	if doc.social, err = json.Marshal(p.Social); err != nil {
		return doc, err
	}
	experience := p.Experience
	if experience == nil {
		experience = []profile.Experience{}
	}
	if doc.experience, err = json.Marshal(experience); err != nil {
		return doc, err
	}
	education := p.Education
	if education == nil {
		education = []profile.Education{}
	}
	doc.education, err = json.Marshal(education)
	return doc, err
}

func skillsOrEmpty(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}

func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	doc, err := marshalDocument(p)
	if err != nil {
		return apperror.NewInternal("failed to marshal profile", err)
	}

	query := `
		INSERT INTO profiles (id, owner_id, company, website, bio, status, location, github_username,
			skills, social, experience, education, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.OwnerID, p.Company, p.Website, p.Bio, p.Status, p.Location, p.GitHubUsername,
		skillsOrEmpty(p.Skills), string(doc.social), string(doc.experience), string(doc.education),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return profile.ErrProfileExists
		}
		return apperror.NewInternal("failed to insert profile", err)
	}
	return nil
}

// Update sets only the present fields. Social keys are merged into the stored
// object one by one.
func (r *postgresProfileRepo) Update(ctx context.Context, ownerID uuid.UUID, f profile.Fields) (*profile.Profile, error) {
	builder := psql.Update("profiles").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"owner_id": ownerID}).
		Suffix("RETURNING id")

	columns := []struct {
		name  string
		value *string
	}{
		{"company", f.Company},
		{"website", f.Website},
		{"bio", f.Bio},
		{"status", f.Status},
		{"location", f.Location},
		{"github_username", f.GitHubUsername},
	}
	for _, c := range columns {
		if c.value != nil {
			builder = builder.Set(c.name, *c.value)
		}
	}
	if f.Skills != nil {
		builder = builder.Set("skills", f.Skills)
	}
	if f.HasSocial() {
		patch, err := json.Marshal(f.SocialPatch())
		if err != nil {
			return nil, apperror.NewInternal("failed to marshal social patch", err)
		}
		builder = builder.Set("social", sq.Expr("social || ?::jsonb", string(patch)))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile update", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, apperror.NewInternal("failed to update profile", err)
	}
	return r.FindByOwner(ctx, ownerID)
}

func (r *postgresProfileRepo) Save(ctx context.Context, p *profile.Profile) error {
	doc, err := marshalDocument(p)
	if err != nil {
		return apperror.NewInternal("failed to marshal profile", err)
	}

	query := `
		UPDATE profiles SET
			company = $2, website = $3, bio = $4, status = $5, location = $6, github_username = $7,
			skills = $8, social = $9, experience = $10, education = $11, updated_at = $12
		WHERE owner_id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		p.OwnerID, p.Company, p.Website, p.Bio, p.Status, p.Location, p.GitHubUsername,
		skillsOrEmpty(p.Skills), string(doc.social), string(doc.experience), string(doc.education), p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

func (r *postgresProfileRepo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE owner_id = $1`, ownerID); err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	return nil
}
