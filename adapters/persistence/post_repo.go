package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/devconnector/internal/domain/post"
	"github.com/khoahotran/devconnector/pkg/apperror"
	"github.com/khoahotran/devconnector/pkg/logger"
)

type postgresPostRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPostRepo(db *pgxpool.Pool, logger logger.Logger) post.Repository {
	return &postgresPostRepo{db: db, logger: logger}
}

func (r *postgresPostRepo) Save(ctx context.Context, p *post.Post) error {
	query, args, err := psql.Insert("posts").
		Columns("id", "owner_id", "text", "created_at").
		Values(p.ID, p.OwnerID, p.Text, p.CreatedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build post insert", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to save post", err)
	}
	return nil
}

func (r *postgresPostRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("posts").Where(sq.Eq{"owner_id": ownerID}).ToSql()
	if err != nil {
		return 0, apperror.NewInternal("failed to build post count", err)
	}
	var n int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, apperror.NewInternal("failed to count posts", err)
	}
	return n, nil
}

func (r *postgresPostRepo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	query, args, err := psql.Delete("posts").Where(sq.Eq{"owner_id": ownerID}).ToSql()
	if err != nil {
		return 0, apperror.NewInternal("failed to build post delete", err)
	}
	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, apperror.NewInternal("failed to delete posts", err)
	}
	return cmdTag.RowsAffected(), nil
}
