package github

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector/internal/application/service"
	"github.com/khoahotran/devconnector/pkg/apperror"
	"github.com/khoahotran/devconnector/pkg/logger"
)

var tracer = otel.Tracer("github_usecase")

// CacheKey is where the listing for username is cached.
func CacheKey(username string) string {
	return "github:repos:" + strings.ToLower(username)
}

type FetchReposUseCase struct {
	provider service.RepositoryProvider
	cache    service.Cache
	ttl      time.Duration
	logger   logger.Logger
}

func NewFetchReposUseCase(provider service.RepositoryProvider, cache service.Cache, ttl time.Duration, log logger.Logger) *FetchReposUseCase {
	return &FetchReposUseCase{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		logger:   log,
	}
}

// Execute returns the provider's listing for username unchanged. Every
// provider failure surfaces as not found.
func (uc *FetchReposUseCase) Execute(ctx context.Context, username string) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()
	span.SetAttributes(attribute.String("username", username))

	if uc.cache != nil {
		var cached json.RawMessage
		hit, err := uc.cache.GetJSON(ctx, CacheKey(username), &cached)
		if err != nil {
			uc.logger.Warn("Repository cache read failed", zap.String("username", username), zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	body, err := uc.provider.ListRepositories(ctx, username)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Fetching repositories failed", err, zap.String("username", username))
		return nil, apperror.NewNotFound("github profile", username)
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, CacheKey(username), body, uc.ttl); err != nil {
			uc.logger.Warn("Repository cache write failed", zap.String("username", username), zap.Error(err))
		}
	}
	return body, nil
}

// Invalidate drops the cached listing for username.
func (uc *FetchReposUseCase) Invalidate(ctx context.Context, username string) error {
	if uc.cache == nil || username == "" {
		return nil
	}
	return uc.cache.Delete(ctx, CacheKey(username))
}
