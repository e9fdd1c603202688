package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector/internal/application/service"
	"github.com/khoahotran/devconnector/internal/domain/post"
	"github.com/khoahotran/devconnector/internal/domain/profile"
	"github.com/khoahotran/devconnector/internal/domain/user"
	"github.com/khoahotran/devconnector/pkg/apperror"
	"github.com/khoahotran/devconnector/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

type Options struct {
	ListDelay     time.Duration
	LegacyRemoval bool
}

// ProfileUseCase owns every profile operation. Writes are read-then-write with
// no locking: concurrent edits of the same owner's profile are last-write-wins
// and may lose sub-collection updates.
type ProfileUseCase struct {
	profileRepo profile.Repository
	userRepo    user.Repository
	postRepo    post.Repository
	validator   service.Validator
	events      service.ProfileEventPublisher
	opts        Options
	logger      logger.Logger
	now         func() time.Time
}

func NewProfileUseCase(
	profileRepo profile.Repository,
	userRepo user.Repository,
	postRepo post.Repository,
	validator service.Validator,
	events service.ProfileEventPublisher,
	opts Options,
	log logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		postRepo:    postRepo,
		validator:   validator,
		events:      events,
		opts:        opts,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (uc *ProfileUseCase) loadOwn(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		return nil, err
	}
	return p, nil
}

func (uc *ProfileUseCase) GetOwn(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "GetOwn")
	defer span.End()

	p, err := uc.loadOwn(ctx, ownerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return p, nil
}

type UpsertProfileInput struct {
	OwnerID        uuid.UUID
	Company        string
	Website        string
	Bio            string
	Status         string
	Location       string
	GitHubUsername string
	Skills         string
	YouTube        string
	Facebook       string
	Twitter        string
	LinkedIn       string
}

// Fields keeps only the non-empty inputs.
func (in UpsertProfileInput) Fields() profile.Fields {
	present := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	return profile.Fields{
		Company:        present(in.Company),
		Website:        present(in.Website),
		Bio:            present(in.Bio),
		Status:         present(in.Status),
		Location:       present(in.Location),
		GitHubUsername: present(in.GitHubUsername),
		Skills:         profile.ParseSkills(in.Skills),
		YouTube:        present(in.YouTube),
		Facebook:       present(in.Facebook),
		Twitter:        present(in.Twitter),
		LinkedIn:       present(in.LinkedIn),
	}
}

// Upsert updates the owner's profile in place or creates it on first write.
func (uc *ProfileUseCase) Upsert(ctx context.Context, in UpsertProfileInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "Upsert")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", in.OwnerID.String()))

	fields := in.Fields()

	_, err := uc.profileRepo.FindByOwner(ctx, in.OwnerID)
	switch {
	case err == nil:
		return uc.update(ctx, in.OwnerID, fields)
	case !errors.Is(err, profile.ErrProfileNotFound):
		span.RecordError(err)
		return nil, err
	}

	p := profile.New(in.OwnerID, fields, uc.now())
	if err := uc.profileRepo.Create(ctx, p); err != nil {
		if errors.Is(err, profile.ErrProfileExists) {
			uc.logger.Warn("Profile created concurrently, merging instead", zap.String("owner_id", in.OwnerID.String()))
			return uc.update(ctx, in.OwnerID, fields)
		}
		span.RecordError(err)
		return nil, err
	}

	uc.publish(profile.EventUpserted, p)
	return p, nil
}

func (uc *ProfileUseCase) update(ctx context.Context, ownerID uuid.UUID, fields profile.Fields) (*profile.Profile, error) {
	p, err := uc.profileRepo.Update(ctx, ownerID, fields)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		return nil, err
	}
	uc.publish(profile.EventUpserted, p)
	return p, nil
}

// ListAll scans every profile; there is no pagination.
func (uc *ProfileUseCase) ListAll(ctx context.Context) ([]*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "ListAll")
	defer span.End()

	if uc.opts.ListDelay > 0 {
		select {
		case <-time.After(uc.opts.ListDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	profiles, err := uc.profileRepo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return profiles, nil
}

// GetByOwner rejects a malformed owner id before touching the store.
func (uc *ProfileUseCase) GetByOwner(ctx context.Context, rawOwnerID string) (*profile.Profile, error) {
	ownerID, err := uuid.Parse(rawOwnerID)
	if err != nil {
		return nil, apperror.NewInvalidIdentifier("user_id", rawOwnerID)
	}

	ctx, span := tracer.Start(ctx, "GetByOwner")
	defer span.End()

	return uc.loadOwn(ctx, ownerID)
}

func (uc *ProfileUseCase) publish(t profile.EventType, p *profile.Profile) {
	if uc.events == nil {
		return
	}
	evt := profile.Event{
		EventType:      t,
		OwnerID:        p.OwnerID,
		GitHubUsername: p.GitHubUsername,
		OccurredAt:     uc.now(),
	}
	go func() {
		if err := uc.events.PublishProfileEvent(context.Background(), evt); err != nil {
			uc.logger.Error("Failed to publish profile event", err,
				zap.String("event_type", string(evt.EventType)),
				zap.String("owner_id", evt.OwnerID.String()),
			)
		}
	}()
}
