package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector/internal/domain/profile"
	"github.com/khoahotran/devconnector/pkg/apperror"
)

type deleteStep struct {
	name string
	run  func(ctx context.Context, ownerID uuid.UUID) error
}

// DeleteOwn removes the owner's posts, profile and account, in that order.
// The steps are not atomic: the first failure stops the sequence and nothing
// already deleted is restored.
func (uc *ProfileUseCase) DeleteOwn(ctx context.Context, ownerID uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "DeleteOwn")
	defer span.End()

	var githubUsername string
	if p, err := uc.profileRepo.FindByOwner(ctx, ownerID); err == nil {
		githubUsername = p.GitHubUsername
	} else if !errors.Is(err, profile.ErrProfileNotFound) {
		span.RecordError(err)
		return err
	}

	steps := []deleteStep{
		{"posts", func(ctx context.Context, id uuid.UUID) error {
			_, err := uc.postRepo.DeleteByOwner(ctx, id)
			return err
		}},
		{"profile", uc.profileRepo.DeleteByOwner},
		{"user", uc.userRepo.Delete},
	}

	done := make([]string, 0, len(steps))
	for _, step := range steps {
		if err := step.run(ctx, ownerID); err != nil {
			span.RecordError(err)
			uc.logger.Error("Account deletion step failed", err,
				zap.String("owner_id", ownerID.String()),
				zap.String("step", step.name),
				zap.Strings("completed", done),
			)
			if len(done) == 0 {
				return apperror.NewInternal(fmt.Sprintf("delete %s failed", step.name), err)
			}
			details := fmt.Sprintf("deleted %s, then delete %s failed", strings.Join(done, ", "), step.name)
			return apperror.NewPartialFailure(details, err)
		}
		done = append(done, step.name)
	}

	uc.logger.Info("Account deleted", zap.String("owner_id", ownerID.String()))
	uc.publish(profile.EventDeleted, &profile.Profile{OwnerID: ownerID, GitHubUsername: githubUsername})
	return nil
}
