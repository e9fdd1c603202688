package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/devconnector/internal/domain/profile"
	"github.com/khoahotran/devconnector/pkg/apperror"
)

type AddExperienceInput struct {
	OwnerID     uuid.UUID  `json:"-"`
	Title       string     `json:"title" validate:"required" label:"Title"`
	Company     string     `json:"company" validate:"required" label:"Company"`
	Location    string     `json:"location"`
	From        *time.Time `json:"from" validate:"required" label:"From date"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type AddEducationInput struct {
	OwnerID      uuid.UUID  `json:"-"`
	School       string     `json:"school" validate:"required" label:"School"`
	Degree       string     `json:"degree" validate:"required" label:"Degree"`
	FieldOfStudy string     `json:"fieldofstudy" validate:"required" label:"Field of study"`
	From         *time.Time `json:"from" validate:"required" label:"From date"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

func (uc *ProfileUseCase) validate(in any) error {
	if uc.validator == nil {
		return nil
	}
	if violations := uc.validator.Validate(in); len(violations) > 0 {
		return apperror.NewValidation(violations)
	}
	return nil
}

func (uc *ProfileUseCase) AddExperience(ctx context.Context, in AddExperienceInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "AddExperience")
	defer span.End()

	if err := uc.validate(in); err != nil {
		return nil, err
	}
	p, err := uc.loadOwn(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}

	p.AddExperience(profile.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        *in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}, uc.now())

	if err := uc.profileRepo.Save(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return p, nil
}

func (uc *ProfileUseCase) AddEducation(ctx context.Context, in AddEducationInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "AddEducation")
	defer span.End()

	if err := uc.validate(in); err != nil {
		return nil, err
	}
	p, err := uc.loadOwn(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}

	p.AddEducation(profile.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         *in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}, uc.now())

	if err := uc.profileRepo.Save(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return p, nil
}

func (uc *ProfileUseCase) RemoveExperience(ctx context.Context, ownerID uuid.UUID, entryID string) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "RemoveExperience")
	defer span.End()

	p, err := uc.loadOwn(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := p.RemoveExperience(entryID, uc.opts.LegacyRemoval, uc.now()); err != nil {
		return nil, entryError("experience", entryID, err)
	}
	if err := uc.profileRepo.Save(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return p, nil
}

func (uc *ProfileUseCase) RemoveEducation(ctx context.Context, ownerID uuid.UUID, entryID string) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "RemoveEducation")
	defer span.End()

	p, err := uc.loadOwn(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := p.RemoveEducation(entryID, uc.opts.LegacyRemoval, uc.now()); err != nil {
		return nil, entryError("education", entryID, err)
	}
	if err := uc.profileRepo.Save(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return p, nil
}

func entryError(kind, id string, err error) error {
	if errors.Is(err, profile.ErrEntryNotFound) {
		return apperror.NewNotFound(kind, id)
	}
	return err
}
