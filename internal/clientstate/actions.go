package clientstate

import (
	"context"
	"encoding/json"

	"github.com/khoahotran/devconnector/internal/domain/profile"
	"github.com/khoahotran/devconnector/pkg/apiclient"
)

// ProfileAPI is the server surface the action creators call.
type ProfileAPI interface {
	CurrentProfile(ctx context.Context) (*profile.Profile, error)
	Profiles(ctx context.Context) ([]*profile.Profile, error)
	ProfileByOwner(ctx context.Context, ownerID string) (*profile.Profile, error)
	Repositories(ctx context.Context, username string) (json.RawMessage, error)
	SaveProfile(ctx context.Context, form apiclient.ProfileForm) (*profile.Profile, error)
	AddExperience(ctx context.Context, form apiclient.ExperienceForm) (*profile.Profile, error)
	AddEducation(ctx context.Context, form apiclient.EducationForm) (*profile.Profile, error)
	DeleteExperience(ctx context.Context, id string) (*profile.Profile, error)
	DeleteEducation(ctx context.Context, id string) (*profile.Profile, error)
	DeleteAccount(ctx context.Context) error
}

type Dispatcher interface {
	Dispatch(a Action) State
}

// Actions runs an API call and dispatches its outcome. Every method also
// returns the call's error so callers can react beyond the state change.
type Actions struct {
	api   ProfileAPI
	store Dispatcher
}

func NewActions(api ProfileAPI, store Dispatcher) *Actions {
	return &Actions{api: api, store: store}
}

func errorInfo(err error) ErrorInfo {
	if apiErr, ok := apiclient.AsAPIError(err); ok {
		return ErrorInfo{Msg: apiErr.Msg, Status: apiErr.Status}
	}
	return ErrorInfo{Msg: err.Error()}
}

func (a *Actions) fail(err error) error {
	a.store.Dispatch(ProfileErrorAction(errorInfo(err)))
	return err
}

func (a *Actions) LoadCurrentProfile(ctx context.Context) error {
	p, err := a.api.CurrentProfile(ctx)
	if err != nil {
		return a.fail(err)
	}
	a.store.Dispatch(GetProfileAction(p))
	return nil
}

// LoadProfiles clears the single-profile view before listing.
func (a *Actions) LoadProfiles(ctx context.Context) error {
	a.store.Dispatch(ClearProfileAction())
	ps, err := a.api.Profiles(ctx)
	if err != nil {
		return a.fail(err)
	}
	a.store.Dispatch(GetProfilesAction(ps))
	return nil
}

func (a *Actions) LoadProfileByID(ctx context.Context, ownerID string) error {
	p, err := a.api.ProfileByOwner(ctx, ownerID)
	if err != nil {
		return a.fail(err)
	}
	a.store.Dispatch(GetProfileAction(p))
	return nil
}

// LoadRepos never reports a profile error; a failed listing just empties repos.
func (a *Actions) LoadRepos(ctx context.Context, username string) error {
	raw, err := a.api.Repositories(ctx, username)
	if err == nil {
		var repos []Repo
		if repos, err = DecodeRepos(raw); err == nil {
			a.store.Dispatch(GetReposAction(repos))
			return nil
		}
	}
	a.store.Dispatch(NoReposAction())
	return err
}

func (a *Actions) SaveProfile(ctx context.Context, form apiclient.ProfileForm) error {
	p, err := a.api.SaveProfile(ctx, form)
	if err != nil {
		return a.fail(err)
	}
	a.store.Dispatch(GetProfileAction(p))
	return nil
}

func (a *Actions) AddExperience(ctx context.Context, form apiclient.ExperienceForm) error {
	return a.update(a.api.AddExperience(ctx, form))
}

func (a *Actions) AddEducation(ctx context.Context, form apiclient.EducationForm) error {
	return a.update(a.api.AddEducation(ctx, form))
}

func (a *Actions) DeleteExperience(ctx context.Context, id string) error {
	return a.update(a.api.DeleteExperience(ctx, id))
}

func (a *Actions) DeleteEducation(ctx context.Context, id string) error {
	return a.update(a.api.DeleteEducation(ctx, id))
}

func (a *Actions) update(p *profile.Profile, err error) error {
	if err != nil {
		return a.fail(err)
	}
	a.store.Dispatch(UpdateProfileAction(p))
	return nil
}

func (a *Actions) DeleteAccount(ctx context.Context) error {
	if err := a.api.DeleteAccount(ctx); err != nil {
		return a.fail(err)
	}
	a.store.Dispatch(ClearProfileAction())
	return nil
}
