// Package clientstate mirrors API results into client-side state through a
// pure reducer and a small subscribable store.
package clientstate

import (
	"encoding/json"

	"github.com/khoahotran/devconnector/internal/domain/profile"
)

type ActionType string

const (
	GetProfile    ActionType = "GET_PROFILE"
	GetProfiles   ActionType = "GET_PROFILES"
	ProfileError  ActionType = "PROFILE_ERROR"
	ClearProfile  ActionType = "CLEAR_PROFILE"
	UpdateProfile ActionType = "UPDATE_PROFILE"
	GetRepos      ActionType = "GET_REPOS"
	NoRepos       ActionType = "NO_REPOS"
)

type Action struct {
	Type    ActionType
	Payload any
}

// Repo is the subset of a repository descriptor the client renders.
type Repo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	WatchersCount   int    `json:"watchers_count"`
	ForksCount      int    `json:"forks_count"`
}

// DecodeRepos reads the provider listing passed through by the API.
func DecodeRepos(raw json.RawMessage) ([]Repo, error) {
	repos := []Repo{}
	if err := json.Unmarshal(raw, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

type ErrorInfo struct {
	Msg    string `json:"msg,omitempty"`
	Status int    `json:"status,omitempty"`
}

type State struct {
	Profile  *profile.Profile
	Profiles []*profile.Profile
	Repos    []Repo
	Loading  bool
	Error    ErrorInfo
}

func InitialState() State {
	return State{
		Profiles: []*profile.Profile{},
		Repos:    []Repo{},
		Loading:  true,
	}
}

func GetProfileAction(p *profile.Profile) Action { return Action{Type: GetProfile, Payload: p} }

func UpdateProfileAction(p *profile.Profile) Action { return Action{Type: UpdateProfile, Payload: p} }

func GetProfilesAction(ps []*profile.Profile) Action { return Action{Type: GetProfiles, Payload: ps} }

func ProfileErrorAction(e ErrorInfo) Action { return Action{Type: ProfileError, Payload: e} }

func ClearProfileAction() Action { return Action{Type: ClearProfile} }

func GetReposAction(repos []Repo) Action { return Action{Type: GetRepos, Payload: repos} }

func NoReposAction() Action { return Action{Type: NoRepos} }

// Reduce returns the state that follows s after a. It never writes through s:
// containers taken from a payload are copied, the rest are carried over.
// A payload of the wrong type is read as the zero value for that field.
func Reduce(s State, a Action) State {
	next := s
	switch a.Type {
	case GetProfile, UpdateProfile:
		p, _ := a.Payload.(*profile.Profile)
		next.Profile = p
		next.Loading = false
	case GetProfiles:
		ps, _ := a.Payload.([]*profile.Profile)
		next.Profiles = append(make([]*profile.Profile, 0, len(ps)), ps...)
		next.Loading = false
	case ProfileError:
		e, _ := a.Payload.(ErrorInfo)
		next.Error = e
		next.Loading = false
	case ClearProfile:
		next.Profile = nil
		next.Repos = []Repo{}
		next.Loading = false
	case GetRepos:
		repos, _ := a.Payload.([]Repo)
		next.Repos = append(make([]Repo, 0, len(repos)), repos...)
		next.Loading = false
	case NoRepos:
		next.Repos = []Repo{}
	}
	return next
}
