package clientstate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/devconnector/internal/domain/profile"
)

func sampleProfile(status string) *profile.Profile {
	return &profile.Profile{ID: uuid.New(), OwnerID: uuid.New(), Status: status}
}

func TestInitialState(t *testing.T) {
	s := InitialState()

	assert.Nil(t, s.Profile)
	assert.NotNil(t, s.Profiles)
	assert.Empty(t, s.Profiles)
	assert.NotNil(t, s.Repos)
	assert.Empty(t, s.Repos)
	assert.True(t, s.Loading)
	assert.Equal(t, ErrorInfo{}, s.Error)
}

func TestReduce_TransitionTable(t *testing.T) {
	p := sampleProfile("Developer")
	ps := []*profile.Profile{sampleProfile("a"), sampleProfile("b")}
	repos := []Repo{{Name: "one"}, {Name: "two"}}

	base := InitialState()
	base.Repos = []Repo{{Name: "old"}}
	base.Error = ErrorInfo{Msg: "earlier", Status: 500}

	tests := []struct {
		name   string
		action Action
		check  func(t *testing.T, next State)
	}{
		{"get profile", GetProfileAction(p), func(t *testing.T, next State) {
			assert.Same(t, p, next.Profile)
			assert.False(t, next.Loading)
			assert.Equal(t, base.Repos, next.Repos)
			assert.Equal(t, base.Error, next.Error)
		}},
		{"update profile", UpdateProfileAction(p), func(t *testing.T, next State) {
			assert.Same(t, p, next.Profile)
			assert.False(t, next.Loading)
		}},
		{"get profiles", GetProfilesAction(ps), func(t *testing.T, next State) {
			assert.Equal(t, ps, next.Profiles)
			assert.False(t, next.Loading)
		}},
		{"profile error", ProfileErrorAction(ErrorInfo{Msg: "Not Found", Status: 404}), func(t *testing.T, next State) {
			assert.Equal(t, ErrorInfo{Msg: "Not Found", Status: 404}, next.Error)
			assert.False(t, next.Loading)
		}},
		{"clear profile", ClearProfileAction(), func(t *testing.T, next State) {
			assert.Nil(t, next.Profile)
			assert.NotNil(t, next.Repos)
			assert.Empty(t, next.Repos)
			assert.False(t, next.Loading)
			assert.Equal(t, base.Error, next.Error)
		}},
		{"get repos", GetReposAction(repos), func(t *testing.T, next State) {
			assert.Equal(t, repos, next.Repos)
			assert.False(t, next.Loading)
		}},
		{"no repos keeps loading", NoReposAction(), func(t *testing.T, next State) {
			assert.Empty(t, next.Repos)
			assert.True(t, next.Loading)
		}},
		{"unknown action is identity", Action{Type: "SOMETHING_ELSE", Payload: 42}, func(t *testing.T, next State) {
			assert.Equal(t, base, next)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Reduce(base, tt.action))
		})
	}
}

func TestReduce_DoesNotWriteThroughInput(t *testing.T) {
	s := InitialState()
	s.Repos = []Repo{{Name: "keep"}}
	s.Profiles = []*profile.Profile{sampleProfile("keep")}
	before := s

	_ = Reduce(Reduce(s, GetProfilesAction([]*profile.Profile{sampleProfile("new")})), ClearProfileAction())

	assert.Equal(t, before, s)
	assert.Equal(t, "keep", s.Repos[0].Name)
	assert.Equal(t, "keep", s.Profiles[0].Status)
}

func TestReduce_CopiesPayloadContainers(t *testing.T) {
	repos := []Repo{{Name: "a"}}

	next := Reduce(InitialState(), GetReposAction(repos))
	repos[0].Name = "mutated"

	require.Len(t, next.Repos, 1)
	assert.Equal(t, "a", next.Repos[0].Name)
}

func TestReduce_Deterministic(t *testing.T) {
	p := sampleProfile("x")
	actions := []Action{GetProfileAction(p), GetReposAction([]Repo{{Name: "r"}}), NoReposAction(), ClearProfileAction()}

	run := func() State {
		s := InitialState()
		for _, a := range actions {
			s = Reduce(s, a)
		}
		return s
	}

	assert.Equal(t, run(), run())
}

func TestDecodeRepos(t *testing.T) {
	repos, err := DecodeRepos([]byte(`[{"name":"devconnector","html_url":"https://github.com/jane/devconnector","stargazers_count":3}]`))
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "https://github.com/jane/devconnector", repos[0].HTMLURL)
	assert.Equal(t, 3, repos[0].StargazersCount)

	_, err = DecodeRepos([]byte(`{"message":"Not Found"}`))
	assert.Error(t, err)
}
