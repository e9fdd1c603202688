// Package testutil holds in-memory repositories used by the unit and handler
// tests. They copy documents in and out so callers never share state with the
// store.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/devconnector/internal/domain/post"
	"github.com/khoahotran/devconnector/internal/domain/profile"
	"github.com/khoahotran/devconnector/internal/domain/user"
)

type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]user.User
	profiles map[uuid.UUID]profile.Profile
	posts    map[uuid.UUID]post.Post

	// Calls counts every repository method invocation by name.
	Calls map[string]int
	// Fail makes the named method return the error.
	Fail map[string]error
}

func NewStore() *Store {
	return &Store{
		users:    map[uuid.UUID]user.User{},
		profiles: map[uuid.UUID]profile.Profile{},
		posts:    map[uuid.UUID]post.Post{},
		Calls:    map[string]int{},
		Fail:     map[string]error{},
	}
}

func (s *Store) enter(method string) error {
	s.Calls[method]++
	return s.Fail[method]
}

func (s *Store) AddUser(u user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *Store) ProfileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

func (s *Store) Profiles() profile.Repository { return (*profileRepo)(s) }
func (s *Store) Users() user.Repository       { return (*userRepo)(s) }
func (s *Store) Posts() post.Repository       { return (*postRepo)(s) }

func clone(p profile.Profile) *profile.Profile {
	p.Skills = append([]string{}, p.Skills...)
	p.Experience = append([]profile.Experience{}, p.Experience...)
	p.Education = append([]profile.Education{}, p.Education...)
	if p.User != nil {
		u := *p.User
		p.User = &u
	}
	return &p
}

type profileRepo Store

func (r *profileRepo) withOwner(p profile.Profile) *profile.Profile {
	out := clone(p)
	if u, ok := r.users[p.OwnerID]; ok {
		out.User = &profile.Owner{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
	}
	return out
}

func (r *profileRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).enter("profiles.FindByOwner"); err != nil {
		return nil, err
	}
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return r.withOwner(p), nil
}

func (r *profileRepo) List(_ context.Context) ([]*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).enter("profiles.List"); err != nil {
		return nil, err
	}
	out := make([]*profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, r.withOwner(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *profileRepo) Create(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).enter("profiles.Create"); err != nil {
		return err
	}
	if _, ok := r.profiles[p.OwnerID]; ok {
		return profile.ErrProfileExists
	}
	stored := clone(*p)
	stored.User = nil
	r.profiles[p.OwnerID] = *stored
	return nil
}

func (r *profileRepo) Update(_ context.Context, ownerID uuid.UUID, fields profile.Fields) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).enter("profiles.Update"); err != nil {
		return nil, err
	}
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	updated := clone(p)
	updated.Apply(fields, time.Now().UTC())
	r.profiles[ownerID] = *updated
	return r.withOwner(*updated), nil
}

func (r *profileRepo) Save(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).enter("profiles.Save"); err != nil {
		return err
	}
	if _, ok := r.profiles[p.OwnerID]; !ok {
		return profile.ErrProfileNotFound
	}
	stored := clone(*p)
	stored.User = nil
	r.profiles[p.OwnerID] = *stored
	return nil
}

func (r *profileRepo) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).enter("profiles.DeleteByOwner"); err != nil {
		return err
	}
	delete(r.profiles, ownerID)
	return nil
}

type userRepo Store

func (r *userRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).enter("users.FindByEmail"); err != nil {
		return nil, err
	}
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).enter("users.FindByID"); err != nil {
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).enter("users.Delete"); err != nil {
		return err
	}
	delete(r.users, id)
	return nil
}

type postRepo Store

func (r *postRepo) Save(_ context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).enter("posts.Save"); err != nil {
		return err
	}
	r.posts[p.ID] = *p
	return nil
}

func (r *postRepo) CountByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).enter("posts.CountByOwner"); err != nil {
		return 0, err
	}
	n := 0
	for _, p := range r.posts {
		if p.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *postRepo) DeleteByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).enter("posts.DeleteByOwner"); err != nil {
		return 0, err
	}
	var n int64
	for id, p := range r.posts {
		if p.OwnerID == ownerID {
			delete(r.posts, id)
			n++
		}
	}
	return n, nil
}
