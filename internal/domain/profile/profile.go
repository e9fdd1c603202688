package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists for owner")
	ErrEntryNotFound   = errors.New("entry not found")
)

type Social struct {
	YouTube  string `json:"youtube,omitempty"`
	Facebook string `json:"facebook,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// Owner is the identity attached to a profile on reads.
type Owner struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

type Profile struct {
	ID             uuid.UUID    `json:"id"`
	OwnerID        uuid.UUID    `json:"owner_id"`
	User           *Owner       `json:"user,omitempty"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status"`
	Location       string       `json:"location,omitempty"`
	GitHubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Fields is a partial set of scalar and social fields. A nil pointer (or nil
// Skills) means the field is absent and must be left untouched.
type Fields struct {
	Company        *string
	Website        *string
	Bio            *string
	Status         *string
	Location       *string
	GitHubUsername *string
	Skills         []string

	YouTube  *string
	Facebook *string
	Twitter  *string
	LinkedIn *string
}

func (f Fields) IsEmpty() bool {
	return f.Company == nil && f.Website == nil && f.Bio == nil && f.Status == nil &&
		f.Location == nil && f.GitHubUsername == nil && f.Skills == nil && !f.HasSocial()
}

func (f Fields) HasSocial() bool {
	return f.YouTube != nil || f.Facebook != nil || f.Twitter != nil || f.LinkedIn != nil
}

// SocialPatch returns only the social keys that are present.
func (f Fields) SocialPatch() map[string]string {
	patch := map[string]string{}
	set := func(key string, v *string) {
		if v != nil {
			patch[key] = *v
		}
	}
	set("youtube", f.YouTube)
	set("facebook", f.Facebook)
	set("twitter", f.Twitter)
	set("linkedin", f.LinkedIn)
	return patch
}

// ParseSkills splits a comma-delimited list and trims every token. Empty input
// yields nil so the field stays absent.
func ParseSkills(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, len(parts))
	for i, p := range parts {
		skills[i] = strings.TrimSpace(p)
	}
	return skills
}

// New builds a profile for owner from the present fields only.
func New(ownerID uuid.UUID, fields Fields, now time.Time) *Profile {
	p := &Profile{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	p.Apply(fields, now)
	return p
}

// Apply merges the present fields into p.
func (p *Profile) Apply(f Fields, now time.Time) {
	assign := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	assign(&p.Company, f.Company)
	assign(&p.Website, f.Website)
	assign(&p.Bio, f.Bio)
	assign(&p.Status, f.Status)
	assign(&p.Location, f.Location)
	assign(&p.GitHubUsername, f.GitHubUsername)
	if f.Skills != nil {
		p.Skills = append([]string(nil), f.Skills...)
	}
	assign(&p.Social.YouTube, f.YouTube)
	assign(&p.Social.Facebook, f.Facebook)
	assign(&p.Social.Twitter, f.Twitter)
	assign(&p.Social.LinkedIn, f.LinkedIn)
	p.UpdatedAt = now
}

type Repository interface {
	// FindByOwner returns ErrProfileNotFound when the owner has no profile.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	// Create returns ErrProfileExists when the owner already has a profile.
	Create(ctx context.Context, p *Profile) error
	// Update merges fields into the owner's profile and returns the result.
	Update(ctx context.Context, ownerID uuid.UUID, fields Fields) (*Profile, error)
	// Save replaces the whole document, sub-collections included.
	Save(ctx context.Context, p *Profile) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}
