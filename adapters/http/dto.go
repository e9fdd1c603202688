package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/devconnector/internal/domain/profile"
	"github.com/khoahotran/devconnector/pkg/apperror"
)

type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status" validate:"required" label:"Status"`
	GitHubUsername string `json:"githubusername"`
	Skills         string `json:"skills" validate:"required" label:"Skills"`
	YouTube        string `json:"youtube"`
	Facebook       string `json:"facebook"`
	Twitter        string `json:"twitter"`
	LinkedIn       string `json:"linkedin"`
}

type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDates turns the optional from/to strings into times. An empty string
// stays nil; anything unparseable is a violation on that field.
func parseDates(from, to string) (*time.Time, *time.Time, error) {
	var violations []apperror.Violation
	parse := func(field, label, raw string) *time.Time {
		if raw == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				t = t.UTC()
				return &t
			}
		}
		violations = append(violations, apperror.Violation{
			Field:   field,
			Rule:    "date",
			Message: label + " must be a valid date",
		})
		return nil
	}
	f := parse("from", "From date", from)
	t := parse("to", "To date", to)
	if len(violations) > 0 {
		return nil, nil, apperror.NewValidation(violations)
	}
	return f, t, nil
}

type OwnerDTO struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

type ExperienceDTO struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type EducationDTO struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// ProfileDTO uses the same wire names as profile.Profile so clients can decode
// straight into the domain type.
type ProfileDTO struct {
	ID             uuid.UUID       `json:"id"`
	OwnerID        uuid.UUID       `json:"owner_id"`
	User           *OwnerDTO       `json:"user,omitempty"`
	Company        string          `json:"company,omitempty"`
	Website        string          `json:"website,omitempty"`
	Bio            string          `json:"bio,omitempty"`
	Status         string          `json:"status"`
	Location       string          `json:"location,omitempty"`
	GitHubUsername string          `json:"githubusername,omitempty"`
	Skills         []string        `json:"skills"`
	Social         profile.Social  `json:"social"`
	Experience     []ExperienceDTO `json:"experience"`
	Education      []EducationDTO  `json:"education"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Company:        p.Company,
		Website:        p.Website,
		Bio:            p.Bio,
		Status:         p.Status,
		Location:       p.Location,
		GitHubUsername: p.GitHubUsername,
		Skills:         p.Skills,
		Social:         p.Social,
		Experience:     make([]ExperienceDTO, 0, len(p.Experience)),
		Education:      make([]EducationDTO, 0, len(p.Education)),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if dto.Skills == nil {
		dto.Skills = []string{}
	}
	if p.User != nil {
		dto.User = &OwnerDTO{ID: p.User.ID, Name: p.User.Name, Avatar: p.User.Avatar}
	}

	for _, e := range p.Experience {
		dto.Experience = append(dto.Experience, ExperienceDTO{
			ID:          e.ID,
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			From:        e.From,
			To:          e.To,
			Current:     e.Current,
			Description: e.Description,
		})
	}
	for _, e := range p.Education {
		dto.Education = append(dto.Education, EducationDTO{
			ID:           e.ID,
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			From:         e.From,
			To:           e.To,
			Current:      e.Current,
			Description:  e.Description,
		})
	}
	return dto
}

func ToProfileDTOs(profiles []*profile.Profile) []ProfileDTO {
	out := make([]ProfileDTO, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ToProfileDTO(p))
	}
	return out
}
