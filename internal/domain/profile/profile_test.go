package profile

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ParseSkills(" a, b ,c"))
	assert.Equal(t, []string{"go"}, ParseSkills("go"))
	assert.Nil(t, ParseSkills(""))
}

func TestNew_OnlyPresentFields(t *testing.T) {
	now := time.Now().UTC()
	owner := uuid.New()

	p := New(owner, Fields{
		Company: strPtr("Acme"),
		Status:  strPtr("Developer"),
		Skills:  []string{"go", "sql"},
		Twitter: strPtr("@acme"),
	}, now)

	assert.Equal(t, owner, p.OwnerID)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "Acme", p.Company)
	assert.Empty(t, p.Bio)
	assert.Equal(t, []string{"go", "sql"}, p.Skills)
	assert.Equal(t, Social{Twitter: "@acme"}, p.Social)
	assert.Empty(t, p.Experience)
	assert.Empty(t, p.Education)
}

func TestApply_PreservesOmittedFields(t *testing.T) {
	now := time.Now().UTC()
	p := New(uuid.New(), Fields{Company: strPtr("X"), Skills: []string{"go"}, YouTube: strPtr("yt")}, now)

	p.Apply(Fields{Bio: strPtr("Y"), LinkedIn: strPtr("li")}, now.Add(time.Minute))

	assert.Equal(t, "X", p.Company)
	assert.Equal(t, "Y", p.Bio)
	assert.Equal(t, []string{"go"}, p.Skills)
	assert.Equal(t, Social{YouTube: "yt", LinkedIn: "li"}, p.Social)
	assert.Equal(t, now.Add(time.Minute), p.UpdatedAt)
}

func TestFields_SocialPatch(t *testing.T) {
	f := Fields{Facebook: strPtr("fb")}
	assert.True(t, f.HasSocial())
	assert.Equal(t, map[string]string{"facebook": "fb"}, f.SocialPatch())
	assert.True(t, Fields{}.IsEmpty())
	assert.False(t, f.IsEmpty())
}

func TestAddExperience_InsertsAtHead(t *testing.T) {
	now := time.Now().UTC()
	p := New(uuid.New(), Fields{}, now)

	a := p.AddExperience(Experience{Title: "A", Company: "Acme", From: now}, now)
	b := p.AddExperience(Experience{Title: "B", Company: "Beta", From: now}, now)

	require.Len(t, p.Experience, 2)
	assert.Equal(t, "B", p.Experience[0].Title)
	assert.Equal(t, "A", p.Experience[1].Title)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, uuid.Nil, a.ID)
}

func TestRemoveExperience_ByID(t *testing.T) {
	now := time.Now().UTC()
	p := New(uuid.New(), Fields{}, now)
	a := p.AddExperience(Experience{Title: "A"}, now)
	p.AddExperience(Experience{Title: "B"}, now)
	p.AddExperience(Experience{Title: "C"}, now)

	require.NoError(t, p.RemoveExperience(a.ID.String(), false, now))

	require.Len(t, p.Experience, 2)
	assert.Equal(t, "C", p.Experience[0].Title)
	assert.Equal(t, "B", p.Experience[1].Title)
}

func TestRemoveExperience_UnknownID(t *testing.T) {
	now := time.Now().UTC()

	t.Run("fails by default", func(t *testing.T) {
		p := New(uuid.New(), Fields{}, now)
		p.AddExperience(Experience{Title: "A"}, now)
		p.AddExperience(Experience{Title: "B"}, now)

		err := p.RemoveExperience(uuid.NewString(), false, now)

		assert.ErrorIs(t, err, ErrEntryNotFound)
		assert.Len(t, p.Experience, 2)
	})

	t.Run("legacy drops the last entry", func(t *testing.T) {
		p := New(uuid.New(), Fields{}, now)
		p.AddExperience(Experience{Title: "A"}, now)
		p.AddExperience(Experience{Title: "B"}, now)

		require.NoError(t, p.RemoveExperience("not-an-id", true, now))

		require.Len(t, p.Experience, 1)
		assert.Equal(t, "B", p.Experience[0].Title)
	})

	t.Run("legacy on empty list is a no-op", func(t *testing.T) {
		p := New(uuid.New(), Fields{}, now)

		require.NoError(t, p.RemoveExperience(uuid.NewString(), true, now))
		assert.Empty(t, p.Experience)
	})
}

func TestEducation_AddAndRemove(t *testing.T) {
	now := time.Now().UTC()
	p := New(uuid.New(), Fields{}, now)

	first := p.AddEducation(Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: now}, now)
	p.AddEducation(Education{School: "ETH", Degree: "MSc", FieldOfStudy: "CS", From: now}, now)
	assert.Equal(t, "ETH", p.Education[0].School)

	require.NoError(t, p.RemoveEducation(first.ID.String(), false, now))
	require.Len(t, p.Education, 1)
	assert.Equal(t, "ETH", p.Education[0].School)

	assert.ErrorIs(t, p.RemoveEducation(first.ID.String(), false, now), ErrEntryNotFound)
}
