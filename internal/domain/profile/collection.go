package profile

import (
	"time"

	"github.com/google/uuid"
)

type entry interface {
	Experience | Education
}

func entryID[T entry](e T) uuid.UUID {
	switch v := any(e).(type) {
	case Experience:
		return v.ID
	case Education:
		return v.ID
	}
	return uuid.Nil
}

// newEntryID returns an id not used by any sibling.
func newEntryID[T entry](items []T) uuid.UUID {
	for {
		id := uuid.New()
		if indexOf(items, id.String()) < 0 {
			return id
		}
	}
}

func indexOf[T entry](items []T, id string) int {
	for i, it := range items {
		if entryID(it).String() == id {
			return i
		}
	}
	return -1
}

func prepend[T entry](items []T, e T) []T {
	return append([]T{e}, items...)
}

// removeByID drops the entry with the given id, keeping the order of the rest.
// With legacy set, a miss removes the last entry instead of failing; an empty
// list is left as is.
func removeByID[T entry](items []T, id string, legacy bool) ([]T, error) {
	idx := indexOf(items, id)
	if idx < 0 {
		if !legacy {
			return items, ErrEntryNotFound
		}
		if len(items) == 0 {
			return items, nil
		}
		idx = len(items) - 1
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...), nil
}

// AddExperience assigns e a fresh id and puts it at the head of the list.
func (p *Profile) AddExperience(e Experience, now time.Time) Experience {
	e.ID = newEntryID(p.Experience)
	p.Experience = prepend(p.Experience, e)
	p.UpdatedAt = now
	return e
}

func (p *Profile) RemoveExperience(id string, legacy bool, now time.Time) error {
	items, err := removeByID(p.Experience, id, legacy)
	if err != nil {
		return err
	}
	p.Experience = items
	p.UpdatedAt = now
	return nil
}

func (p *Profile) AddEducation(e Education, now time.Time) Education {
	e.ID = newEntryID(p.Education)
	p.Education = prepend(p.Education, e)
	p.UpdatedAt = now
	return e
}

func (p *Profile) RemoveEducation(id string, legacy bool, now time.Time) error {
	items, err := removeByID(p.Education, id, legacy)
	if err != nil {
		return err
	}
	p.Education = items
	p.UpdatedAt = now
	return nil
}
