package services

import "github.com/devconnect/api/internal/models"

// Patch types carry a partial edit of one embedded entry. A field counts as
// specified only when it is non-zero; an explicit false or empty string is
// indistinguishable from an omitted field and leaves the stored value in
// place. Existing clients depend on that, so it is kept as-is.

type ExperiencePatch struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationPatch struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// mergeExperience applies the specified fields of p over e. The entry keeps
// its id so repeated edits never re-identify it.
func mergeExperience(e models.Experience, p ExperiencePatch) models.Experience {
	merged := e
	if p.Title != "" {
		merged.Title = p.Title
	}
	if p.Company != "" {
		merged.Company = p.Company
	}
	if p.Location != "" {
		merged.Location = p.Location
	}
	if p.From != "" {
		merged.From = p.From
	}
	if p.To != "" {
		merged.To = p.To
	}
	if p.Current {
		merged.Current = true
	}
	if p.Description != "" {
		merged.Description = p.Description
	}
	return merged
}

func mergeEducation(e models.Education, p EducationPatch) models.Education {
	merged := e
	if p.School != "" {
		merged.School = p.School
	}
	if p.Degree != "" {
		merged.Degree = p.Degree
	}
	if p.FieldOfStudy != "" {
		merged.FieldOfStudy = p.FieldOfStudy
	}
	if p.From != "" {
		merged.From = p.From
	}
	if p.To != "" {
		merged.To = p.To
	}
	if p.Current {
		merged.Current = true
	}
	if p.Description != "" {
		merged.Description = p.Description
	}
	return merged
}

// indexByID returns the position of the entry with the given id, or -1.
func indexByID[T any](items []T, id string, idOf func(T) string) int {
	for i, it := range items {
		if idOf(it) == id {
			return i
		}
	}
	return -1
}
