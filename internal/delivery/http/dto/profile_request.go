package dto

import (
	"strings"

	"devconnect/internal/pkg/response"
	profileuc "devconnect/internal/usecase/profile"
)

// UpsertProfileRequest distinguishes "field not supplied" from "field
// supplied as empty" by pointer, never by truthiness.
type UpsertProfileRequest struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Status         *string `json:"status"`
	Skills         *string `json:"skills"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

func (r UpsertProfileRequest) Validate() []response.FieldError {
	var errs []response.FieldError
	if !present(r.Status) {
		errs = append(errs, response.FieldError{Field: "status", Message: "Status is required"})
	}
	if !present(r.Skills) {
		errs = append(errs, response.FieldError{Field: "skills", Message: "Skills is required"})
	}
	return errs
}

func (r UpsertProfileRequest) ToInput() profileuc.UpsertInput {
	return profileuc.UpsertInput{
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Status:         r.Status,
		Skills:         r.Skills,
		Bio:            r.Bio,
		GithubUsername: r.GithubUsername,
		Youtube:        r.Youtube,
		Twitter:        r.Twitter,
		Facebook:       r.Facebook,
		Linkedin:       r.Linkedin,
		Instagram:      r.Instagram,
	}
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

func (r ExperienceRequest) Validate() []response.FieldError {
	var errs []response.FieldError
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, response.FieldError{Field: "title", Message: "Title is required"})
	}
	if strings.TrimSpace(r.Company) == "" {
		errs = append(errs, response.FieldError{Field: "company", Message: "Company is required"})
	}
	if strings.TrimSpace(r.From) == "" {
		errs = append(errs, response.FieldError{Field: "from", Message: "From date is required"})
	}
	return errs
}

func (r ExperienceRequest) ToInput() profileuc.ExperienceInput {
	return profileuc.ExperienceInput{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		From:        r.From,
		To:          r.To,
		Current:     r.Current,
		Description: r.Description,
	}
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

func (r EducationRequest) Validate() []response.FieldError {
	var errs []response.FieldError
	if strings.TrimSpace(r.School) == "" {
		errs = append(errs, response.FieldError{Field: "school", Message: "School is required"})
	}
	if strings.TrimSpace(r.Degree) == "" {
		errs = append(errs, response.FieldError{Field: "degree", Message: "Degree is required"})
	}
	if strings.TrimSpace(r.FieldOfStudy) == "" {
		errs = append(errs, response.FieldError{Field: "fieldofstudy", Message: "Field of study is required"})
	}
	if strings.TrimSpace(r.From) == "" {
		errs = append(errs, response.FieldError{Field: "from", Message: "From date is required"})
	}
	return errs
}

func (r EducationRequest) ToInput() profileuc.EducationInput {
	return profileuc.EducationInput{
		School:       r.School,
		Degree:       r.Degree,
		FieldOfStudy: r.FieldOfStudy,
		From:         r.From,
		To:           r.To,
		Current:      r.Current,
		Description:  r.Description,
	}
}

func present(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}
