package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/devconnect/api/internal/api/middleware"
	"github.com/devconnect/api/internal/api/types"
	"github.com/devconnect/api/internal/github"
	"github.com/devconnect/api/internal/services"
)

type ProfileHandler struct {
	profiles services.ProfileService
	github   *github.Client
	validate *validator.Validate
}

func NewProfileHandler(profiles services.ProfileService, gh *github.Client, v *validator.Validate) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, github: gh, validate: v}
}

func callerID(r *http.Request) (uuid.UUID, bool) {
	uid, err := uuid.Parse(middleware.GetUserID(r.Context()))
	return uid, err == nil
}

// Me handles GET /api/profile/me.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Token is not valid")
		return
	}
	p, err := h.profiles.GetOwnProfile(r.Context(), uid)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Upsert handles POST /api/profile, creating or replacing the caller's profile.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	var req types.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFieldErrors(w, types.ErrorsResponse{Errors: []types.FieldError{{Msg: "invalid json"}}})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeFieldErrors(w, types.ValidationErrors(err, req.Messages()))
		return
	}

	p, err := h.profiles.UpsertProfile(r.Context(), uid, &services.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// List handles GET /api/profile.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.ListProfiles(r.Context())
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// GetByUser handles GET /api/profile/user/{user_id}.
func (h *ProfileHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		// malformed ids read the same as missing profiles
		writeMsg(w, http.StatusBadRequest, "Profile not found")
		return
	}
	p, err := h.profiles.GetByUserID(r.Context(), uid)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteAccount handles DELETE /api/profile, removing profile and user.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Token is not valid")
		return
	}
	if err := h.profiles.DeleteAccount(r.Context(), uid); err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeMsg(w, http.StatusOK, "User removed")
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	var req types.AddExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFieldErrors(w, types.ErrorsResponse{Errors: []types.FieldError{{Msg: "invalid json"}}})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeFieldErrors(w, types.ValidationErrors(err, req.Messages()))
		return
	}

	p, err := h.profiles.AddExperience(r.Context(), uid, &services.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// EditExperience handles PATCH /api/profile/experience/{exp_id}.
func (h *ProfileHandler) EditExperience(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	var patch services.ExperiencePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeFieldErrors(w, types.ErrorsResponse{Errors: []types.FieldError{{Msg: "invalid json"}}})
		return
	}

	p, err := h.profiles.EditExperience(r.Context(), uid, chi.URLParam(r, "exp_id"), patch)
	if err != nil {
		writeServiceError(w, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// RemoveExperience handles DELETE /api/profile/experience/{exp_id}.
func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Token is not valid")
		return
	}
	p, err := h.profiles.RemoveExperience(r.Context(), uid, chi.URLParam(r, "exp_id"))
	if err != nil {
		writeServiceError(w, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	var req types.AddEducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFieldErrors(w, types.ErrorsResponse{Errors: []types.FieldError{{Msg: "invalid json"}}})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeFieldErrors(w, types.ValidationErrors(err, req.Messages()))
		return
	}

	p, err := h.profiles.AddEducation(r.Context(), uid, &services.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// EditEducation handles PATCH /api/profile/education/{edu_id}.
func (h *ProfileHandler) EditEducation(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	var patch services.EducationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeFieldErrors(w, types.ErrorsResponse{Errors: []types.FieldError{{Msg: "invalid json"}}})
		return
	}

	p, err := h.profiles.EditEducation(r.Context(), uid, chi.URLParam(r, "edu_id"), patch)
	if err != nil {
		writeServiceError(w, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// RemoveEducation handles DELETE /api/profile/education/{edu_id}.
func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Token is not valid")
		return
	}
	p, err := h.profiles.RemoveEducation(r.Context(), uid, chi.URLParam(r, "edu_id"))
	if err != nil {
		writeServiceError(w, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Github handles GET /api/profile/github/{username}, relaying the upstream
// body verbatim.
func (h *ProfileHandler) Github(w http.ResponseWriter, r *http.Request) {
	body, err := h.github.Repos(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeMsg(w, http.StatusNotFound, "No Github profile found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
