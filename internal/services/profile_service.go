package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/devconnect/api/internal/models"
	"github.com/devconnect/api/internal/repository"
	appErr "github.com/devconnect/api/pkg/errors"
	"github.com/devconnect/api/pkg/logger"
)

type ProfileService interface {
	UpsertProfile(ctx context.Context, userID uuid.UUID, input *ProfileInput) (*models.Profile, error)
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error

	AddExperience(ctx context.Context, userID uuid.UUID, input *ExperienceInput) (*models.Profile, error)
	EditExperience(ctx context.Context, userID uuid.UUID, expID string, patch ExperiencePatch) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID uuid.UUID, expID string) (*models.Profile, error)

	AddEducation(ctx context.Context, userID uuid.UUID, input *EducationInput) (*models.Profile, error)
	EditEducation(ctx context.Context, userID uuid.UUID, eduID string, patch EducationPatch) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID uuid.UUID, eduID string) (*models.Profile, error)
}

// ProfileInput is the full profile submission. Skills arrive as a single
// comma-separated string and are split and trimmed here.
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Bio            string
	GithubUsername string
	Skills         string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

type profileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
}

func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository) ProfileService {
	return &profileService{profiles: profiles, users: users}
}

var _ ProfileService = (*profileService)(nil)

func (s *profileService) UpsertProfile(ctx context.Context, userID uuid.UUID, input *ProfileInput) (*models.Profile, error) {
	skills := make([]string, 0)
	for _, sk := range strings.Split(input.Skills, ",") {
		if trimmed := strings.TrimSpace(sk); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}

	p := models.Profile{
		UserID:         userID,
		Company:        input.Company,
		Website:        input.Website,
		Location:       input.Location,
		Status:         input.Status,
		Bio:            input.Bio,
		GithubUsername: input.GithubUsername,
		Skills:         datatypes.NewJSONSlice(skills),
		Social: datatypes.NewJSONType(models.SocialLinks{
			Youtube:   input.Youtube,
			Twitter:   input.Twitter,
			Facebook:  input.Facebook,
			Linkedin:  input.Linkedin,
			Instagram: input.Instagram,
		}),
		Experience: datatypes.NewJSONSlice([]models.Experience{}),
		Education:  datatypes.NewJSONSlice([]models.Education{}),
	}

	// A resubmission keeps the existing sub-collections.
	var existing models.Profile
	if err := s.profiles.GetByUserID(ctx, userID, &existing); err == nil {
		p.Experience = existing.Experience
		p.Education = existing.Education
	}

	if err := s.profiles.Upsert(ctx, &p); err != nil {
		return nil, err
	}

	logger.L().Info("profile saved", zap.String("user_id", userID.String()))
	return s.populate(ctx, &p)
}

func (s *profileService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := s.profiles.GetByUserID(ctx, userID, &p); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "There is no profile for this user")
		}
		return nil, err
	}
	return s.populate(ctx, &p)
}

func (s *profileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := s.profiles.GetByUserID(ctx, userID, &p); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "Profile not found")
		}
		return nil, err
	}
	return s.populate(ctx, &p)
}

func (s *profileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if _, err := s.populate(ctx, &profiles[i]); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// DeleteAccount removes the profile (if any) and then the user itself.
func (s *profileService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.DeleteByID(ctx, userID); err != nil {
		return err
	}
	logger.L().Info("account removed", zap.String("user_id", userID.String()))
	return nil
}

func (s *profileService) AddExperience(ctx context.Context, userID uuid.UUID, input *ExperienceInput) (*models.Profile, error) {
	var p models.Profile
	if err := s.profiles.GetByUserID(ctx, userID, &p); err != nil {
		return nil, err
	}

	entry := models.Experience{
		ID:          uuid.New(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	}

	// newest first
	p.Experience = append(datatypes.NewJSONSlice([]models.Experience{entry}), p.Experience...)
	if err := s.profiles.SaveExperience(ctx, userID, p.Experience); err != nil {
		return nil, err
	}
	return s.populate(ctx, &p)
}

func (s *profileService) EditExperience(ctx context.Context, userID uuid.UUID, expID string, patch ExperiencePatch) (*models.Profile, error) {
	var p models.Profile
	if err := s.profiles.GetByUserID(ctx, userID, &p); err != nil {
		return nil, err
	}

	idx := indexByID(p.Experience, expID, func(e models.Experience) string { return e.ID.String() })
	if idx == -1 {
		return nil, appErr.New(appErr.CodeNotFound, "Provided Wrong Experience ID")
	}

	p.Experience[idx] = mergeExperience(p.Experience[idx], patch)
	if err := s.profiles.SaveExperience(ctx, userID, p.Experience); err != nil {
		return nil, err
	}
	return s.populate(ctx, &p)
}

func (s *profileService) RemoveExperience(ctx context.Context, userID uuid.UUID, expID string) (*models.Profile, error) {
	var p models.Profile
	if err := s.profiles.GetByUserID(ctx, userID, &p); err != nil {
		return nil, err
	}

	idx := indexByID(p.Experience, expID, func(e models.Experience) string { return e.ID.String() })
	if idx == -1 {
		return nil, appErr.New(appErr.CodeNotFound, "Provided Wrong Experience ID")
	}

	p.Experience = append(p.Experience[:idx], p.Experience[idx+1:]...)
	if err := s.profiles.SaveExperience(ctx, userID, p.Experience); err != nil {
		return nil, err
	}
	return s.populate(ctx, &p)
}

func (s *profileService) AddEducation(ctx context.Context, userID uuid.UUID, input *EducationInput) (*models.Profile, error) {
	var p models.Profile
	if err := s.profiles.GetByUserID(ctx, userID, &p); err != nil {
		return nil, err
	}

	entry := models.Education{
		ID:           uuid.New(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	}

	p.Education = append(datatypes.NewJSONSlice([]models.Education{entry}), p.Education...)
	if err := s.profiles.SaveEducation(ctx, userID, p.Education); err != nil {
		return nil, err
	}
	return s.populate(ctx, &p)
}

func (s *profileService) EditEducation(ctx context.Context, userID uuid.UUID, eduID string, patch EducationPatch) (*models.Profile, error) {
	var p models.Profile
	if err := s.profiles.GetByUserID(ctx, userID, &p); err != nil {
		return nil, err
	}

	idx := indexByID(p.Education, eduID, func(e models.Education) string { return e.ID.String() })
	if idx == -1 {
		return nil, appErr.New(appErr.CodeNotFound, "Provided Wrong Education ID")
	}

	p.Education[idx] = mergeEducation(p.Education[idx], patch)
	if err := s.profiles.SaveEducation(ctx, userID, p.Education); err != nil {
		return nil, err
	}
	return s.populate(ctx, &p)
}

func (s *profileService) RemoveEducation(ctx context.Context, userID uuid.UUID, eduID string) (*models.Profile, error) {
	var p models.Profile
	if err := s.profiles.GetByUserID(ctx, userID, &p); err != nil {
		return nil, err
	}

	idx := indexByID(p.Education, eduID, func(e models.Education) string { return e.ID.String() })
	if idx == -1 {
		return nil, appErr.New(appErr.CodeNotFound, "Provided Wrong Education ID")
	}

	p.Education = append(p.Education[:idx], p.Education[idx+1:]...)
	if err := s.profiles.SaveEducation(ctx, userID, p.Education); err != nil {
		return nil, err
	}
	return s.populate(ctx, &p)
}

// populate attaches the owning user's public fields to the profile.
func (s *profileService) populate(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	var u models.User
	if err := s.users.GetByID(ctx, p.UserID, &u); err != nil {
		// The profile is still useful without the owner block.
		logger.L().Warn("populate profile owner failed", zap.String("user_id", p.UserID.String()), zap.Error(err))
		return p, nil
	}
	p.User = &models.ProfileUser{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
	return p, nil
}
