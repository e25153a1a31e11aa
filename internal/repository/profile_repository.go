package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/devconnect/api/internal/models"
	appErr "github.com/devconnect/api/pkg/errors"
)

type ProfileRepository interface {
	BaseRepository[models.Profile]
	GetByUserID(ctx context.Context, userID uuid.UUID, dest *models.Profile) error
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	SaveExperience(ctx context.Context, userID uuid.UUID, experience datatypes.JSONSlice[models.Experience]) error
	SaveEducation(ctx context.Context, userID uuid.UUID, education datatypes.JSONSlice[models.Education]) error
}

type profileRepository struct {
	BaseRepository[models.Profile]
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{BaseRepository: NewBaseRepository[models.Profile](db), db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID, dest *models.Profile) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "profile not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get profile by user failed")
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list profiles failed")
	}
	return out, nil
}

// Upsert updates the profile row owned by profile.UserID in place, or creates
// it when the user has no profile yet.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	var existing models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
				return appErr.Wrap(err, appErr.CodeInternal, "create profile failed")
			}
			return nil
		}
		return appErr.Wrap(err, appErr.CodeInternal, "lookup profile failed")
	}

	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "update profile failed")
	}
	return nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Profile{}, "user_id = ?", userID).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "delete profile failed")
	}
	return nil
}

// SaveExperience issues a targeted write of the experience column only,
// addressed by owner, so unrelated profile fields are never rewritten.
func (r *profileRepository) SaveExperience(ctx context.Context, userID uuid.UUID, experience datatypes.JSONSlice[models.Experience]) error {
	res := r.db.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).Update("experience", experience)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "save experience failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "profile not found")
	}
	return nil
}

// SaveEducation is the education counterpart of SaveExperience.
func (r *profileRepository) SaveEducation(ctx context.Context, userID uuid.UUID, education datatypes.JSONSlice[models.Education]) error {
	res := r.db.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).Update("education", education)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "save education failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "profile not found")
	}
	return nil
}
