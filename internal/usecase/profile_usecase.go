package usecase

import (
	"context"

	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/apperror"
	"go-applytrack-backend/pkg/audit"
	"go-applytrack-backend/pkg/normalize"
	"go-applytrack-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	repo     domain.ProfileRepository
	validate *validator.Validate
	audit    *audit.Logger
}

func NewProfileUsecase(repo domain.ProfileRepository, validate *validator.Validate, auditLog *audit.Logger) domain.ProfileUsecase {
	return &profileUsecase{
		repo:     repo,
		validate: validate,
		audit:    auditLog,
	}
}

func (u *profileUsecase) GetProfile(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	// Security: ownership check
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != userID {
		return nil, apperror.Forbidden("You can only view your own profile")
	}

	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Candidate profile not found")
	}
	return profile, nil
}

// SaveProfile replaces the whole profile. Input is normalized first so
// coercible values (casing, phone formats, schemeless URLs) pass
// validation, then validated as a unit.
func (u *profileUsecase) SaveProfile(ctx context.Context, userID string, profile *domain.CandidateProfile) (*domain.CandidateProfile, error) {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != userID {
		return nil, apperror.Forbidden("You can only edit your own profile")
	}

	// Force ownership regardless of what the payload claims
	profile.UserID = userID

	normalize.Profile(profile)

	if err := u.validate.Struct(profile); err != nil {
		return nil, apperror.Validation("Profile validation failed", validation.Collect(err))
	}

	if err := u.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	u.audit.ProfileSaved(ctx, userID)
	return profile, nil
}

// UpdateProfile applies a partial patch: nil fields keep their stored
// value, everything else goes through the same normalize-validate-save
// path as a full write.
func (u *profileUsecase) UpdateProfile(ctx context.Context, userID string, patch *domain.ProfileUpdate) (*domain.CandidateProfile, error) {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != userID {
		return nil, apperror.Forbidden("You can only edit your own profile")
	}

	if err := u.validate.Struct(patch); err != nil {
		return nil, apperror.Validation("Profile validation failed", validation.Collect(err))
	}

	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Candidate profile not found")
	}

	applyPatch(profile, patch)
	normalize.Profile(profile)

	if err := u.validate.Struct(profile); err != nil {
		return nil, apperror.Validation("Profile validation failed", validation.Collect(err))
	}

	if err := u.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	u.audit.ProfileSaved(ctx, userID)
	return profile, nil
}

func (u *profileUsecase) AttachResume(ctx context.Context, userID, resumeURL string) error {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != userID {
		return apperror.Forbidden("You can only edit your own profile")
	}

	if err := u.repo.UpdateResumeURL(ctx, userID, resumeURL); err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Candidate profile not found")
		}
		return err
	}
	return nil
}

func applyPatch(p *domain.CandidateProfile, patch *domain.ProfileUpdate) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&p.Name, patch.Name)
	setString(&p.Email, patch.Email)
	setString(&p.Phone, patch.Phone)

	setString(&p.Education, patch.Education)
	setString(&p.Major, patch.Major)
	setString(&p.School, patch.School)
	setString(&p.DegreeLevel, patch.DegreeLevel)
	setString(&p.GraduationDate, patch.GraduationDate)
	if patch.GPA.Value != nil {
		p.GPA = patch.GPA
	}
	if patch.YearsExperience.Value != nil {
		p.YearsExperience = patch.YearsExperience
	}

	setString(&p.ResumeURL, patch.ResumeURL)
	setString(&p.LinkedinURL, patch.LinkedinURL)
	setString(&p.GithubURL, patch.GithubURL)
	setString(&p.PortfolioURL, patch.PortfolioURL)
	setString(&p.WebsiteURL, patch.WebsiteURL)
	setString(&p.TwitterURL, patch.TwitterURL)
	setString(&p.LeetcodeURL, patch.LeetcodeURL)
	setString(&p.CodeforcesURL, patch.CodeforcesURL)

	if patch.Skills != nil {
		p.Skills = *patch.Skills
	}
	if patch.Experience != nil {
		p.Experience = *patch.Experience
	}
	if patch.Certifications != nil {
		p.Certifications = *patch.Certifications
	}
	if patch.EmploymentTypes != nil {
		p.EmploymentTypes = *patch.EmploymentTypes
	}
	if patch.Languages != nil {
		p.Languages = *patch.Languages
	}
	if patch.Frameworks != nil {
		p.Frameworks = *patch.Frameworks
	}

	if patch.OpenToRelocation.Value != nil {
		p.OpenToRelocation = patch.OpenToRelocation
	}
	if patch.RequiresSponsorship.Value != nil {
		p.RequiresSponsorship = patch.RequiresSponsorship
	}
	setString(&p.OfferDeadline, patch.OfferDeadline)

	setString(&p.Timezone, patch.Timezone)
	setString(&p.Pronouns, patch.Pronouns)
	setString(&p.ReferralSource, patch.ReferralSource)

	setString(&p.EEOGender, patch.EEOGender)
	setString(&p.EEORace, patch.EEORace)
	setString(&p.EEOVeteranStatus, patch.EEOVeteranStatus)
	setString(&p.EEODisabilityStatus, patch.EEODisabilityStatus)
	if patch.EEOPreferNotToSay.Value != nil {
		p.EEOPreferNotToSay = patch.EEOPreferNotToSay
	}
}
