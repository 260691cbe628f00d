package domain

import (
	"context"
	"time"
)

// Limits applied to candidate profile collections
const (
	MaxSkills         = 50
	MaxSkillLength    = 50
	MaxExperiences    = 20
	MaxCertifications = 20
)

// WorkExperience is a single employment history entry.
// Entries missing company, title or a valid start date are dropped
// during normalization, never stored partially.
type WorkExperience struct {
	Company     string  `json:"company" validate:"required,max=100"`
	Title       string  `json:"title" validate:"required,max=100"`
	StartDate   string  `json:"start_date" validate:"required,year_month"`
	EndDate     *string `json:"end_date,omitempty" validate:"omitempty,year_month"` // nil = current position
	Description string  `json:"description" validate:"max=1000"`
}

// Certification is a single certification entry, same drop-if-invalid rule.
type Certification struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Issuer string  `json:"issuer" validate:"required,max=100"`
	Date   string  `json:"date" validate:"required,year_month"`
	Expiry *string `json:"expiry,omitempty" validate:"omitempty,year_month"`
}

// CandidateProfile is the full candidate record, one per user.
// The user_id is the identity provider's opaque subject (UUID).
type CandidateProfile struct {
	ID     int64  `json:"id"`
	UserID string `json:"user_id" validate:"required,uuid"`
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone,omitempty" validate:"omitempty,valid_phone"`

	Education       string     `json:"education,omitempty" validate:"max=100"`
	Major           string     `json:"major,omitempty" validate:"max=100"`
	School          string     `json:"school,omitempty" validate:"max=100"`
	DegreeLevel     string     `json:"degree_level,omitempty" validate:"max=50"`
	GraduationDate  string     `json:"graduation_date,omitempty" validate:"omitempty,year_month"`
	GPA             FlexNumber `json:"gpa" validate:"omitempty,gte=0,lte=4"`
	YearsExperience FlexNumber `json:"years_of_experience" validate:"omitempty,gte=0"`

	ResumeURL     string `json:"resume_url,omitempty" validate:"omitempty,url"`
	LinkedinURL   string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	GithubURL     string `json:"github_url,omitempty" validate:"omitempty,url"`
	PortfolioURL  string `json:"portfolio_url,omitempty" validate:"omitempty,url"`
	WebsiteURL    string `json:"website_url,omitempty" validate:"omitempty,url"`
	TwitterURL    string `json:"twitter_url,omitempty" validate:"omitempty,url"`
	LeetcodeURL   string `json:"leetcode_url,omitempty" validate:"omitempty,url"`
	CodeforcesURL string `json:"codeforces_url,omitempty" validate:"omitempty,url"`

	Skills         []string         `json:"skills,omitempty" validate:"max=50,dive,max=50"`
	Experience     []WorkExperience `json:"experience,omitempty" validate:"max=20,dive"`
	Certifications []Certification  `json:"certifications,omitempty" validate:"max=20,dive"`

	EmploymentTypes []string `json:"employment_types,omitempty" validate:"dive,max=50"`
	Languages       []string `json:"languages,omitempty" validate:"dive,max=50"`
	Frameworks      []string `json:"frameworks,omitempty" validate:"dive,max=50"`

	OpenToRelocation    FlexBool `json:"open_to_relocation"`
	RequiresSponsorship FlexBool `json:"requires_sponsorship"`
	OfferDeadline       string   `json:"offer_deadline,omitempty"`

	Timezone       string `json:"timezone,omitempty" validate:"max=50"`
	Pronouns       string `json:"pronouns,omitempty" validate:"max=50"`
	ReferralSource string `json:"referral_source,omitempty" validate:"max=100"`

	// Voluntary EEO self-disclosure. When PreferNotToSay is set the four
	// detail fields must be cleared in the same write.
	EEOGender           string   `json:"eeo_gender,omitempty" validate:"max=50"`
	EEORace             string   `json:"eeo_race,omitempty" validate:"max=100"`
	EEOVeteranStatus    string   `json:"eeo_veteran_status,omitempty" validate:"max=50"`
	EEODisabilityStatus string   `json:"eeo_disability_status,omitempty" validate:"max=50"`
	EEOPreferNotToSay   FlexBool `json:"eeo_prefer_not_to_say"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial edit of an existing profile. Every field is
// optional; nil leaves the stored value untouched.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,valid_phone"`

	Education       *string    `json:"education,omitempty" validate:"omitempty,max=100"`
	Major           *string    `json:"major,omitempty" validate:"omitempty,max=100"`
	School          *string    `json:"school,omitempty" validate:"omitempty,max=100"`
	DegreeLevel     *string    `json:"degree_level,omitempty" validate:"omitempty,max=50"`
	GraduationDate  *string    `json:"graduation_date,omitempty" validate:"omitempty,year_month"`
	GPA             FlexNumber `json:"gpa" validate:"omitempty,gte=0,lte=4"`
	YearsExperience FlexNumber `json:"years_of_experience" validate:"omitempty,gte=0"`

	ResumeURL     *string `json:"resume_url,omitempty" validate:"omitempty,url"`
	LinkedinURL   *string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	GithubURL     *string `json:"github_url,omitempty" validate:"omitempty,url"`
	PortfolioURL  *string `json:"portfolio_url,omitempty" validate:"omitempty,url"`
	WebsiteURL    *string `json:"website_url,omitempty" validate:"omitempty,url"`
	TwitterURL    *string `json:"twitter_url,omitempty" validate:"omitempty,url"`
	LeetcodeURL   *string `json:"leetcode_url,omitempty" validate:"omitempty,url"`
	CodeforcesURL *string `json:"codeforces_url,omitempty" validate:"omitempty,url"`

	Skills         *[]string         `json:"skills,omitempty" validate:"omitempty,max=50,dive,max=50"`
	Experience     *[]WorkExperience `json:"experience,omitempty" validate:"omitempty,max=20,dive"`
	Certifications *[]Certification  `json:"certifications,omitempty" validate:"omitempty,max=20,dive"`

	EmploymentTypes *[]string `json:"employment_types,omitempty" validate:"omitempty,dive,max=50"`
	Languages       *[]string `json:"languages,omitempty" validate:"omitempty,dive,max=50"`
	Frameworks      *[]string `json:"frameworks,omitempty" validate:"omitempty,dive,max=50"`

	OpenToRelocation    FlexBool `json:"open_to_relocation"`
	RequiresSponsorship FlexBool `json:"requires_sponsorship"`
	OfferDeadline       *string  `json:"offer_deadline,omitempty"`

	Timezone       *string `json:"timezone,omitempty" validate:"omitempty,max=50"`
	Pronouns       *string `json:"pronouns,omitempty" validate:"omitempty,max=50"`
	ReferralSource *string `json:"referral_source,omitempty" validate:"omitempty,max=100"`

	EEOGender           *string  `json:"eeo_gender,omitempty" validate:"omitempty,max=50"`
	EEORace             *string  `json:"eeo_race,omitempty" validate:"omitempty,max=100"`
	EEOVeteranStatus    *string  `json:"eeo_veteran_status,omitempty" validate:"omitempty,max=50"`
	EEODisabilityStatus *string  `json:"eeo_disability_status,omitempty" validate:"omitempty,max=50"`
	EEOPreferNotToSay   FlexBool `json:"eeo_prefer_not_to_say"`
}

// ProfileRepository defines data access for candidate profiles
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*CandidateProfile, error)
	Upsert(ctx context.Context, profile *CandidateProfile) error
	UpdateResumeURL(ctx context.Context, userID, resumeURL string) error
}

// ProfileUsecase defines business logic for candidate profiles
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID string) (*CandidateProfile, error)
	SaveProfile(ctx context.Context, userID string, profile *CandidateProfile) (*CandidateProfile, error)
	UpdateProfile(ctx context.Context, userID string, patch *ProfileUpdate) (*CandidateProfile, error)
	AttachResume(ctx context.Context, userID, resumeURL string) error
}
