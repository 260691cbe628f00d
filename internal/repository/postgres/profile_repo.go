package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-applytrack-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

const profileColumns = `
	id, user_id, name, email, COALESCE(phone, ''),
	COALESCE(education, ''), COALESCE(major, ''), COALESCE(school, ''),
	COALESCE(degree_level, ''), COALESCE(graduation_date, ''),
	gpa, years_of_experience,
	COALESCE(resume_url, ''), COALESCE(linkedin_url, ''), COALESCE(github_url, ''),
	COALESCE(portfolio_url, ''), COALESCE(website_url, ''), COALESCE(twitter_url, ''),
	COALESCE(leetcode_url, ''), COALESCE(codeforces_url, ''),
	skills, employment_types, languages, frameworks,
	open_to_relocation, requires_sponsorship, offer_deadline,
	COALESCE(timezone, ''), COALESCE(pronouns, ''), COALESCE(referral_source, ''),
	COALESCE(eeo_gender, ''), COALESCE(eeo_race, ''),
	COALESCE(eeo_veteran_status, ''), COALESCE(eeo_disability_status, ''),
	COALESCE(eeo_prefer_not_to_say, FALSE),
	created_at, updated_at`

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	query := `SELECT` + profileColumns + ` FROM candidate_profiles WHERE user_id = $1`

	var (
		p             domain.CandidateProfile
		gpa           *float64
		years         *int
		relocation    *bool
		sponsorship   *bool
		preferNotSay  bool
		offerDeadline *time.Time
		skills        []string
		empTypes      []string
		languages     []string
		frameworks    []string
	)

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone,
		&p.Education, &p.Major, &p.School,
		&p.DegreeLevel, &p.GraduationDate,
		&gpa, &years,
		&p.ResumeURL, &p.LinkedinURL, &p.GithubURL,
		&p.PortfolioURL, &p.WebsiteURL, &p.TwitterURL,
		&p.LeetcodeURL, &p.CodeforcesURL,
		pq.Array(&skills), pq.Array(&empTypes), pq.Array(&languages), pq.Array(&frameworks),
		&relocation, &sponsorship, &offerDeadline,
		&p.Timezone, &p.Pronouns, &p.ReferralSource,
		&p.EEOGender, &p.EEORace,
		&p.EEOVeteranStatus, &p.EEODisabilityStatus,
		&preferNotSay,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	p.GPA.Value = gpa
	if years != nil {
		p.YearsExperience.Set(float64(*years))
	}
	p.OpenToRelocation.Value = relocation
	p.RequiresSponsorship.Value = sponsorship
	p.EEOPreferNotToSay.Value = &preferNotSay
	if offerDeadline != nil {
		p.OfferDeadline = offerDeadline.Format(time.RFC3339)
	}
	p.Skills = skills
	p.EmploymentTypes = empTypes
	p.Languages = languages
	p.Frameworks = frameworks

	if err := r.loadExperience(ctx, &p); err != nil {
		return nil, err
	}
	if err := r.loadCertifications(ctx, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *profileRepo) loadExperience(ctx context.Context, p *domain.CandidateProfile) error {
	query := `SELECT company, title, start_date, end_date, COALESCE(description, '')
	          FROM work_experiences WHERE user_id = $1 ORDER BY start_date DESC`
	rows, err := r.db.Query(ctx, query, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to fetch work experience: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var w domain.WorkExperience
		if err := rows.Scan(&w.Company, &w.Title, &w.StartDate, &w.EndDate, &w.Description); err != nil {
			return err
		}
		p.Experience = append(p.Experience, w)
	}
	return rows.Err()
}

func (r *profileRepo) loadCertifications(ctx context.Context, p *domain.CandidateProfile) error {
	query := `SELECT name, issuer, date, expiry
	          FROM certifications WHERE user_id = $1 ORDER BY date DESC`
	rows, err := r.db.Query(ctx, query, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to fetch certifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Certification
		if err := rows.Scan(&c.Name, &c.Issuer, &c.Date, &c.Expiry); err != nil {
			return err
		}
		p.Certifications = append(p.Certifications, c)
	}
	return rows.Err()
}

// Upsert writes the profile row and replaces its experience and
// certification children in one transaction.
func (r *profileRepo) Upsert(ctx context.Context, profile *domain.CandidateProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	userID := profile.UserID
	if userID == "" {
		return errors.New("user_id is required")
	}

	var years *int
	if v := profile.YearsExperience.Value; v != nil {
		y := int(*v)
		years = &y
	}
	var offerDeadline *time.Time
	if profile.OfferDeadline != "" {
		if t, err := time.Parse(time.RFC3339, profile.OfferDeadline); err == nil {
			offerDeadline = &t
		}
	}

	query := `
		INSERT INTO candidate_profiles (
			user_id, name, email, phone,
			education, major, school, degree_level, graduation_date,
			gpa, years_of_experience,
			resume_url, linkedin_url, github_url, portfolio_url,
			website_url, twitter_url, leetcode_url, codeforces_url,
			skills, employment_types, languages, frameworks,
			open_to_relocation, requires_sponsorship, offer_deadline,
			timezone, pronouns, referral_source,
			eeo_gender, eeo_race, eeo_veteran_status, eeo_disability_status,
			eeo_prefer_not_to_say,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31, $32, $33, $34, NOW(), NOW()
		)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone,
			education = EXCLUDED.education, major = EXCLUDED.major,
			school = EXCLUDED.school, degree_level = EXCLUDED.degree_level,
			graduation_date = EXCLUDED.graduation_date,
			gpa = EXCLUDED.gpa, years_of_experience = EXCLUDED.years_of_experience,
			resume_url = EXCLUDED.resume_url, linkedin_url = EXCLUDED.linkedin_url,
			github_url = EXCLUDED.github_url, portfolio_url = EXCLUDED.portfolio_url,
			website_url = EXCLUDED.website_url, twitter_url = EXCLUDED.twitter_url,
			leetcode_url = EXCLUDED.leetcode_url, codeforces_url = EXCLUDED.codeforces_url,
			skills = EXCLUDED.skills, employment_types = EXCLUDED.employment_types,
			languages = EXCLUDED.languages, frameworks = EXCLUDED.frameworks,
			open_to_relocation = EXCLUDED.open_to_relocation,
			requires_sponsorship = EXCLUDED.requires_sponsorship,
			offer_deadline = EXCLUDED.offer_deadline,
			timezone = EXCLUDED.timezone, pronouns = EXCLUDED.pronouns,
			referral_source = EXCLUDED.referral_source,
			eeo_gender = EXCLUDED.eeo_gender, eeo_race = EXCLUDED.eeo_race,
			eeo_veteran_status = EXCLUDED.eeo_veteran_status,
			eeo_disability_status = EXCLUDED.eeo_disability_status,
			eeo_prefer_not_to_say = EXCLUDED.eeo_prefer_not_to_say,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err = tx.QueryRow(ctx, query,
		userID, profile.Name, profile.Email, nullIfEmpty(profile.Phone),
		nullIfEmpty(profile.Education), nullIfEmpty(profile.Major),
		nullIfEmpty(profile.School), nullIfEmpty(profile.DegreeLevel),
		nullIfEmpty(profile.GraduationDate),
		profile.GPA.Value, years,
		nullIfEmpty(profile.ResumeURL), nullIfEmpty(profile.LinkedinURL),
		nullIfEmpty(profile.GithubURL), nullIfEmpty(profile.PortfolioURL),
		nullIfEmpty(profile.WebsiteURL), nullIfEmpty(profile.TwitterURL),
		nullIfEmpty(profile.LeetcodeURL), nullIfEmpty(profile.CodeforcesURL),
		pq.Array(profile.Skills), pq.Array(profile.EmploymentTypes),
		pq.Array(profile.Languages), pq.Array(profile.Frameworks),
		profile.OpenToRelocation.Value, profile.RequiresSponsorship.Value,
		offerDeadline,
		nullIfEmpty(profile.Timezone), nullIfEmpty(profile.Pronouns),
		nullIfEmpty(profile.ReferralSource),
		nullIfEmpty(profile.EEOGender), nullIfEmpty(profile.EEORace),
		nullIfEmpty(profile.EEOVeteranStatus), nullIfEmpty(profile.EEODisabilityStatus),
		profile.EEOPreferNotToSay.Bool(),
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	// Work experiences: delete all, insert normalized set
	if _, err := tx.Exec(ctx, `DELETE FROM work_experiences WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear work experience: %w", err)
	}
	if len(profile.Experience) > 0 {
		insert := `INSERT INTO work_experiences (user_id, company, title, start_date, end_date, description)
		           VALUES ($1, $2, $3, $4, $5, $6)`
		for _, w := range profile.Experience {
			if _, err := tx.Exec(ctx, insert, userID, w.Company, w.Title, w.StartDate, w.EndDate, w.Description); err != nil {
				return fmt.Errorf("failed to insert work experience: %w", err)
			}
		}
	}

	// Certifications: same replace strategy
	if _, err := tx.Exec(ctx, `DELETE FROM certifications WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear certifications: %w", err)
	}
	if len(profile.Certifications) > 0 {
		insert := `INSERT INTO certifications (user_id, name, issuer, date, expiry)
		           VALUES ($1, $2, $3, $4, $5)`
		for _, c := range profile.Certifications {
			if _, err := tx.Exec(ctx, insert, userID, c.Name, c.Issuer, c.Date, c.Expiry); err != nil {
				return fmt.Errorf("failed to insert certification: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *profileRepo) UpdateResumeURL(ctx context.Context, userID, resumeURL string) error {
	query := `UPDATE candidate_profiles SET resume_url = $2, updated_at = NOW() WHERE user_id = $1`
	result, err := r.db.Exec(ctx, query, userID, resumeURL)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// nullIfEmpty maps "" to NULL so COALESCE reads stay symmetric.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
