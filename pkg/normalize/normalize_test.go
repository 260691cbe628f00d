package normalize_test

import (
	"testing"

	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/normalize"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "John Doe", normalize.Name("john doe"))
	assert.Equal(t, "Mary Jane Smith", normalize.Name("MARY JANE SMITH"))
	assert.Equal(t, "John Doe", normalize.Name("  john   doe  "))
	assert.Equal(t, "", normalize.Name("   "))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "john@example.com", normalize.Email("  John@Example.COM "))
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234567890", "(123) 456-7890"},
		{"(123) 456-7890", "(123) 456-7890"},
		{"123-456-7890", "(123) 456-7890"},
		{"11234567890", "+1-123-456-7890"},
		{"+1 (123) 456-7890", "+1-123-456-7890"},
		{"+44 1234 567890", "+44-123-456-7890"},
		{"invalid", "invalid"},
		{"12345", "12345"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize.Phone(tt.in), "input %q", tt.in)
	}
}

func TestPhoneIdempotent(t *testing.T) {
	for _, in := range []string{"1234567890", "11234567890", "+441234567890", "invalid"} {
		once := normalize.Phone(in)
		assert.Equal(t, once, normalize.Phone(once), "input %q", in)
	}
}

func TestSkills(t *testing.T) {
	got := normalize.Skills([]string{"JavaScript", "javascript", "JAVASCRIPT", " Go ", ""})
	assert.Equal(t, []string{"javascript", "go"}, got)

	assert.Nil(t, normalize.Skills(nil))
	assert.Nil(t, normalize.Skills([]string{" ", ""}))
}

func TestStringSet(t *testing.T) {
	got := normalize.StringSet([]string{"Full-time", " Full-time", "Contract", ""})
	assert.Equal(t, []string{"Full-time", "Contract"}, got)
}

func TestURL(t *testing.T) {
	assert.Equal(t, "https://example.com", normalize.URL("example.com"))
	assert.Equal(t, "https://example.com", normalize.URL(" example.com "))
	assert.Equal(t, "http://example.com", normalize.URL("http://example.com"))
	assert.Equal(t, "https://github.com/johndoe", normalize.URL("github.com/johndoe"))
	assert.Equal(t, "", normalize.URL("://bad"))
	assert.Equal(t, "", normalize.URL(""))
}

func TestURLIdempotent(t *testing.T) {
	for _, in := range []string{"example.com", "https://example.com", "http://example.com"} {
		once := normalize.URL(in)
		assert.Equal(t, once, normalize.URL(once), "input %q", in)
	}
}

func TestYearMonth(t *testing.T) {
	assert.Equal(t, "2023-06", normalize.YearMonth("2023-06-15"))
	assert.Equal(t, "2023-06", normalize.YearMonth("2023-06"))
	assert.Equal(t, "2023-06", normalize.YearMonth("2023/06/15"))
	assert.Equal(t, "2023-06", normalize.YearMonth("2023-06-15T10:30:00Z"))
	assert.Equal(t, "", normalize.YearMonth("not-a-date"))
	assert.Equal(t, "", normalize.YearMonth(""))

	// Idempotent: YYYY-MM in, YYYY-MM out
	assert.Equal(t, "2023-06", normalize.YearMonth(normalize.YearMonth("2023-06-15")))
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "2023-06-15T00:00:00Z", normalize.Timestamp("2023-06-15"))
	assert.Equal(t, "2023-06-15T10:30:00Z", normalize.Timestamp("2023-06-15T10:30:00Z"))
	assert.Equal(t, "", normalize.Timestamp("soon"))

	once := normalize.Timestamp("2023-06-15")
	assert.Equal(t, once, normalize.Timestamp(once))
}

func TestExperienceDropsInvalidEntries(t *testing.T) {
	end := "2022-03-01"
	in := []domain.WorkExperience{
		{Company: " Acme ", Title: "Engineer", StartDate: "2020-01-15", EndDate: &end},
		{Company: "", Title: "Ghost", StartDate: "2020-01"},
		{Company: "NoStart", Title: "Engineer", StartDate: "whenever"},
	}
	got := normalize.Experience(in)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "Acme", got[0].Company)
		assert.Equal(t, "2020-01", got[0].StartDate)
		if assert.NotNil(t, got[0].EndDate) {
			assert.Equal(t, "2022-03", *got[0].EndDate)
		}
	}
}

func TestExperienceNullsUnparseableEndDate(t *testing.T) {
	bad := "still here"
	got := normalize.Experience([]domain.WorkExperience{
		{Company: "Acme", Title: "Engineer", StartDate: "2020-01", EndDate: &bad},
	})
	if assert.Len(t, got, 1) {
		assert.Nil(t, got[0].EndDate)
	}
}

func TestCertificationsDropsInvalidEntries(t *testing.T) {
	got := normalize.Certifications([]domain.Certification{
		{Name: "CKA", Issuer: "CNCF", Date: "2023-05-10"},
		{Name: "Unissued", Issuer: "", Date: "2023-05"},
	})
	if assert.Len(t, got, 1) {
		assert.Equal(t, "2023-05", got[0].Date)
	}
}

func TestProfileEEOClearing(t *testing.T) {
	preferNot := true
	p := &domain.CandidateProfile{
		Name:                "jane roe",
		Email:               "jane@example.com",
		EEOGender:           "female",
		EEORace:             "asian",
		EEOVeteranStatus:    "none",
		EEODisabilityStatus: "none",
		EEOPreferNotToSay:   domain.FlexBool{Value: &preferNot},
	}
	normalize.Profile(p)
	assert.Empty(t, p.EEOGender)
	assert.Empty(t, p.EEORace)
	assert.Empty(t, p.EEOVeteranStatus)
	assert.Empty(t, p.EEODisabilityStatus)
	assert.True(t, p.EEOPreferNotToSay.Bool())
}

func TestProfileNumericCleanup(t *testing.T) {
	p := &domain.CandidateProfile{Name: "a", Email: "a@b.c"}
	p.YearsExperience.Set(3.7)
	normalize.Profile(p)
	if assert.NotNil(t, p.YearsExperience.Value) {
		assert.Equal(t, 4.0, *p.YearsExperience.Value)
	}

	p2 := &domain.CandidateProfile{Name: "a", Email: "a@b.c"}
	p2.YearsExperience.Set(-2)
	normalize.Profile(p2)
	if assert.NotNil(t, p2.YearsExperience.Value) {
		assert.Equal(t, 0.0, *p2.YearsExperience.Value)
	}
}

func TestProfileIdempotent(t *testing.T) {
	p := &domain.CandidateProfile{
		Name:        "john doe",
		Email:       "John@Example.COM",
		Phone:       "1234567890",
		Skills:      []string{"Go", "go"},
		LinkedinURL: "linkedin.com/in/johndoe",
	}
	normalize.Profile(p)
	first := *p
	normalize.Profile(p)
	assert.Equal(t, first.Name, p.Name)
	assert.Equal(t, first.Email, p.Email)
	assert.Equal(t, first.Phone, p.Phone)
	assert.Equal(t, first.Skills, p.Skills)
	assert.Equal(t, first.LinkedinURL, p.LinkedinURL)
}
