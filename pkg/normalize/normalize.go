// Package normalize canonicalizes already-validated candidate data before
// it crosses the persistence boundary. Every function is deterministic and
// idempotent: normalizing twice yields the same result as normalizing once.
package normalize

import (
	"math"
	"net/url"
	"strings"
	"time"
	"unicode"

	"go-applytrack-backend/internal/domain"
)

// Name title-cases a full name word by word: lowercase each word,
// uppercase its first rune, collapse surrounding whitespace.
func Name(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Email trims and lowercases an address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Phone reformats a phone number to a display form:
//
//	10 digits                -> (XXX) XXX-XXXX
//	11 digits leading 1      -> +1-XXX-XXX-XXXX
//	more than 11 digits      -> +<countrycode>-XXX-XXX-XXXX (last 10 local)
//
// Anything else is returned trimmed but otherwise untouched; shape was
// already gated by validation.
func Phone(s string) string {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case len(d) == 10:
		return "(" + d[0:3] + ") " + d[3:6] + "-" + d[6:10]
	case len(d) == 11 && d[0] == '1':
		return "+1-" + d[1:4] + "-" + d[4:7] + "-" + d[7:11]
	case len(d) > 11:
		local := d[len(d)-10:]
		country := d[:len(d)-10]
		return "+" + country + "-" + local[0:3] + "-" + local[3:6] + "-" + local[6:10]
	default:
		return strings.TrimSpace(s)
	}
}

// Skills trims, lowercases and de-duplicates, dropping blanks. First
// occurrence wins the position.
func Skills(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// StringSet trims, drops blanks and de-duplicates, preserving case and
// first-seen order. Used for employment types, languages and frameworks.
func StringSet(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// URL coerces a bare host to https:// and re-validates. A value that still
// does not parse to a host becomes empty. Existing http:// or https://
// prefixes pass through unchanged; the protocol is never upgraded.
func URL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return s
}

// dateLayouts are the input shapes the form layer has been observed to send.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// YearMonth truncates any parseable date string to YYYY-MM, taking year and
// zero-padded month from the parsed value. Unparseable input becomes empty.
func YearMonth(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01")
		}
	}
	return ""
}

// Timestamp parses a datetime string and re-emits it as RFC3339.
// Unparseable input becomes empty (null), not an error; validation
// already gated shape where it matters.
func Timestamp(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.RFC3339)
		}
	}
	return ""
}

// Experience canonicalizes work history entries and drops any entry that
// ends up without a company, title or valid start date. A blank-company
// entry is never stored.
func Experience(in []domain.WorkExperience) []domain.WorkExperience {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.WorkExperience, 0, len(in))
	for _, e := range in {
		e.Company = strings.TrimSpace(e.Company)
		e.Title = strings.TrimSpace(e.Title)
		e.Description = strings.TrimSpace(e.Description)
		e.StartDate = YearMonth(e.StartDate)
		if e.EndDate != nil {
			if ym := YearMonth(*e.EndDate); ym != "" {
				e.EndDate = &ym
			} else {
				e.EndDate = nil
			}
		}
		if e.Company == "" || e.Title == "" || e.StartDate == "" {
			continue
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Certifications applies the same canonicalize-then-filter rule to
// certification entries.
func Certifications(in []domain.Certification) []domain.Certification {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Certification, 0, len(in))
	for _, c := range in {
		c.Name = strings.TrimSpace(c.Name)
		c.Issuer = strings.TrimSpace(c.Issuer)
		c.Date = YearMonth(c.Date)
		if c.Expiry != nil {
			if ym := YearMonth(*c.Expiry); ym != "" {
				c.Expiry = &ym
			} else {
				c.Expiry = nil
			}
		}
		if c.Name == "" || c.Issuer == "" || c.Date == "" {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Profile applies every normalization rule to a validated profile in place.
// It also enforces the EEO invariant: when prefer-not-to-say is set, all
// four disclosure fields are cleared in the same pass.
func Profile(p *domain.CandidateProfile) {
	p.Name = Name(p.Name)
	p.Email = Email(p.Email)
	p.Phone = Phone(p.Phone)

	p.Education = strings.TrimSpace(p.Education)
	p.Major = strings.TrimSpace(p.Major)
	p.School = strings.TrimSpace(p.School)
	p.DegreeLevel = strings.TrimSpace(p.DegreeLevel)
	p.GraduationDate = YearMonth(p.GraduationDate)

	p.ResumeURL = URL(p.ResumeURL)
	p.LinkedinURL = URL(p.LinkedinURL)
	p.GithubURL = URL(p.GithubURL)
	p.PortfolioURL = URL(p.PortfolioURL)
	p.WebsiteURL = URL(p.WebsiteURL)
	p.TwitterURL = URL(p.TwitterURL)
	p.LeetcodeURL = URL(p.LeetcodeURL)
	p.CodeforcesURL = URL(p.CodeforcesURL)

	p.Skills = Skills(p.Skills)
	p.Experience = Experience(p.Experience)
	p.Certifications = Certifications(p.Certifications)

	p.EmploymentTypes = StringSet(p.EmploymentTypes)
	p.Languages = StringSet(p.Languages)
	p.Frameworks = StringSet(p.Frameworks)

	p.OfferDeadline = Timestamp(p.OfferDeadline)

	if v := p.GPA.Value; v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
		p.GPA.Value = nil
	}
	if v := p.YearsExperience.Value; v != nil {
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			p.YearsExperience.Value = nil
		} else {
			years := math.Round(*v)
			if years < 0 {
				years = 0
			}
			p.YearsExperience.Set(years)
		}
	}

	p.Timezone = strings.TrimSpace(p.Timezone)
	p.Pronouns = strings.TrimSpace(p.Pronouns)
	p.ReferralSource = strings.TrimSpace(p.ReferralSource)

	if p.EEOPreferNotToSay.Bool() {
		p.EEOGender = ""
		p.EEORace = ""
		p.EEOVeteranStatus = ""
		p.EEODisabilityStatus = ""
	} else {
		p.EEOGender = strings.TrimSpace(p.EEOGender)
		p.EEORace = strings.TrimSpace(p.EEORace)
		p.EEOVeteranStatus = strings.TrimSpace(p.EEOVeteranStatus)
		p.EEODisabilityStatus = strings.TrimSpace(p.EEODisabilityStatus)
	}
}
