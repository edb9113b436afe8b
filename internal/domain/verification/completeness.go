package verification

import (
	"strings"

	"github.com/minerepair/repairhub/internal/domain/contractor"
)

// Completeness is the result of checking a profile against the required fields.
type Completeness struct {
	ProfileCompleted  bool
	DocumentsUploaded bool
	Missing           []string
}

// EvaluateProfile checks the required profile fields plus at least one
// education record for ProfileCompleted, and at least one document for
// DocumentsUploaded.
func EvaluateProfile(p *contractor.Profile) Completeness {
	var missing []string
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	require("first_name", p.FirstName)
	require("last_name", p.LastName)
	require("phone", p.Phone)
	require("email", p.Email)
	require("passport_series", p.PassportSeries)
	require("passport_number", p.PassportNumber)
	require("inn", p.INN)
	if !hasNonBlank(p.Specializations) {
		missing = append(missing, "specializations")
	}
	if !hasNonBlank(p.EquipmentBrands) {
		missing = append(missing, "equipment_brands")
	}
	if p.EducationCount < 1 {
		missing = append(missing, "education")
	}

	c := Completeness{
		ProfileCompleted:  len(missing) == 0,
		DocumentsUploaded: p.DocumentCount >= 1,
	}
	if !c.DocumentsUploaded {
		missing = append(missing, "documents")
	}
	c.Missing = missing
	return c
}

func hasNonBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// Summary renders the missing fields for the profile notes.
func (c Completeness) Summary() string {
	if len(c.Missing) == 0 {
		return "profile complete"
	}
	return "missing: " + strings.Join(c.Missing, ", ")
}
