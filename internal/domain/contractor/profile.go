// Package contractor exposes the parts of a contractor profile that the
// verification gate reads. Profile editing lives outside this service.
package contractor

import "context"

// Profile is a read-only snapshot of a contractor profile together with
// counts of its education and document records.
type Profile struct {
	ID              uint
	UserID          uint
	FirstName       string
	LastName        string
	Phone           string
	Email           string
	PassportSeries  string
	PassportNumber  string
	INN             string
	Specializations []string
	EquipmentBrands []string
	EducationCount  int
	DocumentCount   int
}

type ProfileRepository interface {
	// GetByUserID returns ErrProfileNotFound when the contractor has no profile.
	GetByUserID(ctx context.Context, userID uint) (*Profile, error)
}
