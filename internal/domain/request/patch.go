package request

import (
	"fmt"
	"strings"

	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/biztime"
)

// CustomerPatch lists the fields a customer may change while the request is
// still new. Nil fields are left untouched.
type CustomerPatch struct {
	Title              *string     `validate:"omitnil,min=1,max=200"`
	Description        *string     `validate:"omitnil,min=1,max=5000"`
	Urgency            *vo.Urgency `validate:"omitnil,oneof=low medium high critical"`
	ProblemDescription *string     `validate:"omitnil,max=5000"`
	Address            *string     `validate:"omitnil,max=255"`
	Region             *string     `validate:"omitnil,max=100"`
	City               *string     `validate:"omitnil,max=100"`
	Latitude           *float64    `validate:"omitnil,gte=-90,lte=90,required_with=Longitude"`
	Longitude          *float64    `validate:"omitnil,gte=-180,lte=180,required_with=Latitude"`
}

func (p CustomerPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Urgency == nil && p.ProblemDescription == nil &&
		p.Address == nil && p.Region == nil && p.City == nil && p.Latitude == nil && p.Longitude == nil
}

// ManagerPatch lists the triage fields the owning manager may change on a
// non-terminal request.
type ManagerPatch struct {
	Priority       *vo.Priority `validate:"omitnil,oneof=low normal high urgent"`
	EstimatedCost  *float64     `validate:"omitnil,gte=0"`
	ManagerComment *string      `validate:"omitnil,max=2000"`
}

func (p ManagerPatch) IsEmpty() bool {
	return p.Priority == nil && p.EstimatedCost == nil && p.ManagerComment == nil
}

func (r *Request) ApplyCustomerPatch(p CustomerPatch) error {
	if r.status != vo.StatusNew {
		return fmt.Errorf("%w: request details are frozen once status is %s", ErrInvalidTransition, r.status)
	}

	d := r.details
	if p.Title != nil {
		d.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		d.Description = strings.TrimSpace(*p.Description)
	}
	if p.Urgency != nil {
		d.Urgency = *p.Urgency
	}
	if p.ProblemDescription != nil {
		d.ProblemDescription = *p.ProblemDescription
	}
	if p.Address != nil {
		d.Address = *p.Address
	}
	if p.Region != nil {
		d.Region = *p.Region
	}
	if p.City != nil {
		d.City = *p.City
	}
	if p.Latitude != nil && p.Longitude != nil {
		point, err := vo.NewGeoPoint(*p.Latitude, *p.Longitude)
		if err != nil {
			return err
		}
		d.Location = point
	}
	if err := d.validate(); err != nil {
		return err
	}

	r.details = d
	r.touch()
	return nil
}

func (r *Request) ApplyManagerPatch(p ManagerPatch) error {
	if r.status.IsTerminal() {
		return fmt.Errorf("%w: request is %s", ErrInvalidTransition, r.status)
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", *p.Priority)
	}
	if p.EstimatedCost != nil && *p.EstimatedCost < 0 {
		return fmt.Errorf("estimated cost cannot be negative")
	}

	if p.Priority != nil {
		r.priority = *p.Priority
	}
	if p.EstimatedCost != nil {
		cost := *p.EstimatedCost
		r.estimatedCost = &cost
	}
	if p.ManagerComment != nil {
		comment := *p.ManagerComment
		r.managerComment = &comment
	}
	r.touch()
	return nil
}

func (r *Request) touch() {
	r.updatedAt = biztime.NowUTC()
	r.version++
}
