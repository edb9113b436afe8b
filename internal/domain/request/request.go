// Package request holds the repair request aggregate and its lifecycle.
package request

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/domain/shared/events"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/biztime"
)

// Length limits are in characters.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
)

// Details are the customer-supplied fields of a new request.
type Details struct {
	Title              string
	Description        string
	Urgency            vo.Urgency
	Equipment          vo.Equipment
	ProblemDescription string
	Address            string
	Region             string
	City               string
	Location           *vo.GeoPoint
}

func (d Details) validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(d.Title) > MaxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", MaxTitleLength)
	}
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(d.Description) > MaxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length of %d characters", MaxDescriptionLength)
	}
	if !d.Urgency.IsValid() {
		return fmt.Errorf("invalid urgency: %s", d.Urgency)
	}
	return nil
}

// Request is a unit of repair work opened by a customer. It is mutated only
// through the workflow methods below and never deleted by them.
type Request struct {
	id                   uint
	customerID           uint
	details              Details
	priority             vo.Priority
	status               vo.Status
	managerID            *uint
	assignedContractorID *uint
	clarificationDetails *string
	managerComment       *string
	estimatedCost        *float64
	finalPrice           *float64
	createdAt            time.Time
	updatedAt            time.Time
	processedAt          *time.Time
	assignedAt           *time.Time
	sentToBotAt          *time.Time
	version              int

	events.Recorder
}

func NewRequest(customerID uint, details Details) (*Request, error) {
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if err := details.validate(); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Request{
		customerID: customerID,
		details:    details,
		priority:   vo.PriorityNormal,
		status:     vo.StatusNew,
		createdAt:  now,
		updatedAt:  now,
		version:    1,
	}, nil
}

// State is the persisted form of a request, used to rebuild the aggregate.
type State struct {
	ID                   uint
	CustomerID           uint
	Details              Details
	Priority             vo.Priority
	Status               vo.Status
	ManagerID            *uint
	AssignedContractorID *uint
	ClarificationDetails *string
	ManagerComment       *string
	EstimatedCost        *float64
	FinalPrice           *float64
	CreatedAt            time.Time
	UpdatedAt            time.Time
	ProcessedAt          *time.Time
	AssignedAt           *time.Time
	SentToBotAt          *time.Time
	Version              int
}

func ReconstructRequest(s State) (*Request, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("request ID cannot be zero")
	}
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", s.Status)
	}
	if !s.Priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", s.Priority)
	}
	if !s.Details.Urgency.IsValid() {
		return nil, fmt.Errorf("invalid urgency: %s", s.Details.Urgency)
	}

	return &Request{
		id:                   s.ID,
		customerID:           s.CustomerID,
		details:              s.Details,
		priority:             s.Priority,
		status:               s.Status,
		managerID:            s.ManagerID,
		assignedContractorID: s.AssignedContractorID,
		clarificationDetails: s.ClarificationDetails,
		managerComment:       s.ManagerComment,
		estimatedCost:        s.EstimatedCost,
		finalPrice:           s.FinalPrice,
		createdAt:            s.CreatedAt,
		updatedAt:            s.UpdatedAt,
		processedAt:          s.ProcessedAt,
		assignedAt:           s.AssignedAt,
		sentToBotAt:          s.SentToBotAt,
		version:              s.Version,
	}, nil
}

// Snapshot returns the current state for persistence and read models.
func (r *Request) Snapshot() State {
	return State{
		ID:                   r.id,
		CustomerID:           r.customerID,
		Details:              r.details,
		Priority:             r.priority,
		Status:               r.status,
		ManagerID:            r.managerID,
		AssignedContractorID: r.assignedContractorID,
		ClarificationDetails: r.clarificationDetails,
		ManagerComment:       r.managerComment,
		EstimatedCost:        r.estimatedCost,
		FinalPrice:           r.finalPrice,
		CreatedAt:            r.createdAt,
		UpdatedAt:            r.updatedAt,
		ProcessedAt:          r.processedAt,
		AssignedAt:           r.assignedAt,
		SentToBotAt:          r.sentToBotAt,
		Version:              r.version,
	}
}

func (r *Request) ID() uint                      { return r.id }
func (r *Request) CustomerID() uint              { return r.customerID }
func (r *Request) Details() Details              { return r.details }
func (r *Request) Title() string                 { return r.details.Title }
func (r *Request) Priority() vo.Priority         { return r.priority }
func (r *Request) Status() vo.Status             { return r.status }
func (r *Request) ManagerID() *uint              { return r.managerID }
func (r *Request) AssignedContractorID() *uint   { return r.assignedContractorID }
func (r *Request) ClarificationDetails() *string { return r.clarificationDetails }
func (r *Request) ManagerComment() *string       { return r.managerComment }
func (r *Request) EstimatedCost() *float64       { return r.estimatedCost }
func (r *Request) FinalPrice() *float64          { return r.finalPrice }
func (r *Request) CreatedAt() time.Time          { return r.createdAt }
func (r *Request) UpdatedAt() time.Time          { return r.updatedAt }
func (r *Request) ProcessedAt() *time.Time       { return r.processedAt }
func (r *Request) AssignedAt() *time.Time        { return r.assignedAt }
func (r *Request) SentToBotAt() *time.Time       { return r.sentToBotAt }
func (r *Request) Version() int                  { return r.version }

func (r *Request) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("request ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("request ID cannot be zero")
	}
	r.id = id
	return nil
}

// IsOwnedBy reports whether customerID opened the request.
func (r *Request) IsOwnedBy(customerID uint) bool {
	return r.customerID == customerID
}

// IsManagedBy reports whether managerID is the owning manager.
func (r *Request) IsManagedBy(managerID uint) bool {
	return r.managerID != nil && *r.managerID == managerID
}

// IsAssignedTo reports whether contractorID is the assigned contractor.
func (r *Request) IsAssignedTo(contractorID uint) bool {
	return r.assignedContractorID != nil && *r.assignedContractorID == contractorID
}

// IsParticipant reports whether userID is the customer, the owning manager
// or the assigned contractor.
func (r *Request) IsParticipant(userID uint) bool {
	return r.IsOwnedBy(userID) || r.IsManagedBy(userID) || r.IsAssignedTo(userID)
}

// CanBeViewedBy applies the read visibility rules. canRespond is the
// caller's verification gate result and only matters for contractors.
func (r *Request) CanBeViewedBy(p authorization.Principal, canRespond bool) bool {
	switch p.Role {
	case authorization.RoleManager, authorization.RoleAdmin:
		return true
	case authorization.RoleCustomer:
		return r.IsOwnedBy(p.UserID)
	case authorization.RoleContractor:
		return r.IsAssignedTo(p.UserID) || (canRespond && r.status.IsBroadcast())
	case authorization.RoleSecurity, authorization.RoleHR:
		return false
	}
	return false
}

// MarkCreated records the creation event once the request has an ID.
func (r *Request) MarkCreated(actor authorization.Principal) {
	r.Record(NewRequestCreatedEvent(r, actor))
}

func (r *Request) ensureTransition(to vo.Status) error {
	if !r.status.CanTransitionTo(to) {
		return transitionError(r.status, to)
	}
	return nil
}

// changeStatus must only follow a successful ensureTransition. Field updates
// happen before it so the recorded event carries the new state.
func (r *Request) changeStatus(to vo.Status, actor authorization.Principal, comment string, now time.Time) {
	from := r.status
	r.status = to
	r.updatedAt = now
	r.version++
	r.Record(NewStatusChangedEvent(r, from, actor, comment, now))
}

// AssignManager moves the request into manager review. It is also the
// return edge out of clarification.
func (r *Request) AssignManager(managerID uint, actor authorization.Principal) error {
	if managerID == 0 {
		return fmt.Errorf("manager ID cannot be zero")
	}
	if err := r.ensureTransition(vo.StatusManagerReview); err != nil {
		return err
	}

	now := biztime.NowUTC()
	r.managerID = &managerID
	r.processedAt = &now
	r.changeStatus(vo.StatusManagerReview, actor, "", now)
	return nil
}

func (r *Request) AddClarification(details string, actor authorization.Principal) error {
	if strings.TrimSpace(details) == "" {
		return fmt.Errorf("clarification details are required")
	}
	if err := r.ensureTransition(vo.StatusClarification); err != nil {
		return err
	}

	r.clarificationDetails = &details
	r.changeStatus(vo.StatusClarification, actor, details, biztime.NowUTC())
	return nil
}

func (r *Request) SendToContractors(actor authorization.Principal) error {
	if err := r.ensureTransition(vo.StatusSentToContractors); err != nil {
		return err
	}

	now := biztime.NowUTC()
	r.sentToBotAt = &now
	r.changeStatus(vo.StatusSentToContractors, actor, "", now)
	return nil
}

// RegisterResponse notes that a contractor answered the broadcast.
func (r *Request) RegisterResponse(actor authorization.Principal) error {
	if err := r.ensureTransition(vo.StatusContractorResponses); err != nil {
		return err
	}

	r.changeStatus(vo.StatusContractorResponses, actor, "", biztime.NowUTC())
	return nil
}

// CanAcceptResponses reports whether a contractor response may be recorded now.
func (r *Request) CanAcceptResponses() bool {
	return r.status.CanTransitionTo(vo.StatusContractorResponses)
}

// AssignContractor sets the contractor. The caller must already have
// confirmed that the contractor passed verification.
func (r *Request) AssignContractor(contractorID uint, actor authorization.Principal) error {
	if contractorID == 0 {
		return fmt.Errorf("contractor ID cannot be zero")
	}
	if err := r.ensureTransition(vo.StatusAssigned); err != nil {
		return err
	}

	now := biztime.NowUTC()
	r.assignedContractorID = &contractorID
	r.assignedAt = &now
	r.changeStatus(vo.StatusAssigned, actor, "", now)
	return nil
}

func (r *Request) StartWork(actor authorization.Principal) error {
	if err := r.ensureTransition(vo.StatusInProgress); err != nil {
		return err
	}

	r.changeStatus(vo.StatusInProgress, actor, "", biztime.NowUTC())
	return nil
}

func (r *Request) CompleteWork(finalPrice *float64, actor authorization.Principal) error {
	if finalPrice != nil && *finalPrice < 0 {
		return fmt.Errorf("final price cannot be negative")
	}
	if err := r.ensureTransition(vo.StatusCompleted); err != nil {
		return err
	}

	now := biztime.NowUTC()
	if finalPrice != nil {
		price := *finalPrice
		r.finalPrice = &price
	}
	r.processedAt = &now
	r.changeStatus(vo.StatusCompleted, actor, "", now)
	return nil
}

// Cancel stores the reason in the manager comment.
func (r *Request) Cancel(reason string, actor authorization.Principal) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("cancellation reason is required")
	}
	if err := r.ensureTransition(vo.StatusCancelled); err != nil {
		return err
	}

	r.managerComment = &reason
	r.changeStatus(vo.StatusCancelled, actor, reason, biztime.NowUTC())
	return nil
}
