package http

import (
	"github.com/minerepair/repairhub/internal/domain/contractor"
	"github.com/minerepair/repairhub/internal/domain/request"
	"github.com/minerepair/repairhub/internal/domain/user"
	"github.com/minerepair/repairhub/internal/domain/verification"
	"github.com/minerepair/repairhub/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo         user.Repository
	requestRepo      request.RequestRepository
	responseRepo     request.ResponseRepository
	historyRepo      request.HistoryRepository
	verificationRepo verification.Repository
	profileRepo      contractor.ProfileRepository
}

func (c *Container) wireRepositories() *repositories {
	return &repositories{
		userRepo:         repository.NewUserRepository(c.db, c.log),
		requestRepo:      repository.NewRequestRepository(c.db),
		responseRepo:     repository.NewContractorResponseRepository(c.db),
		historyRepo:      repository.NewRequestHistoryRepository(c.db),
		verificationRepo: repository.NewVerificationRepository(c.db),
		profileRepo:      repository.NewContractorProfileRepository(c.db),
	}
}
