package verification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minerepair/repairhub/internal/application/verification/usecases"
	"github.com/minerepair/repairhub/internal/interfaces/http/handlers/common"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/logger"
	"github.com/minerepair/repairhub/internal/shared/utils"
)

type UseCases struct {
	Recompute     usecases.RecomputeProfileCompletionExecutor
	SecurityCheck usecases.SecurityCheckExecutor
	ManagerCheck  usecases.ManagerCheckExecutor
	CanRespond    usecases.CanRespondExecutor
	Get           usecases.GetVerificationExecutor
	List          usecases.ListVerificationsExecutor
}

type VerificationHandler struct {
	uc     UseCases
	logger logger.Interface
}

func NewVerificationHandler(uc UseCases, logger logger.Interface) *VerificationHandler {
	return &VerificationHandler{uc: uc, logger: logger}
}

// ListVerifications handles GET /verifications
//
//	@Summary	List contractor verifications
//	@Security	Bearer
//	@Tags		verifications
//	@Produce	json
//	@Param		status		query		string	false	"Overall status"
//	@Param		page		query		int		false	"Page"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	utils.APIResponse{data=utils.ListResponse}
//	@Router		/verifications [get]
func (h *VerificationHandler) ListVerifications(c *gin.Context) {
	actor, ok := common.RequirePrincipal(c)
	if !ok {
		return
	}
	pagination := utils.ParsePagination(c)

	result, err := h.uc.List.Execute(c.Request.Context(), usecases.ListVerificationsQuery{
		Actor:    actor,
		Status:   c.Query("status"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Verifications, result.Total, result.Page, result.PageSize)
}

// GetVerification handles GET /verifications/:contractor_id
func (h *VerificationHandler) GetVerification(c *gin.Context) {
	actor, contractorID, ok := h.principalAndContractor(c)
	if !ok {
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), usecases.GetVerificationQuery{Actor: actor, ContractorID: contractorID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Recompute handles POST /verifications/:contractor_id/recompute
func (h *VerificationHandler) Recompute(c *gin.Context) {
	actor, contractorID, ok := h.principalAndContractor(c)
	if !ok {
		return
	}

	result, err := h.uc.Recompute.Execute(c.Request.Context(), usecases.RecomputeProfileCompletionCommand{
		Actor:        actor,
		ContractorID: contractorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile completion recomputed", result)
}

// SecurityCheck handles POST /verifications/:contractor_id/security-check
//
//	@Summary		Record the security check
//	@Description	Rejection deactivates the contractor account.
//	@Security		Bearer
//	@Tags			verifications
//	@Accept			json
//	@Produce		json
//	@Param			contractor_id	path		int				true	"Contractor user ID"
//	@Param			request			body		ReviewRequest	true	"Decision"
//	@Success		200				{object}	utils.APIResponse{data=dto.VerificationDTO}
//	@Router			/verifications/{contractor_id}/security-check [post]
func (h *VerificationHandler) SecurityCheck(c *gin.Context) {
	actor, contractorID, ok := h.principalAndContractor(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if !common.BindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.uc.SecurityCheck.Execute(c.Request.Context(), usecases.SecurityCheckCommand{
		Actor:        actor,
		ContractorID: contractorID,
		Approved:     *req.Approved,
		Notes:        req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Security check recorded", result)
}

// ManagerCheck handles POST /verifications/:contractor_id/manager-check
func (h *VerificationHandler) ManagerCheck(c *gin.Context) {
	actor, contractorID, ok := h.principalAndContractor(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if !common.BindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.uc.ManagerCheck.Execute(c.Request.Context(), usecases.ManagerCheckCommand{
		Actor:        actor,
		ContractorID: contractorID,
		Approved:     *req.Approved,
		Notes:        req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Manager decision recorded", result)
}

// CanRespond handles GET /verifications/:contractor_id/can-respond
func (h *VerificationHandler) CanRespond(c *gin.Context) {
	actor, contractorID, ok := h.principalAndContractor(c)
	if !ok {
		return
	}

	result, err := h.uc.CanRespond.Execute(c.Request.Context(), usecases.CanRespondQuery{Actor: actor, ContractorID: contractorID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *VerificationHandler) principalAndContractor(c *gin.Context) (authorization.Principal, uint, bool) {
	actor, ok := common.RequirePrincipal(c)
	if !ok {
		return actor, 0, false
	}
	contractorID, err := utils.ParseUintParam(c, "contractor_id", "contractor")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return actor, 0, false
	}
	return actor, contractorID, true
}
