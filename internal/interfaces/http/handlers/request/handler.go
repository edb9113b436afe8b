package request

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minerepair/repairhub/internal/application/request/usecases"
	"github.com/minerepair/repairhub/internal/interfaces/http/handlers/common"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/logger"
	"github.com/minerepair/repairhub/internal/shared/utils"
)

// UseCases groups the executors the handler dispatches to.
type UseCases struct {
	Create            usecases.CreateRequestExecutor
	Update            usecases.UpdateRequestExecutor
	Get               usecases.GetRequestExecutor
	List              usecases.ListRequestsExecutor
	History           usecases.GetRequestHistoryExecutor
	ListResponses     usecases.ListResponsesExecutor
	AssignToManager   usecases.AssignToManagerExecutor
	AddClarification  usecases.AddClarificationExecutor
	SendToContractors usecases.SendToContractorsExecutor
	Respond           usecases.RespondToRequestExecutor
	AssignContractor  usecases.AssignContractorExecutor
	StartWork         usecases.StartWorkExecutor
	CompleteWork      usecases.CompleteWorkExecutor
	Cancel            usecases.CancelRequestExecutor
}

type RequestHandler struct {
	uc     UseCases
	logger logger.Interface
}

func NewRequestHandler(uc UseCases, logger logger.Interface) *RequestHandler {
	return &RequestHandler{uc: uc, logger: logger}
}

// CreateRequest handles POST /requests
//
//	@Summary		Create repair request
//	@Description	Customer submits a repair request. Admins must pass customer_id.
//	@Security		Bearer
//	@Tags			requests
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateRequestRequest	true	"Request data"
//	@Success		201		{object}	utils.APIResponse{data=dto.RequestDTO}
//	@Failure		400		{object}	utils.APIResponse
//	@Failure		403		{object}	utils.APIResponse
//	@Router			/requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	actor, ok := common.RequirePrincipal(c)
	if !ok {
		return
	}
	var req CreateRequestRequest
	if !common.BindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Request created successfully")
}

// ListRequests handles GET /requests
//
//	@Summary	List repair requests visible to the caller
//	@Security	Bearer
//	@Tags		requests
//	@Produce	json
//	@Param		status		query		string	false	"Comma separated statuses"
//	@Param		urgency		query		string	false	"Urgency"
//	@Param		city		query		string	false	"City"
//	@Param		mine		query		bool	false	"Managers: only requests they own"
//	@Param		page		query		int		false	"Page"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	utils.APIResponse{data=utils.ListResponse}
//	@Router		/requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	actor, ok := common.RequirePrincipal(c)
	if !ok {
		return
	}

	result, err := h.uc.List.Execute(c.Request.Context(), parseListRequestsQuery(c, actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Requests, result.Total, result.Page, result.PageSize)
}

// GetRequest handles GET /requests/:id
//
//	@Summary	Get repair request
//	@Security	Bearer
//	@Tags		requests
//	@Produce	json
//	@Param		id	path		int	true	"Request ID"
//	@Success	200	{object}	utils.APIResponse{data=dto.RequestDTO}
//	@Failure	403	{object}	utils.APIResponse
//	@Failure	404	{object}	utils.APIResponse
//	@Router		/requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	actor, requestID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), usecases.GetRequestQuery{Actor: actor, RequestID: requestID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateRequest handles PATCH /requests/:id
//
//	@Summary		Update repair request
//	@Description	Customers edit details while the request is new; the owning manager edits priority, estimate and comment.
//	@Security		Bearer
//	@Tags			requests
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Request ID"
//	@Param			request	body		UpdateRequestRequest	true	"Fields to change"
//	@Success		200		{object}	utils.APIResponse{data=dto.RequestDTO}
//	@Router			/requests/{id} [patch]
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	actor, requestID, ok := h.principalAndID(c)
	if !ok {
		return
	}
	var req UpdateRequestRequest
	if !common.BindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.uc.Update.Execute(c.Request.Context(), req.ToCommand(actor, requestID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Request updated successfully", result)
}

// GetHistory handles GET /requests/:id/history
func (h *RequestHandler) GetHistory(c *gin.Context) {
	actor, requestID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	result, err := h.uc.History.Execute(c.Request.Context(), usecases.GetRequestHistoryQuery{Actor: actor, RequestID: requestID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListResponses handles GET /requests/:id/responses
func (h *RequestHandler) ListResponses(c *gin.Context) {
	actor, requestID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	result, err := h.uc.ListResponses.Execute(c.Request.Context(), usecases.ListResponsesQuery{Actor: actor, RequestID: requestID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AssignToManager handles POST /requests/:id/assign-manager
func (h *RequestHandler) AssignToManager(c *gin.Context) {
	actor, requestID, ok := h.principalAndID(c)
	if !ok {
		return
	}
	var req AssignManagerRequest
	if c.Request.ContentLength > 0 && !common.BindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.uc.AssignToManager.Execute(c.Request.Context(), usecases.AssignToManagerCommand{
		Actor:     actor,
		RequestID: requestID,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Request taken into review", result)
}

// AddClarification handles POST /requests/:id/clarification
func (h *RequestHandler) AddClarification(c *gin.Context) {
	actor, requestID, ok := h.principalAndID(c)
	if !ok {
		return
	}
	var req ClarificationRequest
	if !common.BindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.uc.AddClarification.Execute(c.Request.Context(), usecases.AddClarificationCommand{
		Actor:     actor,
		RequestID: requestID,
		Details:   req.Details,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Clarification recorded", result)
}

// SendToContractors handles POST /requests/:id/send-to-contractors
//
//	@Summary	Broadcast request to verified contractors
//	@Security	Bearer
//	@Tags		requests
//	@Produce	json
//	@Param		id	path		int	true	"Request ID"
//	@Success	200	{object}	utils.APIResponse{data=dto.RequestDTO}
//	@Failure	400	{object}	utils.APIResponse	"Invalid transition"
//	@Router		/requests/{id}/send-to-contractors [post]
func (h *RequestHandler) SendToContractors(c *gin.Context) {
	actor, requestID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	result, err := h.uc.SendToContractors.Execute(c.Request.Context(), usecases.SendToContractorsCommand{
		Actor:     actor,
		RequestID: requestID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Request sent to contractors", result)
}

// Respond handles POST /requests/:id/responses
//
//	@Summary	Submit a contractor offer
//	@Security	Bearer
//	@Tags		requests
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"Request ID"
//	@Param		request	body		RespondRequest	true	"Offer"
//	@Success	201		{object}	utils.APIResponse{data=dto.ContractorResponseDTO}
//	@Failure	409		{object}	utils.APIResponse	"Already responded"
//	@Router		/requests/{id}/responses [post]
func (h *RequestHandler) Respond(c *gin.Context) {
	actor, requestID, ok := h.principalAndID(c)
	if !ok {
		return
	}
	var req RespondRequest
	if !common.BindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.uc.Respond.Execute(c.Request.Context(), usecases.RespondToRequestCommand{
		Actor:        actor,
		RequestID:    requestID,
		ProposedCost: req.ProposedCost,
		Comment:      req.Comment,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Response submitted")
}

// AssignContractor handles POST /requests/:id/assign-contractor
func (h *RequestHandler) AssignContractor(c *gin.Context) {
	actor, requestID, ok := h.principalAndID(c)
	if !ok {
		return
	}
	var req AssignContractorRequest
	if !common.BindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.uc.AssignContractor.Execute(c.Request.Context(), usecases.AssignContractorCommand{
		Actor:        actor,
		RequestID:    requestID,
		ContractorID: req.ContractorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Contractor assigned", result)
}

// StartWork handles POST /requests/:id/start
func (h *RequestHandler) StartWork(c *gin.Context) {
	actor, requestID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	result, err := h.uc.StartWork.Execute(c.Request.Context(), usecases.StartWorkCommand{Actor: actor, RequestID: requestID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work started", result)
}

// CompleteWork handles POST /requests/:id/complete
func (h *RequestHandler) CompleteWork(c *gin.Context) {
	actor, requestID, ok := h.principalAndID(c)
	if !ok {
		return
	}
	var req CompleteRequest
	if c.Request.ContentLength > 0 && !common.BindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.uc.CompleteWork.Execute(c.Request.Context(), usecases.CompleteWorkCommand{
		Actor:      actor,
		RequestID:  requestID,
		FinalPrice: req.FinalPrice,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work completed", result)
}

// CancelRequest handles POST /requests/:id/cancel
func (h *RequestHandler) CancelRequest(c *gin.Context) {
	actor, requestID, ok := h.principalAndID(c)
	if !ok {
		return
	}
	var req CancelRequest
	if !common.BindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.uc.Cancel.Execute(c.Request.Context(), usecases.CancelRequestCommand{
		Actor:     actor,
		RequestID: requestID,
		Reason:    req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Request cancelled", result)
}

func (h *RequestHandler) principalAndID(c *gin.Context) (actor authorization.Principal, requestID uint, ok bool) {
	actor, ok = common.RequirePrincipal(c)
	if !ok {
		return actor, 0, false
	}
	requestID, err := utils.ParseUintParam(c, "id", "request")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return actor, 0, false
	}
	return actor, requestID, true
}
