package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"goal-tracker-api/internal/dto"
	"goal-tracker-api/internal/response"
	"goal-tracker-api/internal/service"
)

type GoalHandler struct {
	goalService service.GoalService
}

func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// CreateGoal godoc
// @Summary      Create a goal
// @Description  Creates a goal in a category. The requester must be the category's creator and hold the writer role.
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateGoalRequest true "Goal creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.GoalResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request or dead category"
// @Failure      403 {object} response.ErrorResponse "Not the category creator or insufficient role"
// @Router       /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, goal)
}

// ListGoals godoc
// @Summary      List goals
// @Description  Lists non-archived goals across the requester's boards, with category/status/priority/due-date/search filters
// @Tags         goals
// @Produce      json
// @Param        category query []string false "Category IDs" collectionFormat(multi)
// @Param        status query []string false "Statuses" collectionFormat(multi)
// @Param        priority query []string false "Priorities" collectionFormat(multi)
// @Param        dueDateLte query string false "Due before (RFC3339)"
// @Param        dueDateGte query string false "Due after (RFC3339)"
// @Param        search query string false "Title substring filter"
// @Param        orderBy query string false "Sort key (title or created)"
// @Param        desc query bool false "Sort descending"
// @Success      200 {object} response.SuccessResponse{data=[]dto.GoalResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid query parameters"
// @Router       /goals [get]
func (h *GoalHandler) ListGoals(c *gin.Context) {
	var q dto.GoalListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), q)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, goals)
}

// GetGoal godoc
// @Summary      Get a goal
// @Description  Retrieves a non-archived goal with its attachments
// @Tags         goals
// @Produce      json
// @Param        goalId path string true "Goal ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.GoalResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid goal ID"
// @Failure      404 {object} response.ErrorResponse "Goal not found or archived"
// @Router       /goals/{goalId} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	goalID, err := uuid.Parse(c.Param("goalId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid goal ID")
		return
	}

	goal, err := h.goalService.GetGoal(c.Request.Context(), goalID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, goal)
}

// UpdateGoal godoc
// @Summary      Update a goal
// @Description  Edits a goal. Author only; archived goals are immutable.
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        goalId path string true "Goal ID (UUID)"
// @Param        request body dto.UpdateGoalRequest true "Goal update request"
// @Success      200 {object} response.SuccessResponse{data=dto.GoalResponse}
// @Failure      403 {object} response.ErrorResponse "Not the author"
// @Failure      404 {object} response.ErrorResponse "Goal not found or archived"
// @Router       /goals/{goalId} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	goalID, err := uuid.Parse(c.Param("goalId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid goal ID")
		return
	}

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), goalID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, goal)
}

// DeleteGoal godoc
// @Summary      Delete a goal
// @Description  Archives a goal. Author only; already-archived goals report not found.
// @Tags         goals
// @Produce      json
// @Param        goalId path string true "Goal ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      403 {object} response.ErrorResponse "Not the author"
// @Failure      404 {object} response.ErrorResponse "Goal not found or archived"
// @Router       /goals/{goalId} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	goalID, err := uuid.Parse(c.Param("goalId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid goal ID")
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), goalID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
