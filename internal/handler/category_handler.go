package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"goal-tracker-api/internal/dto"
	"goal-tracker-api/internal/response"
	"goal-tracker-api/internal/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CreateCategory godoc
// @Summary      Create a goal category
// @Description  Creates a category on a live board. Requires writer role or better.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCategoryRequest true "Category creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.CategoryResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request or deleted board"
// @Failure      403 {object} response.ErrorResponse "Insufficient role"
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, category)
}

// ListCategories godoc
// @Summary      List goal categories
// @Description  Lists live categories on live boards the requester participates in
// @Tags         categories
// @Produce      json
// @Param        board query string false "Board ID to scope the listing"
// @Param        search query string false "Title substring filter"
// @Param        orderBy query string false "Sort key (title or created)"
// @Param        desc query bool false "Sort descending"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CategoryResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid query parameters"
// @Router       /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var q dto.CategoryListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), q)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, categories)
}

// GetCategory godoc
// @Summary      Get a goal category
// @Tags         categories
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CategoryResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid category ID"
// @Failure      404 {object} response.ErrorResponse "Category not found or deleted"
// @Router       /categories/{categoryId} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid category ID")
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), categoryID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, category)
}

// UpdateCategory godoc
// @Summary      Rename a goal category
// @Description  Renames a category. Only its creator may do this.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Param        request body dto.UpdateCategoryRequest true "Category update request"
// @Success      200 {object} response.SuccessResponse{data=dto.CategoryResponse}
// @Failure      403 {object} response.ErrorResponse "Not the creator"
// @Failure      404 {object} response.ErrorResponse "Category not found or deleted"
// @Router       /categories/{categoryId} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid category ID")
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), categoryID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary      Delete a goal category
// @Description  Soft-deletes a category and archives every goal in it. Allowed for the creator or any board writer.
// @Tags         categories
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      403 {object} response.ErrorResponse "Insufficient role"
// @Failure      404 {object} response.ErrorResponse "Category not found or deleted"
// @Router       /categories/{categoryId} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid category ID")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
