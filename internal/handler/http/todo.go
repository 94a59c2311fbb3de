package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JuanLadeira/task-challenge/internal/middleware"
	"github.com/JuanLadeira/task-challenge/internal/service"
)

// TodoHandler serves the /api/todos endpoints. The routes are mounted behind
// RequireAuth, so a resolved user is always present.
type TodoHandler struct {
	todoService *service.TodoService
}

// NewTodoHandler creates a TodoHandler.
func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// CreateTodoRequest is the body of POST /api/todos/.
type CreateTodoRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateTodoRequest is the partial body of PUT /api/todos/:id. Pointer fields
// distinguish "omitted" from "explicitly set to a zero value".
type UpdateTodoRequest struct {
	Content   *string `json:"content"`
	Completed *bool   `json:"completed"`
}

// Create handles POST /api/todos/.
func (h *TodoHandler) Create(c *gin.Context) {
	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateTodo: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: content is required")
		return
	}

	owner := currentUserID(c)
	todo, err := h.todoService.Create(c.Request.Context(), req.Content, owner)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// List handles GET /api/todos/.
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todoService.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// Get handles GET /api/todos/:id.
func (h *TodoHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	todo, err := h.todoService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// Update handles PUT /api/todos/:id.
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateTodo: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}

	update := service.TodoUpdate{Content: req.Content, Completed: req.Completed}
	todo, err := h.todoService.Update(c.Request.Context(), id, update, currentUserID(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// Delete handles DELETE /api/todos/:id.
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.todoService.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// currentUserID returns the authenticated user's id, or nil when the request
// is anonymous.
func currentUserID(c *gin.Context) *uint {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil
	}
	id := user.ID
	return &id
}

// parseID reads the :id path parameter, responding 404 on garbage so that a
// non-numeric id behaves like a missing record.
func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, "not found")
		return 0, false
	}
	return uint(id), true
}
