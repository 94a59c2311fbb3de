// Package ui contains the HTMX handlers. Full pages are returned for
// navigation, HTML fragments for hx-* requests.
package ui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JuanLadeira/task-challenge/internal/domain"
	"github.com/JuanLadeira/task-challenge/internal/middleware"
	"github.com/JuanLadeira/task-challenge/internal/service"
)

const loginPath = "/ui/auth/login"

// TodoHandler serves the HTML todo pages and fragments, always scoped to the
// cookie-authenticated user.
type TodoHandler struct {
	todoService *service.TodoService
}

// NewTodoHandler creates a ui.TodoHandler.
func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// Index handles GET /. Anonymous visitors get the login page; authenticated
// ones the full page with their todos.
func (h *TodoHandler) Index(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.HTML(http.StatusOK, "login", gin.H{})
		return
	}

	todos, err := h.todoService.List(c.Request.Context(), ownerID(user))
	if err != nil {
		c.HTML(http.StatusInternalServerError, "login", gin.H{"Error": "Something went wrong"})
		return
	}
	c.HTML(http.StatusOK, "index", gin.H{"User": user, "Todos": todos})
}

// Create handles POST /ui/todos and returns the refreshed list fragment.
func (h *TodoHandler) Create(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	content := c.PostForm("content")
	if content == "" {
		h.renderTodos(c, http.StatusBadRequest, user)
		return
	}

	if _, err := h.todoService.Create(c.Request.Context(), content, ownerID(user)); err != nil {
		logrus.WithError(err).Error("UI.CreateTodo: service error")
		h.renderTodos(c, http.StatusInternalServerError, user)
		return
	}
	h.renderTodos(c, http.StatusCreated, user)
}

// Toggle handles PUT /ui/todos/:id, flipping the completed flag and
// returning the refreshed list fragment. A missing or foreign todo just
// re-renders the list.
func (h *TodoHandler) Toggle(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err == nil {
		todo, err := h.todoService.GetByID(c.Request.Context(), uint(id))
		if err == nil {
			completed := !todo.Completed
			update := service.TodoUpdate{Completed: &completed}
			if _, err := h.todoService.Update(c.Request.Context(), uint(id), update, ownerID(user)); err != nil && !errors.Is(err, service.ErrTodoNotFound) {
				logrus.WithError(err).Error("UI.ToggleTodo: service error")
			}
		}
	}
	h.renderTodos(c, http.StatusOK, user)
}

// Delete handles DELETE /ui/todos/:id and returns the refreshed list
// fragment.
func (h *TodoHandler) Delete(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err == nil {
		if err := h.todoService.Delete(c.Request.Context(), uint(id), ownerID(user)); err != nil && !errors.Is(err, service.ErrTodoNotFound) {
			logrus.WithError(err).Error("UI.DeleteTodo: service error")
		}
	}
	h.renderTodos(c, http.StatusOK, user)
}

// requireUser resolves the cookie user or redirects to the login page.
func (h *TodoHandler) requireUser(c *gin.Context) (*domain.User, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, loginPath)
		c.Abort()
		return nil, false
	}
	return user, true
}

func (h *TodoHandler) renderTodos(c *gin.Context, status int, user *domain.User) {
	todos, err := h.todoService.List(c.Request.Context(), ownerID(user))
	if err != nil {
		logrus.WithError(err).Error("UI: failed to list todos for fragment")
		todos = nil
	}
	c.HTML(status, "todos", gin.H{"Todos": todos})
}

func ownerID(user *domain.User) *uint {
	id := user.ID
	return &id
}
