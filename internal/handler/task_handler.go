package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JuanTorresCortes/auth-server/internal/model"
	"github.com/JuanTorresCortes/auth-server/internal/pkg/response"
	"github.com/JuanTorresCortes/auth-server/internal/service"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type taskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// taskPatchRequest carries only the mutable task fields; an owner value in
// the body is simply not bindable.
type taskPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req taskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if req.Priority != "" && !model.Priority(req.Priority).Valid() {
		response.Error(c, http.StatusBadRequest, "Error", map[string]string{"priority": "priority must be one of low, medium, high"})
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), getUserID(c), service.TaskCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"data": task})
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"data": tasks})
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req taskPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.Priority != nil {
		priority := model.Priority(*req.Priority)
		if !priority.Valid() {
			response.Error(c, http.StatusBadRequest, "Error", map[string]string{"priority": "priority must be one of low, medium, high"})
			return
		}
		patch.Priority = &priority
	}
	task, err := h.tasks.Update(c.Request.Context(), c.Param("id"), getUserID(c), patch)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"data": task})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	task, err := h.tasks.Delete(c.Request.Context(), c.Param("id"), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"data": task})
}
