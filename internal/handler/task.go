package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
	"github.com/BuzzLyutic/task-tracker-api/internal/service"
	"github.com/BuzzLyutic/task-tracker-api/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

type createTaskRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Status      model.Status   `json:"status"`
	Priority    model.Priority `json:"priority"`
}

type taskCreatedResponse struct {
	Message string     `json:"message"`
	Task    model.Task `json:"task"`
}

type taskListResponse struct {
	Tasks []model.Task `json:"tasks"`
	Total int          `json:"total"`
}

// ownerID reads the caller set by RequireToken. The handlers are only mounted
// behind it, so a missing identity is a wiring bug.
func ownerID(r *http.Request) int64 {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		panic("handler: route mounted without RequireToken")
	}
	return id.UserID
}

// taskID parses {id}. Anything that is not a positive integer cannot name a
// task, so it is reported like any other miss.
func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(w, r, http.StatusNotFound, msgTaskNotFound)
		return 0, false
	}
	return id, true
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Debug("failed to decode json", zap.Error(err))
		decodeError(w, r, err)
		return
	}

	idempKey := r.Header.Get("Idempotency-Key")
	task, err := h.service.Create(r.Context(), ownerID(r), model.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}, idempKey)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	respond.JSON(w, r, http.StatusCreated, taskCreatedResponse{
		Message: "Task created successfully",
		Task:    task,
	})
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := h.service.Get(r.Context(), ownerID(r), id)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

// List: non-numeric limit/offset fall back to the defaults.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter model.TaskFilter
	if status := q.Get("status"); status != "" {
		s := model.Status(status)
		filter.Status = &s
	}
	if priority := q.Get("priority"); priority != "" {
		p := model.Priority(priority)
		filter.Priority = &p
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	tasks, err := h.service.List(r.Context(), ownerID(r), filter, model.Page{Limit: limit, Offset: offset})
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, taskListResponse{Tasks: tasks, Total: len(tasks)})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var patch model.TaskPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		decodeError(w, r, err)
		return
	}

	if _, err := h.service.Update(r.Context(), ownerID(r), id, patch); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	respond.Message(w, r, http.StatusOK, "Task updated successfully")
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), ownerID(r), id); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	respond.Message(w, r, http.StatusOK, "Task deleted successfully")
}

func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context(), ownerID(r))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, stats)
}
