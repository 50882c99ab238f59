package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-cards/internal/application"
	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
	"github.com/oksasatya/go-todo-cards/pkg/response"
	"github.com/oksasatya/go-todo-cards/pkg/validation"
)

const maxImageBytes = 5 << 20

type TodoHandler struct {
	Svc             *application.TodoService
	Logger          *logrus.Logger
	DefaultPageSize int
	MaxPageSize     int
}

func NewTodoHandler(svc *application.TodoService, logger *logrus.Logger, defaultPageSize, maxPageSize int) *TodoHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	return &TodoHandler{Svc: svc, Logger: logger, DefaultPageSize: defaultPageSize, MaxPageSize: maxPageSize}
}

type createTodoCardRequest struct {
	UserID      int64  `json:"user_id"`
	Title       string `json:"title" binding:"required,cardtitle"`
	Description string `json:"description" binding:"cardbody"`
	Category    string `json:"category"`
}

type updateTodoCardRequest struct {
	Title       *string `json:"title" binding:"omitnil,cardtitle"`
	Description *string `json:"description" binding:"omitnil,cardbody"`
	Category    *string `json:"category"`
	Completed   *bool   `json:"completed"`
}

// List serves GET /todo-cards?keyword=&category=&completed=&sort=&page=&size=
func (h *TodoHandler) List(c *gin.Context) {
	f, errs := parseFilter(c)
	page := parsePage(c, h.DefaultPageSize, h.MaxPageSize, errs)
	if len(errs) > 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid query", errs)
		return
	}
	res, err := h.Svc.ListTodoCards(c.Request.Context(), f, c.Query("sort"), page)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res.Content, "todo cards", map[string]any{
		"number":         res.Number,
		"size":           res.Size,
		"total_elements": res.TotalElements,
		"total_pages":    res.TotalPages,
		"is_last":        res.IsLast,
	})
}

func (h *TodoHandler) All(c *gin.Context) {
	res, err := h.Svc.GetAllTodoCards(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "todo cards", nil)
}

func (h *TodoHandler) Search(c *gin.Context) {
	errs := map[string]string{}
	size := parseSize(c, h.DefaultPageSize, h.MaxPageSize, errs)
	if len(errs) > 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid query", errs)
		return
	}
	res, err := h.Svc.SearchTodoCards(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "search results", nil)
}

func (h *TodoHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "todoCardId")
	if !ok {
		return
	}
	res, err := h.Svc.GetTodoCardByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "todo card", nil)
}

// Create makes a card owned by the caller. A user_id naming someone else is refused.
func (h *TodoHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createTodoCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.UserID != 0 && req.UserID != p.UserID {
		writeError(c, h.Logger, application.ErrUnauthorized)
		return
	}
	var category entity.Category
	if req.Category != "" {
		parsed, err := entity.ParseCategory(req.Category)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"category": "must be one of: " + categoryList()})
			return
		}
		category = parsed
	}
	res, err := h.Svc.CreateTodoCard(c.Request.Context(), application.CreateTodoCardRequest{
		UserID:      p.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "todo card created", nil)
}

func (h *TodoHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "todoCardId")
	if !ok {
		return
	}
	var req updateTodoCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.UpdateTodoCardRequest{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.Category != nil {
		parsed, err := entity.ParseCategory(*req.Category)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"category": "must be one of: " + categoryList()})
			return
		}
		in.Category = &parsed
	}
	res, err := h.Svc.UpdateTodoCard(c.Request.Context(), p, id, in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "todo card updated", nil)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "todoCardId")
	if !ok {
		return
	}
	if err := h.Svc.DeleteTodoCard(c.Request.Context(), p, id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"id": id}, "todo card deleted", nil)
}

// UploadImage accepts a multipart "image" field of at most 5 MiB.
func (h *TodoHandler) UploadImage(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "todoCardId")
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes+1<<10)
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"image": "is required"})
		return
	}
	if fh.Size > maxImageBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "image too large", nil)
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"image": "must be an image"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	res, err := h.Svc.UploadImage(c.Request.Context(), p, id, f, fh.Filename, contentType)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "image uploaded", nil)
}
