package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/persona-chat/domain"
	"github.com/satriahrh/persona-chat/usecase"
	"github.com/satriahrh/persona-chat/utils/log"
)

type Handler struct {
	registry *domain.Registry
	chat     *usecase.ChatService
}

type ChatRequest struct {
	Message        string `json:"message"`
	Personality    string `json:"personality"`
	ConversationID string `json:"conversation_id"`
}

type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

type PersonalitiesResponse struct {
	Personalities []domain.Personality `json:"personalities"`
}

type ConversationListResponse struct {
	Conversations []domain.Conversation `json:"conversations"`
	Total         int                   `json:"total"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"page_size"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func NewHandler(registry *domain.Registry, chat *usecase.ChatService) *Handler {
	return &Handler{
		registry: registry,
		chat:     chat,
	}
}

// Register mounts all routes on the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/personalities", h.Personalities)
	e.POST("/chat", h.Chat)
	e.GET("/conversations", h.ListConversations)
	e.GET("/conversations/:id", h.GetConversation)
}

func (h *Handler) Personalities(c echo.Context) error {
	return c.JSON(http.StatusOK, PersonalitiesResponse{
		Personalities: h.registry.List(),
	})
}

func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
	}

	result, err := h.chat.Chat(c.Request().Context(), usecase.ChatRequest{
		Message:        req.Message,
		Personality:    req.Personality,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		return h.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Response:       result.Response,
		ConversationID: result.ConversationID,
	})
}

func (h *Handler) GetConversation(c echo.Context) error {
	conversation, err := h.chat.Transcript(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, conversation)
}

func (h *Handler) ListConversations(c echo.Context) error {
	opts := domain.ListOptions{
		Page:      1,
		PageSize:  10,
		SortBy:    domain.SortByCreatedAt,
		SortOrder: domain.SortDesc,
	}

	var err error
	if opts.Page, err = queryInt(c, "page", opts.Page); err != nil {
		return h.errorJSON(c, err)
	}
	if opts.PageSize, err = queryInt(c, "page_size", opts.PageSize); err != nil {
		return h.errorJSON(c, err)
	}
	if v := c.QueryParam("sort_by"); v != "" {
		opts.SortBy = v
	}
	if v := c.QueryParam("sort_order"); v != "" {
		opts.SortOrder = v
	}

	conversations, total, err := h.chat.ListConversations(c.Request().Context(), opts)
	if err != nil {
		return h.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, ConversationListResponse{
		Conversations: conversations,
		Total:         total,
		Page:          opts.Page,
		PageSize:      opts.PageSize,
	})
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidArgument, name)
	}
	return v, nil
}

// errorJSON maps the domain taxonomy onto HTTP statuses: invalid arguments
// are 400, missing records 404, model failures 500 with the cause text in
// the detail.
func (h *Handler) errorJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Detail: err.Error()})
	default:
		log.With(zap.String("path", c.Path())).Error("request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Detail: "server error: " + err.Error()})
	}
}
