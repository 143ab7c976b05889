package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	sessiondto "github.com/vodcomms/vodcomms/internal/adapter/dto/session"
	"github.com/vodcomms/vodcomms/internal/adapter/presenter"
	sessionUsecase "github.com/vodcomms/vodcomms/internal/usecase/session"
)

// Session handles session-related HTTP requests
type Session struct {
	sessionService sessionUsecase.Service
	logger         *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService sessionUsecase.Service, logger *zap.Logger) *Session {
	return &Session{
		sessionService: sessionService,
		logger:         logger,
	}
}

// CreateSession handles POST /sessions
// @Summary      Create a review session
// @Description  Creates a new scrim/VOD review session
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        request  body      session.CreateSessionRequest  true  "Session creation request"
// @Success      201      {object}  session.SessionResponse  "Session created"
// @Failure      400      {object}  common.ErrorResponse  "Invalid request"
// @Router       /sessions [post]
func (h *Session) CreateSession(c echo.Context) error {
	var req sessiondto.CreateSessionRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	sess, err := h.sessionService.Create(c.Request().Context(), sessionUsecase.CreateInput{
		Title:      req.Title,
		YoutubeURL: req.YoutubeURL,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToSessionResponse(sess))
}

// ListSessions handles GET /sessions
// @Summary      List sessions
// @Description  Lists all review sessions, newest first
// @Tags         Sessions
// @Produce      json
// @Success      200  {array}  session.SessionResponse  "Session list"
// @Router       /sessions [get]
func (h *Session) ListSessions(c echo.Context) error {
	sessions, err := h.sessionService.List(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToSessionResponses(sessions))
}

// GetSession handles GET /sessions/:id
// @Summary      Get session details
// @Description  Gets one session together with its ordered transcript chunks
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  session.SessionDetailResponse  "Session with chunks"
// @Failure      400  {object}  common.ErrorResponse  "Invalid session ID"
// @Failure      404  {object}  common.ErrorResponse  "Session not found"
// @Router       /sessions/{id} [get]
func (h *Session) GetSession(c echo.Context) error {
	id, err := ParseIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	sess, chunks, err := h.sessionService.Detail(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, sessiondto.SessionDetailResponse{
		Session: presenter.ToSessionResponse(sess),
		Chunks:  presenter.ToChunkResponses(chunks),
	})
}

// GetChunks handles GET /sessions/:id/chunks
// @Summary      List session chunks
// @Description  Lists a session's transcript chunks ordered by start time
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {array}   session.ChunkResponse  "Chunk list"
// @Failure      404  {object}  common.ErrorResponse  "Session not found"
// @Router       /sessions/{id}/chunks [get]
func (h *Session) GetChunks(c echo.Context) error {
	id, err := ParseIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	chunks, err := h.sessionService.Chunks(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToChunkResponses(chunks))
}
