package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vodcomms/vodcomms/errors"
	sessiondto "github.com/vodcomms/vodcomms/internal/adapter/dto/session"
	"github.com/vodcomms/vodcomms/internal/adapter/presenter"
	processingUsecase "github.com/vodcomms/vodcomms/internal/usecase/processing"
	sessionUsecase "github.com/vodcomms/vodcomms/internal/usecase/session"
)

// Media handles media upload and processing HTTP requests
type Media struct {
	sessionService    sessionUsecase.Service
	processingService processingUsecase.Service
	logger            *zap.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(
	sessionService sessionUsecase.Service,
	processingService processingUsecase.Service,
	logger *zap.Logger,
) *Media {
	return &Media{
		sessionService:    sessionService,
		processingService: processingService,
		logger:            logger,
	}
}

// UploadMedia handles POST /sessions/:id/media
// @Summary      Upload session media
// @Description  Uploads a scrim recording for the session; replaces prior media
// @Tags         Media
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Session ID (UUID)"
// @Param        file  formData  file    true  "Media file"
// @Success      200   {object}  session.UploadMediaResponse  "Upload stored"
// @Failure      400   {object}  common.ErrorResponse  "Missing filename or rejected media"
// @Failure      404   {object}  common.ErrorResponse  "Session not found"
// @Router       /sessions/{id}/media [post]
func (h *Media) UploadMedia(c echo.Context) error {
	id, err := ParseIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("multipart field 'file' is required"))
	}
	if fileHeader.Filename == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Filename is required"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer src.Close()

	sess, err := h.sessionService.AttachMedia(c.Request().Context(), id, sessionUsecase.MediaUpload{
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Reader:      src,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, sessiondto.UploadMediaResponse{
		Session:          sess.ID.String(),
		StoredPath:       *sess.MediaPath,
		OriginalFilename: fileHeader.Filename,
	})
}

// ProcessMedia handles POST /sessions/:id/process
// @Summary      Process session media
// @Description  Extracts audio and (re)builds the session's transcript chunks
// @Tags         Media
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  session.ProcessResponse  "Processing result"
// @Failure      400  {object}  common.ErrorResponse  "No media uploaded yet"
// @Failure      404  {object}  common.ErrorResponse  "Session not found"
// @Failure      409  {object}  common.ErrorResponse  "Session already processing"
// @Router       /sessions/{id}/process [post]
func (h *Media) ProcessMedia(c echo.Context) error {
	id, err := ParseIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.processingService.Process(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, sessiondto.ProcessResponse{
		Session:   result.Session.ID.String(),
		AudioPath: result.AudioPath,
		Engine:    result.Engine,
		Chunks:    presenter.ToChunkResponses(result.Chunks),
	})
}
