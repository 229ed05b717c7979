package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tourdesk/internal/handler/httperr"
	"tourdesk/internal/pkg/errs"
	"tourdesk/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves token-gated guest endpoints. Everything that goes
// wrong with a link (bad signature, expired, unknown booking, cancelled
// booking) collapses into the same 404 so a probing client learns
// nothing from the response.
type PublicHandler struct {
	documents usecase.DocumentUseCase
}

func NewPublicHandler(documents usecase.DocumentUseCase) *PublicHandler {
	return &PublicHandler{documents: documents}
}

// @Summary Public booking page
// @Description HTML page for a shared booking document
// @Tags public
// @Produce html
// @Param token path string true "Share token"
// @Success 200 {string} string
// @Failure 404 {object} httperr.Response
// @Router /public/booking/{token} [get]
func (h *PublicHandler) GetPage(c *gin.Context) {
	html, err := h.documents.FetchPage(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.abort(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// @Summary Public booking PDF
// @Description Download the booking's current document as PDF
// @Tags public
// @Produce application/pdf
// @Param token path string true "Share token"
// @Success 200 {file} binary
// @Failure 404 {object} httperr.Response
// @Router /public/booking/{token}/pdf [get]
func (h *PublicHandler) GetPDF(c *gin.Context) {
	doc, err := h.documents.FetchPDF(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.abort(c, err)
		return
	}
	h.serve(c, doc)
}

// @Summary Public booking image
// @Description Download the booking's current document as PNG. Without a
// page parameter all pages are concatenated into one long image.
// @Tags public
// @Produce image/png
// @Param token path string true "Share token"
// @Param page query int false "Zero-based page index"
// @Param zoom query number false "Raster zoom factor"
// @Success 200 {file} binary
// @Failure 404 {object} httperr.Response
// @Router /public/booking/{token}/png [get]
func (h *PublicHandler) GetPNG(c *gin.Context) {
	req := usecase.PNGRequest{Token: c.Param("token")}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			h.abort(c, errs.ErrPageOutOfRange)
			return
		}
		req.Page = &page
	}
	if raw := c.Query("zoom"); raw != "" {
		zoom, err := strconv.ParseFloat(raw, 64)
		if err != nil || zoom <= 0 || zoom > 4 {
			h.abort(c, errs.ErrTokenInvalid)
			return
		}
		req.Zoom = zoom
	}

	doc, err := h.documents.FetchPNG(c.Request.Context(), req)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.serve(c, doc)
}

func (h *PublicHandler) serve(c *gin.Context, doc *usecase.Document) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, doc.MediaType, doc.Data)
}

func (h *PublicHandler) abort(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrRenderTimeout):
		httperr.AbortWithError(c, http.StatusGatewayTimeout, err, "Document rendering timed out", nil)
	case errors.Is(err, errs.ErrRenderFailed), errors.Is(err, errs.ErrDatabaseOperationFailed):
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	default:
		if err == nil {
			err = errs.ErrTokenInvalid
		}
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	}
}
