package resumes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resumehub-backend/internal/extract"
	"resumehub-backend/internal/shared/debugx"
	"resumehub-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc   *Service
	Debug *debugx.Debugger
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, debug *debugx.Debugger) *Handler {
	return &Handler{Svc: svc, Debug: debug}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.GET("/resumes/:id/file", h.download)
	rg.POST("/resumes/:id/versions", h.createVersion)
	rg.GET("/resumes/:id/versions/:versionId", h.getVersion)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	resume, warnings, err := h.Svc.Ingest(c.Request.Context(), data, fileHeader.Filename, contentType)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedFormat):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported file format, expected PDF or DOCX", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to ingest resume", nil)
		}
		return
	}

	if err := h.Debug.Stop(resume, "resume after ingest"); err != nil {
		h.renderHalt(c, err)
		return
	}

	respond.Created(c, toResumeOut(resume, warnings))
}

func (h *Handler) list(c *gin.Context) {
	userID := c.Query("user_id")

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 100 {
		limit = 100
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	resumesList, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}

	out := make([]ResumeListItem, 0, len(resumesList))
	for _, resume := range resumesList {
		out = append(out, toListItem(resume))
	}

	respond.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	c.Set("resumeId", c.Param("id"))
	resume, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		}
		return
	}

	respond.OK(c, toResumeOut(resume, nil))
}

func (h *Handler) download(c *gin.Context) {
	c.Set("resumeId", c.Param("id"))
	resume, rc, err := h.Svc.OpenFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open resume file", nil)
		}
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resume.Filename))
	c.Header("Content-Type", resume.ContentType)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, rc)
}

func (h *Handler) createVersion(c *gin.Context) {
	c.Set("resumeId", c.Param("id"))
	var req VersionCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job_description is required", nil)
		return
	}

	version, err := h.Svc.CreateVersion(c.Request.Context(), c.Param("id"), req.JobDescription)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrNoSections):
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrNoSections.Error(), nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to customize resume", nil)
		}
		return
	}

	if err := h.Debug.Stop(version, "version after customize"); err != nil {
		h.renderHalt(c, err)
		return
	}

	respond.Created(c, toVersionOut(version))
}

func (h *Handler) getVersion(c *gin.Context) {
	c.Set("resumeId", c.Param("id"))
	c.Set("versionId", c.Param("versionId"))
	version, err := h.Svc.GetVersion(c.Request.Context(), c.Param("id"), c.Param("versionId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "version not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch version", nil)
		}
		return
	}

	respond.OK(c, toVersionOut(version))
}

func (h *Handler) renderHalt(c *gin.Context, err error) {
	var halt *debugx.Halt
	if errors.As(err, &halt) {
		respond.Error(c, http.StatusInternalServerError, "debug_halt", halt.Error(), halt.Snapshot)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
}
