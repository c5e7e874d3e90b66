package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/radscribe/errors"
	"github.com/skillsenselab/radscribe/logger"
	"github.com/skillsenselab/radscribe/server"
	"github.com/skillsenselab/radscribe/transcribe"
)

// Handler serves the radscribe HTTP API.
type Handler struct {
	orch *transcribe.Orchestrator
	reg  *transcribe.Registry
	cfg  Config
	log  *logger.Logger
}

// New creates the API handler.
func New(orch *transcribe.Orchestrator, reg *transcribe.Registry, cfg Config) *Handler {
	return &Handler{
		orch: orch,
		reg:  reg,
		cfg:  cfg,
		log:  logger.WithComponent("api"),
	}
}

// Register mounts all API routes on the engine.
func (h *Handler) Register(engine *gin.Engine) {
	engine.GET("/", h.index)

	grp := engine.Group("/api")
	grp.Use(h.maintenance())
	grp.POST("/compare", h.compare)
	grp.GET("/models", h.models)
	grp.GET("/live-key", h.liveKey)
}

// comparePayload is the JSON shape of one comparison response.
type comparePayload struct {
	RequestID string          `json:"request_id,omitempty"`
	ElapsedMs float64         `json:"elapsed_ms"`
	Results   []resultPayload `json:"results"`
}

// resultPayload serializes one transcribe.Result.
type resultPayload struct {
	Model     string  `json:"model"`
	Outcome   string  `json:"outcome"`
	Text      string  `json:"text"`
	ElapsedMs float64 `json:"elapsed_ms"`
	Error     string  `json:"error,omitempty"`
}

// compare accepts a multipart form with an "audio" file and repeated
// "models" fields, runs the comparison, and returns the ordered report.
func (h *Handler) compare(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidRequest("an audio file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidRequest("audio upload could not be read").WithCause(err))
		return
	}

	rawTags := c.PostFormArray("models")
	tags := make([]transcribe.Tag, len(rawTags))
	for i, raw := range rawTags {
		tags[i] = transcribe.Tag(raw)
	}

	sampleRate := 0
	if raw := c.PostForm("sample_rate"); raw != "" {
		if sampleRate, err = strconv.Atoi(raw); err != nil {
			server.RespondWithError(c, apperrors.InvalidRequest("sample_rate must be an integer"))
			return
		}
	}

	audio := transcribe.AudioInput{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		SampleRate:  sampleRate,
	}

	report, err := h.orch.Compare(c.Request.Context(), audio, tags)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	payload := comparePayload{
		RequestID: c.GetString(logger.FieldRequestID),
		ElapsedMs: float64(report.Elapsed.Microseconds()) / 1000,
		Results:   make([]resultPayload, len(report.Results)),
	}
	for i, r := range report.Results {
		payload.Results[i] = resultPayload{
			Model:     string(r.Tag),
			Outcome:   string(r.Outcome),
			Text:      r.Text,
			ElapsedMs: float64(r.Elapsed.Microseconds()) / 1000,
			Error:     r.FailureReason,
		}
	}

	fields := logger.DurationFields("compare", report.Elapsed)
	fields[logger.FieldRequestID] = payload.RequestID
	fields["models"] = len(report.Results)
	h.log.Info("comparison served", fields)

	server.RespondOK(c, payload)
}

// modelPayload describes one known variant for the frontend picker.
type modelPayload struct {
	Tag    string `json:"tag"`
	Loaded bool   `json:"loaded"`
}

// models lists the enumerated variant set and which variants are cached.
func (h *Handler) models(c *gin.Context) {
	loaded := make(map[transcribe.Tag]bool)
	for _, tag := range h.reg.Loaded() {
		loaded[tag] = true
	}

	known := transcribe.KnownTags()
	payload := make([]modelPayload, len(known))
	for i, tag := range known {
		payload[i] = modelPayload{Tag: string(tag), Loaded: loaded[tag]}
	}
	server.RespondOK(c, payload)
}

// liveKey returns the client-side streaming key for live transcription.
func (h *Handler) liveKey(c *gin.Context) {
	if h.cfg.LiveStreamKey == "" {
		server.RespondWithError(c, apperrors.NotConfigured("live streaming key"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": h.cfg.LiveStreamKey})
}

// index serves the frontend entry page.
func (h *Handler) index(c *gin.Context) {
	if h.cfg.MaintenanceMode {
		c.JSON(http.StatusOK, gin.H{"message": "Coming soon - currently in private beta"})
		return
	}
	if h.cfg.StaticDir != "" {
		indexPath := filepath.Join(h.cfg.StaticDir, "index.html")
		if _, err := os.Stat(indexPath); err == nil {
			c.File(indexPath)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Frontend not found"})
}

// maintenance rejects API calls while the service is in maintenance mode.
func (h *Handler) maintenance() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.cfg.MaintenanceMode {
			err := apperrors.ServiceUnavailable("The service is in maintenance mode. Please check back soon.")
			c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
			return
		}
		c.Next()
	}
}
