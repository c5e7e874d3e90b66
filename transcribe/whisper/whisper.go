// Package whisper backs the transcribe registry with a faster-whisper HTTP
// sidecar. Each model variant maps to a sidecar model name; the sidecar
// holds the actual weights, so "loading" a variant here verifies the sidecar
// is reachable and optionally warms the model server-side.
package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/skillsenselab/radscribe/logger"
	"github.com/skillsenselab/radscribe/transcribe"
)

const (
	defaultURL     = "http://localhost:8387"
	defaultTimeout = 120 * time.Second
)

// Config holds configuration for the whisper sidecar backend.
type Config struct {
	URL         string        `yaml:"url" mapstructure:"url"`
	Language    string        `yaml:"language,omitempty" mapstructure:"language"`
	Device      string        `yaml:"device,omitempty" mapstructure:"device"`
	ComputeType string        `yaml:"compute_type,omitempty" mapstructure:"compute_type"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// WarmUp asks the sidecar to pull the model into memory at load time so
	// registry load cost reflects real instantiation cost.
	WarmUp bool `yaml:"warm_up" mapstructure:"warm_up"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.URL == "" {
		c.URL = defaultURL
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Loader implements transcribe.Loader against the sidecar.
type Loader struct {
	cfg    Config
	client *http.Client
	log    *logger.Logger
}

// NewLoader creates a whisper sidecar loader.
func NewLoader(cfg Config) *Loader {
	cfg.ApplyDefaults()
	return &Loader{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: logger.WithComponent("whisper"),
	}
}

// Load returns a Model bound to the given variant tag. The sidecar must be
// reachable; when WarmUp is set the model is also pulled into memory now
// rather than on the first transcription.
func (l *Loader) Load(ctx context.Context, tag transcribe.Tag) (transcribe.Model, error) {
	if !l.Healthy(ctx) {
		return nil, fmt.Errorf("whisper sidecar unreachable at %s", l.cfg.URL)
	}
	if l.cfg.WarmUp {
		if err := l.warmUp(ctx, tag); err != nil {
			return nil, err
		}
	}
	return &model{tag: tag, cfg: l.cfg, client: l.client}, nil
}

// Healthy reports whether the sidecar answers its health endpoint.
func (l *Loader) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.URL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// warmUp asks the sidecar to instantiate the model for tag.
func (l *Loader) warmUp(ctx context.Context, tag transcribe.Tag) error {
	body := bytes.NewBufferString("model=" + string(tag))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.cfg.URL+"/load", body)
	if err != nil {
		return fmt.Errorf("create warm-up request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("whisper warm-up: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whisper warm-up for %s (status %d): %s", tag, resp.StatusCode, string(msg))
	}
	l.log.Debug("model warmed", map[string]interface{}{
		logger.FieldModelTag: string(tag),
	})
	return nil
}

// model implements transcribe.Model for one variant tag.
type model struct {
	tag    transcribe.Tag
	cfg    Config
	client *http.Client
}

// Infer sends the audio clip to the sidecar and returns the transcript.
func (m *model) Infer(ctx context.Context, audio transcribe.AudioInput) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	filename := audio.Filename
	if filename == "" {
		filename = "audio.wav"
	}
	part, err := writer.CreateFormFile("audio", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio.Data); err != nil {
		return "", fmt.Errorf("write audio data: %w", err)
	}

	_ = writer.WriteField("model", string(m.tag))
	if m.cfg.Language != "" {
		_ = writer.WriteField("language", m.cfg.Language)
	}
	if audio.SampleRate > 0 {
		_ = writer.WriteField("sample_rate", fmt.Sprintf("%d", audio.SampleRate))
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.URL+"/transcribe", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("whisper error (status %d): %s", resp.StatusCode, string(msg))
	}

	var result sidecarResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode whisper response: %w", err)
	}
	return result.Text, nil
}

// sidecarResponse is the subset of the sidecar's transcription payload the
// comparison core needs.
type sidecarResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}
