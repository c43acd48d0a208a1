package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
)

// DefaultLocation is where the seed is looked up when none is configured.
const DefaultLocation = "data/seed.json"

// Source produces a seed document
type Source interface {
	Load(ctx context.Context) (model.Seed, error)
}

// New returns an HTTPSource for http(s) URLs and a FileSource otherwise.
func New(location string) (Source, error) {
	if location == "" {
		return nil, fmt.Errorf("seed location is required")
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTPSource{URL: location}, nil
	}
	return &FileSource{Path: location}, nil
}

// FileSource reads a seed from disk. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
type FileSource struct {
	Path string
}

func (s *FileSource) Load(ctx context.Context) (model.Seed, error) {
	if err := ctx.Err(); err != nil {
		return model.Seed{}, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return model.Seed{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func (s *FileSource) String() string {
	return s.Path
}

// HTTPSource fetches a JSON seed with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Load(ctx context.Context) (model.Seed, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return model.Seed{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return model.Seed{}, fmt.Errorf("failed to fetch seed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Seed{}, fmt.Errorf("failed to fetch seed: %s returned %s", s.URL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Seed{}, fmt.Errorf("failed to read seed: %w", err)
	}
	return decodeJSON(data)
}

func (s *HTTPSource) String() string {
	return s.URL
}

func decodeJSON(data []byte) (model.Seed, error) {
	var doc model.Seed
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Seed{}, fmt.Errorf("failed to parse seed: %w", err)
	}
	return doc, nil
}

func decodeYAML(data []byte) (model.Seed, error) {
	var doc model.Seed
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.Seed{}, fmt.Errorf("failed to parse seed: %w", err)
	}
	return doc, nil
}
