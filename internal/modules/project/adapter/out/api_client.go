package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lyricmotion/internal/modules/project/domain"
	projectout "lyricmotion/internal/modules/project/port/out"
	apperrors "lyricmotion/internal/platform/errors"
)

// APIClient talks to the LyricMotion backend project store.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) projectout.ProjectAPI {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type projectRecord struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Status           string    `json:"status"`
	Lyrics           string    `json:"lyrics"`
	ThemeDescription string    `json:"theme_description"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (c *APIClient) CreateProject(ctx context.Context, name string) (domain.Project, error) {
	record := projectRecord{}
	err := c.doJSON(ctx, http.MethodPost, "/api/projects", map[string]string{"name": name}, &record)
	if err != nil {
		return domain.Project{}, err
	}
	return toProject(record), nil
}

func (c *APIClient) GetProject(ctx context.Context, projectID string) (domain.Project, error) {
	record := projectRecord{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects/"+projectID, nil, &record); err != nil {
		return domain.Project{}, err
	}
	return toProject(record), nil
}

func (c *APIClient) UpdateProject(ctx context.Context, projectID, name string) (domain.Project, error) {
	record := projectRecord{}
	err := c.doJSON(ctx, http.MethodPut, "/api/projects/"+projectID, map[string]string{"name": name}, &record)
	if err != nil {
		return domain.Project{}, err
	}
	return toProject(record), nil
}

func (c *APIClient) DeleteProject(ctx context.Context, projectID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/projects/"+projectID, nil, nil)
}

func (c *APIClient) ListProjects(ctx context.Context) ([]domain.Project, error) {
	records := []projectRecord{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects", nil, &records); err != nil {
		return nil, err
	}
	projects := make([]domain.Project, 0, len(records))
	for _, record := range records {
		projects = append(projects, toProject(record))
	}
	return projects, nil
}

func (c *APIClient) SaveLyrics(ctx context.Context, projectID, lyrics string) error {
	body := map[string]string{"project_id": projectID, "lyrics": lyrics}
	return c.doJSON(ctx, http.MethodPost, "/api/projects/"+projectID+"/lyrics", body, nil)
}

func (c *APIClient) SaveTheme(ctx context.Context, projectID, theme string) error {
	body := map[string]string{"project_id": projectID, "theme_description": theme}
	return c.doJSON(ctx, http.MethodPost, "/api/projects/"+projectID+"/theme", body, nil)
}

func (c *APIClient) doJSON(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrBackend, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s returned %d: %s", apperrors.ErrBackend, path, resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func toProject(record projectRecord) domain.Project {
	return domain.Project{
		ID:        record.ID,
		Name:      record.Name,
		Status:    domain.Status(record.Status),
		Lyrics:    record.Lyrics,
		Theme:     record.ThemeDescription,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
