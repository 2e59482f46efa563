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

	"lyricmotion/internal/modules/storyboard/domain"
	storyboardout "lyricmotion/internal/modules/storyboard/port/out"
	apperrors "lyricmotion/internal/platform/errors"
)

// BreakdownClient calls the LyricMotion backend's lyric breakdown endpoint.
type BreakdownClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBreakdownClient(baseURL string, timeout time.Duration) storyboardout.BreakdownService {
	return &BreakdownClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type breakdownRequest struct {
	Lyrics        string `json:"lyrics"`
	Theme         string `json:"theme,omitempty"`
	BlockDuration int    `json:"block_duration"`
}

type breakdownScene struct {
	BlockNumber      int     `json:"block_number"`
	StartTime        float64 `json:"start_time"`
	EndTime          float64 `json:"end_time"`
	LyricSegment     string  `json:"lyric_segment"`
	Description      string  `json:"description"`
	CameraMovement   string  `json:"camera_movement"`
	Lighting         string  `json:"lighting"`
	Mood             string  `json:"mood"`
	CharacterActions string  `json:"character_actions"`
	VisualStyle      string  `json:"visual_style"`
}

type breakdownResponse struct {
	Message           string           `json:"message"`
	BlockDuration     int              `json:"block_duration"`
	TotalBlocks       int              `json:"total_blocks"`
	EstimatedDuration int              `json:"estimated_duration"`
	Scenes            []breakdownScene `json:"scenes"`
}

func (c *BreakdownClient) BreakdownLyrics(ctx context.Context, lyrics, theme string, blockDuration int) ([]domain.SceneInput, error) {
	body, err := json.Marshal(breakdownRequest{Lyrics: lyrics, Theme: theme, BlockDuration: blockDuration})
	if err != nil {
		return nil, fmt.Errorf("marshal breakdown request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/breakdown-lyrics", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new breakdown request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBackend, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: breakdown returned %d: %s", apperrors.ErrBackend, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	decoded := breakdownResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode breakdown response: %w", err)
	}

	inputs := make([]domain.SceneInput, 0, len(decoded.Scenes))
	for _, scene := range decoded.Scenes {
		scene := scene
		inputs = append(inputs, domain.SceneInput{
			StartTime:        &scene.StartTime,
			EndTime:          &scene.EndTime,
			LyricSegment:     &scene.LyricSegment,
			SceneDescription: &scene.Description,
			CameraMovement:   &scene.CameraMovement,
			Lighting:         &scene.Lighting,
			Mood:             &scene.Mood,
			CharacterActions: &scene.CharacterActions,
			VisualStyle:      &scene.VisualStyle,
		})
	}
	return inputs, nil
}
