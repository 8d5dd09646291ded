package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// summaryFallback is returned whenever the language model cannot be reached
// so the dashboard degrades instead of erroring.
const summaryFallback = "AI summary is unavailable right now. Review the per-project figures above for current status."

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// SummaryConfig holds the language-model client settings.
type SummaryConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// SummaryResult is the generated executive summary.
type SummaryResult struct {
	Summary     string    `json:"summary"`
	Generated   bool      `json:"generated"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// SummaryService produces a short executive summary of current progress by
// sending the aggregated dashboard figures to an OpenAI-compatible chat
// model. Every failure path falls back to a static message.
type SummaryService struct {
	store  dashboardStore
	client chatCompleter
	config SummaryConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewSummaryService constructs a SummaryService. With no API key configured
// the service stays up and always answers with the fallback text.
func NewSummaryService(store dashboardStore, config SummaryConfig, logger *zap.Logger) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	var client chatCompleter
	if config.APIKey != "" {
		clientConfig := openai.DefaultConfig(config.APIKey)
		if config.BaseURL != "" {
			clientConfig.BaseURL = config.BaseURL
		}
		client = openai.NewClientWithConfig(clientConfig)
	}
	if config.Model == "" {
		config.Model = openai.GPT4o
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &SummaryService{store: store, client: client, config: config, logger: logger, now: time.Now}
}

// Generate builds the progress digest for the filter and asks the model for
// an executive summary in Thai.
func (s *SummaryService) Generate(ctx context.Context, filter DashboardFilter) (*SummaryResult, error) {
	units, err := s.store.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	reports, err := s.store.ListReports(ctx)
	if err != nil {
		return nil, err
	}

	view := buildDashboardView(units, projects, reports, filter)
	if s.client == nil {
		return s.fallback("summary requested without an API key"), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an analyst for a military planning directorate. Summarize project progress in Thai, in at most four sentences, highlighting completed work, stalled projects and notable obstacles.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: summaryPrompt(view),
			},
		},
	})
	if err != nil {
		s.logger.Warn("summary generation failed", zap.Error(err))
		return s.fallback(""), nil
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return s.fallback("model returned an empty completion"), nil
	}
	return &SummaryResult{
		Summary:     strings.TrimSpace(resp.Choices[0].Message.Content),
		Generated:   true,
		GeneratedAt: s.now().UTC(),
	}, nil
}

func (s *SummaryService) fallback(reason string) *SummaryResult {
	if reason != "" {
		s.logger.Info("serving summary fallback", zap.String("reason", reason))
	}
	return &SummaryResult{Summary: summaryFallback, GeneratedAt: s.now().UTC()}
}

func summaryPrompt(view *DashboardView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Projects: %d total, %d completed, %d in progress, %d not started, average progress %d%%.\n",
		view.Stats.Total, view.Stats.Completed, view.Stats.InProgress, view.Stats.NotStarted, view.Stats.AvgProgress)
	b.WriteString("Per-project latest status:\n")
	for _, row := range view.Rows {
		fmt.Fprintf(&b, "- %s (%s): %d%% [%s]\n", row.ProjectName, row.UnitShortName, row.Progress, row.Status)
	}
	obstacles := collectObstacles(view)
	if len(obstacles) > 0 {
		b.WriteString("Reported obstacles:\n")
		for _, o := range obstacles {
			fmt.Fprintf(&b, "- %s\n", o)
		}
	}
	return b.String()
}

func collectObstacles(view *DashboardView) []string {
	out := []string{}
	for _, r := range view.Latest {
		if o := strings.TrimSpace(r.Obstacles); o != "" {
			out = append(out, fmt.Sprintf("%s: %s", r.ProjectName, o))
		}
	}
	return out
}
