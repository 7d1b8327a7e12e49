package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"aureus/domain"
	"aureus/repository"
)

const (
	defaultChatURL   = "https://api.openai.com/v1/chat/completions"
	defaultChatModel = "gpt-4o-mini"
	summaryPreview   = 300
)

var (
	defaultRecommendations = []string{"Maintain consistency", "Monitor spot prices", "Diversify related assets"}
	defaultMarketContext   = "Gold remains a strong hedge against inflation according to recent trends."

	markdownLink = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)\s]+)\)`)
)

type CommentaryConfig struct {
	APIKey     string
	APIURL     string
	Model      string
	HTTPClient *http.Client
	Cache      repository.CacheRepository
	CacheTTL   time.Duration
}

// CommentaryService produces an AIAnalysis for a simulation result. It never
// reports failure to its caller.
type CommentaryService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	cache      repository.CacheRepository
	cacheTTL   time.Duration
	log        zerolog.Logger
}

type ChatRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func NewCommentaryService(cfg CommentaryConfig, log zerolog.Logger) *CommentaryService {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultChatURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultChatModel
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &CommentaryService{
		apiKey:     cfg.APIKey,
		apiURL:     cfg.APIURL,
		model:      cfg.Model,
		enabled:    cfg.APIKey != "",
		httpClient: cfg.HTTPClient,
		cache:      cfg.Cache,
		cacheTTL:   cfg.CacheTTL,
		log:        log.With().Str("component", "commentary").Logger(),
	}
}

// Enabled reports whether an external model is configured.
func (s *CommentaryService) Enabled() bool {
	return s.enabled
}

// Analyze returns commentary for result. Any failure of the external call is
// logged and replaced by domain.FallbackAnalysis.
func (s *CommentaryService) Analyze(ctx context.Context, result domain.SimulationResult) domain.AIAnalysis {
	if !s.enabled {
		return s.offlineAnalysis(result)
	}

	key := cacheKey(result)
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached
	}

	text, err := s.callLLM(ctx, buildPrompt(result))
	if err != nil {
		s.log.Warn().Err(err).Msg("commentary call failed, using fallback")
		return domain.FallbackAnalysis()
	}

	analysis := parseAnalysis(text)
	s.toCache(ctx, key, analysis)

	return analysis
}

func (s *CommentaryService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model: s.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a precious-metals investment analyst. You review dollar-cost averaging plans for physical gold and answer with three sections titled Summary, Recommendations and Market Context. Recommendations are bullet lines starting with '-'. Cite sources as markdown links.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 600,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("no response from AI")
	}

	return chatResp.Choices[0].Message.Content, nil
}

func buildPrompt(result domain.SimulationResult) string {
	return fmt.Sprintf(`Analyze the following gold investment simulation:
- Total Invested: $%.2f
- Total Gold Accumulated: %.4f oz
- Final Portfolio Value: $%.2f
- Average Cost Basis: $%.2f per oz
- ROI: %.2f%%
- Unique Strategy: %.1f%% discount on the gold purchase price, applied to every purchase.

Please provide:
1. A brief summary of the performance.
2. A list of 3 strategic recommendations.
3. Current context of the gold market, with sources.`,
		result.TotalInvested,
		result.TotalGoldOunces,
		result.FinalPortfolioValue,
		result.AverageCostPerOunce,
		result.ROI,
		result.Params.MonthlyDiscountRate*100,
	)
}

// parseAnalysis splits free text into sections. A non-bullet line mentioning
// "summary", "recommendations" or "market" starts the matching section.
func parseAnalysis(text string) domain.AIAnalysis {
	const (
		none = iota
		summarySection
		recommendationSection
		marketSection
	)

	var summary, market []string
	var recommendations []string

	section := none
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		bullet := strings.HasPrefix(trimmed, "-")

		if !bullet {
			lower := strings.ToLower(trimmed)
			switch {
			case strings.Contains(lower, "summary"):
				section = summarySection
				continue
			case strings.Contains(lower, "recommendations"):
				section = recommendationSection
				continue
			case strings.Contains(lower, "market"):
				section = marketSection
				continue
			}
		}

		switch section {
		case summarySection:
			summary = append(summary, trimmed)
		case recommendationSection:
			if bullet {
				rec := strings.TrimSpace(strings.Replace(trimmed, "-", "", 1))
				if rec != "" {
					recommendations = append(recommendations, rec)
				}
			}
		case marketSection:
			market = append(market, trimmed)
		}
	}

	analysis := domain.AIAnalysis{
		Summary:         collapse(summary),
		Recommendations: recommendations,
		MarketContext:   collapse(market),
		Sources:         extractSources(text),
	}
	if analysis.Summary == "" {
		analysis.Summary = truncate(strings.TrimSpace(text), summaryPreview) + "..."
	}
	if len(analysis.Recommendations) == 0 {
		analysis.Recommendations = append([]string{}, defaultRecommendations...)
	}
	if analysis.MarketContext == "" {
		analysis.MarketContext = defaultMarketContext
	}
	return analysis
}

func extractSources(text string) []domain.Source {
	sources := []domain.Source{}
	seen := map[string]bool{}
	for _, m := range markdownLink.FindAllStringSubmatch(text, -1) {
		if seen[m[2]] {
			continue
		}
		seen[m[2]] = true
		sources = append(sources, domain.Source{Title: m[1], URI: m[2]})
	}
	return sources
}

func (s *CommentaryService) offlineAnalysis(result domain.SimulationResult) domain.AIAnalysis {
	months := result.Summary().DurationMonths

	summary := fmt.Sprintf(
		"Investing $%.2f over %d months accumulates %.4f oz of gold at an average cost of $%.2f per oz. The projected portfolio value is $%.2f, a profit of $%.2f (ROI %.2f%%).",
		result.TotalInvested, months, result.TotalGoldOunces, result.AverageCostPerOunce,
		result.FinalPortfolioValue, result.TotalProfit, result.ROI,
	)

	recommendations := append([]string{}, defaultRecommendations...)
	if result.ROI < 0 {
		recommendations[0] = "Extend the plan horizon, the projection ends below cost"
	}

	return domain.AIAnalysis{
		Summary:         summary,
		Recommendations: recommendations,
		MarketContext:   defaultMarketContext,
		Sources:         []domain.Source{},
	}
}

func (s *CommentaryService) fromCache(ctx context.Context, key string) (domain.AIAnalysis, bool) {
	if s.cache == nil {
		return domain.AIAnalysis{}, false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.AIAnalysis{}, false
	}
	var analysis domain.AIAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("discarding unreadable cached analysis")
		return domain.AIAnalysis{}, false
	}
	return analysis, true
}

// Guardar el resultado (no crítico si falla)
func (s *CommentaryService) toCache(ctx context.Context, key string, analysis domain.AIAnalysis) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(analysis)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to cache analysis")
	}
}

// cacheKey identifies a result by the clamped inputs it was projected from
// and its aggregates.
func cacheKey(result domain.SimulationResult) string {
	raw, _ := json.Marshal(struct {
		Params  domain.SimulationParams
		Summary domain.SimulationSummary
	}{result.Params, result.Summary()})
	return fmt.Sprintf("analysis:%016x", xxhash.Sum64(raw))
}

func collapse(lines []string) string {
	return strings.Join(strings.Fields(strings.Join(lines, " ")), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
