// File: internal/infra/adapters/ai/matcher.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog"

	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/domain/ports/adapter"
	"jobsearch-assistant/internal/infra/metrics"
)

// Compile-time check
var _ adapter.Scorer = (*Matcher)(nil)

const (
	scorePrompt = `Resume: %s
Job: %s
Score match 0-100, explain skills, experience, keywords. Output JSON: {"score": number, "explanation": string}`

	// defaultTokenBudget bounds the prompt so a long resume plus a long
	// posting never tips the call over the model's context window.
	defaultTokenBudget = 6000

	tokenEncoding = "cl100k_base"
)

// Matcher implements adapter.Scorer on a ChatClient: one prompt per
// posting, a strict JSON verdict back.
type Matcher struct {
	chat     adapter.ChatClient
	provider string
	model    string
	budget   int
	enc      *tiktoken.Tiktoken
	log      *zerolog.Logger
}

func NewMatcher(chat adapter.ChatClient, provider, model string, tokenBudget int, log *zerolog.Logger) (*Matcher, error) {
	enc, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		return nil, fmt.Errorf("load token encoding: %w", err)
	}
	if tokenBudget <= 0 {
		tokenBudget = defaultTokenBudget
	}
	return &Matcher{chat: chat, provider: provider, model: model, budget: tokenBudget, enc: enc, log: log}, nil
}

func (m *Matcher) Score(ctx context.Context, resumeText, jobDescription string) (model.MatchResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		// No resume uploaded yet. Every posting is an equally unknown
		// match, so skip the provider call entirely.
		return model.MatchResult{Score: 0, Explanation: "No resume uploaded yet."}, nil
	}

	// The resume repeats across the batch and dominates the prompt, so
	// it absorbs the truncation; the posting keeps a fixed slice.
	descBudget := m.budget / 3
	jobDescription = m.truncate(jobDescription, descBudget)
	resumeText = m.truncate(resumeText, m.budget-descBudget)

	prompt := fmt.Sprintf(scorePrompt, resumeText, jobDescription)

	start := time.Now()
	reply, usage, err := m.chat.ChatWithUsage(ctx, m.model, []adapter.Message{{Role: "user", Content: prompt}})
	latency := int(time.Since(start).Milliseconds())
	metrics.ObserveChatUsage(m.provider, m.model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens, latency, err == nil)
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("score chat: %w", err)
	}

	res, err := parseScoreReply(reply)
	if err != nil {
		if m.log != nil {
			m.log.Warn().Err(err).Str("reply", truncateForLog(reply, 200)).Msg("unparseable score reply")
		}
		return model.MatchResult{}, err
	}
	return res.Clamp(), nil
}

func (m *Matcher) truncate(text string, maxTokens int) string {
	ids := m.enc.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	return m.enc.Decode(ids[:maxTokens])
}

func parseScoreReply(raw string) (model.MatchResult, error) {
	cleaned := extractJSON(raw)
	// Models sometimes emit a fractional score; any numeric value is
	// accepted and rounded, only non-JSON output is a failure.
	var verdict struct {
		Score       float64 `json:"score"`
		Explanation string  `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(cleaned), &verdict); err != nil {
		return model.MatchResult{}, fmt.Errorf("parse score reply: %w", err)
	}
	res := model.MatchResult{
		Score:       int(math.Round(verdict.Score)),
		Explanation: verdict.Explanation,
	}
	if strings.TrimSpace(res.Explanation) == "" {
		res.Explanation = "No explanation provided."
	}
	return res, nil
}

// extractJSON strips markdown code fences the models like to wrap JSON in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func truncateForLog(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
