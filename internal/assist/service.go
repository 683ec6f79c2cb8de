// Package assist hosts the single-call LLM passthroughs that sit next
// to duplicate detection in the civic-complaints backend: comment
// summarization, feedback sentiment scoring, and a citizen chat
// assistant. None of them keeps server-side state beyond the provider.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/civicradar/issueradar/internal/llm"
)

const summarizePrompt = "Summarize the following citizen comments on a civic issue in two or three sentences. Be neutral and concrete.\n\nComments:\n%s"

const sentimentPrompt = `Score the sentiment of each feedback comment below.
Reply with JSON of the form {"scores": [<number>, ...]}, one score per
comment in order, each in [-1, 1] where -1 is strongly negative, 0 is
neutral and 1 is strongly positive.

Comments:
%s`

const chatSystemPrompt = "You are a helpful assistant for a civic issue reporting platform. Citizens ask about reporting complaints, tracking their status, and how the platform works. Answer briefly and accurately."

// Service runs the passthrough operations against one LLM provider.
type Service struct {
	provider  llm.Provider
	model     string
	knowledge string
}

// NewService creates a Service. knowledge is optional background text
// prepended to chat questions (the platform's FAQ/knowledge base).
func NewService(provider llm.Provider, model, knowledge string) *Service {
	return &Service{provider: provider, model: model, knowledge: knowledge}
}

// Summarize condenses a list of comments into a short summary.
func (s *Service) Summarize(ctx context.Context, comments []string) (string, error) {
	if len(comments) == 0 {
		return "No comments available to summarize.", nil
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf(summarizePrompt, strings.Join(comments, "\n"))},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	summary := strings.TrimSpace(resp.Content)
	if summary == "" {
		return "", fmt.Errorf("summarization returned no content")
	}
	return summary, nil
}

// CommentScore is one scored feedback comment.
type CommentScore struct {
	Comment string  `json:"comment"`
	Score   float64 `json:"score"`
}

// SentimentResult aggregates per-comment polarity scores.
type SentimentResult struct {
	OverallSentiment string         `json:"overall_sentiment"`
	OverallScore     float64        `json:"overall_score"`
	PositiveCount    int            `json:"positive_count"`
	NegativeCount    int            `json:"negative_count"`
	NeutralCount     int            `json:"neutral_count"`
	IndividualScores []CommentScore `json:"individual_scores"`
}

// Sentiment scores each comment's polarity with one JSON-mode
// completion and aggregates the result.
func (s *Service) Sentiment(ctx context.Context, comments []string) (*SentimentResult, error) {
	if len(comments) == 0 {
		return &SentimentResult{
			OverallSentiment: "Neutral",
			IndividualScores: []CommentScore{},
		}, nil
	}

	numbered := make([]string, len(comments))
	for i, c := range comments {
		numbered[i] = fmt.Sprintf("%d. %s", i+1, c)
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model:    s.model,
		JSONMode: true,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf(sentimentPrompt, strings.Join(numbered, "\n"))},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sentiment scoring failed: %w", err)
	}

	var parsed struct {
		Scores []float64 `json:"scores"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil {
		return nil, fmt.Errorf("parsing sentiment scores: %w", err)
	}
	if len(parsed.Scores) != len(comments) {
		return nil, fmt.Errorf("got %d sentiment scores for %d comments", len(parsed.Scores), len(comments))
	}

	result := &SentimentResult{IndividualScores: make([]CommentScore, len(comments))}
	var total float64
	for i, score := range parsed.Scores {
		result.IndividualScores[i] = CommentScore{Comment: comments[i], Score: score}
		total += score
		switch {
		case score > 0:
			result.PositiveCount++
		case score < 0:
			result.NegativeCount++
		default:
			result.NeutralCount++
		}
	}

	result.OverallScore = total / float64(len(comments))
	result.OverallSentiment = "Neutral"
	if result.OverallScore > 0 {
		result.OverallSentiment = "Positive"
	} else if result.OverallScore < 0 {
		result.OverallSentiment = "Negative"
	}

	return result, nil
}

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat answers a citizen question, given the prior turns of the
// conversation. The knowledge base, when configured, is supplied as
// context with the question.
func (s *Service) Chat(ctx context.Context, history []ChatMessage, question string) (string, error) {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: chatSystemPrompt}}
	for _, msg := range history {
		role := llm.RoleUser
		if msg.Role == "assistant" {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Content})
	}

	prompt := question
	if s.knowledge != "" {
		prompt = fmt.Sprintf("Use the following context to answer the question accurately:\n\n%s\n\nUser question: %s", s.knowledge, question)
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	return strings.TrimSpace(resp.Content), nil
}
