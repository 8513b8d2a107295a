// Package assistant suggests categories, groupings and step-by-step plans
// for tasks using an OpenAI-compatible chat completion API
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ayoisaiah/focusflow/internal/apperr"
	"github.com/ayoisaiah/focusflow/internal/config"
	"github.com/ayoisaiah/focusflow/internal/models"
)

var (
	errNoAPIKey = &apperr.Error{
		Message: "no API key configured for the task assistant",
	}

	errEmptyResponse = &apperr.Error{
		Message: "assistant returned no choices",
	}

	errDecodeResponse = &apperr.Error{
		Message: "unable to decode assistant response",
	}
)

const (
	defaultCategory = "personal"
	defaultEstimate = 30
	defaultTimeout  = 30 * time.Second

	analyzeTokens   = 500
	groupTokens     = 800
	breakdownTokens = 400

	noDescription = "No description provided"
)

// Suggestion is the analysis of a single task.
type Suggestion struct {
	Category          string          `json:"category"`
	Priority          models.Priority `json:"priority"`
	Reasoning         string          `json:"reasoning"`
	Subtasks          []string        `json:"subtasks,omitempty"`
	EstimatedDuration int             `json:"estimatedDuration"` // minutes
}

// GroupSuggestion is a set of tasks that work well together.
type GroupSuggestion struct {
	GroupName          string   `json:"groupName"`
	Reasoning          string   `json:"reasoning"`
	Tasks              []string `json:"tasks"`
	EstimatedTotalTime int      `json:"estimatedTotalTime"` // minutes
}

// TaskInput describes a task to the assistant.
type TaskInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Priority    models.Priority `json:"priority,omitempty"`
}

type completer interface {
	CreateChatCompletion(
		ctx context.Context,
		req openai.ChatCompletionRequest,
	) (openai.ChatCompletionResponse, error)
}

// Assistant answers with sensible defaults whenever the API is unavailable,
// so none of its methods fail.
type Assistant struct {
	client  completer
	log     *slog.Logger
	model   string
	timeout time.Duration
}

// New returns an assistant for cfg. Without an API key every answer comes
// from the built-in fallbacks.
func New(cfg config.AIConfig, logger *slog.Logger) *Assistant {
	a := &Assistant{
		log:     logger,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}

	if a.log == nil {
		a.log = slog.Default()
	}

	if a.model == "" {
		a.model = openai.GPT4o
	}

	if a.timeout <= 0 {
		a.timeout = defaultTimeout
	}

	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}

		a.client = openai.NewClientWithConfig(clientCfg)
	}

	return a
}

// complete sends prompt and decodes the JSON object reply into v.
func (a *Assistant) complete(
	ctx context.Context,
	prompt string,
	maxTokens int,
	v any,
) error {
	if a.client == nil {
		return errNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxCompletionTokens: maxTokens,
	})
	if err != nil {
		return err
	}

	if len(resp.Choices) == 0 {
		return errEmptyResponse
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		content = "{}"
	}

	if err := json.Unmarshal([]byte(content), v); err != nil {
		return errDecodeResponse.Wrap(err)
	}

	return nil
}

func describe(description string) string {
	if strings.TrimSpace(description) == "" {
		return noDescription
	}

	return description
}

// Analyze categorises a task and estimates its size.
func (a *Assistant) Analyze(ctx context.Context, title, description string) Suggestion {
	prompt := fmt.Sprintf(`Analyze this task for someone with ADHD who needs clear, actionable steps:

Task: %q
Description: %q

Provide analysis in JSON format with:
- category: academic, personal, work, or health
- priority: low, medium, or urgent (based on typical student needs)
- estimatedDuration: time in minutes to complete
- subtasks: array of 2-4 smaller, specific steps if the task is complex
- reasoning: brief explanation of categorization and priority

Focus on ADHD-friendly approaches: clear steps, realistic time estimates, and manageable chunks.`,
		title, describe(description))

	var result Suggestion

	if err := a.complete(ctx, prompt, analyzeTokens, &result); err != nil {
		a.log.Warn("task analysis unavailable", slog.Any("error", err))

		return Suggestion{
			Category:          defaultCategory,
			Priority:          models.PriorityMedium,
			EstimatedDuration: defaultEstimate,
			Reasoning:         "AI analysis unavailable - using defaults",
		}
	}

	if result.Category == "" {
		result.Category = defaultCategory
	}

	if !result.Priority.Valid() {
		result.Priority = models.PriorityMedium
	}

	if result.EstimatedDuration <= 0 {
		result.EstimatedDuration = defaultEstimate
	}

	if result.Subtasks == nil {
		result.Subtasks = []string{}
	}

	if result.Reasoning == "" {
		result.Reasoning = "AI analysis completed"
	}

	return result
}

// Groups suggests ways to batch tasks. Fewer than two tasks, or any failure,
// yields no groups.
func (a *Assistant) Groups(ctx context.Context, tasks []TaskInput) []GroupSuggestion {
	if len(tasks) < 2 {
		return []GroupSuggestion{}
	}

	var list strings.Builder

	for i, t := range tasks {
		fmt.Fprintf(&list, "%d. %s (%s priority)", i+1, t.Title, t.Priority)

		if t.Description != "" {
			fmt.Fprintf(&list, " - %s", t.Description)
		}

		list.WriteString("\n")
	}

	prompt := fmt.Sprintf(`Group these tasks for optimal ADHD productivity. Focus on:
- Similar contexts or locations
- Complementary energy levels
- Natural workflow sequences

Tasks:
%s
Provide 2-3 grouping suggestions in JSON format:
{
  "groups": [
    {
      "groupName": "descriptive name",
      "tasks": ["task titles"],
      "reasoning": "why these work well together",
      "estimatedTotalTime": minutes
    }
  ]
}

Consider ADHD challenges: context switching difficulty, energy management, and hyperfocus opportunities.`,
		list.String())

	var result struct {
		Groups []GroupSuggestion `json:"groups"`
	}

	if err := a.complete(ctx, prompt, groupTokens, &result); err != nil {
		a.log.Warn("task grouping unavailable", slog.Any("error", err))
		return []GroupSuggestion{}
	}

	if result.Groups == nil {
		return []GroupSuggestion{}
	}

	return result.Groups
}

// BreakDown splits a large task into smaller steps.
func (a *Assistant) BreakDown(ctx context.Context, title, description string) []string {
	prompt := fmt.Sprintf(`Break down this potentially overwhelming task into 3-6 smaller, specific, actionable steps for someone with ADHD:

Task: %q
Description: %q

Provide a JSON array of specific steps that are:
- Clear and actionable
- Not overwhelming (15-45 minutes each)
- In logical order
- Specific enough to start immediately

Format: {"steps": ["step 1", "step 2", ...]}`,
		title, describe(description))

	var result struct {
		Steps []string `json:"steps"`
	}

	if err := a.complete(ctx, prompt, breakdownTokens, &result); err != nil {
		a.log.Warn("task breakdown unavailable", slog.Any("error", err))
		return fallbackBreakdown(title)
	}

	if result.Steps == nil {
		return []string{}
	}

	return result.Steps
}
