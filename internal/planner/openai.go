package planner

import (
	"context"
	"errors"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/wanderwise-ai/trip-planner/internal/model"
	"github.com/wanderwise-ai/trip-planner/pkg/logger"
	"github.com/wanderwise-ai/trip-planner/pkg/metrics"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAIClient generates itineraries through the OpenAI chat API with a
// forced travel_events function call. Same soft-failure semantics as the
// Anthropic client.
type OpenAIClient struct {
	client    *openai.Client
	modelName string
	logger    *logger.Logger
}

// NewOpenAIClient creates a new OpenAI planner client.
func NewOpenAIClient(apiKey, modelName string, log *logger.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if modelName == "" {
		modelName = defaultOpenAIModel
	}

	return &OpenAIClient{
		client:    openai.NewClient(apiKey),
		modelName: modelName,
		logger:    log,
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// GenerateItinerary invokes the model with the travel_events function forced.
func (c *OpenAIClient) GenerateItinerary(ctx context.Context, trip *model.Trip) (*model.Itinerary, error) {
	if err := checkTripFields(trip); err != nil {
		return nil, err
	}

	start := time.Now()
	prompt := BuildPrompt(trip)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.modelName,
		MaxTokens:   4000,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Tools: []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ToolName,
				Description: ToolDescription,
				Parameters:  inputSchema(),
			},
		}},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: ToolName},
		},
	})
	if err != nil {
		metrics.RecordLLMCall(c.Name(), c.modelName, "error", time.Since(start).Seconds(), 0, 0)
		c.logger.Error("openai call failed", "error", err)
		return nil, nil
	}

	duration := time.Since(start).Seconds()
	tokensIn := resp.Usage.PromptTokens
	tokensOut := resp.Usage.CompletionTokens

	for _, choice := range resp.Choices {
		for _, call := range choice.Message.ToolCalls {
			if call.Function.Name != ToolName {
				continue
			}

			itin, err := parseItineraryPayload([]byte(call.Function.Arguments), resp.Model)
			if err != nil {
				metrics.RecordLLMCall(c.Name(), c.modelName, "invalid", duration, tokensIn, tokensOut)
				c.logger.Warn("unusable travel_events payload", "error", err)
				return nil, nil
			}

			metrics.RecordLLMCall(c.Name(), c.modelName, "success", duration, tokensIn, tokensOut)
			return itin, nil
		}

		if choice.Message.Content != "" {
			c.logger.Debug("discarding text commentary from response", "text", choice.Message.Content)
		}
	}

	metrics.RecordLLMCall(c.Name(), c.modelName, "no_tool_use", duration, tokensIn, tokensOut)
	c.logger.Warn("no travel_events tool call in response", "model", resp.Model)
	return nil, nil
}
