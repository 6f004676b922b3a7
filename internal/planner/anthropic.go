package planner

import (
	"context"
	"errors"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/wanderwise-ai/trip-planner/internal/model"
	"github.com/wanderwise-ai/trip-planner/pkg/logger"
	"github.com/wanderwise-ai/trip-planner/pkg/metrics"
)

const defaultAnthropicModel = "claude-sonnet-4-20250514"

// AnthropicClient generates itineraries through the Anthropic Messages API
// with a forced travel_events tool choice.
type AnthropicClient struct {
	client    *anthropic.Client
	modelName string
	logger    *logger.Logger
}

// NewAnthropicClient creates a new Anthropic planner client.
func NewAnthropicClient(apiKey, modelName string, log *logger.Logger) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}
	if modelName == "" {
		modelName = defaultAnthropicModel
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &AnthropicClient{
		client:    client,
		modelName: modelName,
		logger:    log,
	}, nil
}

// Name returns the provider name.
func (c *AnthropicClient) Name() string {
	return "anthropic"
}

// GenerateItinerary invokes the model with the travel_events schema forced.
// Transport errors and unusable responses are converted to the soft-failure
// (nil, nil) result; no raw transport error crosses this boundary.
func (c *AnthropicClient) GenerateItinerary(ctx context.Context, trip *model.Trip) (*model.Itinerary, error) {
	if err := checkTripFields(trip); err != nil {
		return nil, err
	}

	start := time.Now()
	prompt := BuildPrompt(trip)

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.F(c.modelName),
		MaxTokens:   anthropic.F(int64(4000)),
		Temperature: anthropic.F(0.7),
		System: anthropic.F([]anthropic.TextBlockParam{{
			Type: anthropic.F(anthropic.TextBlockParamTypeText),
			Text: anthropic.F(systemPrompt),
		}}),
		Messages: anthropic.F([]anthropic.MessageParam{{
			Role: anthropic.F(anthropic.MessageParamRoleUser),
			Content: anthropic.F([]anthropic.ContentBlockParamUnion{
				anthropic.TextBlockParam{
					Type: anthropic.F(anthropic.TextBlockParamTypeText),
					Text: anthropic.F(prompt),
				},
			}),
		}}),
		Tools: anthropic.F([]anthropic.ToolParam{{
			Name:        anthropic.F(ToolName),
			Description: anthropic.F(ToolDescription),
			InputSchema: anthropic.F[interface{}](inputSchema()),
		}}),
		ToolChoice: anthropic.F[anthropic.ToolChoiceUnionParam](anthropic.ToolChoiceToolParam{
			Type: anthropic.F(anthropic.ToolChoiceToolTypeTool),
			Name: anthropic.F(ToolName),
		}),
	})
	if err != nil {
		metrics.RecordLLMCall(c.Name(), c.modelName, "error", time.Since(start).Seconds(), 0, 0)
		c.logger.Error("anthropic call failed", "error", err)
		return nil, nil
	}

	duration := time.Since(start).Seconds()
	tokensIn := int(resp.Usage.InputTokens)
	tokensOut := int(resp.Usage.OutputTokens)

	// The first matching tool invocation is authoritative; plain-text
	// commentary is logged and discarded.
	for _, block := range resp.Content {
		if block.Type != anthropic.ContentBlockTypeToolUse || block.Name != ToolName {
			continue
		}

		itin, err := parseItineraryPayload([]byte(block.Input), resp.Model)
		if err != nil {
			metrics.RecordLLMCall(c.Name(), c.modelName, "invalid", duration, tokensIn, tokensOut)
			c.logger.Warn("unusable travel_events payload", "error", err)
			return nil, nil
		}

		metrics.RecordLLMCall(c.Name(), c.modelName, "success", duration, tokensIn, tokensOut)
		return itin, nil
	}

	for _, block := range resp.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			c.logger.Debug("discarding text commentary from response", "text", block.Text)
		}
	}

	metrics.RecordLLMCall(c.Name(), c.modelName, "no_tool_use", duration, tokensIn, tokensOut)
	c.logger.Warn("no travel_events tool use in response", "model", resp.Model)
	return nil, nil
}
