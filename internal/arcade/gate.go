package arcade

import (
	"context"
	"time"

	"github.com/wanderwise-ai/trip-planner/pkg/logger"
	"github.com/wanderwise-ai/trip-planner/pkg/metrics"
)

// Gate enforces the authorize -> wait-for-completion -> execute sequence for
// every external tool call. Execute on the underlying client is never issued
// while the authorization is pending.
type Gate struct {
	client *Client
	logger *logger.Logger
}

// NewGate creates a new authorization gate.
func NewGate(client *Client, log *logger.Logger) *Gate {
	return &Gate{client: client, logger: log}
}

// Execute runs one tool call through the full authorization protocol and
// returns the tool's output value.
func (g *Gate) Execute(ctx context.Context, toolName, userID string, input map[string]interface{}) (interface{}, error) {
	auth, err := g.client.Authorize(ctx, toolName, userID)
	if err != nil {
		metrics.RecordToolExecution(toolName, "auth_error")
		return nil, err
	}

	if auth.Status != StatusCompleted {
		// The console is the operator side channel for consent URLs.
		g.logger.Info("authorization required, visit URL to approve",
			"tool", toolName,
			"user_id", userID,
			"url", auth.URL,
		)
	}

	waitStart := time.Now()
	auth, err = g.client.WaitForCompletion(ctx, auth)
	if err != nil {
		metrics.RecordAuthWait(toolName, "timeout", time.Since(waitStart).Seconds())
		metrics.RecordToolExecution(toolName, "auth_timeout")
		return nil, err
	}
	metrics.RecordAuthWait(toolName, "completed", time.Since(waitStart).Seconds())

	resp, err := g.client.Execute(ctx, toolName, input, userID)
	if err != nil {
		metrics.RecordToolExecution(toolName, "error")
		return nil, err
	}

	metrics.RecordToolExecution(toolName, "success")
	return resp.Output.Value, nil
}
