package mcp

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/appianeng/maverick-mcp/internal/common"
	"github.com/appianeng/maverick-mcp/internal/maverick"
)

// ErrUnknownTool is returned when a tool name has no catalog entry.
var ErrUnknownTool = errors.New("unknown tool")

// Dispatcher routes validated tool invocations to the Maverick client
// and renders the outcomes as display text.
type Dispatcher struct {
	client *maverick.Client
	logger *common.Logger
}

// NewDispatcher creates a Dispatcher backed by the given client.
func NewDispatcher(client *maverick.Client, logger *common.Logger) *Dispatcher {
	return &Dispatcher{client: client, logger: logger}
}

// Invoke resolves the named tool, validates the arguments, and executes
// the call. Each invocation gets a correlation ID, carried on both the
// logger and the context, so dispatcher and client log lines can be
// tied together. Arguments that fail validation never reach the
// upstream API.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]any) (string, error) {
	ts, ok := toolByName(name)
	if !ok {
		return "", ErrUnknownTool
	}

	corrID := uuid.New().String()
	ctx = common.WithCorrelationID(ctx, corrID)
	log := d.logger.WithCorrelationId(corrID)

	log.Info().Str("tool", name).Int("args", len(args)).Msg("Tool invocation")

	norm, err := ValidateArgs(ts, args)
	if err != nil {
		log.Warn().Str("tool", name).Str("error", err.Error()).Msg("Argument validation failed")
		return "", err
	}

	var text string
	switch name {
	case ToolCreateSite:
		text, err = d.createSite(ctx, norm)
	case ToolQuerySites:
		text, err = d.querySites(ctx, norm)
	case ToolGetSiteByID:
		text, err = d.getSiteByID(ctx, norm)
	case ToolManageSite:
		text, err = d.manageSite(ctx, norm)
	case ToolGetSiteResizeStatus:
		text, err = d.getSiteResizeStatus(ctx, norm)
	default:
		return "", ErrUnknownTool
	}

	if err != nil {
		log.Warn().Str("tool", name).Str("error", err.Error()).Msg("Tool invocation failed")
		return "", err
	}
	return text, nil
}
