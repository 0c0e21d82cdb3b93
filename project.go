package rhodium

import (
	"bytes"
	"context"

	"github.com/adamwoolhether/rhodium/client"
	"github.com/adamwoolhether/rhodium/errs"
	"github.com/adamwoolhether/rhodium/project"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// GetProject fetches a project record and decodes it with the money and
// unit converters of [project.Decode]. No partial record is returned.
func (c *Client) GetProject(ctx context.Context, partyID, projectID uuid.UUID) (*project.Project, error) {
	ctx, span := c.tracer.Start(ctx, "rhodium.GetProject", trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("party.id", partyID.String()),
		attribute.String("project.id", projectID.String()),
	)
	defer span.End()

	c.logger.DebugContext(ctx, "fetching project", "partyId", partyID, "projectId", projectID)

	params := []errs.Param{
		errs.P("partyId", partyID),
		errs.P("projectId", projectID),
	}

	var body []byte
	err := c.fetch(ctx, "project", params, client.WithRawDestination(&body),
		"parties", partyID.String(), "projects", projectID.String())
	if err != nil {
		return nil, fail(span, err)
	}

	p, err := project.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fail(span, errs.NewDecodingError("project", err))
	}

	return p, nil
}
