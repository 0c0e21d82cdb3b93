package rhodium

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/adamwoolhether/rhodium/client"
	"github.com/adamwoolhether/rhodium/errs"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// GetDocument fetches a document of a project and returns its decoded bytes.
// The API serves the document as base64 text.
func (c *Client) GetDocument(ctx context.Context, partyID, projectID uuid.UUID, fileName string) ([]byte, error) {
	if fileName == "" || fileName == "." || fileName == ".." {
		return nil, fmt.Errorf("%w: file name %q", errs.ErrInvalidArgument, fileName)
	}

	ctx, span := c.tracer.Start(ctx, "rhodium.GetDocument", trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("party.id", partyID.String()),
		attribute.String("project.id", projectID.String()),
		attribute.String("document.name", fileName),
	)
	defer span.End()

	c.logger.DebugContext(ctx, "fetching document", "partyId", partyID, "projectId", projectID, "fileName", fileName)

	params := []errs.Param{
		errs.P("partyId", partyID),
		errs.P("projectId", projectID),
		errs.P("fileName", fileName),
	}

	var body []byte
	err := c.fetch(ctx, "document", params, client.WithRawDestination(&body),
		"parties", partyID.String(), "projects", projectID.String(), "documents", fileName)
	if err != nil {
		return nil, fail(span, err)
	}

	doc, err := decodeDocument(body)
	if err != nil {
		return nil, fail(span, errs.NewDecodingError("document", err))
	}

	span.SetAttributes(attribute.Int("document.size", len(doc)))

	return doc, nil
}

// GetProjectDocuments fetches the project and then every document it
// references, keyed by file name. Any failure fails the whole call.
func (c *Client) GetProjectDocuments(ctx context.Context, partyID, projectID uuid.UUID) (map[string][]byte, error) {
	p, err := c.GetProject(ctx, partyID, projectID)
	if err != nil {
		return nil, err
	}

	names := p.FileNames()
	docs := make(map[string][]byte, len(names))
	for _, name := range names {
		doc, err := c.GetDocument(ctx, partyID, projectID, name)
		if err != nil {
			return nil, err
		}
		docs[name] = doc
	}

	return docs, nil
}

// decodeDocument decodes a base64 body. Surrounding whitespace, a pair of
// enclosing JSON quotes and whitespace inside the text are ignored.
func decodeDocument(body []byte) ([]byte, error) {
	text := bytes.TrimSpace(body)
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	text = bytes.Join(bytes.Fields(text), nil)

	doc := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(doc, text)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}

	return doc[:n], nil
}
