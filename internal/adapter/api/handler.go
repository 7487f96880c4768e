package api

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sqlgate/internal/domain/entity"
	"sqlgate/internal/knowledge"
)

// SQLService is the slice of the orchestrator the handlers need.
type SQLService interface {
	GenerateSQL(ctx context.Context, callerID, question string) *entity.SQLCandidate
	ExecuteSQL(ctx context.Context, requestID, sqlText string) string
}

type QueryHandler struct {
	service SQLService
	corpus  knowledge.Corpus
}

func NewQueryHandler(service SQLService, corpus knowledge.Corpus) *QueryHandler {
	return &QueryHandler{service: service, corpus: corpus}
}

type generateRequest struct {
	Question string `json:"question"`
}

type executeRequest struct {
	RequestID string `json:"request_id"`
	SQL       string `json:"sql"`
}

// HandleGenerate turns a natural-language question into SQL. Generation
// failures still return 200 with a descriptive string in place of SQL;
// only a malformed request is a client error.
func (h *QueryHandler) HandleGenerate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": entity.ErrInvalidRequest.Error()})
	}

	cand := h.service.GenerateSQL(c.Context(), c.IP(), req.Question)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"request_id":    cand.RequestID,
		"question":      req.Question,
		"sql":           cand.SQL,
		"input_tokens":  cand.InputTokens,
		"output_tokens": cand.OutputTokens,
		"cost":          cand.Cost,
		"latency_ms":    cand.Latency.Milliseconds(),
	})
}

// HandleExecute runs a SQL statement and returns the serialized result.
// Database errors come back as the result string, not as an HTTP fault.
// The optional request_id ties the fetch outcome to the generation's
// audit row.
func (h *QueryHandler) HandleExecute(c *fiber.Ctx) error {
	var req executeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.SQL) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": entity.ErrInvalidRequest.Error()})
	}

	result := h.service.ExecuteSQL(c.Context(), req.RequestID, req.SQL)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"result": result})
}

// HandleContext exposes the static schema and documentation corpus for
// the dashboard.
func (h *QueryHandler) HandleContext(c *fiber.Ctx) error {
	schema := make([]string, len(h.corpus.DDL))
	for i, ddl := range h.corpus.DDL {
		schema[i] = ddl.Statement
	}
	docs := make([]string, len(h.corpus.Docs))
	for i, doc := range h.corpus.Docs {
		docs[i] = doc.Text
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"schema":        schema,
		"documentation": docs,
	})
}
