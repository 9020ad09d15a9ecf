package llm

import (
	"context"
	"strings"

	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// QueryGenerator asks the model for an SQL query answering the question
type QueryGenerator struct {
	chain runnable
	table string
}

// NewQueryGenerator initializes a new query generator for table
func NewQueryGenerator(ctx context.Context, chatModel model.BaseChatModel, table string) (*QueryGenerator, error) {
	chain, err := newChain(ctx, chatModel,
		schema.SystemMessage(querySystemPrompt),
		schema.UserMessage("{input}"),
	)
	if err != nil {
		return nil, err
	}
	return &QueryGenerator{chain: chain, table: table}, nil
}

// Generate returns the SQL the model produced, without markdown fences.
// The query is not validated.
func (g *QueryGenerator) Generate(ctx context.Context, intent models.Intent, question string) (string, error) {
	reply, err := invoke(ctx, g.chain, map[string]any{
		"table":  g.table,
		"intent": string(intent),
		"input":  question,
	})
	if err != nil {
		return "", err
	}
	return CleanSQL(reply), nil
}

// CleanSQL strips a surrounding ```sql fence
func CleanSQL(reply string) string {
	sql := strings.TrimSpace(reply)
	if !strings.HasPrefix(sql, "```") {
		return sql
	}
	sql = strings.TrimPrefix(sql, "```sql")
	sql = strings.TrimPrefix(sql, "```")
	sql = strings.TrimSuffix(strings.TrimSpace(sql), "```")
	return strings.TrimSpace(sql)
}
