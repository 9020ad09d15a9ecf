package llm

import (
	"context"

	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Responder writes the final natural-language answer
type Responder struct {
	answer       runnable
	conversation runnable
	period       models.Period
	table        string
}

// NewResponder initializes the answer and conversation chains
func NewResponder(ctx context.Context, chatModel model.BaseChatModel, period models.Period, table string) (*Responder, error) {
	answer, err := newChain(ctx, chatModel,
		schema.SystemMessage(answerSystemPrompt),
		schema.UserMessage("{input}"),
	)
	if err != nil {
		return nil, err
	}
	conversation, err := newChain(ctx, chatModel,
		schema.SystemMessage(conversationSystemPrompt),
		schema.MessagesPlaceholder("chat_history", true),
		schema.UserMessage("{input}"),
	)
	if err != nil {
		return nil, err
	}
	return &Responder{answer: answer, conversation: conversation, period: period, table: table}, nil
}

// Answer grounds the reply on the insights and the dynamic query output
func (r *Responder) Answer(ctx context.Context, intent models.Intent, question, insights, dynamicResults string) (string, error) {
	return invoke(ctx, r.answer, map[string]any{
		"intent":          string(intent),
		"insights":        insights,
		"dynamic_results": dynamicResults,
		"input":           question,
	})
}

// Converse answers from the insights, with the earlier turns as history
func (r *Responder) Converse(ctx context.Context, history []models.ChatMessage, question, insights string) (string, error) {
	return invoke(ctx, r.conversation, map[string]any{
		"period":       r.period.Long(),
		"table":        r.table,
		"insights":     insights,
		"chat_history": toSchema(history),
		"input":        question,
	})
}

func toSchema(history []models.ChatMessage) []*schema.Message {
	out := make([]*schema.Message, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case models.RoleUser:
			out = append(out, schema.UserMessage(m.Content))
		case models.RoleAssistant:
			out = append(out, schema.AssistantMessage(m.Content, nil))
		}
	}
	return out
}
