package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

type runnable = compose.Runnable[map[string]any, *schema.Message]

// newChain compiles template | model
func newChain(ctx context.Context, chatModel model.BaseChatModel, templates ...schema.MessagesTemplate) (runnable, error) {
	tpl := prompt.FromMessages(schema.FString, templates...)
	chain, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(tpl).
		AppendChatModel(chatModel).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chain: %w", err)
	}
	return chain, nil
}

func invoke(ctx context.Context, chain runnable, vars map[string]any) (string, error) {
	msg, err := chain.Invoke(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("chat model call failed: %w", err)
	}
	return msg.Content, nil
}
