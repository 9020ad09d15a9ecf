package llm

import (
	"context"
	"strings"
	"unicode"

	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"
)

// Classifier asks the model which intent category a question belongs to
type Classifier struct {
	chain runnable
	log   *logrus.Logger
}

// NewClassifier initializes a new intent classifier
func NewClassifier(ctx context.Context, chatModel model.BaseChatModel, log *logrus.Logger) (*Classifier, error) {
	chain, err := newChain(ctx, chatModel,
		schema.SystemMessage(intentSystemPrompt),
		schema.UserMessage("{input}"),
	)
	if err != nil {
		return nil, err
	}
	return &Classifier{chain: chain, log: log}, nil
}

// Classify returns the intent of the question
func (c *Classifier) Classify(ctx context.Context, question string) (models.Intent, error) {
	reply, err := invoke(ctx, c.chain, map[string]any{"input": question})
	if err != nil {
		return "", err
	}
	intent := ParseIntent(reply)
	c.log.Debugf("Intent reply %q classified as %s", reply, intent)
	return intent, nil
}

// ParseIntent reads the category number from the first two characters of
// the reply
func ParseIntent(reply string) models.Intent {
	var digits strings.Builder
	for i, r := range []rune(strings.TrimSpace(reply)) {
		if i == 2 {
			break
		}
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	return models.IntentFromDigit(digits.String())
}
