package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Provider 文本生成提供者
// 把 eino ChatModel 收敛成一个 prompt → text 的窄接口，方便测试替身
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EinoProvider 基于 eino ChatModel 的 Provider 实现
type EinoProvider struct {
	chatModel model.ChatModel
}

// NewEinoProvider 创建基于 Eino 的文本生成提供者
func NewEinoProvider(chatModel model.ChatModel) *EinoProvider {
	return &EinoProvider{chatModel: chatModel}
}

// Generate 根据提示词生成文本
func (p *EinoProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.chatModel == nil {
		return "", fmt.Errorf("chatModel is required")
	}

	messages := []*schema.Message{
		schema.UserMessage(prompt),
	}

	response, err := p.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	content := response.Content
	if content == "" {
		return "", fmt.Errorf("empty response from chat model")
	}

	return content, nil
}
