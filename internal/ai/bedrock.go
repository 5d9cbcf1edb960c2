package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"
)

// bedrockConverseAPI abstracts the Bedrock runtime methods for testability.
type bedrockConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockProvider implements CompletionProvider via the AWS Bedrock Converse API.
type BedrockProvider struct {
	model  string
	client bedrockConverseAPI
}

// NewBedrockProvider creates a Bedrock provider using the default AWS
// credential chain.
func NewBedrockProvider(ctx context.Context, region, model string) (*BedrockProvider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &BedrockProvider{
		model:  model,
		client: bedrockruntime.NewFromConfig(awsCfg),
	}, nil
}

// newBedrockProviderWithClient injects a client for testing.
func newBedrockProviderWithClient(model string, client bedrockConverseAPI) *BedrockProvider {
	return &BedrockProvider{model: model, client: client}
}

// Complete implements CompletionProvider.
func (p *BedrockProvider) Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(p.model),
		System: []brtypes.SystemContentBlock{
			&brtypes.SystemContentBlockMemberText{Value: systemPrompt},
		},
		InferenceConfig: &brtypes.InferenceConfiguration{
			MaxTokens:   aws.Int32(1024),
			Temperature: aws.Float32(0.7),
		},
	}

	for _, m := range messages {
		role := brtypes.ConversationRoleUser
		if m.Role == RoleAssistant {
			role = brtypes.ConversationRoleAssistant
		}
		input.Messages = append(input.Messages, brtypes.Message{
			Role: role,
			Content: []brtypes.ContentBlock{
				&brtypes.ContentBlockMemberText{Value: m.Text},
			},
		})
	}

	output, err := p.client.Converse(ctx, input)
	if err != nil {
		return "", mapBedrockError(err)
	}

	outMsg, ok := output.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("bedrock: unexpected output type %T", output.Output)
	}
	var text string
	for _, block := range outMsg.Value.Content {
		if b, ok := block.(*brtypes.ContentBlockMemberText); ok {
			text += b.Value
		}
	}
	if text == "" {
		return "", fmt.Errorf("bedrock: empty completion")
	}
	return text, nil
}

// mapBedrockError folds AWS error codes into the provider failure classes the
// core distinguishes.
func mapBedrockError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ThrottlingException", "TooManyRequestsException":
			return fmt.Errorf("%w: %s", ErrRateLimited, err.Error())
		case "ModelNotReadyException", "ServiceUnavailableException", "InternalServerException":
			return fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
		}
	}
	return fmt.Errorf("bedrock: %w", err)
}
