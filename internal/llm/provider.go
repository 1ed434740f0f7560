package llm

import (
    "context"
    "errors"
    "fmt"
    "net/http"

    openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface needed by core logic to call a chat model.
// It intentionally mirrors the CreateChatCompletion method so that any
// OpenAI-compatible or local backend can be adapted, and so tests can
// substitute a scripted fake.
type Client interface {
    CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ModelLister is an optional capability for listing available models.
// Providers that do not support it can omit it; callers type-assert.
type ModelLister interface {
    ListModels(ctx context.Context) (openai.ModelsList, error)
}

// OpenAIProvider adapts *openai.Client to the Client/ModelLister interfaces.
type OpenAIProvider struct {
    Inner *openai.Client
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
    return p.Inner.CreateChatCompletion(ctx, request)
}

func (p *OpenAIProvider) ListModels(ctx context.Context) (openai.ModelsList, error) {
    return p.Inner.ListModels(ctx)
}

// Failure taxonomy of the generation capability. Transport errors are folded
// into exactly one of these three so retry policy can switch on errors.Is.
var (
    ErrRateLimited  = errors.New("rate limited")
    ErrTimeout      = errors.New("generation timed out")
    ErrServiceError = errors.New("generation service error")
)

// Classify maps a raw client error onto the failure taxonomy, preserving the
// original error in the wrap chain. Already-classified errors pass through.
func Classify(err error) error {
    if err == nil {
        return nil
    }
    if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrServiceError) {
        return err
    }
    if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
        return fmt.Errorf("%w: %v", ErrTimeout, err)
    }
    var apiErr *openai.APIError
    if errors.As(err, &apiErr) {
        switch apiErr.HTTPStatusCode {
        case http.StatusTooManyRequests:
            return fmt.Errorf("%w: %v", ErrRateLimited, err)
        case http.StatusRequestTimeout, http.StatusGatewayTimeout:
            return fmt.Errorf("%w: %v", ErrTimeout, err)
        default:
            return fmt.Errorf("%w: %v", ErrServiceError, err)
        }
    }
    return fmt.Errorf("%w: %v", ErrServiceError, err)
}
