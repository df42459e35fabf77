package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"jobhunt-readme/internal/domain"
)

type stubChat struct {
	content string
	err     error
	got     openai.ChatCompletionRequest
}

func (s *stubChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.got = req
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
		{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: s.content}},
	}}, nil
}

func TestClassifyContent(t *testing.T) {
	chat := &stubChat{content: "```json\n{\"category\":\"Data Science\",\"isAggregatorSource\":false,\"confidence\":0.83}\n```"}
	c := &Classifier{Client: chat, Model: "test-model"}
	page := domain.Page{Title: "ML New Grad", URL: "https://github.com/x/y", SampleHeaders: []string{"Company", "Role"}}

	meta, err := c.ClassifyContent(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Category != "Data Science" || meta.Confidence != 0.83 || meta.IsAggregatorSource {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if chat.got.Model != "test-model" || len(chat.got.Messages) != 2 {
		t.Fatalf("unexpected request %+v", chat.got)
	}
	if !strings.Contains(chat.got.Messages[1].Content, "Company | Role") {
		t.Fatalf("headers missing from prompt: %q", chat.got.Messages[1].Content)
	}
}

func TestClassifyContentErrors(t *testing.T) {
	if _, err := (&Classifier{}).ClassifyContent(context.Background(), domain.Page{}); !errors.Is(err, ErrNoClient) {
		t.Fatalf("want ErrNoClient, got %v", err)
	}

	boom := errors.New("boom")
	c := &Classifier{Client: &stubChat{err: boom}, Model: "m"}
	if _, err := c.ClassifyContent(context.Background(), domain.Page{}); !errors.Is(err, boom) {
		t.Fatalf("want wrapped boom, got %v", err)
	}

	c = &Classifier{Client: &stubChat{content: `{"category":""}`}, Model: "m"}
	if _, err := c.ClassifyContent(context.Background(), domain.Page{}); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("want ErrEmptyResponse, got %v", err)
	}

	c = &Classifier{Client: &stubChat{content: "not json"}, Model: "m"}
	if _, err := c.ClassifyContent(context.Background(), domain.Page{}); err == nil {
		t.Fatal("want decode error")
	}
}
