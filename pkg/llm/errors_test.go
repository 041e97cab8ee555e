package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"
)

type fakeNetError struct{}

func (fakeNetError) Error() string   { return "dial tcp: connection refused" }
func (fakeNetError) Timeout() bool   { return false }
func (fakeNetError) Temporary() bool { return true }

var _ net.Error = fakeNetError{}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"nil", nil, ""},
		{"missing key", ErrMissingAPIKey, ClassAuth},
		{"wrapped missing key", fmt.Errorf("chat: %w", ErrMissingAPIKey), ClassAuth},
		{"401", &StatusError{Provider: "gemini", Code: 401}, ClassAuth},
		{"403", &StatusError{Provider: "gemini", Code: 403}, ClassAuth},
		{"429", &StatusError{Provider: "huggingface", Code: 429}, ClassRateLimit},
		{"503", &StatusError{Provider: "ollama", Code: 503}, ClassNetwork},
		{"400", &StatusError{Provider: "ollama", Code: 400}, ClassUnknown},
		{"wrapped status", fmt.Errorf("request: %w", &StatusError{Code: 401}), ClassAuth},
		{"net error", fakeNetError{}, ClassNetwork},
		{"deadline", context.DeadlineExceeded, ClassNetwork},
		{"plain error", errors.New("boom"), ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(ClassAuth); got != "Invalid API key" {
		t.Errorf("auth message = %q", got)
	}
	for _, class := range []ErrorClass{ClassRateLimit, ClassNetwork, ClassUnknown} {
		if UserMessage(class) == "" {
			t.Errorf("empty message for class %s", class)
		}
	}
}

func TestClassifyTimeoutWrapped(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	err := fmt.Errorf("generate: %w", ctx.Err())
	if got := Classify(err); got != ClassNetwork {
		t.Errorf("Classify(timeout) = %s, want %s", got, ClassNetwork)
	}
}
