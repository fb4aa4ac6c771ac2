// Package tokencount estimates prompt and completion sizes for LLM calls.
//
// Encodings come from tiktoken-go with the offline BPE loader, so counting never
// touches the network. Models without a native tiktoken encoding are counted
// with cl100k_base, which is close enough for usage logging.
package tokencount

import (
	"log/slog"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

const fallbackEncoding = "cl100k_base"

// Usage is the token accounting for one chat completion.
type Usage struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	Model            string `json:"model"`
	Estimated        bool   `json:"estimated"`
}

// Counter caches encodings per normalized model name.
type Counter struct {
	mu    sync.RWMutex
	cache map[string]*tiktoken.Tiktoken
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{cache: make(map[string]*tiktoken.Tiktoken)}
}

// Default is shared by callers that do not need their own cache.
var Default = NewCounter()

func (c *Counter) encoding(model string) (*tiktoken.Tiktoken, error) {
	key := normalizeModelName(model)

	c.mu.RLock()
	enc, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return enc, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if enc, ok := c.cache[key]; ok {
		return enc, nil
	}
	enc, err := tiktoken.EncodingForModel(key)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, err
		}
	}
	c.cache[key] = enc
	return enc, nil
}

// normalizeModelName strips router prefixes and suffixes, then maps every
// non-OpenAI family onto gpt-4 so it shares cl100k_base.
func normalizeModelName(model string) string {
	model = strings.ToLower(strings.TrimSpace(model))
	if i := strings.LastIndex(model, "/"); i >= 0 {
		model = model[i+1:]
	}
	if i := strings.Index(model, ":"); i >= 0 {
		model = model[:i]
	}
	if strings.HasPrefix(model, "gpt-3.5") {
		return "gpt-3.5-turbo"
	}
	return "gpt-4"
}

// Count returns the number of tokens in text.
func (c *Counter) Count(text, model string) (int, error) {
	enc, err := c.encoding(model)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// CountChat counts a system+user prompt including the per-message framing
// OpenAI-compatible APIs add.
func (c *Counter) CountChat(systemPrompt, userPrompt, model string) (int, error) {
	enc, err := c.encoding(model)
	if err != nil {
		return 0, err
	}
	const perMessage, replyPriming = 4, 3
	n := replyPriming
	for _, m := range [][2]string{{"system", systemPrompt}, {"user", userPrompt}} {
		n += perMessage + len(enc.Encode(m[0], nil, nil)) + len(enc.Encode(m[1], nil, nil))
	}
	return n, nil
}

// Estimate approximates tokens at four characters each.
func Estimate(text string) int {
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	return (n + 3) / 4
}

// Measure computes usage for a completed call, falling back to Estimate when
// an encoding is unavailable.
func (c *Counter) Measure(systemPrompt, userPrompt, completion, model string) Usage {
	u := Usage{Model: model}
	prompt, err := c.CountChat(systemPrompt, userPrompt, model)
	if err != nil {
		slog.Warn("token count failed, using estimate", slog.String("model", model), slog.Any("error", err))
		prompt = Estimate(systemPrompt) + Estimate(userPrompt)
		u.Estimated = true
	}
	completionTokens, err := c.Count(completion, model)
	if err != nil {
		completionTokens = Estimate(completion)
		u.Estimated = true
	}
	u.PromptTokens = prompt
	u.CompletionTokens = completionTokens
	u.TotalTokens = prompt + completionTokens
	return u
}
