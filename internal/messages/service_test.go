package messages

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fakeLLM struct {
	text  string
	err   error
	calls int
}

func (f *fakeLLM) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeLLM) Close() error { return nil }

func TestGenerateUsesLLMText(t *testing.T) {
	llm := &fakeLLM{text: "Olá Maria, tudo bem?"}
	gen := NewGenerator(llm, nil, nil, nil)

	text, fallback, err := gen.Generate(context.Background(), Request{Type: TypeRetention, ClientName: "Maria"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if fallback {
		t.Fatal("expected llm text, got fallback")
	}
	if text != "Olá Maria, tudo bem?" {
		t.Fatalf("text = %q", text)
	}
}

func TestGenerateFallsBackOnLLMError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("quota exceeded")}
	gen := NewGenerator(llm, nil, nil, nil)

	text, fallback, err := gen.Generate(context.Background(), Request{Type: TypeRetention, ClientName: "Maria"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !fallback {
		t.Fatal("expected fallback")
	}
	want := "Olá Maria, como você está? Notei que faz um tempo que não nos vemos. Gostaria de saber se está tudo bem e se gostaria de agendar um novo horário. Abraços, Soraia."
	if text != want {
		t.Fatalf("text = %q, want %q", text, want)
	}
}

func TestGenerateConfirmationFallback(t *testing.T) {
	gen := NewGenerator(nil, nil, nil, nil)

	req := Request{
		Type:       TypeConfirmation,
		ClientName: "Maria",
		Date:       "2026-03-12",
		Time:       "10:00",
		MeetLink:   "https://meet.google.com/soraia-abc",
	}
	text, fallback, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !fallback {
		t.Fatal("nil llm should always fall back")
	}
	want := "Olá Maria, sua consulta com a Dra. Soraia está confirmada para 2026-03-12 às 10:00. Link: https://meet.google.com/soraia-abc. Até lá!"
	if text != want {
		t.Fatalf("text = %q, want %q", text, want)
	}
}

func TestGenerateRejectsUnknownType(t *testing.T) {
	gen := NewGenerator(nil, nil, nil, nil)

	if _, _, err := gen.Generate(context.Background(), Request{Type: "newsletter"}); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("err = %v, want ErrInvalidType", err)
	}
}

func TestRetentionPromptDefaultsLastSession(t *testing.T) {
	prompt := Request{Type: TypeRetention, ClientName: "Maria"}.Prompt()
	if !strings.Contains(prompt, "desde algum tempo") {
		t.Fatalf("prompt missing default last session: %q", prompt)
	}

	prompt = Request{Type: TypeRetention, ClientName: "Maria", LastSession: "2026-01-05"}.Prompt()
	if !strings.Contains(prompt, "desde 2026-01-05") {
		t.Fatalf("prompt missing last session date: %q", prompt)
	}
}

func TestGenerateCachesLLMText(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCache(client, time.Minute)

	llm := &fakeLLM{text: "Olá Maria!"}
	gen := NewGenerator(llm, cache, nil, nil)
	req := Request{Type: TypeRetention, ClientName: "Maria"}

	for i := 0; i < 3; i++ {
		text, _, err := gen.Generate(context.Background(), req)
		if err != nil {
			t.Fatalf("Generate #%d: %v", i, err)
		}
		if text != "Olá Maria!" {
			t.Fatalf("text = %q", text)
		}
	}
	if llm.calls != 1 {
		t.Fatalf("llm calls = %d, want 1", llm.calls)
	}
}

func TestCacheKeyVariesByClient(t *testing.T) {
	a := cacheKey(Request{Type: TypeRetention, ClientName: "Maria"})
	b := cacheKey(Request{Type: TypeRetention, ClientName: "Joana"})
	if a == b {
		t.Fatal("cache keys should differ per client")
	}
}
