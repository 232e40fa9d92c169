package app

import (
	"fmt"

	"github.com/yungbote/writemate-backend/internal/platform/logger"
	"github.com/yungbote/writemate-backend/internal/platform/openai"
	"github.com/yungbote/writemate-backend/internal/prompts"
	"github.com/yungbote/writemate-backend/internal/realtime/bus"
)

type Clients struct {
	OpenAI  openai.Client
	Prompts *prompts.Set
	Events  bus.Bus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// OpenAI
	openaiCfg := openai.ConfigFromEnv(log)
	if cfg.LLMModel != "" {
		openaiCfg.Model = cfg.LLMModel
	}
	openaiClient, err := openai.NewClient(log, openaiCfg)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}

	// Prompts
	set, err := prompts.Load(log)
	if err != nil {
		return Clients{}, fmt.Errorf("load prompts: %w", err)
	}

	// Redis
	events := bus.NewNoopBus()
	if cfg.Redis.Addr != "" {
		b, err := bus.NewRedisBus(log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis event bus: %w", err)
		}
		events = b
	} else {
		log.Info("REDIS_ADDR not set, domain events are dropped")
	}

	return Clients{
		OpenAI:  openaiClient,
		Prompts: set,
		Events:  events,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Events != nil {
		_ = c.Events.Close()
	}
}
