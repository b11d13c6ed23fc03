package app

import (
	"fmt"

	"github.com/yungbote/projectgate-backend/internal/clients/gemini"
	"github.com/yungbote/projectgate-backend/internal/platform/gcp"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
	"github.com/yungbote/projectgate-backend/internal/platform/redis"
)

type Clients struct {
	Gemini gemini.TextGenerator
	Speech gcp.Speech
	Bucket gcp.BucketService
	Cache  redis.Cache
}

// wireClients builds the outbound dependencies. The text oracle is required;
// speech, blob storage, and the read cache degrade to nil when unconfigured.
func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	llm, err := gemini.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init gemini client: %w", err)
	}

	var c Clients
	c.Gemini = llm

	if speech, serr := gcp.NewSpeech(log); serr != nil {
		log.Warn("speech client unavailable, audio transcription disabled", "error", serr)
	} else {
		c.Speech = speech
	}

	if bucket, berr := gcp.NewBucketService(log); berr != nil {
		log.Warn("bucket service unavailable, artifact storage disabled", "error", berr)
	} else {
		c.Bucket = bucket
	}

	if cache, cerr := redis.NewCache(log); cerr != nil {
		log.Warn("redis unavailable, dashboard caching disabled", "error", cerr)
	} else {
		c.Cache = cache
	}

	return c, nil
}
