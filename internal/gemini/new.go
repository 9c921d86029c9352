package gemini

import (
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meetflow/internal/logger"
)

const defaultModel = "gemini-2.5-flash"

type implGenerator struct {
	apiKeys    []string
	currentKey int
	model      string
	timeout    time.Duration
	logger     logger.Logger

	mu      sync.Mutex
	clients map[int]*genai.Client
}

// New creates a Generator that rotates through the supplied Gemini API keys.
// Clients are created per key on first use.
func New(apiKeys []string, model string, timeout time.Duration, log logger.Logger) Generator {
	if model == "" {
		model = defaultModel
	}
	return &implGenerator{
		apiKeys: apiKeys,
		model:   model,
		timeout: timeout,
		logger:  log,
		clients: make(map[int]*genai.Client),
	}
}
