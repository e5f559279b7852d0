package ideas

import (
	"context"
	"fmt"
	"sync"
)

var offlineTemplates = []string{
	"Run a one-week experiment around %s",
	"Write a beginner's field guide to %s",
	"Turn %s into a weekend challenge with friends",
	"Interview someone who lives and breathes %s",
	"Sketch a tiny app that makes %s easier",
	"Host a show-and-tell night about %s",
	"Find the most surprising fact about %s and share it",
}

// Offline generates numbered ideas locally, without any network access.
// Numbering continues across batches for the same client.
type Offline struct {
	batch int

	mu    sync.Mutex
	count int
}

// NewOffline returns an Offline client producing batch ideas per fetch.
func NewOffline(batch int) *Offline {
	if batch <= 0 {
		batch = defaultBatchSize
	}
	return &Offline{batch: batch}
}

func (o *Offline) Name() string {
	return "Offline"
}

func (o *Offline) FetchIdeas(ctx context.Context, topic string) ([]string, error) {
	topic, err := normalizeTopic(topic)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, o.batch)
	for i := 0; i < o.batch; i++ {
		o.count++
		tmpl := offlineTemplates[(o.count-1)%len(offlineTemplates)]
		out = append(out, fmt.Sprintf("%d. "+tmpl, o.count, topic))
	}
	return out, nil
}
