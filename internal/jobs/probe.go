package jobs

import (
	"context"
	"log"
	"net/http"
	"time"

	"mindline/internal/metrics"
)

// Prober periodically checks that the contextual analysis provider is
// reachable and exposes the result as a gauge. The engine does not consult
// the probe; it degrades per-call regardless.
type Prober struct {
	endpoint string
	interval time.Duration
	client   *http.Client
}

// NewProber creates a reachability prober for the provider endpoint.
func NewProber(endpoint string, interval time.Duration) *Prober {
	return &Prober{
		endpoint: endpoint,
		interval: interval,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Start begins the background probe loop.
func (p *Prober) Start(ctx context.Context) {
	log.Printf("Contextual provider probe started (endpoint: %s, interval: %v)", p.endpoint, p.interval)

	// Run immediately on start
	p.probe(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Contextual provider probe stopped")
			return
		case <-ticker.C:
			p.probe(ctx)
		}
	}
}

func (p *Prober) probe(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.endpoint, nil)
	if err != nil {
		metrics.SetContextualUp(false)
		return
	}

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("Contextual provider probe: unreachable: %v", err)
		metrics.SetContextualUp(false)
		return
	}
	defer resp.Body.Close()

	// Any HTTP response means the endpoint is reachable; auth failures on a
	// bare HEAD are expected.
	metrics.SetContextualUp(true)
}
