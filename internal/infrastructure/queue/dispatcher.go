package queue

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// ImportResult is the outcome of creating one FAQ of a batch.
type ImportResult struct {
	Index      int             `json:"index"`
	CategoryID uint64          `json:"category_id"`
	Response   json.RawMessage `json:"response,omitempty"`
	Err        error           `json:"-"`
	Error      string          `json:"error,omitempty"`
	Elapsed    time.Duration   `json:"elapsed"`
}

type importJob struct {
	index int
	faq   domain.FAQInput
}

// Dispatcher creates FAQs on a fixed set of workers using consistent hashing
// on the category ID, so FAQs of one category are created in input order.
type Dispatcher struct {
	workers int
	creator ports.FAQCreator
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, creator ports.FAQCreator, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{workers: numWorkers, creator: creator, log: log}
}

// Run creates every FAQ and blocks until all are done. Results are returned
// in input order. Once ctx is cancelled the remaining FAQs fail with ctx.Err().
func (d *Dispatcher) Run(ctx context.Context, faqs []domain.FAQInput) []ImportResult {
	results := make([]ImportResult, len(faqs))
	channels := make([]chan importJob, d.workers)

	var wg sync.WaitGroup
	for i := range channels {
		channels[i] = make(chan importJob, channelBuffer)
		wg.Add(1)
		go func(id int, ch <-chan importJob) {
			defer wg.Done()
			d.runWorker(ctx, id, ch, results)
		}(i, channels[i])
	}

	for i, faq := range faqs {
		channels[d.shardIndex(faq.CategoryID)] <- importJob{index: i, faq: faq}
	}
	for _, ch := range channels {
		close(ch)
	}
	wg.Wait()

	return results
}

// shardIndex maps a category ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(categoryID uint64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatUint(categoryID, 10)))
	return int(h.Sum32() % uint32(d.workers))
}

// runWorker writes only the result slots of the jobs it receives.
func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan importJob, results []ImportResult) {
	for job := range ch {
		res := ImportResult{Index: job.index, CategoryID: job.faq.CategoryID}

		if err := ctx.Err(); err != nil {
			res.Err = err
		} else {
			start := time.Now()
			res.Response, res.Err = d.creator.CreateFAQ(ctx, job.faq)
			res.Elapsed = time.Since(start)
		}

		if res.Err != nil {
			res.Error = res.Err.Error()
			d.log.Error().Err(res.Err).
				Int("index", job.index).
				Uint64("category_id", job.faq.CategoryID).
				Int("worker_id", id).
				Msg("faq import failed")
		}
		results[job.index] = res
	}
}

// Failed counts the results that carry an error.
func Failed(results []ImportResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
