package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/termsift/termsift"
	"github.com/termsift/termsift/bloom"
)

// Compile-time interface verification.
var _ termsift.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier with Bloom filter deduplication.
// Links come back shallowest first, in insertion order within a depth, so
// a depth-bounded crawl explores a site layer by layer.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *linkQueue
	seq   uint64
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	q := &linkQueue{}
	heap.Init(q)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: q,
	}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen.
// URL fragments are stripped before deduplication, so URLs differing only
// by fragment are considered duplicates.
func (f *Frontier) Push(link termsift.DiscoveredLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(link.URL)
	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)

	// Queue the URL without its fragment.
	link.URL = url
	f.seq++
	heap.Push(f.queue, queuedLink{link: link, seq: f.seq})
	return true
}

// Pop returns the shallowest queued link, FIFO within a depth.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (termsift.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return termsift.DiscoveredLink{}, false
	}
	item, _ := heap.Pop(f.queue).(queuedLink)
	return item.link, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// queuedLink pairs a link with its insertion sequence number, which
// breaks ties between links at the same depth.
type queuedLink struct {
	link termsift.DiscoveredLink
	seq  uint64
}

// linkQueue implements heap.Interface as a min-heap on (depth, seq).
type linkQueue []queuedLink

func (q linkQueue) Len() int { return len(q) }

func (q linkQueue) Less(i, j int) bool {
	if q[i].link.Depth != q[j].link.Depth {
		return q[i].link.Depth < q[j].link.Depth
	}
	return q[i].seq < q[j].seq
}

func (q linkQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *linkQueue) Push(x any) {
	item, _ := x.(queuedLink)
	*q = append(*q, item)
}

func (q *linkQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[0 : n-1]
	return x
}
