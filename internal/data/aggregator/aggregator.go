package aggregator

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/exthost-tools/cs-activity/internal/data/parser"
	"github.com/exthost-tools/cs-activity/internal/util"
)

// DefaultInterval is the histogram bucket width used when none is configured.
const DefaultInterval = 30 * time.Minute

// ErrNoTimestamp is returned for log files that contain no parseable
// timestamped line at all.
var ErrNoTimestamp = errors.New("no timestamped line found in file")

// Bucket is one histogram entry: the bucket start time and the number of log
// lines whose timestamp rounds down into it.
type Bucket struct {
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

// Histogram is an ordered sequence of buckets. Order is explicit: the
// pre-seeded day buckets come first in chronological order, any buckets
// outside the anchored day follow in encounter order.
type Histogram struct {
	buckets []Bucket
	index   map[int64]int
}

func newHistogram(capacity int) *Histogram {
	return &Histogram{
		buckets: make([]Bucket, 0, capacity),
		index:   make(map[int64]int, capacity),
	}
}

// seed appends a zero-count bucket. Existing buckets are left untouched.
func (h *Histogram) seed(start time.Time) {
	key := start.UnixNano()
	if _, exists := h.index[key]; exists {
		return
	}
	h.index[key] = len(h.buckets)
	h.buckets = append(h.buckets, Bucket{Start: start})
}

// increment bumps the bucket starting at the given time, creating it with
// count 1 when absent.
func (h *Histogram) increment(start time.Time) {
	key := start.UnixNano()
	if idx, exists := h.index[key]; exists {
		h.buckets[idx].Count++
		return
	}
	h.index[key] = len(h.buckets)
	h.buckets = append(h.buckets, Bucket{Start: start, Count: 1})
}

// Buckets returns the ordered bucket sequence.
func (h *Histogram) Buckets() []Bucket {
	return h.buckets
}

// Len returns the number of buckets.
func (h *Histogram) Len() int {
	return len(h.buckets)
}

// Total returns the sum of all bucket counts, i.e. the number of timestamped
// lines that were aggregated.
func (h *Histogram) Total() int {
	total := 0
	for _, b := range h.buckets {
		total += b.Count
	}
	return total
}

// Aggregator buckets log-line timestamps into fixed-width intervals.
type Aggregator struct {
	interval time.Duration
	location *time.Location
}

// NewAggregator creates an Aggregator for the given bucket width. The width
// must be positive and no longer than one day so that the day pre-seeding
// step stays sound.
func NewAggregator(interval time.Duration, loc *time.Location) (*Aggregator, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %v", interval)
	}
	if interval > 24*time.Hour {
		return nil, fmt.Errorf("interval must not exceed 24h, got %v", interval)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Aggregator{
		interval: interval,
		location: loc,
	}, nil
}

// Interval returns the configured bucket width.
func (a *Aggregator) Interval() time.Duration {
	return a.interval
}

// AggregateFile builds the activity histogram for one extension-host log file.
//
// The file is scanned twice. The first pass finds the first timestamped line
// and pre-seeds one zero bucket per interval across that line's calendar day,
// so rendered charts show true zero-activity gaps. The second pass counts
// every timestamped line into its bucket. A line that starts with "[" but
// does not parse aborts the file.
func (a *Aggregator) AggregateFile(path string) (*Histogram, error) {
	start := time.Now()

	anchor, err := a.findDayAnchor(path)
	if err != nil {
		return nil, err
	}

	bucketsPerDay := int(24 * time.Hour / a.interval)
	hist := newHistogram(bucketsPerDay)
	for i := 0; i < bucketsPerDay; i++ {
		hist.seed(anchor.Add(time.Duration(i) * a.interval))
	}

	if err := a.countLines(path, hist); err != nil {
		return nil, err
	}

	util.LogDebug(fmt.Sprintf("Aggregated %s: %d timestamped lines into %d buckets, duration %v",
		path, hist.Total(), hist.Len(), time.Since(start)))

	return hist, nil
}

// findDayAnchor scans from the start of the file until the first line with a
// timestamp and returns that timestamp truncated to midnight. Reaching EOF
// first yields ErrNoTimestamp.
func (a *Aggregator) findDayAnchor(path string) (time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer file.Close()

	scanner := newLineScanner(file)
	for scanner.Scan() {
		ts, ok, err := parser.ExtractTimestamp(scanner.Text(), a.location)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s: %w", path, err)
		}
		if ok {
			year, month, day := ts.Date()
			return time.Date(year, month, day, 0, 0, 0, 0, a.location), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return time.Time{}, err
	}

	return time.Time{}, fmt.Errorf("%s: %w", path, ErrNoTimestamp)
}

// countLines re-scans the file and increments the bucket of every
// timestamped line.
func (a *Aggregator) countLines(path string, hist *Histogram) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := newLineScanner(file)
	for scanner.Scan() {
		ts, ok, err := parser.ExtractTimestamp(scanner.Text(), a.location)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !ok {
			continue
		}
		hist.increment(a.roundDown(ts))
	}

	return scanner.Err()
}

// roundDown floors a timestamp to the nearest interval multiple, measured
// from the Unix epoch midnight in the timestamp's location. Rounding an
// on-boundary timestamp returns it unchanged.
func (a *Aggregator) roundDown(ts time.Time) time.Time {
	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, ts.Location())
	rem := ts.Sub(epoch) % a.interval
	return ts.Add(-rem)
}

func newLineScanner(file *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	return scanner
}
