package batch_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/docmodel"
	"github.com/fwojciec/docmodel/batch"
	"github.com/fwojciec/docmodel/bloom"
	"github.com/fwojciec/docmodel/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inputs(texts ...string) []*docmodel.Input {
	out := make([]*docmodel.Input, len(texts))
	for i, text := range texts {
		out[i] = &docmodel.Input{Text: text, Metadata: &docmodel.Metadata{Source: text + ".html"}}
	}
	return out
}

// echo extracts a record holding the input text.
func echo() *mock.Extractor {
	return &mock.Extractor{ExtractFn: func(_ context.Context, in *docmodel.Input) (docmodel.Result, error) {
		return docmodel.Result{Record: docmodel.Record{{Key: "text", Value: in.Text}}}, nil
	}}
}

func texts(res *batch.Result) []any {
	var out []any
	for _, o := range res.Outputs {
		v, _ := o.Record.Get("text")
		out = append(out, v)
	}
	return out
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("keeps input order", func(t *testing.T) {
		t.Parallel()

		ext := &mock.Extractor{ExtractFn: func(_ context.Context, in *docmodel.Input) (docmodel.Result, error) {
			// Earlier inputs finish later
			if in.Text == "a" {
				time.Sleep(20 * time.Millisecond)
			}
			return docmodel.Result{Record: docmodel.Record{{Key: "text", Value: in.Text}}}, nil
		}}
		r := &batch.Runner{Extractor: ext, Concurrency: 3}

		res, err := r.Run(context.Background(), inputs("a", "b", "c"), nil)

		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b", "c"}, texts(res))
		for i, o := range res.Outputs {
			assert.Equal(t, i, o.Position)
		}
		assert.Equal(t, 3, res.Bytes)
	})

	t.Run("drops skipped inputs", func(t *testing.T) {
		t.Parallel()

		ext := &mock.Extractor{ExtractFn: func(_ context.Context, in *docmodel.Input) (docmodel.Result, error) {
			if in.Text == "b" {
				return docmodel.Result{Skipped: true}, nil
			}
			return docmodel.Result{Record: docmodel.Record{{Key: "text", Value: in.Text}}}, nil
		}}
		r := &batch.Runner{Extractor: ext}

		res, err := r.Run(context.Background(), inputs("a", "b", "c"), nil)

		require.NoError(t, err)
		assert.Equal(t, []any{"a", "c"}, texts(res))
		assert.Equal(t, 1, res.Skipped)
	})

	t.Run("collects failures and continues", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		ext := &mock.Extractor{ExtractFn: func(_ context.Context, in *docmodel.Input) (docmodel.Result, error) {
			if in.Text == "a" {
				return docmodel.Result{}, boom
			}
			return docmodel.Result{Record: docmodel.Record{{Key: "text", Value: in.Text}}}, nil
		}}
		r := &batch.Runner{Extractor: ext}

		res, err := r.Run(context.Background(), inputs("a", "b"), nil)

		require.NoError(t, err)
		assert.Equal(t, []any{"b"}, texts(res))
		require.Len(t, res.Failures, 1)
		assert.Equal(t, 0, res.Failures[0].Position)
		assert.ErrorIs(t, res.Failures[0].Err, boom)
	})

	t.Run("drops duplicate records", func(t *testing.T) {
		t.Parallel()

		r := &batch.Runner{Extractor: echo(), Unique: bloom.NewFilter(100, 0.01)}

		res, err := r.Run(context.Background(), inputs("a", "b", "a", "c", "b"), nil)

		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b", "c"}, texts(res))
		assert.Equal(t, 2, res.Duplicates)
	})

	t.Run("consults the record set in input order", func(t *testing.T) {
		t.Parallel()

		var seen []uint64
		set := &mock.RecordSet{SeenFn: func(fp uint64) bool {
			seen = append(seen, fp)
			return len(seen) == 2
		}}
		r := &batch.Runner{Extractor: echo(), Unique: set, Concurrency: 3}

		res, err := r.Run(context.Background(), inputs("a", "b", "c"), nil)

		require.NoError(t, err)
		assert.Equal(t, []any{"a", "c"}, texts(res))
		assert.Equal(t, 1, res.Duplicates)
		var want []uint64
		for _, text := range []string{"a", "b", "c"} {
			fp, err := batch.Fingerprint(docmodel.Record{{Key: "text", Value: text}})
			require.NoError(t, err)
			want = append(want, fp)
		}
		assert.Equal(t, want, seen)
	})

	t.Run("keeps duplicates without a record set", func(t *testing.T) {
		t.Parallel()

		r := &batch.Runner{Extractor: echo()}

		res, err := r.Run(context.Background(), inputs("a", "a"), nil)

		require.NoError(t, err)
		assert.Equal(t, []any{"a", "a"}, texts(res))
		assert.Zero(t, res.Duplicates)
	})

	t.Run("limits concurrency", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int64
		ext := &mock.Extractor{ExtractFn: func(_ context.Context, in *docmodel.Input) (docmodel.Result, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return docmodel.Result{Record: docmodel.Record{}}, nil
		}}
		r := &batch.Runner{Extractor: ext, Concurrency: 2}

		_, err := r.Run(context.Background(), inputs("a", "b", "c", "d", "e", "f"), nil)

		require.NoError(t, err)
		assert.LessOrEqual(t, peak.Load(), int64(2))
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		ext := &mock.Extractor{ExtractFn: func(_ context.Context, in *docmodel.Input) (docmodel.Result, error) {
			switch in.Text {
			case "b":
				return docmodel.Result{Skipped: true}, nil
			case "c":
				return docmodel.Result{}, errors.New("boom")
			}
			return docmodel.Result{Record: docmodel.Record{}}, nil
		}}
		r := &batch.Runner{Extractor: ext}

		var mu sync.Mutex
		var events []batch.ProgressEvent
		_, err := r.Run(context.Background(), inputs("a", "b", "c"), func(e batch.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 5)
		assert.Equal(t, batch.ProgressStarted, events[0].Type)
		assert.Equal(t, 3, events[0].Total)
		assert.Equal(t, batch.ProgressFinished, events[4].Type)

		bySource := map[string]batch.ProgressType{}
		for _, e := range events[1:4] {
			bySource[e.Source] = e.Type
		}
		assert.Equal(t, map[string]batch.ProgressType{
			"a.html": batch.ProgressCompleted,
			"b.html": batch.ProgressSkipped,
			"c.html": batch.ProgressFailed,
		}, bySource)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ext := &mock.Extractor{ExtractFn: func(ctx context.Context, _ *docmodel.Input) (docmodel.Result, error) {
			return docmodel.Result{}, ctx.Err()
		}}
		r := &batch.Runner{Extractor: ext}

		_, err := r.Run(ctx, inputs("a"), nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a, err := batch.Fingerprint(docmodel.Record{{Key: "x", Value: 1}, {Key: "y", Value: "z"}})
	require.NoError(t, err)
	b, err := batch.Fingerprint(docmodel.Record{{Key: "x", Value: 1}, {Key: "y", Value: "z"}})
	require.NoError(t, err)
	c, err := batch.Fingerprint(docmodel.Record{{Key: "y", Value: "z"}, {Key: "x", Value: 1}})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	_, err = batch.Fingerprint(docmodel.Record{{Key: "ch", Value: make(chan int)}})
	assert.Equal(t, docmodel.EINVALID, docmodel.ErrorCode(err))
}

func TestSource(t *testing.T) {
	t.Parallel()

	meta, err := docmodel.NewMetadata("https://example.com/a", "")
	require.NoError(t, err)

	assert.Equal(t, "", batch.Source(nil))
	assert.Equal(t, "", batch.Source(&docmodel.Input{Text: "x"}))
	assert.Equal(t, "a.html", batch.Source(&docmodel.Input{Metadata: &docmodel.Metadata{Source: "a.html"}}))
	assert.Equal(t, "https://example.com/a", batch.Source(&docmodel.Input{Metadata: meta}))
}
