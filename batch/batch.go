// Package batch runs an extractor over many inputs with bounded concurrency.
// Records come back in input order; skipped inputs and duplicate records are
// dropped.
package batch

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docmodel"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Runner.Concurrency is not positive.
const DefaultConcurrency = 10

// Runner extracts records from a batch of inputs.
type Runner struct {
	Extractor   docmodel.Extractor
	Unique      docmodel.RecordSet // optional; drops records already seen
	Concurrency int
}

// Output is a record produced from one input.
type Output struct {
	Position int
	Input    *docmodel.Input
	Record   docmodel.Record
}

// Failure is an input whose extraction returned an error.
type Failure struct {
	Position int
	Input    *docmodel.Input
	Err      error
}

// Result holds the outcome of a batch run.
type Result struct {
	Outputs    []Output
	Failures   []Failure
	Skipped    int
	Duplicates int
	Bytes      int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// runResult holds the outcome of processing a single input.
type runResult struct {
	position int
	result   docmodel.Result
	err      error
}

// Run extracts every input and collects the results in input order.
// Extraction errors are collected as failures; only context cancellation
// aborts the run.
func (r *Runner) Run(ctx context.Context, inputs []*docmodel.Input, progress ProgressFunc) (*Result, error) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan runResult, len(inputs))

	var completed atomic.Int64
	total := len(inputs)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, in := range inputs {
			g.Go(func() error {
				res, err := r.Extractor.Extract(gctx, in)
				resultCh <- runResult{position: i, result: res, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]runResult, len(inputs))
	for res := range resultCh {
		completed.Add(1)
		results[res.position] = res

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			Source:    Source(inputs[res.position]),
		}
		switch {
		case res.err != nil:
			event.Type = ProgressFailed
			event.Error = res.err
		case res.result.Skipped:
			event.Type = ProgressSkipped
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &Result{}
	for i, res := range results {
		in := inputs[i]
		if in != nil {
			out.Bytes += len(in.Text)
		}
		if res.err != nil {
			out.Failures = append(out.Failures, Failure{Position: i, Input: in, Err: res.err})
			continue
		}
		if res.result.Skipped {
			out.Skipped++
			continue
		}
		if r.Unique != nil {
			fp, err := Fingerprint(res.result.Record)
			if err != nil {
				out.Failures = append(out.Failures, Failure{Position: i, Input: in, Err: err})
				continue
			}
			if r.Unique.Seen(fp) {
				out.Duplicates++
				continue
			}
		}
		out.Outputs = append(out.Outputs, Output{Position: i, Input: in, Record: res.result.Record})
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return out, nil
}

// Fingerprint hashes the JSON encoding of rec using xxhash. Records with the
// same keys and values in the same order share a fingerprint.
func Fingerprint(rec docmodel.Record) (uint64, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return 0, docmodel.Errorf(docmodel.EINVALID, "record is not JSON encodable: %v", err)
	}
	return xxhash.Sum64(data), nil
}

// Source names an input for messages: its source path, else its URL.
func Source(in *docmodel.Input) string {
	if in == nil || in.Metadata == nil {
		return ""
	}
	if in.Metadata.Source != "" {
		return in.Metadata.Source
	}
	if in.Metadata.URL != nil {
		return in.Metadata.URL.String()
	}
	return ""
}
