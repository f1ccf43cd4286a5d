/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Command replay runs an NDJSON file of raw events through the pipeline against the configured
// backing store and reports outcome counts and per-record latency.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/google/uuid"
	"github.com/wso2/game-events-processor/internal/pipeline"
	"github.com/wso2/game-events-processor/internal/system/config"
	"github.com/wso2/game-events-processor/internal/system/constants"
	"github.com/wso2/game-events-processor/internal/system/log"
	"github.com/wso2/game-events-processor/internal/system/managers"
	"golang.org/x/sync/errgroup"
)

const maxLineBytes = 4 << 20

// Processor processes one record.
type Processor interface {
	Process(ctx context.Context, rec pipeline.Record, ingestionID string) pipeline.Result
}

// Report summarises a replay.
type Report struct {
	Outcomes  map[string]int
	Latencies *hdrhistogram.Histogram
}

func main() {

	home := flag.String("home", ".", "Path to the processor home directory")
	file := flag.String("file", "", "NDJSON file of raw events")
	out := flag.String("out", "", "Optional file receiving one output line per event")
	concurrency := flag.Int("concurrency", constants.DefaultBatchConcurrency, "Records processed in parallel")
	flag.Parse()

	logger := log.GetLogger()
	if *file == "" {
		logger.Fatal("-file is required")
	}

	_ = config.LoadEnvFiles(*home)
	cfg, err := config.LoadConfig(*home, constants.ConfigFile)
	if err != nil {
		logger.Fatal("Failed to load configuration", log.Error(err))
	}
	if err := log.Init(cfg.Log.LogLevel, cfg.Log.Format); err != nil {
		logger.Fatal("Failed to initialize logger", log.Error(err))
	}
	logger = log.GetLogger()

	ctx := context.Background()
	stores, err := managers.OpenStores(ctx, *cfg)
	if err != nil {
		logger.Fatal("Failed to open backing store", log.Error(err))
	}
	defer func() { _ = stores.Close(ctx) }()
	p, err := managers.NewPipeline(*cfg, stores)
	if err != nil {
		logger.Fatal("Failed to build pipeline", log.Error(err))
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	p.Start(runCtx)

	in, err := os.Open(*file)
	if err != nil {
		logger.Fatal("Failed to open input", log.Error(err))
	}
	defer in.Close()
	records, err := readRecords(in)
	if err != nil {
		logger.Fatal("Failed to read input", log.Error(err))
	}

	var sink io.Writer
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Fatal("Failed to create output", log.Error(err))
		}
		defer f.Close()
		sink = f
	}

	report, err := replay(ctx, p, records, *concurrency, sink)
	if err != nil {
		logger.Fatal("Replay failed", log.Error(err))
	}
	printReport(os.Stdout, report)
}

// readRecords reads one record per non-empty line; the record id is the line number.
func readRecords(r io.Reader) ([]pipeline.Record, error) {

	var records []pipeline.Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		data := append([]byte(nil), scanner.Bytes()...)
		records = append(records, pipeline.Record{RecordID: strconv.Itoa(line), Data: data})
	}
	return records, scanner.Err()
}

// replay processes every record and, when out is set, writes the payloads in input order.
func replay(ctx context.Context, p Processor, records []pipeline.Record, concurrency int,
	out io.Writer) (*Report, error) {

	if concurrency < 1 {
		concurrency = 1
	}
	ingestionID := uuid.NewString()
	results := make([]pipeline.Result, len(records))
	report := &Report{
		Outcomes:  map[string]int{},
		Latencies: hdrhistogram.New(1, int64(time.Minute/time.Microsecond), 3),
	}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, rec := range records {
		g.Go(func() error {
			start := time.Now()
			res := p.Process(ctx, rec, ingestionID)
			elapsed := time.Since(start).Microseconds()

			mu.Lock()
			defer mu.Unlock()
			results[i] = res
			report.Outcomes[res.Outcome]++
			return recordLatency(report.Latencies, elapsed)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if out != nil {
		w := bufio.NewWriter(out)
		for _, res := range results {
			if _, err := w.Write(res.Payload); err != nil {
				return nil, err
			}
		}
		if err := w.Flush(); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// recordLatency clamps elapsed microseconds into the histogram's trackable range.
func recordLatency(h *hdrhistogram.Histogram, elapsed int64) error {
	if elapsed > h.HighestTrackableValue() {
		log.GetLogger().Warn("Record latency above histogram range, recording at the limit",
			log.Duration("elapsed", micros(elapsed)))
		elapsed = h.HighestTrackableValue()
	}
	return h.RecordValue(max(elapsed, 1))
}

func printReport(w io.Writer, report *Report) {

	outcomes := make([]string, 0, len(report.Outcomes))
	for outcome := range report.Outcomes {
		outcomes = append(outcomes, outcome)
	}
	sort.Strings(outcomes)

	_, _ = fmt.Fprintf(w, "records: %d\n", report.Latencies.TotalCount())
	for _, outcome := range outcomes {
		_, _ = fmt.Fprintf(w, "%-18s %d\n", outcome+":", report.Outcomes[outcome])
	}
	h := report.Latencies
	_, _ = fmt.Fprintf(w, "latency p50=%s p90=%s p99=%s max=%s\n",
		micros(h.ValueAtQuantile(50)), micros(h.ValueAtQuantile(90)),
		micros(h.ValueAtQuantile(99)), micros(h.Max()))
}

func micros(v int64) time.Duration {
	return time.Duration(v) * time.Microsecond
}
