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

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/game-events-processor/internal/pipeline"
	"github.com/wso2/game-events-processor/internal/system/constants"
)

type stubProcessor struct{}

func (stubProcessor) Process(_ context.Context, rec pipeline.Record, _ string) pipeline.Result {
	outcome := constants.ResultOk
	if strings.Contains(string(rec.Data), "dup") {
		outcome = constants.ResultDropped
	}
	return pipeline.Result{RecordID: rec.RecordID, Outcome: outcome, Payload: append(rec.Data, '\n')}
}

func TestReadRecords_SkipsBlankLines(t *testing.T) {
	records, err := readRecords(strings.NewReader("{\"a\":1}\n\n{\"b\":2}\n"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].RecordID)
	assert.Equal(t, "3", records[1].RecordID)
	assert.Equal(t, `{"b":2}`, string(records[1].Data))
}

func TestReplay(t *testing.T) {
	records, err := readRecords(strings.NewReader("{\"n\":1}\n{\"dup\":1}\n{\"n\":2}\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	report, err := replay(context.Background(), stubProcessor{}, records, 2, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Outcomes[constants.ResultOk])
	assert.Equal(t, 1, report.Outcomes[constants.ResultDropped])
	assert.Equal(t, int64(3), report.Latencies.TotalCount())
	assert.Equal(t, "{\"n\":1}\n{\"dup\":1}\n{\"n\":2}\n", out.String())

	var printed bytes.Buffer
	printReport(&printed, report)
	assert.Contains(t, printed.String(), "records: 3")
	assert.Contains(t, printed.String(), "Dropped:")
	assert.Contains(t, printed.String(), "latency p50=")
}

func TestRecordLatency_ClampsSlowRecords(t *testing.T) {
	h := hdrhistogram.New(1, int64(time.Minute/time.Microsecond), 3)

	require.NoError(t, recordLatency(h, int64(2*time.Minute/time.Microsecond)))
	require.NoError(t, recordLatency(h, 0))

	assert.Equal(t, int64(2), h.TotalCount())
	assert.True(t, h.ValuesAreEquivalent(h.Max(), h.HighestTrackableValue()))
	assert.Equal(t, int64(1), h.Min())
}
