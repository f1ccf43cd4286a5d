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

package pipeline

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	"github.com/wso2/game-events-processor/internal/events/model"
	"github.com/wso2/game-events-processor/internal/system/constants"
)

// Record is one input record handed over by the stream framework.
type Record struct {
	RecordID string
	Data     []byte
}

// Result is the terminal state of one record.
type Result struct {
	RecordID string
	// Outcome is one of constants.ResultOk, ResultDropped or ResultProcessingFailed.
	Outcome string
	// Event is set only when the outcome is Ok.
	Event *model.CanonicalEvent
	// Payload is the newline-terminated output: the canonical JSON when Ok, the raw input otherwise.
	Payload []byte
	// Err explains a Dropped or ProcessingFailed outcome.
	Err error
	// StateSinkErr is reported next to an Ok outcome and never changes it.
	StateSinkErr error
}

// OutputRecord is the per-record envelope returned to the stream framework.
type OutputRecord struct {
	RecordID string `json:"recordId"`
	Result   string `json:"result"`
	Data     string `json:"data"`
}

// Output encodes the result for the stream framework.
func (r Result) Output() OutputRecord {
	return OutputRecord{
		RecordID: r.RecordID,
		Result:   r.Outcome,
		Data:     base64.StdEncoding.EncodeToString(r.Payload),
	}
}

func rawPayload(data []byte) []byte {
	payload := make([]byte, 0, len(data)+1)
	payload = append(payload, data...)
	return append(payload, '\n')
}

// encodeCanonical writes the record as one JSON line. Encoder.Encode appends the newline.
func encodeCanonical(event *model.CanonicalEvent) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(event); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func failed(rec Record, err error) Result {
	return Result{
		RecordID: rec.RecordID,
		Outcome:  constants.ResultProcessingFailed,
		Payload:  rawPayload(rec.Data),
		Err:      err,
	}
}

func dropped(rec Record, err error) Result {
	return Result{
		RecordID: rec.RecordID,
		Outcome:  constants.ResultDropped,
		Payload:  rawPayload(rec.Data),
		Err:      err,
	}
}
