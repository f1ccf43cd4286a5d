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

package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wso2/game-events-processor/internal/pipeline"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/system/log"
	"github.com/wso2/game-events-processor/internal/system/utils"
)

// maxRequestBytes bounds a transform request body.
const maxRequestBytes = 6 << 20

var transformRequestShape = utils.RequestShape{
	Resource: "transform",
	Fields:   []string{"invocationId", "records", "records[].recordId", "records[].data"},
}

// BatchProcessor runs a batch of records through the pipeline.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, records []pipeline.Record, ingestionID string) []pipeline.Result
}

// TransformRequest is one batch handed over by the stream framework.
type TransformRequest struct {
	InvocationID string          `json:"invocationId"`
	Records      []RequestRecord `json:"records"`
}

// RequestRecord carries one base64 encoded raw event.
type RequestRecord struct {
	RecordID string `json:"recordId"`
	Data     string `json:"data"`
}

// TransformResponse lists the outcomes in request order.
type TransformResponse struct {
	Records []pipeline.OutputRecord `json:"records"`
}

type TransformHandler struct {
	processor BatchProcessor
}

func NewTransformHandler(processor BatchProcessor) *TransformHandler {
	return &TransformHandler{processor: processor}
}

// TransformRecords handles POST /records/transform.
func (h *TransformHandler) TransformRecords(w http.ResponseWriter, r *http.Request) {

	var req TransformRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST.Code,
			Message:     errors2.INVALID_REQUEST.Message,
			Description: utils.HandleDecodeError(err, transformRequestShape),
		}, http.StatusBadRequest))
		return
	}

	records := make([]pipeline.Record, 0, len(req.Records))
	for _, rec := range req.Records {
		data, err := base64.StdEncoding.DecodeString(rec.Data)
		if err != nil {
			utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.INVALID_RECORD_DATA.Code,
				Message:     errors2.INVALID_RECORD_DATA.Message,
				Description: fmt.Sprintf("Record %s does not carry base64 data.", rec.RecordID),
			}, http.StatusBadRequest))
			return
		}
		records = append(records, pipeline.Record{RecordID: rec.RecordID, Data: data})
	}

	results := h.processor.ProcessBatch(r.Context(), records, req.InvocationID)
	resp := TransformResponse{Records: make([]pipeline.OutputRecord, 0, len(results))}
	for _, res := range results {
		resp.Records = append(resp.Records, res.Output())
	}
	log.GetLogger().Debug("Transform batch completed",
		log.String("invocation_id", req.InvocationID), log.Int("records", len(results)))
	utils.WriteJSON(w, http.StatusOK, resp)
}
