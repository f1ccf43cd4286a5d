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
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ProcessBatch processes records concurrently and returns their results in input order.
// An empty ingestionID is replaced by a generated one shared by the whole batch.
func (p *Pipeline) ProcessBatch(ctx context.Context, records []Record, ingestionID string) []Result {

	if ingestionID == "" {
		ingestionID = uuid.NewString()
	}

	results := make([]Result, len(records))
	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, rec := range records {
		g.Go(func() error {
			results[i] = p.Process(ctx, rec, ingestionID)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
