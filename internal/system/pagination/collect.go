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

package pagination

import (
	"context"
	"fmt"
)

// Page is one slice of a multi-page listing. An empty NextToken means there are no further pages.
type Page[T any] struct {
	Items     []T
	NextToken string
}

// FetchFunc loads the page that starts at token.
type FetchFunc[T any] func(ctx context.Context, token string) (Page[T], error)

// Collect follows continuation tokens until the store reports no further pages and returns every item.
// A page that hands back the token it was requested with is rejected instead of looping forever.
func Collect[T any](ctx context.Context, fetch FetchFunc[T]) ([]T, error) {

	var (
		items []T
		token string
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := fetch(ctx, token)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if page.NextToken == "" {
			return items, nil
		}
		if page.NextToken == token {
			return nil, fmt.Errorf("continuation token did not advance: %q", token)
		}
		token = page.NextToken
	}
}
