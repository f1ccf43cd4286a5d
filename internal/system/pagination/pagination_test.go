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
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyCursorRoundTrip(t *testing.T) {
	token := EncodeKeyCursor("app-42")
	key, err := DecodeKeyCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "app-42", key)

	assert.Empty(t, EncodeKeyCursor(""))
	key, err = DecodeKeyCursor("")
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestDecodeKeyCursor_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"missing prefix", "YXBwLTQy"},
		{"empty key", "a3w"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeKeyCursor(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, defaultLimit, NormalizeLimit(0))
	assert.Equal(t, 25, NormalizeLimit(25))
	assert.Equal(t, maxLimit, NormalizeLimit(maxLimit+1))
}

func TestCollect_FollowsTokens(t *testing.T) {
	var seen []string
	fetch := func(_ context.Context, token string) (Page[int], error) {
		seen = append(seen, token)
		n := 0
		if token != "" {
			n, _ = strconv.Atoi(token)
		}
		page := Page[int]{Items: []int{n, n + 1}}
		if n < 4 {
			page.NextToken = strconv.Itoa(n + 2)
		}
		return page, nil
	}

	items, err := Collect(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, items)
	assert.Equal(t, []string{"", "2", "4"}, seen)
}

func TestCollect_StuckToken(t *testing.T) {
	fetch := func(_ context.Context, token string) (Page[int], error) {
		return Page[int]{Items: []int{1}, NextToken: "same"}, nil
	}
	_, err := Collect(context.Background(), fetch)
	assert.ErrorContains(t, err, "did not advance")
}

func TestCollect_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	fetch := func(_ context.Context, token string) (Page[int], error) {
		return Page[int]{}, boom
	}
	_, err := Collect(context.Background(), fetch)
	assert.ErrorIs(t, err, boom)
}

func TestCollect_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Collect(ctx, func(context.Context, string) (Page[int], error) {
		t.Fatal("fetch must not run")
		return Page[int]{}, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
