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
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// EncodeKeyCursor encodes the last key of a page as an opaque continuation token.
func EncodeKeyCursor(lastKey string) string {
	if lastKey == "" {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte("k|" + lastKey))
}

// DecodeKeyCursor returns the key a page should start after. An empty token means the first page.
func DecodeKeyCursor(token string) (string, error) {
	if token == "" {
		return "", nil
	}

	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("invalid cursor encoding")
	}

	key, found := strings.CutPrefix(string(b), "k|")
	if !found || key == "" {
		return "", fmt.Errorf("invalid cursor format")
	}
	return key, nil
}

// NormalizeLimit clamps a requested page size into the supported range.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
