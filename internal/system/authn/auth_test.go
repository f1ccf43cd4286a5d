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

package authn

import (
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/game-events-processor/internal/system/config"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

var authCfg = config.AuthConfig{JWTSecret: "s3cret", Issuer: "stream-framework"}

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestValidateTokenAndReturnClaims(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	tests := []struct {
		name  string
		token func(t *testing.T) string
		valid bool
	}{
		{
			name: "valid",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{"iss": "stream-framework", "exp": future})
			},
			valid: true,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"iss": "stream-framework", "exp": future})
			},
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{"iss": "someone", "exp": future})
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("s3cret"),
					jwt.MapClaims{"iss": "stream-framework", "exp": time.Now().Add(-time.Hour).Unix()})
			},
		},
		{
			name: "no expiry",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{"iss": "stream-framework"})
			},
		},
		{
			name: "other algorithm",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS512, []byte("s3cret"), jwt.MapClaims{"iss": "stream-framework", "exp": future})
			},
		},
		{
			name:  "opaque",
			token: func(*testing.T) string { return "opaque-token" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateTokenAndReturnClaims(tt.token(t), authCfg)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, "stream-framework", claims["iss"])
				return
			}
			var clientErr *errors2.ClientError
			require.ErrorAs(t, err, &clientErr)
			assert.Equal(t, 401, clientErr.StatusCode)
		})
	}
}
