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

package service

import (
	"context"
	"fmt"
	"maps"

	"github.com/google/uuid"
	appmodel "github.com/wso2/game-events-processor/internal/applications/model"
	"github.com/wso2/game-events-processor/internal/events/model"
	"github.com/wso2/game-events-processor/internal/system/constants"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/system/utils"
)

// RateLookup returns the number of currency units per US dollar.
type RateLookup interface {
	Rate(ctx context.Context, currency string) (float64, error)
}

// TransformInput is everything the transformer needs for one record.
type TransformInput struct {
	Event      map[string]interface{}
	Country    interface{}
	HasCountry bool
	// Application is nil for events of unregistered applications.
	Application *appmodel.Application
	Metadata    model.Metadata
}

// TransformerInterface maps a raw event onto the canonical record.
type TransformerInterface interface {
	Transform(ctx context.Context, in TransformInput) (*model.CanonicalEvent, error)
}

// Transformer applies the canonical field table and the per-path normalization rules.
type Transformer struct {
	rates RateLookup
	newID func() string
}

// NewTransformer builds a transformer. A nil newID generates random UUIDs.
func NewTransformer(rates RateLookup, newID func() string) *Transformer {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Transformer{rates: rates, newID: newID}
}

// Transform builds the canonical record. Absent optional fields stay absent.
func (t *Transformer) Transform(ctx context.Context, in TransformInput) (*model.CanonicalEvent, error) {

	policy := unregisteredPolicy
	if in.Application != nil {
		policy = registeredPolicy
	}

	out := &model.CanonicalEvent{Metadata: in.Metadata}
	for _, rule := range canonicalFields {
		value, present := in.Event[rule.name]
		if !present {
			continue
		}
		rule.apply(out, value)
	}

	t.normalizeUser(out, in, policy)
	if out.Attribution == nil {
		out.Attribution = map[string]interface{}{}
	}
	t.normalizeDevice(out, policy)
	if err := t.convertRevenue(ctx, out); err != nil {
		return nil, err
	}
	if policy.attachApplicationName {
		name := in.Application.ApplicationName
		out.ApplicationName = &name
	}
	return out, nil
}

func (t *Transformer) normalizeUser(out *model.CanonicalEvent, in TransformInput, policy pathPolicy) {

	user, ok := out.User.(map[string]interface{})
	if !ok || !in.HasCountry {
		return
	}
	if policy.keepServerCountry && out.EventType != nil && *out.EventType == constants.ServerEventType {
		return
	}
	if country, ok := utils.CoerceToString(in.Country); ok {
		user[constants.FieldCountry] = country
	}
}

func (t *Transformer) normalizeDevice(out *model.CanonicalEvent, policy pathPolicy) {

	device, ok := out.Device.(map[string]interface{})
	if !ok {
		return
	}
	if _, ok := device["analytics_installation_id"]; !ok {
		device["analytics_installation_id"] = t.newID()
	}
	if policy.restoreAdvertisingID && device["advertising_id"] == constants.ReservedAdvertisingID {
		attribution, _ := out.Attribution.(map[string]interface{})
		if attributed, ok := attribution["advertising_id"]; ok {
			device["advertising_id"] = attributed
			device["is_limiting_ad_tracking"] = false
		}
	}
	if flag, ok := device["is_limiting_ad_tracking"]; ok {
		device["is_limiting_ad_tracking"] = utils.CoerceLegacyBool(flag)
	}
}

func (t *Transformer) convertRevenue(ctx context.Context, out *model.CanonicalEvent) error {

	data, ok := out.EventData.(map[string]interface{})
	if !ok {
		return nil
	}
	rawCurrency, hasCurrency := data["currency"]
	rawRevenues, hasRevenues := data["revenues"]
	if !hasCurrency || !hasRevenues {
		return nil
	}

	currency, ok := rawCurrency.(string)
	if !ok {
		return errors2.NewProcessingError(errors2.KindTransformFailure, errors2.INVALID_REVENUE,
			fmt.Sprintf("currency must be a string, got %T", rawCurrency), nil)
	}
	revenues, ok := utils.CoerceToNumber(rawRevenues)
	if !ok {
		return errors2.NewProcessingError(errors2.KindTransformFailure, errors2.INVALID_REVENUE,
			fmt.Sprintf("revenues %v is not numeric", rawRevenues), nil)
	}

	rate, err := t.rates.Rate(ctx, currency)
	if err != nil {
		return err
	}
	if rate <= 0 {
		return errors2.BackingStoreFailure(errors2.INVALID_EXCHANGE_RATE,
			fmt.Sprintf("Exchange rate for %s is %v", currency, rate), nil)
	}
	data["revenues_usd"] = revenues / rate
	return nil
}

// cloneValue copies the top level of objects so normalization never writes into the raw event.
func cloneValue(v interface{}) interface{} {
	if obj, ok := v.(map[string]interface{}); ok {
		return maps.Clone(obj)
	}
	return v
}
