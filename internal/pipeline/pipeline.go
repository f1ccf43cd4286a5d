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
	"fmt"
	"time"

	appmodel "github.com/wso2/game-events-processor/internal/applications/model"
	"github.com/wso2/game-events-processor/internal/events/model"
	eventservice "github.com/wso2/game-events-processor/internal/events/service"
	"github.com/wso2/game-events-processor/internal/events/validator"
	"github.com/wso2/game-events-processor/internal/system/cache"
	"github.com/wso2/game-events-processor/internal/system/constants"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/system/log"
	"github.com/wso2/game-events-processor/internal/system/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/wso2/game-events-processor/internal/pipeline"

// Registry resolves application ids. A nil application means the id is not registered.
type Registry interface {
	Lookup(ctx context.Context, applicationID string) (*appmodel.Application, error)
	Refresh(ctx context.Context) error
}

// RateCache is the part of the exchange rate cache the refresher needs.
type RateCache interface {
	InvalidateAll()
}

// Ledger detects re-delivered events.
type Ledger interface {
	CheckAndMark(ctx context.Context, eventID string, eventTimestamp *float64) (bool, error)
}

// StateSink stores the user app state carried by some events.
type StateSink interface {
	ShouldUpsert(eventName string) bool
	Upsert(ctx context.Context, event *model.CanonicalEvent, applicationID string) error
}

// Dependencies are the collaborators of a Pipeline.
type Dependencies struct {
	Registry    Registry
	Rates       RateCache
	Validator   validator.SchemaValidatorInterface
	Ledger      Ledger
	Transformer eventservice.TransformerInterface
	Sink        StateSink
}

// Options tune a Pipeline. Zero values fall back to the defaults.
type Options struct {
	RefreshInterval time.Duration
	Concurrency     int
	Now             func() time.Time
}

// Pipeline turns raw events into canonical records, one independent task per record.
type Pipeline struct {
	deps            Dependencies
	refreshInterval time.Duration
	concurrency     int
	now             func() time.Time
	tracer          trace.Tracer
}

// New builds a pipeline over the given collaborators.
func New(deps Dependencies, opts Options) *Pipeline {

	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = constants.DefaultCacheRefreshInterval
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = constants.DefaultBatchConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{
		deps:            deps,
		refreshInterval: opts.RefreshInterval,
		concurrency:     opts.Concurrency,
		now:             opts.Now,
		tracer:          otel.Tracer(tracerName),
	}
}

// Start warms the application registry and keeps the reference caches fresh until ctx is done.
func (p *Pipeline) Start(ctx context.Context) {

	p.refresh(ctx)
	go cache.RunRefresher(ctx, p.refreshInterval, p.refresh)
}

func (p *Pipeline) refresh(ctx context.Context) {

	logger := log.GetLogger()
	if p.deps.Rates != nil {
		p.deps.Rates.InvalidateAll()
	}
	if err := p.deps.Registry.Refresh(ctx); err != nil {
		logger.Warn("Application registry refresh failed, keeping cached entries", log.Error(err))
		return
	}
	logger.Debug("Reference caches refreshed")
}

// Process runs one record to a terminal outcome. It never returns an error: every failure is
// reported as a ProcessingFailed result carrying the raw input.
func (p *Pipeline) Process(ctx context.Context, rec Record, ingestionID string) Result {

	ctx, span := p.tracer.Start(ctx, "pipeline.process",
		trace.WithAttributes(attribute.String("record.id", rec.RecordID)))
	defer span.End()

	res := p.process(ctx, rec, ingestionID)

	span.SetAttributes(attribute.String("record.outcome", res.Outcome))
	logger := log.GetLogger().With(log.String("record_id", rec.RecordID), log.String("outcome", res.Outcome))
	switch {
	case res.Outcome == constants.ResultProcessingFailed:
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
		logger.Error("Record processing failed",
			log.String("kind", string(errors2.KindOf(res.Err))), log.Error(res.Err))
	case res.StateSinkErr != nil:
		span.RecordError(res.StateSinkErr)
		logger.Error("User app state was not updated",
			log.String("kind", string(errors2.KindOf(res.StateSinkErr))), log.Error(res.StateSinkErr))
	default:
		logger.Debug("Record processed")
	}
	return res
}

func (p *Pipeline) process(ctx context.Context, rec Record, ingestionID string) Result {

	if err := ctx.Err(); err != nil {
		return failed(rec, errors2.NewProcessingError(errors2.KindBackingStoreFailure,
			errors2.PROCESSING_CANCELLED, "Record was not processed before the deadline", err))
	}

	raw, err := model.ParseRawEvent(rec.Data)
	if err != nil {
		return failed(rec, errors2.NewProcessingError(errors2.KindMalformedEnvelope,
			errors2.MALFORMED_ENVELOPE, "Record is not a JSON object", err))
	}
	applicationID, ok := raw.ApplicationID()
	appID, isString := applicationID.(string)
	if !ok || !isString || appID == "" {
		return failed(rec, errors2.NewProcessingError(errors2.KindMalformedEnvelope,
			errors2.MALFORMED_ENVELOPE, "application_id is required", nil))
	}
	event, ok := raw.Event()
	if !ok || event == nil {
		return failed(rec, errors2.NewProcessingError(errors2.KindMalformedEnvelope,
			errors2.MALFORMED_ENVELOPE, "event is required and must be an object", nil))
	}

	envelope, api := splitAPIMetadata(raw.Envelope)
	country, hasCountry := raw.Country()
	metadata := model.Metadata{
		IngestionID:         ingestionID,
		ProcessingTimestamp: p.now().Unix(),
		API:                 api,
	}

	app, err := p.deps.Registry.Lookup(ctx, appID)
	if err != nil {
		return failed(rec, err)
	}
	if app == nil {
		log.GetLogger().Debug(errors2.UNREGISTERED_APPLICATION.Message, log.String("record_id", rec.RecordID),
			log.String("application_id", appID), log.String("kind", string(errors2.KindUnregisteredApplication)))
		metadata.ProcessingResult.Status = constants.StatusUnregistered
		return p.transform(ctx, rec, eventservice.TransformInput{
			Event:      event,
			Country:    country,
			HasCountry: hasCountry,
			Metadata:   metadata,
		}, appID)
	}

	verdict := p.deps.Validator.Validate(envelope)
	metadata.ProcessingResult.Status = constants.StatusOk
	if !verdict.OK {
		metadata.ProcessingResult.Status = constants.StatusSchemaMismatch
		metadata.ProcessingResult.ValidationErrors = verdict.Errors
		log.GetLogger().Debug(errors2.SCHEMA_MISMATCH.Message, log.String("record_id", rec.RecordID),
			log.String("code", errors2.SCHEMA_MISMATCH.Code), log.String("kind", string(errors2.KindSchemaMismatch)),
			log.Int("errors", len(verdict.Errors)))
	}

	eventID, ok := utils.CoerceToString(event["event_id"])
	if !ok || eventID == "" {
		return failed(rec, errors2.NewProcessingError(errors2.KindMalformedEnvelope,
			errors2.MISSING_EVENT_ID, "event.event_id is required for registered applications", nil))
	}
	var eventTimestamp *float64
	if ts, ok := utils.CoerceToNumber(event["event_timestamp"]); ok {
		eventTimestamp = &ts
	}

	duplicate, err := p.deps.Ledger.CheckAndMark(ctx, eventID, eventTimestamp)
	if err != nil {
		return failed(rec, err)
	}
	if duplicate {
		return dropped(rec, errors2.NewProcessingError(errors2.KindDuplicateEvent, errors2.DUPLICATE_EVENT,
			fmt.Sprintf("Event %s was already processed", eventID), nil))
	}

	res := p.transform(ctx, rec, eventservice.TransformInput{
		Event:       event,
		Country:     country,
		HasCountry:  hasCountry,
		Application: app,
		Metadata:    metadata,
	}, appID)
	if res.Outcome == constants.ResultProcessingFailed {
		// The ledger entry stays, so a redelivery of this event is dropped.
		log.GetLogger().Error("Event marked as processed without emitting a record",
			log.String("record_id", rec.RecordID), log.String("event_id", eventID),
			log.String("application_id", appID), log.String("kind", string(errors2.KindOf(res.Err))),
			log.Error(res.Err))
	}
	return res
}

func (p *Pipeline) transform(ctx context.Context, rec Record, in eventservice.TransformInput,
	applicationID string) Result {

	canonical, err := p.deps.Transformer.Transform(ctx, in)
	if err != nil {
		return failed(rec, err)
	}
	payload, err := encodeCanonical(canonical)
	if err != nil {
		return failed(rec, errors2.NewProcessingError(errors2.KindTransformFailure,
			errors2.ENCODE_RECORD, "Canonical record cannot be encoded", err))
	}

	res := Result{
		RecordID: rec.RecordID,
		Outcome:  constants.ResultOk,
		Event:    canonical,
		Payload:  payload,
	}
	if in.Application != nil && canonical.EventName != nil && p.deps.Sink.ShouldUpsert(*canonical.EventName) {
		res.StateSinkErr = p.deps.Sink.Upsert(ctx, canonical, applicationID)
	}
	return res
}
