// internal/workers/listings/search-listings/handler.go
package searchlistings

import (
	"context"
	"fmt"
	"time"

	"listing-search-workers/internal/common/errors"
	commonhttp "listing-search-workers/internal/common/http"
	"listing-search-workers/internal/common/logger"
	"listing-search-workers/internal/common/metrics"
	"listing-search-workers/internal/common/observability"
	"listing-search-workers/internal/common/validation"
	"listing-search-workers/internal/listing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "search-listings"

type Handler struct {
	config       *Config
	logger       logger.Logger
	service      *listing.Service
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	emitter      listing.Emitter
	obs          *observability.Observability
}

type HandlerOptions struct {
	Config        *Config
	Logger        logger.Logger
	Emitter       listing.Emitter
	Observability *observability.Observability
	HTTPClient    *commonhttp.Client
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	validator, err := validation.NewValidator(GetInputSchema())
	if err != nil {
		return nil, fmt.Errorf("compile input schema: %w", err)
	}

	var client *listing.Client
	if opts.HTTPClient != nil {
		client = listing.NewClientWithHTTP(cfg.Repliers, opts.HTTPClient, log)
	} else {
		client = listing.NewClient(cfg.Repliers, log)
	}

	emitter := opts.Emitter
	if emitter == nil {
		emitter = listing.NewLogEmitter(log)
	}

	obs := opts.Observability
	if obs == nil {
		obs = &observability.Observability{}
	}

	return &Handler{
		config:       cfg,
		logger:       log,
		service:      listing.NewServiceWithClient(cfg.Repliers, client, log),
		validator:    validator,
		errorHandler: errors.NewErrorHandler(log),
		emitter:      emitter,
		obs:          obs,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, err, startTime)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err, startTime)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(startTime), "completed")
	h.obs.RecordListings(ctx, output.ListingCount)
}

// Execute runs one search. The returned events are every notification the search emitted.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	filters, err := listing.FilterSetFromMap(input.Filters)
	if err != nil {
		return nil, err
	}

	rec := &listing.RecordingEmitter{}
	result, err := h.service.Search(ctx, filters, listing.MultiEmitter{rec, h.emitter})
	if err != nil {
		return nil, err
	}

	return &Output{
		SearchID:     result.SearchID,
		ListingCount: len(result.Response.Listings),
		Summary:      result.Summary,
		Output:       result.Output,
		Events:       rec.Events(),
	}, nil
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInvalidFilterFormatError(fmt.Sprintf("parse job variables: %v", err))
	}

	result := h.validator.Validate(variables)
	if !result.Valid {
		return nil, errors.NewInvalidFilterFormatError(fmt.Sprintf("%v", result.GetErrorMessages()))
	}

	input := &Input{Filters: map[string]interface{}{}}
	if filters, ok := variables["filters"].(map[string]interface{}); ok {
		input.Filters = filters
	}
	return input, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	if _, err := request.Send(ctx); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	h.logger.Info("listing search job completed", map[string]interface{}{
		"jobKey":       job.GetKey(),
		"searchId":     output.SearchID,
		"listingCount": output.ListingCount,
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, startTime time.Time) {
	stdErr := errors.As(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(startTime), "failed")

	// the job context may already be past its deadline
	h.errorHandler.HandleJobError(context.Background(), client, job, stdErr)
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) GetConfig() *Config {
	return h.config
}
