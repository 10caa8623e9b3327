// Package service contains detection job workflows
package service

import (
	"context"
	"encoding/json"

	"geotwin/internal/adapters/detect"
	"geotwin/internal/modkit/repokit"
	perr "geotwin/internal/platform/errors"
	"geotwin/internal/platform/logger"
	"geotwin/internal/services/api/detection/domain"
	"geotwin/internal/services/api/detection/repo"
	lidardom "geotwin/internal/services/api/lidar/domain"

	assetsdom "geotwin/internal/services/api/assets/domain"

	"github.com/google/uuid"
)

// Runner submits detection work to the external service
type Runner interface {
	Run(ctx context.Context, in detect.RunRequest) (detect.RunResponse, error)
}

// Options carries the collaborators and policy for the orchestrator
type Options struct {
	Runner      Runner
	Lidar       lidardom.ReaderPort
	LidarStatus lidardom.StatusPort
	Assets      assetsdom.WriterPort

	// KnownModels is the closed set of model names the service accepts
	KnownModels []string
}

// Service defines the service contract for detection jobs
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	opts   Options
	known  map[string]bool
	log    logger.Logger
}

// New creates a new detection service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts Options) *Svc {
	if db == nil {
		panic("detection.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("detection.Service requires a non nil Repo binder")
	}
	if opts.Runner == nil {
		panic("detection.Service requires a Runner")
	}
	if opts.Lidar == nil || opts.LidarStatus == nil {
		panic("detection.Service requires the lidar ports")
	}
	if opts.Assets == nil {
		panic("detection.Service requires the assets writer port")
	}
	known := make(map[string]bool, len(opts.KnownModels))
	for _, m := range opts.KnownModels {
		known[m] = true
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		opts:   opts,
		known:  known,
		log:    *logger.Named("detection"),
	}
}

// Run validates the request, submits it upstream, and only then persists
// an upstream failure leaves the database untouched
func (s *Svc) Run(ctx context.Context, in domain.RunInput) (domain.RunResult, error) {
	if len(in.Models) == 0 {
		return domain.RunResult{}, perr.Newf(perr.ErrorCodeValidation, "models must not be empty")
	}
	for _, m := range in.Models {
		if !s.known[m] {
			return domain.RunResult{}, perr.Newf(perr.ErrorCodeValidation, "unknown model %q", m)
		}
	}

	if _, err := s.opts.Lidar.Get(ctx, in.LidarID); err != nil {
		return domain.RunResult{}, err
	}

	ack, err := s.opts.Runner.Run(ctx, detect.RunRequest{LidarID: in.LidarID, Models: in.Models})
	if err != nil {
		return domain.RunResult{}, err
	}

	models, err := json.Marshal(in.Models)
	if err != nil {
		return domain.RunResult{}, perr.Wrap(err, perr.ErrorCodeUnknown, "encode models")
	}

	var jobID string
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		row, err := r.Insert(ctx, in.LidarID, models, ack.JobID)
		if err != nil {
			return err
		}
		jobID = row.ID
		return nil
	})
	if err != nil {
		// upstream already accepted the work, losing the record is worth a loud log
		s.log.Error().Err(err).
			Str("lidar_file_id", in.LidarID).
			Str("external_job_id", ack.JobID).
			Msg("job accepted upstream but persisting it failed")
		return domain.RunResult{}, perr.FromPostgres(err, "persist detection job")
	}

	if err := s.opts.LidarStatus.Advance(ctx, in.LidarID, lidardom.StatusProcessing); err != nil {
		s.log.Warn().Err(err).Str("lidar_file_id", in.LidarID).Msg("advance lidar status failed")
	}

	return domain.RunResult{JobID: jobID}, nil
}

// Status fetches one job record
func (s *Svc) Status(ctx context.Context, jobID string) (domain.Job, error) {
	if _, err := uuid.Parse(jobID); err != nil {
		return domain.Job{}, perr.Newf(perr.ErrorCodeValidation, "invalid job id %q", jobID)
	}
	row, found, err := s.Repo.Get(ctx, jobID)
	if err != nil {
		return domain.Job{}, perr.FromPostgres(err, "get detection job")
	}
	if !found {
		return domain.Job{}, perr.NotFoundf("job %s not found", jobID)
	}
	return toJob(row)
}

// Callback applies a completion report from the detection service
// asset inserts are independent, then the job advances through a guarded
// update so replays and late reports cannot rewrite a terminal state
func (s *Svc) Callback(ctx context.Context, in domain.CallbackInput) (domain.CallbackResult, error) {
	job, found, err := s.Repo.GetByExternal(ctx, in.ExternalJobID)
	if err != nil {
		return domain.CallbackResult{}, perr.FromPostgres(err, "find job for callback")
	}
	if !found {
		return domain.CallbackResult{}, perr.NotFoundf("no job for external id %q", in.ExternalJobID)
	}

	res := domain.CallbackResult{JobStatus: in.Status}
	for i, a := range in.Assets {
		if a.LidarFileID == "" {
			a.LidarFileID = job.LidarFileID
		}
		if _, err := s.opts.Assets.Create(ctx, a); err != nil {
			res.AssetsFailed++
			s.log.Warn().Err(err).
				Str("external_job_id", in.ExternalJobID).
				Int("asset_index", i).
				Msg("callback asset rejected")
			continue
		}
		res.AssetsInserted++
	}

	n, err := s.Repo.FinishGuarded(ctx, in.ExternalJobID, in.Status)
	if err != nil {
		return domain.CallbackResult{}, perr.FromPostgres(err, "finish detection job")
	}
	res.Applied = n > 0

	if res.Applied {
		fileStatus := lidardom.StatusCompleted
		if in.Status == domain.StatusFailed {
			fileStatus = lidardom.StatusFailed
		}
		if err := s.opts.LidarStatus.Advance(ctx, job.LidarFileID, fileStatus); err != nil {
			s.log.Warn().Err(err).Str("lidar_file_id", job.LidarFileID).Msg("advance lidar status failed")
		}
	}
	return res, nil
}

func toJob(r repo.RowJob) (domain.Job, error) {
	var models []string
	if len(r.RequestedModels) > 0 {
		if err := json.Unmarshal(r.RequestedModels, &models); err != nil {
			return domain.Job{}, perr.Wrap(err, perr.ErrorCodeDB, "decode requested models")
		}
	}
	return domain.Job{
		ID:              r.ID,
		LidarFileID:     r.LidarFileID,
		RequestedModels: models,
		Status:          r.Status,
		ExternalJobID:   r.ExternalJobID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}, nil
}
