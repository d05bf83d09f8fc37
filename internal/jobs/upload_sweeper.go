// File: internal/jobs/upload_sweeper.go
package jobs

import (
	"context"
	"time"

	"kudos_web/internal/config"
	"kudos_web/internal/filestorage"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// UploadStore is the part of the file storage the sweeper needs.
type UploadStore interface {
	List() ([]filestorage.StoredFile, error)
	DeleteByURL(url string) error
}

// PictureLister returns every avatar URL still referenced by a profile.
type PictureLister interface {
	ProfilePictures(ctx context.Context) ([]string, error)
}

// UploadSweepJob removes avatar files no profile points at any more.
// Files younger than the grace period are left alone so uploads that have not
// been attached to a profile yet survive.
type UploadSweepJob struct {
	store         UploadStore
	pictures      PictureLister
	schedule      string
	grace         time.Duration
	logger        *zap.Logger
	cronScheduler *cron.Cron
	now           func() time.Time
}

// NewUploadSweepJob creates a new UploadSweepJob.
func NewUploadSweepJob(store UploadStore, pictures PictureLister, cfg *config.Config, logger *zap.Logger) *UploadSweepJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &UploadSweepJob{
		store:         store,
		pictures:      pictures,
		schedule:      cfg.UploadSweepJobSchedule,
		grace:         cfg.UploadSweepGrace,
		logger:        logger.Named("UploadSweepJob"),
		cronScheduler: scheduler,
		now:           time.Now,
	}
}

// SetupAndStart schedules and starts the cron job. An empty schedule disables it.
func (j *UploadSweepJob) SetupAndStart() error {
	if j.schedule == "" {
		j.logger.Warn("Upload sweep schedule not defined (UPLOAD_SWEEP_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(j.schedule, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule upload sweep job", zap.String("spec", j.schedule), zap.Error(err))
		return err
	}

	j.logger.Info("Upload sweep job scheduled", zap.String("spec", j.schedule), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *UploadSweepJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := j.Sweep(ctx); err != nil {
		j.logger.Error("Upload sweep job run failed", zap.Error(err))
	}
}

// Sweep deletes unreferenced uploads older than the grace period and returns how many went.
func (j *UploadSweepJob) Sweep(ctx context.Context) (int, error) {
	j.logger.Info("Starting upload sweep...")

	referenced, err := j.pictures.ProfilePictures(ctx)
	if err != nil {
		return 0, err
	}
	inUse := make(map[string]struct{}, len(referenced))
	for _, url := range referenced {
		inUse[url] = struct{}{}
	}

	files, err := j.store.List()
	if err != nil {
		return 0, err
	}

	cutoff := j.now().Add(-j.grace)
	removed := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if _, ok := inUse[f.URL]; ok || f.ModTime.After(cutoff) {
			continue
		}
		if err := j.store.DeleteByURL(f.URL); err != nil {
			j.logger.Warn("Could not remove orphaned upload", zap.String("url", f.URL), zap.Error(err))
			continue
		}
		removed++
	}

	j.logger.Info("Upload sweep completed", zap.Int("files_scanned", len(files)), zap.Int("files_removed", removed))
	return removed, nil
}

// Stop gracefully stops the cron scheduler.
func (j *UploadSweepJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping upload sweep scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Upload sweep scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Upload sweep scheduler stop timed out.")
	}
}
