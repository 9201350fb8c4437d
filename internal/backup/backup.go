// Package backup periodically copies the backing document to object storage.
package backup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultPrefix = "backups/"

// ErrNotStored reports an upload that the bucket does not show afterwards.
var ErrNotStored = errors.New("backup object missing after upload")

// Snapshotter returns the serialized backing document.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]byte, error)
}

// Uploader stores data under key and can confirm that a key is present.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Scheduler runs a backup on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	snap     Snapshotter
	uploader Uploader
	logger   *zap.Logger
	prefix   string
	now      func() time.Time
	timeout  time.Duration
}

type Option func(*Scheduler)

// WithPrefix sets the object key prefix (default "backups/").
func WithPrefix(prefix string) Option {
	return func(s *Scheduler) { s.prefix = prefix }
}

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New validates schedule (standard five-field cron or a descriptor such as
// "@daily") and registers the backup job.
func New(schedule string, snap Snapshotter, uploader Uploader, logger *zap.Logger, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		snap:     snap,
		uploader: uploader,
		logger:   logger,
		prefix:   defaultPrefix,
		now:      time.Now,
		timeout:  time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := s.cron.AddFunc(schedule, s.runJob); err != nil {
		return nil, fmt.Errorf("parse backup schedule %q: %w", schedule, err)
	}
	return s, nil
}

// RunOnce takes a snapshot, uploads it and checks that the object landed.
// It returns the object key.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	data, err := s.snap.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	key := s.prefix + "database-" + s.now().UTC().Format("20060102T150405Z") + ".json"
	if err := s.uploader.Upload(ctx, key, data); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	ok, err := s.uploader.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("verify %s: %w", key, err)
	}
	if !ok {
		return "", fmt.Errorf("verify %s: %w", key, ErrNotStored)
	}
	return key, nil
}

// Run starts the schedule and blocks until ctx is done, then waits for a
// running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.logger.Info("backup scheduler started", zap.Int("jobs", len(s.cron.Entries())))
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("backup scheduler stopped")
	return nil
}

func (s *Scheduler) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	key, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("backup failed", zap.Error(err))
		return
	}
	s.logger.Info("backup uploaded", zap.String("key", key), zap.Duration("duration", time.Since(start)))
}
