// workers/scheduler.go
package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"avatar-progression/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Uploader stores a JSON document and returns where it can be read.
type Uploader interface {
	UploadJSON(ctx context.Context, key string, v interface{}) (string, error)
}

type SupplyReport struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Tiers       []services.SupplyLine `json:"tiers"`
}

// SupplyReporter snapshots the badge supply and publishes it.
type SupplyReporter struct {
	DB       *gorm.DB
	Supply   services.SupplyStore
	Uploader Uploader
	Now      func() time.Time
}

func reportKey(at time.Time) string {
	return fmt.Sprintf("reports/supply/%s.json", slug.Make(at.UTC().Format(time.RFC3339)))
}

func (r *SupplyReporter) Run(ctx context.Context) (string, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	lines, err := r.Supply.Report(r.DB)
	if err != nil {
		return "", fmt.Errorf("failed to snapshot supply: %w", err)
	}
	at := now()
	return r.Uploader.UploadJSON(ctx, reportKey(at), SupplyReport{GeneratedAt: at.UTC(), Tiers: lines})
}

// StartScheduler registers the background jobs and starts them. A nil
// reporter disables the supply report.
func StartScheduler(ctx context.Context, rankings *services.RankingService, sweepEvery time.Duration, reporter *SupplyReporter, reportEvery time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	if rankings.Generation == services.GenerationV2 {
		_, err = sched.NewJob(
			gocron.DurationJob(sweepEvery),
			gocron.NewTask(func() {
				if _, err := rankings.MigrateAll(200); err != nil {
					log.Printf("[SCHEDULER] migration sweep failed: %v", err)
				}
			}),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to schedule migration sweep: %w", err)
		}
	}

	if reporter != nil {
		_, err = sched.NewJob(
			gocron.DurationJob(reportEvery),
			gocron.NewTask(func() {
				url, err := reporter.Run(ctx)
				if err != nil {
					log.Printf("[SCHEDULER] supply report failed: %v", err)
					return
				}
				log.Printf("[SUPPLY] 📦 report published: %s", url)
			}),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to schedule supply report: %w", err)
		}
	}

	sched.Start()
	return sched, nil
}
