package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/edumaster/internal/core/events"
	"github.com/frahmantamala/edumaster/internal/fee"
	feePostgres "github.com/frahmantamala/edumaster/internal/fee/postgres"
	"github.com/frahmantamala/edumaster/internal/library"
	libraryPostgres "github.com/frahmantamala/edumaster/internal/library/postgres"
	"github.com/frahmantamala/edumaster/internal/scheduler"
	"github.com/frahmantamala/edumaster/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start background workers: the overdue scheduler or the event bus listener.`,
}

var schedulerWorkerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Start the overdue fee and library jobs",
	Long:  `Run the overdue fee and library issue jobs on their cron specs until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		startSchedulerWorker()
	},
}

var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start event bus worker",
	Long:  `Start the event bus with the activity log subscriber attached.`,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

var runOnce bool

func startSchedulerWorker() {
	config, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.LoggerWrapper()

	db, gdb, err := initDB(config.Database, config.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fees := fee.NewService(feePostgres.NewFeeRepository(gdb), log)
	books := library.NewService(libraryPostgres.NewLibraryRepository(gdb), log)

	s := scheduler.New(log)
	for _, job := range scheduler.OverdueJobs(config.Scheduler, fees, books) {
		if err := s.Add(job); err != nil {
			log.Error("failed to schedule job", "job", job.Name, "error", err)
			os.Exit(1)
		}
	}

	if runOnce {
		for _, name := range []string{scheduler.JobOverdueFees, scheduler.JobOverdueBooks} {
			n, err := s.RunNow(name)
			if err != nil {
				log.Error("job failed", "job", name, "error", err)
				continue
			}
			log.Info("job finished", "job", name, "affected", n)
		}
		return
	}

	s.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info("scheduler worker is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	log.Info("received signal, shutting down scheduler worker", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.Shutdown(ctx)
}

func startEventWorker() {
	config, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.LoggerWrapper()

	db, gdb, err := initDB(config.Database, config.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	eventBus := newEventBus(gdb, log)
	for _, eventType := range events.AllEventTypes {
		eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			log.Info("received event",
				"event_id", event.EventID(),
				"event_type", event.EventType(),
				"occurred_at", event.OccurredAt().Format(time.RFC3339))
			return nil
		})
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info("event bus is running. Press Ctrl+C to stop.", "event_types", events.AllEventTypes)

	sig := <-sigChan
	log.Info("received signal, shutting down event bus", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := eventBus.Shutdown(ctx); err != nil {
		log.Error("event bus shutdown error", "error", err)
		return
	}
	log.Info("event bus shutdown complete")
}

func init() {
	schedulerWorkerCmd.Flags().BoolVar(&runOnce, "once", false, "run every job once and exit")

	workerCmd.AddCommand(schedulerWorkerCmd)
	workerCmd.AddCommand(eventWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
