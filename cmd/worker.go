package cmd

import (
	"dao/worker"
	"dao/worker/notifier"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "dao job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		n, err := notifier.New(
			notifier.Config{
				Location: cfg.App.Location,
				Schedule: cfg.Notifier.Schedule,
				Batch:    cfg.Notifier.Batch,
				Grace:    cast.ToDuration(cfg.Notifier.Grace),
			},
			provideEventStore(database),
			provideCursorStore(database),
			provideEventNotifier(),
		)
		if err != nil {
			log.WithError(err).Fatal("notifier.New")
		}

		jobs := []worker.IJob{n}

		g, ctx := errgroup.WithContext(ctx)
		for _, job := range jobs {
			job := job
			g.Go(func() error {
				if err := job.Start(); err != nil {
					return err
				}

				<-ctx.Done()
				return job.Stop()
			})
		}

		if err := g.Wait(); err != nil {
			log.WithError(err).Errorln("worker stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
