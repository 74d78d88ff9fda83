package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"time"

	"github.com/joeyave/dream-integration/configs"
	"github.com/joeyave/dream-integration/helpers"
	"github.com/joeyave/dream-integration/repository"
	"github.com/joeyave/dream-integration/service"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var dataDir, logLevel string

	cmd := &cobra.Command{
		Use:          "migrate_samples",
		Short:        "Import per-person sample folders into MongoDB",
		Long:         "Walks <data-dir>/<person>/sample*/ and upserts persons, samples and analysis results. Images and audio go to GridFS.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configs.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory with one folder per person (overrides DREAM_DATA_DIR)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides DREAM_LOG_LEVEL)")

	return cmd
}

func run(ctx context.Context, cfg *configs.Config, out io.Writer) error {
	logger, err := helpers.NewLogger(out, cfg.LogLevel)
	if err != nil {
		return err
	}

	fsys := afero.NewOsFs()
	ok, err := dataDirExists(fsys, cfg.DataDir)
	if err != nil {
		logger.Error().Err(err).Str("dir", cfg.DataDir).Msg("Failed to stat data directory")
		return err
	}
	if !ok {
		logger.Warn().Str("dir", cfg.DataDir).Msg("Data directory not found")
		return nil
	}

	clientOpts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMonitor(helpers.NewCommandMonitor(logger))

	mongoClient, err := mongo.Connect(clientOpts)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect mongo")
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(ctx)
	}()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Error().Err(err).Msg("Failed to ping mongo")
		return err
	}

	personRepository := repository.NewPersonRepository(mongoClient, cfg.DatabaseName, cfg.UsersCollection)
	sampleRepository := repository.NewSampleRepository(mongoClient, cfg.DatabaseName, cfg.SamplesCollection)
	resultRepository := repository.NewResultRepository(mongoClient, cfg.DatabaseName, cfg.ResultsCollection)
	blobRepository := repository.NewBlobRepository(mongoClient, cfg.DatabaseName, cfg.BucketName)

	for _, r := range []interface{ EnsureIndexes(context.Context) error }{personRepository, sampleRepository, resultRepository} {
		if err := r.EnsureIndexes(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to create indexes")
			return err
		}
	}

	migrationService := service.NewMigrationService(fsys, logger, personRepository, sampleRepository, resultRepository, blobRepository)

	report, err := migrationService.Run(ctx, cfg.DataDir)
	if err != nil {
		logger.Error().Err(err).Msg("Migration failed")
		return err
	}

	fmt.Fprintf(out, "persons=%d samples=%d images=%d audios=%d fallback_transcripts=%d results=%d\n",
		report.Persons, report.Samples, report.Images, report.Audios, report.FallbackTranscripts, report.Results)

	return nil
}

// dataDirExists reports whether dir is a directory. Only a missing path
// counts as absent; other stat failures are returned.
func dataDirExists(fsys afero.Fs, dir string) (bool, error) {
	info, err := fsys.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
