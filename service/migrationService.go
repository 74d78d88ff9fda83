package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/joeyave/dream-integration/entity"
	"github.com/joeyave/dream-integration/helpers"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type PersonStore interface {
	UpsertOne(ctx context.Context, person entity.Person) (*entity.Person, error)
}

type SampleStore interface {
	UpsertOne(ctx context.Context, sample entity.Sample) (*entity.Sample, error)
}

type ResultStore interface {
	UpsertOne(ctx context.Context, result entity.Result) (*entity.Result, error)
}

type BlobStore interface {
	Store(ctx context.Context, filename string, source io.Reader, metadata entity.BlobMetadata) (bson.ObjectID, error)
}

// Report counts what a run wrote.
type Report struct {
	Persons             int
	Samples             int
	Images              int
	Audios              int
	FallbackTranscripts int
	Results             int
}

// MigrationService imports a data tree laid out as
// <root>/<person>/sample*/ into the person, sample and result collections.
type MigrationService struct {
	fs          afero.Fs
	log         zerolog.Logger
	personStore PersonStore
	sampleStore SampleStore
	resultStore ResultStore
	blobStore   BlobStore
}

func NewMigrationService(fs afero.Fs, log zerolog.Logger, personStore PersonStore, sampleStore SampleStore, resultStore ResultStore, blobStore BlobStore) *MigrationService {
	return &MigrationService{
		fs:          fs,
		log:         log,
		personStore: personStore,
		sampleStore: sampleStore,
		resultStore: resultStore,
		blobStore:   blobStore,
	}
}

// Run walks root once. A missing root is reported and ends the run without
// an error. Any other failure stops the run; writes made so far stay.
func (s *MigrationService) Run(ctx context.Context, root string) (*Report, error) {
	report := &Report{}

	ok, err := isDir(s.fs, root)
	if err != nil {
		return report, err
	}
	if !ok {
		s.log.Warn().Str("dir", root).Msg("Data directory not found")
		return report, nil
	}

	// afero.ReadDir returns entries sorted by name.
	persons, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return report, err
	}

	for _, person := range persons {
		info, err := s.resolve(root, person)
		if err != nil {
			return report, err
		}
		if info == nil || !info.IsDir() {
			continue
		}

		err = s.migratePerson(ctx, report, root, person.Name())
		if err != nil {
			return report, err
		}
	}

	s.log.Info().
		Int("persons", report.Persons).
		Int("samples", report.Samples).
		Int("results", report.Results).
		Msg("Migration completed successfully")

	return report, nil
}

func (s *MigrationService) migratePerson(ctx context.Context, report *Report, root, personID string) error {
	s.log.Info().Str("person_id", personID).Msg("Migrating person")

	_, err := s.personStore.UpsertOne(ctx, entity.Person{PersonID: personID})
	if err != nil {
		return fmt.Errorf("upsert person %s: %w", personID, err)
	}
	report.Persons++

	personDir := filepath.Join(root, personID)
	entries, err := afero.ReadDir(s.fs, personDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), helpers.SamplePrefix) {
			continue
		}
		info, err := s.resolve(personDir, entry)
		if err != nil {
			return err
		}
		if info == nil || !info.IsDir() {
			continue
		}

		err = s.migrateSample(ctx, report, personDir, personID, entry.Name())
		if err != nil {
			return err
		}

		err = s.migrateAnalysis(ctx, report, personDir, personID, entry.Name())
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *MigrationService) migrateSample(ctx context.Context, report *Report, personDir, personID, sampleID string) error {
	log := s.log.With().Str("person_id", personID).Str("sample_id", sampleID).Logger()
	log.Info().Msg("Sample")

	sampleDir := filepath.Join(personDir, sampleID)
	files, err := afero.ReadDir(s.fs, sampleDir)
	if err != nil {
		return err
	}

	sample := entity.Sample{
		PersonID: personID,
		SampleID: sampleID,
	}

	var transcript, fallback *string

	for _, file := range files {
		info, err := s.resolve(sampleDir, file)
		if err != nil {
			return err
		}
		if info == nil || !info.Mode().IsRegular() {
			continue
		}

		path := filepath.Join(sampleDir, file.Name())

		switch kind := classifyFile(file.Name()); kind {
		case imageFile, audioFile:
			id, err := s.storeBlob(ctx, path, personID, sampleID, kind)
			if err != nil {
				return err
			}
			if kind == imageFile {
				sample.ImageID = &id
				report.Images++
				log.Info().Str("file", file.Name()).Msg("Image stored")
			} else {
				sample.AudioID = &id
				report.Audios++
				log.Info().Str("file", file.Name()).Msg("Audio stored")
			}

		case transcriptFile:
			text, err := readText(s.fs, path)
			if err != nil {
				return err
			}
			transcript = &text
			log.Info().Str("file", file.Name()).Msg("Transcript loaded (transcript*)")

		case clipFile:
			if fallback != nil {
				log.Debug().Str("file", file.Name()).Msg("Ignoring extra clip transcript")
				continue
			}
			text, err := readText(s.fs, path)
			if err != nil {
				return err
			}
			fallback = &text

		case descriptionFile:
			text, err := readText(s.fs, path)
			if err != nil {
				return err
			}
			sample.Description = text
			log.Info().Str("file", file.Name()).Msg("Description loaded")

		default:
			log.Debug().Str("file", file.Name()).Msg("Skipping file")
		}
	}

	if transcript == nil && fallback != nil {
		transcript = fallback
		report.FallbackTranscripts++
		log.Info().Msg("Transcript loaded (clip* fallback)")
	}
	if transcript != nil {
		sample.Transcript = *transcript
	}

	_, err = s.sampleStore.UpsertOne(ctx, sample)
	if err != nil {
		return fmt.Errorf("upsert sample %s/%s: %w", personID, sampleID, err)
	}
	report.Samples++

	return nil
}

// resolve follows a symlinked directory entry so that links behave like
// their targets. A dangling link resolves to nil.
func (s *MigrationService) resolve(dir string, entry os.FileInfo) (os.FileInfo, error) {
	if entry.Mode()&os.ModeSymlink == 0 {
		return entry, nil
	}

	path := filepath.Join(dir, entry.Name())
	info, err := s.fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Warn().Str("path", path).Msg("Skipping dangling symlink")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (s *MigrationService) storeBlob(ctx context.Context, path, personID, sampleID string, kind fileKind) (bson.ObjectID, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return bson.NilObjectID, err
	}

	metadata := entity.BlobMetadata{
		PersonID:    personID,
		SampleID:    sampleID,
		Kind:        entity.ImageBlob,
		ContentType: mimetype.Detect(data).String(),
	}
	if kind == audioFile {
		metadata.Kind = entity.AudioBlob
	}

	id, err := s.blobStore.Store(ctx, filepath.Base(path), bytes.NewReader(data), metadata)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("store %s: %w", path, err)
	}
	return id, nil
}

// analysisDirs lists the folders that may hold scores for a sample. When
// both exist the later one wins.
func analysisDirs(personDir, personID, sampleID string) []string {
	return []string{
		filepath.Join(personDir, helpers.SharedAnalysisDir, sampleID),
		filepath.Join(personDir, helpers.AnalysisPrefix+personID, sampleID),
	}
}

func (s *MigrationService) migrateAnalysis(ctx context.Context, report *Report, personDir, personID, sampleID string) error {
	for _, dir := range analysisDirs(personDir, personID, sampleID) {
		ok, err := isDir(s.fs, dir)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		s.log.Info().Str("dir", dir).Msg("Migrating analysis")

		textScores, err := readScores(s.fs, filepath.Join(dir, helpers.TextScoresFile))
		if err != nil {
			return err
		}
		imageScores, err := readScores(s.fs, filepath.Join(dir, helpers.ImageScoresFile))
		if err != nil {
			return err
		}

		result := entity.Result{
			PersonID:    personID,
			SampleID:    sampleID,
			TextScores:  textScores,
			ImageScores: imageScores,
		}
		if !result.HasScores() {
			s.log.Debug().Str("dir", dir).Msg("No scores found")
			continue
		}

		_, err = s.resultStore.UpsertOne(ctx, result)
		if err != nil {
			return fmt.Errorf("upsert result %s/%s: %w", personID, sampleID, err)
		}
		report.Results++
	}

	return nil
}
