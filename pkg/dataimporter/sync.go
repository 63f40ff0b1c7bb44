package dataimporter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/campigo/campigo/pkg/database"
	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/campigo/campigo/pkg/timetable"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const fetchTimeout = 30 * time.Second

// BatchBudget is the wall-clock budget for one whole synchronisation run.
// When it expires the batch is abandoned; items already persisted stay
const BatchBudget = 5 * time.Minute

const maxConcurrentFetches = 4

// GlobalSyncLock guards the bulk re-synchronisation job across the API
// trigger and the CLI
var GlobalSyncLock = NewSyncLock()

type SyncResult struct {
	SourcesTotal  int `json:"sources_total" groups:"basic"`
	SourcesFailed int `json:"sources_failed" groups:"basic"`
	EntriesUpsert int `json:"entries_upserted" groups:"basic"`
}

// RunSync re-fetches every registered timetable page and upserts the
// extracted schedule entries. At most one run executes at a time; a duplicate
// trigger fails immediately with ErrSyncAlreadyInProgress. A failed or timed
// out page only loses that page - the rest of the batch carries on
func RunSync(ctx context.Context) (*SyncResult, error) {
	if !GlobalSyncLock.TryAcquire() {
		return nil, ErrSyncAlreadyInProgress
	}
	defer GlobalSyncLock.Release()

	return runBatch(ctx), nil
}

// StartSync launches a synchronisation run in the background, holding the
// lock for its whole duration. Fails immediately when a run is already
// executing
func StartSync() error {
	if !GlobalSyncLock.TryAcquire() {
		return ErrSyncAlreadyInProgress
	}

	go func() {
		defer GlobalSyncLock.Release()

		result := runBatch(context.Background())

		log.Info().
			Int("sources", result.SourcesTotal).
			Int("failed", result.SourcesFailed).
			Int("entries", result.EntriesUpsert).
			Msg("Synchronisation run complete")
	}()

	return nil
}

func runBatch(ctx context.Context) *SyncResult {
	batchCtx, cancel := context.WithTimeout(ctx, BatchBudget)
	defer cancel()

	sources := GetRegisteredSources()
	result := &SyncResult{SourcesTotal: len(sources)}

	httpClient := &http.Client{Timeout: fetchTimeout}

	type sourceOutcome struct {
		upserted int
		failed   bool
	}

	p := pool.NewWithResults[sourceOutcome]()
	p.WithMaxGoroutines(maxConcurrentFetches)

	for _, source := range sources {
		p.Go(func() sourceOutcome {
			upserted, err := syncSource(batchCtx, httpClient, source)
			if err != nil {
				log.Error().Err(err).Str("source", source.Identifier).Msg("Failed to synchronise timetable source")
				return sourceOutcome{failed: true}
			}

			log.Info().Str("source", source.Identifier).Int("entries", upserted).Msg("Synchronised timetable source")
			return sourceOutcome{upserted: upserted}
		})
	}

	for _, outcome := range p.Wait() {
		if outcome.failed {
			result.SourcesFailed++
		}
		result.EntriesUpsert += outcome.upserted
	}

	return result
}

func syncSource(ctx context.Context, httpClient *http.Client, source TimetableSource) (int, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return 0, err
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d fetching %s", response.StatusCode, source.URL)
	}

	tables, err := timetable.ParseTables(response.Body)
	if err != nil {
		return 0, err
	}

	upserted := 0

	for tableIndex, table := range tables {
		roleMap, headerIndex, err := timetable.ClassifyTable(table)
		if err != nil {
			// Pages carry decorative tables too, skipping them is routine
			log.Debug().Str("source", source.Identifier).Int("table", tableIndex).Msg("Skipping table with no recognisable header")
			continue
		}

		entries := timetable.Extract(table, roleMap, headerIndex)

		for i := range entries {
			entry := &entries[i]

			entry.SourceRef = source.Identifier
			entry.BusCategory = source.BusCategory
			entry.Direction = source.Direction
			entry.DayType = source.DayType
			entry.CreationDateTime = time.Now()
			entry.ModificationDateTime = time.Now()
			entry.GenerateIdentifier()

			if err := upsertScheduleEntry(ctx, entry); err != nil {
				log.Error().Err(err).Str("entry", entry.PrimaryIdentifier).Msg("Failed to upsert schedule entry")
				continue
			}
			upserted++
		}
	}

	return upserted, nil
}

func upsertScheduleEntry(ctx context.Context, entry *shuttle.ScheduleEntry) error {
	scheduleEntriesCollection := database.GetCollection("schedule_entries")

	opts := options.Replace().SetUpsert(true)
	_, err := scheduleEntriesCollection.ReplaceOne(ctx, bson.M{"primaryidentifier": entry.PrimaryIdentifier}, entry, opts)

	return err
}
