package dataimporter

import (
	"context"
	"net/http"
	"time"

	"github.com/campigo/campigo/pkg/database"
	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/campigo/campigo/pkg/timetable"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Scrape & convert the published timetable pages into schedule entries",
		Subcommands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "Re-synchronise every registered timetable page",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "repeat-every",
						Usage: "Repeat the synchronisation every X seconds",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					shuttle.LoadStopRegistry()

					repeatEvery := c.String("repeat-every")

					for {
						result, err := RunSync(context.Background())
						if err != nil {
							return err
						}

						log.Info().
							Int("sources", result.SourcesTotal).
							Int("failed", result.SourcesFailed).
							Int("entries", result.EntriesUpsert).
							Msg("Synchronisation run complete")

						if repeatEvery == "" {
							return nil
						}

						repeatDuration, err := time.ParseDuration(repeatEvery + "s")
						if err != nil {
							return err
						}

						time.Sleep(repeatDuration)
					}
				},
			},
			{
				Name:  "extract",
				Usage: "Fetch a single timetable page and print what the extractor sees",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Usage:    "URL of the timetable page",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					shuttle.LoadStopRegistry()

					httpClient := &http.Client{Timeout: fetchTimeout}

					response, err := httpClient.Get(c.String("url"))
					if err != nil {
						return err
					}
					defer response.Body.Close()

					tables, err := timetable.ParseTables(response.Body)
					if err != nil {
						return err
					}

					for tableIndex, table := range tables {
						roleMap, headerIndex, err := timetable.ClassifyTable(table)
						if err != nil {
							log.Info().Int("table", tableIndex).Msg("No recognisable header")
							continue
						}

						pretty.Println(roleMap)
						pretty.Println(timetable.Extract(table, roleMap, headerIndex))
					}

					return nil
				},
			},
		},
	}
}
