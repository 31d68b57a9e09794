package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"storewatch/internal/platform/config"
	"storewatch/internal/platform/logger"
	"storewatch/internal/platform/store"

	"storewatch/internal/adapters/ingest/csvfeed"
	ingestrepo "storewatch/internal/services/ingest/repo"
	ingestsvc "storewatch/internal/services/ingest/service"
	storesrepo "storewatch/internal/services/stores/repo"
)

func main() {
	_ = godotenv.Load()

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	ingCfg := root.Prefix("CORE_INGEST_")

	l := logger.Get()

	var (
		fTimezones = flag.String("timezones", "", "path to the timezone feed csv")
		fHours     = flag.String("hours", "", "path to the business hours feed csv")
		fPolls     = flag.String("polls", "", "path to the status poll feed csv")
		fChunk     = flag.Int("chunk", csvfeed.DefaultChunkSize, "rows per database round trip")
	)
	flag.Parse()

	if *fTimezones == "" && *fHours == "" && *fPolls == "" {
		l.Panic().Msg("nothing to do: provide -timezones, -hours, or -polls")
	}

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	ctx := context.Background()
	if err := storesrepo.EnsureSchema(ctx, st.PG); err != nil {
		l.Panic().Err(err).Msg("schema bootstrap failed")
	}

	svc := ingestsvc.New(st.PG, ingestrepo.NewPG(), ingestsvc.Config{
		ChunkSize:       *fChunk,
		DefaultTimezone: ingCfg.MayString("DEFAULT_TIMEZONE", "America/Chicago"),
	})

	sum, err := svc.Run(ctx, ingestsvc.Paths{
		Timezones: *fTimezones,
		Hours:     *fHours,
		Polls:     *fPolls,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("ingest failed")
	}

	l.Info().
		Int("timezone_rows", sum.Timezones.Rows).
		Int("hours_rows", sum.Hours.Rows).
		Int("poll_rows", sum.Polls.Rows).
		Int("skipped", sum.Timezones.Skipped+sum.Hours.Skipped+sum.Polls.Skipped).
		Msg("ingest complete")
}
