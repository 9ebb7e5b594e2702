// Package pg provides PostgreSQL connection, migration, and health-check
// helpers for the durable notification store.
//
// Connect builds a pgx connection pool with linear-backoff retries; Migrate
// applies the goose migrations shipped in the migrations directory; error
// classifiers (IsNotFoundError, IsDuplicateKeyError) keep store code free of
// driver-specific checks.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
//
//	storage := notify.NewPostgresStorage(pool)
package pg
