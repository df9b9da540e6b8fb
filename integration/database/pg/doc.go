// Package pg provides PostgreSQL connection management and the durable
// storage behind the session layer.
//
// Connect creates a pgxpool with exponential backoff retry and verifies
// connectivity before returning. Migrate applies embedded goose migrations
// through the pool. Healthcheck returns a ping function for readiness
// probes.
//
// SessionStore and PrincipalStore implement the session package's storage
// interfaces on top of the pool. Repositories participate in an ambient
// transaction when one is attached to the context via WithTx.
//
// Usage:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//
//	sessions := pg.NewSessionStore(pool)
//	principals := pg.NewPrincipalStore(pool)
package pg
