// Package refresh keeps the served catalog in sync with the version feed.
//
// A [Strategy] turns a fetched feed into a new catalog: it clones the
// current one, replaces the platform and framework versions, and
// recomputes every dependency compatibility range. A failed refresh is
// logged and leaves the current catalog in place.
//
// A [Provider] publishes the current catalog to concurrent readers. Readers
// call [Provider.Get] without locking and always see a complete catalog;
// a refresh builds its result on a private copy and swaps it in with a
// single atomic store.
//
// A [Scheduler] drives the provider periodically and on demand:
//
//	p := refresh.NewProvider(catalog, refresh.NewStrategy(src, logger), logger)
//	s := refresh.NewScheduler(p, 10*time.Minute, logger)
//	go s.Run(ctx)
//	s.Trigger() // refresh now
package refresh
