// Package httpserver runs the rulekit HTTP service with graceful shutdown.
//
// Run listens on Config.Addr and blocks until the context is canceled or the
// process gets SIGINT/SIGTERM, then drains in-flight requests within
// Config.ShutdownTimeout. Health builds a JSON readiness endpoint out of
// named dependency checks such as lookup.RedisHealthcheck.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
package httpserver
