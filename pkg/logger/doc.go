// Package logger provides a small slog factory and typed attribute helpers
// for consistent structured logging across the module.
//
// The factory builds a *slog.Logger from options or from environment
// configuration:
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatJSON),
//	    logger.WithLevel(slog.LevelInfo),
//	)
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log = logger.NewFromConfig(cfg)
//
// Attribute helpers keep log keys uniform so downstream aggregation can rely
// on them:
//
//	log.LogAttrs(ctx, slog.LevelWarn, "Failed to append to pending index",
//	    logger.UserID(userID),
//	    logger.NotificationID(id),
//	    logger.Error(err),
//	)
package logger
