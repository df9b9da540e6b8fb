// Package logger provides slog attribute helpers shared across the session
// and request-trust layer.
//
// Helpers follow the empty Attr pattern for nil safety, so call sites never
// need explicit nil checks:
//
//	log.Warn("session validation failed",
//		logger.Error(err),
//		logger.SessionID(sess.ID),
//		logger.ClientIP(ip))
package logger
