// Package logger provides a structured logging facility based on Zap.
//
// Debug level selects the development configuration, any other level the
// production one. Format chooses between json and colored console output.
//
// # Context Awareness
//
// The WithRayID helper extracts the ray id stored by the rayid middleware from a
// Fiber context and attaches it to the log entry, so all logs of one request
// can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
