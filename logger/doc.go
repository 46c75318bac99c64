// Package logger provides a structured, leveled logging wrapper around Uber's Zap.
//
// The logger package is the single logging surface for schemaforge components.
// It produces JSON-encoded log entries on stderr with ISO8601 timestamps and a
// constant service field, and integrates with the fx dependency injection
// framework for lifecycle management (buffered entries are flushed on shutdown).
//
// # Basic Usage
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "schemaforge",
//	})
//	log.Info("negotiation started", nil, map[string]interface{}{
//	    "index": "documents",
//	})
//
// # Fx Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Supply(logger.Config{Level: logger.Info, ServiceName: "schemaforge"}),
//	)
package logger
