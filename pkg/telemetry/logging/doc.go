// Package logging constructs structured loggers for the MCL toolchain.
//
// Loggers are standard [log/slog] loggers; this package only handles
// configuration: level and format parsing plus handler selection.
//
//	logger, err := logging.New(logging.Config{Level: "debug", Format: "text"})
//	if err != nil {
//	    return err
//	}
//	logger.Info("document reloaded", "path", path)
package logging
