// Package watch reloads MCL documents when they change on disk.
//
// A [Watcher] watches a document's directory with fsnotify, debounces event
// bursts, reparses the document on each change, and delivers a [Snapshot]
// (parsed tree plus canonical text, tagged with a UUID) to a callback.
// Reloads can optionally be persisted through a snapshot store and counted
// in Prometheus metrics; a cron schedule adds periodic refreshes for files
// on network mounts where change events are unreliable.
//
// # Basic Usage
//
//	w, err := watch.New(watch.Config{Path: "config.mcl"}, logger)
//	if err != nil {
//	    return err
//	}
//	err = w.Watch(ctx, func(snap *watch.Snapshot) error {
//	    return apply(snap.Doc)
//	})
//
// Parse failures never stop the watch loop: the previous document state
// stays in effect and the error is logged.
package watch
