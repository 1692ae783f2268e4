// Package app is the composition root for Marquee.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         Read ~/.config/marquee/config.toml
//	       ├─────> logging.New()         JSON log file under log_dir
//	       ├─────> prefs.Open()          file, sqlite or memory KV
//	       ├─────> mode.New()            Theme preference store
//	       ├─────> StartWatcher()        Probe + poll the system colour scheme
//	       ├─────> store.Initialize()    Load, reconcile, subscribe
//	       └─────> ui.Run()              TUI (blocks)
//
// StartWatcher returns nil when follow_system is off or the host has no
// colour scheme signal. The store is then initialised without a source and
// simply uses the persisted preference.
//
// Run keeps the unsubscribe handle returned by Initialize and releases it on
// exit, along with the watcher (via context cancellation) and the KV.
//
// # Headless Commands
//
// Status, Toggle and Logs back the CLI subcommands of the same names. Status
// and Toggle go through the same load/reconcile path as the TUI, so what they
// report is what the TUI would show.
package app
