// Package mode holds the night-mode preference for Marquee.
//
// # State
//
// Two booleans, both persisted through a prefs.KV:
//
//   - isNightMode: the effective theme
//   - userPreferredTheme: set once the user has toggled at least once
//
// Missing or unreadable values load as false.
//
// # Transitions
//
//	Synced (userPreferredTheme=false)
//	  system event   -> Synced, isNightMode = event value
//	  Toggle()       -> Overridden
//
//	Overridden (userPreferredTheme=true)
//	  system event   -> ignored
//	  Toggle()       -> Overridden, isNightMode flipped
//
// There is no way back to Synced short of clearing the persisted keys.
//
// # Lifecycle
//
//	store := mode.New(kv, logger)
//	unsubscribe := store.Initialize(watcher) // nil when headless
//	defer unsubscribe()
//
// Initialize loads, reconciles with the source, and subscribes. The store has
// no Close; whoever called Initialize releases the subscription.
//
// # Concurrency
//
// System events arrive on the watcher goroutine and toggles on the UI
// goroutine. A mutex serialises both, and the KV write happens under it so
// persisted order matches in-memory order. OnChange listeners run after the
// lock is released.
package mode
