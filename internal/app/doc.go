// Package app provides the application context for lpf.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths    *config.Paths      // File locations
//	    Settings *config.Settings   // User configuration
//	    Store    *store.Store       // Tunnel registry file
//	    Registry *registry.Registry // Tunnel operations
//	    Journal  *journal.Journal   // Event history (nil when unavailable)
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a, err := app.New()
//
//	// Testing with custom dependencies
//	a, err := app.New(
//	    app.WithPaths(testPaths),
//	    app.WithRegistry(testRegistry),
//	)
//
// # Available Options
//
//	WithPaths(paths)       // Custom path layout
//	WithSettings(settings) // Custom user settings
//	WithRegistry(registry) // Custom registry
//	WithJournal(journal)   // Custom journal
package app
