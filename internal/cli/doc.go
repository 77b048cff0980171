// Package cli provides the interactive vaccine scheduler REPL.
//
// It wires configuration, the database, the scheduling services and a
// read-eval-print loop. Commands are read one per line, split on whitespace
// and dispatched to methods on App. Every command runs as its own request
// with a deadline taken from the configuration.
//
// Key features:
//   - create_patient / create_caregiver, login_* and logout
//   - upload_availability and add_doses for caregivers
//   - search_caregiver_schedule, reserve and show_appointments
//
// The REPL is started via App.Run(ctx), which blocks until the user quits or
// the input ends. See App and runREPL for details.
package cli
