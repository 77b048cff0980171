// Package services holds the scheduler's application services: the
// credential store, the vaccine inventory ledger, the availability calendar
// and the reservation coordinator.
//
// Services get a *sql.DB and a repomanager.RepositoryManager. Plain reads and
// single-statement writes use repositories bound to the pool; the reservation
// binds fresh repositories to each transaction attempt.
package services
