// Package ports defines the contracts between the core and its adapters:
// repositories and the unit of work for the Postgres store, the Cache used by
// the coherency layer and the Notifier used by the notification dispatcher.
//
// Implementations live under internal/adapters and are wired in cmd.
package ports
