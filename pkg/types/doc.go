// Package types defines the Appointment entity, the Store interface,
// configuration, and standard errors for the apptbook scheduling system.
package types
