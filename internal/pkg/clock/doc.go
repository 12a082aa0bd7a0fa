// Package clock provides an injectable time source.
//
// Code that checks TTLs (one-time passcodes, TOTP windows) should depend on
// Clocker rather than calling time.Now directly, so tests can move time
// without sleeping.
package clock
