// Package mail provides email delivery over SMTP or an HTTP provider API,
// plus a retry decorator for transient failures.
package mail
