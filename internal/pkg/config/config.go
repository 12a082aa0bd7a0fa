package config

import (
	"io"
	"time"
)

// Config retrieves typed configuration values by dotted key.
//
// Implementations should tolerate missing keys and conversion failures by
// returning zero values; callers that require a value must validate it.
type Config interface {
	io.Closer

	// GetBool retrieves the value for key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value for key as a string.
	GetString(key string) string

	// GetInt retrieves the value for key as an int.
	GetInt(key string) int

	// GetInt32 retrieves the value for key as an int32.
	GetInt32(key string) int32

	// GetInt64 retrieves the value for key as an int64.
	GetInt64(key string) int64

	// GetUint retrieves the value for key as a uint.
	GetUint(key string) uint

	// GetUint16 retrieves the value for key as a uint16.
	GetUint16(key string) uint16

	// GetFloat64 retrieves the value for key as a float64.
	GetFloat64(key string) float64

	// GetSecond interprets the integer value for key as seconds.
	GetSecond(key string) time.Duration

	// GetMinute interprets the integer value for key as minutes.
	GetMinute(key string) time.Duration

	// GetHour interprets the integer value for key as hours.
	GetHour(key string) time.Duration

	// GetBinary decodes the base64-encoded value for key.
	GetBinary(key string) []byte

	// GetArray splits the comma-separated value for key.
	GetArray(key string) []string
}
