package intercept

import "errors"

var (
	// ErrUnknownAppender indicates that no appender is registered under the requested name.
	ErrUnknownAppender = errors.New("unknown appender")
	// ErrHandleExists indicates that a management handle is already registered under the name.
	ErrHandleExists = errors.New("management handle already registered")
	// ErrHandleNotFound indicates that no management handle is registered under the name.
	ErrHandleNotFound = errors.New("management handle not found")
	// ErrDriverRegistered indicates that the intercepted driver is registered by another engine or package.
	ErrDriverRegistered = errors.New("intercepted driver registered elsewhere")
)
