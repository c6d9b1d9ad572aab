package tui

import "github.com/pkg/errors"

var (
	// ErrUsage marks programming errors of the caller: starting something
	// twice, impossible dimensions, invalid options. Never retried.
	ErrUsage = errors.New("usage error")

	// ErrProtocol marks malformed terminal data: an escape sequence the
	// renderer does not understand or an input report it cannot decode.
	ErrProtocol = errors.New("protocol error")

	// ErrInvalidEscape is returned by AddStr for unsupported escape sequences
	ErrInvalidEscape = errors.Wrap(ErrProtocol, "invalid escape sequence")

	// ErrIndexOutOfRange is returned by AnsiString.Index
	ErrIndexOutOfRange = errors.New("index out of range")
)

func usageError(format string, args ...any) error {
	return errors.Wrapf(ErrUsage, format, args...)
}

func protocolError(format string, args ...any) error {
	return errors.Wrapf(ErrProtocol, format, args...)
}

// IsUsageError reports whether err was caused by invalid API usage
func IsUsageError(err error) bool {
	return errors.Is(err, ErrUsage)
}

// IsProtocolError reports whether err was caused by malformed terminal data
func IsProtocolError(err error) bool {
	return errors.Is(err, ErrProtocol)
}
