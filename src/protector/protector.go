//go:build !openbsd

package protector

// Protect is a no-op on platforms without pledge
func Protect() {}
