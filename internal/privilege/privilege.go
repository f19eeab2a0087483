// Package privilege reports whether the process runs elevated.
package privilege

// IsElevated reports whether the current process holds administrator
// rights. Errors while inspecting the token count as not elevated.
func IsElevated() bool {
	ok, err := isAdmin()
	return err == nil && ok
}
