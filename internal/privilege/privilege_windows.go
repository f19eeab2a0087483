//go:build windows

package privilege

import "golang.org/x/sys/windows"

// isAdmin reports whether the caller's effective token has an enabled
// BUILTIN\Administrators membership. CheckTokenMembership only accepts an
// impersonation token, so the zero Token is passed to make it use the
// caller's own. Under UAC the group is deny-only until elevation.
func isAdmin() (bool, error) {
	adminSID, err := windows.CreateWellKnownSid(windows.WinBuiltinAdministratorsSid)
	if err != nil {
		return false, err
	}

	return windows.Token(0).IsMember(adminSID)
}
