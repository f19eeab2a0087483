package volume

import "strings"

// splitDrive splits "Z:\dir\file" into "Z:" and "dir\file". ok is false
// unless path starts with a letter and a colon followed by more characters.
func splitDrive(path string) (drive, rest string, ok bool) {
	if len(path) <= 2 || path[1] != ':' || !IsLetter(path[0]) {
		return "", "", false
	}
	return path[:2], strings.TrimLeft(path[2:], `\/`), true
}

// joinUNC appends rest to a remote name such as \\server\share.
func joinUNC(remote, rest string) string {
	remote = strings.TrimRight(strings.TrimSpace(remote), `\`)
	if rest == "" {
		return remote
	}
	return remote + `\` + strings.ReplaceAll(rest, "/", `\`)
}

// UNCPath converts a path on a mapped network drive to its UNC form. Any
// failure returns path unchanged.
func UNCPath(path string) string {
	drive, rest, ok := splitDrive(path)
	if !ok {
		return path
	}

	remote, err := remoteName(drive)
	if err != nil || remote == "" {
		return path
	}

	return joinUNC(remote, rest)
}
