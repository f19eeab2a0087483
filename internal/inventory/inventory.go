// Package inventory describes the physical disks attached to the host.
package inventory

import "strings"

// Disk is one physical disk as reported by the OS inventory.
type Disk struct {
	Index         uint32
	Model         string // "Samsung SSD 970 EVO"
	InterfaceType string // "SCSI", "IDE", "USB"
}

// ByIndex keys disks by physical device index.
func ByIndex(disks []Disk) map[int]Disk {
	m := make(map[int]Disk, len(disks))
	for _, d := range disks {
		m[int(d.Index)] = d
	}
	return m
}

func clean(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}
