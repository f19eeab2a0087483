package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/nhdewitt/diskdetect/internal/config"
	"golang.org/x/term"
)

// Write renders r to w in format. FormatAuto picks the table for a
// terminal and JSON otherwise.
func Write(w io.Writer, r Report, format config.Format) error {
	if format == config.FormatAuto {
		format = config.FormatJSON
		if isTerminal(w) {
			format = config.FormatTable
		}
	}

	switch format {
	case config.FormatJSON:
		return WriteJSON(w, r)
	case config.FormatTable:
		return WriteTable(w, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func WriteTable(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "DRIVE\tTYPE\tDEVICE\tHARDWARE\tLABEL\tFS\tSIZE\tUSED\tMODEL")
	for _, d := range r.Drives {
		device := "-"
		if d.DeviceIndex >= 0 {
			device = strconv.Itoa(d.DeviceIndex)
		}
		label := d.Label
		if d.UNCPath != "" {
			label = d.UNCPath
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.1f%%\t%s\n",
			d.Name, d.DriveType, device, d.HardwareType, dash(label), dash(d.Filesystem),
			humanBytes(d.Total), d.UsedPct, dash(d.Model))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d drive(s) on %s, strategy %s, elevated %t\n",
		len(r.Drives), r.Hostname, r.Strategy, r.Elevated)
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
