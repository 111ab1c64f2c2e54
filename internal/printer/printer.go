package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/brandon/mailctl/internal/cache"
	"github.com/brandon/mailctl/pkg/types"
)

// Printer renders command results. Log lines go to a separate stream so
// results stay pipeable.
type Printer interface {
	Print(msg string) error
	Log(msg string) error
	Folders(folders []types.Folder) error
	Envelopes(envelopes []types.Envelope) error
	Changes(changes []cache.Change) error
}

// Writer is a plain text Printer
type Writer struct {
	out io.Writer
	log io.Writer
}

// New creates a printer writing results to out and logs to log
func New(out, log io.Writer) *Writer {
	return &Writer{out: out, log: log}
}

// Print writes a result line
func (w *Writer) Print(msg string) error {
	_, err := fmt.Fprintln(w.out, msg)
	return err
}

// Log writes a progress line
func (w *Writer) Log(msg string) error {
	_, err := fmt.Fprintln(w.log, msg)
	return err
}

// Folders renders folders as a table
func (w *Writer) Folders(folders []types.Folder) error {
	table := newTable(w.out, []string{"NAME", "DESC"})
	for _, f := range folders {
		table.Append([]string{f.Name, f.Desc})
	}
	table.Render()
	return nil
}

// Envelopes renders envelopes as a table
func (w *Writer) Envelopes(envelopes []types.Envelope) error {
	table := newTable(w.out, []string{"ID", "FLAGS", "SUBJECT", "FROM", "DATE"})
	for _, e := range envelopes {
		from := e.SenderName
		if from == "" {
			from = e.SenderEmail
		}
		date := ""
		if !e.Date.IsZero() {
			date = e.Date.Format("2006-01-02 15:04")
		}
		table.Append([]string{e.ID, flagsColumn(e), e.Subject, from, date})
	}
	table.Render()
	return nil
}

// Changes renders sync journal entries as a table
func (w *Writer) Changes(changes []cache.Change) error {
	table := newTable(w.out, []string{"#", "FOLDER", "ACTION", "MESSAGE", "FLAGS", "AT"})
	for _, c := range changes {
		flags := make([]string, len(c.Flags))
		for i, f := range c.Flags {
			flags[i] = string(f)
		}
		table.Append([]string{
			strconv.FormatInt(c.ID, 10),
			c.Folder,
			string(c.Action),
			c.MessageID,
			strings.Join(flags, ","),
			c.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	table.Render()
	return nil
}

func newTable(out io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetHeaderLine(false)
	return table
}

// flagsColumn abbreviates the flags of an envelope: * unseen, ! flagged,
// R answered
func flagsColumn(e types.Envelope) string {
	var b strings.Builder
	if !e.HasFlag(types.FlagSeen) {
		b.WriteString("*")
	}
	if e.HasFlag(types.FlagFlagged) {
		b.WriteString("!")
	}
	if e.HasFlag(types.FlagAnswered) {
		b.WriteString("R")
	}
	return b.String()
}
