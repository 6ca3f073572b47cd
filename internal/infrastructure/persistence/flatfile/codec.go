// Package flatfile implements the comma-separated student file used by the
// registry: one student per line, "<id>,<name>,<mark1>,<mark2>,<mark3>".
// Fields are not escaped.
package flatfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// FieldCount is the number of fields of a well-formed line.
const FieldCount = 5

const separator = ","

// FormatMark renders a mark in its shortest exact decimal form.
func FormatMark(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EncodeLine renders s as a line without the trailing newline.
func EncodeLine(s *student.Student) string {
	return strings.Join([]string{
		s.ID.String(),
		s.Name,
		FormatMark(s.Marks.Module1),
		FormatMark(s.Marks.Module2),
		FormatMark(s.Marks.Module3),
	}, separator)
}

// DecodeLine splits a line into a raw record.
// The line must have exactly FieldCount fields; a trailing "\r" is ignored.
func DecodeLine(line string) (roster.Record, error) {
	fields := strings.Split(strings.TrimSuffix(line, "\r"), separator)
	if len(fields) != FieldCount {
		return roster.Record{}, fmt.Errorf("expected %d fields, got %d", FieldCount, len(fields))
	}
	return roster.Record{
		ID:    fields[0],
		Name:  fields[1],
		Mark1: fields[2],
		Mark2: fields[3],
		Mark3: fields[4],
	}, nil
}

// Encode writes one line per student.
func Encode(w io.Writer, students []*student.Student) error {
	bw := bufio.NewWriter(w)
	for _, s := range students {
		if _, err := bw.WriteString(EncodeLine(s) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads lines from r. Malformed lines are collected in the dump, never
// returned as errors; only a read failure aborts decoding.
func Decode(r io.Reader) (*roster.Dump, error) {
	dump := &roster.Dump{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		DecodeInto(dump, lineNo, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return dump, nil
}

// DecodeInto decodes a single entry and appends it to dump as a record or a reject.
func DecodeInto(dump *roster.Dump, lineNo int, text string) {
	rec, err := DecodeLine(text)
	if err != nil {
		dump.Rejected = append(dump.Rejected, roster.RejectedLine{
			Line:   lineNo,
			Text:   text,
			Reason: err.Error(),
		})
		return
	}
	dump.Records = append(dump.Records, rec)
}
