// Package output renders report sections as text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/hostprobe/pkg/report"
)

var red, dim, reset string

func init() {
	SetColor(supportscolor.Stdout().SupportsColor)
}

// SetColor turns ANSI colors on or off.
func SetColor(enabled bool) {
	if enabled {
		red, dim, reset = "\033[31m", "\033[2m", "\033[0m"
		return
	}
	red, dim, reset = "", "", ""
}

// Banner is printed before the text report.
const Banner = `
  _                  _                        _
 | |__    ___   ___ | |_  _ __   _ __   ___  | |__    ___
 | '_ \  / _ \ / __|| __|| '_ \ | '__| / _ \ | '_ \  / _ \
 | | | || (_) |\__ \| |_ | |_) || |   | (_) || |_) ||  __/
 |_| |_| \___/ |___/ \__|| .__/ |_|    \___/ |_.__/  \___|
                         |_|
`

// PrintBanner writes the banner.
func PrintBanner(w io.Writer) {
	_, _ = fmt.Fprint(w, Banner+"\n")
}

// PrintSection writes a section as "label: value" lines. Skipped sections
// print nothing; failed sections print a marker and the reason.
func PrintSection(w io.Writer, s report.Section) {
	switch s.Status {
	case report.StatusSkip:
		return
	case report.StatusFail:
		_, _ = fmt.Fprintf(w, "%s[FAIL]%s %s\n", red, reset, s.Name)
		for _, f := range s.Facts {
			_, _ = fmt.Fprintf(w, "      %s\n", formatFact(f))
		}
		_, _ = fmt.Fprintf(w, "      %s\n", s.Reason)
		return
	}

	for _, f := range s.Facts {
		_, _ = fmt.Fprintln(w, formatFact(f))
	}
	_, _ = fmt.Fprintln(w)
}

func formatFact(f report.Fact) string {
	if f.Label == "" {
		return f.Value
	}
	return formatLabel(f.Label + ": " + f.Value)
}

// formatLabel dims the text up to and including the first colon.
func formatLabel(s string) string {
	idx := strings.Index(s, ":")
	if idx == -1 || dim == "" {
		return s
	}
	return dim + s[:idx+1] + reset + s[idx+1:]
}

type jsonSection struct {
	Name   string        `json:"name"`
	Status report.Status `json:"status"`
	Facts  []report.Fact `json:"facts"`
	Reason string        `json:"reason,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// ToJSON converts a section to its JSON shape, dropping separator lines.
func ToJSON(s report.Section) any {
	js := jsonSection{
		Name:   s.Name,
		Status: s.Status,
		Facts:  []report.Fact{},
		Reason: s.Reason,
	}
	for _, f := range s.Facts {
		if f.Label == "" && f.Value == "" {
			continue
		}
		js.Facts = append(js.Facts, f)
	}
	if s.Err != nil {
		js.Error = s.Err.Error()
	}
	return js
}

// WriteJSON writes all sections as one indented JSON document.
func WriteJSON(w io.Writer, sections []report.Section) error {
	doc := struct {
		Sections []any `json:"sections"`
	}{Sections: make([]any, 0, len(sections))}
	for _, s := range sections {
		doc.Sections = append(doc.Sections, ToJSON(s))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
