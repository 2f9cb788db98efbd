// Package report renders plugin versions and update outcomes as tables,
// JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	boo "github.com/bcomnes/boo/pkg"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	oldStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// VersionRow is one line of the versions listing.
type VersionRow struct {
	PluginName string `json:"plugin_name" yaml:"plugin_name"`
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	IntVersion int    `json:"int_version,omitempty" yaml:"int_version,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// UpdateRow is one line of an update report.
type UpdateRow struct {
	PluginName string `json:"plugin_name" yaml:"plugin_name"`
	OldVersion string `json:"old_version,omitempty" yaml:"old_version,omitempty"`
	NewVersion string `json:"new_version,omitempty" yaml:"new_version,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// CollectVersions reads the current version of every plugin. Read failures
// are reported in the row instead of aborting the listing.
func CollectVersions(pvs []*boo.PluginVersion) []VersionRow {
	rows := make([]VersionRow, 0, len(pvs))
	for _, pv := range pvs {
		p := pv.Plugin()
		row := VersionRow{PluginName: p.Name(), Title: p.Title}
		version, err := pv.Current()
		if err != nil {
			row.Error = err.Error()
			rows = append(rows, row)
			continue
		}
		row.Version = version
		n, err := pv.CurrentInt()
		if err != nil {
			row.Error = err.Error()
		} else {
			row.IntVersion = n
		}
		rows = append(rows, row)
	}
	return rows
}

// SortVersionRows orders rows by "name" or by "version". Version order is
// semantic; rows whose version is not valid sort last by name.
func SortVersionRows(rows []VersionRow, by string) error {
	switch by {
	case "", "name":
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].PluginName < rows[j].PluginName
		})
	case "version":
		sort.SliceStable(rows, func(i, j int) bool {
			vi, vj := "v"+rows[i].Version, "v"+rows[j].Version
			okI, okJ := semver.IsValid(vi), semver.IsValid(vj)
			switch {
			case okI && okJ:
				if c := semver.Compare(vi, vj); c != 0 {
					return c < 0
				}
				return rows[i].PluginName < rows[j].PluginName
			case okI != okJ:
				return okI
			default:
				return rows[i].PluginName < rows[j].PluginName
			}
		})
	default:
		return fmt.Errorf("unsupported sort key %q (supported values: name, version)", by)
	}
	return nil
}

// UpdateRows converts batch outcomes into report rows.
func UpdateRows(outcomes []boo.Outcome) []UpdateRow {
	rows := make([]UpdateRow, 0, len(outcomes))
	for _, o := range outcomes {
		row := UpdateRow{PluginName: o.Name}
		switch {
		case o.Err != nil:
			row.Error = o.Err.Error()
		case o.Record != nil:
			row.OldVersion = o.Record.OldVersion
			row.NewVersion = o.Record.NewVersion
		}
		rows = append(rows, row)
	}
	return rows
}

// RecordRows converts records into report rows.
func RecordRows(recs ...boo.Record) []UpdateRow {
	rows := make([]UpdateRow, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, UpdateRow{PluginName: r.PluginName, OldVersion: r.OldVersion, NewVersion: r.NewVersion})
	}
	return rows
}

// Message renders the colored update message of a row.
func (r UpdateRow) Message() string {
	if r.Error != "" {
		return errorStyle.Render("error: " + r.Error)
	}
	return fmt.Sprintf("%s has been updated from %s to version %s",
		nameStyle.Render(r.PluginName), oldStyle.Render(r.OldVersion), nameStyle.Render(r.NewVersion))
}

// VersionsTable renders the versions listing.
func VersionsTable(rows []VersionRow, style string) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		intVersion := strconv.Itoa(r.IntVersion)
		if r.Error != "" {
			intVersion = errorStyle.Render(r.Error)
		}
		data = append(data, []string{nameStyle.Render(r.PluginName), nameStyle.Render(r.Version), intVersion})
	}
	return newTable(style, []string{"Plugin Name", "Plugin DN Version", "Plugin Version"}, data)
}

// UpdatesTable renders an update report.
func UpdatesTable(rows []UpdateRow, style string) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{nameStyle.Render(r.PluginName), r.Message()})
	}
	return newTable(style, []string{"Plugin Name", "Info"}, data)
}

func newTable(style string, headers []string, rows [][]string) string {
	t := table.New().
		Border(Border(style)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if style == "markdown" {
		t = t.BorderTop(false).BorderBottom(false)
	}
	return t.Render()
}

// Border maps a style name to a lipgloss border. Unknown names use the
// normal border.
func Border(style string) lipgloss.Border {
	switch style {
	case "rounded":
		return lipgloss.RoundedBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "ascii":
		return lipgloss.ASCIIBorder()
	case "markdown":
		return lipgloss.MarkdownBorder()
	case "hidden", "plain":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.NormalBorder()
	}
}

// Write serializes v to w in format. For the table format tableFn renders
// the output.
func Write(w io.Writer, format string, v any, tableFn func() string) error {
	switch format {
	case "", FormatTable:
		_, err := fmt.Fprintln(w, tableFn())
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q (supported values: table, json, yaml)", format)
	}
}
