package boo

import (
	"fmt"
	"log/slog"
	"path/filepath"
)

// Record describes one version change.
type Record struct {
	PluginName string `json:"plugin_name" yaml:"plugin_name"`
	OldVersion string `json:"old_version" yaml:"old_version"`
	NewVersion string `json:"new_version" yaml:"new_version"`
}

// Message returns the human readable summary used for commit messages.
func (r Record) Message() string {
	return fmt.Sprintf("%s has been updated from %s to version %s", r.PluginName, r.OldVersion, r.NewVersion)
}

// Outcome is the result of updating one plugin in a batch. Exactly one of
// Record and Err is meaningful.
type Outcome struct {
	Plugin Plugin
	Name   string
	Record *Record
	Err    error
}

// Engine applies increase/decrease deltas to plugin versions.
type Engine struct {
	codec     Codec
	fs        FileSystem
	mainFiles []string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithFileSystem sets the file access used for main files.
func WithFileSystem(fs FileSystem) EngineOption {
	return func(e *Engine) {
		e.fs = fs
	}
}

// WithMainFiles sets the main-file priority list used by ApplyAll.
func WithMainFiles(names []string) EngineOption {
	return func(e *Engine) {
		e.mainFiles = names
	}
}

// NewEngine returns an Engine using codec.
func NewEngine(codec Codec, opts ...EngineOption) *Engine {
	e := &Engine{
		codec:     codec,
		fs:        OSFileSystem{},
		mainFiles: DefaultMainFiles,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PluginVersion binds p to the engine's file system and codec.
func (e *Engine) PluginVersion(p Plugin) *PluginVersion {
	return NewPluginVersion(p, e.fs, e.codec)
}

// Delta returns increase minus decrease in integer form.
func (e *Engine) Delta(increase, decrease string) (int, error) {
	inc, err := e.codec.ToInt(increase)
	if err != nil {
		return 0, err
	}
	dec, err := e.codec.ToInt(decrease)
	if err != nil {
		return 0, err
	}
	return inc - dec, nil
}

// Plan computes the version change Apply would make without writing it.
func (e *Engine) Plan(pv *PluginVersion, increase, decrease string) (Record, error) {
	name := pv.Plugin().Name()

	old, err := pv.Current()
	if err != nil {
		return Record{}, err
	}
	current, err := e.codec.ToInt(old)
	if err != nil {
		return Record{}, pluginError(name, CodeInvalidVersion, err, "failed to parse declared version")
	}

	delta, err := e.Delta(increase, decrease)
	if err != nil {
		return Record{}, pluginError(name, CodeInvalidVersion, err, "invalid version delta")
	}

	next, err := e.codec.Add(current, delta)
	if err != nil {
		return Record{}, pluginError(name, CodeInvalidVersion, err, "failed to compute new version")
	}
	newVersion, err := e.codec.ToStr(next)
	if err != nil {
		return Record{}, pluginError(name, CodeInvalidVersion, err, "an error occurred while updating the version")
	}

	return Record{PluginName: name, OldVersion: old, NewVersion: newVersion}, nil
}

// Apply moves the plugin's version by increase minus decrease and writes it
// to the main file. Nothing is written when the new version is not
// positive.
func (e *Engine) Apply(pv *PluginVersion, increase, decrease string) (Record, error) {
	rec, err := e.Plan(pv, increase, decrease)
	if err != nil {
		return Record{}, err
	}
	if err := pv.Set(rec.NewVersion); err != nil {
		return Record{}, err
	}
	slog.Info("plugin version updated",
		"plugin", rec.PluginName, "old", rec.OldVersion, "new", rec.NewVersion)
	return rec, nil
}

// ApplyAll updates every directory in dirs independently and in order. A
// failing plugin is reported in its Outcome and does not stop the others;
// plugins already written stay written. With dryRun set nothing is written.
func (e *Engine) ApplyAll(dirs []string, increase, decrease string, dryRun bool) []Outcome {
	outcomes := make([]Outcome, 0, len(dirs))
	for _, dir := range dirs {
		out := Outcome{Name: filepath.Base(dir)}

		p, err := NewPlugin(dir, e.mainFiles)
		if err != nil {
			out.Err = err
			slog.Warn("plugin update failed", "plugin", out.Name, "error", out.Err)
			outcomes = append(outcomes, out)
			continue
		}
		out.Plugin = p

		pv := e.PluginVersion(p)
		var rec Record
		if dryRun {
			rec, err = e.Plan(pv, increase, decrease)
		} else {
			rec, err = e.Apply(pv, increase, decrease)
		}
		if err != nil {
			out.Err = err
			slog.Warn("plugin update failed", "plugin", out.Name, "error", err)
		} else {
			out.Record = &rec
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// Succeeded returns the records of the successful outcomes.
func Succeeded(outcomes []Outcome) []Record {
	var recs []Record
	for _, o := range outcomes {
		if o.Err == nil && o.Record != nil {
			recs = append(recs, *o.Record)
		}
	}
	return recs
}

// Failures counts the outcomes carrying an error.
func Failures(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
