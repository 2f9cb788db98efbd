package boo

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"
)

// DefaultMainFiles is the priority list of main-file names looked up in a
// plugin directory.
var DefaultMainFiles = []string{"init.php", "index.php"}

// pluginNamePattern matches the "Plugin Name:" header line.
var pluginNamePattern = regexp.MustCompile(`(?m)^[ \t/*#@]*Plugin Name:[ \t]*(\S.*?)[ \t\r]*$`)

// Plugin identifies a plugin by its directory and main file.
type Plugin struct {
	// Dir is the absolute plugin directory.
	Dir string
	// MainFile is the base name of the main file inside Dir.
	MainFile string
	// Title is the value of the "Plugin Name:" header.
	Title string
}

// Name returns the directory name of the plugin.
func (p Plugin) Name() string {
	return filepath.Base(p.Dir)
}

// MainFilePath returns the absolute path of the main file.
func (p Plugin) MainFilePath() string {
	return filepath.Join(p.Dir, p.MainFile)
}

// NewPlugin validates dir as a plugin. The first existing entry of mainFiles
// is its main file, which must carry a "Plugin Name:" header and a version
// declaration. A nil mainFiles uses DefaultMainFiles.
func NewPlugin(dir string, mainFiles []string) (Plugin, error) {
	if len(mainFiles) == 0 {
		mainFiles = DefaultMainFiles
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return Plugin{}, pluginError(filepath.Base(dir), CodeInvalidDirectory, err, "failed to resolve %q", dir)
	}
	name := filepath.Base(abs)

	if verr := validateDir(abs); verr != nil {
		verr.Plugin = name
		return Plugin{}, verr
	}

	mainFile, err := findMainFile(abs, mainFiles)
	if err != nil {
		return Plugin{}, err
	}

	data, err := os.ReadFile(filepath.Join(abs, mainFile))
	if err != nil {
		return Plugin{}, &Error{
			Code:    CodeIO,
			Plugin:  name,
			Message: "failed to read main file " + mainFile,
			Cause:   err,
		}
	}

	m := pluginNamePattern.FindSubmatch(data)
	if m == nil {
		return Plugin{}, &Error{Code: CodeSearchNotFound, Plugin: name, Message: "plugin name header not found in " + mainFile}
	}
	if !declarationPattern.Match(data) {
		return Plugin{}, &Error{Code: CodeSearchNotFound, Plugin: name, Message: "version declaration not found in " + mainFile}
	}

	return Plugin{Dir: abs, MainFile: mainFile, Title: string(m[1])}, nil
}

func validateDir(path string) *Error {
	info, err := os.Stat(path)
	if err != nil {
		return wrapError(CodeInvalidDirectory, err, "%q is not a valid directory", path)
	}
	if !info.IsDir() {
		return newError(CodeInvalidDirectory, "%q is not a valid directory", path)
	}
	return nil
}

func findMainFile(dir string, mainFiles []string) (string, error) {
	for _, name := range mainFiles {
		info, err := os.Stat(filepath.Join(dir, name))
		if err == nil && info.Mode().IsRegular() {
			return name, nil
		}
	}
	return "", &Error{
		Code:    CodeSearchNotFound,
		Plugin:  filepath.Base(dir),
		Message: "main file does not exist",
	}
}

// ListDirs returns the sorted absolute paths of the sub-directories of
// root. Hidden entries are skipped.
func ListDirs(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, wrapError(CodeInvalidDirectory, err, "failed to resolve %q", root)
	}
	if verr := validateDir(abs); verr != nil {
		return nil, verr
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, wrapError(CodeIO, err, "failed to list %q", abs)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dirs = append(dirs, filepath.Join(abs, e.Name()))
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Discover returns the valid plugins under root, sorted by directory.
// Directories that are not plugins are skipped.
func Discover(root string, mainFiles []string) ([]Plugin, error) {
	dirs, err := ListDirs(root)
	if err != nil {
		return nil, err
	}

	var plugins []Plugin
	for _, dir := range dirs {
		p, err := NewPlugin(dir, mainFiles)
		if err != nil {
			slog.Debug("skipping directory", "path", dir, "error", err)
			continue
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// Filter narrows dirs by base name. With include set only the listed names
// are kept; exclude then drops its names. Trailing slashes in the lists are
// ignored.
func Filter(dirs, include, exclude []string) []string {
	include = trimNames(include)
	exclude = trimNames(exclude)

	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		name := filepath.Base(d)
		if len(include) > 0 && !slices.Contains(include, name) {
			continue
		}
		if slices.Contains(exclude, name) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func trimNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, strings.Trim(n, "/"))
	}
	return out
}
