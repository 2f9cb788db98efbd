package boo

import (
	"log/slog"
)

// PluginVersion reads and writes the version declared in a plugin's main
// file.
type PluginVersion struct {
	plugin  Plugin
	fs      FileSystem
	locator Locator
	codec   Codec
}

// NewPluginVersion binds p to fs. A nil fs uses OSFileSystem.
func NewPluginVersion(p Plugin, fs FileSystem, codec Codec) *PluginVersion {
	if fs == nil {
		fs = OSFileSystem{}
	}
	return &PluginVersion{
		plugin:  p,
		fs:      fs,
		locator: NewLocator(codec),
		codec:   codec,
	}
}

// Plugin returns the bound plugin.
func (v *PluginVersion) Plugin() Plugin {
	return v.plugin
}

func (v *PluginVersion) content() (string, error) {
	path := v.plugin.MainFilePath()
	data, err := v.fs.ReadFile(path)
	if err != nil {
		return "", pluginError(v.plugin.Name(), CodeIO, err, "an error occurred while reading the file %s", path)
	}
	return string(data), nil
}

// Current returns the declared version as written in the main file.
func (v *PluginVersion) Current() (string, error) {
	content, err := v.content()
	if err != nil {
		return "", err
	}
	if n := v.locator.Count(content); n > 1 {
		slog.Warn("multiple version declarations found, using the first",
			"plugin", v.plugin.Name(), "count", n)
	}
	version, err := v.locator.Find(content)
	if err != nil {
		return "", pluginError(v.plugin.Name(), CodeSearchNotFound, err, "failed to read version from %s", v.plugin.MainFile)
	}
	return version, nil
}

// CurrentInt returns the declared version in its integer encoding.
func (v *PluginVersion) CurrentInt() (int, error) {
	version, err := v.Current()
	if err != nil {
		return 0, err
	}
	n, err := v.codec.ToInt(version)
	if err != nil {
		return 0, pluginError(v.plugin.Name(), CodeInvalidVersion, err, "failed to parse declared version")
	}
	return n, nil
}

// Set rewrites every version declaration in the main file to newVersion.
func (v *PluginVersion) Set(newVersion string) error {
	content, err := v.content()
	if err != nil {
		return err
	}
	updated, err := v.locator.Replace(content, newVersion)
	if err != nil {
		return pluginError(v.plugin.Name(), CodeInvalidVersion, err, "failed to set version %s", newVersion)
	}

	path := v.plugin.MainFilePath()
	if err := v.fs.WriteFile(path, []byte(updated)); err != nil {
		return pluginError(v.plugin.Name(), CodeIO, err, "an error occurred while writing the file %s", path)
	}
	slog.Debug("version written", "plugin", v.plugin.Name(), "path", path, "version", newVersion)
	return nil
}
