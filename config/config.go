/*
File    : cluefront/config/config.go
Package : config

Package config loads the YAML-backed seed values and OS-name aliases
layered on top of the directive environment: a project can ship a
cluefront.yaml defining default @define values (so a build doesn't need
a long --define list on every invocation) and aliasing Go's
runtime.GOOS spelling onto the names Clue's @ifos directive expects
("darwin" -> "macos").

Loads a small declarative table once at startup and exposes it through
a typed accessor, decoded with gopkg.in/yaml.v3.
*/
package config

import (
	"os"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

// Defaults is the decoded shape of a cluefront.yaml file.
type Defaults struct {
	Values    map[string]string `yaml:"values"`
	OSAliases map[string]string `yaml:"os_aliases"`
}

// defaultOSAliases covers the one spelling mismatch relevant to this
// module: Go's runtime.GOOS reports "darwin", Clue source written for
// @ifos comparisons expects "macos".
var defaultOSAliases = map[string]string{
	"darwin": "macos",
}

// Load reads and decodes a YAML config file at path. A missing file is
// not an error — callers get an empty Defaults with the built-in OS
// alias table, since a project with no config file is the common case.
func Load(path string) (Defaults, error) {
	d := Defaults{OSAliases: cloneAliases()}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return Defaults{}, errors.Annotatef(err, "cannot read config %q", path)
	}
	var parsed Defaults
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return Defaults{}, errors.Annotatef(err, "cannot parse config %q", path)
	}
	if parsed.Values != nil {
		d.Values = parsed.Values
	}
	for os, alias := range parsed.OSAliases {
		d.OSAliases[os] = alias
	}
	return d, nil
}

func cloneAliases() map[string]string {
	m := make(map[string]string, len(defaultOSAliases))
	for k, v := range defaultOSAliases {
		m[k] = v
	}
	return m
}

// CanonicalOS resolves goos (normally runtime.GOOS) through the alias
// table, falling back to goos itself when no alias applies.
func (d Defaults) CanonicalOS(goos string) string {
	if alias, ok := d.OSAliases[goos]; ok {
		return alias
	}
	return goos
}
