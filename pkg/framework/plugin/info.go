// Package plugin holds plugin metadata shared by the LV2 bridge and the
// bundle generator.
package plugin

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/giannisalinetti/lv2go/pkg/lv2"
)

// Common plugin classes
const (
	ClassPlugin    = "lv2:Plugin"
	ClassAmplifier = "lv2:AmplifierPlugin"
)

// Info contains plugin metadata
type Info struct {
	URI     string // Unique plugin URI (e.g., "http://example.org/plugins/gain")
	Name    string // Display name
	Version string // "major.minor.micro"; LV2 only publishes minor and micro
	Vendor  string // Maintainer name
	License string // License URI
	Class   string // Plugin class (e.g., ClassAmplifier)
	Binary  string // Shared library base name without extension
}

// Validate checks that the metadata is complete enough to describe a plugin.
func (i Info) Validate() error {
	if i.URI == "" {
		return lv2.ErrInvalidInfo.New("plugin URI is empty")
	}
	u, err := url.Parse(i.URI)
	if err != nil {
		return lv2.ErrInvalidInfo.Wrap(err, "plugin URI %q", i.URI)
	}
	if !u.IsAbs() {
		return lv2.ErrInvalidInfo.New("plugin URI %q is not absolute", i.URI)
	}
	if i.Name == "" {
		return lv2.ErrInvalidInfo.New("plugin %s has no name", i.URI)
	}
	if i.Binary == "" {
		return lv2.ErrInvalidInfo.New("plugin %s has no binary name", i.URI)
	}
	if _, _, err := i.LV2Version(); err != nil {
		return err
	}
	return nil
}

// LV2Version returns the minor and micro version published in the bundle.
// An empty Version maps to 0.0.
func (i Info) LV2Version() (minor, micro int, err error) {
	if i.Version == "" {
		return 0, 0, nil
	}

	parts := strings.Split(i.Version, ".")
	if len(parts) != 3 {
		return 0, 0, lv2.ErrInvalidInfo.New("version %q is not major.minor.micro", i.Version)
	}

	nums := make([]int, 3)
	for j, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, 0, lv2.ErrInvalidInfo.New("version %q has invalid component %q", i.Version, p)
		}
		nums[j] = n
	}
	return nums[1], nums[2], nil
}

// ClassOrDefault returns the plugin class, falling back to ClassPlugin.
func (i Info) ClassOrDefault() string {
	if i.Class == "" {
		return ClassPlugin
	}
	return i.Class
}
