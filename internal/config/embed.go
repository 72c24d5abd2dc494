package config

import (
	_ "embed"
	"sync"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     File
	embeddedConfigErr  error
)

// DefaultYAML returns a copy of the embedded default config YAML bytes.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses and returns the embedded default configuration. The result
// is shared; callers must not modify its maps or slices.
func Default() (File, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = errors.New("embedded default config is empty")
			return
		}
		if err := yaml.Unmarshal(embeddedDefaultConfig, &embeddedConfig); err != nil {
			embeddedConfigErr = errors.Wrap(err, "decode embedded default config")
			return
		}
		if embeddedConfig.UI.Themes == nil {
			embeddedConfig.UI.Themes = map[string]ThemeConfig{}
		}
	})
	return embeddedConfig, embeddedConfigErr
}
