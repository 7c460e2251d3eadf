package opts

import (
	"context"
	"os"
	"path/filepath"

	"github.com/walteh/strreplace/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
}

// LoadConfig loads the configured rule file. The default name is looked up
// in root, and a missing file there yields an empty config so rules can come
// from flags alone.
func (o *RootOpts) LoadConfig(ctx context.Context, root string) (*config.Config, error) {
	path := o.ConfigFile
	if path == "" || path == config.DefaultFileName {
		path = filepath.Join(root, config.DefaultFileName)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return &config.Config{}, nil
		}
	}

	cfg, err := config.LoadConfig(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
