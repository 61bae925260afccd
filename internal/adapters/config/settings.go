package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/buildsrc/internal/core/domain"
	"go.trai.ch/buildsrc/internal/core/ports"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes environment overrides, e.g. BUILDSRC_SDK_DIR.
const EnvPrefix = "BUILDSRC"

var _ ports.SettingsLoader = (*SettingsLoader)(nil)

// SettingsLoader resolves settings from defaults, an optional settings file and the environment.
type SettingsLoader struct{}

// NewSettingsLoader creates a new SettingsLoader.
func NewSettingsLoader() *SettingsLoader {
	return &SettingsLoader{}
}

// Load returns the settings for rootDir. Relative paths are resolved against rootDir.
func (l *SettingsLoader) Load(rootDir string) (domain.Settings, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, "failed to get absolute path of root"), "root", rootDir)
	}

	v := viper.New()
	v.SetDefault("catalog", domain.CatalogFileName)
	v.SetDefault("dependencies_dir", domain.DependenciesDirName)
	v.SetDefault("sdk_dir", domain.SDKDirName)
	v.SetDefault("lock_file", filepath.Join(domain.StateDirName, domain.LockFileName))
	v.SetDefault("toolchain.group", "org.jetbrains.kotlin")
	v.SetDefault("toolchain.prefix", "kotlin-")
	v.SetDefault("toolchain.version_key", "kotlinVersion")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(root, domain.SettingsFileName)
	if _, statErr := os.Stat(path); statErr == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return domain.Settings{}, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", path)
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return domain.Settings{}, zerr.With(errors.Join(domain.ErrConfigReadFailed, statErr), "path", path)
	}

	return domain.Settings{
		Layout: domain.Layout{
			RootDir:         root,
			DependenciesDir: under(root, v.GetString("dependencies_dir")),
			SDKDir:          under(root, v.GetString("sdk_dir")),
		},
		CatalogPath: under(root, v.GetString("catalog")),
		LockPath:    under(root, v.GetString("lock_file")),
		Toolchain: domain.Toolchain{
			Group:          v.GetString("toolchain.group"),
			ArtifactPrefix: v.GetString("toolchain.prefix"),
			VersionKey:     v.GetString("toolchain.version_key"),
		},
	}, nil
}

func under(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
