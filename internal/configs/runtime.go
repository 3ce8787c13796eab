package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/lucid/internal/utils"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix maps LUCID_* environment variables onto runtime keys.
	EnvPrefix = "LUCID"

	// StudioSettingsRelPath is searched for from the working directory
	// upwards, so a pipeline checkout carries its studio settings with it.
	StudioSettingsRelPath = ".lucid/settings.toml"

	RegistryFileName = "registry.toml"
)

// Runtime says where the stores live and who is calling. It is loaded once
// per command and passed explicitly.
type Runtime struct {
	Settings       string        `mapstructure:"settings"`
	Registry       string        `mapstructure:"registry"`
	Host           string        `mapstructure:"host"`
	User           string        `mapstructure:"user"`
	MachineProfile string        `mapstructure:"machine_profile"`
	UserConfig     string        `mapstructure:"user_config"`
	LockTimeout    time.Duration `mapstructure:"lock_timeout"`
	Verbose        bool          `mapstructure:"verbose"`
	Debug          bool          `mapstructure:"debug"`
}

// NewViper returns a viper instance reading LUCID_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// LoadRuntime applies built-in defaults for any value not set by
// environment or bound flags, then fills in paths derived from the OS.
func LoadRuntime(v *viper.Viper) (Runtime, error) {
	if v == nil {
		v = NewViper()
	}
	v.SetDefault("settings", "")
	v.SetDefault("registry", "")
	v.SetDefault("host", "")
	v.SetDefault("user", "")
	v.SetDefault("machine_profile", "")
	v.SetDefault("user_config", "")
	v.SetDefault("lock_timeout", "10s")
	v.SetDefault("verbose", false)
	v.SetDefault("debug", false)

	var rt Runtime
	if err := v.Unmarshal(&rt); err != nil {
		return Runtime{}, fmt.Errorf("reading runtime options: %w", err)
	}

	if err := rt.fillDefaults(); err != nil {
		return Runtime{}, err
	}
	return rt, nil
}

func (rt *Runtime) fillDefaults() error {
	configDir, err := userConfigDir()
	if err != nil {
		return err
	}

	if rt.Settings == "" {
		wd, err := os.Getwd()
		if err == nil {
			if found, ferr := utils.FindUpwards(wd, StudioSettingsRelPath); ferr == nil && found != "" {
				rt.Settings = found
			}
		}
	}
	if rt.Settings == "" {
		rt.Settings = filepath.Join(configDir, "settings.toml")
	}
	if rt.Registry == "" {
		rt.Registry = filepath.Join(filepath.Dir(rt.Settings), RegistryFileName)
	}
	if rt.MachineProfile == "" {
		rt.MachineProfile = filepath.Join(configDir, "machine.toml")
	}
	if rt.UserConfig == "" {
		rt.UserConfig = filepath.Join(configDir, "config.toml")
	}

	if rt.Host == "" {
		host, err := utils.GetHostname()
		if err != nil {
			return fmt.Errorf("error getting hostname: %w", err)
		}
		rt.Host = host
	}
	rt.Host = utils.NormalizeHost(rt.Host)

	if rt.User == "" {
		user, err := utils.GetUsername()
		if err != nil {
			return fmt.Errorf("error getting username: %w", err)
		}
		rt.User = user
	}

	if rt.LockTimeout <= 0 {
		rt.LockTimeout = 10 * time.Second
	}
	return nil
}

func userConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error getting config directory: %w", err)
	}
	return filepath.Join(dir, "lucid"), nil
}
