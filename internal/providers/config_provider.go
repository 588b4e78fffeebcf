package providers

import (
	"fmt"
	"path/filepath"
	"sid/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "SID_LOG_LEVEL")
	viper.BindEnv("store.path", "SID_STORE_PATH")
	viper.BindEnv("importer.interval", "SID_IMPORT_INTERVAL")
	viper.BindEnv("importer.fetchTimeout", "SID_FETCH_TIMEOUT")
	viper.BindEnv("importer.archiveDir", "SID_ARCHIVE_DIR")
	viper.BindEnv("cache.enabled", "SID_CACHE_ENABLED")
	viper.BindEnv("cache.size", "SID_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "SimpleImportDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
