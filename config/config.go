// SPDX-License-Identifier: GPL-2.0-or-later

// Package config holds the settings of the q2cm tool.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	FileName  = "q2cm.json"
	EnvPrefix = "Q2CM"
)

// Load sets default values and reads q2cm.json from configDir if there
// is one. Environment variables named Q2CM_<KEY> override both.
func Load(configDir string) error {
	viper.SetDefault("basedir", ".")
	viper.SetDefault("game", "baseq2")
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("noAreas", false)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}
	return nil
}

// Set overrides a value, e.g. from a command line flag.
func Set(key string, value interface{}) {
	viper.Set(key, value)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
