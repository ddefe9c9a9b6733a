package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidSettings is returned when loaded settings fail validation
var ErrInvalidSettings = errors.New("invalid settings")

// EnvPrefix is the prefix of environment variables overriding settings
const EnvPrefix = "EDMOAS"

// Settings controls how paths are named and tagged during conversion
type Settings struct {
	// TagDepth bounds the number of dotted components in generated tag names
	TagDepth int `mapstructure:"tag_depth"`

	EnableAliasForTypeCastSegments  bool `mapstructure:"enable_alias_for_type_cast_segments"`
	EnableAliasForOperationSegments bool `mapstructure:"enable_alias_for_operation_segments"`

	// NamespacePrefixToStripForInMethodPaths is removed from bound operation
	// segments, compared case-insensitively
	NamespacePrefixToStripForInMethodPaths string `mapstructure:"namespace_prefix_to_strip_for_in_method_paths"`

	EnableOperationID bool `mapstructure:"enable_operation_id"`

	EnableDerivedTypesReferencesForRequestBody bool `mapstructure:"enable_derived_types_references_for_request_body"`
}

// Default returns the settings used when nothing is configured
func Default() *Settings {
	return &Settings{
		TagDepth:          4,
		EnableOperationID: true,
	}
}

// Load reads settings from path, which may be empty, and applies EDMOAS_*
// environment overrides on top of the defaults
func Load(path string) (*Settings, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("tag_depth", def.TagDepth)
	v.SetDefault("enable_alias_for_type_cast_segments", def.EnableAliasForTypeCastSegments)
	v.SetDefault("enable_alias_for_operation_segments", def.EnableAliasForOperationSegments)
	v.SetDefault("namespace_prefix_to_strip_for_in_method_paths", def.NamespacePrefixToStripForInMethodPaths)
	v.SetDefault("enable_operation_id", def.EnableOperationID)
	v.SetDefault("enable_derived_types_references_for_request_body", def.EnableDerivedTypesReferencesForRequestBody)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Validate checks the settings for values the conversion cannot work with
func (s *Settings) Validate() error {
	if s.TagDepth < 1 {
		return fmt.Errorf("%w: tag_depth must be at least 1, got %d", ErrInvalidSettings, s.TagDepth)
	}
	if strings.TrimSpace(s.NamespacePrefixToStripForInMethodPaths) != s.NamespacePrefixToStripForInMethodPaths {
		return fmt.Errorf("%w: namespace_prefix_to_strip_for_in_method_paths has surrounding whitespace", ErrInvalidSettings)
	}
	return nil
}
