// Package config loads and validates courtside configuration.
//
// Configuration is a YAML file with ${VAR} environment expansion, loaded in
// three layers: Load (parse), LoadWithDefaults (fill optional fields), and
// LoadAndValidate (reject incomplete configs). Secrets such as API keys are
// supplied through the environment, never committed in the file.
package config
