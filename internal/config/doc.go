// Package config manages user-level settings stored at ~/.expresskit/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the templates directory override used by template resolution.
package config