// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the application configuration structure
// including the listen address, deployment environment, and the demo request
// targets, and honors the Azure Functions custom-handler port when present.
package config
