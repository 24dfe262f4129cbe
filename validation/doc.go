// Package validation checks configuration structs with go-playground
// validator tags and reports failures by their config key.
//
//	type ServiceConfig struct {
//	    URL string `mapstructure:"url" validate:"required,http_url"`
//	}
//	if err := validation.Struct(cfg); err != nil { ... }
package validation
