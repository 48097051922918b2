package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration for invalid or inconsistent values.
//
// Struct tags cover enumerations and required fields; backend-specific
// requirements are checked explicitly because they depend on which
// backend is selected.
func Validate(cfg *Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("invalid configuration structure: %w", err)
		}

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, formatFieldError(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}

		return err
	}

	return validateBackend(&cfg.Storage)
}

// validateBackend enforces per-backend required fields.
func validateBackend(cfg *StorageConfig) error {
	switch cfg.Backend {
	case "fs":
		if cfg.FS.Path == "" {
			return errors.New("storage.fs.path is required for the fs backend")
		}
	case "s3":
		if cfg.S3.Bucket == "" {
			return errors.New("storage.s3.bucket is required for the s3 backend")
		}
		if cfg.S3.Region == "" {
			return errors.New("storage.s3.region is required for the s3 backend")
		}
	case "badger":
		if cfg.Badger.Path == "" && !cfg.Badger.InMemory {
			return errors.New("storage.badger.path is required unless in_memory is set")
		}
	}
	return nil
}

// formatFieldError turns a validator error into a readable message.
func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Namespace())
	field = strings.TrimPrefix(field, "config.")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
