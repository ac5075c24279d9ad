package config

import (
	"fmt"
	"regexp"
)

// dynamicTokenPattern matches environment references left after expansion.
var dynamicTokenPattern = regexp.MustCompile(`\$\{[^}]+\}|\$[A-Z_][A-Z0-9_]*`)

// Validate checks the settings for correctness and returns every problem
// found as ValidationErrors.
func Validate(s *Settings) error {
	var errs []ValidationError

	if s.Indent < 1 || s.Indent > MaxIndent {
		errs = append(errs, ValidationError{
			Field:   "indent",
			Message: fmt.Sprintf("must be between 1 and %d", MaxIndent),
			Value:   s.Indent,
			Wrapped: ErrInvalidIndent,
		})
	}

	if !ValidFormat(s.Format) {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: "must be one of php, xml, yml, annotation",
			Value:   s.Format,
			Wrapped: ErrInvalidFormat,
		})
	}

	errs = append(errs, validateBundles(s.Bundles)...)
	errs = append(errs, validateDynamicTokens(s)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validateBundles(bundles []Bundle) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(bundles))
	for i, b := range bundles {
		field := fmt.Sprintf("bundles[%d]", i)
		if b.Name == "" {
			errs = append(errs, ValidationError{Field: field + ".name", Message: "required field is empty", Wrapped: ErrInvalidConfig})
		}
		if b.Path == "" {
			errs = append(errs, ValidationError{Field: field + ".path", Message: "required field is empty", Wrapped: ErrInvalidConfig})
		}
		if b.Namespace == "" {
			errs = append(errs, ValidationError{Field: field + ".namespace", Message: "required field is empty", Wrapped: ErrInvalidConfig})
		}
		if b.Name != "" && seen[b.Name] {
			errs = append(errs, ValidationError{Field: field + ".name", Message: "duplicate bundle", Value: b.Name, Wrapped: ErrInvalidConfig})
		}
		seen[b.Name] = true
	}
	return errs
}

func validateDynamicTokens(s *Settings) []ValidationError {
	var errs []ValidationError
	check := func(field, value string) {
		if tok := dynamicTokenPattern.FindString(value); tok != "" {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "contains an unset environment reference " + tok,
				Value:   value,
				Wrapped: ErrDynamicToken,
			})
		}
	}

	check("skeleton_dir", s.SkeletonDir)
	for i, root := range s.BundleRoots {
		check(fmt.Sprintf("bundle_roots[%d]", i), root)
	}
	for i, b := range s.Bundles {
		check(fmt.Sprintf("bundles[%d].path", i), b.Path)
	}
	return errs
}
