package config

import (
	"fmt"
)

// ValidateColorCode validates a terminal highlight color code.
//
// Accepted codes are the numeric SGR parameter lists bash understands:
// one or more digit runs separated by semicolons, e.g. "36" or "1;34".
// Anything else is a hard error; color configuration happens once in setup
// code and a bad code there is a programming mistake, not a runtime
// condition to degrade through.
func ValidateColorCode(code string) error {
	if code == "" {
		return fmt.Errorf("color code cannot be empty")
	}

	digits := 0
	for _, c := range code {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == ';':
			if digits == 0 {
				return fmt.Errorf("invalid color code %q: empty parameter", code)
			}
			digits = 0
		default:
			return fmt.Errorf("invalid color code %q: must contain only digits and semicolons", code)
		}
	}
	if digits == 0 {
		return fmt.Errorf("invalid color code %q: empty parameter", code)
	}
	return nil
}

// ValidatePrecision validates a float display precision.
func ValidatePrecision(prec int) error {
	if prec < 0 {
		return fmt.Errorf("precision cannot be negative, got %d", prec)
	}
	return nil
}

// ValidateMaxFrames validates a default trace depth.
func ValidateMaxFrames(frames int) error {
	if frames < 0 {
		return fmt.Errorf("max frames cannot be negative, got %d", frames)
	}
	return nil
}

// Validate checks a full configuration.
func Validate(cfg Config) error {
	// An empty color with NoColor set is fine; otherwise the code must
	// be well formed.
	if !cfg.NoColor && cfg.Color != "" {
		if err := ValidateColorCode(cfg.Color); err != nil {
			return err
		}
	}
	if err := ValidatePrecision(cfg.Precision); err != nil {
		return err
	}
	return ValidateMaxFrames(cfg.MaxFrames)
}
