package lint

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// HasOption reports whether a non-empty value is set for key.
func HasOption(opts map[string]any, key string) bool {
	v, ok := opts[key]
	if !ok || v == nil {
		return false
	}
	switch s := v.(type) {
	case string:
		return s != ""
	case []string:
		return len(s) > 0
	case []any:
		return len(s) > 0
	}
	return true
}

// DecodeOptions decodes a rule option map into a struct tagged with
// `option:"key"`. Decoding is weakly typed so values from environment
// variables ("3", "true") and YAML ([]any) land in typed fields. Fields
// keep their preset values when the key is absent.
func DecodeOptions(opts map[string]any, out any) error {
	if len(opts) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "option",
		WeaklyTypedInput: true,
		ZeroFields:       true,
	})
	if err != nil {
		return fmt.Errorf("failed to build option decoder: %w", err)
	}
	if err := dec.Decode(opts); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}
