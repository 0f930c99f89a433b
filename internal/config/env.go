package config

import (
	"context"
	"reflect"
	"strings"

	"github.com/sandevgo/commandecho/pkg/log"
)

// knownKeys collects every env tag declared across the config structs.
func knownKeys() map[string]struct{} {
	keys := make(map[string]struct{})
	for _, c := range []any{&AppConfig{}, &LLMConfig{}, &MemoryConfig{}, &VoiceConfig{}} {
		t := reflect.TypeOf(c).Elem()
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("env")
			if tag == "" {
				continue
			}
			keys[strings.Split(tag, ",")[0]] = struct{}{}
		}
	}
	keys["ECHO_DEBUG"] = struct{}{}
	return keys
}

// WarnUnknownKeys logs a warning for every ECHO_-prefixed option that no
// config struct declares. Unrecognized options are ignored, not fatal.
func WarnUnknownKeys(ctx context.Context, vars map[string]string) {
	known := knownKeys()
	for key := range vars {
		if !strings.HasPrefix(key, "ECHO_") {
			continue
		}
		if _, ok := known[key]; !ok {
			log.FromCtx(ctx).Warn().Str("key", key).Msg("unrecognized config option, ignoring")
		}
	}
}
