package config

import "os"

func IsDebug() bool {
	return os.Getenv("ECHO_DEBUG") == "1"
}
