package config

import "os"

func Addr() string {
	if addr, ok := os.LookupEnv("APP_ADDR"); ok {
		return addr
	}
	return ":8080"
}

func Development() bool {
	dev, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return dev != "0"
}
