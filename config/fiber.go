package config

import (
	"fmt"
	"os"
)

func GetFiberHttpPort() string {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	return port
}

func GetFiberListenAddress() string {
	return fmt.Sprintf(":%s", GetFiberHttpPort())
}

func GetMetricsListenAddress() string {
	port := os.Getenv("METRICS_PORT")
	if port == "" {
		port = "9091"
	}
	return fmt.Sprintf(":%s", port)
}
