package main

import (
	"os"

	"github.com/emrgen/cms/internal/config"
	"github.com/emrgen/cms/internal/server"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()
	cfg.LogLevel = "debug"

	if grpcPort := os.Getenv("GRPC_PORT"); grpcPort != "" {
		cfg.GrpcPort = grpcPort
	}
	if httpPort := os.Getenv("HTTP_PORT"); httpPort != "" {
		cfg.HttpPort = httpPort
	}

	err := server.Start(cfg)
	if err != nil {
		logrus.Error(err)
		return
	}
}
