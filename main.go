package main

import (
	"context"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"github.com/drone/drone-junit/plugin"
)

func main() {
	var args plugin.Args
	if err := envconfig.Process("", &args); err != nil {
		logrus.Fatalln(err)
	}

	configureLogging(args.Level)

	os.Exit(plugin.Run(context.Background(), os.Args[1:], args, os.Stdout, os.Stderr))
}

func configureLogging(level string) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("Level", level).Warn("Unknown log level, falling back to warn")
		lvl = logrus.WarnLevel
	}
	logrus.SetLevel(lvl)
}
