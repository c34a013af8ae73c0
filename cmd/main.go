package main

import (
	"librarylens/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := bootstrap.NewRootCommand().Execute(); err != nil {
		logrus.Fatalf("librarylens: %v", err)
	}
}
