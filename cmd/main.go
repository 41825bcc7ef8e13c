package main

import (
	"os"

	"github.com/golang/glog"
	"sains-quiz-service/internal/cli"
)

func main() {
	err := cli.Execute()
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
