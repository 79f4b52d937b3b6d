package main

import (
	"finplan/cmd"
	"finplan/internal/config"
	"finplan/internal/logger"
	"os"
)

func main() {
	log := logger.New()
	log.Infof("starting finplan api, commit %s", os.Getenv("commit_hash"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	apiHandler, err := cmd.InitializeDependencies(*cfg)
	if err != nil {
		log.Fatal(err)
	}
	err = apiHandler.StartApi(cfg.Port)
	if err != nil {
		log.Fatal(err)
	}
}
