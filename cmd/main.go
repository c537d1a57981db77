package main

import (
	"log"

	"flareguard/config"
	"flareguard/routes"
	"flareguard/services"
	"flareguard/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitMailer()

	rt := services.NewRealtimeHub()
	ps, err := services.NewPushService(config.DB)
	if err != nil {
		log.Fatalf("push service init failed: %v", err)
	}
	services.InitAlertDeps(config.DB, rt, ps)

	r := routes.SetupRouter(rt, ps)
	r.Run(":8080")
}
