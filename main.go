package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"

	"eantienda/internal/config"
	"eantienda/internal/container"
	"eantienda/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	server := ui.NewServer(ui.Dependencies{
		Inventory:      appContainer.Inventory,
		Codes:          appContainer.Codes,
		Sessions:       appContainer.Sessions,
		MaxUploadBytes: appConfig.Uploads.MaxBytes,
	})

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("Performance profiling server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				log.Printf("pprof server failed: %v", err)
			}
		}()
	}

	log.Printf("Label layout %s, card layout %s, EAN prefix %s",
		appConfig.Layouts.Labels.Name, appConfig.Layouts.Cards.Name, appConfig.EAN.Prefix)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
