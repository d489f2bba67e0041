// cmd/server/main.go
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/chandra122/facialtimesheet-final/internal/attendance"
	"github.com/chandra122/facialtimesheet-final/internal/config"
	"github.com/chandra122/facialtimesheet-final/internal/emotion"
	"github.com/chandra122/facialtimesheet-final/internal/routes"
	"github.com/chandra122/facialtimesheet-final/internal/storage"
	"github.com/chandra122/facialtimesheet-final/internal/vision"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := storage.OpenDB(cfg)
	store := storage.NewStore(db)

	var faces emotion.FaceChecker
	if cfg.FaceCascadePath != "" {
		detector, err := vision.NewDetector(cfg.FaceCascadePath, cfg.MinFaceSize)
		if err != nil {
			log.Fatal(err)
		}
		defer detector.Close()
		faces = detector
		log.Printf("face detector initialized (min face size %dx%d)", cfg.MinFaceSize, cfg.MinFaceSize)
	}

	classifier := emotion.NewClient(cfg.EmotionAPIURL, faces, cfg.EmotionTimeout)
	service := attendance.NewService(store, vision.GoCVDecoder{}, classifier)

	r := routes.NewRouter(store, service, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("Server running on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
