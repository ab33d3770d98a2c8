package main

import (
	"flag"
	"fmt"

	"clipstream/internal/model"
	"clipstream/pkg/config"
	"clipstream/pkg/database"
	"clipstream/pkg/logger"

	"gorm.io/gorm"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	tracks := []struct {
		name string
		song string
	}{
		{"lofi-beat-01", "https://cdn.clipstream.dev/seed/audios/lofi-beat-01.mp3"},
		{"synthwave-drive", "https://cdn.clipstream.dev/seed/audios/synthwave-drive.mp3"},
		{"acoustic-morning", "https://cdn.clipstream.dev/seed/audios/acoustic-morning.mp3"},
		{"drum-loop-140", "https://cdn.clipstream.dev/seed/audios/drum-loop-140.mp3"},
		{"piano-sketch", "https://cdn.clipstream.dev/seed/audios/piano-sketch.mp3"},
	}

	for _, trackData := range tracks {
		var existing model.MusicModel
		result := db.Where("name = ?", trackData.name).First(&existing)
		if result.Error == nil {
			log.Info("Track %s already exists, skipping", trackData.name)
			continue
		}

		track := &model.MusicModel{
			Name: trackData.name,
			Song: trackData.song,
		}
		if err := db.Create(track).Error; err != nil {
			return fmt.Errorf("failed to create track %s: %w", trackData.name, err)
		}

		log.Info("Created track: %s (%s)", track.Name, track.ID)
	}

	return nil
}
