package main

import (
	"clipstream/internal/model"
	"clipstream/pkg/config"
	"clipstream/pkg/database"
	"clipstream/pkg/logger"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		panic(err)
	}

	err = db.AutoMigrate(
		&model.MusicModel{},
		&model.HashtagModel{},
		&model.PostModel{},
		&model.LikeModel{},
	)
	if err != nil {
		panic(err)
	}

	log.Info("Migration completed")
}
