package main

import (
	"context"
	"log"
	"time"

	"github.com/sampledev-eng/freshcart-express-backend/cmd/server"
	"github.com/sampledev-eng/freshcart-express-backend/internal/auth"
	"github.com/sampledev-eng/freshcart-express-backend/internal/config"
	"github.com/sampledev-eng/freshcart-express-backend/internal/storage"
)

var (
	srvAddr                  = config.Env.ServerAddr
	postgresConnStr          = config.Env.PostgresConnStr
	mediaDir                 = config.Env.MediaDir
	accessTokenSecret        = config.Env.AccessTokenSecret
	refreshTokenSecret       = config.Env.RefreshTokenSecret
	accessTokenExpiryInMins  = config.Env.AccessTokenExpiryInMins
	refreshTokenExpiryInMins = config.Env.RefreshTokenExpiryInMins
)

func main() {
	log.SetFlags(log.Ldate | log.Llongfile)

	db, err := storage.NewPostgresDB(postgresConnStr)
	if err != nil {
		log.Fatal(err)
	}

	migrateCtx, cancel := context.WithTimeout(
		context.Background(),
		(30 * time.Second),
	)
	defer cancel()

	if err := storage.Migrate(migrateCtx, db); err != nil {
		log.Fatal(err)
	}

	srv := server.NewServer(&server.ServerConfig{
		Addr:     srvAddr,
		DB:       db,
		MediaDir: mediaDir,
		TokenManager: auth.NewTokenService(
			accessTokenSecret,
			refreshTokenSecret,
			accessTokenExpiryInMins,
			refreshTokenExpiryInMins,
		),
	},
	)
	srv.Run()
}
