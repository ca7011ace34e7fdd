package main

import (
	"context"
	"flag"
	"time"

	"github.com/0x13a/jobly/internal/config"
	"github.com/0x13a/jobly/internal/database"
	"github.com/0x13a/jobly/internal/user"

	"github.com/rs/zerolog/log"
)

// Creates a user from flags, typically the first admin account.
func main() {
	username := flag.String("username", "", "username")
	password := flag.String("password", "", "password")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	email := flag.String("email", "", "email")
	isAdmin := flag.Bool("admin", false, "grant admin rights")
	flag.Parse()

	if *username == "" || *password == "" || *email == "" {
		log.Fatal().Msg("-username, -password and -email are required")
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load config")
	}
	conn, err := database.GetDbConn(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to connect to postgres")
	}
	defer database.CloseDbConn(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	u, err := user.NewRepository(conn, cfg.BcryptWorkFactor).Register(ctx, user.NewUser{
		Username:  *username,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		IsAdmin:   *isAdmin,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("unable to create user")
	}
	log.Info().Str("username", u.Username).Bool("isAdmin", u.IsAdmin).Msg("user created")
}
