package main

import (
	"context"
	"time"

	"github.com/andresouza/portfolio/config"
	"github.com/andresouza/portfolio/models"
	"github.com/andresouza/portfolio/notify"
	"github.com/andresouza/portfolio/routes"
	"github.com/andresouza/portfolio/service"
	"github.com/andresouza/portfolio/store"
	"github.com/andresouza/portfolio/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Project{},
		&models.Comment{},
		&models.Achievement{},
		&models.AboutInfo{},
		&models.ContactMessage{},
	)
	st := store.NewGorm(db)

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.Seed(seedCtx, st, store.SeedOptions{
		AdminName:     cfg.AdminName,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}); err != nil {
		cancel()
		utils.Sugar.Fatalf("seeding failed: %v", err)
	}
	cancel()

	dispatcher := notify.NewDispatcher(st.Users(), utils.SendMail, utils.Sugar)
	defer dispatcher.Close()

	svc := service.New(st, dispatcher, utils.Sugar)
	r := routes.SetupRouter(svc)

	utils.Sugar.Infof("starting server on port %s", cfg.AppPort)
	if err := utils.RunServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
