package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/mattn/go-sqlite3"

	httpadapter "github.com/satriahrh/persona-chat/adapters/http"
	"github.com/satriahrh/persona-chat/adapters/llm"
	"github.com/satriahrh/persona-chat/adapters/registry"
	"github.com/satriahrh/persona-chat/adapters/sqlite"
	"github.com/satriahrh/persona-chat/config"
	"github.com/satriahrh/persona-chat/domain"
	"github.com/satriahrh/persona-chat/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	personalities, err := registry.LoadFile(cfg.PersonalitiesPath)
	if err != nil {
		log.Fatal(err)
	}
	if def, ok := personalities.Default(); ok {
		log.Printf("loaded %d personalities, default %q", len(personalities.List()), def.ID)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	store := sqlite.NewStore(db)
	if err := store.Init(); err != nil {
		log.Fatal("cannot initialize store: ", err)
	}
	defer store.Close()

	var gateway domain.Llm
	switch cfg.Provider {
	case config.ProviderGemini:
		gateway, err = llm.NewGeminiClient(context.Background(), cfg.GeminiModel)
		if err != nil {
			log.Fatal(err)
		}
	default:
		gateway = llm.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel)
	}

	chatService := usecase.NewChatService(personalities, store, gateway)
	handler := httpadapter.NewHandler(personalities, chatService)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
		},
		AllowCredentials: true,
	}))

	handler.Register(e)

	log.Fatal(e.Start(cfg.Addr))
}
