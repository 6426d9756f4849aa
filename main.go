package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/TomarJatin/Ai-Influencer-sub000/config"
	"github.com/TomarJatin/Ai-Influencer-sub000/controller"
	"github.com/TomarJatin/Ai-Influencer-sub000/dao"
	"github.com/TomarJatin/Ai-Influencer-sub000/router"
	"github.com/TomarJatin/Ai-Influencer-sub000/service/chat"
	"github.com/TomarJatin/Ai-Influencer-sub000/service/mq"
	"github.com/TomarJatin/Ai-Influencer-sub000/service/titlegen"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	if err := dao.Init(); err != nil {
		slog.Error("Failed to init database", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	researchModel, err := chat.Resolve(ctx, config.Cfg.Model.ResearchModel)
	if err != nil {
		slog.Error("Failed to resolve research model", "err", err)
		os.Exit(1)
	}

	store := dao.NewChatStore(dao.DB)

	titles := titlegen.NewGenerator(store)
	go titles.Run(ctx)

	orchestrator := chat.NewOrchestrator(store, chat.NewRegistry(researchModel.LLM), titles, loadPersona)
	controller.InitChat(store, orchestrator)

	if err := mq.Run(); err != nil {
		slog.Error("Failed to start mq", "err", err)
		os.Exit(1)
	}
	defer mq.Shutdown()

	addr := config.Cfg.Server.Host + ":" + config.Cfg.Server.Port
	if err := router.Register().Run(addr); err != nil {
		slog.Error("Server exited", "err", err)
		os.Exit(1)
	}
}

func loadPersona(ctx context.Context, email string, influencerID uint) (string, error) {
	influencer, err := dao.GetInfluencer(email, influencerID)
	if err != nil {
		return "", err
	}
	return influencer.Persona, nil
}
