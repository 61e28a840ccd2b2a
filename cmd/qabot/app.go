package main

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"qabot/internal/config"
	"qabot/internal/domain"
	"qabot/internal/embedding"
	"qabot/internal/intro"
	"qabot/internal/logger"
	"qabot/internal/matcher"
	"qabot/internal/service"
	"qabot/internal/similarity"
	"qabot/internal/vectorstore/memory"
	"qabot/internal/vectorstore/textfile"
)

type options struct {
	cfgPath string
	dbPath  string
	metric  string
}

type app struct {
	cfg    *config.AppConfig
	svc    *service.QAServiceImpl
	logger *zap.Logger
	loaded int
}

// assemble loads configuration, builds every component and ingests the store file.
// A missing store file is reported on warn and does not stop the program.
func assemble(opts *options, logToStderr bool, warn io.Writer) (*app, error) {
	var cfg *config.AppConfig
	var err error
	if opts.cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(opts.cfgPath)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if opts.dbPath != "" {
		cfg.Store.Path = opts.dbPath
	}
	if opts.metric != "" {
		cfg.Engine.Metric = opts.metric
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log, logToStderr)
	if err != nil {
		return nil, err
	}

	enc, err := embedding.New(cfg.Engine.Encoder, cfg.Engine.Dimension)
	if err != nil {
		return nil, err
	}
	metric, err := similarity.ByName(cfg.Engine.Metric, enc)
	if err != nil {
		return nil, err
	}
	engineOpts := []matcher.Option{matcher.WithTolerance(cfg.Engine.Tolerance)}
	if cfg.Engine.MinSimilarity != nil {
		engineOpts = append(engineOpts, matcher.WithMinSimilarity(*cfg.Engine.MinSimilarity))
	}

	var greeter service.Greeter
	if cfg.Intro.Enabled {
		greeter = intro.NewDetector(cfg.Intro.Keywords, cfg.Intro.Greeting)
	}

	path := cfg.StorePath()
	svc := service.NewQAService(
		memory.NewStorage(cfg.Store.Capacity, enc),
		matcher.New(metric, engineOpts...),
		textfile.NewJournal(path),
		greeter,
		log,
	)

	n, err := svc.Ingest(path)
	if err != nil {
		if !errors.Is(err, domain.ErrSourceUnavailable) {
			return nil, err
		}
		fmt.Fprintf(warn, "Base de données vide ! Ajoutez des entrées dans %s.\n", path)
	}
	return &app{cfg: cfg, svc: svc, logger: log, loaded: n}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
