package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/at-ishikawa/recurrence/internal/annotation"
	"github.com/at-ishikawa/recurrence/internal/config"
	"github.com/at-ishikawa/recurrence/internal/database"
	"github.com/at-ishikawa/recurrence/internal/document"
	"github.com/at-ishikawa/recurrence/internal/learning"
	"github.com/at-ishikawa/recurrence/internal/notebook"
	"github.com/at-ishikawa/recurrence/internal/review"
)

// deck is the configured notes together with what is needed to read and rewrite them.
type deck struct {
	cfg      *config.Config
	location *time.Location
	codec    *annotation.Codec
	store    *document.FileStore
	loader   *review.Loader
	paths    []string
}

func loadDeck() (*deck, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	location, err := cfg.Scheduler.LoadLocation()
	if err != nil {
		return nil, fmt.Errorf("cfg.Scheduler.LoadLocation() > %w", err)
	}
	codec, err := annotation.NewCodec(annotation.Encoding(cfg.Annotations.Encoding), location)
	if err != nil {
		return nil, fmt.Errorf("annotation.NewCodec() > %w", err)
	}
	paths, err := document.FindMarkdownFiles(cfg.Notebooks.Directories)
	if err != nil {
		return nil, fmt.Errorf("document.FindMarkdownFiles() > %w", err)
	}

	store := document.NewFileStore()
	return &deck{
		cfg:      cfg,
		location: location,
		codec:    codec,
		store:    store,
		loader:   review.NewLoader(store, codec),
		paths:    paths,
	}, nil
}

func (d *deck) cards() ([]*review.Card, error) {
	cards, err := d.loader.Load(d.paths)
	if err != nil {
		return nil, fmt.Errorf("loader.Load() > %w", err)
	}
	return cards, nil
}

// scheduler uses the policy flag when it is set, the configured policy otherwise.
func (d *deck) scheduler(policy PolicyFlag, random notebook.RandomSource) (*notebook.Scheduler, error) {
	name := string(policy)
	if name == "" {
		name = d.cfg.Scheduler.Policy
	}
	p, err := notebook.PolicyByName(name)
	if err != nil {
		return nil, fmt.Errorf("notebook.PolicyByName(%s) > %w", name, err)
	}
	return notebook.NewScheduler(p, random, d.location), nil
}

// openReviewLogs returns nil without error when the database is disabled.
func openReviewLogs(cfg *config.Config) (learning.ReviewLogRepository, func(), error) {
	if !cfg.Database.Enabled {
		return nil, func() {}, nil
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}
	return learning.NewDBReviewLogRepository(db), func() {
		_ = db.Close()
	}, nil
}

func requireReviewLogs(cfg *config.Config) (learning.ReviewLogRepository, func(), error) {
	if !cfg.Database.Enabled {
		return nil, nil, fmt.Errorf("this command needs the review log database; set database.enabled in the config")
	}
	return openReviewLogs(cfg)
}

func newRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
