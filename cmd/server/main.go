// Package main is the entry point for the rehabilitation service HTTP server.
package main

import (
	"log"

	"github.com/sebasr/rehab-service/internal/config"
	"github.com/sebasr/rehab-service/internal/database"
	"github.com/sebasr/rehab-service/internal/health"
	"github.com/sebasr/rehab-service/internal/metrics"
	"github.com/sebasr/rehab-service/internal/motion"
	"github.com/sebasr/rehab-service/internal/recommend"
	"github.com/sebasr/rehab-service/internal/repository"
	"github.com/sebasr/rehab-service/internal/server"
	"github.com/sebasr/rehab-service/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	log.Println("Successfully connected to database")

	// Create repositories
	sessionRepo := repository.NewPostgresSessionRepository(db)
	progressRepo := repository.NewPostgresProgressRepository(db)
	predictionRepo := repository.NewPostgresPredictionRepository(db)
	patientRepo := repository.NewPostgresPatientRepository(db)

	// Platform health store
	healthSink := health.NewMemorySink(cfg.Health.Authorized)
	if !cfg.Health.Authorized {
		log.Println("Health store not authorized - session summaries will not be recorded")
	}

	// Motion sources
	var source motion.Source
	if cfg.Pipeline.SimulatorEnabled {
		source = motion.NewSimulator(cfg.Pipeline.SampleInterval, cfg.Pipeline.SimulatorSeed)
		log.Println("Motion simulator enabled")
	} else {
		log.Println("Motion simulator disabled - samples arrive over HTTP ingest only")
	}
	vrLink := motion.NewSimulatedVRLink(cfg.Pipeline.VRCalibrationTime)

	// Session pipeline
	accumulator := session.NewAccumulator(
		metrics.NewGaitEstimator(cfg.Pipeline.GaitSeed),
		session.Options{
			WindowSize: cfg.Pipeline.WindowSize,
			QueueSize:  cfg.Pipeline.QueueSize,
			Source:     source,
			VRLink:     vrLink,
		},
	)
	defer accumulator.Close()

	// Create server dependencies
	deps := &server.Dependencies{
		Config:         cfg,
		Accumulator:    accumulator,
		Engine:         recommend.NewEngine(),
		SessionRepo:    sessionRepo,
		ProgressRepo:   progressRepo,
		PredictionRepo: predictionRepo,
		PatientRepo:    patientRepo,
		HealthSink:     healthSink,
		VRLink:         vrLink,
	}

	// Create and start the server
	srv := server.New(deps)

	log.Printf("Starting server on port %s", cfg.Server.Port)
	if err := srv.Run(":" + cfg.Server.Port); err != nil {
		log.Printf("Failed to start server: %v", err)
		panic(err) // Use panic instead of log.Fatalf to ensure defer runs
	}
}
