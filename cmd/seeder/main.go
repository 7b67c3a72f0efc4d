package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/sasgl/league-api/internal/auth"
	"github.com/sasgl/league-api/internal/club"
	"github.com/sasgl/league-api/internal/database"
	"github.com/sasgl/league-api/internal/league"
	"github.com/sasgl/league-api/internal/players"
	"github.com/sasgl/league-api/internal/stats"
)

// Simplified config loading for the script
func loadConfig() (dbName, migrationsDir string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok {
		log.Fatal("Error: Required environment variable DB_NAME is not set.")
	}
	migrationsDir = os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	return dbName, migrationsDir
}

func main() {
	log.Info("Starting database seeder...")
	dbName, migrationsDir := loadConfig()

	db, teardown, err := database.InitDB(dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"), migrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	playerStore := players.New(db)
	clubStore := club.New(db)
	leagueStore := league.New(db)
	statsStore := stats.New(db)

	hash, err := auth.HashPassword("password123")
	if err != nil {
		log.Fatalf("Failed to hash seed password: %s", err)
	}

	names := []string{"Seeder Captain", "Seeder Player A", "Seeder Player B", "Seeder Player C"}
	ids := make([]string, 0, len(names))
	for i, name := range names {
		p, err := playerStore.Create(players.NewPlayer{
			Name:         name,
			Email:        fmt.Sprintf("seed-%d@example.com", i),
			PasswordHash: hash,
		})
		if err != nil {
			log.Fatalf("Failed to insert seed player %s: %s", name, err)
		}
		ids = append(ids, p.ID)
	}
	log.Info("Seeded players", "count", len(ids))

	captainID := ids[0]
	c, err := clubStore.Register(club.RegisterClubParams{
		Name:        "Seeder Golf Club",
		Email:       "club@example.com",
		Description: "Demo club created by the seeder",
		CreatedBy:   captainID,
	})
	if err != nil {
		log.Fatalf("Failed to register seed club: %s", err)
	}
	if err := clubStore.Approve(c.ID); err != nil {
		log.Fatalf("Failed to approve seed club: %s", err)
	}
	for _, id := range ids[1:] {
		if err := clubStore.RequestJoin(c.ID, id); err != nil {
			log.Fatalf("Failed to enroll seed member: %s", err)
		}
		if _, err := clubStore.ApproveMember(c.ID, id); err != nil {
			log.Fatalf("Failed to approve seed member: %s", err)
		}
	}
	log.Info("Seeded club", "clubID", c.ID)

	start := time.Now().AddDate(0, 0, -14).Format(league.DateLayout)
	e, err := leagueStore.CreateEvent(league.CreateEventParams{
		Name:      "Seeder Winter League",
		Type:      league.TypeLeague,
		StartDate: start,
		ClubID:    c.ID,
		CreatedBy: captainID,
	})
	if err != nil {
		log.Fatalf("Failed to create seed league: %s", err)
	}
	log.Info("Seeded league", "eventID", e.ID)

	startTime := time.Now()
	rounds := 0
	for _, id := range ids {
		for range 3 {
			_, err := statsStore.RecordResult(stats.Submission{
				EventID:     e.ID,
				UserID:      id,
				Points:      10 + rand.Intn(30),
				Birdies:     rand.Intn(4),
				Strokes:     70 + rand.Intn(20),
				Putts:       25 + rand.Intn(12),
				GreensInReg: rand.Intn(18),
				FairwaysHit: rand.Intn(14),
				SubmittedBy: captainID,
			})
			if err != nil {
				log.Fatalf("Failed to record seed round: %s", err)
			}
			rounds++
		}
	}

	log.Info("Seeding complete", "rounds", rounds, "duration", time.Since(startTime))
}
