// seed inserts a test user and a spread of tasks into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/taskloop/taskloop/internal/auth"
	"github.com/taskloop/taskloop/internal/domain"
	"github.com/taskloop/taskloop/internal/infrastructure/postgres"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "password123"
)

type taskSpec struct {
	title       string
	description string
	completed   bool
}

var tasks = []taskSpec{
	// Pending: should show up under ?status=pending and in the digest
	{"Buy milk", "2% or oat, whatever is on sale", false},
	{"Renew passport", "appointment is bookable online", false},
	{"Write standup notes", "", false},
	{"Fix the leaking tap", "kitchen, not bathroom", false},
	{"Review PR #42", "waiting on CI", false},

	// Completed: should show up under ?status=completed
	{"Book dentist", "done last Tuesday", true},
	{"Pay rent", "", true},
	{"Water the plants", "", true},

	// Searchable cluster, all match ?search=report
	{"Draft quarterly report", "numbers from finance pending", false},
	{"Send report to Sam", "", false},
	{"Archive old reports", "anything before 2024", true},
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	hash, err := auth.HashPassword(seedPassword, auth.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user, err := users.Create(ctx, "Seed User", seedEmail, hash)
	if err != nil {
		log.Fatalf("create user (already seeded?): %v", err)
	}

	for _, spec := range tasks {
		if _, err := taskRepo.Create(ctx, &domain.Task{
			UserID:      user.ID,
			Title:       spec.title,
			Description: spec.description,
			Completed:   spec.completed,
		}); err != nil {
			log.Fatalf("create task %q: %v", spec.title, err)
		}
	}

	fmt.Printf("seeded %s (password %q) with %d tasks\n", seedEmail, seedPassword, len(tasks))
}
