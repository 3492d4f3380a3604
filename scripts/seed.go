//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/maren/taskhive/internal/auth"
	"github.com/maren/taskhive/internal/database"
	"github.com/maren/taskhive/internal/database/models"
	"github.com/maren/taskhive/internal/members"
	"github.com/maren/taskhive/internal/projects"
	"github.com/maren/taskhive/internal/workitems"
	"github.com/maren/taskhive/pkg/config"
	"github.com/maren/taskhive/pkg/util"
)

// Seeds a demo organization with members, a project and a populated board.
// Run with: go run scripts/seed.go
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	authService := auth.NewService(db, jwtService)

	email := os.Getenv("DEMO_EMAIL")
	password := os.Getenv("DEMO_PASSWORD")
	if email == "" {
		email = "demo@taskhive.local"
	}
	if password == "" {
		password = "demo12345!"
	}

	ctx := context.Background()

	result, err := authService.Register(ctx, auth.RegisterInput{
		OrganizationName: "Demo Organization",
		FullName:         "Demo Owner",
		Email:            email,
		Password:         password,
	})
	if err != nil {
		log.Fatalf("failed to create demo organization: %v", err)
	}

	orgID := result.Org.ID
	ownerID := result.User.ID

	memberService := members.NewService(db, members.NewPasswordGenerator(rand.NewSource(time.Now().UnixNano())))
	alice, err := memberService.Add(ctx, orgID, members.AddInput{
		FullName:    "Alice Moreau",
		DisplayName: "Alice",
		Email:       "alice@taskhive.local",
	})
	if err != nil {
		log.Fatalf("failed to add member: %v", err)
	}
	bob, err := memberService.Add(ctx, orgID, members.AddInput{
		FullName:    "Bob Tanaka",
		DisplayName: "Bob",
		Email:       "bob@taskhive.local",
	})
	if err != nil {
		log.Fatalf("failed to add member: %v", err)
	}

	projectService := projects.NewService(db)
	description := "Get the first public release out the door"
	due := time.Now().AddDate(0, 1, 0)
	project, err := projectService.Create(ctx, orgID, ownerID, projects.CreateInput{
		Name:        "Product Launch",
		Description: &description,
		DueDate:     &due,
	})
	if err != nil {
		log.Fatalf("failed to create project: %v", err)
	}

	itemService := workitems.NewService(db)
	board := []struct {
		title    string
		assignee *models.User
		priority models.WorkItemPriority
		status   models.WorkItemStatus
		points   int
	}{
		{"Draft launch announcement", alice, models.PriorityMedium, models.StatusBacklog, 2},
		{"Set up staging environment", bob, models.PriorityHigh, models.StatusTodo, 3},
		{"Implement billing flow", bob, models.PriorityCritical, models.StatusInProgress, 8},
		{"Review onboarding copy", alice, models.PriorityLow, models.StatusInReview, 1},
		{"Fix signup redirect", nil, models.PriorityHigh, models.StatusDone, 2},
	}

	for _, entry := range board {
		input := workitems.CreateInput{
			ProjectID:   project.ID,
			Title:       entry.title,
			Priority:    entry.priority,
			StoryPoints: entry.points,
		}
		if entry.assignee != nil {
			input.AssigneeID = &entry.assignee.ID
		}

		item, err := itemService.Create(ctx, orgID, input)
		if err != nil {
			log.Fatalf("failed to create work item %q: %v", entry.title, err)
		}
		if entry.status != models.StatusBacklog {
			if _, err := itemService.UpdateStatus(ctx, orgID, item.ID, entry.status); err != nil {
				log.Fatalf("failed to move work item %q: %v", entry.title, err)
			}
		}
	}

	fmt.Printf("Demo organization seeded!\n")
	fmt.Printf("Email: %s\n", result.User.Email)
	fmt.Printf("Password: %s\n", password)
	fmt.Printf("Token: %s\n", result.Token)
}
