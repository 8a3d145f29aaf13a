// Command seed_courses loads a starter catalog of curated courses so a
// fresh deployment has recommendation candidates before any provider
// search has run.
package main

import (
	"context"
	"log"

	"versora/internal/config"
	"versora/internal/database"
	"versora/internal/domain"
	"versora/internal/repository"
)

var starterCatalog = []domain.Course{
	{
		ID:          "course_web_react_fundamentals",
		Title:       "React Fundamentals",
		Description: "Components, hooks, and state management from scratch.",
		Provider:    "versora",
		Category:    "Web Development",
		Level:       domain.LevelBeginner,
		Tags:        []string{"react", "javascript", "frontend"},
	},
	{
		ID:          "course_web_node_apis",
		Title:       "Building REST APIs with Node.js",
		Description: "Express, middleware, and production API design.",
		Provider:    "versora",
		Category:    "Web Development",
		Level:       domain.LevelIntermediate,
		Tags:        []string{"node", "javascript", "backend", "api"},
	},
	{
		ID:          "course_prog_python_intro",
		Title:       "Python for Absolute Beginners",
		Description: "Syntax, data structures, and your first scripts.",
		Provider:    "versora",
		Category:    "Programming",
		Level:       domain.LevelBeginner,
		Tags:        []string{"python", "programming"},
	},
	{
		ID:          "course_prog_go_services",
		Title:       "Production Services in Go",
		Description: "Concurrency, HTTP services, and deployment patterns.",
		Provider:    "versora",
		Category:    "Programming",
		Level:       domain.LevelAdvanced,
		Tags:        []string{"go", "backend", "concurrency"},
	},
	{
		ID:          "course_ds_ml_foundations",
		Title:       "Machine Learning Foundations",
		Description: "Supervised learning, model evaluation, and scikit-learn.",
		Provider:    "versora",
		Category:    "Data Science",
		Level:       domain.LevelIntermediate,
		Tags:        []string{"machine learning", "python", "data science"},
	},
	{
		ID:          "course_ds_deep_learning",
		Title:       "Deep Learning with PyTorch",
		Description: "Neural networks, training loops, and GPU workflows.",
		Provider:    "versora",
		Category:    "Data Science",
		Level:       domain.LevelAdvanced,
		Tags:        []string{"deep learning", "ai", "python"},
	},
	{
		ID:          "course_design_ui_basics",
		Title:       "UI Design Basics",
		Description: "Layout, typography, and color for product interfaces.",
		Provider:    "versora",
		Category:    "Design",
		Level:       domain.LevelBeginner,
		Tags:        []string{"design", "ui", "figma"},
	},
	{
		ID:          "course_biz_product_mgmt",
		Title:       "Product Management Essentials",
		Description: "Discovery, prioritization, and shipping with engineers.",
		Provider:    "versora",
		Category:    "Business",
		Level:       domain.LevelIntermediate,
		Tags:        []string{"product", "business", "strategy"},
	},
	{
		ID:          "course_math_linear_algebra",
		Title:       "Linear Algebra for Engineers",
		Description: "Vectors, matrices, and decompositions with applications.",
		Provider:    "versora",
		Category:    "Mathematics",
		Level:       domain.LevelIntermediate,
		Tags:        []string{"math", "linear algebra"},
	},
	{
		ID:          "course_web_fullstack_capstone",
		Title:       "Full-Stack Capstone Project",
		Description: "Ship a complete app: React frontend, Node backend, Postgres.",
		Provider:    "versora",
		Category:    "Web Development",
		Level:       domain.LevelAdvanced,
		Tags:        []string{"react", "node", "postgres", "fullstack"},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := repository.NewSQLXCourseRepository(db)
	ctx := context.Background()

	for i := range starterCatalog {
		course := starterCatalog[i]
		if err := repo.UpsertExternal(ctx, &course); err != nil {
			log.Fatalf("Failed to seed course %s: %v", course.ID, err)
		}
		log.Printf("Seeded course: %s", course.Title)
	}
	log.Printf("Seeded %d courses", len(starterCatalog))
}
