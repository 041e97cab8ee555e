package main

import (
	"log"
	"os"

	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/mapper"
	"prd-studio-be/internal/model"
	"prd-studio-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// starterTemplates is the built-in catalog every workspace starts with.
// Starters are owned by the zero UUID and are read-only for users.
func starterTemplates() []*entity.Template {
	return []*entity.Template{
		{
			Id:            uuid.New(),
			UserId:        uuid.Nil,
			Name:          "Feature PRD",
			Description:   "A focused one-pager for a single product feature.",
			Category:      "product",
			ContextPrompt: "You are drafting a concise PRD for a single feature. Keep scope tight and measurable.",
			Sections: []entity.TemplateSection{
				{Title: "Overview", Description: "What the feature is and who it is for.", Prompt: "Summarize the feature in two short paragraphs."},
				{Title: "Problem Statement", Description: "The user pain this feature removes.", Prompt: "Describe the problem from the user's point of view."},
				{Title: "Goals & Success Metrics", Description: "What success looks like, with numbers.", Prompt: "List 3-5 measurable goals."},
				{Title: "Requirements", Description: "Functional requirements, prioritized.", Prompt: "Write requirements as testable statements."},
				{Title: "Out of Scope", Description: "What this feature deliberately does not do."},
			},
			Version:   1,
			IsStarter: true,
		},
		{
			Id:            uuid.New(),
			UserId:        uuid.Nil,
			Name:          "Product Launch PRD",
			Description:   "Full launch document covering positioning, rollout, and risks.",
			Category:      "product",
			ContextPrompt: "You are drafting a launch PRD for a new product. Cover market fit, rollout phases, and risk.",
			Sections: []entity.TemplateSection{
				{Title: "Executive Summary", Description: "The pitch in under 200 words."},
				{Title: "Market & Users", Description: "Target segments and the jobs to be done.", Prompt: "Describe the primary and secondary audience."},
				{Title: "Product Description", Description: "What ships at launch."},
				{Title: "Rollout Plan", Description: "Phases, gates, and timeline.", Prompt: "Lay out a phased rollout with exit criteria per phase."},
				{Title: "Risks & Mitigations", Description: "What could go wrong and the plan for each."},
				{Title: "Open Questions", Description: "Unresolved decisions and their owners."},
			},
			Version:   1,
			IsStarter: true,
		},
		{
			Id:            uuid.New(),
			UserId:        uuid.Nil,
			Name:          "Technical Spec",
			Description:   "Engineering-facing design document for a system change.",
			Category:      "engineering",
			ContextPrompt: "You are drafting a technical design document. Favor precision over persuasion.",
			Sections: []entity.TemplateSection{
				{Title: "Background", Description: "Current state and why it must change."},
				{Title: "Proposed Design", Description: "The architecture of the change.", Prompt: "Describe the design including data flow and failure modes."},
				{Title: "Alternatives Considered", Description: "Other approaches and why they were rejected."},
				{Title: "Migration & Rollback", Description: "How the change lands safely."},
				{Title: "Testing Strategy", Description: "How correctness gets verified."},
			},
			Version:   1,
			IsStarter: true,
		},
		{
			Id:            uuid.New(),
			UserId:        uuid.Nil,
			Name:          "API Design Doc",
			Description:   "Contract-first document for a new API surface.",
			Category:      "engineering",
			ContextPrompt: "You are drafting an API design document. Be explicit about contracts, versioning, and errors.",
			Sections: []entity.TemplateSection{
				{Title: "Overview", Description: "The API surface and its consumers."},
				{Title: "Endpoints", Description: "Resources, verbs, and payloads.", Prompt: "List each endpoint with request and response shapes."},
				{Title: "Error Handling", Description: "Error model and status code conventions."},
				{Title: "Versioning & Compatibility", Description: "How breaking changes are managed."},
			},
			Version:   1,
			IsStarter: true,
		},
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	header := color.New(color.FgCyan, color.Bold)
	okLine := color.New(color.FgGreen)
	skipLine := color.New(color.FgYellow)

	header.Println("Seeding starter templates...")

	templateMapper := mapper.NewTemplateMapper()
	created, skipped := 0, 0

	for _, tpl := range starterTemplates() {
		var existing model.Template
		if err := db.Where("name = ? AND is_starter = true", tpl.Name).First(&existing).Error; err == nil {
			skipLine.Printf("  ~ %s already exists, skipping\n", tpl.Name)
			skipped++
			continue
		}

		if err := db.Create(templateMapper.ToModel(tpl)).Error; err != nil {
			color.Red("  ! failed to create '%s': %v", tpl.Name, err)
			continue
		}
		okLine.Printf("  + %s (%s)\n", tpl.Name, tpl.Category)
		created++
	}

	header.Printf("Done: %d created, %d skipped\n", created, skipped)
}
