package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"prd-studio-be/internal/dto"
	"prd-studio-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplateService(uow *fakeUnitOfWork) ITemplateService {
	return NewTemplateService(&fakeFactory{uow: uow}, nil, nopLogger{})
}

func sections(titles ...string) []entity.TemplateSection {
	out := make([]entity.TemplateSection, 0, len(titles))
	for _, title := range titles {
		out = append(out, entity.TemplateSection{Title: title, Description: "..."})
	}
	return out
}

func seedStarter(uow *fakeUnitOfWork, name string) *entity.Template {
	tpl := &entity.Template{
		Id:        uuid.New(),
		Name:      name,
		Category:  "product",
		Sections:  sections("Overview"),
		Version:   1,
		IsStarter: true,
		CreatedAt: time.Now(),
	}
	uow.templates = append(uow.templates, tpl)
	return tpl
}

func TestUpdateTemplateSnapshotsPreviousVersion(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	svc := newTemplateService(uow)

	created, err := svc.Create(context.Background(), userId, &dto.CreateTemplateRequest{
		Name:     "API PRD",
		Category: "engineering",
		Sections: sections("Overview", "Endpoints"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), userId, &dto.UpdateTemplateRequest{
		Id:       created.Id,
		Name:     "Platform API PRD",
		Category: "engineering",
		Sections: sections("Overview", "Endpoints", "Auth"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Len(t, updated.Sections, 3)

	history, err := svc.History(context.Background(), userId, created.Id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 1, history[0].Version)
	assert.Len(t, history[0].Sections, 2, "the snapshot holds the pre-edit sections")
	assert.Equal(t, "API PRD", history[0].Name, "the pre-edit name is recoverable too")
}

func TestUpdateTemplateHistoryCapDropsOldest(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	svc := newTemplateService(uow)

	created, err := svc.Create(context.Background(), userId, &dto.CreateTemplateRequest{
		Name:     "Mobile PRD",
		Category: "product",
		Sections: sections("Overview"),
	})
	require.NoError(t, err)

	for i := 0; i < entity.MaxTemplateVersions+3; i++ {
		_, err := svc.Update(context.Background(), userId, &dto.UpdateTemplateRequest{
			Id:       created.Id,
			Name:     "Mobile PRD",
			Category: "product",
			Sections: sections("Overview", fmt.Sprintf("Iteration %d", i)),
		})
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), userId, created.Id)
	require.NoError(t, err)
	require.Len(t, history, entity.MaxTemplateVersions)
	// Versions 1..3 fell off; the oldest retained snapshot is version 4.
	assert.Equal(t, 4, history[0].Version)
	assert.Equal(t, entity.MaxTemplateVersions+3, history[len(history)-1].Version)
}

func TestUpdateTemplateRejectsStarters(t *testing.T) {
	uow := newFakeUnitOfWork()
	starter := seedStarter(uow, "Standard PRD")
	svc := newTemplateService(uow)

	_, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateTemplateRequest{
		Id:       starter.Id,
		Name:     "Standard PRD",
		Category: "product",
		Sections: sections("Hijacked"),
	})
	require.Error(t, err)
}

func TestDeleteTemplateRejectsStarters(t *testing.T) {
	uow := newFakeUnitOfWork()
	starter := seedStarter(uow, "Standard PRD")
	starter.UserId = uuid.Nil
	svc := newTemplateService(uow)

	err := svc.Delete(context.Background(), starter.UserId, starter.Id)
	require.Error(t, err)
	assert.Len(t, uow.templates, 1)
}

func TestListIncludesStartersAndOwnTemplates(t *testing.T) {
	uow := newFakeUnitOfWork()
	seedStarter(uow, "Standard PRD")
	userId := uuid.New()
	svc := newTemplateService(uow)

	_, err := svc.Create(context.Background(), userId, &dto.CreateTemplateRequest{
		Name:     "Mine",
		Category: "product",
		Sections: sections("Overview"),
	})
	require.NoError(t, err)

	// A different user's private template must not leak.
	uow.templates = append(uow.templates, &entity.Template{
		Id:       uuid.New(),
		UserId:   uuid.New(),
		Name:     "Theirs",
		Category: "product",
		Sections: sections("Overview"),
		Version:  1,
	})

	list, err := svc.List(context.Background(), userId, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	names := []string{list[0].Name, list[1].Name}
	assert.Contains(t, names, "Standard PRD")
	assert.Contains(t, names, "Mine")
}

func TestExportStripsTransientFields(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	svc := newTemplateService(uow)

	created, err := svc.Create(context.Background(), userId, &dto.CreateTemplateRequest{
		Name:          "API PRD",
		Category:      "engineering",
		ContextPrompt: "You are writing for backend engineers.",
		Sections:      sections("Overview"),
	})
	require.NoError(t, err)

	// Build some history so there is something to strip.
	_, err = svc.Update(context.Background(), userId, &dto.UpdateTemplateRequest{
		Id:       created.Id,
		Name:     "API PRD",
		Category: "engineering",
		Sections: sections("Overview", "Endpoints"),
	})
	require.NoError(t, err)

	res, err := svc.Export(context.Background(), userId, &dto.ExportTemplatesRequest{Ids: []uuid.UUID{created.Id}})
	require.NoError(t, err)
	require.Len(t, res.Templates, 1)

	exported := res.Templates[0]
	assert.Equal(t, "API PRD", exported.Name)
	assert.Equal(t, "You are writing for backend engineers.", exported.ContextPrompt)
	assert.Len(t, exported.Sections, 2)
	assert.Empty(t, exported.VersionHistory, "history stays home unless asked for")

	withHistory, err := svc.Export(context.Background(), userId, &dto.ExportTemplatesRequest{
		Ids:            []uuid.UUID{created.Id},
		IncludeHistory: true,
	})
	require.NoError(t, err)
	require.Len(t, withHistory.Templates, 1)
	require.Len(t, withHistory.Templates[0].VersionHistory, 1)
	assert.Equal(t, 1, withHistory.Templates[0].VersionHistory[0].Version)
}

func TestImportSkipsNameCollisions(t *testing.T) {
	uow := newFakeUnitOfWork()
	seedStarter(uow, "Standard PRD")
	userId := uuid.New()
	svc := newTemplateService(uow)

	res, err := svc.Import(context.Background(), userId, &dto.ImportTemplatesRequest{
		Templates: []dto.ExportedTemplate{
			{Name: "Standard PRD", Category: "product", Sections: sections("Overview")},
			{Name: "Fresh one", Category: "product", Sections: sections("Overview")},
			{Name: "Another fresh", Category: "design", Sections: sections("Overview")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []string{"Standard PRD"}, res.SkipList)
	assert.Len(t, uow.templates, 3)
}

func TestImportSkipsStructurallyInvalidRecords(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	svc := newTemplateService(uow)

	res, err := svc.Import(context.Background(), userId, &dto.ImportTemplatesRequest{
		Templates: []dto.ExportedTemplate{
			{Name: "", Category: "product", Sections: sections("Overview")},
			{Name: "No sections", Category: "product"},
			{Name: "Untitled sections", Category: "product", Sections: []entity.TemplateSection{{Description: "..."}}},
			{Name: "Valid", Category: "product", Sections: sections("Overview")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 3, res.Skipped)
	assert.Len(t, uow.templates, 1)
}

func TestRestoreSnapshotsCurrentStateFirst(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	svc := newTemplateService(uow)

	created, err := svc.Create(context.Background(), userId, &dto.CreateTemplateRequest{
		Name:     "API PRD",
		Category: "engineering",
		Sections: sections("Overview", "Endpoints"),
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), userId, &dto.UpdateTemplateRequest{
		Id:       created.Id,
		Name:     "Platform API PRD",
		Category: "engineering",
		Sections: sections("Overview"),
	})
	require.NoError(t, err)

	restored, err := svc.Restore(context.Background(), userId, created.Id, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, restored.Version, "a restore is an edit and bumps the version")
	assert.Len(t, restored.Sections, 2, "version 1 sections come back")
	assert.Equal(t, "API PRD", restored.Name, "version 1 name comes back")

	history, err := svc.History(context.Background(), userId, created.Id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 2, history[1].Version, "the pre-restore state was snapshotted")
	assert.Len(t, history[1].Sections, 1)
}

func TestRestoreUnknownVersionFails(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	svc := newTemplateService(uow)

	created, err := svc.Create(context.Background(), userId, &dto.CreateTemplateRequest{
		Name:     "API PRD",
		Category: "engineering",
		Sections: sections("Overview"),
	})
	require.NoError(t, err)

	_, err = svc.Restore(context.Background(), userId, created.Id, 7)
	require.Error(t, err)
}

func TestImportedTemplatesStartAtVersionOne(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	svc := newTemplateService(uow)

	_, err := svc.Import(context.Background(), userId, &dto.ImportTemplatesRequest{
		Templates: []dto.ExportedTemplate{
			{Name: "Imported", Category: "product", Sections: sections("Overview")},
		},
	})
	require.NoError(t, err)

	require.Len(t, uow.templates, 1)
	assert.Equal(t, 1, uow.templates[0].Version)
	assert.Equal(t, userId, uow.templates[0].UserId)
	assert.Empty(t, uow.templates[0].VersionHistory)
	assert.False(t, uow.templates[0].IsStarter)
}
