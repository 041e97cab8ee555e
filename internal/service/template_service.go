package service

import (
	"context"
	"errors"
	"time"

	"prd-studio-be/internal/dto"
	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/pkg/logger"
	"prd-studio-be/internal/repository/specification"
	"prd-studio-be/internal/repository/unitofwork"
	"prd-studio-be/pkg/events"
	pktNats "prd-studio-be/pkg/nats"

	"github.com/google/uuid"
)

type ITemplateService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTemplateRequest) (*dto.CreateTemplateResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTemplateRequest) (*dto.TemplateDTO, error)
	List(ctx context.Context, userId uuid.UUID, category string) ([]dto.TemplateDTO, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.TemplateDTO, error)
	History(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]dto.TemplateVersionDTO, error)
	Restore(ctx context.Context, userId uuid.UUID, id uuid.UUID, version int) (*dto.TemplateDTO, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Export(ctx context.Context, userId uuid.UUID, req *dto.ExportTemplatesRequest) (*dto.ExportTemplatesResponse, error)
	Import(ctx context.Context, userId uuid.UUID, req *dto.ImportTemplatesRequest) (*dto.ImportTemplatesResponse, error)
}

type templateService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewTemplateService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ITemplateService {
	return &templateService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *templateService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTemplateRequest) (*dto.CreateTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	template := entity.Template{
		Id:            uuid.New(),
		UserId:        userId,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		ContextPrompt: req.ContextPrompt,
		Sections:      req.Sections,
		Version:       1,
		CreatedAt:     time.Now(),
	}
	if err := uow.TemplateRepository().Create(ctx, &template); err != nil {
		return nil, err
	}

	return &dto.CreateTemplateResponse{Id: template.Id}, nil
}

// Update edits a template copy-on-write: the pre-edit state is appended
// to the version history before the new sections land, and the history
// keeps at most MaxTemplateVersions snapshots, oldest dropped first.
func (s *templateService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTemplateRequest) (*dto.TemplateDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	template, err := uow.TemplateRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errors.New("template not found")
	}
	if template.IsStarter {
		return nil, errors.New("starter templates cannot be edited")
	}

	template.VersionHistory = appendSnapshot(template)

	now := time.Now()
	template.Name = req.Name
	template.Description = req.Description
	template.Category = req.Category
	template.ContextPrompt = req.ContextPrompt
	template.Sections = req.Sections
	template.Version++
	template.UpdatedAt = &now

	if err := uow.TemplateRepository().Update(ctx, template); err != nil {
		return nil, err
	}

	result := toTemplateDTO(template)
	return &result, nil
}

func (s *templateService) List(ctx context.Context, userId uuid.UUID, category string) ([]dto.TemplateDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.VisibleToUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}

	templates, err := uow.TemplateRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TemplateDTO, 0, len(templates))
	for _, t := range templates {
		out = append(out, toTemplateDTO(t))
	}
	return out, nil
}

func (s *templateService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.TemplateDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	template, err := uow.TemplateRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.VisibleToUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}

	result := toTemplateDTO(template)
	return &result, nil
}

func (s *templateService) History(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]dto.TemplateVersionDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	template, err := uow.TemplateRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.VisibleToUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errors.New("template not found")
	}

	out := make([]dto.TemplateVersionDTO, 0, len(template.VersionHistory))
	for _, v := range template.VersionHistory {
		out = append(out, dto.TemplateVersionDTO{
			Version:       v.Version,
			Name:          v.Name,
			Description:   v.Description,
			Category:      v.Category,
			Sections:      v.Sections,
			ContextPrompt: v.ContextPrompt,
			SavedAt:       v.SavedAt,
		})
	}
	return out, nil
}

// Restore rolls a template back to a version from its history. The
// rollback is itself an edit: the current state is snapshotted first,
// so restoring never loses what it replaced.
func (s *templateService) Restore(ctx context.Context, userId uuid.UUID, id uuid.UUID, version int) (*dto.TemplateDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	template, err := uow.TemplateRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errors.New("template not found")
	}
	if template.IsStarter {
		return nil, errors.New("starter templates cannot be edited")
	}

	var target *entity.TemplateVersion
	for i := range template.VersionHistory {
		if template.VersionHistory[i].Version == version {
			target = &template.VersionHistory[i]
			break
		}
	}
	if target == nil {
		return nil, errors.New("version not found in history")
	}
	restored := *target

	template.VersionHistory = appendSnapshot(template)

	now := time.Now()
	template.Name = restored.Name
	template.Description = restored.Description
	template.Category = restored.Category
	template.Sections = restored.Sections
	template.ContextPrompt = restored.ContextPrompt
	template.Version++
	template.UpdatedAt = &now

	if err := uow.TemplateRepository().Update(ctx, template); err != nil {
		return nil, err
	}

	result := toTemplateDTO(template)
	return &result, nil
}

func (s *templateService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	template, err := uow.TemplateRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if template == nil {
		return nil
	}
	if template.IsStarter {
		return errors.New("starter templates cannot be deleted")
	}

	return uow.TemplateRepository().Delete(ctx, id)
}

// Export produces the portable form of the requested templates. Ids,
// ownership and timestamps do not travel; version history only does
// when the request asks for it.
func (s *templateService) Export(ctx context.Context, userId uuid.UUID, req *dto.ExportTemplatesRequest) (*dto.ExportTemplatesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.VisibleToUser{UserID: userId}}
	if len(req.Ids) > 0 {
		specs = append(specs, specification.ByIDs{IDs: req.Ids})
	}

	templates, err := uow.TemplateRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.ExportTemplatesResponse{}
	for _, t := range templates {
		exported := dto.ExportedTemplate{
			Name:          t.Name,
			Description:   t.Description,
			Category:      t.Category,
			ContextPrompt: t.ContextPrompt,
			Sections:      t.Sections,
		}
		if req.IncludeHistory {
			exported.VersionHistory = t.VersionHistory
		}
		res.Templates = append(res.Templates, exported)
	}
	return res, nil
}

// Import creates the bundled templates under the importing user. An
// entry whose name matches a template the user can already see is
// skipped and counted, never overwritten.
func (s *templateService) Import(ctx context.Context, userId uuid.UUID, req *dto.ImportTemplatesRequest) (*dto.ImportTemplatesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	res := &dto.ImportTemplatesResponse{}
	for _, incoming := range req.Templates {
		if !importableTemplate(incoming) {
			res.Skipped++
			res.SkipList = append(res.SkipList, incoming.Name)
			continue
		}

		existing, err := uow.TemplateRepository().FindOne(ctx,
			specification.ByName{Name: incoming.Name},
			specification.VisibleToUser{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			res.Skipped++
			res.SkipList = append(res.SkipList, incoming.Name)
			continue
		}

		template := entity.Template{
			Id:            uuid.New(),
			UserId:        userId,
			Name:          incoming.Name,
			Description:   incoming.Description,
			Category:      incoming.Category,
			ContextPrompt: incoming.ContextPrompt,
			Sections:      incoming.Sections,
			Version:       1,
			CreatedAt:     time.Now(),
		}
		if err := uow.TemplateRepository().Create(ctx, &template); err != nil {
			return nil, err
		}
		res.Imported++
	}

	if s.eventPublisher != nil && res.Imported > 0 {
		event := events.NewTemplateImported(userId.String(), res.Imported, res.Skipped)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("TemplateService", "Failed to publish import event", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		}
	}

	return res, nil
}

// appendSnapshot freezes the template's current editable fields into
// its history, dropping the oldest snapshot past the cap.
func appendSnapshot(t *entity.Template) []entity.TemplateVersion {
	history := append(t.VersionHistory, entity.TemplateVersion{
		Version:       t.Version,
		Name:          t.Name,
		Description:   t.Description,
		Category:      t.Category,
		Sections:      t.Sections,
		ContextPrompt: t.ContextPrompt,
		SavedAt:       time.Now(),
	})
	if len(history) > entity.MaxTemplateVersions {
		history = history[len(history)-entity.MaxTemplateVersions:]
	}
	return history
}

// importableTemplate rejects structurally broken records: a template
// needs a name and at least one titled section to be usable.
func importableTemplate(t dto.ExportedTemplate) bool {
	if t.Name == "" {
		return false
	}
	for _, s := range t.Sections {
		if s.Title != "" {
			return true
		}
	}
	return false
}

func toTemplateDTO(t *entity.Template) dto.TemplateDTO {
	return dto.TemplateDTO{
		Id:            t.Id,
		Name:          t.Name,
		Description:   t.Description,
		Category:      t.Category,
		ContextPrompt: t.ContextPrompt,
		Sections:      t.Sections,
		Version:       t.Version,
		IsStarter:     t.IsStarter,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
