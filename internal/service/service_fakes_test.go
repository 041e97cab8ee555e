package service

import (
	"context"
	"errors"
	"strings"

	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/repository/contract"
	"prd-studio-be/internal/repository/specification"
	"prd-studio-be/internal/repository/unitofwork"
	"prd-studio-be/pkg/llm"

	"github.com/google/uuid"
)

// fakeUnitOfWork backs the service tests with in-memory stores. The
// factory hands out the same instance on every call so state persists
// across service invocations, the way a database would.
type fakeUnitOfWork struct {
	users        []*entity.User
	documents    []*entity.Document
	features     []*entity.GeneratedFeature
	tasks        []*entity.GeneratedTask
	roadmaps     []*entity.Roadmap
	roadmapItems []*entity.RoadmapItem
	sessions     []*entity.ChatSession
	messages     []*entity.ChatMessage
	templates    []*entity.Template
	canvases     []*entity.Canvas

	beginCount    int
	commitCount   int
	rollbackCount int

	// failUpdateFeatureIds makes feature updates for these ids fail, to
	// exercise partial bulk outcomes.
	failUpdateFeatureIds map[uuid.UUID]bool
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{failUpdateFeatureIds: map[uuid.UUID]bool{}}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { u.beginCount++; return nil }
func (u *fakeUnitOfWork) Commit() error                   { u.commitCount++; return nil }
func (u *fakeUnitOfWork) Rollback() error                 { u.rollbackCount++; return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository               { return &fakeUserRepo{u} }
func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository       { return &fakeDocumentRepo{u} }
func (u *fakeUnitOfWork) GeneratedFeatureRepository() contract.GeneratedFeatureRepository {
	return &fakeFeatureRepo{u}
}
func (u *fakeUnitOfWork) GeneratedTaskRepository() contract.GeneratedTaskRepository {
	return &fakeTaskRepo{u}
}
func (u *fakeUnitOfWork) RoadmapRepository() contract.RoadmapRepository         { return &fakeRoadmapRepo{u} }
func (u *fakeUnitOfWork) RoadmapItemRepository() contract.RoadmapItemRepository {
	return &fakeRoadmapItemRepo{u}
}
func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{u}
}
func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{u}
}
func (u *fakeUnitOfWork) TemplateRepository() contract.TemplateRepository       { return &fakeTemplateRepo{u} }
func (u *fakeUnitOfWork) CanvasRepository() contract.CanvasRepository           { return &fakeCanvasRepo{u} }

// fakeFactory satisfies unitofwork.RepositoryFactory and always hands
// back the same unit of work.
type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// specFields flattens an entity into column-name keyed values so the
// fakes can interpret the same specifications the real repositories
// hand to gorm.
type specFields map[string]interface{}

func matchSpecs(fields specFields, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if fields["id"] != s.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range s.IDs {
				if fields["id"] == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.UserOwnedBy:
			if fields["user_id"] != s.UserID {
				return false
			}
		case specification.ByDocumentID:
			if fields["document_id"] != s.DocumentID {
				return false
			}
		case specification.ByEmail:
			if fields["email"] != s.Email {
				return false
			}
		case specification.ByChatSessionID:
			if fields["chat_session_id"] != s.SessionID {
				return false
			}
		case specification.ByRole:
			if fields["role"] != s.Role {
				return false
			}
		case specification.ByName:
			if fields["name"] != s.Name {
				return false
			}
		case specification.ByCategory:
			if fields["category"] != s.Category {
				return false
			}
		case specification.StartersOnly:
			if fields["is_starter"] != true {
				return false
			}
		case specification.VisibleToUser:
			if fields["is_starter"] != true && fields["user_id"] != s.UserID {
				return false
			}
		case specification.FilterBy:
			if fields[s.Field] != s.Value {
				return false
			}
		case specification.ByItemStatus:
			if fields["status"] != s.Status {
				return false
			}
		case specification.TitleContains:
			title, _ := fields["title"].(string)
			if !strings.Contains(strings.ToLower(title), strings.ToLower(s.Query)) {
				return false
			}
		case specification.OrderBy, specification.Pagination:
			// Fakes keep insertion order; ordering is exercised against
			// the real repositories, not here.
		}
	}
	return true
}

var errFakeUpdate = errors.New("update rejected")

type fakeUserRepo struct{ u *fakeUnitOfWork }

func userFields(e *entity.User) specFields {
	return specFields{"id": e.Id, "email": e.Email}
}

func (r *fakeUserRepo) Create(ctx context.Context, e *entity.User) error {
	r.u.users = append(r.u.users, e)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, e *entity.User) error { return nil }

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range r.u.users {
		if e.Id == id {
			r.u.users = append(r.u.users[:i], r.u.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, e := range r.u.users {
		if matchSpecs(userFields(e), specs) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, e := range r.u.users {
		if matchSpecs(userFields(e), specs) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeDocumentRepo struct{ u *fakeUnitOfWork }

func documentFields(e *entity.Document) specFields {
	return specFields{"id": e.Id, "user_id": e.UserId, "title": e.Title}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, e *entity.Document) error {
	r.u.documents = append(r.u.documents, e)
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, e *entity.Document) error {
	for i, d := range r.u.documents {
		if d.Id == e.Id {
			r.u.documents[i] = e
			return nil
		}
	}
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range r.u.documents {
		if e.Id == id {
			r.u.documents = append(r.u.documents[:i], r.u.documents[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	for _, e := range r.u.documents {
		if matchSpecs(documentFields(e), specs) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, e := range r.u.documents {
		if matchSpecs(documentFields(e), specs) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeFeatureRepo struct{ u *fakeUnitOfWork }

func featureFields(e *entity.GeneratedFeature) specFields {
	return specFields{"id": e.Id, "user_id": e.UserId, "document_id": e.DocumentId, "status": string(e.Status)}
}

func (r *fakeFeatureRepo) Create(ctx context.Context, e *entity.GeneratedFeature) error {
	r.u.features = append(r.u.features, e)
	return nil
}

func (r *fakeFeatureRepo) CreateBatch(ctx context.Context, es []*entity.GeneratedFeature) error {
	r.u.features = append(r.u.features, es...)
	return nil
}

func (r *fakeFeatureRepo) Update(ctx context.Context, e *entity.GeneratedFeature) error {
	if r.u.failUpdateFeatureIds[e.Id] {
		return errFakeUpdate
	}
	for i, f := range r.u.features {
		if f.Id == e.Id {
			r.u.features[i] = e
			return nil
		}
	}
	return nil
}

func (r *fakeFeatureRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range r.u.features {
		if e.Id == id {
			r.u.features = append(r.u.features[:i], r.u.features[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeFeatureRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedFeature, error) {
	for _, e := range r.u.features {
		if matchSpecs(featureFields(e), specs) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeFeatureRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedFeature, error) {
	var out []*entity.GeneratedFeature
	for _, e := range r.u.features {
		if matchSpecs(featureFields(e), specs) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeFeatureRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeTaskRepo struct{ u *fakeUnitOfWork }

func taskFields(e *entity.GeneratedTask) specFields {
	return specFields{"id": e.Id, "user_id": e.UserId, "document_id": e.DocumentId, "status": string(e.Status)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, e *entity.GeneratedTask) error {
	r.u.tasks = append(r.u.tasks, e)
	return nil
}

func (r *fakeTaskRepo) CreateBatch(ctx context.Context, es []*entity.GeneratedTask) error {
	r.u.tasks = append(r.u.tasks, es...)
	return nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, e *entity.GeneratedTask) error {
	for i, t := range r.u.tasks {
		if t.Id == e.Id {
			r.u.tasks[i] = e
			return nil
		}
	}
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range r.u.tasks {
		if e.Id == id {
			r.u.tasks = append(r.u.tasks[:i], r.u.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeTaskRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedTask, error) {
	for _, e := range r.u.tasks {
		if matchSpecs(taskFields(e), specs) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeTaskRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedTask, error) {
	var out []*entity.GeneratedTask
	for _, e := range r.u.tasks {
		if matchSpecs(taskFields(e), specs) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeRoadmapRepo struct{ u *fakeUnitOfWork }

func roadmapFields(e *entity.Roadmap) specFields {
	return specFields{"id": e.Id, "user_id": e.UserId, "document_id": e.DocumentId}
}

func (r *fakeRoadmapRepo) Create(ctx context.Context, e *entity.Roadmap) error {
	r.u.roadmaps = append(r.u.roadmaps, e)
	return nil
}

func (r *fakeRoadmapRepo) Update(ctx context.Context, e *entity.Roadmap) error { return nil }

func (r *fakeRoadmapRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range r.u.roadmaps {
		if e.Id == id {
			r.u.roadmaps = append(r.u.roadmaps[:i], r.u.roadmaps[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeRoadmapRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Roadmap, error) {
	for _, e := range r.u.roadmaps {
		if matchSpecs(roadmapFields(e), specs) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeRoadmapRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Roadmap, error) {
	var out []*entity.Roadmap
	for _, e := range r.u.roadmaps {
		if matchSpecs(roadmapFields(e), specs) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeRoadmapItemRepo struct{ u *fakeUnitOfWork }

func roadmapItemFields(e *entity.RoadmapItem) specFields {
	return specFields{"id": e.Id, "roadmap_id": e.RoadmapId}
}

func (r *fakeRoadmapItemRepo) Create(ctx context.Context, e *entity.RoadmapItem) error {
	r.u.roadmapItems = append(r.u.roadmapItems, e)
	return nil
}

func (r *fakeRoadmapItemRepo) CreateBatch(ctx context.Context, es []*entity.RoadmapItem) error {
	r.u.roadmapItems = append(r.u.roadmapItems, es...)
	return nil
}

func (r *fakeRoadmapItemRepo) Update(ctx context.Context, e *entity.RoadmapItem) error { return nil }

func (r *fakeRoadmapItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range r.u.roadmapItems {
		if e.Id == id {
			r.u.roadmapItems = append(r.u.roadmapItems[:i], r.u.roadmapItems[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeRoadmapItemRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RoadmapItem, error) {
	for _, e := range r.u.roadmapItems {
		if matchSpecs(roadmapItemFields(e), specs) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeRoadmapItemRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RoadmapItem, error) {
	var out []*entity.RoadmapItem
	for _, e := range r.u.roadmapItems {
		if matchSpecs(roadmapItemFields(e), specs) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeRoadmapItemRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeSessionRepo struct{ u *fakeUnitOfWork }

func sessionFields(e *entity.ChatSession) specFields {
	return specFields{"id": e.Id, "user_id": e.UserId, "document_id": e.DocumentId}
}

func (r *fakeSessionRepo) Create(ctx context.Context, e *entity.ChatSession) error {
	r.u.sessions = append(r.u.sessions, e)
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, e *entity.ChatSession) error { return nil }

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range r.u.sessions {
		if e.Id == id {
			r.u.sessions = append(r.u.sessions[:i], r.u.sessions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, e := range r.u.sessions {
		if matchSpecs(sessionFields(e), specs) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var out []*entity.ChatSession
	for _, e := range r.u.sessions {
		if matchSpecs(sessionFields(e), specs) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeMessageRepo struct{ u *fakeUnitOfWork }

func messageFields(e *entity.ChatMessage) specFields {
	return specFields{"id": e.Id, "chat_session_id": e.ChatSessionId, "role": e.Role, "status": string(e.Status)}
}

func (r *fakeMessageRepo) Create(ctx context.Context, e *entity.ChatMessage) error {
	r.u.messages = append(r.u.messages, e)
	return nil
}

func (r *fakeMessageRepo) Update(ctx context.Context, e *entity.ChatMessage) error {
	for i, m := range r.u.messages {
		if m.Id == e.Id {
			r.u.messages[i] = e
			return nil
		}
	}
	return nil
}

func (r *fakeMessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range r.u.messages {
		if e.Id == id {
			r.u.messages = append(r.u.messages[:i], r.u.messages[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeMessageRepo) DeleteWhere(ctx context.Context, specs ...specification.Specification) error {
	var kept []*entity.ChatMessage
	for _, e := range r.u.messages {
		if !matchSpecs(messageFields(e), specs) {
			kept = append(kept, e)
		}
	}
	r.u.messages = kept
	return nil
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	for _, e := range r.u.messages {
		if matchSpecs(messageFields(e), specs) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for _, e := range r.u.messages {
		if matchSpecs(messageFields(e), specs) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeTemplateRepo struct{ u *fakeUnitOfWork }

func templateFields(e *entity.Template) specFields {
	return specFields{"id": e.Id, "user_id": e.UserId, "name": e.Name, "category": e.Category, "is_starter": e.IsStarter}
}

func (r *fakeTemplateRepo) Create(ctx context.Context, e *entity.Template) error {
	r.u.templates = append(r.u.templates, e)
	return nil
}

func (r *fakeTemplateRepo) Update(ctx context.Context, e *entity.Template) error {
	for i, t := range r.u.templates {
		if t.Id == e.Id {
			r.u.templates[i] = e
			return nil
		}
	}
	return nil
}

func (r *fakeTemplateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range r.u.templates {
		if e.Id == id {
			r.u.templates = append(r.u.templates[:i], r.u.templates[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeTemplateRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Template, error) {
	for _, e := range r.u.templates {
		if matchSpecs(templateFields(e), specs) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeTemplateRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Template, error) {
	var out []*entity.Template
	for _, e := range r.u.templates {
		if matchSpecs(templateFields(e), specs) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeCanvasRepo struct{ u *fakeUnitOfWork }

func canvasFields(e *entity.Canvas) specFields {
	return specFields{"id": e.Id, "user_id": e.UserId, "document_id": e.DocumentId}
}

func (r *fakeCanvasRepo) Create(ctx context.Context, e *entity.Canvas) error {
	r.u.canvases = append(r.u.canvases, e)
	return nil
}

func (r *fakeCanvasRepo) Update(ctx context.Context, e *entity.Canvas) error {
	for i, c := range r.u.canvases {
		if c.Id == e.Id {
			r.u.canvases[i] = e
			return nil
		}
	}
	return nil
}

func (r *fakeCanvasRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range r.u.canvases {
		if e.Id == id {
			r.u.canvases = append(r.u.canvases[:i], r.u.canvases[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeCanvasRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Canvas, error) {
	for _, e := range r.u.canvases {
		if matchSpecs(canvasFields(e), specs) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeCanvasRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Canvas, error) {
	var out []*entity.Canvas
	for _, e := range r.u.canvases {
		if matchSpecs(canvasFields(e), specs) {
			out = append(out, e)
		}
	}
	return out, nil
}

// nopLogger keeps test output quiet.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// stubProvider scripts the model's next reply or failure.
type stubProvider struct {
	response  string
	err       error
	chatCalls int
	genCalls  int
	lastChat  []llm.Message
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.chatCalls++
	p.lastChat = history
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.genCalls++
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}
