package usecase

import (
	"context"
	"errors"
	"log"

	"skillsense/internal/domain/document"
	"skillsense/internal/domain/extraction"
	"skillsense/internal/extractor"
	"skillsense/internal/ingestion"
	"skillsense/internal/pipeline"
	"skillsense/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrDocumentNotFound       = errors.New("document not found")
	ErrDocumentNotProcessable = errors.New("document is not in a processable state")
	ErrStorageUnavailable     = errors.New("document storage unavailable")
)

// BlobStore is the subset of the storage client the document flow needs.
type BlobStore interface {
	PutDocument(ctx context.Context, key, contentType string, data []byte) error
	GetDocument(ctx context.Context, key string) ([]byte, error)
}

// StatusNotifier pushes document status transitions to connected clients.
type StatusNotifier func(userID, documentID uuid.UUID, status document.Status)

type UploadInput struct {
	FileName string
	MimeType string
	Source   document.SourceType
	Data     []byte
}

type BatchItem struct {
	FileName string
	Document document.Document
	Err      error
}

type ProcessResult struct {
	Document document.Document
	Skills   []extraction.AggregatedSkill
	Stats    extraction.Stats
}

type DocumentUsecase interface {
	Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (document.Document, error)
	UploadBatch(ctx context.Context, userID uuid.UUID, inputs []UploadInput) []BatchItem
	Process(ctx context.Context, userID, documentID uuid.UUID) (ProcessResult, error)
	List(ctx context.Context, userID uuid.UUID) ([]document.Document, error)
	Get(ctx context.Context, userID, documentID uuid.UUID) (document.Document, error)
	Delete(ctx context.Context, userID, documentID uuid.UUID) error
}

type Document struct {
	docs      repository.DocumentRepository
	skills    repository.SkillRepository
	keywords  repository.KeywordRepository
	store     BlobStore
	extractor extractor.Extractor
	notify    StatusNotifier
	keyFn     func(userID uuid.UUID, fileName string) string

	maxFileBytes     int64
	batchSize        int
	batchParallelism int

	logger *log.Logger
}

func NewDocumentUsecase(
	docs repository.DocumentRepository,
	skills repository.SkillRepository,
	keywords repository.KeywordRepository,
	store BlobStore,
	ext extractor.Extractor,
	notify StatusNotifier,
	keyFn func(userID uuid.UUID, fileName string) string,
	maxFileBytes int64,
	batchSize int,
	batchParallelism int,
	logger *log.Logger,
) *Document {
	if notify == nil {
		notify = func(uuid.UUID, uuid.UUID, document.Status) {}
	}
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Document{
		docs:             docs,
		skills:           skills,
		keywords:         keywords,
		store:            store,
		extractor:        ext,
		notify:           notify,
		keyFn:            keyFn,
		maxFileBytes:     maxFileBytes,
		batchSize:        batchSize,
		batchParallelism: batchParallelism,
		logger:           logger,
	}
}

func (u *Document) Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (document.Document, error) {
	if userID == uuid.Nil {
		return document.Document{}, ErrUnauthorized
	}
	if u.store == nil {
		return document.Document{}, ErrStorageUnavailable
	}

	mime := ingestion.DetectMime(in.FileName, in.MimeType)
	if err := ingestion.ValidateUpload(in.FileName, mime, int64(len(in.Data)), u.maxFileBytes); err != nil {
		return document.Document{}, err
	}

	source := in.Source
	if source == "" {
		source = document.SourceCV
	}

	key := u.keyFn(userID, in.FileName)
	if err := u.store.PutDocument(ctx, key, mime, in.Data); err != nil {
		u.logger.Printf("document upload: store put failed: %v", err)
		return document.Document{}, ErrInternal
	}

	doc := document.Document{
		ID:          uuid.New(),
		UserID:      userID,
		FileName:    in.FileName,
		StoragePath: key,
		MimeType:    mime,
		SizeBytes:   int64(len(in.Data)),
		Source:      source,
		Status:      document.StatusPending,
	}
	if err := u.docs.Create(ctx, doc); err != nil {
		u.logger.Printf("document upload: create failed: %v", err)
		return document.Document{}, ErrInternal
	}
	return doc, nil
}

// UploadBatch uploads up to batchSize files, at most batchParallelism in
// flight at once. One file failing never fails the batch; each item carries
// its own outcome.
func (u *Document) UploadBatch(ctx context.Context, userID uuid.UUID, inputs []UploadInput) []BatchItem {
	if len(inputs) > u.batchSize {
		inputs = inputs[:u.batchSize]
	}

	items := make([]BatchItem, len(inputs))
	indexes := make([]int, len(inputs))
	for i := range inputs {
		indexes[i] = i
		items[i].FileName = inputs[i].FileName
	}

	errs := pipeline.RunChunked(ctx, indexes, u.batchParallelism, func(ctx context.Context, i int) error {
		doc, err := u.Upload(ctx, userID, inputs[i])
		if err != nil {
			return err
		}
		items[i].Document = doc
		return nil
	})
	for i := range items {
		items[i].Err = errs[i]
	}
	return items
}

// Process runs the extraction pipeline for one uploaded document: download,
// text extraction, skill extraction, aggregation, persistence. The document
// moves pending -> processing -> completed, or -> failed with the reason
// recorded. Status transitions are pushed over the websocket hub.
func (u *Document) Process(ctx context.Context, userID, documentID uuid.UUID) (ProcessResult, error) {
	doc, err := u.Get(ctx, userID, documentID)
	if err != nil {
		return ProcessResult{}, err
	}
	if u.store == nil {
		return ProcessResult{}, ErrStorageUnavailable
	}
	if doc.Status == document.StatusProcessing {
		return ProcessResult{}, ErrDocumentNotProcessable
	}

	if err := u.setStatus(ctx, &doc, document.StatusProcessing, ""); err != nil {
		return ProcessResult{}, ErrInternal
	}

	result, err := u.process(ctx, doc)
	if err != nil {
		if stErr := u.setStatus(ctx, &doc, document.StatusFailed, err.Error()); stErr != nil {
			u.logger.Printf("document %s: failed to record failure: %v", doc.ID, stErr)
		}
		if errors.Is(err, ingestion.ErrUnsupportedType) {
			return ProcessResult{}, err
		}
		u.logger.Printf("document %s: processing failed: %v", doc.ID, err)
		return ProcessResult{}, ErrInternal
	}

	if err := u.setStatus(ctx, &doc, document.StatusCompleted, ""); err != nil {
		return ProcessResult{}, ErrInternal
	}
	result.Document = doc
	return result, nil
}

func (u *Document) process(ctx context.Context, doc document.Document) (ProcessResult, error) {
	data, err := u.store.GetDocument(ctx, doc.StoragePath)
	if err != nil {
		return ProcessResult{}, err
	}

	text, err := ingestion.ExtractText(doc.MimeType, data)
	if err != nil {
		return ProcessResult{}, err
	}

	candidates, err := u.extractor.ExtractSkills(ctx, text)
	if err != nil {
		return ProcessResult{}, err
	}

	agg := extraction.Aggregate(candidates, u.categorizer(ctx))
	if err := u.persistSkills(ctx, doc, agg.Skills); err != nil {
		return ProcessResult{}, err
	}

	return ProcessResult{Skills: agg.Skills, Stats: agg.Stats()}, nil
}

func (u *Document) categorizer(ctx context.Context) *extraction.Categorizer {
	entries, err := u.keywords.ListKeywords(ctx)
	if err != nil {
		u.logger.Printf("keyword lookup unavailable, using defaults: %v", err)
		entries = extraction.DefaultKeywords()
	}
	return extraction.NewCategorizer(entries)
}

func (u *Document) persistSkills(ctx context.Context, doc document.Document, skills []extraction.AggregatedSkill) error {
	docID := doc.ID
	for _, agg := range skills {
		if _, err := persistAggregated(ctx, u.skills, doc.UserID, agg, &docID); err != nil {
			return err
		}
	}
	return nil
}

func (u *Document) setStatus(ctx context.Context, doc *document.Document, status document.Status, errMsg string) error {
	if err := u.docs.UpdateStatus(ctx, doc.ID, status, errMsg); err != nil {
		return err
	}
	doc.Status = status
	doc.ErrorMessage = errMsg
	u.notify(doc.UserID, doc.ID, status)
	return nil
}

func (u *Document) List(ctx context.Context, userID uuid.UUID) ([]document.Document, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	docs, err := u.docs.FindByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return docs, nil
}

func (u *Document) Get(ctx context.Context, userID, documentID uuid.UUID) (document.Document, error) {
	if userID == uuid.Nil {
		return document.Document{}, ErrUnauthorized
	}
	doc, err := u.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return document.Document{}, ErrDocumentNotFound
		}
		return document.Document{}, ErrInternal
	}
	// Document IDs are unguessable, but ownership is still enforced.
	if doc.UserID != userID {
		return document.Document{}, ErrDocumentNotFound
	}
	return doc, nil
}

func (u *Document) Delete(ctx context.Context, userID, documentID uuid.UUID) error {
	if _, err := u.Get(ctx, userID, documentID); err != nil {
		return err
	}
	if err := u.docs.Delete(ctx, documentID, userID); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return ErrDocumentNotFound
		}
		return ErrInternal
	}
	return nil
}
