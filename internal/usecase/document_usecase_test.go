package usecase

import (
	"context"
	"errors"
	"testing"

	"skillsense/internal/domain/document"
	"skillsense/internal/domain/extraction"
	"skillsense/internal/domain/skill"
	"skillsense/internal/ingestion"

	"github.com/google/uuid"
)

func testKeyFn(userID uuid.UUID, fileName string) string {
	return userID.String() + "/" + fileName
}

func newDocumentUsecase(docs *mockDocumentRepo, skills *mockSkillRepo, store *memStore, ext fakeExtractor, notify StatusNotifier) *Document {
	return NewDocumentUsecase(docs, skills, mockKeywordRepo{}, store, ext, notify, testKeyFn, 1<<20, 10, 3, testLogger())
}

func TestDocumentUpload_RejectsUnsupportedType(t *testing.T) {
	uc := newDocumentUsecase(newMockDocumentRepo(), newMockSkillRepo(), newMemStore(), fakeExtractor{}, nil)

	_, err := uc.Upload(context.Background(), uuid.New(), UploadInput{
		FileName: "photo.png",
		MimeType: "image/png",
		Data:     []byte{1, 2, 3},
	})
	if !errors.Is(err, ingestion.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestDocumentUpload_StorageUnavailable(t *testing.T) {
	docs := newMockDocumentRepo()
	uc := NewDocumentUsecase(docs, newMockSkillRepo(), mockKeywordRepo{}, nil, fakeExtractor{}, nil, testKeyFn, 1<<20, 10, 3, testLogger())

	_, err := uc.Upload(context.Background(), uuid.New(), UploadInput{
		FileName: "resume.txt",
		MimeType: "text/plain",
		Data:     []byte("text"),
	})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if len(docs.docs) != 0 {
		t.Fatalf("no document row should be created without storage")
	}
}

func TestDocumentUpload_StoresAndPersists(t *testing.T) {
	docs := newMockDocumentRepo()
	store := newMemStore()
	uc := newDocumentUsecase(docs, newMockSkillRepo(), store, fakeExtractor{}, nil)

	userID := uuid.New()
	doc, err := uc.Upload(context.Background(), userID, UploadInput{
		FileName: "resume.txt",
		MimeType: "text/plain",
		Data:     []byte("Go developer with 5 years of experience"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if doc.Status != document.StatusPending {
		t.Fatalf("expected pending, got %s", doc.Status)
	}
	if doc.Source != document.SourceCV {
		t.Fatalf("expected cv default source, got %s", doc.Source)
	}
	if _, err := store.GetDocument(context.Background(), doc.StoragePath); err != nil {
		t.Fatalf("blob not stored: %v", err)
	}
	if _, err := docs.FindByID(context.Background(), doc.ID); err != nil {
		t.Fatalf("document row not stored: %v", err)
	}
}

func TestDocumentProcess_HappyPath(t *testing.T) {
	docs := newMockDocumentRepo()
	skills := newMockSkillRepo()
	store := newMemStore()

	var notified []document.Status
	notify := func(_ uuid.UUID, _ uuid.UUID, status document.Status) {
		notified = append(notified, status)
	}

	ext := fakeExtractor{candidates: []extraction.Candidate{
		{Name: "Go", Confidence: 0.9, Proficiency: skill.LevelAdvanced},
		{Name: "Docker", Confidence: 0.6},
		{Name: "Perl", Confidence: 0.3},
	}}
	uc := newDocumentUsecase(docs, skills, store, ext, notify)

	userID := uuid.New()
	doc, err := uc.Upload(context.Background(), userID, UploadInput{
		FileName: "resume.txt",
		MimeType: "text/plain",
		Data:     []byte("some resume text"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	res, err := uc.Process(context.Background(), userID, doc.ID)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Document.Status != document.StatusCompleted {
		t.Fatalf("expected completed, got %s", res.Document.Status)
	}
	if len(res.Skills) != 2 {
		t.Fatalf("expected 2 kept skills, got %d", len(res.Skills))
	}
	if res.Stats.HiddenLowConfidence != 1 {
		t.Fatalf("expected 1 hidden candidate, got %d", res.Stats.HiddenLowConfidence)
	}
	if len(skills.evidence) != 2 {
		t.Fatalf("expected 2 evidence rows, got %d", len(skills.evidence))
	}
	for _, ev := range skills.evidence {
		if ev.DocumentID == nil || *ev.DocumentID != doc.ID {
			t.Fatalf("evidence not linked to document")
		}
	}
	if len(notified) != 2 || notified[0] != document.StatusProcessing || notified[1] != document.StatusCompleted {
		t.Fatalf("unexpected status notifications: %v", notified)
	}
}

func TestDocumentProcess_ExtractorFailureMarksFailed(t *testing.T) {
	docs := newMockDocumentRepo()
	store := newMemStore()
	ext := fakeExtractor{err: errors.New("model unavailable")}
	uc := newDocumentUsecase(docs, newMockSkillRepo(), store, ext, nil)

	userID := uuid.New()
	doc, err := uc.Upload(context.Background(), userID, UploadInput{
		FileName: "resume.txt",
		MimeType: "text/plain",
		Data:     []byte("text"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, err := uc.Process(context.Background(), userID, doc.ID); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}

	stored, _ := docs.FindByID(context.Background(), doc.ID)
	if stored.Status != document.StatusFailed {
		t.Fatalf("expected failed status, got %s", stored.Status)
	}
	if stored.ErrorMessage == "" {
		t.Fatalf("expected failure reason recorded")
	}
}

func TestDocumentProcess_OwnershipEnforced(t *testing.T) {
	docs := newMockDocumentRepo()
	store := newMemStore()
	uc := newDocumentUsecase(docs, newMockSkillRepo(), store, fakeExtractor{}, nil)

	owner := uuid.New()
	doc, err := uc.Upload(context.Background(), owner, UploadInput{
		FileName: "resume.txt",
		MimeType: "text/plain",
		Data:     []byte("text"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, err := uc.Process(context.Background(), uuid.New(), doc.ID); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound for non-owner, got %v", err)
	}
}

func TestDocumentUploadBatch_IsolatesFailures(t *testing.T) {
	docs := newMockDocumentRepo()
	uc := newDocumentUsecase(docs, newMockSkillRepo(), newMemStore(), fakeExtractor{}, nil)

	userID := uuid.New()
	items := uc.UploadBatch(context.Background(), userID, []UploadInput{
		{FileName: "a.txt", MimeType: "text/plain", Data: []byte("one")},
		{FileName: "bad.png", MimeType: "image/png", Data: []byte{1}},
		{FileName: "c.txt", MimeType: "text/plain", Data: []byte("three")},
	})

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Err != nil || items[2].Err != nil {
		t.Fatalf("expected items 0 and 2 to succeed: %v, %v", items[0].Err, items[2].Err)
	}
	if items[1].Err == nil {
		t.Fatalf("expected item 1 to fail")
	}
	if items[0].Document.ID == uuid.Nil || items[2].Document.ID == uuid.Nil {
		t.Fatalf("expected documents on successful items")
	}
}

func TestDocumentUploadBatch_CapsBatchSize(t *testing.T) {
	uc := newDocumentUsecase(newMockDocumentRepo(), newMockSkillRepo(), newMemStore(), fakeExtractor{}, nil)

	inputs := make([]UploadInput, 12)
	for i := range inputs {
		inputs[i] = UploadInput{FileName: "f.txt", MimeType: "text/plain", Data: []byte("x")}
	}
	items := uc.UploadBatch(context.Background(), uuid.New(), inputs)
	if len(items) != 10 {
		t.Fatalf("expected batch capped at 10, got %d", len(items))
	}
}
