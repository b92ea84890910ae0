package handler

import (
	"errors"
	"io"
	"mime/multipart"

	"skillsense/internal/delivery/http/dto"
	"skillsense/internal/delivery/http/middleware"
	"skillsense/internal/domain/document"
	"skillsense/internal/ingestion"
	"skillsense/internal/pkg/response"
	"skillsense/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DocumentHandler struct {
	uc usecase.DocumentUsecase
}

func NewDocumentHandler(uc usecase.DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

func (h *DocumentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/upload", h.Upload)
	r.Post("/upload/batch", h.UploadBatch)
	r.Post("/:id/process", h.Process)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Delete("/:id", h.Delete)
}

func (h *DocumentHandler) Upload(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing file", nil, err)
	}

	in, err := uploadInputFromFile(fileHeader, c.FormValue("source_type"))
	if err != nil {
		return err
	}

	doc, err := h.uc.Upload(c.Context(), userID, in)
	if err != nil {
		return mapDocumentError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromDocument(doc))
}

func (h *DocumentHandler) UploadBatch(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	files := form.File["files"]
	if len(files) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "No files provided", nil, nil)
	}

	source := ""
	if vals := form.Value["source_type"]; len(vals) > 0 {
		source = vals[0]
	}

	inputs := make([]usecase.UploadInput, 0, len(files))
	for _, fh := range files {
		in, err := uploadInputFromFile(fh, source)
		if err != nil {
			return err
		}
		inputs = append(inputs, in)
	}

	items := h.uc.UploadBatch(c.Context(), userID, inputs)
	out := make([]dto.BatchItemResponse, 0, len(items))
	for _, item := range items {
		resp := dto.BatchItemResponse{FileName: item.FileName}
		if item.Err != nil {
			resp.Error = item.Err.Error()
		} else {
			d := dto.FromDocument(item.Document)
			resp.Document = &d
		}
		out = append(out, resp)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *DocumentHandler) Process(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	docID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	res, err := h.uc.Process(c.Context(), userID, docID)
	if err != nil {
		return mapDocumentError(err)
	}

	data := map[string]any{
		"document": dto.FromDocument(res.Document),
		"skills":   dto.FromAggregated(res.Skills),
		"stats":    dto.FromStats(res.Stats),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *DocumentHandler) List(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	docs, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapDocumentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromDocuments(docs))
}

func (h *DocumentHandler) Get(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	docID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	doc, err := h.uc.Get(c.Context(), userID, docID)
	if err != nil {
		return mapDocumentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromDocument(doc))
}

func (h *DocumentHandler) Delete(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	docID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), userID, docID); err != nil {
		return mapDocumentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func uploadInputFromFile(fh *multipart.FileHeader, sourceType string) (usecase.UploadInput, error) {
	f, err := fh.Open()
	if err != nil {
		return usecase.UploadInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return usecase.UploadInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}

	source := document.SourceCV
	if sourceType != "" {
		parsed, ok := document.ParseSourceType(sourceType)
		if !ok {
			return usecase.UploadInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Unknown source_type", nil, nil)
		}
		source = parsed
	}

	return usecase.UploadInput{
		FileName: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Source:   source,
		Data:     data,
	}, nil
}

func mapDocumentError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrDocumentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Document not found", nil, err)
	case errors.Is(err, usecase.ErrDocumentNotProcessable):
		return middleware.NewAppError(fiber.StatusConflict, "Document is already being processed", nil, err)
	case errors.Is(err, usecase.ErrStorageUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Document storage is unavailable", nil, err)
	case errors.Is(err, ingestion.ErrUnsupportedType):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unsupported file type", nil, err)
	case errors.Is(err, ingestion.ErrFileTooLarge):
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, err)
	case errors.Is(err, ingestion.ErrEmptyFile), errors.Is(err, ingestion.ErrBadFileName):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return mapCommonUsecaseError(err)
	}
}
