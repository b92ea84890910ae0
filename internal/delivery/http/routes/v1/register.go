package v1

import (
	"log"

	"skillsense/internal/config"
	"skillsense/internal/database"
	"skillsense/internal/delivery/http/handler"
	"skillsense/internal/delivery/http/middleware"
	"skillsense/internal/domain/github"
	"skillsense/internal/extractor"
	"skillsense/internal/pkg/jwt"
	"skillsense/internal/repository"
	"skillsense/internal/storage"
	"skillsense/internal/usecase"
	"skillsense/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Dependencies carries the shared infrastructure the v1 routes wire into
// usecases. Everything here is built once at bootstrap.
type Dependencies struct {
	Config    config.Config
	DB        database.DB
	Store     *storage.Client
	Extractor extractor.Extractor
	GitHub    usecase.GitHubProfileFetcher
	Collector usecase.PageCollector
	Logger    *log.Logger
}

func Register(r fiber.Router, deps Dependencies) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	docRepo := repository.NewPostgresDocumentRepository(deps.DB)
	skillRepo := repository.NewPostgresSkillRepository(deps.DB)
	keywordRepo := repository.NewPostgresKeywordRepository(deps.DB)
	jobRepo := repository.NewPostgresJobRepository(deps.DB)
	matchRepo := repository.NewPostgresJobMatchRepository(deps.DB)
	orgRepo := repository.NewPostgresOrganizationRepository(deps.DB)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo)

	// A typed nil *storage.Client must not end up inside the BlobStore
	// interface, or the usecase's nil check never fires.
	var blob usecase.BlobStore
	if deps.Store != nil {
		blob = deps.Store
	}
	docUC := usecase.NewDocumentUsecase(
		docRepo, skillRepo, keywordRepo, blob, deps.Extractor,
		ws.NotifyDocumentStatus,
		func(userID uuid.UUID, fileName string) string { return storage.ObjectKey(userID, fileName) },
		deps.Config.Upload.MaxFileBytes,
		deps.Config.Upload.BatchSize,
		deps.Config.Upload.BatchParallelism,
		deps.Logger,
	)
	extractionUC := usecase.NewExtractionUsecase(skillRepo, keywordRepo, deps.Extractor, deps.Logger)
	skillUC := usecase.NewSkillUsecase(skillRepo)
	matchingUC := usecase.NewMatchingUsecase(jobRepo, matchRepo, skillRepo, deps.Extractor, deps.Logger)
	githubUC := usecase.NewGitHubUsecase(deps.GitHub, skillRepo, github.DefaultConfig(), deps.Logger)
	collectUC := usecase.NewCollectUsecase(deps.Collector, skillRepo, keywordRepo, deps.Extractor, deps.Logger)
	orgUC := usecase.NewOrganizationUsecase(orgRepo, userRepo, skillRepo, deps.Logger)

	handler.NewAuthHandler(authUC).RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", authMw.Middleware())
	handler.NewUserHandler(userUC).RegisterRoutes(protected.Group("/users"))
	handler.NewDocumentHandler(docUC).RegisterRoutes(protected.Group("/documents"))
	handler.NewSkillHandler(skillUC, extractionUC).RegisterRoutes(protected.Group("/skills"))
	handler.NewEnhanceHandler(extractionUC).RegisterRoutes(protected.Group("/cv"))
	handler.NewJobHandler(matchingUC).RegisterRoutes(protected.Group("/jobs"))
	handler.NewGitHubHandler(githubUC).RegisterRoutes(protected.Group("/github"))
	handler.NewCollectHandler(collectUC).RegisterRoutes(protected.Group("/collect"))
	handler.NewOrganizationHandler(orgUC).RegisterRoutes(protected.Group("/organizations"))
}
