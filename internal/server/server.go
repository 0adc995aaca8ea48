package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
	"github.com/briangibbs/overwhelmed-tools/internal/engine"
	"github.com/briangibbs/overwhelmed-tools/internal/exporter"
	"github.com/briangibbs/overwhelmed-tools/internal/migrate"
	"github.com/briangibbs/overwhelmed-tools/internal/planstore"
	"github.com/briangibbs/overwhelmed-tools/internal/readiness"
	"github.com/briangibbs/overwhelmed-tools/internal/repo"
	"github.com/briangibbs/overwhelmed-tools/internal/roadmap"
	"github.com/briangibbs/overwhelmed-tools/internal/roi"
	"github.com/briangibbs/overwhelmed-tools/internal/scheduler"
)

const defaultActor = "api"

// Config for the HTTP API handler.
type Config struct {
	Engine   engine.Engine
	BasePath string
	// DownloadSecret signs calendar download tickets; empty means a random
	// per-process secret.
	DownloadSecret []byte
	DownloadTTL    time.Duration
	Logger         *log.Logger
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

type apiErrorBody struct {
	Code    string         `json:"code" example:"bad_request"`
	Message string         `json:"message" example:"validation: title: is required"`
	Details map[string]any `json:"details,omitempty" jsonschema:"type=object,additionalProperties=true"`
}

// apiError models the error envelope.
type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

// New returns an HTTP handler exposing the API.
func New(cfg Config) (http.Handler, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/v0"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	tickets, err := newDownloadTickets(cfg.DownloadSecret, cfg.DownloadTTL, cfg.Engine.Now)
	if err != nil {
		return nil, err
	}
	huma.DefaultArrayNullable = false
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newAPIError(status, "", msg, nil)
	}
	huma.NewErrorWithContext = func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity && strings.Contains(strings.ToLower(msg), "validation") {
			// Schema/request validation errors are plain bad requests.
			status = http.StatusBadRequest
		}
		var details map[string]any
		if len(errs) > 0 {
			details = map[string]any{"errors": errs}
		}
		return newAPIError(status, "", msg, details)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: cfg.logger(), NoColor: true}))
	router.Use(middleware.Recoverer)

	hcfg := huma.DefaultConfig("Overwhelmed Tools API", "0.1.0")
	hcfg.OpenAPIPath = "/openapi"
	hcfg.DocsPath = ""
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, basePath)

	registerDocs(router, basePath)
	registerHealth(group, cfg.Engine)
	registerOptions(group)
	registerRoadmaps(group, cfg.Engine)
	registerTasks(group, cfg.Engine)
	registerCalendar(group, cfg.Engine, tickets, basePath)
	registerReadiness(group, cfg.Engine)
	registerROI(group)
	registerEvents(group, cfg.Engine)
	registerOpenAPI(router, api, basePath)

	return router, nil
}

func newAPIError(status int, code, message string, details map[string]any) huma.StatusError {
	if code == "" {
		code = defaultCodeForStatus(status)
	}
	return &apiError{
		status: status,
		Body: apiErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

func handleError(err error) huma.StatusError {
	if err == nil {
		return nil
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		var details map[string]any
		if ve.Field != "" {
			details = map[string]any{"field": ve.Field}
		}
		return newAPIError(http.StatusBadRequest, "bad_request", err.Error(), details)
	}
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return newAPIError(http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, planstore.ErrEmpty):
		return newAPIError(http.StatusNotFound, "roadmap_not_found", "no roadmap generated yet", nil)
	case errors.Is(err, errInvalidTicket):
		return newAPIError(http.StatusNotFound, "ticket_not_found", err.Error(), nil)
	default:
		return newAPIError(http.StatusInternalServerError, "internal_error", "internal error", map[string]any{"error": err.Error()})
	}
}

func defaultCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnprocessableEntity:
		return "validation_failed"
	case http.StatusInternalServerError:
		return "internal_error"
	default:
		return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
}

func actorFromHeader(r string) string {
	if strings.TrimSpace(r) == "" {
		return defaultActor
	}
	return r
}

func registerDocs(r chi.Router, basePath string) {
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, swaggerHTML(basePath))
	})
}

func registerOpenAPI(r chi.Router, api huma.API, basePath string) {
	var once sync.Once
	var spec []byte
	specPath := path.Join(basePath, "openapi.json")
	r.Get(specPath, func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { spec, _ = json.Marshal(api.OpenAPI()) })
		w.Header().Set("Content-Type", "application/json")
		w.Write(spec)
	})
}

func swaggerHTML(basePath string) string {
	specURL := path.Join("/", path.Join(basePath, "openapi.json"))
	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Overwhelmed Tools API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
    <script>
      window.onload = () => {
        SwaggerUIBundle({
          url: '%s',
          dom_id: '#swagger-ui'
        });
      };
    </script>
  </body>
</html>`, specURL)
}

func registerHealth(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string `json:"body"`
	}, error) {
		v, err := migrate.Version(ctx, e.DB)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body map[string]string `json:"body"`
		}{Body: map[string]string{"status": "ok", "schema_version": strconv.Itoa(v)}}, nil
	})
}

func registerOptions(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-options",
		Method:      http.MethodGet,
		Path:        "/options",
		Summary:     "List industries, sizes, goals and calendar kinds",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body OptionsResponse `json:"body"`
	}, error) {
		return &struct {
			Body OptionsResponse `json:"body"`
		}{Body: OptionsResponse{
			Industries:    domain.Industries,
			Sizes:         domain.BusinessSizes,
			Goals:         domain.Goals,
			CalendarKinds: domain.CalendarKinds,
			Profiles:      roadmap.Profiles(),
		}}, nil
	})
}

func registerRoadmaps(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "generate-roadmap",
		Method:      http.MethodPost,
		Path:        "/roadmaps",
		Summary:     "Generate a roadmap and store it as the latest plan",
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		Actor string `header:"X-Actor-Id"`
		Body  GenerateRoadmapRequest
	}) (*struct {
		Body domain.Roadmap `json:"body"`
	}, error) {
		rm, err := e.GenerateRoadmap(ctx, input.Body.profile(), actorFromHeader(input.Actor))
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Roadmap `json:"body"`
		}{Body: rm}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "latest-roadmap",
		Method:      http.MethodGet,
		Path:        "/roadmaps/latest",
		Summary:     "Latest generated roadmap",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body domain.Roadmap `json:"body"`
	}, error) {
		rm, err := e.LatestRoadmap(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Roadmap `json:"body"`
		}{Body: rm}, nil
	})
}

func registerTasks(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Summary:     "List scheduled tasks",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []domain.ScheduledTask `json:"body"`
	}, error) {
		items, err := e.ListTasks(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body []domain.ScheduledTask `json:"body"`
		}{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-task",
		Method:        http.MethodPost,
		Path:          "/tasks",
		Summary:       "Add a task",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Actor string `header:"X-Actor-Id"`
		Body  CreateTaskRequest
	}) (*struct {
		Body domain.ScheduledTask `json:"body"`
	}, error) {
		t, err := e.AddTask(ctx, scheduler.NewTask{
			Title:    input.Body.Title,
			Date:     input.Body.Date,
			Time:     input.Body.Time,
			Category: input.Body.Category,
		}, actorFromHeader(input.Actor))
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.ScheduledTask `json:"body"`
		}{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "import-tasks",
		Method:      http.MethodPost,
		Path:        "/tasks/import",
		Summary:     "Append the latest roadmap's tasks",
	}, func(ctx context.Context, input *struct {
		Actor string `header:"X-Actor-Id"`
	}) (*struct {
		Body ImportResponse `json:"body"`
	}, error) {
		added, err := e.ImportTasks(ctx, actorFromHeader(input.Actor))
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body ImportResponse `json:"body"`
		}{Body: ImportResponse{Added: added, Count: len(added)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "export-tasks-sheet",
		Method:      http.MethodGet,
		Path:        "/tasks/export.xlsx",
		Summary:     "Download the task list as a spreadsheet",
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, _ *struct{}) (*fileOutput, error) {
		data, err := e.ExportSheet(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return newFileOutput(exporter.SheetContentType, exporter.SheetFileName, data), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/tasks/{task_id}",
		Summary:     "Get a task",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		TaskID string `path:"task_id"`
	}) (*struct {
		Body domain.ScheduledTask `json:"body"`
	}, error) {
		t, err := e.GetTask(ctx, input.TaskID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.ScheduledTask `json:"body"`
		}{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-task",
		Method:        http.MethodDelete,
		Path:          "/tasks/{task_id}",
		Summary:       "Delete a task; unknown ids are ignored",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct {
		Actor  string `header:"X-Actor-Id"`
		TaskID string `path:"task_id"`
	}) (*struct{}, error) {
		if _, err := e.DeleteTask(ctx, input.TaskID, actorFromHeader(input.Actor)); err != nil {
			return nil, handleError(err)
		}
		return &struct{}{}, nil
	})
}

type fileOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func newFileOutput(contentType, name string, data []byte) *fileOutput {
	return &fileOutput{
		ContentType:        contentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", name),
		Body:               data,
	}
}

func registerCalendar(api huma.API, e engine.Engine, tickets downloadTickets, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-calendar-export",
		Method:        http.MethodPost,
		Path:          "/calendar/exports",
		Summary:       "Export tasks for a calendar application and get a download link",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Actor string `header:"X-Actor-Id"`
		Body  CalendarExportRequest
	}) (*struct {
		Body CalendarExportResponse `json:"body"`
	}, error) {
		kind := domain.CalendarKind(input.Body.Kind)
		f, count, err := e.ExportCalendar(ctx, kind, actorFromHeader(input.Actor))
		if err != nil {
			return nil, handleError(err)
		}
		token, expires, err := tickets.issue(kind, f)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body CalendarExportResponse `json:"body"`
		}{Body: CalendarExportResponse{
			Ticket:    token,
			FileName:  f.Name,
			URL:       path.Join(basePath, "calendar/exports", token),
			ExpiresAt: expires.UTC().Format(time.RFC3339),
			TaskCount: count,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "download-calendar-export",
		Method:      http.MethodGet,
		Path:        "/calendar/exports/{ticket}",
		Summary:     "Download an exported calendar document",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		Ticket string `path:"ticket"`
	}) (*fileOutput, error) {
		f, err := tickets.open(input.Ticket)
		if err != nil {
			return nil, handleError(err)
		}
		return newFileOutput(f.ContentType, f.Name, f.Data), nil
	})
}

func registerReadiness(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "list-readiness-questions",
		Method:      http.MethodGet,
		Path:        "/readiness/questions",
		Summary:     "Readiness questions and score bands",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body struct {
			Questions []readiness.Question `json:"questions"`
			Levels    []readiness.Level    `json:"levels"`
		} `json:"body"`
	}, error) {
		out := &struct {
			Body struct {
				Questions []readiness.Question `json:"questions"`
				Levels    []readiness.Level    `json:"levels"`
			} `json:"body"`
		}{}
		out.Body.Questions = readiness.Questions
		out.Body.Levels = readiness.Levels
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-readiness-assessment",
		Method:        http.MethodPost,
		Path:          "/readiness",
		Summary:       "Score a readiness assessment",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Actor string `header:"X-Actor-Id"`
		Body  ReadinessRequest
	}) (*struct {
		Body ReadinessResponse `json:"body"`
	}, error) {
		res, a, err := e.Assess(ctx, input.Body.Answers, actorFromHeader(input.Actor))
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body ReadinessResponse `json:"body"`
		}{Body: ReadinessResponse{
			ID:       a.ID,
			Result:   res,
			Report:   readiness.Report(res),
			FileName: readiness.ReportFileName,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-readiness-assessments",
		Method:      http.MethodGet,
		Path:        "/readiness",
		Summary:     "Past readiness assessments",
	}, func(ctx context.Context, input *struct {
		Limit int `query:"limit" default:"20"`
	}) (*struct {
		Body []repo.Assessment `json:"body"`
	}, error) {
		items, err := e.Repo.ListAssessments(ctx, normalizeLimit(input.Limit))
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body []repo.Assessment `json:"body"`
		}{Body: items}, nil
	})
}

func registerROI(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "calculate-roi",
		Method:      http.MethodPost,
		Path:        "/roi",
		Summary:     "Estimate the return on a monthly AI budget",
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body ROIRequest
	}) (*struct {
		Body roi.Estimate `json:"body"`
	}, error) {
		res, err := roi.Calculate(roi.Input{
			Implementation: roi.Implementation(input.Body.Implementation),
			MonthlyBudget:  input.Body.MonthlyBudget,
			HoursSaved:     input.Body.HoursSaved,
			HourlyRate:     input.Body.HourlyRate,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body roi.Estimate `json:"body"`
		}{Body: res}, nil
	})
}

func registerEvents(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "list-events",
		Method:      http.MethodGet,
		Path:        "/events",
		Summary:     "List recent events",
	}, func(ctx context.Context, input *struct {
		Type       string `query:"type"`
		EntityKind string `query:"entity_kind" enum:"roadmap,task,calendar,assessment"`
		EntityID   string `query:"entity_id"`
		Limit      int    `query:"limit" default:"50"`
	}) (*struct {
		Body paginatedEvents `json:"body"`
	}, error) {
		items, err := e.Repo.LatestEvents(ctx, normalizeLimit(input.Limit), input.Type, input.EntityKind, input.EntityID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body paginatedEvents `json:"body"`
		}{Body: paginatedEvents{Items: items}}, nil
	})
}

func normalizeLimit(in int) int {
	if in <= 0 {
		return 50
	}
	if in > 500 {
		return 500
	}
	return in
}
