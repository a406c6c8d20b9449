package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edtrack/core/assignment"
	"github.com/trezcool/edtrack/core/user"
)

type (
	// SubmitResponse is the body of a successful submission.
	SubmitResponse struct {
		Message  string `json:"message"`
		FilePath string `json:"file_path"`
	}

	// SubmissionResponse is one entry of the submissions list.
	SubmissionResponse struct {
		StudentID   int64     `json:"student_id"`
		FilePath    string    `json:"file_path"`
		SubmittedAt time.Time `json:"submitted_at"`
	}

	assignmentApi struct {
		svc      *assignment.Service
		validate *validator.Validate
	}
)

func registerAssignmentAPI(g *echo.Group, svc *assignment.Service, validate *validator.Validate) {
	api := assignmentApi{
		svc:      svc,
		validate: validate,
	}

	teacherOnly := func(action string) echo.MiddlewareFunc {
		return roleMiddleware(user.RoleTeacher, "only teachers can "+action)
	}
	studentOnly := func(action string) echo.MiddlewareFunc {
		return roleMiddleware(user.RoleStudent, "only students can "+action)
	}

	g.POST("/create", api.create, teacherOnly("create assignments"))
	g.POST("/:id/submit", api.submit, studentOnly("submit assignments"))
	g.GET("/:id/submissions", api.querySubmissions, teacherOnly("view submissions"))
}

// Handlers

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if _, err = api.svc.Create(ctx.Request().Context(), usr.ID, data); err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Assignment created"})
}

func (api *assignmentApi) submit(ctx echo.Context) error {
	id, err := bindPathID(ctx)
	if err != nil {
		return err
	}
	fh, err := bindUpload(ctx, fileField)
	if err != nil {
		return err
	}
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening upload")
	}
	defer func() { _ = src.Close() }()

	sub, err := api.svc.Submit(ctx.Request().Context(), id, usr.ID, fh.Filename, src)
	if err != nil {
		return errors.Wrap(err, "submitting assignment")
	}
	return ctx.JSON(http.StatusOK, SubmitResponse{Message: "Submission successful", FilePath: sub.FilePath})
}

func (api *assignmentApi) querySubmissions(ctx echo.Context) error {
	id, err := bindPathID(ctx)
	if err != nil {
		return err
	}

	subs, err := api.svc.QuerySubmissions(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	resp := make([]SubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, SubmissionResponse{
			StudentID:   sub.StudentID,
			FilePath:    sub.FilePath,
			SubmittedAt: sub.SubmittedAt,
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}
