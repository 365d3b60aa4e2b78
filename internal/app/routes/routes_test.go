package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/controllers"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/repositories/repotest"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/services"
	"github.com/ASahithi2005/NoteNexus-backend/internal/middleware"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/auth"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/filestorage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct{ text string }

func (s stubExtractor) Extract(path string, maxPages int) (string, error) { return s.text, nil }

type stubSummarizer struct{}

func (stubSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	return "summary of " + text, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type apiTest struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *apiTest {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storage, err := filestorage.NewLocalStorage(t.TempDir(), "uploads")
	require.NoError(t, err)

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "routes-secret", TokenIssuer: "notenexus"})
	svc := services.NewServices(services.Dependencies{
		Repos:      repotest.NewStore().Repositories(),
		JWT:        jwtService,
		Storage:    storage,
		Extractor:  stubExtractor{text: "hello world"},
		Summarizer: stubSummarizer{},
		Summarize:  services.SummarizeOptions{ChunkSize: 1000},
		Logger:     zerolog.Nop(),
	})

	log := zerolog.Nop()
	router := gin.New()
	SetupRouter(router, Controllers{
		Auth:         controllers.NewAuthController(svc.Auth, log),
		Course:       controllers.NewCourseController(svc.Course, log),
		CourseDetail: controllers.NewCourseDetailController(svc.CourseFile, svc.Summarize, log),
		Note:         controllers.NewNoteController(svc.Note, log),
		User:         controllers.NewUserController(svc.User, log),
	}, middleware.NewAuthMiddleware(jwtService), nil)

	return &apiTest{t: t, router: router}
}

func (a *apiTest) do(method, path, token string, body interface{}) (int, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return a.send(req, token)
}

func (a *apiTest) upload(path, token, filename, title string) (int, envelope) {
	a.t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(a.t, err)
		_, err = part.Write([]byte("%PDF-1.4 fake"))
		require.NoError(a.t, err)
	}
	if title != "" {
		require.NoError(a.t, w.WriteField("title", title))
	}
	require.NoError(a.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return a.send(req, token)
}

func (a *apiTest) send(req *http.Request, token string) (int, envelope) {
	a.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type authData struct {
	Token string `json:"token"`
	User  struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
}

func (a *apiTest) register(name, role string) authData {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/auth/signin", "", map[string]string{
		"name": name, "email": name + "@example.com", "password": "secret123", "role": role,
	})
	require.Equal(a.t, http.StatusOK, code, env.Error)
	return decode[authData](a.t, env.Data)
}

func (a *apiTest) createCourse(token, title string) string {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/courses/create", token, map[string]string{
		"title": title, "description": "d", "color": "#fff", "colorName": "white",
	})
	require.Equal(a.t, http.StatusCreated, code, env.Error)
	return decode[struct {
		ID string `json:"_id"`
	}](a.t, env.Data).ID
}

func TestPingAndHealth(t *testing.T) {
	api := newAPI(t)

	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")

	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	api := newAPI(t)
	mentor := api.register("ada", "mentor")
	assert.NotEmpty(t, mentor.Token)
	assert.Equal(t, "mentor", mentor.User.Role)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		code, env := api.do(http.MethodPost, "/api/auth/signin", "", map[string]string{
			"name": "ada2", "email": "ada@example.com", "password": "x", "role": "mentor",
		})
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "RES_002", env.Error.Code)
	})

	t.Run("signup validation", func(t *testing.T) {
		code, env := api.do(http.MethodPost, "/api/auth/signin", "", map[string]string{"name": "x"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, env.Success)
	})

	t.Run("login succeeds", func(t *testing.T) {
		code, env := api.do(http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "ada@example.com", "password": "secret123", "role": "mentor",
		})
		require.Equal(t, http.StatusOK, code)
		assert.NotEmpty(t, decode[authData](t, env.Data).Token)
	})

	failures := []map[string]string{
		{"email": "ada@example.com", "password": "wrong", "role": "mentor"},
		{"email": "ada@example.com", "password": "secret123", "role": "student"},
		{"email": "nobody@example.com", "password": "secret123", "role": "mentor"},
	}
	for _, body := range failures {
		code, env := api.do(http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "AUTH_001", env.Error.Code)
		assert.Equal(t, "Invalid credentials", env.Error.Message)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodGet, "/api/courses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "No token, authorization denied", env.Error.Message)

	code, _ = api.do(http.MethodGet, "/api/courses", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestCourseLifecycle(t *testing.T) {
	api := newAPI(t)
	mentor := api.register("ada", "mentor")
	student := api.register("bob", "student")

	code, env := api.do(http.MethodPost, "/api/courses/create", student.Token, map[string]string{
		"title": "X", "description": "d", "color": "#000", "colorName": "black",
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
	assert.Equal(t, "Only mentors can perform this action", env.Error.Message)

	courseID := api.createCourse(mentor.Token, "Algo")

	code, env = api.do(http.MethodPost, "/api/courses/join/"+courseID, mentor.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Only students can perform this action", env.Error.Message)

	code, env = api.do(http.MethodDelete, "/api/courses/"+courseID, student.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Only mentors can perform this action", env.Error.Message)

	code, env = api.do(http.MethodGet, "/api/courses", student.Token, nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[[]struct {
		ID     string `json:"_id"`
		Joined *bool  `json:"joined"`
	}](t, env.Data)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Joined)
	assert.False(t, *list[0].Joined)

	code, _ = api.do(http.MethodPost, "/api/courses/join/"+courseID, student.Token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodPost, "/api/courses/join/"+courseID, student.Token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = api.do(http.MethodGet, "/api/courses/"+courseID+"/students", mentor.Token, nil)
	require.Equal(t, http.StatusOK, code)
	roster := decode[struct {
		Students []struct {
			ID string `json:"_id"`
		} `json:"students"`
	}](t, env.Data)
	require.Len(t, roster.Students, 1)
	assert.Equal(t, student.User.ID, roster.Students[0].ID)

	code, _ = api.do(http.MethodGet, "/api/courses/"+courseID+"/students", student.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	other := api.register("eve", "mentor")
	code, _ = api.do(http.MethodDelete, "/api/courses/"+courseID, other.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = api.do(http.MethodDelete, "/api/courses/"+courseID, mentor.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Course deleted successfully", env.Message)

	code, _ = api.do(http.MethodGet, "/api/courseDetail/"+courseID, mentor.Token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCourseDetailFiles(t *testing.T) {
	api := newAPI(t)
	mentor := api.register("ada", "mentor")
	student := api.register("bob", "student")
	courseID := api.createCourse(mentor.Token, "Algo")
	base := "/api/courseDetail/" + courseID

	code, env := api.upload(base+"/others", mentor.Token, "a.pdf", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid section. Must be syllabus, notes, or assignments.", env.Error.Message)

	code, env = api.upload(base+"/notes", mentor.Token, "", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "No file uploaded", env.Error.Message)

	code, _ = api.upload(base+"/assignments", student.Token, "hw.pdf", "")
	assert.Equal(t, http.StatusForbidden, code)

	code, env = api.upload(base+"/notes", mentor.Token, "lecture one.pdf", "Lecture 1")
	require.Equal(t, http.StatusOK, code, env.Error)
	detail := decode[struct {
		Notes []struct {
			Title      string `json:"title"`
			FileURL    string `json:"fileUrl"`
			UploadedBy *struct {
				Name string `json:"name"`
			} `json:"uploadedBy"`
		} `json:"notes"`
	}](t, env.Data)
	require.Len(t, detail.Notes, 1)
	assert.Equal(t, "Lecture 1", detail.Notes[0].Title)
	assert.True(t, strings.HasPrefix(detail.Notes[0].FileURL, "uploads/notes/"))
	assert.True(t, strings.HasSuffix(detail.Notes[0].FileURL, "-lecture-one.pdf"))
	require.NotNil(t, detail.Notes[0].UploadedBy)
	assert.Equal(t, "ada", detail.Notes[0].UploadedBy.Name)

	code, _ = api.do(http.MethodGet, base, student.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = api.do(http.MethodPost, "/api/courses/join/"+courseID, student.Token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = api.do(http.MethodPost, base+"/notes/0/summarize", student.Token, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, "summary of hello world", decode[struct {
		Summary string `json:"summary"`
	}](t, env.Data).Summary)

	code, _ = api.do(http.MethodPost, base+"/syllabus/0/summarize", student.Token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = api.do(http.MethodPost, base+"/notes/7/summarize", student.Token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = api.upload(base+"/assignments", student.Token, "hw.pdf", "")
	require.Equal(t, http.StatusOK, code)
	code, _ = api.upload(base+"/assignments", mentor.Token, "q1.pdf", "Question 1")
	require.Equal(t, http.StatusOK, code)

	// answers are left out of the aggregate
	code, env = api.do(http.MethodGet, "/api/courseAggregates/assignments", student.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 1)

	code, env = api.do(http.MethodGet, "/api/courseAggregates/notes", student.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 1)

	code, _ = api.do(http.MethodPut, base+"/description", student.Token, map[string]string{"description": "x"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = api.do(http.MethodPut, base+"/description", mentor.Token, map[string]string{"description": "fresh"})
	assert.Equal(t, http.StatusOK, code)

	code, env = api.do(http.MethodDelete, base+"/notes/abc", mentor.Token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid index.", env.Error.Message)

	code, env = api.do(http.MethodDelete, base+"/notes/0", mentor.Token, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Empty(t, decode[struct {
		Notes []json.RawMessage `json:"notes"`
	}](t, env.Data).Notes)
}

func TestNotesEndpoints(t *testing.T) {
	api := newAPI(t)
	bob := api.register("bob", "student")
	eve := api.register("eve", "student")

	code, _ := api.do(http.MethodPost, "/api/notes/add", bob.Token, map[string]string{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := api.do(http.MethodPost, "/api/notes", bob.Token, map[string]string{"title": "Exam", "description": "graphs"})
	require.Equal(t, http.StatusCreated, code)
	noteID := decode[struct {
		ID string `json:"_id"`
	}](t, env.Data).ID

	code, _ = api.do(http.MethodPut, "/api/notes/"+noteID, eve.Token, map[string]string{"title": "mine"})
	assert.Equal(t, http.StatusNotFound, code)

	code, env = api.do(http.MethodPut, "/api/notes/"+noteID, bob.Token, map[string]string{"description": "trees"})
	require.Equal(t, http.StatusOK, code)
	updated := decode[struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}](t, env.Data)
	assert.Equal(t, "Exam", updated.Title)
	assert.Equal(t, "trees", updated.Description)

	code, env = api.do(http.MethodGet, "/api/notes", eve.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]json.RawMessage](t, env.Data))

	code, env = api.do(http.MethodDelete, "/api/notes/"+noteID, bob.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Note deleted", env.Message)
}

func TestUserEndpoints(t *testing.T) {
	api := newAPI(t)
	mentor := api.register("ada", "mentor")
	bob := api.register("bob", "student")
	api.register("eve", "student")
	courseID := api.createCourse(mentor.Token, "Algo")

	code, _ := api.do(http.MethodPost, "/api/courses/join/"+courseID, bob.Token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env := api.do(http.MethodGet, "/api/users/me", bob.Token, nil)
	require.Equal(t, http.StatusOK, code)
	profile := decode[struct {
		Email         string `json:"email"`
		JoinedCourses []struct {
			Title string `json:"title"`
		} `json:"joinedCourses"`
	}](t, env.Data)
	assert.Equal(t, "bob@example.com", profile.Email)
	require.Len(t, profile.JoinedCourses, 1)
	assert.Equal(t, "Algo", profile.JoinedCourses[0].Title)

	code, _ = api.do(http.MethodPut, "/api/users/me", bob.Token, map[string]string{"email": "eve@example.com"})
	assert.Equal(t, http.StatusConflict, code)

	code, env = api.do(http.MethodPut, "/api/users/change-password", bob.Token, map[string]string{
		"currentPassword": "nope", "newPassword": "better456",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Incorrect current password", env.Error.Message)

	code, _ = api.do(http.MethodPut, "/api/users/change-password", bob.Token, map[string]string{
		"currentPassword": "secret123", "newPassword": "better456",
	})
	require.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "bob@example.com", "password": "better456", "role": "student",
	})
	assert.Equal(t, http.StatusOK, code)

	code, env = api.do(http.MethodGet, "/api/students", mentor.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 2)

	code, _ = api.do(http.MethodDelete, "/api/users/me", mentor.Token, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = api.do(http.MethodDelete, "/api/users/me", bob.Token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = api.do(http.MethodGet, "/api/courses/"+courseID+"/students", mentor.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"students":[]`)
}
