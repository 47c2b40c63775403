package resumes

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resumehub-backend/internal/shared/debugx"
	"resumehub-backend/internal/shared/storage/object/local"
)

func newTestRouter(t *testing.T, gateway *fakeLLM) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &Service{
		Store:      local.New(t.TempDir()),
		Repo:       NewMemoryRepo(),
		Parser:     &Parser{LLM: gateway},
		Customizer: &Customizer{LLM: gateway},
	}
	h := NewHandler(svc, debugx.New(false))

	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func multipartUpload(t *testing.T, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(data); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadAndGetResume(t *testing.T) {
	gateway := &fakeLLM{responses: []map[string]any{{
		"sections": []any{
			map[string]any{"title": "Summary", "content": "Engineer.", "raw_content": "Engineer."},
		},
	}}}
	router := newTestRouter(t, gateway)

	body, contentType := multipartUpload(t, "cv.docx", docxBytes(t, "Summary", "Engineer."))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created ResumeOut
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected id, got empty")
	}
	if len(created.Sections) != 1 || created.Sections[0].Title == nil || *created.Sections[0].Title != "Summary" {
		t.Fatalf("unexpected sections: %+v", created.Sections)
	}
	if len(created.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", created.Warnings)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+created.ID, nil)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}
	var fetched ResumeOut
	if err := json.NewDecoder(respGet.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if fetched.ID != created.ID || len(fetched.Sections) != 1 {
		t.Fatalf("unexpected fetched resume: %+v", fetched)
	}
}

func TestUploadUnsupportedFormatReturns400(t *testing.T) {
	router := newTestRouter(t, &fakeLLM{})

	body, contentType := multipartUpload(t, "cv.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestUploadParseFailureReturns201WithWarning(t *testing.T) {
	gateway := &fakeLLM{errs: []error{errors.New("backend down")}}
	router := newTestRouter(t, gateway)

	body, contentType := multipartUpload(t, "cv.docx", docxBytes(t, "Summary"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created ResumeOut
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(created.Warnings) != 1 || created.Warnings[0] != WarnParseFailed {
		t.Fatalf("unexpected warnings: %v", created.Warnings)
	}
	if len(created.Sections) != 0 {
		t.Fatalf("expected no sections, got %+v", created.Sections)
	}
}

func TestDownloadStoredFile(t *testing.T) {
	gateway := &fakeLLM{responses: []map[string]any{{"sections": []any{}}}}
	router := newTestRouter(t, gateway)

	data := docxBytes(t, "Summary")
	body, contentType := multipartUpload(t, "cv.docx", data)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", resp.Code)
	}
	var created ResumeOut
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	reqFile := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+created.ID+"/file", nil)
	respFile := httptest.NewRecorder()
	router.ServeHTTP(respFile, reqFile)

	if respFile.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respFile.Code)
	}
	got, err := io.ReadAll(respFile.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("downloaded bytes differ from upload")
	}
	if cd := respFile.Header().Get("Content-Disposition"); cd == "" {
		t.Fatalf("expected Content-Disposition header")
	}
}

func TestCreateVersionEndpoint(t *testing.T) {
	gateway := &fakeLLM{responses: []map[string]any{
		{"sections": []any{map[string]any{"title": "Summary", "content": "Engineer."}}},
		{"sections": []any{map[string]any{"title": "Summary", "content": "Tailored."}}},
		{"cover_letter": "Dear team,"},
	}}
	router := newTestRouter(t, gateway)

	body, contentType := multipartUpload(t, "cv.docx", docxBytes(t, "Summary"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", resp.Code)
	}
	var created ResumeOut
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	payload := bytes.NewBufferString(`{"job_description":"Backend role"}`)
	reqVersion := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/"+created.ID+"/versions", payload)
	reqVersion.Header.Set("Content-Type", "application/json")
	respVersion := httptest.NewRecorder()
	router.ServeHTTP(respVersion, reqVersion)

	if respVersion.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", respVersion.Code, respVersion.Body.String())
	}
	var version VersionOut
	if err := json.NewDecoder(respVersion.Body).Decode(&version); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if version.ResumeID != created.ID {
		t.Fatalf("version resume_id = %q", version.ResumeID)
	}
	if version.CoverLetter == nil || *version.CoverLetter != "Dear team," {
		t.Fatalf("unexpected cover letter: %v", version.CoverLetter)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+created.ID+"/versions/"+version.ID, nil)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}
}

func TestCreateVersionMissingBodyReturns400(t *testing.T) {
	router := newTestRouter(t, &fakeLLM{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/some-id/versions", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestGetMissingResumeReturns404(t *testing.T) {
	router := newTestRouter(t, &fakeLLM{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/no-such-id", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestListResumes(t *testing.T) {
	gateway := &fakeLLM{responses: []map[string]any{{"sections": []any{}}}}
	router := newTestRouter(t, gateway)

	body, contentType := multipartUpload(t, "cv.docx", docxBytes(t, "Summary"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", resp.Code)
	}

	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/resumes?limit=10", nil)
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)

	if respList.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respList.Code)
	}
	var list []ResumeListItem
	if err := json.NewDecoder(respList.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Filename != "cv.docx" {
		t.Fatalf("unexpected list: %+v", list)
	}
}
