package project

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"keepsake/internal/config"
	repo "keepsake/internal/repository/project"
	projectsvc "keepsake/internal/service/project"
)

// memStorage 测试用内存存储
type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (m *memStorage) Upload(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = b
	return "mem://" + key, nil
}

func (m *memStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memStorage) Delete(_ context.Context, key string) error { return nil }

func (m *memStorage) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.files {
		if strings.HasPrefix(k, prefix) {
			delete(m.files, k)
		}
	}
	return nil
}

func (m *memStorage) Exists(_ context.Context, key string) (bool, error) { return false, nil }

func (m *memStorage) GetPresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "mem://" + key, nil
}

func (m *memStorage) GetStorageType() string { return "mem" }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Analysis: config.AnalysisConfig{MinInterval: time.Millisecond},
		Pipeline: config.PipelineConfig{Timeout: time.Second, MaxPhotos: 10},
	}
	svc := projectsvc.NewService(
		repo.NewMemoryRepo(),
		&memStorage{files: map[string][]byte{}},
		nil, nil, nil, nil,
		projectsvc.NewMemoryLocker(),
		cfg,
	)

	hdl := NewHandler(svc)
	engine := gin.New()
	v1 := engine.Group("/api/v1")
	projects := v1.Group("/projects")
	{
		projects.POST("", hdl.CreateProject)
		projects.GET("/:project_id", hdl.GetProject)
		projects.DELETE("/:project_id", hdl.DeleteProject)
		projects.POST("/:project_id/photos", hdl.UploadPhotos)
		projects.PUT("/:project_id/narrative", hdl.SetNarrative)
		projects.POST("/:project_id/generate", hdl.StartGeneration)
		projects.GET("/:project_id/status", hdl.GetStatus)
	}
	return engine
}

func doRequest(engine *gin.Engine, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func createProject(engine *gin.Engine) string {
	w := doRequest(engine, http.MethodPost, "/api/v1/projects", strings.NewReader(`{"title":"trip"}`), "application/json")
	So(w.Code, ShouldEqual, http.StatusCreated)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
	So(resp.Data.ID, ShouldNotBeEmpty)
	return resp.Data.ID
}

func TestProjectHandlers(t *testing.T) {
	Convey("项目 HTTP 接口", t, func() {
		engine := newTestRouter()

		Convey("创建项目返回 201 与项目ID", func() {
			id := createProject(engine)
			So(id, ShouldNotBeEmpty)
		})

		Convey("查询不存在的项目返回 404 错误封装", func() {
			w := doRequest(engine, http.MethodGet, "/api/v1/projects/missing", nil, "")
			So(w.Code, ShouldEqual, http.StatusNotFound)

			var resp ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, 40401)
			So(resp.Message, ShouldNotBeEmpty)
		})

		Convey("新项目的状态投影为 draft / 0", func() {
			id := createProject(engine)

			w := doRequest(engine, http.MethodGet, "/api/v1/projects/"+id+"/status", nil, "")
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				Data struct {
					Status   string `json:"status"`
					Progress int    `json:"progress"`
					Message  string `json:"message"`
				} `json:"data"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Data.Status, ShouldEqual, "draft")
			So(resp.Data.Progress, ShouldEqual, 0)
			So(resp.Data.Message, ShouldEqual, "Ready to generate")
		})

		Convey("上传非图片文件返回 400", func() {
			id := createProject(engine)

			var buf bytes.Buffer
			mw := multipart.NewWriter(&buf)
			part, err := mw.CreateFormFile("files", "notes.txt")
			So(err, ShouldBeNil)
			part.Write([]byte("not an image"))
			mw.Close()

			w := doRequest(engine, http.MethodPost, "/api/v1/projects/"+id+"/photos", &buf, mw.FormDataContentType())
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var resp ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, 40006)
		})

		Convey("非法风格返回 400", func() {
			id := createProject(engine)

			body := strings.NewReader(`{"narrative":"our story","style":"noir"}`)
			w := doRequest(engine, http.MethodPut, "/api/v1/projects/"+id+"/narrative", body, "application/json")
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var resp ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, 40007)
		})

		Convey("缺少必填字段的叙事请求被绑定校验拒绝", func() {
			id := createProject(engine)

			body := strings.NewReader(`{"narrative":"our story"}`)
			w := doRequest(engine, http.MethodPut, "/api/v1/projects/"+id+"/narrative", body, "application/json")
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var resp ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, 40001)
		})

		Convey("没有照片时发起生成返回 400", func() {
			id := createProject(engine)

			w := doRequest(engine, http.MethodPost, "/api/v1/projects/"+id+"/generate", nil, "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var resp ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, 40002)
		})

		Convey("删除后再查询返回 404", func() {
			id := createProject(engine)

			w := doRequest(engine, http.MethodDelete, "/api/v1/projects/"+id, nil, "")
			So(w.Code, ShouldEqual, http.StatusOK)

			w = doRequest(engine, http.MethodGet, "/api/v1/projects/"+id, nil, "")
			So(w.Code, ShouldEqual, http.StatusNotFound)

			w = doRequest(engine, http.MethodDelete, "/api/v1/projects/"+id, nil, "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}
