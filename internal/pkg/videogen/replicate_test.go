package videogen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"keepsake/internal/config"
	"keepsake/internal/model/project"
)

func testScene() *project.SceneScript {
	return &project.SceneScript{
		SceneID:     1,
		StartTime:   0,
		EndTime:     10,
		PhotoID:     "photo_1",
		VideoPrompt: "slow cinematic zoom",
	}
}

func newTestClient(baseURL string) *ReplicateClient {
	return NewReplicateClient(&config.VideoGenConfig{
		Provider:     "replicate",
		APIKey:       "test-key",
		BaseURL:      baseURL,
		Model:        "minimax/video-01",
		PollInterval: 10 * time.Millisecond,
		MaxWait:      500 * time.Millisecond,
	})
}

func TestReplicateClient_SynthesizeScene(t *testing.T) {
	Convey("Replicate 场景合成", t, func() {
		ctx := context.Background()

		Convey("Prefer: wait 同步返回结果", func(c C) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.So(r.Method, ShouldEqual, http.MethodPost)
				c.So(r.URL.Path, ShouldEqual, "/models/minimax/video-01/predictions")
				c.So(r.Header.Get("Prefer"), ShouldEqual, "wait")
				c.So(r.Header.Get("Authorization"), ShouldEqual, "Bearer test-key")

				var body struct {
					Input map[string]interface{} `json:"input"`
				}
				c.So(json.NewDecoder(r.Body).Decode(&body), ShouldBeNil)
				c.So(body.Input["prompt"], ShouldEqual, "slow cinematic zoom")
				c.So(body.Input["first_frame_image"], ShouldStartWith, "data:image/jpeg;base64,")

				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"id":     "pred_1",
					"status": "succeeded",
					"output": "https://replicate.delivery/out.mp4",
				})
			}))
			defer srv.Close()

			result, err := newTestClient(srv.URL).SynthesizeScene(ctx, testScene(), []byte("jpeg"))
			So(err, ShouldBeNil)
			So(result.SceneID, ShouldEqual, 1)
			So(result.VideoURL, ShouldEqual, "https://replicate.delivery/out.mp4")
		})

		Convey("没有种子图时不携带 first_frame_image", func(c C) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					Input map[string]interface{} `json:"input"`
				}
				c.So(json.NewDecoder(r.Body).Decode(&body), ShouldBeNil)
				_, hasSeed := body.Input["first_frame_image"]
				c.So(hasSeed, ShouldBeFalse)

				json.NewEncoder(w).Encode(map[string]interface{}{
					"id":     "pred_1",
					"status": "succeeded",
					"output": "https://replicate.delivery/out.mp4",
				})
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).SynthesizeScene(ctx, testScene(), nil)
			So(err, ShouldBeNil)
		})

		Convey("未就绪时轮询直到完成", func(c C) {
			var polls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodPost {
					json.NewEncoder(w).Encode(map[string]interface{}{
						"id":     "pred_2",
						"status": "starting",
					})
					return
				}
				c.So(r.URL.Path, ShouldEqual, "/predictions/pred_2")
				if polls.Add(1) < 3 {
					json.NewEncoder(w).Encode(map[string]interface{}{"id": "pred_2", "status": "processing"})
					return
				}
				json.NewEncoder(w).Encode(map[string]interface{}{
					"id":     "pred_2",
					"status": "succeeded",
					"output": []string{"https://replicate.delivery/polled.mp4"},
				})
			}))
			defer srv.Close()

			result, err := newTestClient(srv.URL).SynthesizeScene(ctx, testScene(), []byte("jpeg"))
			So(err, ShouldBeNil)
			So(result.VideoURL, ShouldEqual, "https://replicate.delivery/polled.mp4")
			So(polls.Load(), ShouldBeGreaterThanOrEqualTo, 3)
		})

		Convey("上游报告失败", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodPost {
					json.NewEncoder(w).Encode(map[string]interface{}{"id": "pred_3", "status": "starting"})
					return
				}
				json.NewEncoder(w).Encode(map[string]interface{}{
					"id":     "pred_3",
					"status": "failed",
					"error":  "NSFW content detected",
				})
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).SynthesizeScene(ctx, testScene(), []byte("jpeg"))
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrTimeout), ShouldBeFalse)
			So(err.Error(), ShouldContainSubstring, "NSFW content detected")
		})

		Convey("超过最大等待时间返回 ErrTimeout", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodPost {
					json.NewEncoder(w).Encode(map[string]interface{}{"id": "pred_4", "status": "starting"})
					return
				}
				json.NewEncoder(w).Encode(map[string]interface{}{"id": "pred_4", "status": "processing"})
			}))
			defer srv.Close()

			client := newTestClient(srv.URL)
			client.maxWait = 50 * time.Millisecond

			_, err := client.SynthesizeScene(ctx, testScene(), []byte("jpeg"))
			So(errors.Is(err, ErrTimeout), ShouldBeTrue)
		})

		Convey("HTTP 错误透传响应体", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"invalid token"}`))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).SynthesizeScene(ctx, testScene(), []byte("jpeg"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "invalid token")
		})
	})
}

func TestConvertImageToDataURL(t *testing.T) {
	Convey("ConvertImageToDataURL 产出 base64 data URL", t, func() {
		url := ConvertImageToDataURL([]byte{0xFF, 0xD8}, "image/jpeg")
		So(strings.HasPrefix(url, "data:image/jpeg;base64,"), ShouldBeTrue)

		Convey("缺省 MIME 按 jpeg 处理", func() {
			So(ConvertImageToDataURL([]byte{1}, ""), ShouldStartWith, "data:image/jpeg;base64,")
		})
	})
}
