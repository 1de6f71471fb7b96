package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"keepsake/internal/config"
)

func TestClient_Analyze(t *testing.T) {
	Convey("Vision 客户端照片分析", t, func() {
		ctx := context.Background()

		Convey("完整响应解析出人脸情绪、色调与关键元素", func(c C) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.So(r.URL.Path, ShouldEqual, "/images:annotate")
				c.So(r.URL.Query().Get("key"), ShouldEqual, "test-key")

				var body struct {
					Requests []struct {
						Image    map[string]string        `json:"image"`
						Features []map[string]interface{} `json:"features"`
					} `json:"requests"`
				}
				c.So(json.NewDecoder(r.Body).Decode(&body), ShouldBeNil)
				c.So(len(body.Requests), ShouldEqual, 1)
				c.So(body.Requests[0].Image["content"], ShouldNotBeEmpty)
				c.So(len(body.Requests[0].Features), ShouldEqual, 5)

				w.Write([]byte(`{
					"responses": [{
						"labelAnnotations": [
							{"description": "Beach"},
							{"description": "Sky"},
							{"description": "Vacation"}
						],
						"faceAnnotations": [
							{"joyLikelihood": "VERY_LIKELY", "sorrowLikelihood": "VERY_UNLIKELY", "surpriseLikelihood": "UNLIKELY"},
							{"joyLikelihood": "LIKELY", "sorrowLikelihood": "VERY_UNLIKELY", "surpriseLikelihood": "UNLIKELY"}
						],
						"imagePropertiesAnnotation": {
							"dominantColors": {
								"colors": [
									{"color": {"red": 66, "green": 135, "blue": 244}},
									{"color": {"red": 255, "green": 214, "blue": 10}}
								]
							}
						},
						"landmarkAnnotations": [{"description": "Haeundae Beach"}],
						"localizedObjectAnnotations": [{"name": "Person"}, {"name": "Umbrella"}]
					}]
				}`))
			}))
			defer srv.Close()

			client, err := NewClient(&config.VisionConfig{APIKey: "test-key", BaseURL: srv.URL, Timeout: time.Second})
			So(err, ShouldBeNil)

			analysis, err := client.Analyze(ctx, "photo_1", []byte{0xFF, 0xD8})
			So(err, ShouldBeNil)
			So(analysis.PhotoID, ShouldEqual, "photo_1")
			So(analysis.People.Count, ShouldEqual, 2)
			So(analysis.People.Emotions, ShouldContain, "happy")
			So(analysis.Mood, ShouldEqual, "joyful")
			So(len(analysis.Colors), ShouldEqual, 2)
			So(analysis.Colors[0], ShouldEqual, "rgb(66,135,244)")
			So(analysis.Setting.Type, ShouldEqual, "Haeundae Beach")
			So(analysis.Setting.Indoor, ShouldBeFalse)
			So(analysis.KeyElements, ShouldContain, "Beach")
			So(analysis.KeyElements, ShouldContain, "Umbrella")
		})

		Convey("没有人脸时情绪回退为 neutral", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"responses": [{"labelAnnotations": [{"description": "Room"}, {"description": "Furniture"}]}]}`))
			}))
			defer srv.Close()

			client, err := NewClient(&config.VisionConfig{APIKey: "test-key", BaseURL: srv.URL})
			So(err, ShouldBeNil)

			analysis, err := client.Analyze(ctx, "photo_2", []byte{1})
			So(err, ShouldBeNil)
			So(analysis.People.Count, ShouldEqual, 0)
			So(analysis.People.Emotions, ShouldResemble, []string{"neutral"})
			So(analysis.Mood, ShouldEqual, "neutral")
			So(analysis.Setting.Indoor, ShouldBeTrue)
		})

		Convey("上游非 200 返回错误", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error": {"message": "API key expired"}}`))
			}))
			defer srv.Close()

			client, err := NewClient(&config.VisionConfig{APIKey: "bad-key", BaseURL: srv.URL})
			So(err, ShouldBeNil)

			_, err = client.Analyze(ctx, "photo_3", []byte{1})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "API key expired")
		})

		Convey("API key 未配置时创建客户端失败", func() {
			_, err := NewClient(&config.VisionConfig{})
			So(err, ShouldNotBeNil)
		})
	})
}
