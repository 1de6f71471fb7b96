package scriptgen

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const validScriptJSON = `{
  "title": "summer memories",
  "total_duration": 60,
  "scenes": [
    {
      "scene_id": 1,
      "start_time": 0,
      "end_time": 10,
      "photo_id": "photo_1",
      "transition": "fade_in",
      "camera_movement": "slow_zoom_in",
      "emotion": "nostalgic",
      "video_prompt": "Cinematic slow zoom, soft lighting"
    },
    {
      "scene_id": 2,
      "start_time": 10,
      "end_time": 25,
      "photo_id": "photo_2",
      "transition": "crossfade",
      "camera_movement": "pan_right",
      "emotion": "joyful",
      "video_prompt": "Gentle pan across the scene"
    }
  ],
  "overall_mood": "warm",
  "color_grading": "warm_vintage"
}`

func TestCleanJSONContent(t *testing.T) {
	Convey("CleanJSONContent 清理 LLM 输出", t, func() {
		Convey("裸 JSON 原样返回", func() {
			So(CleanJSONContent(`{"a":1}`), ShouldEqual, `{"a":1}`)
		})

		Convey("去掉首尾空白", func() {
			So(CleanJSONContent("  {\"a\":1}\n\n"), ShouldEqual, `{"a":1}`)
		})

		Convey("移除 ```json 代码块标记", func() {
			content := "```json\n{\"a\":1}\n```"
			So(CleanJSONContent(content), ShouldEqual, `{"a":1}`)
		})

		Convey("移除无语言标注的代码块标记", func() {
			content := "```\n{\"a\":1}\n```"
			So(CleanJSONContent(content), ShouldEqual, `{"a":1}`)
		})

		Convey("代码块前后的空白不影响清理", func() {
			content := "\n  ```json\n{\"a\":1}\n```  \n"
			So(CleanJSONContent(content), ShouldEqual, `{"a":1}`)
		})
	})
}

func TestParseScript(t *testing.T) {
	Convey("ParseScript 严格解析脚本", t, func() {
		Convey("合法脚本解析出全部场景", func() {
			script, err := ParseScript(validScriptJSON)
			So(err, ShouldBeNil)
			So(script.Title, ShouldEqual, "summer memories")
			So(script.TotalDuration, ShouldEqual, 60)
			So(len(script.Scenes), ShouldEqual, 2)
			So(script.Scenes[0].PhotoID, ShouldEqual, "photo_1")
			So(script.Scenes[1].Transition, ShouldEqual, "crossfade")
		})

		Convey("markdown 包裹的脚本同样可解析", func() {
			script, err := ParseScript("```json\n" + validScriptJSON + "\n```")
			So(err, ShouldBeNil)
			So(len(script.Scenes), ShouldEqual, 2)
		})

		Convey("非 JSON 内容返回 ErrInvalidScript", func() {
			_, err := ParseScript("Sure! Here is your script: ...")
			So(errors.Is(err, ErrInvalidScript), ShouldBeTrue)
		})

		Convey("没有场景返回 ErrInvalidScript", func() {
			_, err := ParseScript(`{"title":"empty","scenes":[]}`)
			So(errors.Is(err, ErrInvalidScript), ShouldBeTrue)
		})

		Convey("场景缺少 photo_id 返回 ErrInvalidScript", func() {
			_, err := ParseScript(`{"title":"x","scenes":[{"scene_id":1,"video_prompt":"p"}]}`)
			So(errors.Is(err, ErrInvalidScript), ShouldBeTrue)
		})

		Convey("场景缺少 video_prompt 返回 ErrInvalidScript", func() {
			_, err := ParseScript(`{"title":"x","scenes":[{"scene_id":1,"photo_id":"photo_1"}]}`)
			So(errors.Is(err, ErrInvalidScript), ShouldBeTrue)
		})
	})
}

// fakeProvider 固定返回预设内容
type fakeProvider struct {
	content string
	err     error
	prompts []string
}

func (f *fakeProvider) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func TestGenerator_GenerateScript(t *testing.T) {
	Convey("Generator 调用 LLM 生成脚本", t, func() {
		ctx := context.Background()

		Convey("把叙事和风格写进提示词", func() {
			provider := &fakeProvider{content: validScriptJSON}
			g := NewGenerator(provider)

			script, err := g.GenerateScript(ctx, nil, nil, "our last summer", "nostalgic")
			So(err, ShouldBeNil)
			So(script, ShouldNotBeNil)
			So(len(provider.prompts), ShouldEqual, 1)
			So(provider.prompts[0], ShouldContainSubstring, "our last summer")
			So(provider.prompts[0], ShouldContainSubstring, "nostalgic")
		})

		Convey("LLM 返回无效内容时错误携带 ErrInvalidScript", func() {
			g := NewGenerator(&fakeProvider{content: "not json"})
			_, err := g.GenerateScript(ctx, nil, nil, "n", "happy")
			So(errors.Is(err, ErrInvalidScript), ShouldBeTrue)
		})

		Convey("LLM 调用失败时透传错误", func() {
			g := NewGenerator(&fakeProvider{err: errors.New("rate limited")})
			_, err := g.GenerateScript(ctx, nil, nil, "n", "happy")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrInvalidScript), ShouldBeFalse)
		})
	})
}
