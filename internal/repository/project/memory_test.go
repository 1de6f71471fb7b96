package project

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"keepsake/internal/model/project"
)

func newTestProject(id string) *project.Project {
	return &project.Project{
		ID:     id,
		Status: project.StatusDraft,
		Photos: []project.Photo{},
	}
}

func TestMemoryRepo(t *testing.T) {
	Convey("进程内项目仓库", t, func() {
		ctx := context.Background()
		r := NewMemoryRepo()

		Convey("创建后可按ID查询", func() {
			So(r.Create(ctx, newTestProject("p1")), ShouldBeNil)

			got, err := r.FindByID(ctx, "p1")
			So(err, ShouldBeNil)
			So(got.ID, ShouldEqual, "p1")
			So(got.Status, ShouldEqual, project.StatusDraft)
			So(got.CreatedAt.IsZero(), ShouldBeFalse)
		})

		Convey("查询不存在的ID返回 ErrNotFound", func() {
			_, err := r.FindByID(ctx, "missing")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("读操作返回快照，修改副本不影响仓库", func() {
			So(r.Create(ctx, newTestProject("p1")), ShouldBeNil)

			got, err := r.FindByID(ctx, "p1")
			So(err, ShouldBeNil)
			got.Status = project.StatusFailed
			got.Photos = append(got.Photos, project.Photo{ID: "injected"})

			again, err := r.FindByID(ctx, "p1")
			So(err, ShouldBeNil)
			So(again.Status, ShouldEqual, project.StatusDraft)
			So(len(again.Photos), ShouldEqual, 0)
		})

		Convey("AppendPhotos 清空旧的分析结果", func() {
			So(r.Create(ctx, newTestProject("p1")), ShouldBeNil)
			So(r.AppendPhotos(ctx, "p1", []project.Photo{{ID: "ph1"}}), ShouldBeNil)
			So(r.SaveAnalysis(ctx, "p1", []*project.PhotoAnalysis{{PhotoID: "ph1"}}, &project.AnalysisSummary{OverallTheme: "t"}), ShouldBeNil)

			So(r.AppendPhotos(ctx, "p1", []project.Photo{{ID: "ph2"}}), ShouldBeNil)

			got, err := r.FindByID(ctx, "p1")
			So(err, ShouldBeNil)
			So(len(got.Photos), ShouldEqual, 2)
			So(got.PhotoAnalyses, ShouldBeEmpty)
			So(got.AnalysisSummary, ShouldBeNil)
		})

		Convey("SaveAnalysis 回到 draft 并清除错误", func() {
			So(r.Create(ctx, newTestProject("p1")), ShouldBeNil)
			So(r.MarkFailed(ctx, "p1", "boom"), ShouldBeNil)

			So(r.SaveAnalysis(ctx, "p1", []*project.PhotoAnalysis{{PhotoID: "ph1"}}, nil), ShouldBeNil)

			got, err := r.FindByID(ctx, "p1")
			So(err, ShouldBeNil)
			So(got.Status, ShouldEqual, project.StatusDraft)
			So(got.Error, ShouldBeEmpty)
		})

		Convey("MarkCompleted 一次性落库脚本、视频与完成时间", func() {
			So(r.Create(ctx, newTestProject("p1")), ShouldBeNil)

			completedAt := time.Now()
			script := &project.VideoScript{Title: "t", Scenes: []project.SceneScript{{SceneID: 1}}}
			So(r.MarkCompleted(ctx, "p1", script, "https://cdn/v.mp4", completedAt), ShouldBeNil)

			got, err := r.FindByID(ctx, "p1")
			So(err, ShouldBeNil)
			So(got.Status, ShouldEqual, project.StatusCompleted)
			So(got.Script.Title, ShouldEqual, "t")
			So(got.VideoURL, ShouldEqual, "https://cdn/v.mp4")
			So(got.CompletedAt, ShouldNotBeNil)
			So(got.Error, ShouldBeEmpty)
		})

		Convey("MarkFailed 记录原因，SetStatus 清除错误", func() {
			So(r.Create(ctx, newTestProject("p1")), ShouldBeNil)
			So(r.MarkFailed(ctx, "p1", "upstream exploded"), ShouldBeNil)

			got, err := r.FindByID(ctx, "p1")
			So(err, ShouldBeNil)
			So(got.Status, ShouldEqual, project.StatusFailed)
			So(got.Error, ShouldEqual, "upstream exploded")

			So(r.SetStatus(ctx, "p1", project.StatusGenerating), ShouldBeNil)
			got, err = r.FindByID(ctx, "p1")
			So(err, ShouldBeNil)
			So(got.Error, ShouldBeEmpty)
		})

		Convey("删除是一次性的", func() {
			So(r.Create(ctx, newTestProject("p1")), ShouldBeNil)
			So(r.Delete(ctx, "p1"), ShouldBeNil)
			So(errors.Is(r.Delete(ctx, "p1"), ErrNotFound), ShouldBeTrue)
		})

		Convey("写操作作用在不存在的ID上返回 ErrNotFound", func() {
			So(errors.Is(r.SetStatus(ctx, "ghost", project.StatusGenerating), ErrNotFound), ShouldBeTrue)
			So(errors.Is(r.MarkFailed(ctx, "ghost", "x"), ErrNotFound), ShouldBeTrue)
			So(errors.Is(r.AppendPhotos(ctx, "ghost", nil), ErrNotFound), ShouldBeTrue)
		})
	})
}
