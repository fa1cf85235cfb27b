package benchmark

import (
	"context"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/blog-comment-section/internal/auth"
	"github.com/blog-comment-section/internal/mocks"
	"github.com/blog-comment-section/internal/models"
	"github.com/blog-comment-section/internal/section"
	"github.com/blog-comment-section/internal/validation"
	"github.com/blog-comment-section/internal/view"
	"github.com/rs/zerolog"
)

// thread builds n top-level comments with replies each
func thread(n, replies int) []models.Comment {
	now := time.Now()
	comments := make([]models.Comment, n)
	for i := range comments {
		id := "c" + strconv.Itoa(i)
		comments[i] = models.Comment{
			ID: id, ArticleID: "a1", AuthorID: "u" + strconv.Itoa(i%50),
			Content:   strings.Repeat("lorem ipsum ", 20),
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
			Author:    models.Author{ID: "u" + strconv.Itoa(i%50), Name: "User " + strconv.Itoa(i%50), Role: "user"},
		}
		for j := 0; j < replies; j++ {
			parent := id
			comments[i].Replies = append(comments[i].Replies, models.Comment{
				ID: id + "-r" + strconv.Itoa(j), ArticleID: "a1", AuthorID: "u1", Content: "reply",
				ParentID: &parent, CreatedAt: now,
				Author: models.Author{ID: "u1", Name: "User 1", Role: "user"},
			})
		}
	}
	return comments
}

func mountedSection(b *testing.B, comments []models.Comment) *section.Section {
	b.Helper()
	repo := mocks.NewMockCommentRepository()
	repo.Comments["a1"] = comments
	s := section.New(repo, zerolog.Nop())
	s.Mount(context.Background(), section.Props{
		ArticleID: "a1",
		Viewer:    auth.NewViewer(&models.User{ID: "u1", Name: "User 1"}),
	})
	return s
}

// BenchmarkBuildPage benchmarks building the view model of a large thread
func BenchmarkBuildPage(b *testing.B) {
	state := mountedSection(b, thread(500, 5)).Snapshot()
	f := view.NewFormatter("en", time.UTC)
	now := time.Now()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		view.Build(state, now, f, "/login")
	}

	b.ReportMetric(float64(3000*b.N)/b.Elapsed().Seconds(), "comments/sec")
}

// BenchmarkRenderHTML benchmarks rendering a large thread to HTML
func BenchmarkRenderHTML(b *testing.B) {
	page := view.Build(mountedSection(b, thread(500, 5)).Snapshot(), time.Now(), view.NewFormatter("en", time.UTC), "/login")
	tmpl := view.Templates()
	doc := view.Document{Locale: "en", Page: page}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := tmpl.ExecuteTemplate(io.Discard, view.SectionTemplate, doc); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkValidation benchmarks content validation
func BenchmarkValidation(b *testing.B) {
	req := &models.CommentCreateRequest{
		ArticleID: "a1",
		Content:   strings.Repeat("é", models.MaxCommentLength),
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validation.ValidateCreate(req)
	}
}

// BenchmarkSectionSubmit benchmarks a submit followed by its reload
func BenchmarkSectionSubmit(b *testing.B) {
	s := mountedSection(b, thread(100, 2))
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		s.SetNewComment("Great article!")
		s.SubmitComment(ctx)
	}
}

// BenchmarkSectionsParallel benchmarks independent visitor sections under load
func BenchmarkSectionsParallel(b *testing.B) {
	comments := thread(100, 2)
	f := view.NewFormatter("en", time.UTC)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		s := mountedSection(b, comments)
		for pb.Next() {
			s.ToggleReply("c1")
			view.Build(s.Snapshot(), time.Now(), f, "/login")
		}
	})
}
