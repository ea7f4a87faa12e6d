package service

import (
	"context"
	"time"

	"medconnect/internal/models"
	"medconnect/internal/observability"
	"medconnect/internal/repository"

	"golang.org/x/sync/errgroup"
)

const defaultCommentFetchers = 8

// FeedService assembles the public feed.
type FeedService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	fetchers    int
}

func NewFeedService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, fetchers int) *FeedService {
	if fetchers <= 0 {
		fetchers = defaultCommentFetchers
	}
	return &FeedService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		fetchers:    fetchers,
	}
}

// GetFeed lists every post newest first and then attaches each post's
// comments, oldest first. Comment lookups start only after the listing has
// returned and run at most s.fetchers at a time. Any failure fails the whole
// read.
func (s *FeedService) GetFeed(ctx context.Context) ([]models.FeedEntry, error) {
	start := time.Now()
	defer func() { observability.FeedBuildSeconds.Observe(time.Since(start).Seconds()) }()

	ctx, span := observability.StartSpan(ctx, "FeedService.GetFeed")
	defer span.End()

	rows, err := s.postRepo.ListFeed(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	entries := make([]models.FeedEntry, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchers)

	for i := range rows {
		entries[i].FeedRow = rows[i]
		g.Go(func() error {
			comments, err := s.commentRepo.ListByPost(gctx, rows[i].PostID)
			if err != nil {
				return err
			}
			if comments == nil {
				comments = []models.CommentView{}
			}
			entries[i].Comments = comments
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return entries, nil
}
