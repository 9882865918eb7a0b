package service

import (
	"errors"
	"testing"

	"github.com/emzola/watchlist/data"
)

func TestCreateReview(t *testing.T) {
	newFixture := func() (*mockRepo, *data.Title, *data.User) {
		repo := newMockRepo()
		title := repo.addTitle(&data.Title{Title: "Dark Harbor", PlatformID: 1, Active: true})
		user := repo.addUser(&data.User{Username: "ada", Email: "ada@example.com"})
		return repo, title, user
	}

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		repo, title, _ := newFixture()
		svc := newTestService(t, repo)
		_, err := svc.CreateReview(data.AnonymousUser, title.ID, 4, "solid", true)
		if !errors.Is(err, ErrAuthenticationRequired) {
			t.Fatalf("want ErrAuthenticationRequired, got %v", err)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		repo, _, user := newFixture()
		svc := newTestService(t, repo)
		_, err := svc.CreateReview(user, 999, 4, "solid", true)
		if !errors.Is(err, ErrRecordNotFound) {
			t.Fatalf("want ErrRecordNotFound, got %v", err)
		}
	})

	t.Run("first rating sets the baseline", func(t *testing.T) {
		repo, title, user := newFixture()
		svc := newTestService(t, repo)
		review, err := svc.CreateReview(user, title.ID, 5, "brilliant", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if review.Username != "ada" {
			t.Errorf("want username ada, got %q", review.Username)
		}
		stored := repo.titles[title.ID]
		if stored.AvgRating == nil || *stored.AvgRating != 5.0 {
			t.Fatalf("want avg rating 5.0, got %v", stored.AvgRating)
		}
		if stored.NumberRating != 1 {
			t.Errorf("want number rating 1, got %d", stored.NumberRating)
		}
	})

	t.Run("later ratings blend with the running average", func(t *testing.T) {
		repo, title, user := newFixture()
		other := repo.addUser(&data.User{Username: "ben", Email: "ben@example.com"})
		svc := newTestService(t, repo)
		if _, err := svc.CreateReview(user, title.ID, 5, "", true); err != nil {
			t.Fatalf("first review: %v", err)
		}
		if _, err := svc.CreateReview(other, title.ID, 3, "", true); err != nil {
			t.Fatalf("second review: %v", err)
		}
		stored := repo.titles[title.ID]
		if stored.AvgRating == nil || *stored.AvgRating != 4.0 {
			t.Fatalf("want avg rating 4.0, got %v", stored.AvgRating)
		}
		if stored.NumberRating != 2 {
			t.Errorf("want number rating 2, got %d", stored.NumberRating)
		}
	})

	t.Run("second review by the same user is rejected", func(t *testing.T) {
		repo, title, user := newFixture()
		svc := newTestService(t, repo)
		if _, err := svc.CreateReview(user, title.ID, 5, "", true); err != nil {
			t.Fatalf("first review: %v", err)
		}
		_, err := svc.CreateReview(user, title.ID, 1, "changed my mind", true)
		if !errors.Is(err, ErrDuplicateReview) {
			t.Fatalf("want ErrDuplicateReview, got %v", err)
		}
		stored := repo.titles[title.ID]
		if stored.NumberRating != 1 {
			t.Errorf("aggregates moved on rejected duplicate: number rating %d", stored.NumberRating)
		}
	})

	t.Run("out of range rating fails validation", func(t *testing.T) {
		repo, title, user := newFixture()
		svc := newTestService(t, repo)
		_, err := svc.CreateReview(user, title.ID, 6, "", true)
		if !errors.Is(err, ErrFailedValidation) {
			t.Fatalf("want ErrFailedValidation, got %v", err)
		}
		var vErr ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("want ValidationError, got %T", err)
		}
		if _, ok := vErr.Fields["rating"]; !ok {
			t.Errorf("want rating field error, got %v", vErr.Fields)
		}
	})
}

func TestUpdateReview(t *testing.T) {
	newFixture := func() (*mockRepo, *data.Review, *data.User, *data.User) {
		repo := newMockRepo()
		title := repo.addTitle(&data.Title{Title: "Dark Harbor", PlatformID: 1, Active: true})
		owner := repo.addUser(&data.User{Username: "ada", Email: "ada@example.com"})
		other := repo.addUser(&data.User{Username: "ben", Email: "ben@example.com"})
		review := &data.Review{TitleID: title.ID, UserID: owner.ID, Username: owner.Username, Rating: 4, Active: true}
		if err := repo.CreateReviewForTitle(review, title); err != nil {
			panic(err)
		}
		return repo, review, owner, other
	}

	t.Run("owner can update", func(t *testing.T) {
		repo, review, owner, _ := newFixture()
		svc := newTestService(t, repo)
		rating := int8(2)
		updated, err := svc.UpdateReview(owner, review.ID, &rating, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Rating != 2 {
			t.Errorf("want rating 2, got %d", updated.Rating)
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo, review, _, other := newFixture()
		svc := newTestService(t, repo)
		rating := int8(1)
		_, err := svc.UpdateReview(other, review.ID, &rating, nil, nil)
		if !errors.Is(err, ErrNotPermitted) {
			t.Fatalf("want ErrNotPermitted, got %v", err)
		}
	})

	t.Run("admin can update another user's review", func(t *testing.T) {
		repo, review, _, _ := newFixture()
		admin := repo.addUser(&data.User{Username: "root", Email: "root@example.com", Admin: true})
		svc := newTestService(t, repo)
		desc := "moderated"
		_, err := svc.UpdateReview(admin, review.ID, nil, &desc, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("anonymous caller gets authentication error", func(t *testing.T) {
		repo, review, _, _ := newFixture()
		svc := newTestService(t, repo)
		rating := int8(1)
		_, err := svc.UpdateReview(data.AnonymousUser, review.ID, &rating, nil, nil)
		if !errors.Is(err, ErrAuthenticationRequired) {
			t.Fatalf("want ErrAuthenticationRequired, got %v", err)
		}
	})

	t.Run("editing the rating leaves aggregates untouched", func(t *testing.T) {
		repo, review, owner, _ := newFixture()
		svc := newTestService(t, repo)
		before := repo.titles[review.TitleID]
		wantAvg := *before.AvgRating
		rating := int8(1)
		if _, err := svc.UpdateReview(owner, review.ID, &rating, nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		after := repo.titles[review.TitleID]
		if *after.AvgRating != wantAvg || after.NumberRating != before.NumberRating {
			t.Errorf("aggregates changed on update: avg %v number %d", *after.AvgRating, after.NumberRating)
		}
	})
}

func TestDeleteReview(t *testing.T) {
	repo := newMockRepo()
	title := repo.addTitle(&data.Title{Title: "Dark Harbor", PlatformID: 1, Active: true})
	owner := repo.addUser(&data.User{Username: "ada", Email: "ada@example.com"})
	other := repo.addUser(&data.User{Username: "ben", Email: "ben@example.com"})
	review := &data.Review{TitleID: title.ID, UserID: owner.ID, Username: owner.Username, Rating: 4, Active: true}
	if err := repo.CreateReviewForTitle(review, title); err != nil {
		t.Fatal(err)
	}
	svc := newTestService(t, repo)

	if err := svc.DeleteReview(other, review.ID); !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("want ErrNotPermitted for non-owner, got %v", err)
	}
	if err := svc.DeleteReview(owner, review.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.DeleteReview(owner, review.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound after delete, got %v", err)
	}
}
