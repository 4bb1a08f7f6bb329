package likes

import (
	"context"
	"errors"
	"fmt"
	"log"

	"swapyard/pkg/listings"
	"swapyard/pkg/matches"
	"swapyard/pkg/notifications"
	"swapyard/pkg/push"
	"swapyard/pkg/sendemail"
	"swapyard/pkg/users"
)

var ErrSelfLike = errors.New("cannot like your own listing")

// PushSender fans a payload out to a user's registered push endpoints.
// Satisfied by push.Publisher.
type PushSender interface {
	PublishToUser(ctx context.Context, userUUID string, payload push.Payload) int
}

// LikeResult is what a successful like produces: the like itself and, when
// the other side had already liked back, the match that was created.
type LikeResult struct {
	Like  Like           `json:"like"`
	Match *matches.Match `json:"match,omitempty"`
}

type LikeService interface {
	LikeListing(ctx context.Context, userUUID, listingID string) (LikeResult, error)
	UnlikeListing(ctx context.Context, userUUID, listingID string) error
	ListLikes(ctx context.Context, userUUID string) ([]Like, error)
}

type likeService struct {
	repo        LikeRepository
	listingRepo listings.ListingRepository
	userRepo    users.UserRepository
	matchRepo   matches.MatchRepository
	notifier    notifications.NotificationService
	email       sendemail.EmailService
	pusher      PushSender
	logger      *log.Logger
}

func NewLikeService(
	repo LikeRepository,
	listingRepo listings.ListingRepository,
	userRepo users.UserRepository,
	matchRepo matches.MatchRepository,
	notifier notifications.NotificationService,
	email sendemail.EmailService,
	pusher PushSender,
) LikeService {
	return &likeService{
		repo:        repo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		matchRepo:   matchRepo,
		notifier:    notifier,
		email:       email,
		pusher:      pusher,
		logger:      log.New(log.Writer(), "[likes] ", log.LstdFlags),
	}
}

// LikeListing records the like, notifies the listing owner, and runs match
// detection: if the owner had already liked one of the liker's active
// listings, both sides get a match. The like insert is the only step that
// can fail the call; every notification path is best effort.
func (s *likeService) LikeListing(ctx context.Context, userUUID, listingID string) (LikeResult, error) {
	listing, err := s.listingRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return LikeResult{}, err
	}
	if !listing.IsActive {
		return LikeResult{}, listings.ErrListingNotFound
	}
	if listing.UserUUID == userUUID {
		return LikeResult{}, ErrSelfLike
	}

	like, err := s.repo.CreateLike(ctx, Like{
		UserUUID:  userUUID,
		ListingID: listingID,
		OwnerUUID: listing.UserUUID,
	})
	if err != nil {
		return LikeResult{}, err
	}

	s.notifyLike(ctx, like, listing)

	result := LikeResult{Like: like}
	if match := s.detectMatch(ctx, like, listing); match != nil {
		result.Match = match
	}
	return result, nil
}

func (s *likeService) UnlikeListing(ctx context.Context, userUUID, listingID string) error {
	return s.repo.DeleteLike(ctx, userUUID, listingID)
}

func (s *likeService) ListLikes(ctx context.Context, userUUID string) ([]Like, error) {
	return s.repo.ListLikesByUser(ctx, userUUID)
}

// notifyLike tells the listing owner about the new like over every channel
// they can be reached on.
func (s *likeService) notifyLike(ctx context.Context, like Like, listing listings.Listing) {
	message := fmt.Sprintf("Someone liked your listing %q", listing.Title)

	if _, err := s.notifier.Notify(ctx, notifications.Notification{
		RecipientUUID: like.OwnerUUID,
		SenderUUID:    &like.UserUUID,
		ListingID:     &like.ListingID,
		Type:          notifications.TypeLike,
		Message:       message,
	}); err != nil {
		s.logger.Printf("like notification for %s failed: %v", like.OwnerUUID, err)
	}

	if s.pusher != nil {
		s.pusher.PublishToUser(ctx, like.OwnerUUID, push.Payload{
			Type:      notifications.TypeLike,
			Message:   message,
			ListingID: like.ListingID,
		})
	}

	if s.email != nil {
		owner, err := s.userRepo.GetUserByUUID(ctx, like.OwnerUUID)
		if err != nil {
			s.logger.Printf("owner lookup for like email failed: %v", err)
			return
		}
		body := fmt.Sprintf("Your listing %q just got a new like. Open the app to see who it was.", listing.Title)
		if err := s.email.SendEmail("Your listing got a like", owner.Email, body, body); err != nil {
			s.logger.Printf("like email to %s failed: %v", owner.Email, err)
		}
	}
}

// detectMatch creates a match when the listing owner has an earlier like on
// one of the liker's active listings and the pair is not matched yet.
func (s *likeService) detectMatch(ctx context.Context, like Like, listing listings.Listing) *matches.Match {
	reciprocal, err := s.repo.FindReciprocalLike(ctx, like.OwnerUUID, like.UserUUID)
	if err != nil {
		if !errors.Is(err, ErrLikeNotFound) {
			s.logger.Printf("reciprocal like lookup failed: %v", err)
		}
		return nil
	}

	exists, err := s.matchRepo.MatchExistsForUsers(ctx, like.UserUUID, like.OwnerUUID)
	if err != nil {
		s.logger.Printf("match existence check failed: %v", err)
		return nil
	}
	if exists {
		return nil
	}

	match, err := s.matchRepo.CreateMatch(ctx, matches.Match{
		UserAUUID:  like.UserUUID,
		UserBUUID:  like.OwnerUUID,
		ListingAID: reciprocal.ListingID,
		ListingBID: like.ListingID,
	})
	if err != nil {
		s.logger.Printf("match insert failed: %v", err)
		return nil
	}

	s.notifyMatch(ctx, match, listing)
	return &match
}

func (s *likeService) notifyMatch(ctx context.Context, match matches.Match, listing listings.Listing) {
	message := fmt.Sprintf("It's a match! You and another user liked each other's listings, starting with %q.", listing.Title)

	for _, recipient := range []string{match.UserAUUID, match.UserBUUID} {
		if _, err := s.notifier.Notify(ctx, notifications.Notification{
			RecipientUUID: recipient,
			Type:          notifications.TypeMatch,
			Message:       message,
		}); err != nil {
			s.logger.Printf("match notification for %s failed: %v", recipient, err)
		}

		if s.pusher != nil {
			s.pusher.PublishToUser(ctx, recipient, push.Payload{
				Type:    notifications.TypeMatch,
				Message: message,
			})
		}
	}
}
