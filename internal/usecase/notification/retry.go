package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// maxRetryAttempts bounds operator replays per DLQ entry so a permanently
// broken recipient cannot be retried forever.
const maxRetryAttempts = 5

type RetryResult struct {
	Success      bool
	SuccessCount int
	FailedCount  int
	Errors       []string
}

// RetryFailures replays the given DLQ entries on their recorded channels.
// A successful replay deletes the entry; a failed one stays put with its
// attempt counter bumped.
func (uc *DefaultNotificationUsecase) RetryFailures(principal domain.Principal, failureIDs []string) (*RetryResult, error) {
	if principal.Role != domain.RoleStaff && principal.Role != domain.RoleOwner && principal.Role != domain.RoleAdmin {
		return nil, status.Error(codes.PermissionDenied, "staff or owner role required")
	}
	if len(failureIDs) == 0 {
		return nil, status.Error(codes.InvalidArgument, "failureIds must not be empty")
	}

	result := &RetryResult{}
	ctx := context.Background()

	for _, failureID := range failureIDs {
		failure, err := uc.NotificationRepo.GetFailure(failureID)
		if err != nil {
			if errors.Is(err, domain.ErrFailureNotFound) {
				result.Errors = append(result.Errors, fmt.Sprintf("failure %s not found", failureID))
				continue
			}
			result.Errors = append(result.Errors, fmt.Sprintf("failure %s: %v", failureID, err))
			continue
		}

		if failure.Attempts >= maxRetryAttempts {
			result.Errors = append(result.Errors, fmt.Sprintf("failure %s exceeded %d attempts", failureID, maxRetryAttempts))
			continue
		}

		if err := uc.replay(ctx, failure); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("failure %s: %v", failureID, err))
			if bumpErr := uc.NotificationRepo.BumpFailureAttempts(failureID); bumpErr != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failure %s: bump attempts: %v", failureID, bumpErr))
			}
			if uc.Metrics != nil {
				uc.Metrics.DLQRetryFailedTotal.Inc()
			}
			continue
		}

		if err := uc.NotificationRepo.DeleteFailure(failureID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failure %s: delete after success: %v", failureID, err))
		}
		result.SuccessCount++
		if uc.Metrics != nil {
			uc.Metrics.DLQRetrySuccessTotal.Inc()
		}
	}

	result.Success = result.SuccessCount > 0 || result.FailedCount == 0
	return result, nil
}

func (uc *DefaultNotificationUsecase) replay(ctx context.Context, failure *domain.NotificationFailure) error {
	switch failure.Channel {
	case domain.ChannelPush:
		return uc.PushSender.Send(ctx, failure.Recipient, failure.Subject, failure.Body)
	case domain.ChannelChat:
		return uc.ChatSender.Send(ctx, failure.Recipient, failure.Subject+"\n"+failure.Body)
	default:
		return fmt.Errorf("unknown channel %q", failure.Channel)
	}
}
